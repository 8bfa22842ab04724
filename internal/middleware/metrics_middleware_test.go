package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"terminal session", "/api/billing/sessions/counter-1", "/api/billing/sessions/{terminal}"},
		{"bill select", "/api/billing/sessions/counter-1/bills/2/select", "/api/billing/sessions/{terminal}/bills/{index}/select"},
		{"item delete", "/api/billing/sessions/c1/items/0", "/api/billing/sessions/{terminal}/items/{index}"},
		{"order delete", "/api/orders/ORD-000042", "/api/orders/{id}"},
		{"order collection untouched", "/api/orders", "/api/orders"},
		{"static route untouched", "/api/summary/export", "/api/summary/export"},
		{"health untouched", "/health/ready", "/health/ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.in); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
