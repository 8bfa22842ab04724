package timeutil

import (
	"testing"
	"time"
)

func TestFormatISTConvertsZone(t *testing.T) {
	// 20:00 UTC is 01:30 the next day in IST.
	utc := time.Date(2026, 8, 19, 20, 0, 0, 0, time.UTC)
	if got := FormatIST(utc, DisplayLayout); got != "20 Aug 2026, 01:30 AM" {
		t.Errorf("FormatIST = %q, want %q", got, "20 Aug 2026, 01:30 AM")
	}
	if got := FormatIST(utc, DateLayout); got != "2026-08-20" {
		t.Errorf("FormatIST date = %q, want %q", got, "2026-08-20")
	}
}

func TestParseInIST(t *testing.T) {
	got, err := ParseInIST(DateLayout, "2026-08-19")
	if err != nil {
		t.Fatalf("ParseInIST: %v", err)
	}
	want := time.Date(2026, 8, 19, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}

	if _, err := ParseInIST(DateLayout, "19-08-2026"); err == nil {
		t.Error("wrong layout must fail to parse")
	}
}
