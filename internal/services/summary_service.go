package services

import (
	"context"
	"log"
	"time"

	"meatstore-backend/internal/feed"
	"meatstore-backend/internal/models"
	"meatstore-backend/internal/reporting"
	"meatstore-backend/internal/repositories"
	"meatstore-backend/internal/timeutil"
)

// SummaryQuery carries the operator's report filters.
type SummaryQuery struct {
	Range       string
	CustomStart *time.Time
	CustomEnd   *time.Time
	Search      string
}

// SummaryResponse is one aggregation result for the admin screen.
type SummaryResponse struct {
	Range          string              `json:"range"`
	Rows           []models.SummaryRow `json:"rows"`
	Overall        models.SummaryRow   `json:"overall"`
	DistinctOrders int                 `json:"distinct_orders"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// SummaryService drives the aggregation engine over the order feed and
// pushes live recomputes to WebSocket subscribers whenever the feed
// changes.
type SummaryService struct {
	orderRepo *repositories.OrderRepository
	orderFeed *feed.Feed
	hub       *feed.Hub
}

func NewSummaryService(orderRepo *repositories.OrderRepository, orderFeed *feed.Feed, hub *feed.Hub) *SummaryService {
	return &SummaryService{
		orderRepo: orderRepo,
		orderFeed: orderFeed,
		hub:       hub,
	}
}

// LoadFeed replaces the in-memory order set from the database. Called
// once at startup; afterwards the feed is kept current incrementally.
func (s *SummaryService) LoadFeed(ctx context.Context) error {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return err
	}
	s.orderFeed.Replace(orders)
	log.Printf("[Summary] Loaded %d orders into the reporting feed", len(orders))
	return nil
}

// Summarize filters the current feed by the query window and search
// term, then aggregates per product.
func (s *SummaryService) Summarize(q SummaryQuery) SummaryResponse {
	return s.summarize(s.orderFeed.Snapshot(), q)
}

func (s *SummaryService) summarize(orders []models.OrderRecord, q SummaryQuery) SummaryResponse {
	window := reporting.ResolveWindow(q.Range, reporting.CustomRange{
		Start: q.CustomStart,
		End:   q.CustomEnd,
	}, timeutil.Now())

	filtered := reporting.FilterOrders(orders, window, q.Search)
	summary := reporting.Summarize(filtered)

	return SummaryResponse{
		Range:          q.Range,
		Rows:           summary.Rows,
		Overall:        reporting.BuildOverallRow(summary),
		DistinctOrders: summary.DistinctOrders,
		GeneratedAt:    timeutil.Now(),
	}
}

// Orders returns the filtered order list for the orders screen.
func (s *SummaryService) Orders(q SummaryQuery) []models.OrderRecord {
	window := reporting.ResolveWindow(q.Range, reporting.CustomRange{
		Start: q.CustomStart,
		End:   q.CustomEnd,
	}, timeutil.Now())
	return reporting.FilterOrders(s.orderFeed.Snapshot(), window, q.Search)
}

// ExportTable builds the fixed-layout table for the given query, the
// shared input to every export format.
func (s *SummaryService) ExportTable(q SummaryQuery) [][]string {
	resp := s.Summarize(q)
	return reporting.ExportTable(resp.Rows, resp.Overall)
}

// OrdersChanged recomputes the today summary and broadcasts it to live
// subscribers. Implements feed.Listener.
func (s *SummaryService) OrdersChanged(orders []models.OrderRecord) {
	resp := s.summarize(orders, SummaryQuery{Range: reporting.RangeToday})
	s.hub.Broadcast(resp)
}
