package report

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DashboardSnapshot is the composite cross-entity statistics payload the
// admin dashboard renders. It is assembled fresh on every request and never
// cached or persisted by this package.
type DashboardSnapshot struct {
	StudentStats  StudentStats  `json:"studentStats"`
	RoomStats     RoomStats     `json:"roomStats"`
	ContractStats ContractStats `json:"contractStats"`
	PaymentStats  PaymentStats  `json:"paymentStats"`
	RequestStats  RequestStats  `json:"requestStats"`
}

// DashboardSnapshot runs the five domain aggregations concurrently and
// joins the results. The five queries have no ordering dependency; the
// first failure cancels the rest and fails the whole call, so a partial
// snapshot is never returned.
func (s *Stats) DashboardSnapshot(ctx context.Context) (DashboardSnapshot, error) {
	var snap DashboardSnapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.StudentStats, err = s.StudentStatistics(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.RoomStats, err = s.RoomStatistics(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.ContractStats, err = s.ContractStatistics(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.PaymentStats, err = s.PaymentStatistics(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.RequestStats, err = s.RequestStatistics(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardSnapshot{}, err
	}
	return snap, nil
}
