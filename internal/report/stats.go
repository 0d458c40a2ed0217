// Package report implements the statistics aggregation engine, the
// dashboard facade composing it, and the spreadsheet export of its output.
package report

import (
	"context"
	"database/sql"
	"fmt"
)

// StatBucket is one (category value, count) pair produced by a grouped
// aggregation. Bucket order follows scan order from the database and is
// not guaranteed sorted.
type StatBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Stats runs read-only aggregation queries against the primary database.
// All methods are side-effect-free and safe to call concurrently.
type Stats struct{ DB *sql.DB }

func NewStats(db *sql.DB) *Stats { return &Stats{DB: db} }

// StudentStats summarizes the students collection.
type StudentStats struct {
	TotalStudents    int          `json:"totalStudents"`
	StudentsByStatus []StatBucket `json:"studentsByStatus"`
	StudentsByGender []StatBucket `json:"studentsByGender"`
}

// RoomStats summarizes the rooms collection, including summed capacity and
// occupancy across all rooms (0 when there are none).
type RoomStats struct {
	TotalRooms       int          `json:"totalRooms"`
	RoomsByStatus    []StatBucket `json:"roomsByStatus"`
	RoomsByType      []StatBucket `json:"roomsByType"`
	TotalCapacity    int          `json:"totalCapacity"`
	CurrentOccupancy int          `json:"currentOccupancy"`
}

// ContractStats summarizes the contracts collection.
type ContractStats struct {
	TotalContracts    int          `json:"totalContracts"`
	ContractsByStatus []StatBucket `json:"contractsByStatus"`
}

// PaymentStats summarizes the payments collection. TotalRevenue sums the
// amount of paid payments only; pending, overdue and cancelled rows do not
// count as revenue.
type PaymentStats struct {
	TotalPayments    int          `json:"totalPayments"`
	PaymentsByStatus []StatBucket `json:"paymentsByStatus"`
	TotalRevenue     float64      `json:"totalRevenue"`
	OverduePayments  int          `json:"overduePayments"`
}

// RequestStats summarizes the maintenance requests collection.
type RequestStats struct {
	TotalRequests      int          `json:"totalRequests"`
	RequestsByType     []StatBucket `json:"requestsByType"`
	RequestsByPriority []StatBucket `json:"requestsByPriority"`
	RequestsByStatus   []StatBucket `json:"requestsByStatus"`
}

// StudentStatistics returns total student count plus status and gender
// breakdowns.
func (s *Stats) StudentStatistics(ctx context.Context) (StudentStats, error) {
	var out StudentStats
	var err error
	if out.TotalStudents, err = s.countAll(ctx, "students"); err != nil {
		return StudentStats{}, fmt.Errorf("student statistics: %w", err)
	}
	if out.StudentsByStatus, err = s.groupCount(ctx, "students", "status"); err != nil {
		return StudentStats{}, fmt.Errorf("student statistics: %w", err)
	}
	if out.StudentsByGender, err = s.groupCount(ctx, "students", "gender"); err != nil {
		return StudentStats{}, fmt.Errorf("student statistics: %w", err)
	}
	return out, nil
}

// RoomStatistics returns room counts broken down by status and type, plus
// summed capacity and occupancy.
func (s *Stats) RoomStatistics(ctx context.Context) (RoomStats, error) {
	var out RoomStats
	var err error
	if out.TotalRooms, err = s.countAll(ctx, "rooms"); err != nil {
		return RoomStats{}, fmt.Errorf("room statistics: %w", err)
	}
	if out.RoomsByStatus, err = s.groupCount(ctx, "rooms", "status"); err != nil {
		return RoomStats{}, fmt.Errorf("room statistics: %w", err)
	}
	if out.RoomsByType, err = s.groupCount(ctx, "rooms", "room_type"); err != nil {
		return RoomStats{}, fmt.Errorf("room statistics: %w", err)
	}
	// COALESCE keeps the sums at 0 for an empty table instead of NULL.
	err = s.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(capacity),0), COALESCE(SUM(current_occupancy),0) FROM rooms").
		Scan(&out.TotalCapacity, &out.CurrentOccupancy)
	if err != nil {
		return RoomStats{}, fmt.Errorf("room statistics: %w", err)
	}
	return out, nil
}

// ContractStatistics returns total contract count plus a status breakdown.
func (s *Stats) ContractStatistics(ctx context.Context) (ContractStats, error) {
	var out ContractStats
	var err error
	if out.TotalContracts, err = s.countAll(ctx, "contracts"); err != nil {
		return ContractStats{}, fmt.Errorf("contract statistics: %w", err)
	}
	if out.ContractsByStatus, err = s.groupCount(ctx, "contracts", "status"); err != nil {
		return ContractStats{}, fmt.Errorf("contract statistics: %w", err)
	}
	return out, nil
}

// PaymentStatistics returns payment counts, revenue over paid payments and
// the overdue payment count.
func (s *Stats) PaymentStatistics(ctx context.Context) (PaymentStats, error) {
	var out PaymentStats
	var err error
	if out.TotalPayments, err = s.countAll(ctx, "payments"); err != nil {
		return PaymentStats{}, fmt.Errorf("payment statistics: %w", err)
	}
	if out.PaymentsByStatus, err = s.groupCount(ctx, "payments", "status"); err != nil {
		return PaymentStats{}, fmt.Errorf("payment statistics: %w", err)
	}
	err = s.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount),0) FROM payments WHERE status='paid'").
		Scan(&out.TotalRevenue)
	if err != nil {
		return PaymentStats{}, fmt.Errorf("payment statistics: %w", err)
	}
	err = s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE status='overdue'").
		Scan(&out.OverduePayments)
	if err != nil {
		return PaymentStats{}, fmt.Errorf("payment statistics: %w", err)
	}
	return out, nil
}

// RequestStatistics returns request counts broken down by type, priority
// and status.
func (s *Stats) RequestStatistics(ctx context.Context) (RequestStats, error) {
	var out RequestStats
	var err error
	if out.TotalRequests, err = s.countAll(ctx, "requests"); err != nil {
		return RequestStats{}, fmt.Errorf("request statistics: %w", err)
	}
	if out.RequestsByType, err = s.groupCount(ctx, "requests", "type"); err != nil {
		return RequestStats{}, fmt.Errorf("request statistics: %w", err)
	}
	if out.RequestsByPriority, err = s.groupCount(ctx, "requests", "priority"); err != nil {
		return RequestStats{}, fmt.Errorf("request statistics: %w", err)
	}
	if out.RequestsByStatus, err = s.groupCount(ctx, "requests", "status"); err != nil {
		return RequestStats{}, fmt.Errorf("request statistics: %w", err)
	}
	return out, nil
}

func (s *Stats) countAll(ctx context.Context, table string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

// groupCount emits one bucket per distinct value of a categorical column.
// An empty table yields an empty bucket list, not an error. Table and
// column names come from fixed call sites above, never from request input.
func (s *Stats) groupCount(ctx context.Context, table, column string) ([]StatBucket, error) {
	q := fmt.Sprintf("SELECT COALESCE(%s,''), COUNT(*) FROM %s GROUP BY %s", column, table, column)
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []StatBucket{}
	for rows.Next() {
		var b StatBucket
		if err := rows.Scan(&b.Value, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
