package report

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownDomain is returned by TableFor for a domain name outside the
// five reportable entity types.
var ErrUnknownDomain = errors.New("unknown report domain")

// Header describes one report column: the title shown in the sheet, the
// row key it reads, and the column width in the exported workbook.
type Header struct {
	Title string  `json:"title"`
	Key   string  `json:"key"`
	Width float64 `json:"width"`
}

// Row maps header keys to cell values. Keys absent from a row render as
// blank cells; every populated key must appear in the table's headers.
type Row map[string]any

// ReportTable is the exchange format between the reporting facade and the
// spreadsheet exporter: fixed, ordered headers plus row records.
type ReportTable struct {
	Name    string
	Sheet   string
	Headers []Header
	Rows    []Row
}

// TableFor runs the aggregation for one domain and flattens the nested
// statistics into a row-oriented table: a single summary row carrying the
// scalar totals, then one row per bucket per grouping dimension, with
// unrelated columns left blank. Column order and presence is fixed per
// domain, not derived from the data.
func (s *Stats) TableFor(ctx context.Context, domain string) (ReportTable, error) {
	switch domain {
	case "students":
		st, err := s.StudentStatistics(ctx)
		if err != nil {
			return ReportTable{}, err
		}
		return studentTable(st), nil
	case "rooms":
		st, err := s.RoomStatistics(ctx)
		if err != nil {
			return ReportTable{}, err
		}
		return roomTable(st), nil
	case "contracts":
		st, err := s.ContractStatistics(ctx)
		if err != nil {
			return ReportTable{}, err
		}
		return contractTable(st), nil
	case "payments":
		st, err := s.PaymentStatistics(ctx)
		if err != nil {
			return ReportTable{}, err
		}
		return paymentTable(st), nil
	case "requests":
		st, err := s.RequestStatistics(ctx)
		if err != nil {
			return ReportTable{}, err
		}
		return requestTable(st), nil
	}
	return ReportTable{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
}

func studentTable(st StudentStats) ReportTable {
	t := ReportTable{
		Name:  "Student Report",
		Sheet: "Students",
		Headers: []Header{
			{Title: "Total Students", Key: "totalStudents", Width: 20},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Count", Key: "count", Width: 10},
			{Title: "Gender", Key: "gender", Width: 15},
			{Title: "Gender Count", Key: "genderCount", Width: 15},
		},
	}
	t.Rows = append(t.Rows, Row{"totalStudents": st.TotalStudents})
	for _, b := range st.StudentsByStatus {
		t.Rows = append(t.Rows, Row{"status": b.Value, "count": b.Count})
	}
	for _, b := range st.StudentsByGender {
		t.Rows = append(t.Rows, Row{"gender": b.Value, "genderCount": b.Count})
	}
	return t
}

func roomTable(st RoomStats) ReportTable {
	t := ReportTable{
		Name:  "Room Report",
		Sheet: "Rooms",
		Headers: []Header{
			{Title: "Total Rooms", Key: "totalRooms", Width: 20},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Count", Key: "count", Width: 10},
			{Title: "Type", Key: "type", Width: 15},
			{Title: "Type Count", Key: "typeCount", Width: 15},
			{Title: "Total Capacity", Key: "totalCapacity", Width: 20},
			{Title: "Current Occupancy", Key: "currentOccupancy", Width: 20},
		},
	}
	t.Rows = append(t.Rows, Row{
		"totalRooms":       st.TotalRooms,
		"totalCapacity":    st.TotalCapacity,
		"currentOccupancy": st.CurrentOccupancy,
	})
	for _, b := range st.RoomsByStatus {
		t.Rows = append(t.Rows, Row{"status": b.Value, "count": b.Count})
	}
	for _, b := range st.RoomsByType {
		t.Rows = append(t.Rows, Row{"type": b.Value, "typeCount": b.Count})
	}
	return t
}

func contractTable(st ContractStats) ReportTable {
	t := ReportTable{
		Name:  "Contract Report",
		Sheet: "Contracts",
		Headers: []Header{
			{Title: "Total Contracts", Key: "totalContracts", Width: 20},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Count", Key: "count", Width: 10},
		},
	}
	t.Rows = append(t.Rows, Row{"totalContracts": st.TotalContracts})
	for _, b := range st.ContractsByStatus {
		t.Rows = append(t.Rows, Row{"status": b.Value, "count": b.Count})
	}
	return t
}

func paymentTable(st PaymentStats) ReportTable {
	t := ReportTable{
		Name:  "Payment Report",
		Sheet: "Payments",
		Headers: []Header{
			{Title: "Total Payments", Key: "totalPayments", Width: 20},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Count", Key: "count", Width: 10},
			{Title: "Total Revenue", Key: "totalRevenue", Width: 20},
			{Title: "Overdue Payments", Key: "overduePayments", Width: 20},
		},
	}
	t.Rows = append(t.Rows, Row{
		"totalPayments":   st.TotalPayments,
		"totalRevenue":    st.TotalRevenue,
		"overduePayments": st.OverduePayments,
	})
	for _, b := range st.PaymentsByStatus {
		t.Rows = append(t.Rows, Row{"status": b.Value, "count": b.Count})
	}
	return t
}

func requestTable(st RequestStats) ReportTable {
	t := ReportTable{
		Name:  "Request Report",
		Sheet: "Requests",
		Headers: []Header{
			{Title: "Total Requests", Key: "totalRequests", Width: 20},
			{Title: "Type", Key: "type", Width: 15},
			{Title: "Type Count", Key: "typeCount", Width: 15},
			{Title: "Priority", Key: "priority", Width: 15},
			{Title: "Priority Count", Key: "priorityCount", Width: 15},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Status Count", Key: "statusCount", Width: 15},
		},
	}
	t.Rows = append(t.Rows, Row{"totalRequests": st.TotalRequests})
	for _, b := range st.RequestsByType {
		t.Rows = append(t.Rows, Row{"type": b.Value, "typeCount": b.Count})
	}
	for _, b := range st.RequestsByPriority {
		t.Rows = append(t.Rows, Row{"priority": b.Value, "priorityCount": b.Count})
	}
	for _, b := range st.RequestsByStatus {
		t.Rows = append(t.Rows, Row{"status": b.Value, "statusCount": b.Count})
	}
	return t
}
