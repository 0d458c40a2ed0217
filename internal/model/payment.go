package model

import "time"

// Payment status values. Revenue aggregation only counts paid rows; the
// overdue counter only counts overdue rows.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

// Payment mirrors the `payments` table.
type Payment struct {
	ID            uint64     // payments.id
	ContractID    uint64     // payments.contract_id (FK contracts.id)
	StudentID     uint64     // payments.student_id (FK students.id)
	PaymentType   string     // payments.payment_type (rent | deposit | electricity | water)
	Amount        float64    // payments.amount
	DueDate       time.Time  // payments.due_date
	PaidDate      *time.Time // payments.paid_date (nullable)
	PaymentMethod string     // payments.payment_method (cash | transfer | online)
	Status        string     // payments.status
	InvoiceNumber string     // payments.invoice_number (unique)
	Note          string     // payments.note
	CreatedAt     time.Time  // payments.created_at
	UpdatedAt     time.Time  // payments.updated_at
}
