// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them. Events are keyed by the
// user they concern so downstream delivery (mail, push, websocket) can
// route them without touching the primary database.
package queue

// Queue names. Durable queues on the default exchange; the routing key is
// the queue name.
const (
	RequestCreatedQueue   = "request.created"
	PaymentConfirmedQueue = "payment.confirmed"
)

// RequestCreatedEvent is published when a student files a maintenance or
// service request, so staff can be notified without polling.
type RequestCreatedEvent struct {
	RequestID     uint64 `json:"request_id"`
	RequestNumber string `json:"request_number"`
	UserID        uint64 `json:"user_id"`
	StudentID     uint64 `json:"student_id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Priority      string `json:"priority"`
	CreatedAt     string `json:"created_at"`
}

// PaymentConfirmedEvent is published when a payment is confirmed as paid.
type PaymentConfirmedEvent struct {
	PaymentID     uint64  `json:"payment_id"`
	InvoiceNumber string  `json:"invoice_number"`
	UserID        uint64  `json:"user_id"`
	StudentID     uint64  `json:"student_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
