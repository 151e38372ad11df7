package models

import "time"

// Payment references an invoice and applies an amount toward its balance.
type Payment struct {
	Document

	UserID    string        `json:"user_id" firestore:"userId"`
	InvoiceID string        `json:"invoice_id" firestore:"invoiceId"`
	Amount    float64       `json:"amount" firestore:"amount"`
	Currency  string        `json:"currency" firestore:"currency"`
	Method    string        `json:"method,omitempty" firestore:"method"`
	Status    PaymentStatus `json:"status" firestore:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty" firestore:"paidAt"`
	Reference string        `json:"reference,omitempty" firestore:"reference"`
}

type Expense struct {
	Document

	UserID     string     `json:"user_id" firestore:"userId"`
	Category   string     `json:"category" firestore:"category"`
	Amount     float64    `json:"amount" firestore:"amount"`
	Currency   string     `json:"currency" firestore:"currency"`
	Note       string     `json:"note,omitempty" firestore:"note"`
	ReceiptURL string     `json:"receipt_url,omitempty" firestore:"receiptUrl"`
	IncurredAt *time.Time `json:"incurred_at,omitempty" firestore:"incurredAt"`
}

type Budget struct {
	Document

	UserID   string  `json:"user_id" firestore:"userId"`
	Category string  `json:"category" firestore:"category"`
	Period   string  `json:"period" firestore:"period"`
	Limit    float64 `json:"limit" firestore:"limit"`
	Spent    float64 `json:"spent" firestore:"spent"`
	Currency string  `json:"currency" firestore:"currency"`
}
