package models

import "time"

// LineItem is one billable row on an invoice. Total is derived from the four
// source fields at write time; a stale stored value is never trusted.
type LineItem struct {
	Description string  `json:"description" firestore:"description"`
	Quantity    float64 `json:"quantity" firestore:"quantity"`
	UnitPrice   float64 `json:"unit_price" firestore:"unitPrice"`
	TaxRate     float64 `json:"tax_rate" firestore:"taxRate"`
	Discount    float64 `json:"discount" firestore:"discount"`
	Total       float64 `json:"total" firestore:"total"`
}

type Invoice struct {
	Document

	UserID        string        `json:"user_id" firestore:"userId"`
	ClientID      string        `json:"client_id" firestore:"clientId"`
	Number        string        `json:"number" firestore:"number"`
	Status        InvoiceStatus `json:"status" firestore:"status"`
	Currency      string        `json:"currency" firestore:"currency"`
	LineItems     []LineItem    `json:"line_items" firestore:"lineItems"`
	Subtotal      float64       `json:"subtotal" firestore:"subtotal"`
	TaxTotal      float64       `json:"tax_total" firestore:"taxTotal"`
	DiscountTotal float64       `json:"discount_total" firestore:"discountTotal"`
	Total         float64       `json:"total" firestore:"total"`
	AmountPaid    float64       `json:"amount_paid" firestore:"amountPaid"`
	IssuedAt      *time.Time    `json:"issued_at,omitempty" firestore:"issuedAt"`
	DueDate       *time.Time    `json:"due_date,omitempty" firestore:"dueDate"`
	Notes         string        `json:"notes,omitempty" firestore:"notes"`
	PDFURL        string        `json:"pdf_url,omitempty" firestore:"pdfUrl"`
	Attachments   []string      `json:"attachments,omitempty" firestore:"attachments"`
}

// BalanceDue is the invoice total minus what has been paid to date.
func (i *Invoice) BalanceDue() float64 {
	return i.Total - i.AmountPaid
}

// IsPastDue reports whether the invoice carries a balance past its due date.
// Status transitions remain the caller's decision.
func (i *Invoice) IsPastDue(now time.Time) bool {
	return i.DueDate != nil && now.After(*i.DueDate) && i.BalanceDue() > 0
}
