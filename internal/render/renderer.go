// Package render turns an invoice view into presentable bytes. Inputs always
// carry already-computed totals; nothing here recalculates money.
package render

import "time"

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Business BusinessView
	Invoice  InvoiceView
	Client   ClientView
	Items    []LineItemView
}

type BusinessView struct {
	Name    string
	Email   string
	Address string
	LogoURL string
}

type InvoiceView struct {
	ID            string
	Number        string
	Status        string
	Currency      string
	IssuedAt      *time.Time
	DueDate       *time.Time
	Subtotal      float64
	TaxTotal      float64
	DiscountTotal float64
	Total         float64
	BalanceDue    float64
	Notes         string
}

type ClientView struct {
	Name    string
	Email   string
	Company string
}

type LineItemView struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	TaxRate     float64
	Discount    float64
	Total       float64
}

// Renderer produces the final invoice document bytes (PDF).
type Renderer interface {
	Render(input RenderInput) ([]byte, error)
}

// HTMLRenderer produces the browser-facing preview.
type HTMLRenderer interface {
	RenderHTML(input RenderInput) (string, error)
}
