package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfRenderer builds the invoice PDF from a declarative page description fed
// to pdfcpu. Layout is intentionally plain; typography is not this service's
// concern.
type pdfRenderer struct {
	conf *model.Configuration
}

func NewPDFRenderer() Renderer {
	return &pdfRenderer{conf: model.NewDefaultConfiguration()}
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"position"`
	Font     *pdfFont   `json:"font,omitempty"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDescription struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

func (r *pdfRenderer) Render(input RenderInput) ([]byte, error) {
	desc := pdfDescription{
		Paper:  "A4",
		Origin: "upperLeft",
		Pages:  map[string]pdfPage{"1": {Content: pdfContent{Text: r.layout(input)}}},
	}

	spec, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page description: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &buf, r.conf); err != nil {
		return nil, fmt.Errorf("failed to create invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) layout(input RenderInput) []pdfText {
	titleFont := &pdfFont{Name: "Helvetica-Bold", Size: 18}
	headFont := &pdfFont{Name: "Helvetica-Bold", Size: 10}
	bodyFont := &pdfFont{Name: "Helvetica", Size: 10}

	currency := input.Invoice.Currency
	lines := []pdfText{
		{Value: fmt.Sprintf("Invoice %s", input.Invoice.Number), Position: [2]float64{50, 60}, Font: titleFont},
		{Value: input.Business.Name, Position: [2]float64{50, 85}, Font: headFont},
		{Value: input.Business.Address, Position: [2]float64{50, 100}, Font: bodyFont},
		{Value: fmt.Sprintf("Billed to: %s <%s>", input.Client.Name, input.Client.Email), Position: [2]float64{50, 125}, Font: bodyFont},
		{Value: fmt.Sprintf("Issued: %s    Due: %s", formatDate(input.Invoice.IssuedAt), formatDate(input.Invoice.DueDate)), Position: [2]float64{50, 140}, Font: bodyFont},
	}

	y := 175.0
	lines = append(lines, pdfText{Value: "Description / Qty / Unit / Amount", Position: [2]float64{50, y}, Font: headFont})
	for _, item := range input.Items {
		y += 16
		lines = append(lines, pdfText{
			Value: fmt.Sprintf("%s  %s x %s = %s",
				item.Description,
				formatQuantity(item.Quantity),
				formatMoney(item.UnitPrice, currency),
				formatMoney(item.Total, currency)),
			Position: [2]float64{50, y},
			Font:     bodyFont,
		})
	}

	y += 30
	for _, total := range []struct {
		label  string
		amount float64
		font   *pdfFont
	}{
		{"Subtotal", input.Invoice.Subtotal, bodyFont},
		{"Tax", input.Invoice.TaxTotal, bodyFont},
		{"Discount", input.Invoice.DiscountTotal, bodyFont},
		{"Total", input.Invoice.Total, headFont},
		{"Balance Due", input.Invoice.BalanceDue, headFont},
	} {
		lines = append(lines, pdfText{
			Value:    fmt.Sprintf("%s: %s", total.label, formatMoney(total.amount, currency)),
			Position: [2]float64{50, y},
			Font:     total.font,
		})
		y += 16
	}

	if input.Invoice.Notes != "" {
		y += 14
		lines = append(lines, pdfText{Value: input.Invoice.Notes, Position: [2]float64{50, y}, Font: bodyFont})
	}

	return lines
}
