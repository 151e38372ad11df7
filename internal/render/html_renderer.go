package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .brand img { max-height: 48px; }
    .meta { text-align: right; font-size: 14px; }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals { margin-top: 12px; font-size: 14px; }
    .totals td { border: none; padding: 4px 10px; }
    .totals .grand { font-size: 16px; font-weight: bold; }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div class="brand">
        {{if .Business.LogoURL}}
        <img src="{{.Business.LogoURL}}" alt="Company logo" />
        {{end}}
        <div>
          <div><strong>{{.Business.Name}}</strong></div>
          <div>{{.Business.Email}}</div>
          <div>{{.Business.Address}}</div>
        </div>
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div><strong>{{.Invoice.Number}}</strong></div>
        <div>Status: {{.Invoice.Status}}</div>
        <div>Issued: {{formatDate .Invoice.IssuedAt}}</div>
        <div>Due: {{formatDate .Invoice.DueDate}}</div>
      </div>
    </div>

    <div class="section">
      <div class="label">Billed To</div>
      <div><strong>{{.Client.Name}}</strong>{{if .Client.Company}} — {{.Client.Company}}{{end}}</div>
      <div>{{.Client.Email}}</div>
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Description</th>
            <th>Quantity</th>
            <th>Unit Price</th>
            <th>Tax</th>
            <th>Discount</th>
            <th>Amount</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td>{{.Description}}</td>
            <td>{{formatQuantity .Quantity}}</td>
            <td>{{formatMoney .UnitPrice $.Invoice.Currency}}</td>
            <td>{{formatRate .TaxRate}}</td>
            <td>{{formatMoney .Discount $.Invoice.Currency}}</td>
            <td>{{formatMoney .Total $.Invoice.Currency}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <table class="totals">
        <tr><td>Subtotal</td><td>{{formatMoney .Invoice.Subtotal .Invoice.Currency}}</td></tr>
        <tr><td>Tax</td><td>{{formatMoney .Invoice.TaxTotal .Invoice.Currency}}</td></tr>
        <tr><td>Discount</td><td>{{formatMoney .Invoice.DiscountTotal .Invoice.Currency}}</td></tr>
        <tr class="grand"><td>Total</td><td>{{formatMoney .Invoice.Total .Invoice.Currency}}</td></tr>
        <tr><td>Balance Due</td><td>{{formatMoney .Invoice.BalanceDue .Invoice.Currency}}</td></tr>
      </table>
    </div>

    <div class="footer">
      {{if .Invoice.Notes}}<div>{{.Invoice.Notes}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`

type htmlRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() HTMLRenderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatQuantity": formatQuantity,
		"formatRate":     formatRate,
	}
	return &htmlRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *htmlRenderer) RenderHTML(input RenderInput) (string, error) {
	if input.Business.Name == "" {
		input.Business.Name = "Invoice"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func formatRate(rate float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", rate*100), "0"), ".") + "%"
}
