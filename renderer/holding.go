// Package renderer turns engine results into markdown reports. Numbers are
// carried as the exact decimal types (Money, Quantity) so the templates
// reuse their String renderers.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/invtrack/invtrack"
)

// Holding is the view model of an account holding report.
type Holding struct {
	Account    string         `json:"account"`
	Date       invtrack.Date  `json:"date"`
	Currency   string         `json:"currency"`
	TotalValue invtrack.Money `json:"totalValue"`
	Shares     []HoldingShare `json:"shares"`
	Cash       []HoldingCash  `json:"cash"`
}

// HoldingShare is a single position line.
type HoldingShare struct {
	Ticker      string            `json:"ticker"`
	Name        string            `json:"name,omitempty"`
	Quantity    invtrack.Quantity `json:"quantity"`
	Price       invtrack.Money    `json:"price"`
	MarketValue invtrack.Money    `json:"marketValue"`
}

// HoldingCash is a single cash balance line.
type HoldingCash struct {
	Currency string         `json:"currency"`
	Balance  invtrack.Money `json:"balance"`
}

// NewHolding computes the holding report of an account on a date.
func NewHolding(v *invtrack.Valuation, ledger *invtrack.Ledger, account string, on invtrack.Date) (*Holding, error) {
	a, ok := ledger.Account(account)
	if !ok {
		return nil, fmt.Errorf("account %q does not exist", account)
	}
	h := &Holding{
		Account:  account,
		Date:     on,
		Currency: a.Currency,
	}
	for ticker := range ledger.SharesTraded(account) {
		pos := v.Holding(account, ticker, on)
		if pos.IsZero() {
			continue
		}
		price, err := v.SharePrice(ticker, on, a.Currency)
		if err != nil {
			return nil, err
		}
		name := ""
		if s, ok := ledger.Share(ticker); ok {
			name = s.Name
		}
		h.Shares = append(h.Shares, HoldingShare{
			Ticker:      ticker,
			Name:        name,
			Quantity:    pos,
			Price:       price,
			MarketValue: price.Mul(pos),
		})
	}
	for cur := range ledger.Currencies(account) {
		bal := ledger.CashBalance(account, cur, on)
		if bal.IsZero() {
			continue
		}
		h.Cash = append(h.Cash, HoldingCash{Currency: cur, Balance: bal})
	}
	total, err := v.AccountValue(account, on, a.Currency)
	if err != nil {
		return nil, err
	}
	h.TotalValue = total
	return h, nil
}

const holdingMarkdownTemplate = `# Holding Report for {{ .Account }} on {{ .Date }}

Total Account Value: **{{ .TotalValue }}**

{{- if .Shares }}

## Positions

| Ticker | Quantity | Price | Market Value |
|:---|---:|---:|---:|
{{- range .Shares }}
| {{ .Ticker }} | {{ .Quantity }} | {{ .Price }} | {{ .MarketValue }} |
{{- end }}
{{- end -}}

{{- if .Cash }}

## Cash

| Currency | Balance |
|:---|---:|
{{- range .Cash }}
| {{ .Currency }} | {{ .Balance }} |
{{- end }}
{{- end -}}
`

// RenderHolding renders the Holding view model to a markdown string.
func RenderHolding(h *Holding) string {
	tmpl := template.Must(template.New("holding").Parse(holdingMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, h); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
