package views

import (
	"fmt"

	"github.com/example/datatrans-payment-demo/internal/payment"
)

const noDescription = "—"

// Row is one display-ready transaction.
type Row struct {
	ID            int64
	TransactionID string
	Reference     string
	Description   string
	Amount        string
	Badge         payment.Badge
	Created       string
}

type Table struct {
	Rows  []Row
	Count string
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// NewTable depends on nothing but list, so the same backend data always
// renders the same table.
func NewTable(list []payment.Payment) Table {
	rows := make([]Row, 0, len(list))
	for _, p := range list {
		desc := p.Description
		if desc == "" {
			desc = noDescription
		}
		rows = append(rows, Row{
			ID:            p.ID,
			TransactionID: p.TransactionID,
			Reference:     p.ReferenceNumber,
			Description:   desc,
			Amount:        payment.FormatMoney(p.Amount, p.Currency),
			Badge:         payment.BadgeFor(p.Status),
			Created:       payment.FormatTimestamp(p.CreatedAt),
		})
	}
	return Table{Rows: rows, Count: countLine(len(rows))}
}

func countLine(n int) string {
	if n == 1 {
		return "1 transaction"
	}
	return fmt.Sprintf("%d transactions", n)
}
