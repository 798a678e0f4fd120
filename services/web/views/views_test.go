package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/datatrans-payment-demo/internal/payment"
)

func sample() []payment.Payment {
	return []payment.Payment{
		{
			ID:              2,
			TransactionID:   "T2",
			ReferenceNumber: "REF-2",
			Amount:          123450,
			Currency:        "USD",
			Status:          payment.StatusSettled,
			CreatedAt:       "2026-10-19T14:05:09.123456",
		},
		{
			ID:              1,
			TransactionID:   "T1",
			ReferenceNumber: "REF-1",
			Amount:          2550,
			Currency:        "CHF",
			Description:     "Coffee beans",
			Status:          payment.Status("refunded"),
			CreatedAt:       "not a date",
		},
	}
}

func render(t *testing.T, name string, data any) (int, string) {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, name, data))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Code, rec.Body.String()
}

func TestNewTable(t *testing.T) {
	table := NewTable(sample())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2 transactions", table.Count)

	first := table.Rows[0]
	assert.Equal(t, "$1,234.50", first.Amount)
	assert.Equal(t, "—", first.Description)
	assert.Equal(t, "Oct 19, 2026, 2:05 PM", first.Created)
	assert.Equal(t, "bg-green-100 text-green-700", first.Badge.Class)

	second := table.Rows[1]
	assert.Equal(t, "CHF 25.50", second.Amount)
	assert.Equal(t, "Coffee beans", second.Description)
	assert.Equal(t, "not a date", second.Created)
	assert.Equal(t, "refunded", second.Badge.Label)
	assert.Equal(t, "bg-gray-100 text-gray-600", second.Badge.Class)

	assert.Equal(t, "1 transaction", NewTable(sample()[:1]).Count)
	assert.True(t, NewTable(nil).Empty())
}

func TestDashboardEmptyState(t *testing.T) {
	_, body := render(t, PageDashboard, NewDashboard([]payment.Payment{}))

	assert.Contains(t, body, "No transactions yet. Create one above.")
	assert.NotContains(t, body, "<table")
	assert.Contains(t, body, `<option value="CHF" selected>CHF</option>`)
	assert.Contains(t, body, `<option value="GBP">GBP</option>`)
}

func TestDashboardListsTransactions(t *testing.T) {
	_, body := render(t, PageDashboard, NewDashboard(sample()))

	assert.Contains(t, body, "<table")
	assert.Contains(t, body, "2 transactions")
	assert.Contains(t, body, "REF-1")
	assert.Contains(t, body, "$1,234.50")
	assert.Contains(t, body, `href="/payments/T2"`)
	assert.NotContains(t, body, "No transactions yet")
}

func TestDashboardRenderingIsIdempotent(t *testing.T) {
	_, first := render(t, PageDashboard, NewDashboard(sample()))
	_, second := render(t, PageDashboard, NewDashboard(sample()))

	assert.Equal(t, first, second)
}

func TestSuccessPage(t *testing.T) {
	p := sample()[1]
	_, body := render(t, PageSuccess, payment.Outcome{
		Kind:     payment.KindSuccess,
		Title:    "Payment Successful!",
		Message:  "Your transaction has been processed.",
		Payment:  &p,
		Settling: true,
	})

	assert.Contains(t, body, "Payment Successful!")
	assert.Contains(t, body, "25.50 CHF")
	assert.Contains(t, body, "Coffee beans")
	assert.Contains(t, body, "may still be confirming")
}

func TestSuccessPageWithoutDetail(t *testing.T) {
	_, body := render(t, PageSuccess, payment.Outcome{
		Kind:    payment.KindSuccess,
		Title:   "Payment Successful!",
		Message: "Your transaction has been processed.",
	})

	assert.Contains(t, body, "Your transaction has been processed.")
	assert.NotContains(t, body, "Transaction ID")
}

func TestErrorPageEscapesReason(t *testing.T) {
	_, body := render(t, PageError, payment.Outcome{
		Kind:    payment.KindError,
		Title:   "Payment Failed",
		Message: "<script>alert(1)</script>",
	})

	assert.Contains(t, body, "Payment Failed")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestOopsAndNotFound(t *testing.T) {
	_, body := render(t, PageOops, Oops{RequestID: "req-1", Retry: "/"})
	assert.Contains(t, body, "Something went wrong")
	assert.Contains(t, body, "Try again")
	assert.Contains(t, body, "req-1")

	_, body = render(t, PageNotFound, NotFound{Message: "Payment not found"})
	assert.Contains(t, body, "Payment not found")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	err = r.Render(httptest.NewRecorder(), http.StatusOK, "nope", nil)
	assert.Error(t, err)
}
