package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/datatrans-payment-demo/internal/fakebackend"
	"github.com/example/datatrans-payment-demo/internal/payment"
	perr "github.com/example/datatrans-payment-demo/pkg/errors"
)

func newFake(t *testing.T) (*fakebackend.Server, *Backend) {
	t.Helper()
	fake := fakebackend.New(fakebackend.Options{PayURL: "https://pay.test"})
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, New(srv.URL, 2*time.Second)
}

func stub(t *testing.T, status int, body string) *Backend {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestCreateSession(t *testing.T) {
	fake, b := newFake(t)

	sess, err := b.CreateSession(context.Background(), payment.CreateSessionRequest{
		Amount: 2550, Currency: "EUR", Description: "Order 17",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.TransactionID)
	assert.Equal(t, "https://pay.test/v1/start/"+sess.TransactionID, sess.PaymentPageURL)

	calls := fake.InitCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(2550), calls[0].Amount)
	assert.Equal(t, "EUR", calls[0].Currency)
	assert.Equal(t, "Order 17", calls[0].Description)
}

func TestCreateSessionRejected(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"string detail":  {http.StatusBadGateway, `{"detail":"Datatrans error: invalid merchant"}`, "Datatrans error: invalid merchant"},
		"array detail":   {http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","amount"],"msg":"field required"}]}`, "Failed to initialize payment"},
		"no detail":      {http.StatusInternalServerError, `{}`, "Failed to initialize payment"},
		"non json":       {http.StatusInternalServerError, `Internal Server Error`, "Failed to initialize payment"},
		"missing fields": {http.StatusOK, `{"transaction_id":"T1"}`, "Failed to initialize payment"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := stub(t, tc.status, tc.body)

			_, err := b.CreateSession(context.Background(), payment.CreateSessionRequest{Amount: 100, Currency: "CHF"})

			require.Error(t, err)
			assert.Equal(t, perr.CodeBackendRejected, perr.CodeOf(err))
			assert.Equal(t, tc.want, perr.MessageOf(err))
		})
	}
}

func TestBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	b := New(srv.URL, time.Second)

	_, err := b.CreateSession(context.Background(), payment.CreateSessionRequest{Amount: 100, Currency: "CHF"})
	require.Error(t, err)
	assert.Equal(t, perr.CodeBackendUnavailable, perr.CodeOf(err))
	assert.Equal(t, "Payment service is unavailable. Please try again later.", perr.MessageOf(err))

	_, err = b.ListPayments(context.Background(), payment.ListOptions{})
	assert.Equal(t, perr.CodeBackendUnavailable, perr.CodeOf(err))

	_, err = b.ForwardWebhook(context.Background(), payment.WebhookDelivery{Body: []byte(`{}`)})
	assert.Equal(t, perr.CodeRelayUpstream, perr.CodeOf(err))
}

func TestListPayments(t *testing.T) {
	fake, b := newFake(t)

	list, err := b.ListPayments(context.Background(), payment.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, id := range []string{"A", "B", "C"} {
		fake.Seed(payment.Payment{TransactionID: id, Amount: 100, Currency: "CHF", Status: payment.StatusSettled})
	}

	list, err = b.ListPayments(context.Background(), payment.ListOptions{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].TransactionID)
}

func TestListPaymentsSendsPaging(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, time.Second).ListPayments(context.Background(), payment.ListOptions{Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&skip=20", query)
}

func TestListPaymentsRejected(t *testing.T) {
	_, err := stub(t, http.StatusInternalServerError, `{"detail":"db down"}`).
		ListPayments(context.Background(), payment.ListOptions{})

	assert.Equal(t, perr.CodeBackendRejected, perr.CodeOf(err))
	assert.Equal(t, "Failed to fetch payments", perr.MessageOf(err))
}

func TestGetPayment(t *testing.T) {
	fake, b := newFake(t)
	fake.Seed(payment.Payment{
		TransactionID:   "T1",
		ReferenceNumber: "REF-1",
		Amount:          2550,
		Currency:        "EUR",
		Status:          payment.StatusAuthorized,
	})

	p, err := b.GetPayment(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "REF-1", p.ReferenceNumber)
	assert.Equal(t, payment.StatusAuthorized, p.Status)

	_, err = b.GetPayment(context.Background(), "T404")
	assert.Equal(t, perr.CodeNotFound, perr.CodeOf(err))
	assert.Equal(t, "Payment not found", perr.MessageOf(err))
}

func TestForwardWebhookIsByteForByte(t *testing.T) {
	fake, b := newFake(t)
	fake.Seed(payment.Payment{TransactionID: "T1", Status: payment.StatusInitialized})
	body := []byte("{\"transactionId\":\"T1\",  \"status\":\"settled\"}\n")

	reply, err := b.ForwardWebhook(context.Background(), payment.WebhookDelivery{
		Body:        body,
		ContentType: "application/json",
		Signature:   "t=1,s0=abc",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, reply.StatusCode)
	assert.JSONEq(t, `{"received":true}`, string(reply.Body))

	got := fake.Deliveries()
	require.Len(t, got, 1)
	assert.Equal(t, body, got[0].Body)
	assert.Equal(t, "t=1,s0=abc", got[0].Signature)
	assert.Equal(t, "application/json", got[0].ContentType)

	p, err := b.GetPayment(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSettled, p.Status)
}

func TestForwardWebhookKeepsBackendErrors(t *testing.T) {
	_, b := newFake(t)

	reply, err := b.ForwardWebhook(context.Background(), payment.WebhookDelivery{
		Body:        []byte(`{"status":"settled"}`),
		ContentType: "application/json",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, reply.StatusCode)
	assert.JSONEq(t, `{"detail":"Missing transactionId"}`, string(reply.Body))
}

func TestGetProxiesRawReply(t *testing.T) {
	_, b := newFake(t)

	res, err := b.Get(context.Background(), PaymentPath("nope"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.ContentType, "application/json")
	assert.JSONEq(t, `{"detail":"Transaction not found"}`, string(res.Body))
}

func TestOversizedResponseIsAnError(t *testing.T) {
	body := `[` + strings.Repeat(`{"transaction_id":"T"},`, 10) + `{}]`
	b := stub(t, http.StatusOK, body)
	b.maxResponse = int64(len(body)) - 1

	_, err := b.ListPayments(context.Background(), payment.ListOptions{})
	require.Error(t, err)
	assert.Equal(t, perr.CodeBackendRejected, perr.CodeOf(err))
	assert.Equal(t, "Payment service sent an oversized response", perr.MessageOf(err))
	assert.Contains(t, err.Error(), "exceeds")

	_, err = b.ForwardWebhook(context.Background(), payment.WebhookDelivery{Body: []byte(`{}`)})
	assert.Equal(t, perr.CodeRelayUpstream, perr.CodeOf(err))
	assert.Contains(t, err.Error(), "exceeds")

	b.maxResponse = int64(len(body))
	list, err := b.ListPayments(context.Background(), payment.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 11)
}

func TestPaymentPathEscapes(t *testing.T) {
	assert.Equal(t, "/api/payments/a%2Fb", PaymentPath("a/b"))
}
