// services/web/client/backend.go
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/example/datatrans-payment-demo/internal/payment"
	perr "github.com/example/datatrans-payment-demo/pkg/errors"
	m "github.com/example/datatrans-payment-demo/pkg/metrics"
)

const (
	maxResponseBytes = 4 << 20

	msgUnavailable    = "Payment service is unavailable. Please try again later."
	msgInitFailed     = "Failed to initialize payment"
	msgListFailed     = "Failed to fetch payments"
	msgNotFound       = "Payment not found"
	msgFetchFailed    = "Failed to fetch payment"
	msgRelayForwarded = "Webhook could not be forwarded"
	msgTooLarge       = "Payment service sent an oversized response"
)

// Backend talks to the payments backend over HTTP/JSON. It is the only
// place that knows the backend's routes.
type Backend struct {
	baseURL     string
	http        *http.Client
	validate    *validator.Validate
	maxResponse int64
}

// New returns a client for baseURL. Every call is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Backend {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Backend {
	return &Backend{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        hc,
		validate:    validator.New(),
		maxResponse: maxResponseBytes,
	}
}

// RawResponse is a backend reply passed through without decoding.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// CreateSession calls POST /api/payments/init.
func (b *Backend) CreateSession(ctx context.Context, in payment.CreateSessionRequest) (*payment.Session, error) {
	const op = "create_session"

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, perr.Wrap(perr.CodeValidation, msgInitFailed, err)
	}
	res, err := b.do(ctx, op, http.MethodPost, "/api/payments/init", nil, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}
	if !ok(res.StatusCode) {
		m.IncBackendCall(op, "rejected")
		return nil, perr.New(perr.CodeBackendRejected, detailOf(res.Body, msgInitFailed))
	}

	var sess payment.Session
	if err := json.Unmarshal(res.Body, &sess); err != nil {
		m.IncBackendCall(op, "bad_response")
		return nil, perr.Wrap(perr.CodeBackendRejected, msgInitFailed, fmt.Errorf("decode session: %w", err))
	}
	if err := b.validate.Struct(sess); err != nil {
		m.IncBackendCall(op, "bad_response")
		return nil, perr.Wrap(perr.CodeBackendRejected, msgInitFailed, fmt.Errorf("validate session: %w", err))
	}
	m.IncBackendCall(op, "ok")
	return &sess, nil
}

// ListPayments calls GET /api/payments. Nothing is cached.
func (b *Backend) ListPayments(ctx context.Context, opts payment.ListOptions) ([]payment.Payment, error) {
	const op = "list_payments"

	res, err := b.do(ctx, op, http.MethodGet, "/api/payments", opts.Query(), nil, nil)
	if err != nil {
		return nil, err
	}
	if !ok(res.StatusCode) {
		m.IncBackendCall(op, "rejected")
		return nil, perr.New(perr.CodeBackendRejected, msgListFailed)
	}

	var out []payment.Payment
	if err := json.Unmarshal(res.Body, &out); err != nil {
		m.IncBackendCall(op, "bad_response")
		return nil, perr.Wrap(perr.CodeBackendRejected, msgListFailed, fmt.Errorf("decode payments: %w", err))
	}
	m.IncBackendCall(op, "ok")
	if out == nil {
		out = []payment.Payment{}
	}
	return out, nil
}

// GetPayment calls GET /api/payments/{transactionID}.
func (b *Backend) GetPayment(ctx context.Context, transactionID string) (*payment.Payment, error) {
	const op = "get_payment"

	res, err := b.do(ctx, op, http.MethodGet, PaymentPath(transactionID), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case res.StatusCode == http.StatusNotFound:
		m.IncBackendCall(op, "not_found")
		return nil, perr.New(perr.CodeNotFound, msgNotFound)
	case !ok(res.StatusCode):
		m.IncBackendCall(op, "rejected")
		return nil, perr.New(perr.CodeBackendRejected, msgFetchFailed)
	}

	var p payment.Payment
	if err := json.Unmarshal(res.Body, &p); err != nil {
		m.IncBackendCall(op, "bad_response")
		return nil, perr.Wrap(perr.CodeBackendRejected, msgFetchFailed, fmt.Errorf("decode payment: %w", err))
	}
	m.IncBackendCall(op, "ok")
	return &p, nil
}

// ForwardWebhook posts the delivery to /api/payments/webhook byte for byte
// and returns whatever the backend answered.
func (b *Backend) ForwardWebhook(ctx context.Context, d payment.WebhookDelivery) (*payment.WebhookReply, error) {
	const op = "forward_webhook"

	res, err := b.do(ctx, op, http.MethodPost, "/api/payments/webhook", nil, bytes.NewReader(d.Body), map[string]string{
		"Content-Type":          d.ContentType,
		payment.SignatureHeader: d.Signature,
	})
	if err != nil {
		return nil, perr.Wrap(perr.CodeRelayUpstream, msgRelayForwarded, err)
	}
	m.IncBackendCall(op, strconv.Itoa(res.StatusCode))
	return &payment.WebhookReply{StatusCode: res.StatusCode, Body: res.Body}, nil
}

// Get issues a GET against the backend and returns the raw reply. Only
// transport failures are errors.
func (b *Backend) Get(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return b.do(ctx, "proxy", http.MethodGet, path, query, nil, nil)
}

func (b *Backend) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, headers map[string]string) (*RawResponse, error) {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, perr.Wrap(perr.CodeBackendUnavailable, msgUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		m.IncBackendCall(op, "unavailable")
		return nil, perr.Wrap(perr.CodeBackendUnavailable, msgUnavailable, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxResponse+1))
	if err != nil {
		m.IncBackendCall(op, "unavailable")
		return nil, perr.Wrap(perr.CodeBackendUnavailable, msgUnavailable, fmt.Errorf("read %s %s: %w", method, path, err))
	}
	if int64(len(data)) > b.maxResponse {
		m.IncBackendCall(op, "too_large")
		return nil, perr.Wrap(perr.CodeBackendRejected, msgTooLarge,
			fmt.Errorf("%s %s: response exceeds %d bytes (status %d)", method, path, b.maxResponse, resp.StatusCode))
	}
	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// PaymentPath is the backend route of a single transaction.
func PaymentPath(transactionID string) string {
	return "/api/payments/" + url.PathEscape(transactionID)
}

func ok(status int) bool { return status >= 200 && status < 300 }

// detailOf extracts a string "detail" from an error body. Structured details
// (validation error lists) fall back to def.
func detailOf(body []byte, def string) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return def
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil || s == "" {
		return def
	}
	return s
}
