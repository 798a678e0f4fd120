// Package payment holds the hosted-payment-page flow of the front end:
// starting a session, resolving the browser's return from the provider and
// relaying the provider's webhook. All state is owned by the backend; this
// package only reads it.
package payment

import (
	"context"
	"net/url"
	"strconv"
)

const (
	DefaultCurrency     = "CHF"
	ReasonInvalidAmount = "invalid_amount"
	SignatureHeader     = "Datatrans-Signature"
)

// Currencies offered by the payment form. The backend is the authority on
// what it accepts; this list only drives the UI.
var Currencies = []string{"CHF", "EUR", "USD", "GBP"}

// Payment is a transaction record as returned by the backend.
type Payment struct {
	ID              int64  `json:"id"`
	TransactionID   string `json:"transaction_id"`
	ReferenceNumber string `json:"reference_number"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description,omitempty"`
	Status          Status `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type CreateSessionRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// Session is the backend's answer to a create-session call.
type Session struct {
	TransactionID  string `json:"transaction_id" validate:"required"`
	PaymentPageURL string `json:"payment_page_url" validate:"required,url"`
}

// ListOptions pages the backend list. Zero values leave the backend defaults.
type ListOptions struct {
	Skip  int
	Limit int
}

func (o ListOptions) Query() url.Values {
	q := url.Values{}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

type SessionCreator interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
}

type PaymentFetcher interface {
	GetPayment(ctx context.Context, transactionID string) (*Payment, error)
}

type PaymentLister interface {
	ListPayments(ctx context.Context, opts ListOptions) ([]Payment, error)
}

type WebhookForwarder interface {
	ForwardWebhook(ctx context.Context, d WebhookDelivery) (*WebhookReply, error)
}

// ErrorLocation is the error outcome route carrying reason as a query value.
func ErrorLocation(reason string) string {
	return "/payment/error?" + url.Values{"reason": {reason}}.Encode()
}
