package payment

import (
	"context"
	"log/slog"
	"net/url"

	perr "github.com/example/datatrans-payment-demo/pkg/errors"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindCancel  Kind = "cancel"
	KindError   Kind = "error"
)

const defaultErrorReason = "An unexpected error occurred."

// Return is what the provider hands back when it redirects the browser.
type Return struct {
	Kind          Kind
	TransactionID string
	Reason        string
}

// ReturnFromQuery reads the redirect query. On success the provider's
// datatransTrxId wins over transactionId.
func ReturnFromQuery(kind Kind, q url.Values) Return {
	ret := Return{Kind: kind}
	switch kind {
	case KindSuccess:
		ret.TransactionID = q.Get("datatransTrxId")
		if ret.TransactionID == "" {
			ret.TransactionID = q.Get("transactionId")
		}
	case KindError:
		ret.Reason = q.Get("reason")
	}
	return ret
}

// Outcome is the user-facing result of a return.
type Outcome struct {
	Kind    Kind
	Title   string
	Message string
	// Payment is nil when no id was given or the detail fetch failed.
	Payment *Payment
	// Settling is set when the backend has not yet recorded a final status.
	Settling bool
}

type Resolver struct {
	payments PaymentFetcher
	log      *slog.Logger
}

func NewResolver(payments PaymentFetcher, log *slog.Logger) *Resolver {
	return &Resolver{payments: payments, log: log}
}

// Resolve never fails. The webhook may not have reached the backend yet, and
// a failed detail lookup only drops the detail block from the success page.
func (r *Resolver) Resolve(ctx context.Context, ret Return) Outcome {
	switch ret.Kind {
	case KindSuccess:
		out := Outcome{
			Kind:    KindSuccess,
			Title:   "Payment Successful!",
			Message: "Your transaction has been processed.",
		}
		if ret.TransactionID == "" {
			return out
		}
		p, err := r.payments.GetPayment(ctx, ret.TransactionID)
		if err != nil {
			level := slog.LevelWarn
			if perr.HasCode(err, perr.CodeNotFound) {
				level = slog.LevelInfo
			}
			r.log.Log(ctx, level, "Payment detail unavailable on success page",
				"transaction_id", ret.TransactionID, "error", err)
			return out
		}
		out.Payment = p
		out.Settling = p.Status.Settling()
		return out

	case KindCancel:
		return Outcome{
			Kind:    KindCancel,
			Title:   "Payment Cancelled",
			Message: "You cancelled the payment. No charge was made.",
		}

	default:
		reason := ret.Reason
		if reason == "" {
			reason = defaultErrorReason
		}
		return Outcome{Kind: KindError, Title: "Payment Failed", Message: reason}
	}
}
