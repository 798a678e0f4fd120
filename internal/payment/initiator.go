package payment

import (
	"context"
	"log/slog"
	"strings"

	perr "github.com/example/datatrans-payment-demo/pkg/errors"
)

const (
	msgInitFailed = "Failed to initialize payment"
)

// InitInput is the raw form submission.
type InitInput struct {
	Amount      string
	Currency    string
	Description string
}

// Navigation is where the browser goes after a submission. Reason is set
// when Location points at the error outcome.
type Navigation struct {
	Location      string
	TransactionID string
	Reason        string
}

func (n Navigation) Failed() bool { return n.Reason != "" }

type Initiator struct {
	sessions SessionCreator
	log      *slog.Logger
}

func NewInitiator(sessions SessionCreator, log *slog.Logger) *Initiator {
	return &Initiator{sessions: sessions, log: log}
}

// Initiate validates the input, asks the backend for a session and returns
// the hosted payment page as the next location. Every submission creates a
// new backend session; there is no idempotency key.
func (i *Initiator) Initiate(ctx context.Context, in InitInput) Navigation {
	amount, err := ParseMinorUnits(in.Amount)
	if err != nil {
		i.log.Info("Rejected payment amount", "amount", in.Amount, "error", err)
		return Navigation{Location: ErrorLocation(ReasonInvalidAmount), Reason: ReasonInvalidAmount}
	}

	req := CreateSessionRequest{
		Amount:      amount,
		Currency:    normalizeCurrency(in.Currency),
		Description: strings.TrimSpace(in.Description),
	}
	sess, err := i.sessions.CreateSession(ctx, req)
	if err != nil {
		reason := failureReason(err)
		i.log.Error("Create payment session failed",
			"amount", req.Amount, "currency", req.Currency, "reason", reason, "error", err)
		return Navigation{Location: ErrorLocation(reason), Reason: reason}
	}

	i.log.Info("Payment session created",
		"transaction_id", sess.TransactionID, "amount", req.Amount, "currency", req.Currency)
	return Navigation{Location: sess.PaymentPageURL, TransactionID: sess.TransactionID}
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

// failureReason keeps only text the backend client chose to expose; anything
// else collapses to a generic message.
func failureReason(err error) string {
	switch perr.CodeOf(err) {
	case perr.CodeBackendRejected, perr.CodeBackendUnavailable:
		if msg := perr.MessageOf(err); msg != "" {
			return msg
		}
	}
	return msgInitFailed
}
