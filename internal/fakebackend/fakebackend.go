// Package fakebackend is an in-memory stand-in for the payments backend. It
// speaks the same HTTP/JSON contract as the real service so the front end
// can run and be tested without a database or provider account.
package fakebackend

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/example/datatrans-payment-demo/internal/payment"
)

type Options struct {
	// PayURL is the hosted payment page base; sessions point at PayURL/v1/start/{id}.
	PayURL string
	// FailRate in [0,1] makes session creation fail like an upstream provider error.
	FailRate float64
	// Latency adds a random delay up to this long to session creation.
	Latency time.Duration
	Now     func() time.Time
}

// Delivery is a webhook exactly as the backend received it.
type Delivery struct {
	Body        []byte
	ContentType string
	Signature   string
}

type Server struct {
	opts   Options
	router *mux.Router

	mu         sync.Mutex
	nextID     int64
	payments   map[string]*payment.Payment
	deliveries []Delivery
	initCalls  []payment.CreateSessionRequest
}

// webhook statuses the backend accepts; anything else leaves the record alone.
var webhookStatuses = map[string]payment.Status{
	"authorized":  payment.StatusAuthorized,
	"settled":     payment.StatusSettled,
	"canceled":    payment.StatusCanceled,
	"failed":      payment.StatusFailed,
	"transmitted": payment.StatusSettled,
}

func New(opts Options) *Server {
	if opts.PayURL == "" {
		opts.PayURL = "https://pay.sandbox.datatrans.com"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		opts:     opts,
		router:   mux.NewRouter(),
		payments: make(map[string]*payment.Payment),
	}
	s.router.HandleFunc("/api/payments/init", s.handleInit).Methods(http.MethodPost)
	s.router.HandleFunc("/api/payments/webhook", s.handleWebhook).Methods(http.MethodPost)
	s.router.HandleFunc("/api/payments", s.handleList).Methods(http.MethodGet)
	s.router.HandleFunc("/api/payments/{transactionId}", s.handleGet).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed stores p as if it had been created earlier.
func (s *Server) Seed(p payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if p.ID == 0 {
		p.ID = s.nextID
	}
	s.payments[p.TransactionID] = &p
}

func (s *Server) Deliveries() []Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Delivery(nil), s.deliveries...)
}

func (s *Server) InitCalls() []payment.CreateSessionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]payment.CreateSessionRequest(nil), s.initCalls...)
}

type initRequest struct {
	Amount          *int64 `json:"amount"`
	Currency        string `json:"currency"`
	ReferenceNumber string `json:"reference_number"`
	Description     string `json:"description"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var in initRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Amount == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "amount"}, "msg": "field required"}},
		})
		return
	}
	if in.Currency == "" {
		in.Currency = payment.DefaultCurrency
	}
	if s.opts.Latency > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(s.opts.Latency))))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initCalls = append(s.initCalls, payment.CreateSessionRequest{
		Amount: *in.Amount, Currency: in.Currency, Description: in.Description,
	})

	if s.opts.FailRate > 0 && rand.Float64() < s.opts.FailRate {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"detail": "Datatrans error: simulated upstream failure",
		})
		return
	}

	now := s.opts.Now().UTC()
	ref := in.ReferenceNumber
	if ref == "" {
		ref = fmt.Sprintf("REF-%d", now.Unix())
	}
	s.nextID++
	p := &payment.Payment{
		ID:              s.nextID,
		TransactionID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		ReferenceNumber: ref,
		Amount:          *in.Amount,
		Currency:        in.Currency,
		Description:     in.Description,
		Status:          payment.StatusInitialized,
		CreatedAt:       now.Format("2006-01-02T15:04:05.000000"),
		UpdatedAt:       now.Format("2006-01-02T15:04:05.000000"),
	}
	s.payments[p.TransactionID] = p

	writeJSON(w, http.StatusOK, payment.Session{
		TransactionID:  p.TransactionID,
		PaymentPageURL: strings.TrimRight(s.opts.PayURL, "/") + "/v1/start/" + p.TransactionID,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := intQuery(r, "skip", 0), intQuery(r, "limit", 50)

	s.mu.Lock()
	out := make([]payment.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, *p)
	}
	s.mu.Unlock()

	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["transactionId"]

	s.mu.Lock()
	p, ok := s.payments[id]
	var cp payment.Payment
	if ok {
		cp = *p
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Transaction not found"})
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, Delivery{
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
		Signature:   r.Header.Get(payment.SignatureHeader),
	})

	var data struct {
		TransactionID string `json:"transactionId"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid JSON"})
		return
	}
	if data.TransactionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Missing transactionId"})
		return
	}
	if p, ok := s.payments[data.TransactionID]; ok {
		if st, known := webhookStatuses[strings.ToLower(data.Status)]; known {
			p.Status = st
			p.UpdatedAt = s.opts.Now().UTC().Format("2006-01-02T15:04:05.000000")
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func intQuery(r *http.Request, key string, def int) int {
	var n int
	if _, err := fmt.Sscanf(r.URL.Query().Get(key), "%d", &n); err != nil || n < 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
