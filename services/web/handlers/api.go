// services/web/handlers/api.go
package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	perr "github.com/example/datatrans-payment-demo/pkg/errors"
	"github.com/example/datatrans-payment-demo/services/web/client"
)

// ListPaymentsAPI proxies the backend list. Only paging parameters are passed on.
func ListPaymentsAPI(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := url.Values{}
		for _, k := range []string{"skip", "limit"} {
			if v := r.URL.Query().Get(k); v != "" {
				q.Set(k, v)
			}
		}
		res, err := d.Backend.Get(r.Context(), "/api/payments", q)
		if err != nil {
			d.proxyFailed(w, r, err)
			return
		}
		writeRaw(w, res)
	}
}

// GetPaymentAPI proxies a single transaction; an unknown id is a 404 problem.
func GetPaymentAPI(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["transactionId"]
		res, err := d.Backend.Get(r.Context(), client.PaymentPath(id), nil)
		if err != nil {
			d.proxyFailed(w, r, err)
			return
		}
		if res.StatusCode == http.StatusNotFound {
			writeProblem(w, r, http.StatusNotFound, "Payment not found")
			return
		}
		writeRaw(w, res)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": ServiceName,
			"ts":      time.Now().UTC(),
		})
	}
}

func (d Deps) proxyFailed(w http.ResponseWriter, r *http.Request, err error) {
	d.Log.ErrorContext(r.Context(), "Backend proxy failed",
		"path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	writeProblem(w, r, http.StatusBadGateway, perr.MessageOf(err))
}

func writeRaw(w http.ResponseWriter, res *client.RawResponse) {
	ct := res.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(res.StatusCode)
	_, _ = w.Write(res.Body)
}
