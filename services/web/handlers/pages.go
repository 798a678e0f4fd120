// services/web/handlers/pages.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/example/datatrans-payment-demo/internal/payment"
	perr "github.com/example/datatrans-payment-demo/pkg/errors"
	"github.com/example/datatrans-payment-demo/services/web/views"
)

// Dashboard renders the payment form and a fresh transaction list.
func Dashboard(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Backend.ListPayments(r.Context(), payment.ListOptions{})
		if err != nil {
			d.fail(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		d.render(w, r, http.StatusOK, views.PageDashboard, views.NewDashboard(list))
	}
}

// Refresh drops whatever the browser holds for the dashboard and sends it back there.
func Refresh(_ Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Initiate handles the payment form. The browser always ends up on a 303:
// the hosted payment page, or the error outcome.
func Initiate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav := d.Initiator.Initiate(r.Context(), payment.InitInput{
			Amount:      r.PostFormValue("amount"),
			Currency:    r.PostFormValue("currency"),
			Description: r.PostFormValue("description"),
		})
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, nav.Location, http.StatusSeeOther)
	}
}

var outcomePages = map[payment.Kind]string{
	payment.KindSuccess: views.PageSuccess,
	payment.KindCancel:  views.PageCancel,
	payment.KindError:   views.PageError,
}

// Outcome renders the page the provider redirects the browser back to.
func Outcome(d Deps, kind payment.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := d.Resolver.Resolve(r.Context(), payment.ReturnFromQuery(kind, r.URL.Query()))
		w.Header().Set("Cache-Control", "no-store")
		d.render(w, r, http.StatusOK, outcomePages[out.Kind], out)
	}
}

// PaymentDetail is the standalone lookup page; a missing transaction is a 404 here.
func PaymentDetail(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["transactionId"]
		p, err := d.Backend.GetPayment(r.Context(), id)
		if perr.HasCode(err, perr.CodeNotFound) {
			d.render(w, r, http.StatusNotFound, views.PageNotFound, views.NotFound{Message: perr.MessageOf(err)})
			return
		}
		if err != nil {
			d.fail(w, r, err)
			return
		}
		d.render(w, r, http.StatusOK, views.PageDetail, p)
	}
}

func NotFound(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAPI(r) {
			writeProblem(w, r, http.StatusNotFound, "no such route")
			return
		}
		d.render(w, r, http.StatusNotFound, views.PageNotFound, views.NotFound{Message: "Page not found"})
	}
}

// MethodNotAllowed answers a known path hit with the wrong method.
func MethodNotAllowed(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAPI(r) {
			writeProblem(w, r, http.StatusMethodNotAllowed, r.Method+" is not supported here")
			return
		}
		d.render(w, r, http.StatusMethodNotAllowed, views.PageNotFound, views.NotFound{Message: "Method not allowed"})
	}
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// fail is the page-level catch-all: operators get the error in the log,
// the user gets a generic retry page.
func (d Deps) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if perr.HasCode(err, perr.CodeBackendUnavailable) || perr.HasCode(err, perr.CodeBackendRejected) {
		status = http.StatusBadGateway
	}
	d.Log.ErrorContext(r.Context(), "Page failed",
		"method", r.Method, "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	d.oops(w, r, status)
}

func (d Deps) oops(w http.ResponseWriter, r *http.Request, status int) {
	retry := "/"
	if r.Method == http.MethodGet {
		retry = r.URL.RequestURI()
	}
	d.render(w, r, status, views.PageOops, views.Oops{RequestID: RequestID(r.Context()), Retry: retry})
}

func (d Deps) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := d.Views.Render(w, status, page, data); err != nil {
		d.Log.ErrorContext(r.Context(), "Render failed", "page", page, "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}
