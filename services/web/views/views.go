// services/web/views/views.go
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/example/datatrans-payment-demo/internal/payment"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageDashboard = "dashboard"
	PageSuccess   = "success"
	PageCancel    = "cancel"
	PageError     = "error"
	PageDetail    = "detail"
	PageOops      = "oops"
	PageNotFound  = "notfound"
)

var pageNames = []string{
	PageDashboard, PageSuccess, PageCancel, PageError, PageDetail, PageOops, PageNotFound,
}

var funcs = template.FuncMap{
	"badge": payment.BadgeFor,
	"money": payment.FormatMoney,
	"major": payment.FormatMajor,
	"date":  payment.FormatTimestamp,
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the page into a buffer first so a template failure never
// leaves a half-written response behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Dashboard is the payment form plus the transaction list.
type Dashboard struct {
	Currencies      []string
	DefaultCurrency string
	Table           Table
}

func NewDashboard(list []payment.Payment) Dashboard {
	return Dashboard{
		Currencies:      payment.Currencies,
		DefaultCurrency: payment.DefaultCurrency,
		Table:           NewTable(list),
	}
}

type Oops struct {
	RequestID string
	Retry     string
}

type NotFound struct {
	Message string
}
