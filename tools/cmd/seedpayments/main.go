// tools/cmd/seedpayments/main.go
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/example/datatrans-payment-demo/internal/config"
	"github.com/example/datatrans-payment-demo/internal/logging"
	"github.com/example/datatrans-payment-demo/internal/payment"
	"github.com/example/datatrans-payment-demo/services/web/client"
)

var finalStatuses = []payment.Status{
	payment.StatusAuthorized,
	payment.StatusSettled,
	payment.StatusCanceled,
	payment.StatusFailed,
}

func main() {
	n := flag.Int("n", 10, "number of payment sessions to create")
	backendURL := flag.String("backend", "http://localhost:8000", "payments backend base URL")
	settle := flag.Bool("settle", false, "send a webhook with a random final status for every session")
	out := flag.String("out", "", "optional CSV file listing the created sessions")
	flag.Parse()

	log := logging.Setup(config.Log{Level: "info", Format: "text", Prefix: "seed"})
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	backend := client.New(*backendURL, 10*time.Second)
	initiator := payment.NewInitiator(backend, log)
	relay := payment.NewRelay(backend, log)

	var w *csv.Writer
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Error("Create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = csv.NewWriter(f)
		defer w.Flush()
		_ = w.Write([]string{"transaction_id", "amount", "currency", "status", "payment_page_url"})
	}

	ctx := context.Background()
	created := 0
	for i := 0; i < *n; i++ {
		in := randomInput(rnd, i+1)
		nav := initiator.Initiate(ctx, in)
		if nav.Failed() {
			log.Warn("Session not created", "amount", in.Amount, "currency", in.Currency, "reason", nav.Reason)
			continue
		}
		created++

		status := payment.StatusInitialized
		if *settle {
			status = finalStatuses[rnd.Intn(len(finalStatuses))]
			reply := relay.Forward(ctx, payment.WebhookDelivery{Body: webhookBody(nav.TransactionID, status)})
			if reply.StatusCode >= 300 {
				log.Warn("Webhook not accepted", "transaction_id", nav.TransactionID, "status", reply.StatusCode)
			}
		}
		if w != nil {
			_ = w.Write([]string{nav.TransactionID, in.Amount, in.Currency, string(status), nav.Location})
		}
	}
	log.Info("Seeding done", "requested", *n, "created", created)
}

// randomInput draws an amount between 1.00 and 1000.00 and an offered currency.
func randomInput(rnd *rand.Rand, seq int) payment.InitInput {
	cents := 100 + rnd.Int63n(99_901)
	return payment.InitInput{
		Amount:      payment.FormatMajor(cents),
		Currency:    payment.Currencies[rnd.Intn(len(payment.Currencies))],
		Description: fmt.Sprintf("Seed order %04d", seq),
	}
}

func webhookBody(transactionID string, status payment.Status) []byte {
	b, _ := json.Marshal(map[string]string{
		"transactionId": transactionID,
		"status":        string(status),
	})
	return b
}

