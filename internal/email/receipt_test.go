package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/condomaster/condomaster-api/internal/model"
)

type fakeSender struct {
	mu         sync.Mutex
	configured bool
	err        error
	sent       []Message
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) Configured() bool { return f.configured }

func testReceipt() Receipt {
	return Receipt{
		HouseNumber: "12",
		Payment: model.Payment{
			PayerName: "Ana Pérez",
			Year:      2024,
			Month:     2,
			Amount:    45000,
			VoucherID: "A-100",
			Breakdown: []any{
				map[string]any{"name": "Gasto común", "amount": float64(40000), "feeId": "f1"},
				map[string]any{"name": "estacionamiento", "amount": float64(5000)},
			},
		},
	}
}

func TestComposeReceipt(t *testing.T) {
	n := NewNotifier(&fakeSender{configured: true}, "admin@condo.example", "en", slog.Default())
	msg := n.Compose("ana@example.com", testReceipt())

	if msg.To != "ana@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.From() != `=?utf-8?q?Administraci=C3=B3n_CondoMaster?= <admin@condo.example>` {
		t.Errorf("From = %q", msg.From())
	}
	if msg.Subject != "Comprobante Casa 12 - Folio #A-100" {
		t.Errorf("Subject = %q", msg.Subject)
	}

	want := "Estimado(a) Ana Pérez,\n\nSe ha registrado su pago periodo Marzo 2024.\n\n" +
		"Folio: #A-100\nTotal: $45,000\n\nDetalle desglosado:\n" +
		" - GASTO COMÚN: $40,000\n - ESTACIONAMIENTO: $5,000\n\n" +
		"Gracias por su compromiso.\nAtentamente,\nCondoMaster ERP Cloud."
	if msg.TextBody != want {
		t.Errorf("body =\n%s\nwant\n%s", msg.TextBody, want)
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{0, "Enero"},
		{1, "Febrero"},
		{11, "Diciembre"},
		{12, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := monthName(tt.month); got != tt.want {
			t.Errorf("monthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestSendReceiptAsync(t *testing.T) {
	sender := &fakeSender{configured: true}
	n := NewNotifier(sender, "admin@condo.example", "es-CL", slog.Default())

	n.SendReceipt("ana@example.com", testReceipt())
	n.Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0].To != "ana@example.com" {
		t.Errorf("To = %q", sender.sent[0].To)
	}
}

func TestSendReceiptFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sender := &fakeSender{configured: true, err: errors.New("relay down")}
	n := NewNotifier(sender, "admin@condo.example", "es-CL", logger)

	n.SendReceipt("ana@example.com", testReceipt())
	n.Wait()

	if !strings.Contains(buf.String(), "relay down") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestNotifierDisabled(t *testing.T) {
	tests := []struct {
		name   string
		sender Sender
		from   string
	}{
		{"no sender", nil, "admin@condo.example"},
		{"unconfigured sender", &fakeSender{}, "admin@condo.example"},
		{"no from address", &fakeSender{configured: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(tt.sender, tt.from, "es-CL", slog.Default())
			if n.Enabled() {
				t.Fatal("expected Enabled() = false")
			}
			n.SendReceipt("ana@example.com", testReceipt())
			n.Wait()
			if fs, ok := tt.sender.(*fakeSender); ok && len(fs.sent) != 0 {
				t.Errorf("sent %d messages while disabled", len(fs.sent))
			}
		})
	}
}
