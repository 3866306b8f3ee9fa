package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/condomaster/condomaster-api/internal/metrics"
	"github.com/condomaster/condomaster-api/internal/model"
)

const (
	senderName  = "Administración CondoMaster"
	sendTimeout = 30 * time.Second
)

var monthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// monthName indexes the list with the stored month as is, so month 1 reads
// "Febrero". Receipts already sent rely on this; out of range gives "".
func monthName(month int) string {
	if month < 0 || month >= len(monthNames) {
		return ""
	}
	return monthNames[month]
}

// Receipt is what a payment confirmation is built from.
type Receipt struct {
	Payment     model.Payment
	HouseNumber string
}

// Notifier composes payment receipts and sends them in the background.
type Notifier struct {
	sender      Sender
	fromAddress string
	printer     *message.Printer
	logger      *slog.Logger
	wg          sync.WaitGroup
}

// NewNotifier builds a notifier sending as fromAddress. locale is a BCP 47
// tag used for amounts; an unparsable tag falls back to Spanish.
func NewNotifier(sender Sender, fromAddress, locale string, logger *slog.Logger) *Notifier {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &Notifier{
		sender:      sender,
		fromAddress: fromAddress,
		printer:     message.NewPrinter(tag),
		logger:      logger,
	}
}

// Enabled reports whether receipts can be sent at all.
func (n *Notifier) Enabled() bool {
	return n != nil && n.fromAddress != "" && n.sender != nil && n.sender.Configured()
}

// Compose renders the receipt addressed to to.
func (n *Notifier) Compose(to string, r Receipt) Message {
	p := r.Payment
	items := p.BreakdownItems()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf(" - %s: $%s", strings.ToUpper(item.Name), n.amount(item.Amount))
	}

	body := fmt.Sprintf("Estimado(a) %s,\n\nSe ha registrado su pago periodo %s %d.\n\n"+
		"Folio: #%s\nTotal: $%s\n\nDetalle desglosado:\n%s\n\n"+
		"Gracias por su compromiso.\nAtentamente,\nCondoMaster ERP Cloud.",
		p.PayerName, monthName(p.Month), p.Year,
		p.VoucherID, n.amount(p.Amount), strings.Join(lines, "\n"))

	return Message{
		FromName:    senderName,
		FromAddress: n.fromAddress,
		To:          to,
		Subject:     fmt.Sprintf("Comprobante Casa %s - Folio #%s", r.HouseNumber, p.VoucherID),
		TextBody:    body,
	}
}

func (n *Notifier) amount(v float64) string {
	return n.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// SendReceipt dispatches the receipt on its own goroutine and returns at
// once. The outcome is only logged and counted.
func (n *Notifier) SendReceipt(to string, r Receipt) {
	if !n.Enabled() {
		return
	}
	msg := n.Compose(to, r)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.sender.Send(ctx, msg); err != nil {
			metrics.RecordReceipt("failed")
			n.logger.Error("send payment receipt", "voucher_id", r.Payment.VoucherID, "error", err)
			return
		}
		metrics.RecordReceipt("sent")
		n.logger.Info("payment receipt sent", "voucher_id", r.Payment.VoucherID)
	}()
}

// Wait blocks until every receipt in flight has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
