package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const paymentsTable = "payments"

var paymentFields = []field{
	{api: "houseId", store: "house_id"},
	{api: "year", store: "year", conv: intValue},
	{api: "month", store: "month", conv: intValue},
	{api: "payerName", store: "payer_name"},
	{api: "amount", store: "amount", conv: numberValue},
	{api: "breakdown", store: "breakdown"},
	{api: "date", store: "payment_date"},
	{api: "receiver", store: "receiver"},
	{api: "voucherId", store: "voucher_id"},
	{api: "type", store: "payment_type"},
}

func paymentFromRow(r gateway.Row) model.Payment {
	return model.Payment{
		ID:        r["id"],
		HouseID:   asString(firstTruthy(r, "house_id", "houseId")),
		Year:      asInt(r["year"]),
		Month:     asInt(r["month"]),
		PayerName: stringOr(firstTruthy(r, "payer_name", "payerName"), "Sin Nombre"),
		Amount:    asNumber(firstTruthy(r, "amount")),
		Breakdown: breakdownFrom(r["breakdown"]),
		Date:      asString(firstTruthy(r, "payment_date", "date")),
		Receiver:  r["receiver"],
		VoucherID: asString(firstTruthy(r, "voucher_id", "voucherId")),
		Type:      stringOr(firstTruthy(r, "payment_type", "type"), "Abono / Pago Mensual"),
	}
}

// breakdownFrom passes a stored breakdown list through untouched; anything
// that is not a list becomes an empty one.
func breakdownFrom(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	return list
}

func paymentToRow(body map[string]any) gateway.Row {
	return toRow(body, paymentFields)
}

type PaymentStore struct {
	gw gateway.Gateway
}

func NewPaymentStore(gw gateway.Gateway) *PaymentStore {
	return &PaymentStore{gw: gw}
}

func (s *PaymentStore) List(ctx context.Context) ([]model.Payment, error) {
	rows, err := s.gw.Select(ctx, gateway.From(paymentsTable).OrderBy(gateway.Desc("payment_date")))
	if err != nil {
		return nil, err
	}
	payments := make([]model.Payment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, paymentFromRow(r))
	}
	return payments, nil
}

func (s *PaymentStore) Create(ctx context.Context, body map[string]any) (*model.Payment, error) {
	rows, err := s.gw.Insert(ctx, paymentsTable, paymentToRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	r := gateway.First(rows)
	if r == nil {
		return nil, nil
	}
	p := paymentFromRow(r)
	return &p, nil
}

func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, paymentsTable, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}
