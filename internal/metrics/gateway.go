package metrics

import (
	"context"
	"time"

	"github.com/condomaster/condomaster-api/internal/gateway"
)

// InstrumentGateway wraps gw so every round trip is counted and timed.
func InstrumentGateway(gw gateway.Gateway) gateway.Gateway {
	return &instrumentedGateway{next: gw}
}

type instrumentedGateway struct {
	next gateway.Gateway
}

func (g *instrumentedGateway) Select(ctx context.Context, q gateway.Query) ([]gateway.Row, error) {
	start := time.Now()
	rows, err := g.next.Select(ctx, q)
	recordGatewayOp(q.Table, "select", time.Since(start), err)
	return rows, err
}

func (g *instrumentedGateway) Insert(ctx context.Context, table string, row gateway.Row) ([]gateway.Row, error) {
	start := time.Now()
	rows, err := g.next.Insert(ctx, table, row)
	recordGatewayOp(table, "insert", time.Since(start), err)
	return rows, err
}

func (g *instrumentedGateway) Update(ctx context.Context, table string, values gateway.Row, filters ...gateway.Filter) ([]gateway.Row, error) {
	start := time.Now()
	rows, err := g.next.Update(ctx, table, values, filters...)
	recordGatewayOp(table, "update", time.Since(start), err)
	return rows, err
}

func (g *instrumentedGateway) Delete(ctx context.Context, table string, filters ...gateway.Filter) error {
	start := time.Now()
	err := g.next.Delete(ctx, table, filters...)
	recordGatewayOp(table, "delete", time.Since(start), err)
	return err
}
