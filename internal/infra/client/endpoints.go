package client

import (
	"context"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// GetFinanceSummary fetches the finance summary aggregate.
func (c *AdminClient) GetFinanceSummary(ctx context.Context) (*domain.FinanceSummary, error) {
	ctx, span := tracer.Start(ctx, "AdminClient.GetFinanceSummary")
	defer span.End()

	var summary domain.FinanceSummary
	if err := c.FetchJSON(ctx, FinanceSummaryPath, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListPayments fetches up to limit payments. An empty status is omitted
// from the query so the server returns every status.
func (c *AdminClient) ListPayments(ctx context.Context, limit int, status string) ([]domain.PaymentRecord, error) {
	ctx, span := tracer.Start(ctx, "AdminClient.ListPayments")
	defer span.End()
	span.SetAttributes(
		attribute.Int("payments.limit", limit),
		attribute.String("payments.status", status),
	)

	var page domain.PaymentsPage
	params := map[string]any{
		"limit":  limit,
		"status": status,
	}
	if err := c.FetchJSON(ctx, PaymentsPath, params, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		return []domain.PaymentRecord{}, nil
	}
	return page.Items, nil
}
