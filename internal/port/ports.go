// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the admin API client and from the presentation surface.
package port

import (
	"context"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
)

// FinanceSummaryFetcher retrieves the finance summary aggregate.
type FinanceSummaryFetcher interface {
	GetFinanceSummary(ctx context.Context) (*domain.FinanceSummary, error)
}

// PaymentsFetcher lists payments. An empty status means every status.
type PaymentsFetcher interface {
	ListPayments(ctx context.Context, limit int, status string) ([]domain.PaymentRecord, error)
}

// AdminAPI is everything the dashboard needs from the admin API.
type AdminAPI interface {
	FinanceSummaryFetcher
	PaymentsFetcher
}

// CredentialPrompter asks the operator for the admin credential.
// It returns *domain.ErrCancelled when the prompt was dismissed.
type CredentialPrompter interface {
	PromptCredential(message string) (string, error)
}

// Surface is the presentation collaborator. It receives finished view
// models and decides how to show them.
type Surface interface {
	ApplySummary(view domain.SummaryView)
	ApplyPayments(view domain.PaymentsView)
	// RecordFailure notes a failed load for a view without touching what
	// is currently displayed.
	RecordFailure(view string, err error)
}

// SnapshotReader exposes what a surface currently shows.
type SnapshotReader interface {
	Snapshot() domain.DashboardSnapshot
}
