package service

import (
	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
)

// RenderSummary maps a finance summary onto the fixed metrics panel layout.
// A nil summary or missing sub-aggregates render as zeros.
func RenderSummary(summary *domain.FinanceSummary, labels domain.Labels) domain.SummaryView {
	var (
		reserve   domain.ReserveTotals
		approvals domain.ApprovalCounts
		investors domain.InvestorTotals
	)
	if summary != nil {
		if summary.Reserve != nil {
			reserve = *summary.Reserve
		}
		if summary.Approvals != nil {
			approvals = *summary.Approvals
		}
		if summary.Investors != nil {
			investors = *summary.Investors
		}
	}

	money := func(v float64) string { return formatMoney(v, labels.Currency) }

	return domain.SummaryView{
		Reserve: []domain.MetricLine{
			{Label: labels.TotalPayments, Value: formatCount(reserve.TotalPayments)},
			{Label: labels.TotalAmount, Value: money(reserve.TotalAmount)},
			{Label: labels.TotalReserve, Value: money(reserve.TotalReserve)},
			{Label: labels.TotalNet, Value: money(reserve.TotalNet)},
		},
		Approvals: []domain.MetricLine{
			{Label: labels.Pending, Value: formatCount(approvals.Pending)},
			{Label: labels.Approved, Value: formatCount(approvals.Approved)},
			{Label: labels.Rejected, Value: formatCount(approvals.Rejected)},
		},
		Investors: []domain.MetricLine{
			{Label: labels.ApprovedInv, Value: formatCount(investors.ApprovedInvestors)},
			{Label: labels.TotalInv, Value: formatCount(investors.TotalInvestors)},
			{Label: labels.InvAmount, Value: money(investors.TotalAmount)},
			{Label: labels.AvgTicket, Value: money(investors.AvgTicket)},
		},
	}
}
