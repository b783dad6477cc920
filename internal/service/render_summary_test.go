package service_test

import (
	"testing"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/service"
)

func TestRenderSummary_MissingFieldsDefaultToZero(t *testing.T) {
	for name, summary := range map[string]*domain.FinanceSummary{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			view := service.RenderSummary(summary, domain.DefaultLabels())

			if len(view.Reserve) != 4 || len(view.Approvals) != 3 || len(view.Investors) != 4 {
				t.Fatalf("unexpected layout: %+v", view)
			}
			money := []string{
				view.Reserve[1].Value, view.Reserve[2].Value, view.Reserve[3].Value,
				view.Investors[2].Value, view.Investors[3].Value,
			}
			for _, v := range money {
				if v != "0.00 ₪" {
					t.Errorf("expected 0.00 ₪, got %q", v)
				}
			}
			counts := []string{
				view.Reserve[0].Value,
				view.Approvals[0].Value, view.Approvals[1].Value, view.Approvals[2].Value,
				view.Investors[0].Value, view.Investors[1].Value,
			}
			for _, v := range counts {
				if v != "0" {
					t.Errorf("expected 0, got %q", v)
				}
			}
		})
	}
}

func TestRenderSummary_Values(t *testing.T) {
	summary := &domain.FinanceSummary{
		Reserve: &domain.ReserveTotals{
			TotalPayments: 12,
			TotalAmount:   1000,
			TotalReserve:  490,
			TotalNet:      510,
		},
		Approvals: &domain.ApprovalCounts{Pending: 2, Approved: 9, Rejected: 1},
		Investors: &domain.InvestorTotals{
			ApprovedInvestors: 4,
			TotalInvestors:    6,
			TotalAmount:       2500.5,
			AvgTicket:         625.125,
		},
	}
	labels := domain.DefaultLabels()

	view := service.RenderSummary(summary, labels)

	want := [][]domain.MetricLine{
		{
			{Label: labels.TotalPayments, Value: "12"},
			{Label: labels.TotalAmount, Value: "1000.00 ₪"},
			{Label: labels.TotalReserve, Value: "490.00 ₪"},
			{Label: labels.TotalNet, Value: "510.00 ₪"},
		},
		{
			{Label: labels.Pending, Value: "2"},
			{Label: labels.Approved, Value: "9"},
			{Label: labels.Rejected, Value: "1"},
		},
		{
			{Label: labels.ApprovedInv, Value: "4"},
			{Label: labels.TotalInv, Value: "6"},
			{Label: labels.InvAmount, Value: "2500.50 ₪"},
			{Label: labels.AvgTicket, Value: "625.13 ₪"},
		},
	}

	for i, section := range view.Sections() {
		if len(section) != len(want[i]) {
			t.Fatalf("section %d: expected %d lines, got %d", i, len(want[i]), len(section))
		}
		for j := range section {
			if section[j] != want[i][j] {
				t.Errorf("section %d line %d: expected %+v, got %+v", i, j, want[i][j], section[j])
			}
		}
	}
}

func TestRenderSummary_PartialAggregates(t *testing.T) {
	summary := &domain.FinanceSummary{
		Approvals: &domain.ApprovalCounts{Approved: 3},
	}

	view := service.RenderSummary(summary, domain.DefaultLabels())

	if view.Approvals[1].Value != "3" {
		t.Errorf("expected approved 3, got %q", view.Approvals[1].Value)
	}
	if view.Reserve[1].Value != "0.00 ₪" {
		t.Errorf("expected missing reserve to render zero, got %q", view.Reserve[1].Value)
	}
}
