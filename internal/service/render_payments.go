package service

import (
	"fmt"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
)

// RenderPayments derives the payments table, the pending list and the
// approved-users list from payments in a single pass.
//
// An empty list yields only the "no data" placeholder. Pending lines are
// produced per payment; approved users are de-duplicated by user id keeping
// the first approved payment seen, in first-seen order.
func RenderPayments(payments []domain.PaymentRecord, labels domain.Labels, loc *time.Location) domain.PaymentsView {
	view := domain.PaymentsView{
		Rows:          []domain.PaymentRow{},
		Pending:       []string{},
		ApprovedUsers: []domain.ApprovedUser{},
	}

	if len(payments) == 0 {
		view.Placeholder = labels.NoData
		return view
	}

	approved := domain.NewApprovedUsersIndex()
	view.Rows = make([]domain.PaymentRow, 0, len(payments))

	for _, p := range payments {
		view.Rows = append(view.Rows, paymentRow(p, labels, loc))

		switch p.Status {
		case domain.PaymentStatusPending:
			view.Pending = append(view.Pending, pendingLine(p, labels))
		case domain.PaymentStatusApproved:
			approved.Add(p)
		}
	}

	for _, p := range approved.Entries() {
		view.ApprovedUsers = append(view.ApprovedUsers, domain.ApprovedUser{
			UserID:    p.UserID,
			PaymentID: p.ID,
			Line:      approvedLine(p, labels),
		})
	}

	return view
}

func paymentRow(p domain.PaymentRecord, labels domain.Labels, loc *time.Location) domain.PaymentRow {
	return domain.PaymentRow{
		ID:        p.ID.Cell(),
		UserID:    p.UserID.Cell(),
		Username:  p.Username,
		PayMethod: p.PayMethod,
		Status:    p.Status,
		Amount:    formatMoney(p.Amount, labels.Currency),
		Reserve:   formatMoney(p.ReserveAmount, labels.Currency),
		Net:       formatMoney(p.NetAmount, labels.Currency),
		CreatedAt: formatTimestamp(p.CreatedAt, loc),
	}
}

func pendingLine(p domain.PaymentRecord, labels domain.Labels) string {
	return fmt.Sprintf("ID %s – user_id=%s (%s) – %s %s",
		p.ID, p.UserID, orDefault(p.Username, labels.NoName), formatAmount(p.Amount), labels.Currency)
}

func approvedLine(p domain.PaymentRecord, labels domain.Labels) string {
	return fmt.Sprintf("user_id=%s (%s) – %s",
		p.UserID, orDefault(p.Username, labels.NoName), labels.ApprovedNote)
}
