package domain

import "time"

// ============================================================
// Dashboard view models
// ============================================================

// View names, used for logging, metrics and snapshot error slots.
const (
	ViewFinanceSummary = "finance_summary"
	ViewPayments       = "payments"
)

// StatusFilterAll is the filter sentinel meaning "do not filter by status".
const StatusFilterAll = "all"

// MetricLine is one "label: value" line of the metrics panel.
type MetricLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryView is the fixed layout of the metrics panel.
type SummaryView struct {
	Reserve   []MetricLine `json:"reserve"`
	Approvals []MetricLine `json:"approvals"`
	Investors []MetricLine `json:"investors"`
}

// Sections returns the three panel sections in display order.
func (v SummaryView) Sections() [][]MetricLine {
	return [][]MetricLine{v.Reserve, v.Approvals, v.Investors}
}

// PaymentRow is one row of the payments table. Amount columns are already
// formatted with the currency suffix.
type PaymentRow struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	PayMethod string `json:"payMethod"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	Reserve   string `json:"reserve"`
	Net       string `json:"net"`
	CreatedAt string `json:"createdAt"`
}

// Cells returns the row columns in table order.
func (r PaymentRow) Cells() []string {
	return []string{r.ID, r.UserID, r.Username, r.PayMethod, r.Status, r.Amount, r.Reserve, r.Net, r.CreatedAt}
}

// PaymentColumns is the number of columns in the payments table.
const PaymentColumns = 9

// ApprovedUser is one line of the approved-users panel.
type ApprovedUser struct {
	UserID    ID     `json:"userId"`
	PaymentID ID     `json:"paymentId"`
	Line      string `json:"line"`
}

// PaymentsView is everything derived from one payments list: the table,
// the pending list and the de-duplicated approved users.
type PaymentsView struct {
	Rows []PaymentRow `json:"rows"`
	// Placeholder is set, and Rows empty, when there was nothing to show.
	Placeholder   string         `json:"placeholder,omitempty"`
	Pending       []string       `json:"pending"`
	ApprovedUsers []ApprovedUser `json:"approvedUsers"`
}

// Empty reports whether the view is the "no data" placeholder.
func (v PaymentsView) Empty() bool {
	return v.Placeholder != ""
}

// DashboardSnapshot is what the presentation surface currently shows.
type DashboardSnapshot struct {
	Summary           *SummaryView      `json:"summary"`
	Payments          *PaymentsView     `json:"payments"`
	SummaryUpdatedAt  *time.Time        `json:"summaryUpdatedAt,omitempty"`
	PaymentsUpdatedAt *time.Time        `json:"paymentsUpdatedAt,omitempty"`
	Errors            map[string]string `json:"errors,omitempty"`
}

// DashboardResponse is returned by GET /v1/dashboard.
type DashboardResponse struct {
	StatusFilter string `json:"statusFilter"`
	DashboardSnapshot
}

// ============================================================
// Labels
// ============================================================

// Labels holds the user-facing strings used by the renderers.
type Labels struct {
	Currency      string `yaml:"currency" json:"currency"`
	NoName        string `yaml:"no_name" json:"noName"`
	NoData        string `yaml:"no_data" json:"noData"`
	ApprovedNote  string `yaml:"approved_note" json:"approvedNote"`
	TotalPayments string `yaml:"total_payments" json:"totalPayments"`
	TotalAmount   string `yaml:"total_amount" json:"totalAmount"`
	TotalReserve  string `yaml:"total_reserve" json:"totalReserve"`
	TotalNet      string `yaml:"total_net" json:"totalNet"`
	Pending       string `yaml:"pending" json:"pending"`
	Approved      string `yaml:"approved" json:"approved"`
	Rejected      string `yaml:"rejected" json:"rejected"`
	ApprovedInv   string `yaml:"approved_investors" json:"approvedInvestors"`
	TotalInv      string `yaml:"total_investors" json:"totalInvestors"`
	InvAmount     string `yaml:"investors_amount" json:"investorsAmount"`
	AvgTicket     string `yaml:"avg_ticket" json:"avgTicket"`
}

// DefaultLabels returns the Hebrew labels of the production dashboard.
func DefaultLabels() Labels {
	return Labels{
		Currency:      "₪",
		NoName:        "ללא שם",
		NoData:        "אין נתונים להצגה כרגע.",
		ApprovedNote:  "תשלום מאושר",
		TotalPayments: "סה\"כ תשלומים",
		TotalAmount:   "סה\"כ סכום",
		TotalReserve:  "סה\"כ רזרבה (49%)",
		TotalNet:      "סה\"כ נטו",
		Pending:       "Pending",
		Approved:      "Approved",
		Rejected:      "Rejected",
		ApprovedInv:   "משקיעים מאושרים",
		TotalInv:      "סה\"כ משקיעים",
		InvAmount:     "סכום כולל (₪)",
		AvgTicket:     "כרטיס ממוצע (₪)",
	}
}

// Merge returns l with every empty field taken from fallback.
func (l Labels) Merge(fallback Labels) Labels {
	pick := func(v, fb string) string {
		if v == "" {
			return fb
		}
		return v
	}
	return Labels{
		Currency:      pick(l.Currency, fallback.Currency),
		NoName:        pick(l.NoName, fallback.NoName),
		NoData:        pick(l.NoData, fallback.NoData),
		ApprovedNote:  pick(l.ApprovedNote, fallback.ApprovedNote),
		TotalPayments: pick(l.TotalPayments, fallback.TotalPayments),
		TotalAmount:   pick(l.TotalAmount, fallback.TotalAmount),
		TotalReserve:  pick(l.TotalReserve, fallback.TotalReserve),
		TotalNet:      pick(l.TotalNet, fallback.TotalNet),
		Pending:       pick(l.Pending, fallback.Pending),
		Approved:      pick(l.Approved, fallback.Approved),
		Rejected:      pick(l.Rejected, fallback.Rejected),
		ApprovedInv:   pick(l.ApprovedInv, fallback.ApprovedInv),
		TotalInv:      pick(l.TotalInv, fallback.TotalInv),
		InvAmount:     pick(l.InvAmount, fallback.InvAmount),
		AvgTicket:     pick(l.AvgTicket, fallback.AvgTicket),
	}
}
