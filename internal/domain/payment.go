package domain

// ============================================================
// Admin API payloads
// ============================================================

// Known payment statuses. The API treats status as an open string, so
// anything else is passed through untouched.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// PaymentRecord is one payment as reported by GET /api/admin/payments.
// Missing amounts decode to 0; missing ids decode to null.
type PaymentRecord struct {
	ID            ID      `json:"id"`
	UserID        ID      `json:"user_id"`
	Username      string  `json:"username,omitempty"`
	PayMethod     string  `json:"pay_method,omitempty"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	ReserveAmount float64 `json:"reserve_amount"`
	NetAmount     float64 `json:"net_amount"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// PaymentsPage is the envelope returned by the payments endpoint.
type PaymentsPage struct {
	Items []PaymentRecord `json:"items"`
}

// FinanceSummary is returned by GET /api/admin/finance-summary.
// Sub-aggregates may be absent; renderers treat nil as all zeros.
type FinanceSummary struct {
	Reserve   *ReserveTotals  `json:"reserve,omitempty"`
	Approvals *ApprovalCounts `json:"approvals,omitempty"`
	Investors *InvestorTotals `json:"investors,omitempty"`
}

// ReserveTotals aggregates payment amounts and the 49% reserve split.
type ReserveTotals struct {
	TotalPayments int64   `json:"total_payments"`
	TotalAmount   float64 `json:"total_amount"`
	TotalReserve  float64 `json:"total_reserve"`
	TotalNet      float64 `json:"total_net"`
}

// ApprovalCounts counts payments per review status.
type ApprovalCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// InvestorTotals aggregates investor activity.
type InvestorTotals struct {
	ApprovedInvestors int64   `json:"approved_investors"`
	TotalInvestors    int64   `json:"total_investors"`
	TotalAmount       float64 `json:"total_amount"`
	AvgTicket         float64 `json:"avg_ticket"`
}

// ============================================================
// Approved users index
// ============================================================

// ApprovedUsersIndex maps a user id to the first approved payment seen for
// that user. Later approved payments for the same user are ignored.
// Iteration follows insertion order.
type ApprovedUsersIndex struct {
	order  []ID
	byUser map[ID]PaymentRecord
}

// NewApprovedUsersIndex creates an empty index.
func NewApprovedUsersIndex() *ApprovedUsersIndex {
	return &ApprovedUsersIndex{byUser: make(map[ID]PaymentRecord)}
}

// Add records p if its user has no entry yet. It reports whether p was kept.
func (idx *ApprovedUsersIndex) Add(p PaymentRecord) bool {
	if _, ok := idx.byUser[p.UserID]; ok {
		return false
	}
	idx.byUser[p.UserID] = p
	idx.order = append(idx.order, p.UserID)
	return true
}

// Len returns the number of distinct users.
func (idx *ApprovedUsersIndex) Len() int {
	return len(idx.order)
}

// Get returns the representative payment for a user.
func (idx *ApprovedUsersIndex) Get(userID ID) (PaymentRecord, bool) {
	p, ok := idx.byUser[userID]
	return p, ok
}

// Entries returns the representative payments in insertion order.
func (idx *ApprovedUsersIndex) Entries() []PaymentRecord {
	out := make([]PaymentRecord, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.byUser[id])
	}
	return out
}
