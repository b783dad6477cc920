package surface

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
)

const (
	// DefaultWidth is the separator width of the report.
	DefaultWidth = 80
)

// Terminal prints each applied view to w as a boxed report section.
type Terminal struct {
	mu    sync.Mutex
	w     io.Writer
	width int
}

// NewTerminal creates a terminal surface writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, width: DefaultWidth}
}

// ApplySummary prints the metrics panel.
func (t *Terminal) ApplySummary(view domain.SummaryView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.header("FINANCE SUMMARY")
	for i, section := range view.Sections() {
		if i > 0 {
			t.boxSeparator()
		}
		for _, line := range section {
			fmt.Fprintf(t.w, "│  %-24s %s\n", line.Label+":", line.Value)
		}
	}
}

// ApplyPayments prints the payments table, then the pending and approved lists.
func (t *Terminal) ApplyPayments(view domain.PaymentsView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.header("PAYMENTS")
	if view.Empty() {
		fmt.Fprintln(t.w, view.Placeholder)
		return
	}

	fmt.Fprintf(t.w, "%-6s %-12s %-16s %-10s %-9s %12s %12s %12s  %s\n",
		"ID", "USER", "USERNAME", "METHOD", "STATUS", "AMOUNT", "RESERVE", "NET", "CREATED")
	for _, r := range view.Rows {
		fmt.Fprintf(t.w, "%-6s %-12s %-16s %-10s %-9s %12s %12s %12s  %s\n",
			r.ID, r.UserID, r.Username, r.PayMethod, r.Status, r.Amount, r.Reserve, r.Net, r.CreatedAt)
	}

	if len(view.Pending) > 0 {
		t.header(fmt.Sprintf("PENDING (%d)", len(view.Pending)))
		for i, line := range view.Pending {
			fmt.Fprintln(t.w, boxPrefix(i == len(view.Pending)-1)+line)
		}
	}

	if len(view.ApprovedUsers) > 0 {
		t.header(fmt.Sprintf("APPROVED USERS (%d)", len(view.ApprovedUsers)))
		for i, u := range view.ApprovedUsers {
			fmt.Fprintln(t.w, boxPrefix(i == len(view.ApprovedUsers)-1)+u.Line)
		}
	}
}

// RecordFailure prints a one-line notice; nothing already printed changes.
func (t *Terminal) RecordFailure(view string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "\n! %s unavailable: %v\n", view, err)
}

func (t *Terminal) header(title string) {
	fmt.Fprintln(t.w, "\n"+strings.Repeat("=", t.width))
	fmt.Fprintln(t.w, title)
	fmt.Fprintln(t.w, strings.Repeat("=", t.width))
}

func (t *Terminal) boxSeparator() {
	fmt.Fprintln(t.w, "├"+strings.Repeat("─", t.width-2))
}

// boxPrefix returns the box-drawing prefix for list items.
func boxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}
