package http

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/repayment"
	"loan-admin-dashboard/internal/domain/rules"
)

// Dates are shown in the business's local time.
var displayZone = rules.Zone

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":             money,
		"moneyPtr":          moneyPtr,
		"date":              formatDate,
		"datetime":          formatDateTime,
		"today":             func() string { return time.Now().In(displayZone).Format(rules.DateLayout) },
		"badge":             badgeClass,
		"idemKey":           uuid.NewString,
		"pageURL":           pageURL,
		"add":               func(a, b int) int { return a + b },
		"intOr":             intOr,
		"loanStatuses":      func() []loan.Status { return loan.Statuses },
		"repaymentStatuses": func() []repayment.Status { return repayment.Statuses },
		"paymentModes":      func() []repayment.Mode { return repayment.Modes },
		"docTypes":          func() []borrower.DocType { return borrower.DocTypes },
		"genders":           func() []borrower.Gender { return borrower.Genders },
	}
}

// money renders rupees with Indian digit grouping: ₹12,34,567.50.
func money(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	out := "₹" + grouped + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func moneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return money(*d)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(displayZone).Format("02 Jan 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(displayZone).Format("02 Jan 2006 15:04")
}

// badgeClass maps any status enum to a CSS modifier.
func badgeClass(status any) string {
	var s string
	switch v := status.(type) {
	case loan.Status:
		s = string(v)
	case repayment.Status:
		s = string(v)
	case borrower.DocStatus:
		s = string(v)
	case string:
		s = v
	}
	switch s {
	case "APPROVED", "APPROVED_WITH_CONDITION", "DISBURSED", "PAID", "VERIFIED", "READY_FOR_DISBURSAL":
		return "badge-ok"
	case "REJECTED", "OVERDUE":
		return "badge-bad"
	case "IN_REVIEW", "ESIGN_PENDING", "PARTIAL":
		return "badge-warn"
	}
	return "badge-neutral"
}

// pageURL keeps the current filters and swaps the page number.
func pageURL(path string, q url.Values, page int) string {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set("page", strconv.Itoa(page))
	return path + "?" + out.Encode()
}
