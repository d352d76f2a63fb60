package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/loan"
)

func TestMoney_IndianGrouping(t *testing.T) {
	cases := map[string]string{
		"0":          "₹0.00",
		"999":        "₹999.00",
		"1000":       "₹1,000.00",
		"99999.5":    "₹99,999.50",
		"100000":     "₹1,00,000.00",
		"1234567.5":  "₹12,34,567.50",
		"123456789":  "₹12,34,56,789.00",
		"-250000.25": "-₹2,50,000.25",
	}
	for in, want := range cases {
		if got := money(decimal.RequireFromString(in)); got != want {
			t.Fatalf("money(%s) = %q, want %q", in, got, want)
		}
	}
	if got := moneyPtr(nil); got != "-" {
		t.Fatalf("moneyPtr(nil) = %q", got)
	}
}

func TestFormatDate_UsesIndiaTime(t *testing.T) {
	ts := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)
	if got := formatDate(ts); got != "01 Apr 2026" {
		t.Fatalf("formatDate = %q", got)
	}
	if got := formatDateTime(ts); got != "01 Apr 2026 01:30" {
		t.Fatalf("formatDateTime = %q", got)
	}
	if got := formatDate(time.Time{}); got != "-" {
		t.Fatalf("zero date = %q", got)
	}
}

func TestBadgeClass(t *testing.T) {
	cases := map[any]string{
		loan.StatusDisbursed: "badge-ok",
		loan.StatusRejected:  "badge-bad",
		"OVERDUE":            "badge-bad",
		loan.StatusInReview:  "badge-warn",
		loan.StatusPending:   "badge-neutral",
	}
	for in, want := range cases {
		if got := badgeClass(in); got != want {
			t.Fatalf("badgeClass(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPageURL_KeepsFilters(t *testing.T) {
	q := url.Values{"status": {"OVERDUE"}, "page": {"1"}}
	got := pageURL("/repayments", q, 3)
	if got != "/repayments?page=3&status=OVERDUE" {
		t.Fatalf("pageURL = %q", got)
	}
	if q.Get("page") != "1" {
		t.Fatalf("pageURL must not modify the caller's values")
	}
}

func TestFieldLabel(t *testing.T) {
	cases := map[string]string{
		"":                   "Form",
		"_":                  "Form",
		"email":              "Email",
		"upi_transaction_id": "Upi transaction id",
		"upiTransactionId":   "Upi transaction id",
		"personal.dob":       "Personal dob",
	}
	for in, want := range cases {
		if got := fieldLabel(in); got != want {
			t.Fatalf("fieldLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                     "/applications",
		"/repayments?page=2":   "/repayments?page=2",
		"https://evil.example": "/applications",
		"//evil.example":       "/applications",
		"/\\evil.example":      "/applications",
		"borrowers":            "/applications",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBackURL(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(stdhttp.MethodPost, "/borrowers/b1/flags", nil)
	req.Header.Set("Referer", "http://example.com/borrowers/b1?tab=kyc")
	c := e.NewContext(req, httptest.NewRecorder())
	if got := backURL(c); got != "/borrowers/b1?tab=kyc" {
		t.Fatalf("same-origin referer: got %q", got)
	}

	req.Header.Set("Referer", "http://evil.example/phish")
	c = e.NewContext(req, httptest.NewRecorder())
	if got := backURL(c); got != "/" {
		t.Fatalf("foreign referer: got %q", got)
	}

	setBack(c, "/repayments/r1")
	if got := backURL(c); got != "/repayments/r1" {
		t.Fatalf("explicit back: got %q", got)
	}
}

func TestWrapHTTPError(t *testing.T) {
	cases := []struct {
		code int
		want apperror.Type
	}{
		{stdhttp.StatusBadRequest, apperror.TypeValidation},
		{stdhttp.StatusRequestEntityTooLarge, apperror.TypeValidation},
		{stdhttp.StatusUnauthorized, apperror.TypeUnauthorized},
		{stdhttp.StatusForbidden, apperror.TypeForbidden},
		{stdhttp.StatusNotFound, apperror.TypeNotFound},
		{stdhttp.StatusMethodNotAllowed, apperror.TypeNotFound},
		{stdhttp.StatusConflict, apperror.TypeConflict},
		{stdhttp.StatusBadGateway, apperror.TypeExternal},
		{stdhttp.StatusServiceUnavailable, apperror.TypeUnavailable},
		{stdhttp.StatusTeapot, apperror.TypeInternal},
	}
	for _, tc := range cases {
		got := wrapHTTPError(echo.NewHTTPError(tc.code))
		if got.Type != tc.want {
			t.Fatalf("code %d: got %s, want %s", tc.code, got.Type, tc.want)
		}
	}

	got := wrapHTTPError(echo.NewHTTPError(stdhttp.StatusForbidden, "Your form expired, please try again"))
	if got.Message != "Your form expired, please try again" {
		t.Fatalf("message not kept: %q", got.Message)
	}
}
