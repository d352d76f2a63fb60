// Package rules holds the form validation rules shared by the wizard, the
// repayment forms and the HTTP binders.
package rules

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Zone is the business calendar that date-only inputs are read in.
var Zone = loadZone("Asia/Kolkata")

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// ParseDate reads a YYYY-MM-DD value as midnight in Zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Zone)
}

var (
	ReMobile        = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	RePAN           = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ReIFSC          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	RePincode       = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	ReAccountNumber = regexp.MustCompile(`^[0-9]{9,18}$`)
	ReUTR           = regexp.MustCompile(`^[A-Za-z0-9]{12,22}$`)
	ReCardLast4     = regexp.MustCompile(`^[0-9]{4}$`)
	ReChequeNumber  = regexp.MustCompile(`^[0-9]{6}$`)
)

var (
	Mobile        = validation.Match(ReMobile).Error("must be a valid 10-digit mobile number")
	PAN           = validation.Match(RePAN).Error("must be a valid PAN (e.g. ABCDE1234F)")
	IFSC          = validation.Match(ReIFSC).Error("must be a valid IFSC code")
	Pincode       = validation.Match(RePincode).Error("must be a valid 6-digit pincode")
	AccountNumber = validation.Match(ReAccountNumber).Error("must be 9 to 18 digits")
	UTR           = validation.Match(ReUTR).Error("must be 12 to 22 letters or digits")
	CardLast4     = validation.Match(ReCardLast4).Error("must be exactly 4 digits")
	ChequeNumber  = validation.Match(ReChequeNumber).Error("must be exactly 6 digits")
)

func asDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	}
	return decimal.Zero, false
}

// Positive requires a decimal > 0.
func Positive() validation.Rule {
	return validation.By(func(value any) error {
		d, ok := asDecimal(value)
		if !ok {
			return nil
		}
		if !d.IsPositive() {
			return errors.New("must be greater than 0")
		}
		return nil
	})
}

// MaxPlaces rejects decimals with more than n fractional digits.
func MaxPlaces(n int32) validation.Rule {
	return validation.By(func(value any) error {
		d, ok := asDecimal(value)
		if !ok {
			return nil
		}
		if !d.Equal(d.Truncate(n)) {
			return errors.New("must have at most " + strconv.Itoa(int(n)) + " decimal places")
		}
		return nil
	})
}

// Between checks min <= value <= max.
func Between(min, max decimal.Decimal) validation.Rule {
	return validation.By(func(value any) error {
		d, ok := asDecimal(value)
		if !ok {
			return nil
		}
		if d.LessThan(min) || d.GreaterThan(max) {
			return errors.New("must be between " + min.StringFixed(0) + " and " + max.StringFixed(0))
		}
		return nil
	})
}

// AtMost checks value <= max; msg names the limit for the user.
func AtMost(max decimal.Decimal, msg string) validation.Rule {
	return validation.By(func(value any) error {
		d, ok := asDecimal(value)
		if !ok {
			return nil
		}
		if d.GreaterThan(max) {
			return errors.New(msg)
		}
		return nil
	})
}

// NotFuture accepts a time.Time or a YYYY-MM-DD string.
func NotFuture(now time.Time) validation.Rule {
	return validation.By(func(value any) error {
		var t time.Time
		switch v := value.(type) {
		case time.Time:
			t = v
		case string:
			if v == "" {
				return nil
			}
			p, err := ParseDate(v)
			if err != nil {
				return errors.New("must be a date (YYYY-MM-DD)")
			}
			// whole-day precision for date-only inputs
			if p.After(truncateDay(now)) {
				return errors.New("must not be in the future")
			}
			return nil
		default:
			return nil
		}
		if t.IsZero() {
			return nil
		}
		if t.After(now) {
			return errors.New("must not be in the future")
		}
		return nil
	})
}

// Date requires YYYY-MM-DD.
var Date = validation.Date(DateLayout).Error("must be a date (YYYY-MM-DD)")

// AgeBetween checks a YYYY-MM-DD date of birth against an inclusive age range.
func AgeBetween(now time.Time, min, max int) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		dob, err := ParseDate(s)
		if err != nil {
			return errors.New("must be a date (YYYY-MM-DD)")
		}
		age := Age(dob, now.In(Zone))
		if age < min || age > max {
			return errors.New("age must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max))
		}
		return nil
	})
}

// Age in completed years on the given day.
func Age(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		years--
	}
	return years
}

// truncateDay is midnight of t's calendar day in Zone.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.In(Zone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Zone)
}

// Decimal parses a string form value and applies decimal rules to it.
func Decimal(rs ...validation.Rule) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return errors.New("must be a number")
		}
		return validation.Validate(d, rs...)
	})
}

// IntBetween parses a string form value as an integer in [min, max].
func IntBetween(min, max int) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("must be a whole number")
		}
		if n < min || n > max {
			return errors.New("must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max))
		}
		return nil
	})
}
