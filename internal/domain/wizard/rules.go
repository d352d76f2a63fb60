package wizard

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/domain/rules"
)

var (
	MinLoanAmount = decimal.NewFromInt(10_000)
	MaxLoanAmount = decimal.NewFromInt(5_000_000)
)

const (
	MinTenureMonths = 3
	MaxTenureMonths = 60
	MinAge          = 18
	MaxAge          = 75
)

func (s BorrowerStep) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Mode, validation.Required, validation.In(BorrowerExisting, BorrowerNew)),
		validation.Field(&s.BorrowerID, validation.When(s.Mode == BorrowerExisting,
			validation.Required.Error("select a borrower"))),
	)
}

func (s PersonalStep) Validate() error { return s.ValidateAt(time.Now()) }

func (s PersonalStep) ValidateAt(now time.Time) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&s.Email, validation.Required, is.EmailFormat),
		validation.Field(&s.Mobile, validation.Required, rules.Mobile),
		validation.Field(&s.DOB, validation.Required, rules.Date, rules.AgeBetween(now, MinAge, MaxAge)),
		validation.Field(&s.Gender, validation.Required, validation.In("MALE", "FEMALE", "OTHER")),
		validation.Field(&s.PAN, validation.Required, rules.PAN),
	)
}

func (s EmploymentStep) Validate() error {
	salaried := s.EmploymentType == EmploymentSalaried
	selfEmployed := s.EmploymentType == EmploymentSelfEmployed
	return validation.ValidateStruct(&s,
		validation.Field(&s.EmploymentType, validation.Required, validation.In(EmploymentSalaried, EmploymentSelfEmployed)),
		validation.Field(&s.CompanyName, validation.When(salaried, validation.Required, validation.Length(2, 150))),
		validation.Field(&s.Designation, validation.When(salaried, validation.Required, validation.Length(2, 100))),
		validation.Field(&s.BusinessName, validation.When(selfEmployed, validation.Required, validation.Length(2, 150))),
		validation.Field(&s.MonthlyIncome, validation.Required, rules.Decimal(rules.Positive(), rules.MaxPlaces(2))),
	)
}

func (s LoanStep) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.LoanAmount, validation.Required,
			rules.Decimal(rules.Between(MinLoanAmount, MaxLoanAmount), rules.MaxPlaces(2))),
		validation.Field(&s.TenureMonths, validation.Required, rules.IntBetween(MinTenureMonths, MaxTenureMonths)),
		validation.Field(&s.Purpose, validation.Required, validation.Length(3, 200)),
	)
}

func (s AddressBankStep) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.AddressLine, validation.Required, validation.Length(5, 200)),
		validation.Field(&s.City, validation.Required, validation.Length(2, 100)),
		validation.Field(&s.State, validation.Required, validation.Length(2, 100)),
		validation.Field(&s.Pincode, validation.Required, rules.Pincode),
		validation.Field(&s.AccountHolder, validation.Required, validation.Length(2, 100)),
		validation.Field(&s.AccountNumber, validation.Required, rules.AccountNumber),
		validation.Field(&s.IFSC, validation.Required, rules.IFSC),
	)
}

// Normalize trims inputs and upper-cases codes before validation.
func (d *Draft) Normalize() {
	trim := func(ps ...*string) {
		for _, p := range ps {
			*p = strings.TrimSpace(*p)
		}
	}
	p := &d.Personal
	trim(&p.Name, &p.Email, &p.Mobile, &p.DOB, &p.Gender, &p.PAN)
	p.PAN = strings.ToUpper(p.PAN)
	p.Email = strings.ToLower(p.Email)

	e := &d.Employment
	trim(&e.EmploymentType, &e.CompanyName, &e.Designation, &e.BusinessName, &e.MonthlyIncome)

	l := &d.Loan
	trim(&l.LoanAmount, &l.TenureMonths, &l.Purpose)
	l.LoanAmount = strings.ReplaceAll(l.LoanAmount, ",", "")

	a := &d.AddressBank
	trim(&a.AddressLine, &a.City, &a.State, &a.Pincode, &a.AccountHolder, &a.AccountNumber, &a.IFSC)
	a.IFSC = strings.ToUpper(a.IFSC)

	trim(&d.Borrower.Mode, &d.Borrower.BorrowerID)
}
