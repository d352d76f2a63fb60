package wizard

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/loan"
)

// Prefill copies an existing borrower's profile into the personal and
// employment steps.
func (d *Draft) Prefill(b *borrower.Borrower) {
	d.Borrower.Mode = BorrowerExisting
	d.Borrower.BorrowerID = b.ID
	d.Borrower.BorrowerName = b.Name
	d.Personal = PersonalStep{
		Name:   b.Name,
		Email:  b.Email,
		Mobile: b.Mobile,
		DOB:    b.DOB,
		Gender: string(b.Gender),
		PAN:    b.PAN,
	}
	d.Employment = EmploymentStep{
		EmploymentType: b.Employment.EmploymentType,
		CompanyName:    b.Employment.CompanyName,
		Designation:    b.Employment.Designation,
		BusinessName:   b.Employment.BusinessName,
	}
	if !b.Employment.MonthlyIncome.IsZero() {
		d.Employment.MonthlyIncome = b.Employment.MonthlyIncome.String()
	}
	if b.Address.Line1 != "" {
		d.AddressBank.AddressLine = b.Address.Line1
		d.AddressBank.City = b.Address.City
		d.AddressBank.State = b.Address.State
		d.AddressBank.Pincode = b.Address.Pincode
	}
	if b.Bank.AccountNumber != "" {
		d.AddressBank.AccountHolder = b.Bank.AccountHolder
		d.AddressBank.AccountNumber = b.Bank.AccountNumber
		d.AddressBank.IFSC = b.Bank.IFSC
	}
}

// ToCreateInput assumes ValidateAll passed.
func (d *Draft) ToCreateInput() (loan.CreateInput, error) {
	amount, err := decimal.NewFromString(d.Loan.LoanAmount)
	if err != nil {
		return loan.CreateInput{}, fmt.Errorf("parse loan amount: %w", err)
	}
	tenure, err := strconv.Atoi(d.Loan.TenureMonths)
	if err != nil {
		return loan.CreateInput{}, fmt.Errorf("parse tenure: %w", err)
	}

	in := loan.CreateInput{
		LoanAmount:   amount,
		TenureMonths: tenure,
		Purpose:      d.Loan.Purpose,
		Address: loan.Address{
			Line1:   d.AddressBank.AddressLine,
			City:    d.AddressBank.City,
			State:   d.AddressBank.State,
			Pincode: d.AddressBank.Pincode,
		},
		Bank: loan.BankAccount{
			AccountHolder: d.AddressBank.AccountHolder,
			AccountNumber: d.AddressBank.AccountNumber,
			IFSC:          d.AddressBank.IFSC,
		},
	}
	if d.Borrower.Mode == BorrowerExisting {
		in.BorrowerID = d.Borrower.BorrowerID
	}

	income, err := decimal.NewFromString(d.Employment.MonthlyIncome)
	if err != nil {
		return loan.CreateInput{}, fmt.Errorf("parse monthly income: %w", err)
	}
	in.Applicant = &loan.Applicant{
		Name:   d.Personal.Name,
		Email:  d.Personal.Email,
		Mobile: d.Personal.Mobile,
		DOB:    d.Personal.DOB,
		Gender: d.Personal.Gender,
		PAN:    d.Personal.PAN,
		Employment: loan.Employment{
			EmploymentType: d.Employment.EmploymentType,
			CompanyName:    d.Employment.CompanyName,
			Designation:    d.Employment.Designation,
			BusinessName:   d.Employment.BusinessName,
			MonthlyIncome:  income,
		},
	}
	return in, nil
}
