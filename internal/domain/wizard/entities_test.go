package wizard

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-admin-dashboard/internal/domain/borrower"
)

var now = time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

func completeDraft() *Draft {
	d := NewDraft("staff-1")
	d.Borrower = BorrowerStep{Mode: BorrowerNew}
	d.Personal = PersonalStep{
		Name: "Asha Rao", Email: "asha@example.com", Mobile: "9876543210",
		DOB: "1990-02-14", Gender: "FEMALE", PAN: "ABCDE1234F",
	}
	d.Employment = EmploymentStep{
		EmploymentType: EmploymentSalaried, CompanyName: "Acme Ltd", Designation: "Engineer", MonthlyIncome: "85000",
	}
	d.Loan = LoanStep{LoanAmount: "250000", TenureMonths: "24", Purpose: "Home renovation"}
	d.AddressBank = AddressBankStep{
		AddressLine: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
		AccountHolder: "Asha Rao", AccountNumber: "001234567890", IFSC: "HDFC0001234",
	}
	return d
}

func fields(t *testing.T, err error) validation.Errors {
	t.Helper()
	var ve validation.Errors
	require.True(t, errors.As(err, &ve), "want validation.Errors, got %v", err)
	return ve
}

func TestAdvance_BlocksOnInvalidStep(t *testing.T) {
	d := NewDraft("staff-1")
	d.Borrower.Mode = BorrowerExisting

	err := d.Advance(now)
	require.Error(t, err)
	assert.Contains(t, fields(t, err), "borrowerId")
	assert.Equal(t, StepBorrower, d.Step)

	d.Borrower.BorrowerID = "b-1"
	require.NoError(t, d.Advance(now))
	assert.Equal(t, StepPersonal, d.Step)

	// empty personal step stays put and reports every required field
	err = d.Advance(now)
	ve := fields(t, err)
	for _, f := range []string{"name", "email", "mobile", "dob", "gender", "pan"} {
		assert.Contains(t, ve, f)
	}
	assert.Equal(t, StepPersonal, d.Step)
}

func TestBack_NeverValidates(t *testing.T) {
	d := NewDraft("staff-1")
	d.Step = StepLoan
	d.Loan = LoanStep{LoanAmount: "abc"}
	d.Back()
	assert.Equal(t, StepEmployment, d.Step)
	d.Back()
	d.Back()
	d.Back()
	assert.Equal(t, StepBorrower, d.Step)
}

func TestAdvance_LastStepStays(t *testing.T) {
	d := completeDraft()
	d.Step = StepAddressBank
	require.NoError(t, d.Advance(now))
	assert.Equal(t, StepAddressBank, d.Step)
}

func TestEmployment_Conditional(t *testing.T) {
	s := EmploymentStep{EmploymentType: EmploymentSalaried, MonthlyIncome: "1000"}
	ve := fields(t, s.Validate())
	assert.Contains(t, ve, "companyName")
	assert.Contains(t, ve, "designation")
	assert.NotContains(t, ve, "businessName")

	s = EmploymentStep{EmploymentType: EmploymentSelfEmployed, MonthlyIncome: "0"}
	ve = fields(t, s.Validate())
	assert.Contains(t, ve, "businessName")
	assert.Contains(t, ve, "monthlyIncome")
	assert.NotContains(t, ve, "companyName")
}

func TestLoanStep_Bounds(t *testing.T) {
	assert.NoError(t, LoanStep{LoanAmount: "10000", TenureMonths: "3", Purpose: "Education"}.Validate())
	assert.NoError(t, LoanStep{LoanAmount: "5000000", TenureMonths: "60", Purpose: "Education"}.Validate())

	ve := fields(t, LoanStep{LoanAmount: "9999", TenureMonths: "61", Purpose: "Education"}.Validate())
	assert.Contains(t, ve, "loanAmount")
	assert.Contains(t, ve, "tenureMonths")
}

func TestPersonal_Age(t *testing.T) {
	p := completeDraft().Personal
	p.DOB = "2010-01-01"
	assert.Contains(t, fields(t, p.ValidateAt(now)), "dob")
	p.DOB = "1940-01-01"
	assert.Contains(t, fields(t, p.ValidateAt(now)), "dob")
}

func TestValidateAll_ReportsFirstFailingStep(t *testing.T) {
	d := completeDraft()
	step, err := d.ValidateAll(now)
	require.NoError(t, err)
	assert.Empty(t, step)

	d.AddressBank.IFSC = "BAD"
	d.Loan.Purpose = ""
	step, err = d.ValidateAll(now)
	require.Error(t, err)
	assert.Equal(t, StepLoan, step)
}

func TestNormalize(t *testing.T) {
	d := completeDraft()
	d.Personal.PAN = " abcde1234f "
	d.Personal.Email = "Asha@Example.COM"
	d.Loan.LoanAmount = "2,50,000"
	d.AddressBank.IFSC = "hdfc0001234"
	d.Normalize()

	assert.Equal(t, "ABCDE1234F", d.Personal.PAN)
	assert.Equal(t, "asha@example.com", d.Personal.Email)
	assert.Equal(t, "250000", d.Loan.LoanAmount)
	assert.Equal(t, "HDFC0001234", d.AddressBank.IFSC)
}

func TestToCreateInput(t *testing.T) {
	d := completeDraft()
	in, err := d.ToCreateInput()
	require.NoError(t, err)
	assert.Empty(t, in.BorrowerID)
	require.NotNil(t, in.Applicant)
	assert.Equal(t, "Asha Rao", in.Applicant.Name)
	assert.True(t, in.Applicant.Employment.MonthlyIncome.Equal(decimal.NewFromInt(85000)))
	assert.True(t, in.LoanAmount.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, 24, in.TenureMonths)
	assert.Equal(t, "HDFC0001234", in.Bank.IFSC)

	d.Borrower = BorrowerStep{Mode: BorrowerExisting, BorrowerID: "b-42"}
	in, err = d.ToCreateInput()
	require.NoError(t, err)
	assert.Equal(t, "b-42", in.BorrowerID)
	require.NotNil(t, in.Applicant)
	assert.Equal(t, "9876543210", in.Applicant.Mobile)
}

func TestPrefill(t *testing.T) {
	d := NewDraft("staff-1")
	d.Prefill(&borrower.Borrower{
		ID: "b-7", Name: "Ravi", Email: "ravi@example.com", Mobile: "9123456789", DOB: "1985-05-05",
		Gender: borrower.GenderMale, PAN: "PQRSX6789Z",
		Employment: borrower.Employment{EmploymentType: EmploymentSelfEmployed, BusinessName: "Ravi Traders", MonthlyIncome: decimal.NewFromInt(60000)},
	})
	assert.Equal(t, BorrowerExisting, d.Borrower.Mode)
	assert.Equal(t, "b-7", d.Borrower.BorrowerID)
	assert.Equal(t, "Ravi", d.Personal.Name)
	assert.Equal(t, "MALE", d.Personal.Gender)
	assert.Equal(t, "60000", d.Employment.MonthlyIncome)
	assert.NoError(t, d.Employment.Validate())
}

func TestStep_Helpers(t *testing.T) {
	assert.Equal(t, 0, StepBorrower.Index())
	assert.Equal(t, 4, StepAddressBank.Index())
	assert.Equal(t, -1, Step("X").Index())
	assert.True(t, StepAddressBank.Last())
	assert.True(t, StepBorrower.First())
	assert.Equal(t, "Loan details", StepLoan.Title())
}
