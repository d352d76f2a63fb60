// Package wizard models the multi-step "new loan application" form.
package wizard

import (
	"errors"
	"time"
)

var ErrDraftNotFound = errors.New("wizard draft not found")

type Step string

const (
	StepBorrower    Step = "BORROWER"
	StepPersonal    Step = "PERSONAL"
	StepEmployment  Step = "EMPLOYMENT"
	StepLoan        Step = "LOAN"
	StepAddressBank Step = "ADDRESS_BANK"
)

var Steps = []Step{StepBorrower, StepPersonal, StepEmployment, StepLoan, StepAddressBank}

func (s Step) Index() int {
	for i, v := range Steps {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Step) Title() string {
	switch s {
	case StepBorrower:
		return "Borrower"
	case StepPersonal:
		return "Personal details"
	case StepEmployment:
		return "Employment"
	case StepLoan:
		return "Loan details"
	case StepAddressBank:
		return "Address & bank"
	}
	return string(s)
}

func (s Step) Last() bool  { return s == StepAddressBank }
func (s Step) First() bool { return s == StepBorrower }

const (
	BorrowerExisting = "EXISTING"
	BorrowerNew      = "NEW"

	EmploymentSalaried     = "SALARIED"
	EmploymentSelfEmployed = "SELF_EMPLOYED"
)

type BorrowerStep struct {
	Mode         string `json:"mode" form:"mode"`
	BorrowerID   string `json:"borrowerId" form:"borrower_id"`
	BorrowerName string `json:"borrowerName" form:"-"`
}

type PersonalStep struct {
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Mobile string `json:"mobile" form:"mobile"`
	DOB    string `json:"dob" form:"dob"`
	Gender string `json:"gender" form:"gender"`
	PAN    string `json:"pan" form:"pan"`
}

type EmploymentStep struct {
	EmploymentType string `json:"employmentType" form:"employment_type"`
	CompanyName    string `json:"companyName" form:"company_name"`
	Designation    string `json:"designation" form:"designation"`
	BusinessName   string `json:"businessName" form:"business_name"`
	MonthlyIncome  string `json:"monthlyIncome" form:"monthly_income"`
}

// Amounts stay as typed so the form can be redisplayed verbatim.
type LoanStep struct {
	LoanAmount   string `json:"loanAmount" form:"loan_amount"`
	TenureMonths string `json:"tenureMonths" form:"tenure_months"`
	Purpose      string `json:"purpose" form:"purpose"`
}

type AddressBankStep struct {
	AddressLine   string `json:"addressLine" form:"address_line"`
	City          string `json:"city" form:"city"`
	State         string `json:"state" form:"state"`
	Pincode       string `json:"pincode" form:"pincode"`
	AccountHolder string `json:"accountHolder" form:"account_holder"`
	AccountNumber string `json:"accountNumber" form:"account_number"`
	IFSC          string `json:"ifsc" form:"ifsc"`
}

type Draft struct {
	StaffID     string          `json:"staffId"`
	Step        Step            `json:"step"`
	Borrower    BorrowerStep    `json:"borrower"`
	Personal    PersonalStep    `json:"personal"`
	Employment  EmploymentStep  `json:"employment"`
	Loan        LoanStep        `json:"loan"`
	AddressBank AddressBankStep `json:"addressBank"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewDraft(staffID string) *Draft {
	return &Draft{StaffID: staffID, Step: StepBorrower, Borrower: BorrowerStep{Mode: BorrowerNew}}
}

// Back moves one step back without validating anything.
func (d *Draft) Back() {
	if i := d.Step.Index(); i > 0 {
		d.Step = Steps[i-1]
	}
}

// Advance validates the current step and moves forward only when it passes.
func (d *Draft) Advance(now time.Time) error {
	if err := d.ValidateStep(d.Step, now); err != nil {
		return err
	}
	if i := d.Step.Index(); i >= 0 && i < len(Steps)-1 {
		d.Step = Steps[i+1]
	}
	return nil
}

// ValidateAll returns the first step that fails together with its error.
func (d *Draft) ValidateAll(now time.Time) (Step, error) {
	for _, s := range Steps {
		if err := d.ValidateStep(s, now); err != nil {
			return s, err
		}
	}
	return "", nil
}

func (d *Draft) ValidateStep(s Step, now time.Time) error {
	switch s {
	case StepBorrower:
		return d.Borrower.Validate()
	case StepPersonal:
		return d.Personal.ValidateAt(now)
	case StepEmployment:
		return d.Employment.Validate()
	case StepLoan:
		return d.Loan.Validate()
	case StepAddressBank:
		return d.AddressBank.Validate()
	}
	return errors.New("unknown wizard step " + string(s))
}
