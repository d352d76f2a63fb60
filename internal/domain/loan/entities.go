package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending               Status = "PENDING"
	StatusInReview              Status = "IN_REVIEW"
	StatusApproved              Status = "APPROVED"
	StatusApprovedWithCondition Status = "APPROVED_WITH_CONDITION"
	StatusESignPending          Status = "ESIGN_PENDING"
	StatusReadyForDisbursal     Status = "READY_FOR_DISBURSAL"
	StatusDisbursed             Status = "DISBURSED"
	StatusRejected              Status = "REJECTED"
)

// Statuses in pipeline order, used for filters.
var Statuses = []Status{
	StatusPending,
	StatusInReview,
	StatusApproved,
	StatusApprovedWithCondition,
	StatusESignPending,
	StatusReadyForDisbursal,
	StatusDisbursed,
	StatusRejected,
}

var transitions = map[Status][]Status{
	StatusPending:               {StatusInReview, StatusApproved, StatusApprovedWithCondition, StatusRejected},
	StatusInReview:              {StatusApproved, StatusApprovedWithCondition, StatusRejected},
	StatusApproved:              {StatusESignPending},
	StatusApprovedWithCondition: {StatusESignPending},
	StatusESignPending:          {StatusReadyForDisbursal},
	StatusReadyForDisbursal:     {StatusDisbursed},
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Next lists the statuses a staff action may move s to.
func (s Status) Next() []Status { return transitions[s] }

func (s Status) CanTransitionTo(next Status) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Decidable reports whether an approve/reject decision is still open.
func (s Status) Decidable() bool { return s == StatusPending || s == StatusInReview }

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

func (s Status) Label() string {
	switch s {
	case StatusInReview:
		return "In review"
	case StatusApprovedWithCondition:
		return "Approved with conditions"
	case StatusESignPending:
		return "E-sign pending"
	case StatusReadyForDisbursal:
		return "Ready for disbursal"
	case "":
		return ""
	}
	return string(s[0]) + lower(string(s[1:]))
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

type BorrowerRef struct {
	ID        string `json:"id"`
	DisplayID string `json:"displayId"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile,omitempty"`
}

type ESign struct {
	DocumentURL string     `json:"documentUrl,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Disbursal struct {
	UTR         string          `json:"utr"`
	Amount      decimal.Decimal `json:"amount"`
	DisbursedAt time.Time       `json:"disbursedAt"`
}

type Application struct {
	ID               string           `json:"id"`
	DisplayID        string           `json:"displayId"`
	Borrower         BorrowerRef      `json:"borrower"`
	LoanAmount       decimal.Decimal  `json:"loanAmount"`
	SanctionedAmount *decimal.Decimal `json:"sanctionedAmount,omitempty"`
	TenureMonths     int              `json:"tenureMonths"`
	InterestRate     decimal.Decimal  `json:"interestRate"`
	Purpose          string           `json:"purpose"`
	Status           Status           `json:"applicationStatus"`
	CibilScore       *int             `json:"cibilScore,omitempty"`
	Conditions       string           `json:"conditions,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	Remarks          string           `json:"remarks,omitempty"`
	ESign            *ESign           `json:"esign,omitempty"`
	Disbursal        *Disbursal       `json:"disbursal,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// PayableAmount is the sanctioned amount when set, else the requested one.
func (a *Application) PayableAmount() decimal.Decimal {
	if a.SanctionedAmount != nil && a.SanctionedAmount.IsPositive() {
		return *a.SanctionedAmount
	}
	return a.LoanAmount
}

type ListFilter struct {
	Page   int
	Limit  int
	Status Status
	Search string
}

// StatusUpdate is the body of PUT loan-application/{id}/status.
type StatusUpdate struct {
	Status           Status           `json:"status"`
	Remarks          string           `json:"remarks,omitempty"`
	Conditions       string           `json:"conditions,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	SanctionedAmount *decimal.Decimal `json:"sanctionedAmount,omitempty"`
}

type ESignAction string

const (
	ESignSend     ESignAction = "SEND"
	ESignComplete ESignAction = "COMPLETE"
)

type ESignUpdate struct {
	Action      ESignAction `json:"action"`
	DocumentURL string      `json:"documentUrl,omitempty"`
}

type DisbursalInput struct {
	UTR         string          `json:"utr"`
	DisbursedAt time.Time       `json:"disbursedAt"`
	Amount      decimal.Decimal `json:"amount"`
	Remarks     string          `json:"remarks,omitempty"`
}

// CreateInput is the body of POST loan-application. BorrowerID is set for
// existing borrowers; Applicant always carries the personal and employment
// details as reviewed in the wizard.
type CreateInput struct {
	BorrowerID   string          `json:"borrowerId,omitempty"`
	Applicant    *Applicant      `json:"borrower,omitempty"`
	LoanAmount   decimal.Decimal `json:"loanAmount"`
	TenureMonths int             `json:"tenureMonths"`
	Purpose      string          `json:"purpose"`
	Address      Address         `json:"address"`
	Bank         BankAccount     `json:"bankDetails"`
}

type Applicant struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Mobile     string     `json:"mobile"`
	DOB        string     `json:"dob"`
	Gender     string     `json:"gender"`
	PAN        string     `json:"pan"`
	Employment Employment `json:"employmentDetails"`
}

type Employment struct {
	EmploymentType string          `json:"employmentType"`
	CompanyName    string          `json:"companyName,omitempty"`
	Designation    string          `json:"designation,omitempty"`
	BusinessName   string          `json:"businessName,omitempty"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type BankAccount struct {
	AccountHolder string `json:"accountHolderName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}
