package borrower

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type DocType string

const (
	DocPAN           DocType = "PAN"
	DocAadhaar       DocType = "AADHAAR"
	DocPhoto         DocType = "PHOTO"
	DocBankStatement DocType = "BANK_STATEMENT"
	DocSalarySlip    DocType = "SALARY_SLIP"
	DocOther         DocType = "OTHER"
)

var DocTypes = []DocType{DocPAN, DocAadhaar, DocPhoto, DocBankStatement, DocSalarySlip, DocOther}

func (t DocType) Valid() bool {
	for _, v := range DocTypes {
		if v == t {
			return true
		}
	}
	return false
}

type DocStatus string

const (
	DocPending  DocStatus = "PENDING"
	DocVerified DocStatus = "VERIFIED"
	DocRejected DocStatus = "REJECTED"
)

type KYCDocument struct {
	ID              string    `json:"id"`
	Type            DocType   `json:"type"`
	URL             string    `json:"url"`
	Status          DocStatus `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	UploadedAt      time.Time `json:"uploadedAt"`
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

type Borrower struct {
	ID          string        `json:"id"`
	DisplayID   string        `json:"displayId"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Mobile      string        `json:"mobile"`
	DOB         string        `json:"dob"`
	Gender      Gender        `json:"gender"`
	PAN         string        `json:"pan"`
	Employment  Employment    `json:"employmentDetails"`
	Address     Address       `json:"address"`
	Bank        BankAccount   `json:"bankDetails"`
	Documents   []KYCDocument `json:"kycDocuments"`
	Active      bool          `json:"active"`
	Blacklisted bool          `json:"blacklisted"`
	KYCVerified bool          `json:"kycVerified"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// PendingDocuments counts documents still awaiting review.
func (b *Borrower) PendingDocuments() int {
	n := 0
	for _, d := range b.Documents {
		if d.Status == DocPending {
			n++
		}
	}
	return n
}

func (b *Borrower) Document(id string) (*KYCDocument, bool) {
	for i := range b.Documents {
		if b.Documents[i].ID == id {
			return &b.Documents[i], true
		}
	}
	return nil, false
}

type ListFilter struct {
	Page        int
	Limit       int
	Search      string
	Active      *bool
	Blacklisted *bool
	KYCVerified *bool
}

type ProfileUpdate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	DOB    string `json:"dob"`
	Gender Gender `json:"gender"`
	PAN    string `json:"pan"`
}

type DocumentReview struct {
	Status DocStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

type NewDocument struct {
	Type DocType `json:"type"`
	URL  string  `json:"url"`
}

type Flags struct {
	Active      bool `json:"active"`
	Blacklisted bool `json:"blacklisted"`
}
