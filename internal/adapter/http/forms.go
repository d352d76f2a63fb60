package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/domain/approval"
	"loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/repayment"
	"loan-admin-dashboard/internal/domain/rules"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func (f *loginForm) normalize() { f.Email = strings.ToLower(strings.TrimSpace(f.Email)) }

type decisionForm struct {
	Status           string `form:"status" validate:"required,oneof=IN_REVIEW APPROVED APPROVED_WITH_CONDITION REJECTED"`
	Remarks          string `form:"remarks" validate:"max=1000"`
	Conditions       string `form:"conditions" validate:"max=1000"`
	RejectionReason  string `form:"rejection_reason" validate:"max=500"`
	SanctionedAmount string `form:"sanctioned_amount" validate:"omitempty,amount"`
}

func (f *decisionForm) normalize() {
	f.Status = strings.TrimSpace(f.Status)
	f.SanctionedAmount = strings.TrimSpace(f.SanctionedAmount)
}

func (f decisionForm) toDecision() approval.Decision {
	d := approval.Decision{
		Status:          loan.Status(f.Status),
		Remarks:         f.Remarks,
		Conditions:      f.Conditions,
		RejectionReason: f.RejectionReason,
	}
	if f.SanctionedAmount != "" {
		amt := decimal.RequireFromString(f.SanctionedAmount)
		d.SanctionedAmount = &amt
	}
	return d
}

type esignForm struct {
	DocumentURL string `form:"document_url" validate:"omitempty,url"`
}

func (f *esignForm) normalize() { f.DocumentURL = strings.TrimSpace(f.DocumentURL) }

type disburseForm struct {
	UTR         string `form:"utr" validate:"required"`
	DisbursedOn string `form:"disbursed_on" validate:"required,datetime=2006-01-02"`
	Amount      string `form:"amount" validate:"omitempty,amount"`
	Remarks     string `form:"remarks" validate:"max=500"`
}

func (f *disburseForm) normalize() {
	f.UTR = strings.TrimSpace(f.UTR)
	f.DisbursedOn = strings.TrimSpace(f.DisbursedOn)
	f.Amount = strings.TrimSpace(f.Amount)
}

func (f disburseForm) toRequest() approval.DisbursalRequest {
	r := approval.DisbursalRequest{UTR: f.UTR, Remarks: f.Remarks}
	r.DisbursedAt, _ = rules.ParseDate(f.DisbursedOn)
	if f.Amount != "" {
		r.Amount = decimal.RequireFromString(f.Amount)
	}
	return r
}

type profileForm struct {
	Name   string `form:"name" validate:"required,min=2,max=100"`
	Email  string `form:"email" validate:"required,email"`
	Mobile string `form:"mobile" validate:"required,mobile"`
	DOB    string `form:"dob" validate:"required,datetime=2006-01-02"`
	Gender string `form:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	PAN    string `form:"pan" validate:"required,pan"`
}

func (f *profileForm) normalize() {
	p := f.toUpdate().Normalized()
	f.Name, f.Email, f.Mobile, f.DOB, f.PAN = p.Name, p.Email, p.Mobile, p.DOB, p.PAN
	f.Gender = strings.ToUpper(strings.TrimSpace(f.Gender))
}

func (f profileForm) toUpdate() borrower.ProfileUpdate {
	return borrower.ProfileUpdate{
		Name:   f.Name,
		Email:  f.Email,
		Mobile: f.Mobile,
		DOB:    f.DOB,
		Gender: borrower.Gender(f.Gender),
		PAN:    f.PAN,
	}
}

type kycReviewForm struct {
	Status string `form:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Reason string `form:"reason" validate:"required_if=Status REJECTED,max=500"`
}

func (f *kycReviewForm) normalize() { f.Reason = strings.TrimSpace(f.Reason) }

type attachForm struct {
	Type string `form:"type" validate:"required,oneof=PAN AADHAAR PHOTO BANK_STATEMENT SALARY_SLIP OTHER"`
	URL  string `form:"url" validate:"required,url"`
}

func (f *attachForm) normalize() { f.URL = strings.TrimSpace(f.URL) }

// Unchecked boxes are absent from the post and bind as false.
type flagsForm struct {
	Active      bool `form:"active"`
	Blacklisted bool `form:"blacklisted"`
}

type paymentForm struct {
	Mode             string `form:"mode" validate:"required,oneof=UPI CARD NETBANKING CASH CHEQUE"`
	Amount           string `form:"amount" validate:"required,amount"`
	PaidOn           string `form:"paid_on" validate:"required,datetime=2006-01-02"`
	UPITransactionID string `form:"upi_transaction_id" validate:"required_if=Mode UPI"`
	CardLast4        string `form:"card_last4" validate:"required_if=Mode CARD"`
	TransactionID    string `form:"transaction_id" validate:"required_if=Mode CARD,required_if=Mode NETBANKING"`
	BankName         string `form:"bank_name" validate:"required_if=Mode NETBANKING,required_if=Mode CHEQUE"`
	ReceiptNumber    string `form:"receipt_number" validate:"required_if=Mode CASH"`
	ChequeNumber     string `form:"cheque_number" validate:"required_if=Mode CHEQUE"`
	ChequeDate       string `form:"cheque_date" validate:"required_if=Mode CHEQUE"`
	Remarks          string `form:"remarks" validate:"max=500"`
}

func (f *paymentForm) normalize() {
	f.Mode = strings.ToUpper(strings.TrimSpace(f.Mode))
	f.Amount = strings.TrimSpace(f.Amount)
	f.PaidOn = strings.TrimSpace(f.PaidOn)
}

func (f paymentForm) toCollection(repaymentID string) repayment.Collection {
	c := repayment.Collection{
		RepaymentID:      repaymentID,
		Mode:             repayment.Mode(f.Mode),
		UPITransactionID: f.UPITransactionID,
		CardLast4:        f.CardLast4,
		TransactionID:    f.TransactionID,
		BankName:         f.BankName,
		ReceiptNumber:    f.ReceiptNumber,
		ChequeNumber:     f.ChequeNumber,
		ChequeDate:       f.ChequeDate,
		Remarks:          f.Remarks,
	}
	c.Amount = decimal.RequireFromString(f.Amount)
	c.PaidAt, _ = rules.ParseDate(f.PaidOn)
	return c
}

type waiverForm struct {
	Amount string `form:"amount" validate:"required,amount"`
	Reason string `form:"reason" validate:"required,min=5,max=500"`
}

func (f *waiverForm) normalize() {
	f.Amount = strings.TrimSpace(f.Amount)
	f.Reason = strings.TrimSpace(f.Reason)
}

func (f waiverForm) toWaiver() repayment.Waiver {
	return repayment.Waiver{Amount: decimal.RequireFromString(f.Amount), Reason: f.Reason}
}
