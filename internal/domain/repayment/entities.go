package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPartial Status = "PARTIAL"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

var Statuses = []Status{StatusPending, StatusPartial, StatusPaid, StatusOverdue}

type Mode string

const (
	ModeUPI        Mode = "UPI"
	ModeCard       Mode = "CARD"
	ModeNetbanking Mode = "NETBANKING"
	ModeCash       Mode = "CASH"
	ModeCheque     Mode = "CHEQUE"
)

var Modes = []Mode{ModeUPI, ModeCard, ModeNetbanking, ModeCash, ModeCheque}

type LoanRef struct {
	ID           string `json:"id"`
	DisplayID    string `json:"displayId"`
	BorrowerName string `json:"borrowerName"`
}

type Payment struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Mode             Mode            `json:"mode"`
	UPITransactionID string          `json:"upiTransactionId,omitempty"`
	CardLast4        string          `json:"cardLast4,omitempty"`
	TransactionID    string          `json:"transactionId,omitempty"`
	BankName         string          `json:"bankName,omitempty"`
	ReceiptNumber    string          `json:"receiptNumber,omitempty"`
	ChequeNumber     string          `json:"chequeNumber,omitempty"`
	ChequeDate       string          `json:"chequeDate,omitempty"`
	PaidAt           time.Time       `json:"paidAt"`
	Status           string          `json:"status"`
	RecordedBy       string          `json:"recordedBy,omitempty"`
}

// Reference is the mode-specific identifier shown in payment history.
func (p Payment) Reference() string {
	switch p.Mode {
	case ModeUPI:
		return p.UPITransactionID
	case ModeCard:
		return "**** " + p.CardLast4 + " / " + p.TransactionID
	case ModeNetbanking:
		return p.BankName + " / " + p.TransactionID
	case ModeCash:
		return p.ReceiptNumber
	case ModeCheque:
		return p.ChequeNumber + " (" + p.BankName + ", " + p.ChequeDate + ")"
	}
	return ""
}

type Repayment struct {
	ID                  string          `json:"id"`
	Loan                LoanRef         `json:"loan"`
	InstallmentNumber   int             `json:"installmentNumber"`
	DueLoanAmount       decimal.Decimal `json:"dueLoanAmount"`
	DueDate             time.Time       `json:"dueDate"`
	LateDays            int             `json:"lateDays"`
	LateFeeCharged      decimal.Decimal `json:"lateFeeCharged"`
	WaivedLateFeeAmount decimal.Decimal `json:"waivedLateFeeAmount"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	Status              Status          `json:"status"`
	PaymentHistory      []Payment       `json:"paymentHistory"`
}

// Outstanding = due + late fee - waived - paid, floored at zero.
func (r *Repayment) Outstanding() decimal.Decimal {
	out := r.DueLoanAmount.Add(r.LateFeeCharged).Sub(r.WaivedLateFeeAmount).Sub(r.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// WaivableLateFee is the late fee not yet waived.
func (r *Repayment) WaivableLateFee() decimal.Decimal {
	w := r.LateFeeCharged.Sub(r.WaivedLateFeeAmount)
	if w.IsNegative() {
		return decimal.Zero
	}
	return w
}

func (r *Repayment) Settled() bool { return r.Status == StatusPaid }

type Filter struct {
	Status  Status `json:"status,omitempty"`
	LoanID  string `json:"loanId,omitempty"`
	Search  string `json:"search,omitempty"`
	DueFrom string `json:"dueFrom,omitempty"`
	DueTo   string `json:"dueTo,omitempty"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

// Collection is the body of POST repayment/admin-collect.
type Collection struct {
	RepaymentID      string          `json:"repaymentId"`
	Amount           decimal.Decimal `json:"amount"`
	Mode             Mode            `json:"mode"`
	UPITransactionID string          `json:"upiTransactionId,omitempty"`
	CardLast4        string          `json:"cardLast4,omitempty"`
	TransactionID    string          `json:"transactionId,omitempty"`
	BankName         string          `json:"bankName,omitempty"`
	ReceiptNumber    string          `json:"receiptNumber,omitempty"`
	ChequeNumber     string          `json:"chequeNumber,omitempty"`
	ChequeDate       string          `json:"chequeDate,omitempty"`
	PaidAt           time.Time       `json:"paidAt"`
	Remarks          string          `json:"remarks,omitempty"`
}

type Waiver struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}
