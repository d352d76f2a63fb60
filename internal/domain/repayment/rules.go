package repayment

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"loan-admin-dashboard/internal/domain/rules"
)

var ErrAlreadyPaid = errors.New("repayment is already fully paid")

func modeIn() validation.Rule {
	ms := make([]any, len(Modes))
	for i, m := range Modes {
		ms[i] = m
	}
	return validation.In(ms...).Error("must be one of UPI, CARD, NETBANKING, CASH, CHEQUE")
}

// Validate applies the mode-conditional schema against the repayment being
// collected.
func (c Collection) Validate(r *Repayment, now time.Time) error {
	if r.Settled() {
		return ErrAlreadyPaid
	}
	upi := c.Mode == ModeUPI
	card := c.Mode == ModeCard
	net := c.Mode == ModeNetbanking
	cash := c.Mode == ModeCash
	cheque := c.Mode == ModeCheque

	return validation.ValidateStruct(&c,
		validation.Field(&c.Mode, validation.Required, modeIn()),
		validation.Field(&c.Amount,
			rules.Positive(),
			rules.MaxPlaces(2),
			rules.AtMost(r.Outstanding(), "must not exceed the outstanding amount of "+r.Outstanding().StringFixed(2))),
		validation.Field(&c.PaidAt, validation.Required, rules.NotFuture(now)),
		validation.Field(&c.UPITransactionID, validation.When(upi, validation.Required, validation.Length(6, 35))),
		validation.Field(&c.CardLast4, validation.When(card, validation.Required, rules.CardLast4)),
		validation.Field(&c.TransactionID, validation.When(card || net, validation.Required, validation.Length(4, 64))),
		validation.Field(&c.BankName, validation.When(net || cheque, validation.Required, validation.Length(2, 100))),
		validation.Field(&c.ReceiptNumber, validation.When(cash, validation.Required, validation.Length(1, 64))),
		validation.Field(&c.ChequeNumber, validation.When(cheque, validation.Required, rules.ChequeNumber)),
		validation.Field(&c.ChequeDate, validation.When(cheque, validation.Required, rules.Date)),
		validation.Field(&c.Remarks, validation.Length(0, 500)),
	)
}

// Normalized drops fields that don't belong to the selected mode.
func (c Collection) Normalized() Collection {
	out := Collection{
		RepaymentID: c.RepaymentID,
		Amount:      c.Amount,
		Mode:        c.Mode,
		PaidAt:      c.PaidAt.UTC(),
		Remarks:     c.Remarks,
	}
	switch c.Mode {
	case ModeUPI:
		out.UPITransactionID = c.UPITransactionID
	case ModeCard:
		out.CardLast4 = c.CardLast4
		out.TransactionID = c.TransactionID
	case ModeNetbanking:
		out.BankName = c.BankName
		out.TransactionID = c.TransactionID
	case ModeCash:
		out.ReceiptNumber = c.ReceiptNumber
	case ModeCheque:
		out.ChequeNumber = c.ChequeNumber
		out.BankName = c.BankName
		out.ChequeDate = c.ChequeDate
	}
	return out
}

func (w Waiver) Validate(r *Repayment) error {
	remaining := r.WaivableLateFee()
	return validation.ValidateStruct(&w,
		validation.Field(&w.Amount,
			rules.Positive(),
			rules.MaxPlaces(2),
			rules.AtMost(remaining, "must not exceed the remaining late fee of "+remaining.StringFixed(2))),
		validation.Field(&w.Reason, validation.Required, validation.Length(5, 500)),
	)
}
