package repayment

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 4, 20, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dueRepayment() *Repayment {
	return &Repayment{
		ID:                  "r1",
		DueLoanAmount:       dec("10000"),
		LateFeeCharged:      dec("500"),
		WaivedLateFeeAmount: dec("100"),
		AmountPaid:          dec("2000"),
		Status:              StatusPartial,
	}
}

func invalidFields(t *testing.T, err error) validation.Errors {
	t.Helper()
	var ve validation.Errors
	require.True(t, errors.As(err, &ve), "want validation.Errors, got %v", err)
	return ve
}

func TestOutstanding(t *testing.T) {
	r := dueRepayment()
	assert.True(t, r.Outstanding().Equal(dec("8400")), r.Outstanding().String())
	assert.True(t, r.WaivableLateFee().Equal(dec("400")))

	r.AmountPaid = dec("20000")
	assert.True(t, r.Outstanding().IsZero())
}

func TestCollection_ModeSpecificFields(t *testing.T) {
	base := Collection{RepaymentID: "r1", Amount: dec("100"), PaidAt: now.Add(-time.Hour)}

	tests := []struct {
		mode    Mode
		missing []string
		fill    func(c *Collection)
	}{
		{ModeUPI, []string{"upiTransactionId"}, func(c *Collection) { c.UPITransactionID = "UPI123456789" }},
		{ModeCard, []string{"cardLast4", "transactionId"}, func(c *Collection) { c.CardLast4 = "4242"; c.TransactionID = "TXN9001" }},
		{ModeNetbanking, []string{"bankName", "transactionId"}, func(c *Collection) { c.BankName = "HDFC Bank"; c.TransactionID = "NB77881" }},
		{ModeCash, []string{"receiptNumber"}, func(c *Collection) { c.ReceiptNumber = "RC-0001" }},
		{ModeCheque, []string{"chequeNumber", "bankName", "chequeDate"}, func(c *Collection) {
			c.ChequeNumber = "123456"
			c.BankName = "SBI"
			c.ChequeDate = "2025-04-18"
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := base
			c.Mode = tt.mode
			ve := invalidFields(t, c.Validate(dueRepayment(), now))
			for _, f := range tt.missing {
				assert.Contains(t, ve, f)
			}
			assert.Len(t, ve, len(tt.missing))

			tt.fill(&c)
			assert.NoError(t, c.Validate(dueRepayment(), now))
		})
	}
}

func TestCollection_AmountAndDate(t *testing.T) {
	c := Collection{Mode: ModeCash, ReceiptNumber: "R1", Amount: dec("8400.01"), PaidAt: now}
	ve := invalidFields(t, c.Validate(dueRepayment(), now))
	assert.Contains(t, ve, "amount")

	c.Amount = dec("8400")
	assert.NoError(t, c.Validate(dueRepayment(), now))

	c.Amount = dec("10.123")
	assert.Contains(t, invalidFields(t, c.Validate(dueRepayment(), now)), "amount")

	c.Amount = dec("0")
	assert.Contains(t, invalidFields(t, c.Validate(dueRepayment(), now)), "amount")

	c.Amount = dec("10")
	c.PaidAt = now.Add(time.Hour)
	assert.Contains(t, invalidFields(t, c.Validate(dueRepayment(), now)), "paidAt")

	c.Mode = "CRYPTO"
	c.PaidAt = now
	assert.Contains(t, invalidFields(t, c.Validate(dueRepayment(), now)), "mode")
}

func TestCollection_PaidRejected(t *testing.T) {
	r := dueRepayment()
	r.Status = StatusPaid
	c := Collection{Mode: ModeCash, ReceiptNumber: "R1", Amount: dec("1"), PaidAt: now}
	assert.ErrorIs(t, c.Validate(r, now), ErrAlreadyPaid)
}

func TestCollection_Normalized(t *testing.T) {
	c := Collection{Mode: ModeUPI, UPITransactionID: "UPI1", CardLast4: "1111", BankName: "X", Amount: dec("5")}
	n := c.Normalized()
	assert.Equal(t, "UPI1", n.UPITransactionID)
	assert.Empty(t, n.CardLast4)
	assert.Empty(t, n.BankName)
}

func TestWaiver_Validate(t *testing.T) {
	r := dueRepayment()
	assert.NoError(t, Waiver{Amount: dec("400"), Reason: "Customer hardship"}.Validate(r))

	ve := invalidFields(t, Waiver{Amount: dec("400.01"), Reason: "Customer hardship"}.Validate(r))
	assert.Contains(t, ve, "amount")

	ve = invalidFields(t, Waiver{Amount: dec("10")}.Validate(r))
	assert.Contains(t, ve, "reason")
}

func TestPayment_Reference(t *testing.T) {
	assert.Equal(t, "UPI1", Payment{Mode: ModeUPI, UPITransactionID: "UPI1"}.Reference())
	assert.Equal(t, "**** 4242 / T1", Payment{Mode: ModeCard, CardLast4: "4242", TransactionID: "T1"}.Reference())
	assert.Equal(t, "123456 (SBI, 2025-01-02)", Payment{Mode: ModeCheque, ChequeNumber: "123456", BankName: "SBI", ChequeDate: "2025-01-02"}.Reference())
}
