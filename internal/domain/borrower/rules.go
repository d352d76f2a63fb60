package borrower

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"loan-admin-dashboard/internal/domain/rules"
)

const (
	MinAge = 18
	MaxAge = 75
)

func (p ProfileUpdate) Validate(now time.Time) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&p.Email, validation.Required, is.EmailFormat),
		validation.Field(&p.Mobile, validation.Required, rules.Mobile),
		validation.Field(&p.DOB, validation.Required, rules.Date, rules.AgeBetween(now, MinAge, MaxAge)),
		validation.Field(&p.Gender, validation.Required, validation.In(GenderMale, GenderFemale, GenderOther)),
		validation.Field(&p.PAN, validation.Required, rules.PAN),
	)
}

// Normalized trims input and fixes the case of email and PAN.
func (p ProfileUpdate) Normalized() ProfileUpdate {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.DOB = strings.TrimSpace(p.DOB)
	p.PAN = strings.ToUpper(strings.TrimSpace(p.PAN))
	return p
}

func (r DocumentReview) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(DocVerified, DocRejected)),
		validation.Field(&r.Reason, validation.When(r.Status == DocRejected,
			validation.Required.Error("a reason is required to reject a document"), validation.Length(3, 500))),
	)
}

func (d NewDocument) Validate() error {
	types := make([]any, len(DocTypes))
	for i, t := range DocTypes {
		types[i] = t
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.Type, validation.Required, validation.In(types...)),
		validation.Field(&d.URL, validation.Required, is.URL),
	)
}
