// Package wizard drives the multi-step "new loan application" form. Drafts
// live in redis per staff member until submitted or reset.
package wizard

import (
	"context"
	"errors"
	"time"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	domainBorrower "loan-admin-dashboard/internal/domain/borrower"
	domainLoan "loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/staff"
	domain "loan-admin-dashboard/internal/domain/wizard"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/usecase/activity"
)

// StepInput is one posted wizard page. Only the block matching Step is
// merged into the draft.
type StepInput struct {
	Step        domain.Step `form:"step"`
	Borrower    domain.BorrowerStep
	Personal    domain.PersonalStep
	Employment  domain.EmploymentStep
	Loan        domain.LoanStep
	AddressBank domain.AddressBankStep
}

func (in StepInput) apply(d *domain.Draft) {
	switch d.Step {
	case domain.StepBorrower:
		name := d.Borrower.BorrowerName
		if in.Borrower.BorrowerID != d.Borrower.BorrowerID {
			name = ""
		}
		if d.Borrower.Mode == domain.BorrowerExisting && in.Borrower.Mode != domain.BorrowerExisting {
			// prefilled details belong to the previous borrower
			name = ""
			in.Borrower.BorrowerID = ""
			d.Personal = domain.PersonalStep{}
			d.Employment = domain.EmploymentStep{}
		}
		d.Borrower = in.Borrower
		d.Borrower.BorrowerName = name
	case domain.StepPersonal:
		d.Personal = in.Personal
	case domain.StepEmployment:
		d.Employment = in.Employment
	case domain.StepLoan:
		d.Loan = in.Loan
	case domain.StepAddressBank:
		d.AddressBank = in.AddressBank
	}
}

type Usecase struct {
	drafts    domain.DraftRepository
	borrowers domainBorrower.Repository
	loans     domainLoan.Repository
	activity  activity.Recorder
	ttl       time.Duration
	now       func() time.Time
}

func NewUsecase(drafts domain.DraftRepository, borrowers domainBorrower.Repository, loans domainLoan.Repository,
	rec activity.Recorder, ttl time.Duration) *Usecase {
	return &Usecase{drafts: drafts, borrowers: borrowers, loans: loans, activity: rec, ttl: ttl, now: time.Now}
}

// Load returns the staff member's draft, or a fresh one.
func (u *Usecase) Load(ctx context.Context, staffID string) (*domain.Draft, error) {
	d, err := u.drafts.Get(ctx, staffID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return domain.NewDraft(staffID), nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (u *Usecase) Reset(ctx context.Context, staffID string) error {
	return u.drafts.Delete(ctx, staffID)
}

// Next merges the posted step, validates it and advances. The draft is
// saved even when validation fails so the typed values survive.
func (u *Usecase) Next(ctx context.Context, actor staff.Staff, in StepInput) (*domain.Draft, error) {
	d, err := u.merge(ctx, actor.ID, in)
	if err != nil {
		return d, err
	}

	prev := d.Step
	advErr := d.Advance(u.now())
	if advErr == nil && prev == domain.StepBorrower {
		advErr = u.prefill(ctx, d)
	}
	if err := u.save(ctx, d); err != nil {
		return d, err
	}
	return d, apperror.FromValidation(advErr)
}

// Back keeps whatever was typed on the current step without validating it.
func (u *Usecase) Back(ctx context.Context, actor staff.Staff, in StepInput) (*domain.Draft, error) {
	d, err := u.merge(ctx, actor.ID, in)
	if err != nil {
		return d, err
	}
	d.Back()
	return d, u.save(ctx, d)
}

// Submit re-validates every step and creates the application. On failure
// the draft is moved to the first invalid step.
func (u *Usecase) Submit(ctx context.Context, actor staff.Staff, in StepInput) (*domainLoan.Application, *domain.Draft, error) {
	d, err := u.merge(ctx, actor.ID, in)
	if err != nil {
		return nil, d, err
	}
	if !d.Step.Last() {
		return nil, d, apperror.Validation("complete every step before submitting")
	}

	if step, verr := d.ValidateAll(u.now()); verr != nil {
		d.Step = step
		if err := u.save(ctx, d); err != nil {
			return nil, d, err
		}
		return nil, d, apperror.FromValidation(verr)
	}

	create, err := d.ToCreateInput()
	if err != nil {
		return nil, d, apperror.Validation(err.Error())
	}
	app, err := u.loans.Create(ctx, create)
	if err != nil {
		_ = u.save(ctx, d)
		return nil, d, err
	}

	if err := u.drafts.Delete(ctx, actor.ID); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("staff_id", actor.ID).Warn("wizard draft not deleted")
	}
	u.activity.Record(ctx, actor, domainActivity.ActionApplicationCreate, domainActivity.EntityApplication, app.ID,
		"amount="+create.LoanAmount.StringFixed(2))
	return app, nil, nil
}

func (u *Usecase) merge(ctx context.Context, staffID string, in StepInput) (*domain.Draft, error) {
	d, err := u.Load(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if in.Step != d.Step {
		return d, apperror.Validation("this form changed in another tab, please review the current step").
			WithField("posted_step", in.Step)
	}
	in.apply(d)
	d.Normalize()
	return d, nil
}

// prefill copies an existing borrower's profile once, when the selected
// borrower changes.
func (u *Usecase) prefill(ctx context.Context, d *domain.Draft) error {
	if d.Borrower.Mode != domain.BorrowerExisting {
		return nil
	}
	if d.Borrower.BorrowerName != "" {
		return nil
	}

	b, err := u.borrowers.GetProfile(ctx, d.Borrower.BorrowerID)
	if err != nil {
		d.Step = domain.StepBorrower
		if apperror.IsType(err, apperror.TypeNotFound) {
			return apperror.Invalid(apperror.FieldError{Field: "borrowerId", Message: "no borrower with this id"})
		}
		return err
	}
	if b.Blacklisted {
		d.Step = domain.StepBorrower
		return apperror.Invalid(apperror.FieldError{Field: "borrowerId", Message: "borrower is blacklisted"})
	}
	d.Prefill(b)
	return nil
}

func (u *Usecase) save(ctx context.Context, d *domain.Draft) error {
	d.UpdatedAt = u.now().UTC()
	return u.drafts.Save(ctx, d, u.ttl)
}
