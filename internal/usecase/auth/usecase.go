// Package auth signs staff in against the backend and keeps the resulting
// bearer token server-side in a session.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/usecase/activity"
	"loan-admin-dashboard/pkg/id"
)

type Usecase struct {
	auth     staff.Authenticator
	sessions staff.SessionRepository
	activity activity.Recorder
	ttl      time.Duration
	now      func() time.Time
}

func NewUsecase(auth staff.Authenticator, sessions staff.SessionRepository, rec activity.Recorder, ttl time.Duration) *Usecase {
	return &Usecase{auth: auth, sessions: sessions, activity: rec, ttl: ttl, now: time.Now}
}

// Login exchanges credentials for a backend token and stores it under a
// fresh session id.
func (u *Usecase) Login(ctx context.Context, c staff.Credentials) (*staff.Session, error) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	res, err := u.auth.Login(ctx, c)
	if err != nil {
		if apperror.IsType(err, apperror.TypeUnauthorized) || apperror.IsType(err, apperror.TypeValidation) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if res.Token == "" {
		return nil, apperror.External("login response carried no token", nil)
	}

	s := &staff.Session{
		ID:        id.NewID32(),
		Token:     res.Token,
		Staff:     res.Staff,
		CreatedAt: u.now().UTC(),
	}
	if err := u.sessions.Create(ctx, s, u.ttl); err != nil {
		return nil, apperror.Unavailable("could not start a session, please retry").WithField("cause", err.Error())
	}
	u.activity.Record(ctx, s.Staff, domainActivity.ActionLogin, domainActivity.EntityStaff, s.Staff.ID, "")
	return s, nil
}

// Resolve loads a session and slides its expiry.
func (u *Usecase) Resolve(ctx context.Context, sessionID string) (*staff.Session, error) {
	if !id.IsID32(sessionID) {
		return nil, staff.ErrSessionNotFound
	}
	return u.sessions.Get(ctx, sessionID, u.ttl)
}

// Logout revokes the backend token best-effort and always drops the local
// session. ctx must carry the session's token.
func (u *Usecase) Logout(ctx context.Context, s *staff.Session) error {
	if err := u.auth.Logout(ctx); err != nil && !apperror.IsType(err, apperror.TypeUnauthorized) {
		logging.FromContext(ctx).WithError(err).WithField("staff_id", s.Staff.ID).Warn("backend logout failed")
	}
	if err := u.sessions.Delete(ctx, s.ID); err != nil && !errors.Is(err, staff.ErrSessionNotFound) {
		return err
	}
	u.activity.Record(ctx, s.Staff, domainActivity.ActionLogout, domainActivity.EntityStaff, s.Staff.ID, "")
	return nil
}

// Expire drops a session whose token the backend no longer accepts.
func (u *Usecase) Expire(ctx context.Context, sessionID string) {
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("expired session not deleted")
	}
}
