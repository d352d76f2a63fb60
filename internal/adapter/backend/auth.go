package backend

import (
	"context"
	"net/http"

	"loan-admin-dashboard/internal/domain/staff"
)

type Auth struct{ c *Client }

var _ staff.Authenticator = (*Auth)(nil)

func (a *Auth) Login(ctx context.Context, cr staff.Credentials) (*staff.LoginResult, error) {
	var out staff.LoginResult
	_, err := a.c.do(ctx, call{endpoint: "auth.login", method: http.MethodPost, path: "auth/login", body: cr}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	_, err := a.c.do(ctx, call{endpoint: "auth.logout", method: http.MethodPost, path: "auth/logout"}, nil)
	return err
}
