// Package backend is the REST client for the loan platform API. Every call
// is a single attempt; failures are classified as apperror values.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/metrics"
)

const maxResponseBytes = 8 << 20

type tokenKey struct{}

// WithToken attaches the staff bearer token used for backend calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta"`
}

type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient uses a copy of hc; the timeout is applied to the copy.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", baseURL)
	}
	c := &Client{base: u, http: &http.Client{}}
	for _, o := range opts {
		o(c)
	}
	hc := *c.http
	hc.Timeout = timeout
	c.http = &hc
	return c, nil
}

func (c *Client) Auth() *Auth                 { return &Auth{c: c} }
func (c *Client) Applications() *Applications { return &Applications{c: c} }
func (c *Client) Borrowers() *Borrowers       { return &Borrowers{c: c} }
func (c *Client) Repayments() *Repayments     { return &Repayments{c: c} }

type call struct {
	endpoint string // metric label
	method   string
	path     string
	query    url.Values
	body     any
}

func (c *Client) do(ctx context.Context, cl call, out any) (*Meta, error) {
	started := time.Now()
	status := "error"
	defer func() { metrics.ObserveBackend(cl.endpoint, status, started) }()

	u := c.base.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, apperror.Internal("encode backend request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, apperror.Internal("build backend request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := tokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if id, ok := logging.CorrelationID(ctx); ok {
		req.Header.Set(logging.HeaderRequestID, id)
	}

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"endpoint": cl.endpoint,
		"method":   cl.method,
		"path":     u.Path,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("backend call failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.External("the server took too long to respond", err)
		}
		return nil, apperror.External("could not reach the server", err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperror.External("read backend response", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Info("backend returned error")
		msg := ""
		if decodeErr == nil {
			msg = env.Message
		}
		return nil, apperror.FromStatus(resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, apperror.External("unexpected response from server", decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not accepted"
		}
		return nil, apperror.Validation(msg)
	}
	log.WithField("status", resp.StatusCode).Debug("backend call ok")

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, apperror.External("unexpected response from server", err)
		}
	}
	return env.Meta, nil
}

func pageOf[T any](items []T, meta *Meta, page, limit int) *paging.Page[T] {
	p := &paging.Page[T]{Items: items, Page: page, Limit: limit, Total: len(items)}
	if meta != nil {
		if meta.Page > 0 {
			p.Page = meta.Page
		}
		if meta.Limit > 0 {
			p.Limit = meta.Limit
		}
		p.Total = meta.Total
	}
	return p
}

// pathOf escapes each segment so ids can't change the route.
func pathOf(segments ...string) string {
	esc := make([]string, len(segments))
	for i, s := range segments {
		esc[i] = url.PathEscape(s)
	}
	return strings.Join(esc, "/")
}

func pageQuery(page, limit int) url.Values {
	page, limit = paging.Normalize(page, limit)
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
