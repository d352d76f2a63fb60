// Package middleware holds echo middleware shared by the dashboard routes.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/metrics"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	FormIdempotencyKey   = "idempotency_key"

	// How long the "in-progress" lock lives if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// replayed response headers; cookies are never replayed
var keptHeaders = []string{echo.HeaderContentType, echo.HeaderLocation}

type idempEntry struct {
	InProgress bool              `json:"in_progress"`
	Code       int               `json:"code"`
	Header     map[string]string `json:"header,omitempty"`
	Body       []byte            `json:"body"`
	BodySHA256 string            `json:"body_sha256"`
	CreatedAt  time.Time         `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

type IdempotencyConfig struct {
	Redis *redis.Client
	// TTL of a finished response.
	TTL time.Duration
	// Actor returns the signed-in staff id; requests without one are refused.
	Actor func(c echo.Context) string
}

// Idempotency guards mutating requests against double submission.
// key = method + route + staff id + idempotency key (header or form field).
func Idempotency(cfg IdempotencyConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			actor := cfg.Actor(c)
			if actor == "" {
				return apperror.Unauthorized("sign in to continue")
			}

			var body []byte
			if req.Body != nil {
				var err error
				if body, err = io.ReadAll(req.Body); err != nil {
					return apperror.Validation("could not read request body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			reqKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if reqKey == "" {
				reqKey = strings.TrimSpace(c.FormValue(FormIdempotencyKey))
				req.Body = io.NopCloser(bytes.NewReader(body))
			}
			if reqKey == "" {
				return apperror.Validation("missing idempotency key, reload the page and try again")
			}
			if !validKey(reqKey) {
				return apperror.Validation("invalid idempotency key format")
			}

			bhash := bodyHash(body)
			if len(body) == 0 && req.PostForm != nil {
				// form already parsed upstream (csrf token lookup)
				bhash = bodyHash([]byte(req.PostForm.Encode()))
			}
			key := buildKey(req.Method, c.Path(), actor, strings.ToLower(reqKey))
			log := logging.FromContext(req.Context()).WithFields(logrus.Fields{"idempotency_key": key})

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, cfg.Redis, key, idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()})
			if err != nil {
				log.WithError(err).Error("idempotency store unavailable")
				return apperror.Unavailable("idempotency store unavailable")
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, cfg.Redis, key)
				if errLoad != nil {
					log.WithError(errLoad).Warn("idempotency entry not readable")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					metrics.IdempotencyOutcomes.WithLabelValues("conflict").Inc()
					return apperror.Conflict("this form was already submitted with different values")
				}
				if !cur.InProgress && cur.Code != 0 {
					metrics.IdempotencyOutcomes.WithLabelValues("replay").Inc()
					return replay(c, cur)
				}
				metrics.IdempotencyOutcomes.WithLabelValues("in_progress").Inc()
				return apperror.Conflict("this request is already being processed")
			}
			metrics.IdempotencyOutcomes.WithLabelValues("fresh").Inc()

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// server-side failures stay retryable with the same key
			if rec.code >= http.StatusInternalServerError {
				if err := cfg.Redis.Del(context.Background(), key).Err(); err != nil {
					log.WithError(err).Warn("idempotency lock not released")
				}
				return nil
			}

			final := idempEntry{
				Code:       rec.code,
				Header:     captureHeaders(rec.Header()),
				Body:       rec.buf.Bytes(),
				BodySHA256: bhash,
				CreatedAt:  nowUTC(),
			}
			if err := saveFinal(context.Background(), cfg.Redis, key, final, cfg.TTL); err != nil {
				log.WithError(err).Warn("idempotency response not stored")
			}
			return nil
		}
	}
}

func replay(c echo.Context, e idempEntry) error {
	for k, v := range e.Header {
		c.Response().Header().Set(k, v)
	}
	c.Response().WriteHeader(e.Code)
	if len(e.Body) > 0 {
		_, err := c.Response().Write(e.Body)
		return err
	}
	return nil
}

func captureHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(keptHeaders))
	for _, k := range keptHeaders {
		if v := h.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, route, staffID, requestKey string) string {
	return "dash:idemp:" + strings.ToLower(method) + ":" + route + ":" + staffID + ":" + requestKey
}

func validKey(k string) bool {
	k = strings.ToLower(strings.TrimSpace(k))
	return reUUID.MatchString(k) || reHex32.MatchString(k)
}

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, nil
	}
	if err != nil {
		return e, err
	}
	return e, json.Unmarshal(v, &e)
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, payload, ttl).Err()
}
