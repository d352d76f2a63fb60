// Package upload accepts KYC and agreement files and stores them in the
// object store, returning a URL the forms can submit to the backend.
package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"loan-admin-dashboard/internal/apperror"
	domainActivity "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/metrics"
	"loan-admin-dashboard/internal/usecase/activity"
)

type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

const DefaultFolder = "documents"

var folders = map[string]bool{
	"kyc":         true,
	"esign":       true,
	DefaultFolder: true,
}

// allowed content types and the extension used in the object key
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type Result struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

type Usecase struct {
	store    ObjectStore
	maxBytes int64
	activity activity.Recorder
	now      func() time.Time
	newID    func() string
}

// NewUsecase accepts a nil store; uploads then fail as unavailable.
func NewUsecase(store ObjectStore, maxBytes int64, rec activity.Recorder) *Usecase {
	return &Usecase{store: store, maxBytes: maxBytes, activity: rec, now: time.Now, newID: uuid.NewString}
}

func (u *Usecase) Enabled() bool { return u.store != nil }

func (u *Usecase) Upload(ctx context.Context, actor staff.Staff, folder string, r io.Reader) (*Result, error) {
	if u.store == nil {
		return nil, apperror.Unavailable("document uploads are not configured")
	}
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		folder = DefaultFolder
	}
	if !folders[folder] {
		return nil, apperror.Invalid(apperror.FieldError{Field: "folder", Message: "unknown upload folder"})
	}

	body, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return nil, apperror.Validation("could not read the uploaded file").WithField("cause", err.Error())
	}
	if len(body) == 0 {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, apperror.Invalid(apperror.FieldError{Field: "file", Message: "file is empty"})
	}
	if int64(len(body)) > u.maxBytes {
		metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		return nil, apperror.Invalid(apperror.FieldError{Field: "file",
			Message: fmt.Sprintf("file must be at most %s", humanBytes(u.maxBytes))})
	}

	contentType := mimetype.Detect(body).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowed[contentType]
	if !ok {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, apperror.Invalid(apperror.FieldError{Field: "file", Message: "only JPEG, PNG or PDF files are accepted"}).
			WithField("content_type", contentType)
	}

	key := u.objectKey(folder, ext)
	url, err := u.store.Put(ctx, key, contentType, body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		logging.FromContext(ctx).WithError(err).WithField("key", key).Error("object upload failed")
		return nil, apperror.External("upload failed, please retry", err)
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(len(body)))
	u.activity.Record(ctx, actor, domainActivity.ActionDocumentUpload, domainActivity.EntityDocument, key, contentType)
	return &Result{URL: url, Key: key, ContentType: contentType, Size: len(body)}, nil
}

// objectKey is <folder>/<yyyy/mm/dd>/<uuid><ext>.
func (u *Usecase) objectKey(folder, ext string) string {
	return folder + "/" + u.now().UTC().Format("2006/01/02") + "/" + u.newID() + ext
}

func humanBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	if n >= 1<<10 {
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
