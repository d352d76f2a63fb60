// Package objectstore uploads KYC and agreement documents to S3 using
// temporary credentials from a Cognito identity pool.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentity"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

type Config struct {
	Region        string
	Bucket        string
	IdentityPool  string
	PublicBaseURL string
}

type Store struct {
	uploader   s3manageriface.UploaderAPI
	bucket     string
	publicBase string
}

func NewStore(uploader s3manageriface.UploaderAPI, bucket, publicBaseURL string) *Store {
	return &Store{uploader: uploader, bucket: bucket, publicBase: strings.TrimRight(publicBaseURL, "/")}
}

// New wires Cognito credentials into an S3 upload manager.
func New(cfg Config) (*Store, error) {
	anon, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.AnonymousCredentials,
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	provider := NewCognitoProvider(cognitoidentity.New(anon), cfg.IdentityPool)

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewCredentials(provider),
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return NewStore(s3manager.NewUploader(sess), cfg.Bucket, cfg.PublicBaseURL), nil
}

// Put uploads body under key and returns the URL to store in forms.
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key, nil
	}
	return out.Location, nil
}
