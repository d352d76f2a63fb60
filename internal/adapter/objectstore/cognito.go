package objectstore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/cognitoidentity"
	"github.com/aws/aws-sdk-go/service/cognitoidentity/cognitoidentityiface"
)

const (
	CognitoProviderName = "CognitoIdentityProvider"

	// refresh a little before the STS expiry
	expiryWindow = time.Minute
)

// CognitoProvider exchanges a federated identity pool id for temporary
// credentials and caches them until shortly before they expire.
type CognitoProvider struct {
	client cognitoidentityiface.CognitoIdentityAPI
	poolID string
	now    func() time.Time

	mu         sync.Mutex
	identityID string
	value      credentials.Value
	expiresAt  time.Time
}

var (
	_ credentials.Provider            = (*CognitoProvider)(nil)
	_ credentials.ProviderWithContext = (*CognitoProvider)(nil)
)

func NewCognitoProvider(client cognitoidentityiface.CognitoIdentityAPI, poolID string) *CognitoProvider {
	return &CognitoProvider{client: client, poolID: poolID, now: time.Now}
}

func (p *CognitoProvider) Retrieve() (credentials.Value, error) {
	return p.RetrieveWithContext(aws.BackgroundContext())
}

func (p *CognitoProvider) RetrieveWithContext(ctx credentials.Context) (credentials.Value, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.value.HasKeys() && p.now().Before(p.expiresAt.Add(-expiryWindow)) {
		return p.value, nil
	}

	if p.identityID == "" {
		out, err := p.client.GetIdWithContext(ctx, &cognitoidentity.GetIdInput{
			IdentityPoolId: aws.String(p.poolID),
		})
		if err != nil {
			return credentials.Value{ProviderName: CognitoProviderName}, fmt.Errorf("cognito get id: %w", err)
		}
		p.identityID = aws.StringValue(out.IdentityId)
	}

	out, err := p.client.GetCredentialsForIdentityWithContext(ctx, &cognitoidentity.GetCredentialsForIdentityInput{
		IdentityId: aws.String(p.identityID),
	})
	if err != nil {
		// identity may have been removed from the pool
		p.identityID = ""
		return credentials.Value{ProviderName: CognitoProviderName}, fmt.Errorf("cognito get credentials: %w", err)
	}
	if out.Credentials == nil {
		return credentials.Value{ProviderName: CognitoProviderName}, errors.New("cognito returned no credentials")
	}

	p.value = credentials.Value{
		AccessKeyID:     aws.StringValue(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.StringValue(out.Credentials.SecretKey),
		SessionToken:    aws.StringValue(out.Credentials.SessionToken),
		ProviderName:    CognitoProviderName,
	}
	p.expiresAt = aws.TimeValue(out.Credentials.Expiration)
	return p.value, nil
}

func (p *CognitoProvider) IsExpired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.value.HasKeys() || !p.now().Before(p.expiresAt.Add(-expiryWindow))
}

func (p *CognitoProvider) ExpiresAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiresAt
}
