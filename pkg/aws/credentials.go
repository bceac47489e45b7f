package aws

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const (
	// SessionDuration is the fixed lifetime requested for every STS session.
	SessionDuration = time.Hour

	// callTimeout bounds each outbound STS call.
	callTimeout = 30 * time.Second
)

var roleARNPattern = regexp.MustCompile(`^arn:aws:iam::\d{12}:role/.+$`)

// ValidRoleARN reports whether arn is a well-formed IAM role ARN.
func ValidRoleARN(arn string) bool {
	return roleARNPattern.MatchString(arn)
}

// CredentialSource describes where an account's AWS credentials come from:
// either a role ARN to assume (with an optional MFA code), or a static
// access-key pair for the governance variant. Region is always required.
type CredentialSource struct {
	RoleARN string
	MFACode string

	AccessKeyID     string
	SecretAccessKey string

	Region string
}

// RoleMode reports whether the source is resolved by assuming a role.
func (s CredentialSource) RoleMode() bool {
	return s.RoleARN != ""
}

// stsAPI is the subset of the STS client the provider uses. Narrowing it to
// an interface lets tests substitute a fake and assert call counts.
type stsAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
	GetSessionToken(ctx context.Context, params *sts.GetSessionTokenInput, optFns ...func(*sts.Options)) (*sts.GetSessionTokenOutput, error)
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CredentialProvider resolves a CredentialSource into usable, short-lived AWS
// credentials. It performs no persistence: recording the outcome of an
// assume-role attempt is the caller's job.
type CredentialProvider struct {
	mfaSerial string

	// newBaseClient builds an STS client from the broker's own (ambient)
	// credentials. Replaceable in tests.
	newBaseClient func(ctx context.Context, region string) (stsAPI, error)

	// newStaticClient builds an STS client signed with the given static keys,
	// used for the governance session-token exchange.
	newStaticClient func(ctx context.Context, keyID, secret, region string) (stsAPI, error)
}

// NewCredentialProvider creates a provider. mfaSerial is the configured MFA
// device serial presented together with a caller-supplied token code; it may
// be empty, in which case MFA codes are ignored.
func NewCredentialProvider(mfaSerial string) *CredentialProvider {
	return &CredentialProvider{
		mfaSerial:       mfaSerial,
		newBaseClient:   newDefaultSTSClient,
		newStaticClient: newStaticSTSClient,
	}
}

func newDefaultSTSClient(ctx context.Context, region string) (stsAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for region %s: %w", region, err)
	}
	return sts.NewFromConfig(cfg), nil
}

func newStaticSTSClient(ctx context.Context, keyID, secret, region string) (stsAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(keyID, secret, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for region %s: %w", region, err)
	}
	return sts.NewFromConfig(cfg), nil
}

// Resolve produces working credentials for the source. Role mode performs an
// STS AssumeRole; static-key mode exchanges the long-lived keys for a
// session via GetSessionToken, so raw keys never travel further than this
// call. Every invocation resolves fresh credentials; nothing is cached.
func (p *CredentialProvider) Resolve(ctx context.Context, source CredentialSource) (*models.ResolvedCredentials, error) {
	if err := validateSource(source); err != nil {
		return nil, err
	}
	if source.RoleMode() {
		return p.assumeRole(ctx, source)
	}
	return p.exchangeStaticKeys(ctx, source)
}

// ResolveStatic returns the configured static keys verbatim, with no session
// token and no expiration. This is the legacy governance bypass path; prefer
// Resolve, which exchanges the keys for a short-lived session.
func (p *CredentialProvider) ResolveStatic(source CredentialSource) (*models.ResolvedCredentials, error) {
	if err := validateSource(source); err != nil {
		return nil, err
	}
	if source.RoleMode() {
		return nil, &ConfigError{Field: "credentials", Reason: "static resolution requested for a role-mode source"}
	}
	return &models.ResolvedCredentials{
		AccessKeyID:     source.AccessKeyID,
		SecretAccessKey: source.SecretAccessKey,
		Region:          source.Region,
	}, nil
}

func validateSource(source CredentialSource) error {
	if source.Region == "" {
		return &ConfigError{Field: "region", Reason: "region is required"}
	}
	if source.RoleMode() {
		if !roleARNPattern.MatchString(source.RoleARN) {
			return &ConfigError{Field: "roleArn", Reason: "must match arn:aws:iam::<12-digit-account>:role/<name>"}
		}
		return nil
	}
	if source.AccessKeyID == "" || source.SecretAccessKey == "" {
		return &ConfigError{Field: "credentials", Reason: "either roleArn or an access-key pair is required"}
	}
	return nil
}

func (p *CredentialProvider) assumeRole(ctx context.Context, source CredentialSource) (*models.ResolvedCredentials, error) {
	client, err := p.newBaseClient(ctx, source.Region)
	if err != nil {
		return nil, err
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(source.RoleARN),
		RoleSessionName: aws.String(sessionName()),
		DurationSeconds: aws.Int32(int32(SessionDuration.Seconds())),
	}
	if source.MFACode != "" && p.mfaSerial != "" {
		input.SerialNumber = aws.String(p.mfaSerial)
		input.TokenCode = aws.String(source.MFACode)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := client.AssumeRole(callCtx, input)
	if err != nil {
		return nil, &AssumeRoleError{RoleARN: source.RoleARN, Reason: err.Error(), Err: err}
	}
	if out.Credentials == nil {
		return nil, &AssumeRoleError{RoleARN: source.RoleARN, Reason: "STS returned no credentials"}
	}

	creds := &models.ResolvedCredentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expiration:      out.Credentials.Expiration,
		Region:          source.Region,
	}
	if creds.Expired(time.Now()) {
		return nil, &AssumeRoleError{RoleARN: source.RoleARN, Reason: "STS returned already-expired credentials"}
	}
	return creds, nil
}

func (p *CredentialProvider) exchangeStaticKeys(ctx context.Context, source CredentialSource) (*models.ResolvedCredentials, error) {
	client, err := p.newStaticClient(ctx, source.AccessKeyID, source.SecretAccessKey, source.Region)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := client.GetSessionToken(callCtx, &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(int32(SessionDuration.Seconds())),
	})
	if err != nil {
		return nil, &AssumeRoleError{Reason: fmt.Sprintf("session token exchange failed: %v", err), Err: err}
	}
	if out.Credentials == nil {
		return nil, &AssumeRoleError{Reason: "STS returned no credentials"}
	}

	return &models.ResolvedCredentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expiration:      out.Credentials.Expiration,
		Region:          source.Region,
	}, nil
}

// sessionName generates a session name unique across concurrent calls.
func sessionName() string {
	return fmt.Sprintf("aws-manager-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
