package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoleARN = "arn:aws:iam::123456789012:role/ReadOnlyRole"
	testRegion  = "us-east-1"
)

// fakeSTS records calls and plays back canned responses.
type fakeSTS struct {
	assumeRoleCalls      int
	sessionTokenCalls    int
	callerIdentityCalls  int
	lastAssumeRoleInput  *sts.AssumeRoleInput
	assumeRoleOutput     *sts.AssumeRoleOutput
	assumeRoleErr        error
	sessionTokenOutput   *sts.GetSessionTokenOutput
	sessionTokenErr      error
	callerIdentityOutput *sts.GetCallerIdentityOutput
	callerIdentityErr    error
}

func (f *fakeSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	f.assumeRoleCalls++
	f.lastAssumeRoleInput = params
	return f.assumeRoleOutput, f.assumeRoleErr
}

func (f *fakeSTS) GetSessionToken(ctx context.Context, params *sts.GetSessionTokenInput, optFns ...func(*sts.Options)) (*sts.GetSessionTokenOutput, error) {
	f.sessionTokenCalls++
	return f.sessionTokenOutput, f.sessionTokenErr
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.callerIdentityCalls++
	return f.callerIdentityOutput, f.callerIdentityErr
}

func stsCredentials(expiration time.Time) *ststypes.Credentials {
	return &ststypes.Credentials{
		AccessKeyId:     aws.String("ASIATESTKEY"),
		SecretAccessKey: aws.String("test-secret"),
		SessionToken:    aws.String("test-token"),
		Expiration:      aws.Time(expiration),
	}
}

func providerWith(fake *fakeSTS, mfaSerial string) *CredentialProvider {
	p := NewCredentialProvider(mfaSerial)
	p.newBaseClient = func(ctx context.Context, region string) (stsAPI, error) {
		return fake, nil
	}
	p.newStaticClient = func(ctx context.Context, keyID, secret, region string) (stsAPI, error) {
		return fake, nil
	}
	return p
}

func TestResolveAssumesRole(t *testing.T) {
	expiration := time.Now().Add(SessionDuration)
	fake := &fakeSTS{assumeRoleOutput: &sts.AssumeRoleOutput{Credentials: stsCredentials(expiration)}}
	p := providerWith(fake, "")

	creds, err := p.Resolve(context.Background(), CredentialSource{RoleARN: testRoleARN, Region: testRegion})
	require.NoError(t, err)

	assert.Equal(t, "ASIATESTKEY", creds.AccessKeyID)
	assert.Equal(t, "test-secret", creds.SecretAccessKey)
	assert.Equal(t, "test-token", creds.SessionToken)
	assert.Equal(t, testRegion, creds.Region)
	assert.True(t, creds.Temporary())
	require.NotNil(t, creds.Expiration)
	assert.WithinDuration(t, expiration, *creds.Expiration, time.Second)

	require.Equal(t, 1, fake.assumeRoleCalls)
	input := fake.lastAssumeRoleInput
	assert.Equal(t, testRoleARN, aws.ToString(input.RoleArn))
	assert.EqualValues(t, 3600, aws.ToInt32(input.DurationSeconds))
	assert.Contains(t, aws.ToString(input.RoleSessionName), "aws-manager-")
	assert.Nil(t, input.SerialNumber)
	assert.Nil(t, input.TokenCode)
}

func TestResolveSessionNamesAreDistinct(t *testing.T) {
	fake := &fakeSTS{assumeRoleOutput: &sts.AssumeRoleOutput{
		Credentials: stsCredentials(time.Now().Add(SessionDuration)),
	}}
	p := providerWith(fake, "")
	source := CredentialSource{RoleARN: testRoleARN, Region: testRegion}

	_, err := p.Resolve(context.Background(), source)
	require.NoError(t, err)
	first := aws.ToString(fake.lastAssumeRoleInput.RoleSessionName)

	_, err = p.Resolve(context.Background(), source)
	require.NoError(t, err)
	second := aws.ToString(fake.lastAssumeRoleInput.RoleSessionName)

	assert.NotEqual(t, first, second)
}

func TestResolvePassesMFAWhenConfigured(t *testing.T) {
	fake := &fakeSTS{assumeRoleOutput: &sts.AssumeRoleOutput{
		Credentials: stsCredentials(time.Now().Add(SessionDuration)),
	}}
	p := providerWith(fake, "arn:aws:iam::123456789012:mfa/console")

	_, err := p.Resolve(context.Background(), CredentialSource{
		RoleARN: testRoleARN,
		MFACode: "123456",
		Region:  testRegion,
	})
	require.NoError(t, err)

	input := fake.lastAssumeRoleInput
	assert.Equal(t, "arn:aws:iam::123456789012:mfa/console", aws.ToString(input.SerialNumber))
	assert.Equal(t, "123456", aws.ToString(input.TokenCode))
}

func TestResolveIgnoresMFACodeWithoutSerial(t *testing.T) {
	fake := &fakeSTS{assumeRoleOutput: &sts.AssumeRoleOutput{
		Credentials: stsCredentials(time.Now().Add(SessionDuration)),
	}}
	p := providerWith(fake, "")

	_, err := p.Resolve(context.Background(), CredentialSource{
		RoleARN: testRoleARN,
		MFACode: "123456",
		Region:  testRegion,
	})
	require.NoError(t, err)
	assert.Nil(t, fake.lastAssumeRoleInput.SerialNumber)
}

func TestResolveRejectsMalformedRoleARN(t *testing.T) {
	fake := &fakeSTS{}
	p := providerWith(fake, "")

	_, err := p.Resolve(context.Background(), CredentialSource{RoleARN: "ReadOnlyRole", Region: testRegion})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "roleArn", configErr.Field)
	assert.Zero(t, fake.assumeRoleCalls, "a rejected source must never reach STS")
}

func TestResolveRequiresRegion(t *testing.T) {
	p := providerWith(&fakeSTS{}, "")

	_, err := p.Resolve(context.Background(), CredentialSource{RoleARN: testRoleARN})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "region", configErr.Field)
}

func TestResolveWrapsSTSFailure(t *testing.T) {
	stsErr := errors.New("AccessDenied: not authorized to perform sts:AssumeRole")
	fake := &fakeSTS{assumeRoleErr: stsErr}
	p := providerWith(fake, "")

	_, err := p.Resolve(context.Background(), CredentialSource{RoleARN: testRoleARN, Region: testRegion})

	var assumeErr *AssumeRoleError
	require.ErrorAs(t, err, &assumeErr)
	assert.Equal(t, testRoleARN, assumeErr.RoleARN)
	assert.ErrorIs(t, err, stsErr)
}

func TestResolveRejectsExpiredCredentials(t *testing.T) {
	fake := &fakeSTS{assumeRoleOutput: &sts.AssumeRoleOutput{
		Credentials: stsCredentials(time.Now().Add(-time.Minute)),
	}}
	p := providerWith(fake, "")

	_, err := p.Resolve(context.Background(), CredentialSource{RoleARN: testRoleARN, Region: testRegion})

	var assumeErr *AssumeRoleError
	require.ErrorAs(t, err, &assumeErr)
}

func TestResolveExchangesStaticKeys(t *testing.T) {
	expiration := time.Now().Add(SessionDuration)
	fake := &fakeSTS{sessionTokenOutput: &sts.GetSessionTokenOutput{Credentials: stsCredentials(expiration)}}
	p := providerWith(fake, "")

	creds, err := p.Resolve(context.Background(), CredentialSource{
		AccessKeyID:     "AKIASTATICKEY",
		SecretAccessKey: "static-secret",
		Region:          testRegion,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.sessionTokenCalls)
	assert.Zero(t, fake.assumeRoleCalls)
	assert.Equal(t, "ASIATESTKEY", creds.AccessKeyID, "the static keys must be exchanged, not returned")
	assert.True(t, creds.Temporary())
}

func TestResolveStaticReturnsKeysVerbatim(t *testing.T) {
	p := providerWith(&fakeSTS{}, "")

	creds, err := p.ResolveStatic(CredentialSource{
		AccessKeyID:     "AKIASTATICKEY",
		SecretAccessKey: "static-secret",
		Region:          testRegion,
	})
	require.NoError(t, err)

	assert.Equal(t, "AKIASTATICKEY", creds.AccessKeyID)
	assert.Equal(t, "static-secret", creds.SecretAccessKey)
	assert.Empty(t, creds.SessionToken)
	assert.False(t, creds.Temporary())
	assert.False(t, creds.Expired(time.Now()), "keys without expiration never expire")
}

func TestResolveStaticRejectsRoleSource(t *testing.T) {
	p := providerWith(&fakeSTS{}, "")

	_, err := p.ResolveStatic(CredentialSource{RoleARN: testRoleARN, Region: testRegion})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestValidRoleARN(t *testing.T) {
	assert.True(t, ValidRoleARN("arn:aws:iam::123456789012:role/admin"))
	assert.True(t, ValidRoleARN("arn:aws:iam::123456789012:role/path/to/role"))
	assert.False(t, ValidRoleARN("arn:aws:iam::12345:role/short-account"))
	assert.False(t, ValidRoleARN("arn:aws:iam::123456789012:user/bob"))
	assert.False(t, ValidRoleARN("admin"))
}
