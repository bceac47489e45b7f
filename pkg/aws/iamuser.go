package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

type iamAPI interface {
	GetUser(ctx context.Context, params *iam.GetUserInput, optFns ...func(*iam.Options)) (*iam.GetUserOutput, error)
}

// VerifyIAMUser checks that the named IAM user exists and is visible to the
// bundle's credentials. Governance registrations run this at creation time
// so a typo'd user name is caught before the keys are ever stored.
func (b *ClientBundle) VerifyIAMUser(ctx context.Context, userName string) (string, error) {
	return verifyIAMUser(ctx, b.IAM, userName)
}

func verifyIAMUser(ctx context.Context, client iamAPI, userName string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := client.GetUser(callCtx, &iam.GetUserInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return "", err
	}
	if out.User == nil {
		return "", nil
	}
	return aws.ToString(out.User.Arn), nil
}

// VerifyGovernanceUser resolves the static-key source and confirms the IAM
// user behind the keys, returning the user's ARN.
func (s *Service) VerifyGovernanceUser(ctx context.Context, source CredentialSource, userName string) (string, error) {
	creds, err := s.provider.Resolve(ctx, source)
	if err != nil {
		return "", err
	}
	bundle, err := s.newBundle(creds, source.Region)
	if err != nil {
		return "", err
	}
	return bundle.VerifyIAMUser(ctx, userName)
}
