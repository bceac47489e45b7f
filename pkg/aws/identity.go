package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// CallerIdentity asks STS who the bundle's credentials belong to. Used by
// the test-connection flow and by post-assume-role confirmation.
func (b *ClientBundle) CallerIdentity(ctx context.Context) (*models.Identity, error) {
	return callerIdentity(ctx, b.STS)
}

func callerIdentity(ctx context.Context, client stsAPI) (*models.Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := client.GetCallerIdentity(callCtx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		AccountID: aws.ToString(out.Account),
		UserID:    aws.ToString(out.UserId),
		ARN:       aws.ToString(out.Arn),
	}, nil
}
