package aws

import (
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/notpepejulian/aws-manager/internal/models"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

// ClientBundle holds one typed client per AWS service, all scoped to exactly
// one account's resolved credentials and one region. A bundle is immutable
// after construction and must be built fresh per resolved-credentials
// instance; never reuse a bundle across requests, since the credentials
// behind it may have expired.
type ClientBundle struct {
	EC2        *ec2.Client
	ELB        *elbv2.Client
	CloudWatch *cloudwatch.Client
	Logs       *cloudwatchlogs.Client
	S3         *s3.Client
	Lambda     *lambda.Client
	IAM        *iam.Client
	STS        *sts.Client

	region string
}

// NewClientBundle constructs the per-service clients for the given resolved
// credentials. Construction performs no I/O; the only failure mode is a
// malformed region.
func NewClientBundle(creds *models.ResolvedCredentials, region string) (*ClientBundle, error) {
	if !utils.IsValidRegion(region) {
		return nil, &ConfigError{Field: "region", Reason: "unknown region " + region}
	}

	cfg := awssdk.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
	}

	return &ClientBundle{
		EC2:        ec2.NewFromConfig(cfg),
		ELB:        elbv2.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
		Logs:       cloudwatchlogs.NewFromConfig(cfg),
		S3:         s3.NewFromConfig(cfg),
		Lambda:     lambda.NewFromConfig(cfg),
		IAM:        iam.NewFromConfig(cfg),
		STS:        sts.NewFromConfig(cfg),
		region:     region,
	}, nil
}

// Region returns the region the bundle is scoped to.
func (b *ClientBundle) Region() string {
	return b.region
}
