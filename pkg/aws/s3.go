package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const resourceTypeBuckets = "buckets"

type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// GetBuckets returns the account's S3 buckets. ListBuckets is account-wide;
// the bundle's region is recorded on each entry for display purposes.
func (b *ClientBundle) GetBuckets(ctx context.Context) ([]models.BucketInfo, error) {
	return listBuckets(ctx, b.S3, b.region)
}

func listBuckets(ctx context.Context, client s3API, region string) ([]models.BucketInfo, error) {
	return collectPages(ctx, resourceTypeBuckets, func(ctx context.Context, token *string) ([]models.BucketInfo, *string, error) {
		out, err := client.ListBuckets(ctx, &s3.ListBucketsInput{
			ContinuationToken: token,
		})
		if err != nil {
			return nil, nil, err
		}

		var buckets []models.BucketInfo
		for _, bucket := range out.Buckets {
			buckets = append(buckets, models.BucketInfo{
				Name:         aws.ToString(bucket.Name),
				Region:       region,
				CreationDate: aws.ToTime(bucket.CreationDate),
			})
		}
		return buckets, out.ContinuationToken, nil
	})
}
