package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const resourceTypeFunctions = "functions"

type lambdaAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
}

// GetFunctions returns every Lambda function in the region.
func (b *ClientBundle) GetFunctions(ctx context.Context) ([]models.FunctionInfo, error) {
	return listFunctions(ctx, b.Lambda, b.region)
}

func listFunctions(ctx context.Context, client lambdaAPI, region string) ([]models.FunctionInfo, error) {
	return collectPages(ctx, resourceTypeFunctions, func(ctx context.Context, token *string) ([]models.FunctionInfo, *string, error) {
		out, err := client.ListFunctions(ctx, &lambda.ListFunctionsInput{
			MaxItems: aws.Int32(50),
			Marker:   token,
		})
		if err != nil {
			return nil, nil, err
		}

		var functions []models.FunctionInfo
		for _, fn := range out.Functions {
			lastModified := time.Time{}
			if fn.LastModified != nil {
				// Lambda reports LastModified as an ISO-8601 string.
				if t, err := time.Parse("2006-01-02T15:04:05.000-0700", *fn.LastModified); err == nil {
					lastModified = t
				}
			}

			functions = append(functions, models.FunctionInfo{
				Name:         aws.ToString(fn.FunctionName),
				ARN:          aws.ToString(fn.FunctionArn),
				Runtime:      string(fn.Runtime),
				MemorySizeMB: aws.ToInt32(fn.MemorySize),
				Timeout:      aws.ToInt32(fn.Timeout),
				Region:       region,
				LastModified: lastModified,
			})
		}
		return functions, out.NextMarker, nil
	})
}
