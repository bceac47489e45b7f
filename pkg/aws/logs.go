package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const (
	resourceTypeLogGroups = "logGroups"

	logPageSize = 50
)

type logsAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// GetLogGroups returns every CloudWatch log group in the region.
func (b *ClientBundle) GetLogGroups(ctx context.Context) ([]models.LogGroupInfo, error) {
	return listLogGroups(ctx, b.Logs, b.region)
}

func listLogGroups(ctx context.Context, client logsAPI, region string) ([]models.LogGroupInfo, error) {
	return collectPages(ctx, resourceTypeLogGroups, func(ctx context.Context, token *string) ([]models.LogGroupInfo, *string, error) {
		out, err := client.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
			Limit:     aws.Int32(logPageSize),
			NextToken: token,
		})
		if err != nil {
			return nil, nil, err
		}

		var groups []models.LogGroupInfo
		for _, lg := range out.LogGroups {
			groups = append(groups, models.LogGroupInfo{
				Name:              aws.ToString(lg.LogGroupName),
				ARN:               aws.ToString(lg.Arn),
				Region:            region,
				RetentionInDays:   aws.ToInt32(lg.RetentionInDays),
				MetricFilterCount: aws.ToInt32(lg.MetricFilterCount),
				StoredBytes:       aws.ToInt64(lg.StoredBytes),
				CreationTime:      time.UnixMilli(aws.ToInt64(lg.CreationTime)),
			})
		}
		return groups, out.NextToken, nil
	})
}

// GetLogStreams returns the streams of one log group, most recent events
// first.
func (b *ClientBundle) GetLogStreams(ctx context.Context, logGroupName string) ([]models.LogStreamInfo, error) {
	return listLogStreams(ctx, b.Logs, logGroupName)
}

func listLogStreams(ctx context.Context, client logsAPI, logGroupName string) ([]models.LogStreamInfo, error) {
	return collectPages(ctx, "logStreams", func(ctx context.Context, token *string) ([]models.LogStreamInfo, *string, error) {
		out, err := client.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName: aws.String(logGroupName),
			OrderBy:      types.OrderByLastEventTime,
			Descending:   aws.Bool(true),
			Limit:        aws.Int32(logPageSize),
			NextToken:    token,
		})
		if err != nil {
			return nil, nil, err
		}

		var streams []models.LogStreamInfo
		for _, ls := range out.LogStreams {
			streams = append(streams, models.LogStreamInfo{
				Name:           aws.ToString(ls.LogStreamName),
				CreationTime:   time.UnixMilli(aws.ToInt64(ls.CreationTime)),
				FirstEventTime: millisToTime(ls.FirstEventTimestamp),
				LastEventTime:  millisToTime(ls.LastEventTimestamp),
				StoredBytes:    aws.ToInt64(ls.StoredBytes),
			})
		}
		return streams, out.NextToken, nil
	})
}

// GetLogEvents returns up to limit of the latest events of one stream.
func (b *ClientBundle) GetLogEvents(ctx context.Context, logGroupName, logStreamName string, limit int32) ([]models.LogEventInfo, error) {
	if limit <= 0 {
		limit = 100
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := b.Logs.GetLogEvents(callCtx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(logGroupName),
		LogStreamName: aws.String(logStreamName),
		Limit:         aws.Int32(limit),
		StartFromHead: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	var events []models.LogEventInfo
	for _, event := range out.Events {
		events = append(events, models.LogEventInfo{
			Timestamp: time.UnixMilli(aws.ToInt64(event.Timestamp)),
			Message:   aws.ToString(event.Message),
			Stream:    logStreamName,
		})
	}
	return events, nil
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
