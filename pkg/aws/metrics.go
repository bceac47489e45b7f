package aws

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const (
	metricsWindow = 24 * time.Hour
	metricsPeriod = 300 // seconds
)

type cloudwatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// GetMetricStatistics queries the last 24 hours of a metric at 5-minute
// resolution with Average, Maximum and Minimum statistics.
func (b *ClientBundle) GetMetricStatistics(ctx context.Context, namespace, metricName string, dimensions map[string]string) (*models.MetricStatistics, error) {
	return getMetricStatistics(ctx, b.CloudWatch, namespace, metricName, dimensions, time.Now())
}

func getMetricStatistics(ctx context.Context, client cloudwatchAPI, namespace, metricName string, dimensions map[string]string, now time.Time) (*models.MetricStatistics, error) {
	var dims []cwtypes.Dimension
	for name, value := range dimensions {
		dims = append(dims, cwtypes.Dimension{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := client.GetMetricStatistics(callCtx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
		StartTime:  aws.Time(now.Add(-metricsWindow)),
		EndTime:    aws.Time(now),
		Period:     aws.Int32(metricsPeriod),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage, cwtypes.StatisticMaximum, cwtypes.StatisticMinimum},
		Dimensions: dims,
	})
	if err != nil {
		return nil, err
	}

	result := &models.MetricStatistics{
		Namespace:  namespace,
		MetricName: metricName,
		Dimensions: dimensions,
	}
	for _, dp := range out.Datapoints {
		result.Datapoints = append(result.Datapoints, models.MetricDatapoint{
			Timestamp: aws.ToTime(dp.Timestamp),
			Average:   aws.ToFloat64(dp.Average),
			Maximum:   aws.ToFloat64(dp.Maximum),
			Minimum:   aws.ToFloat64(dp.Minimum),
			Unit:      string(dp.Unit),
		})
	}
	sort.Slice(result.Datapoints, func(i, j int) bool {
		return result.Datapoints[i].Timestamp.Before(result.Datapoints[j].Timestamp)
	})
	return result, nil
}
