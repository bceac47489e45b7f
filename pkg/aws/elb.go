package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/notpepejulian/aws-manager/internal/models"
)

const resourceTypeLoadBalancers = "loadBalancers"

type elbAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeListeners(ctx context.Context, params *elbv2.DescribeListenersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
}

// GetLoadBalancers returns every ELBv2 load balancer in the region, each
// enriched with its listeners and target groups.
func (b *ClientBundle) GetLoadBalancers(ctx context.Context) ([]models.LoadBalancerInfo, error) {
	return listLoadBalancers(ctx, b.ELB, b.region)
}

func listLoadBalancers(ctx context.Context, client elbAPI, region string) ([]models.LoadBalancerInfo, error) {
	return collectPages(ctx, resourceTypeLoadBalancers, func(ctx context.Context, token *string) ([]models.LoadBalancerInfo, *string, error) {
		out, err := client.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
			PageSize: aws.Int32(100),
			Marker:   token,
		})
		if err != nil {
			return nil, nil, err
		}

		var lbs []models.LoadBalancerInfo
		for _, lb := range out.LoadBalancers {
			if lb.LoadBalancerArn == nil {
				continue
			}
			lbArn := aws.ToString(lb.LoadBalancerArn)

			listeners, err := listenersForLB(ctx, client, lbArn)
			if err != nil {
				return nil, nil, fmt.Errorf("listeners for %s: %w", aws.ToString(lb.LoadBalancerName), err)
			}
			targetGroups, err := targetGroupsForLB(ctx, client, lbArn)
			if err != nil {
				return nil, nil, fmt.Errorf("target groups for %s: %w", aws.ToString(lb.LoadBalancerName), err)
			}

			var zones []string
			for _, az := range lb.AvailabilityZones {
				zones = append(zones, aws.ToString(az.ZoneName))
			}
			state := ""
			if lb.State != nil {
				state = string(lb.State.Code)
			}

			lbs = append(lbs, models.LoadBalancerInfo{
				ARN:               lbArn,
				Name:              aws.ToString(lb.LoadBalancerName),
				Type:              string(lb.Type),
				Scheme:            string(lb.Scheme),
				State:             state,
				VpcID:             aws.ToString(lb.VpcId),
				Region:            region,
				AvailabilityZones: zones,
				CreatedTime:       aws.ToTime(lb.CreatedTime),
				Listeners:         listeners,
				TargetGroups:      targetGroups,
			})
		}
		return lbs, out.NextMarker, nil
	})
}

func listenersForLB(ctx context.Context, client elbAPI, lbArn string) ([]models.ListenerInfo, error) {
	out, err := client.DescribeListeners(ctx, &elbv2.DescribeListenersInput{
		LoadBalancerArn: aws.String(lbArn),
	})
	if err != nil {
		return nil, err
	}

	var listeners []models.ListenerInfo
	for _, listener := range out.Listeners {
		listeners = append(listeners, models.ListenerInfo{
			ARN:      aws.ToString(listener.ListenerArn),
			Port:     aws.ToInt32(listener.Port),
			Protocol: string(listener.Protocol),
		})
	}
	return listeners, nil
}

func targetGroupsForLB(ctx context.Context, client elbAPI, lbArn string) ([]models.TargetGroupInfo, error) {
	out, err := client.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
		LoadBalancerArn: aws.String(lbArn),
	})
	if err != nil {
		return nil, err
	}

	var groups []models.TargetGroupInfo
	for _, tg := range out.TargetGroups {
		groups = append(groups, models.TargetGroupInfo{
			ARN:      aws.ToString(tg.TargetGroupArn),
			Name:     aws.ToString(tg.TargetGroupName),
			Protocol: string(tg.Protocol),
			Port:     aws.ToInt32(tg.Port),
			VpcID:    aws.ToString(tg.VpcId),
		})
	}
	return groups, nil
}
