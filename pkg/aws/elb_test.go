package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeELB struct {
	loadBalancers  []elbv2types.LoadBalancer
	listenersByLB  map[string][]elbv2types.Listener
	targetsByLB    map[string][]elbv2types.TargetGroup
	listenerScopes []string
	targetScopes   []string
}

func (f *fakeELB) DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	return &elbv2.DescribeLoadBalancersOutput{LoadBalancers: f.loadBalancers}, nil
}

func (f *fakeELB) DescribeListeners(ctx context.Context, params *elbv2.DescribeListenersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error) {
	arn := aws.ToString(params.LoadBalancerArn)
	f.listenerScopes = append(f.listenerScopes, arn)
	return &elbv2.DescribeListenersOutput{Listeners: f.listenersByLB[arn]}, nil
}

func (f *fakeELB) DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error) {
	arn := aws.ToString(params.LoadBalancerArn)
	f.targetScopes = append(f.targetScopes, arn)
	return &elbv2.DescribeTargetGroupsOutput{TargetGroups: f.targetsByLB[arn]}, nil
}

func TestListLoadBalancersEnrichesEach(t *testing.T) {
	webARN := "arn:aws:elasticloadbalancing:us-east-1:123456789012:loadbalancer/app/web/1"
	apiARN := "arn:aws:elasticloadbalancing:us-east-1:123456789012:loadbalancer/net/api/2"

	fake := &fakeELB{
		loadBalancers: []elbv2types.LoadBalancer{
			{
				LoadBalancerArn:  aws.String(webARN),
				LoadBalancerName: aws.String("web"),
				Type:             elbv2types.LoadBalancerTypeEnumApplication,
				Scheme:           elbv2types.LoadBalancerSchemeEnumInternetFacing,
				State:            &elbv2types.LoadBalancerState{Code: elbv2types.LoadBalancerStateEnumActive},
				VpcId:            aws.String("vpc-1"),
				AvailabilityZones: []elbv2types.AvailabilityZone{
					{ZoneName: aws.String("us-east-1a")},
					{ZoneName: aws.String("us-east-1b")},
				},
			},
			{
				LoadBalancerArn:  aws.String(apiARN),
				LoadBalancerName: aws.String("api"),
				Type:             elbv2types.LoadBalancerTypeEnumNetwork,
			},
		},
		listenersByLB: map[string][]elbv2types.Listener{
			webARN: {
				{ListenerArn: aws.String(webARN + "/l1"), Port: aws.Int32(443), Protocol: elbv2types.ProtocolEnumHttps},
			},
		},
		targetsByLB: map[string][]elbv2types.TargetGroup{
			webARN: {
				{TargetGroupArn: aws.String("tg-arn"), TargetGroupName: aws.String("web-tg"),
					Port: aws.Int32(8080), Protocol: elbv2types.ProtocolEnumHttp, VpcId: aws.String("vpc-1")},
			},
		},
	}

	lbs, err := listLoadBalancers(context.Background(), fake, "us-east-1")
	require.NoError(t, err)
	require.Len(t, lbs, 2)

	web := lbs[0]
	assert.Equal(t, "web", web.Name)
	assert.Equal(t, "application", web.Type)
	assert.Equal(t, "internet-facing", web.Scheme)
	assert.Equal(t, "active", web.State)
	assert.Equal(t, []string{"us-east-1a", "us-east-1b"}, web.AvailabilityZones)
	require.Len(t, web.Listeners, 1)
	assert.EqualValues(t, 443, web.Listeners[0].Port)
	assert.Equal(t, "HTTPS", web.Listeners[0].Protocol)
	require.Len(t, web.TargetGroups, 1)
	assert.Equal(t, "web-tg", web.TargetGroups[0].Name)

	api := lbs[1]
	assert.Empty(t, api.Listeners)
	assert.Empty(t, api.TargetGroups)

	// Listener and target-group lookups are scoped per load balancer.
	assert.Equal(t, []string{webARN, apiARN}, fake.listenerScopes)
	assert.Equal(t, []string{webARN, apiARN}, fake.targetScopes)
}
