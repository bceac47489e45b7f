package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEC2 struct {
	pages []*ec2.DescribeInstancesOutput
	calls int
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	out := f.pages[f.calls]
	f.calls++
	return out, nil
}

func TestListInstancesMapsFields(t *testing.T) {
	launched := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeEC2{pages: []*ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{{
				Instances: []ec2types.Instance{{
					InstanceId:       aws.String("i-0abc123"),
					InstanceType:     ec2types.InstanceTypeT3Micro,
					State:            &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
					PublicIpAddress:  aws.String("54.1.2.3"),
					PrivateIpAddress: aws.String("10.0.1.5"),
					VpcId:            aws.String("vpc-1"),
					SubnetId:         aws.String("subnet-1"),
					Placement:        &ec2types.Placement{AvailabilityZone: aws.String("us-east-1a")},
					LaunchTime:       aws.Time(launched),
					SecurityGroups: []ec2types.GroupIdentifier{
						{GroupId: aws.String("sg-1")},
						{GroupId: aws.String("sg-2")},
					},
					Tags: []ec2types.Tag{
						{Key: aws.String("Name"), Value: aws.String("web-1")},
						{Key: aws.String("env"), Value: aws.String("prod")},
					},
				}},
			}},
			NextToken: aws.String("page2"),
		},
		{
			Reservations: []ec2types.Reservation{{
				Instances: []ec2types.Instance{{
					InstanceId: aws.String("i-0def456"),
					State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
				}},
			}},
		},
	}}

	instances, err := listInstances(context.Background(), fake, "us-east-1")
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, 2, fake.calls, "both pages are fetched")

	first := instances[0]
	assert.Equal(t, "i-0abc123", first.InstanceID)
	assert.Equal(t, "web-1", first.Name)
	assert.Equal(t, "t3.micro", first.InstanceType)
	assert.Equal(t, "running", first.State)
	assert.Equal(t, "54.1.2.3", first.PublicIP)
	assert.Equal(t, "10.0.1.5", first.PrivateIP)
	assert.Equal(t, "us-east-1a", first.AvailabilityZone)
	assert.Equal(t, "us-east-1", first.Region)
	assert.Equal(t, []string{"sg-1", "sg-2"}, first.SecurityGroups)
	assert.Equal(t, map[string]string{"Name": "web-1", "env": "prod"}, first.Tags)
	assert.Equal(t, launched, first.LaunchTime)

	second := instances[1]
	assert.Equal(t, "i-0def456", second.InstanceID)
	assert.Empty(t, second.Name)
	assert.Equal(t, "stopped", second.State)
}
