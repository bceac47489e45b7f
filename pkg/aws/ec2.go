package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/notpepejulian/aws-manager/internal/models"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

const resourceTypeInstances = "instances"

type ec2InstancesAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// GetInstances returns every EC2 instance in the account's region, one
// InstanceInfo per instance regardless of state.
func (b *ClientBundle) GetInstances(ctx context.Context) ([]models.InstanceInfo, error) {
	return listInstances(ctx, b.EC2, b.region)
}

func listInstances(ctx context.Context, client ec2InstancesAPI, region string) ([]models.InstanceInfo, error) {
	return collectPages(ctx, resourceTypeInstances, func(ctx context.Context, token *string) ([]models.InstanceInfo, *string, error) {
		out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			MaxResults: aws.Int32(100),
			NextToken:  token,
		})
		if err != nil {
			return nil, nil, err
		}

		var instances []models.InstanceInfo
		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				if instance.InstanceId == nil {
					continue
				}

				var groups []string
				for _, sg := range instance.SecurityGroups {
					groups = append(groups, aws.ToString(sg.GroupId))
				}

				az := ""
				if instance.Placement != nil {
					az = aws.ToString(instance.Placement.AvailabilityZone)
				}
				state := ""
				if instance.State != nil {
					state = string(instance.State.Name)
				}

				instances = append(instances, models.InstanceInfo{
					InstanceID:       aws.ToString(instance.InstanceId),
					Name:             utils.GetName(instance.Tags),
					InstanceType:     string(instance.InstanceType),
					State:            state,
					PublicIP:         aws.ToString(instance.PublicIpAddress),
					PrivateIP:        aws.ToString(instance.PrivateIpAddress),
					VpcID:            aws.ToString(instance.VpcId),
					SubnetID:         aws.ToString(instance.SubnetId),
					SecurityGroups:   groups,
					AvailabilityZone: az,
					Region:           region,
					Tags:             utils.GetTagsMap(instance.Tags),
					LaunchTime:       aws.ToTime(instance.LaunchTime),
				})
			}
		}
		return instances, out.NextToken, nil
	})
}
