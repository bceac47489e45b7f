package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/notpepejulian/aws-manager/internal/models"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

const resourceTypeVPCs = "vpcs"

type ec2NetworksAPI interface {
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
}

// GetVPCs returns every VPC in the region, each enriched with its subnets
// and route tables via nested describe calls.
func (b *ClientBundle) GetVPCs(ctx context.Context) ([]models.VPCInfo, error) {
	return listVPCs(ctx, b.EC2, b.region)
}

func listVPCs(ctx context.Context, client ec2NetworksAPI, region string) ([]models.VPCInfo, error) {
	return collectPages(ctx, resourceTypeVPCs, func(ctx context.Context, token *string) ([]models.VPCInfo, *string, error) {
		out, err := client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
			MaxResults: aws.Int32(100),
			NextToken:  token,
		})
		if err != nil {
			return nil, nil, err
		}

		var vpcs []models.VPCInfo
		for _, vpc := range out.Vpcs {
			if vpc.VpcId == nil {
				continue
			}
			vpcID := aws.ToString(vpc.VpcId)

			subnets, err := subnetsForVPC(ctx, client, vpcID)
			if err != nil {
				return nil, nil, fmt.Errorf("subnets for %s: %w", vpcID, err)
			}
			routeTables, err := routeTablesForVPC(ctx, client, vpcID)
			if err != nil {
				return nil, nil, fmt.Errorf("route tables for %s: %w", vpcID, err)
			}

			vpcs = append(vpcs, models.VPCInfo{
				VpcID:       vpcID,
				CidrBlock:   aws.ToString(vpc.CidrBlock),
				State:       string(vpc.State),
				IsDefault:   aws.ToBool(vpc.IsDefault),
				Region:      region,
				Tags:        utils.GetTagsMap(vpc.Tags),
				Subnets:     subnets,
				RouteTables: routeTables,
			})
		}
		return vpcs, out.NextToken, nil
	})
}

func subnetsForVPC(ctx context.Context, client ec2NetworksAPI, vpcID string) ([]models.SubnetInfo, error) {
	out, err := client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return nil, err
	}

	var subnets []models.SubnetInfo
	for _, subnet := range out.Subnets {
		subnets = append(subnets, models.SubnetInfo{
			SubnetID:         aws.ToString(subnet.SubnetId),
			VpcID:            aws.ToString(subnet.VpcId),
			CidrBlock:        aws.ToString(subnet.CidrBlock),
			AvailabilityZone: aws.ToString(subnet.AvailabilityZone),
			State:            string(subnet.State),
		})
	}
	return subnets, nil
}

func routeTablesForVPC(ctx context.Context, client ec2NetworksAPI, vpcID string) ([]models.RouteTableInfo, error) {
	out, err := client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return nil, err
	}

	var tables []models.RouteTableInfo
	for _, rt := range out.RouteTables {
		table := models.RouteTableInfo{
			RouteTableID: aws.ToString(rt.RouteTableId),
			VpcID:        aws.ToString(rt.VpcId),
		}
		for _, route := range rt.Routes {
			table.Routes = append(table.Routes, models.RouteInfo{
				Destination: firstNonEmpty(aws.ToString(route.DestinationCidrBlock), aws.ToString(route.DestinationPrefixListId)),
				Target:      firstNonEmpty(aws.ToString(route.GatewayId), aws.ToString(route.NatGatewayId), aws.ToString(route.VpcPeeringConnectionId)),
				State:       string(route.State),
			})
		}
		for _, assoc := range rt.Associations {
			table.Associations = append(table.Associations, models.RouteTableAssociation{
				AssociationID: aws.ToString(assoc.RouteTableAssociationId),
				SubnetID:      aws.ToString(assoc.SubnetId),
				GatewayID:     aws.ToString(assoc.GatewayId),
			})
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
