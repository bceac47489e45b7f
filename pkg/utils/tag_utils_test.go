package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestGetName(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("env"), Value: aws.String("prod")},
		{Key: aws.String("Name"), Value: aws.String("bastion")},
	}
	assert.Equal(t, "bastion", GetName(tags))
	assert.Empty(t, GetName(nil))
}

func TestGetTagsMap(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("bastion")},
		{Key: aws.String("broken"), Value: nil},
	}
	assert.Equal(t, map[string]string{"Name": "bastion"}, GetTagsMap(tags))
}
