package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRegion(t *testing.T) {
	assert.True(t, IsValidRegion("us-east-1"))
	assert.True(t, IsValidRegion("ap-northeast-2"))
	assert.False(t, IsValidRegion("mars-north-1"))
	assert.False(t, IsValidRegion(""))
}

func TestGetRegionDescriptiveName(t *testing.T) {
	assert.Equal(t, "EU (Ireland)", GetRegionDescriptiveName("eu-west-1"))
	assert.Equal(t, "xx-test-1", GetRegionDescriptiveName("xx-test-1"))
}

func TestGetDefaultRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	assert.Equal(t, "us-east-1", GetDefaultRegion())

	t.Setenv("AWS_REGION", "eu-central-1")
	assert.Equal(t, "eu-central-1", GetDefaultRegion())

	t.Setenv("AWS_REGION", "not-a-region")
	assert.Equal(t, "us-east-1", GetDefaultRegion())
}
