package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notpepejulian/aws-manager/internal/models"
)

func TestNewClientBundle(t *testing.T) {
	creds := &models.ResolvedCredentials{
		AccessKeyID:     "ASIATESTKEY",
		SecretAccessKey: "test-secret",
		SessionToken:    "test-token",
		Region:          "eu-west-1",
	}

	bundle, err := NewClientBundle(creds, "eu-west-1")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", bundle.Region())
	assert.NotNil(t, bundle.EC2)
	assert.NotNil(t, bundle.ELB)
	assert.NotNil(t, bundle.Logs)
	assert.NotNil(t, bundle.S3)
	assert.NotNil(t, bundle.Lambda)
	assert.NotNil(t, bundle.STS)
}

func TestNewClientBundleRejectsUnknownRegion(t *testing.T) {
	_, err := NewClientBundle(&models.ResolvedCredentials{}, "mars-north-1")

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "region", configErr.Field)
}
