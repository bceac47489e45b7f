package aws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// inventoryAPI is what the aggregator needs from a client bundle. The
// indirection lets tests simulate per-resource-type outcomes.
type inventoryAPI interface {
	GetInstances(ctx context.Context) ([]models.InstanceInfo, error)
	GetLoadBalancers(ctx context.Context) ([]models.LoadBalancerInfo, error)
	GetVPCs(ctx context.Context) ([]models.VPCInfo, error)
	GetLogGroups(ctx context.Context) ([]models.LogGroupInfo, error)
	GetBuckets(ctx context.Context) ([]models.BucketInfo, error)
	GetFunctions(ctx context.Context) ([]models.FunctionInfo, error)
	GetLogStreams(ctx context.Context, logGroupName string) ([]models.LogStreamInfo, error)
	GetLogEvents(ctx context.Context, logGroupName, logStreamName string, limit int32) ([]models.LogEventInfo, error)
	GetMetricStatistics(ctx context.Context, namespace, metricName string, dimensions map[string]string) (*models.MetricStatistics, error)
	CallerIdentity(ctx context.Context) (*models.Identity, error)
	VerifyIAMUser(ctx context.Context, userName string) (string, error)
}

// Service is the account-scoped entry point to the broker: it resolves
// credentials, builds one client bundle per operation and runs collections
// against it. It holds no per-account state; every operation re-resolves
// credentials so expired or cross-tenant credentials can never be served
// from a cache.
type Service struct {
	provider  *CredentialProvider
	newBundle func(creds *models.ResolvedCredentials, region string) (inventoryAPI, error)
	logger    zerolog.Logger
}

// NewService creates the broker service around a credential provider.
func NewService(provider *CredentialProvider, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		newBundle: func(creds *models.ResolvedCredentials, region string) (inventoryAPI, error) {
			return NewClientBundle(creds, region)
		},
		logger: logger,
	}
}

// Resolve exposes the credential provider to callers that need the raw
// credential set, such as the assume-role endpoint.
func (s *Service) Resolve(ctx context.Context, source CredentialSource) (*models.ResolvedCredentials, error) {
	return s.provider.Resolve(ctx, source)
}

// AssumeRole resolves credentials and confirms them with a caller-identity
// check. The returned credentials belong to the immediate requester only.
func (s *Service) AssumeRole(ctx context.Context, source CredentialSource) (*models.ResolvedCredentials, *models.Identity, error) {
	creds, err := s.provider.Resolve(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := s.newBundle(creds, source.Region)
	if err != nil {
		return nil, nil, err
	}
	identity, err := bundle.CallerIdentity(ctx)
	if err != nil {
		return nil, nil, &AssumeRoleError{RoleARN: source.RoleARN, Reason: "identity check failed: " + err.Error(), Err: err}
	}
	return creds, identity, nil
}

// TestConnection verifies the source yields working credentials and returns
// the resulting caller identity.
func (s *Service) TestConnection(ctx context.Context, source CredentialSource) (*models.Identity, error) {
	_, identity, err := s.AssumeRole(ctx, source)
	return identity, err
}

// GetCompleteInventory resolves credentials once, builds one client bundle
// and collects every resource type concurrently. Tasks are independent:
// a failing type yields its partial items plus an error entry and never
// aborts its siblings. Credential or bundle failure aborts the whole call.
func (s *Service) GetCompleteInventory(ctx context.Context, source CredentialSource) (*models.InventoryReport, error) {
	started := time.Now()

	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}

	report := &models.InventoryReport{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(resourceType string, err error) {
		mu.Lock()
		defer mu.Unlock()
		report.Errors = append(report.Errors, models.CollectionFailure{
			ResourceType: resourceType,
			Message:      collectionMessage(err),
		})
	}

	run := func(resourceType string, collect func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := collect(); err != nil {
				s.logger.Warn().Err(err).Str("resourceType", resourceType).Msg("inventory collection failed")
				fail(resourceType, err)
			}
		}()
	}

	run(resourceTypeInstances, func() error {
		items, err := bundle.GetInstances(ctx)
		report.Instances = items
		return err
	})
	run(resourceTypeLoadBalancers, func() error {
		items, err := bundle.GetLoadBalancers(ctx)
		report.LoadBalancers = items
		return err
	})
	run(resourceTypeVPCs, func() error {
		items, err := bundle.GetVPCs(ctx)
		report.VPCs = items
		return err
	})
	run(resourceTypeLogGroups, func() error {
		items, err := bundle.GetLogGroups(ctx)
		report.LogGroups = items
		return err
	})
	run(resourceTypeBuckets, func() error {
		items, err := bundle.GetBuckets(ctx)
		report.Buckets = items
		return err
	})
	run(resourceTypeFunctions, func() error {
		items, err := bundle.GetFunctions(ctx)
		report.Functions = items
		return err
	})

	wg.Wait()

	// Empty slots render as [] in JSON rather than null.
	if report.Instances == nil {
		report.Instances = []models.InstanceInfo{}
	}
	if report.LoadBalancers == nil {
		report.LoadBalancers = []models.LoadBalancerInfo{}
	}
	if report.VPCs == nil {
		report.VPCs = []models.VPCInfo{}
	}
	if report.LogGroups == nil {
		report.LogGroups = []models.LogGroupInfo{}
	}
	if report.Buckets == nil {
		report.Buckets = []models.BucketInfo{}
	}
	if report.Functions == nil {
		report.Functions = []models.FunctionInfo{}
	}

	s.logger.Info().
		Int("instances", len(report.Instances)).
		Int("loadBalancers", len(report.LoadBalancers)).
		Int("vpcs", len(report.VPCs)).
		Int("logGroups", len(report.LogGroups)).
		Int("buckets", len(report.Buckets)).
		Int("functions", len(report.Functions)).
		Int("failures", len(report.Errors)).
		Dur("took", time.Since(started)).
		Msg("inventory complete")

	return report, nil
}

// ListInstances collects only EC2 instances.
func (s *Service) ListInstances(ctx context.Context, source CredentialSource) ([]models.InstanceInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetInstances(ctx)
}

// ListLoadBalancers collects only load balancers.
func (s *Service) ListLoadBalancers(ctx context.Context, source CredentialSource) ([]models.LoadBalancerInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetLoadBalancers(ctx)
}

// ListVPCs collects only VPCs.
func (s *Service) ListVPCs(ctx context.Context, source CredentialSource) ([]models.VPCInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetVPCs(ctx)
}

// ListLogGroups collects only log groups.
func (s *Service) ListLogGroups(ctx context.Context, source CredentialSource) ([]models.LogGroupInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetLogGroups(ctx)
}

// ListBuckets collects only S3 buckets.
func (s *Service) ListBuckets(ctx context.Context, source CredentialSource) ([]models.BucketInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetBuckets(ctx)
}

// ListFunctions collects only Lambda functions.
func (s *Service) ListFunctions(ctx context.Context, source CredentialSource) ([]models.FunctionInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetFunctions(ctx)
}

// ListLogStreams returns the streams of a log group.
func (s *Service) ListLogStreams(ctx context.Context, source CredentialSource, logGroupName string) ([]models.LogStreamInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetLogStreams(ctx, logGroupName)
}

// ListLogEvents returns the latest events of one log stream.
func (s *Service) ListLogEvents(ctx context.Context, source CredentialSource, logGroupName, logStreamName string, limit int32) ([]models.LogEventInfo, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetLogEvents(ctx, logGroupName, logStreamName, limit)
}

// MetricStatistics runs one CloudWatch statistics query.
func (s *Service) MetricStatistics(ctx context.Context, source CredentialSource, namespace, metricName string, dimensions map[string]string) (*models.MetricStatistics, error) {
	bundle, err := s.bundleFor(ctx, source)
	if err != nil {
		return nil, err
	}
	return bundle.GetMetricStatistics(ctx, namespace, metricName, dimensions)
}

func (s *Service) bundleFor(ctx context.Context, source CredentialSource) (inventoryAPI, error) {
	creds, err := s.provider.Resolve(ctx, source)
	if err != nil {
		return nil, err
	}
	return s.newBundle(creds, source.Region)
}

func collectionMessage(err error) string {
	var collErr *CollectionError
	if errors.As(err, &collErr) {
		return collErr.Error()
	}
	return err.Error()
}
