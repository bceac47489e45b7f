// Package api exposes the account console over HTTP. It owns no AWS logic:
// handlers translate requests into broker calls and broker failures into
// status codes.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/notpepejulian/aws-manager/internal/models"
	"github.com/notpepejulian/aws-manager/internal/version"
	"github.com/notpepejulian/aws-manager/pkg/aws"
	"github.com/notpepejulian/aws-manager/pkg/store"
)

// Broker is the slice of the credential/inventory service the handlers use.
type Broker interface {
	AssumeRole(ctx context.Context, source aws.CredentialSource) (*models.ResolvedCredentials, *models.Identity, error)
	TestConnection(ctx context.Context, source aws.CredentialSource) (*models.Identity, error)
	GetCompleteInventory(ctx context.Context, source aws.CredentialSource) (*models.InventoryReport, error)
	ListInstances(ctx context.Context, source aws.CredentialSource) ([]models.InstanceInfo, error)
	ListLoadBalancers(ctx context.Context, source aws.CredentialSource) ([]models.LoadBalancerInfo, error)
	ListVPCs(ctx context.Context, source aws.CredentialSource) ([]models.VPCInfo, error)
	ListLogGroups(ctx context.Context, source aws.CredentialSource) ([]models.LogGroupInfo, error)
	ListBuckets(ctx context.Context, source aws.CredentialSource) ([]models.BucketInfo, error)
	ListFunctions(ctx context.Context, source aws.CredentialSource) ([]models.FunctionInfo, error)
	ListLogStreams(ctx context.Context, source aws.CredentialSource, logGroupName string) ([]models.LogStreamInfo, error)
	ListLogEvents(ctx context.Context, source aws.CredentialSource, logGroupName, logStreamName string, limit int32) ([]models.LogEventInfo, error)
	MetricStatistics(ctx context.Context, source aws.CredentialSource, namespace, metricName string, dimensions map[string]string) (*models.MetricStatistics, error)
	VerifyGovernanceUser(ctx context.Context, source aws.CredentialSource, userName string) (string, error)
}

// Server wires the handlers to their collaborators.
type Server struct {
	accounts      store.AccountStore
	broker        Broker
	defaultRegion string
	authToken     string
	rateLimit     int
	logger        zerolog.Logger
}

// NewServer creates the HTTP server facade.
func NewServer(accounts store.AccountStore, broker Broker, defaultRegion, authToken string, rateLimit int, logger zerolog.Logger) *Server {
	return &Server{
		accounts:      accounts,
		broker:        broker,
		defaultRegion: defaultRegion,
		authToken:     authToken,
		rateLimit:     rateLimit,
		logger:        logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if s.rateLimit > 0 {
		r.Use(httprate.LimitByIP(s.rateLimit, time.Minute))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/aws", func(r chi.Router) {
		r.Use(authenticate(s.authToken))

		r.Post("/governance/verify", s.handleVerifyGovernance)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.handleListAccounts)
			r.Post("/", s.handleCreateAccount)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetAccount)
				r.Put("/", s.handleUpdateAccount)
				r.Delete("/", s.handleDeleteAccount)

				r.Post("/assume-role", s.handleAssumeRole)
				r.Get("/test-connection", s.handleTestConnection)
				r.Get("/inventory", s.handleInventory)
				r.Get("/resources/{type}", s.handleListResources)
				r.Get("/metrics", s.handleMetrics)
				r.Get("/logs/{group}/streams", s.handleLogStreams)
				r.Get("/logs/{group}/streams/{stream}/events", s.handleLogEvents)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, version.Get())
}
