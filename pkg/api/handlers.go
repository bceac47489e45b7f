package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/notpepejulian/aws-manager/internal/models"
	"github.com/notpepejulian/aws-manager/pkg/aws"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

type createAccountRequest struct {
	AccountID   string `json:"accountId"`
	AccountName string `json:"accountName"`
	RoleARN     string `json:"roleArn"`
	Region      string `json:"region"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// updateAccountRequest is the partial-update body. IsActive is a pointer so
// an omitted flag is distinguishable from an explicit false.
type updateAccountRequest struct {
	AccountName string `json:"accountName"`
	RoleARN     string `json:"roleArn"`
	Region      string `json:"region"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type assumeRoleRequest struct {
	MFACode string `json:"mfaCode"`
}

// listResult carries a per-type listing together with any partial-failure
// entries, so a degraded collection still returns what it had.
type listResult struct {
	Items  any                        `json:"items"`
	Errors []models.CollectionFailure `json:"errors,omitempty"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.List(r.Context(), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "invalid request body"})
		return
	}

	if req.AccountID == "" || req.AccountName == "" || req.RoleARN == "" {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "accountId, accountName and roleArn are required"})
		return
	}
	if !accountIDPattern.MatchString(req.AccountID) {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "accountId must be exactly 12 digits"})
		return
	}

	region := req.Region
	if region == "" {
		region = s.defaultRegion
	}
	if !utils.IsValidRegion(region) {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "unknown region " + region})
		return
	}

	// A bare role name is completed into a full ARN for the account.
	roleARN := req.RoleARN
	if !strings.HasPrefix(roleARN, "arn:") {
		roleARN = fmt.Sprintf("arn:aws:iam::%s:role/%s", req.AccountID, req.RoleARN)
	}
	if !aws.ValidRoleARN(roleARN) {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "roleArn must match arn:aws:iam::<12-digit-account>:role/<name>"})
		return
	}

	account, err := s.accounts.Create(r.Context(), &models.Account{
		UserID:      userID(r),
		AccountID:   req.AccountID,
		AccountName: req.AccountName,
		RoleARN:     roleARN,
		Description: req.Description,
		Region:      region,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondMessage(w, http.StatusCreated, "AWS account registered", account)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, account)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "invalid request body"})
		return
	}
	if req.Region != "" && !utils.IsValidRegion(req.Region) {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "unknown region " + req.Region})
		return
	}
	if req.RoleARN != "" && !aws.ValidRoleARN(req.RoleARN) {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "roleArn must match arn:aws:iam::<12-digit-account>:role/<name>"})
		return
	}

	account, err := s.accounts.Update(r.Context(), &models.AccountUpdate{
		ID:          chi.URLParam(r, "id"),
		UserID:      userID(r),
		AccountName: req.AccountName,
		RoleARN:     req.RoleARN,
		Description: req.Description,
		Region:      req.Region,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "AWS account updated", account)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), chi.URLParam(r, "id"), userID(r)); err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "AWS account deleted", nil)
}

// handleAssumeRole resolves the account's role and, depending on the
// outcome, records success or failure on the registration before answering.
func (s *Server) handleAssumeRole(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	var req assumeRoleRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	creds, identity, err := s.broker.AssumeRole(r.Context(), s.sourceFor(account, req.MFACode))
	if err != nil {
		if isCredentialFailure(err) {
			if recordErr := s.accounts.RecordAssumeFailure(r.Context(), account.ID, err.Error()); recordErr != nil {
				s.logger.Error().Err(recordErr).Str("account", account.ID).Msg("recording assume failure")
			}
		}
		respondError(w, s.logger, err)
		return
	}

	if recordErr := s.accounts.RecordAssumeSuccess(r.Context(), account.ID); recordErr != nil {
		s.logger.Error().Err(recordErr).Str("account", account.ID).Msg("recording assume success")
	}

	respondMessage(w, http.StatusOK, "role assumed", map[string]any{
		"credentials": creds,
		"identity":    identity,
	})
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	identity, err := s.broker.TestConnection(r.Context(), s.sourceFor(account, ""))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "connection established", identity)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	report, err := s.broker.GetCompleteInventory(r.Context(), s.sourceFor(account, ""))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, report)
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	source := s.sourceFor(account, "")
	ctx := r.Context()

	var items any
	var listErr error
	switch chi.URLParam(r, "type") {
	case "instances":
		items, listErr = s.broker.ListInstances(ctx, source)
	case "load-balancers":
		items, listErr = s.broker.ListLoadBalancers(ctx, source)
	case "vpcs":
		items, listErr = s.broker.ListVPCs(ctx, source)
	case "log-groups":
		items, listErr = s.broker.ListLogGroups(ctx, source)
	case "buckets":
		items, listErr = s.broker.ListBuckets(ctx, source)
	case "functions":
		items, listErr = s.broker.ListFunctions(ctx, source)
	default:
		respondJSON(w, http.StatusNotFound, envelope{Error: "unknown resource type"})
		return
	}

	if listErr != nil {
		// A mid-stream collection failure is a degraded result, not a hard
		// error: return the partial items with the failure attached.
		var collErr *aws.CollectionError
		if errors.As(listErr, &collErr) {
			respondData(w, http.StatusOK, listResult{
				Items: items,
				Errors: []models.CollectionFailure{
					{ResourceType: collErr.ResourceType, Message: collErr.Error()},
				},
			})
			return
		}
		respondError(w, s.logger, listErr)
		return
	}
	respondData(w, http.StatusOK, listResult{Items: items})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	namespace := r.URL.Query().Get("namespace")
	metricName := r.URL.Query().Get("metric")
	if namespace == "" || metricName == "" {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "namespace and metric query parameters are required"})
		return
	}
	dimensions := parseDimensions(r.URL.Query().Get("dimensions"))

	stats, err := s.broker.MetricStatistics(r.Context(), s.sourceFor(account, ""), namespace, metricName, dimensions)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) handleLogStreams(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	streams, err := s.broker.ListLogStreams(r.Context(), s.sourceFor(account, ""), chi.URLParam(r, "group"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, streams)
}

func (s *Server) handleLogEvents(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	limit := int64(100)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := s.broker.ListLogEvents(r.Context(), s.sourceFor(account, ""),
		chi.URLParam(r, "group"), chi.URLParam(r, "stream"), int32(limit))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondData(w, http.StatusOK, events)
}

func (s *Server) sourceFor(account *models.Account, mfaCode string) aws.CredentialSource {
	region := account.Region
	if region == "" {
		region = s.defaultRegion
	}
	return aws.CredentialSource{
		RoleARN: account.RoleARN,
		MFACode: mfaCode,
		Region:  region,
	}
}

func isCredentialFailure(err error) bool {
	var configErr *aws.ConfigError
	var assumeErr *aws.AssumeRoleError
	return errors.As(err, &configErr) || errors.As(err, &assumeErr)
}

// parseDimensions parses "Name=Value,Name=Value" query syntax.
func parseDimensions(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	dims := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if ok && name != "" {
			dims[name] = value
		}
	}
	return dims
}
