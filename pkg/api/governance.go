package api

import (
	"encoding/json"
	"net/http"

	"github.com/notpepejulian/aws-manager/pkg/aws"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

type governanceVerifyRequest struct {
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	IAMUserName     string `json:"iamUserName"`
	Region          string `json:"region"`
}

// handleVerifyGovernance checks a static-key registration before it is
// accepted: the keys must yield a working session and the named IAM user
// must exist. The keys travel only through this request; the response
// carries the user's ARN, never the secret.
func (s *Server) handleVerifyGovernance(w http.ResponseWriter, r *http.Request) {
	var req governanceVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "invalid request body"})
		return
	}
	if req.AccessKeyID == "" || req.SecretAccessKey == "" || req.IAMUserName == "" {
		respondJSON(w, http.StatusBadRequest, envelope{Error: "accessKeyId, secretAccessKey and iamUserName are required"})
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

	userARN, err := s.broker.VerifyGovernanceUser(r.Context(), aws.CredentialSource{
		AccessKeyID:     req.AccessKeyID,
		SecretAccessKey: req.SecretAccessKey,
		Region:          region,
	}, req.IAMUserName)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "governance credentials verified", map[string]string{
		"iamUserArn": userARN,
	})
}
