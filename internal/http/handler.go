package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
	"github.com/wisewolf-edu/onboarding-service/internal/workflow"
)

// EnrollmentRunner runs the student enrollment workflow.
type EnrollmentRunner interface {
	Enroll(ctx context.Context, in workflow.EnrollInput) (*workflow.EnrollResult, error)
}

// ProvisionRunner runs the tenant provisioning workflow.
type ProvisionRunner interface {
	Provision(ctx context.Context, in workflow.ProvisionInput) (*workflow.ProvisionResult, error)
}

// Handler exposes the onboarding workflows over JSON/HTTP.
type Handler struct {
	enroller    EnrollmentRunner
	provisioner ProvisionRunner
}

func NewHandler(enroller EnrollmentRunner, provisioner ProvisionRunner) *Handler {
	return &Handler{enroller: enroller, provisioner: provisioner}
}

type enrollRequest struct {
	LeadID   string `json:"leadId"`
	PlanID   string `json:"planId"`
	TenantID string `json:"tenantId"`
}

type enrollResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SubscriptionID string `json:"subscriptionId"`
}

// Enroll handles POST /v1/enrollments.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, workflow.E(workflow.KindValidation, "request body must be valid JSON", err))
		return
	}

	res, err := h.enroller.Enroll(r.Context(), workflow.EnrollInput{
		LeadID:   req.LeadID,
		PlanID:   req.PlanID,
		TenantID: req.TenantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, enrollResponse{
		Success:        true,
		Message:        "Student enrolled successfully",
		SubscriptionID: res.SubscriptionID,
	})
}

type provisionRequest struct {
	Lead struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"lead"`
	SchoolName string `json:"schoolName"`
	Slug       string `json:"slug"`
	PlanID     string `json:"planId"`
}

type provisionResponse struct {
	Tenant    *model.Tenant `json:"tenant"`
	InviteURL string        `json:"inviteUrl"`
	// Warning reports a best-effort lead status update failure; the tenant
	// was still created.
	Warning string `json:"warning,omitempty"`
}

// Provision handles POST /v1/tenants.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, workflow.E(workflow.KindValidation, "request body must be valid JSON", err))
		return
	}

	in := workflow.ProvisionInput{
		LeadName:     req.Lead.Name,
		LeadEmail:    req.Lead.Email,
		LeadPhone:    req.Lead.Phone,
		SchoolName:   req.SchoolName,
		SlugOverride: req.Slug,
	}
	if req.Lead.ID != "" {
		leadID, err := uuid.Parse(req.Lead.ID)
		if err != nil {
			writeError(w, workflow.E(workflow.KindValidation, "lead.id is not a valid identifier", err))
			return
		}
		in.LeadID = leadID
	}
	if req.PlanID != "" {
		planID, err := uuid.Parse(req.PlanID)
		if err != nil {
			writeError(w, workflow.E(workflow.KindValidation, "planId is not a valid identifier", err))
			return
		}
		in.PlanID = &planID
	}

	res, err := h.provisioner.Provision(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := provisionResponse{Tenant: res.Tenant, InviteURL: res.InviteURL}
	if res.LeadStatusErr != nil {
		resp.Warning = workflow.MessageOf(res.LeadStatusErr)
	}
	writeJSON(w, http.StatusCreated, resp)
}

type errorResponse struct {
	Error string        `json:"error"`
	Kind  workflow.Kind `json:"kind,omitempty"`
}

// writeError maps workflow error kinds to HTTP statuses. The body carries
// both the kind and the human-readable message so callers can branch
// without parsing text.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch workflow.KindOf(err) {
	case workflow.KindValidation:
		status = http.StatusBadRequest
	case workflow.KindNotFound:
		status = http.StatusNotFound
	case workflow.KindIntegration:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: workflow.MessageOf(err), Kind: workflow.KindOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
