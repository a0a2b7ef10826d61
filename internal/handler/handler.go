package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/boa-labs/preapproval/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler exposes the pre-approval pipeline over HTTP.
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler.
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type assessRequest struct {
	Months int `json:"months"`
}

type challengeRequest struct {
	TermsProposal  *models.TermsProposal  `json:"terms_proposal"`
	RiskAssessment models.RiskSummary     `json:"risk_assessment"`
	SpendingData   models.SpendingSummary `json:"spending_data"`
}

// Register handles user registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Registration failed for %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Preapproval returns the combined pre-approval response for the
// authenticated user.
func (h *Handler) Preapproval(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value("userID").(string)
	if !ok || username == "" {
		writeError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pre, err := h.svc.GetPreapproval(r.Context(), username)
	if err != nil {
		h.log.Errorf("Pre-approval for %s degraded: %v", username, err)
	}
	writeJSON(w, http.StatusOK, pre)
}

// Assess runs a risk assessment for the authenticated user.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value("userID").(string)
	if !ok || username == "" {
		writeError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	req := assessRequest{Months: 6}
	if r.Body != nil {
		// Body is optional; malformed JSON still gets the default window.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Months <= 0 {
		req.Months = 6
	}

	assessment, err := h.svc.AssessRisk(username, req.Months)
	if err != nil {
		h.log.Warnf("Assessment for %s used fallback data: %v", username, err)
	}
	writeJSON(w, http.StatusOK, assessment)
}

// ChallengeTerms stress-tests an externally supplied terms proposal.
func (h *Handler) ChallengeTerms(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TermsProposal == nil {
		writeError(w, http.StatusBadRequest, "Missing terms_proposal in request")
		return
	}

	result := h.svc.ChallengeTerms(*req.TermsProposal, req.RiskAssessment, req.SpendingData)
	writeJSON(w, http.StatusOK, result)
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "preapproval"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
