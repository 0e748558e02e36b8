package channel

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ogf-media/portal-core/internal/auth"
)

// Handler exposes HTTP endpoints for channel listing, creation and
// verification.
type Handler struct {
	svc    *Service
	ident  *auth.Identifier
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, ident *auth.Identifier, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, ident: ident, logger: logger}
}

// List handles GET /api/channels.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	channels, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list channels failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

// CreateRequest is the body for channel creation.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Create handles POST /api/channels/create.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ident.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	id, err := h.svc.Create(r.Context(), userID, req.Name, req.Description, req.Icon, req.Color)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
			return
		}
		h.logger.Errorw("create channel failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "name": req.Name})
}

// VerifyRequest is the body for channel verification.
type VerifyRequest struct {
	ChannelID        int64  `json:"channel_id"`
	VerificationType string `json:"verification_type"`
	IsVerified       *bool  `json:"is_verified"`
}

// Verify handles PUT /api/channels/verify. Admin only.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	if !h.ident.IsAdmin(r.Context(), r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChannelID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "channel_id required"})
		return
	}
	// verifying is the default; is_verified:false revokes
	verified := true
	if req.IsVerified != nil {
		verified = *req.IsVerified
	}
	if err := h.svc.Verify(r.Context(), req.ChannelID, verified, req.VerificationType); err != nil {
		if errors.Is(err, ErrBadVerificationType) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid verification_type"})
			return
		}
		h.logger.Errorw("verify channel failed", "channel_id", req.ChannelID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "verify failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
