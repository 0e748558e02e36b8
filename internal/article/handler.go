package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ogf-media/portal-core/internal/auth"
)

// Handler exposes HTTP endpoints for the article feed, submission and
// moderation.
type Handler struct {
	svc    *Service
	ident  *auth.Identifier
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, ident *auth.Identifier, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, ident: ident, logger: logger}
}

// Feed handles GET /api/articles.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	var channelID int64
	if v := r.URL.Query().Get("channel_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid channel_id"})
			return
		}
		channelID = id
	}
	articles, err := h.svc.Feed(r.Context(), status, channelID)
	if err != nil {
		h.logger.Errorw("list articles failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// Get handles GET /api/articles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	a, err := h.svc.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		h.logger.Errorw("get article failed", "id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateRequest is the body for article submission.
type CreateRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ChannelID int64  `json:"channel_id"`
}

// Create handles POST /api/articles.
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
	id, err := h.svc.Submit(r.Context(), userID, req.ChannelID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
			return
		}
		h.logger.Errorw("create article failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": "pending"})
}

// ModerateRequest is the body for article moderation.
type ModerateRequest struct {
	Action     string `json:"action"`
	IsBreaking bool   `json:"is_breaking"`
}

// Moderate handles PUT /api/articles/{id}/moderate.
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	if !h.ident.IsAdmin(r.Context(), r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid"})
		return
	}
	var req ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid"})
		return
	}
	status, err := h.svc.Moderate(r.Context(), id, req.Action, req.IsBreaking)
	if err != nil {
		if errors.Is(err, ErrBadAction) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid"})
			return
		}
		h.logger.Errorw("moderate article failed", "id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "moderate failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
