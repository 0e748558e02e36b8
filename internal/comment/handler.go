package comment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ogf-media/portal-core/internal/auth"
)

// Handler exposes HTTP endpoints for comment listing, posting and moderation.
type Handler struct {
	svc    *Service
	ident  *auth.Identifier
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, ident *auth.Identifier, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, ident: ident, logger: logger}
}

// List handles GET /api/comments?article_id=X.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var articleID int64
	if v := r.URL.Query().Get("article_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid article_id"})
			return
		}
		articleID = id
	}
	comments, err := h.svc.List(r.Context(), articleID, r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Errorw("list comments failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// CreateRequest is the body for posting a comment.
type CreateRequest struct {
	ArticleID int64  `json:"article_id"`
	Text      string `json:"text"`
}

// Create handles POST /api/comments. Readers must be logged in to comment.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ident.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Войдите через Telegram для комментирования"})
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	id, err := h.svc.Add(r.Context(), userID, req.ArticleID, req.Text)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
			return
		}
		h.logger.Errorw("create comment failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": "pending"})
}

// ModerateRequest is the body for comment moderation.
type ModerateRequest struct {
	CommentID int64  `json:"comment_id"`
	Action    string `json:"action"`
}

// Moderate handles PUT /api/comments/moderate. Admin only.
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	if !h.ident.IsAdmin(r.Context(), r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}
	var req ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CommentID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid"})
		return
	}
	if _, err := h.svc.Moderate(r.Context(), req.CommentID, req.Action); err != nil {
		if errors.Is(err, ErrBadAction) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid"})
			return
		}
		h.logger.Errorw("moderate comment failed", "comment_id", req.CommentID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "moderate failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
