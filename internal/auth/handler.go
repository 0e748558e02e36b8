package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Handler exposes HTTP endpoints for Telegram login and admin elevation.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Login handles POST /api/auth/telegram. The body is the raw field set the
// Telegram widget produced, including the hash field.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	result, err := h.svc.Login(r.Context(), widgetFields(body))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoIdentity):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no id"})
		case errors.Is(err, ErrBadSignature):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid telegram data"})
		default:
			h.logger.Errorw("login failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// RequestCodeRequest is the body for the request-admin-code endpoint.
type RequestCodeRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

// RequestCode handles POST /api/auth/request-admin-code.
func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TelegramID == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no telegram_id"})
		return
	}
	sent, err := h.svc.RequestCode(r.Context(), req.TelegramID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAllowed):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed"})
		case errors.Is(err, ErrDeliveryFailed):
			// the code was persisted and is still usable
			h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "code delivery failed"})
		default:
			h.logger.Errorw("request admin code failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "request failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

// VerifyCodeRequest is the body for the verify-admin-code endpoint.
type VerifyCodeRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Code       string `json:"code"`
	UserID     int64  `json:"user_id"`
}

// VerifyCode handles POST /api/auth/verify-admin-code.
func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TelegramID == 0 || req.Code == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	if err := h.svc.VerifyCode(r.Context(), req.TelegramID, req.Code, req.UserID); err != nil {
		switch {
		case errors.Is(err, ErrNoIdentity):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		case errors.Is(err, ErrInvalidCode):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired code"})
		default:
			h.logger.Errorw("verify admin code failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "verify failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"is_admin": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// widgetFields flattens a decoded JSON body into the string map the widget
// signature is computed over. JSON numbers lose no precision here: integral
// floats format without a decimal point, matching what Telegram signed.
func widgetFields(body map[string]any) map[string]string {
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		case nil:
			// omitted
		default:
			b, _ := json.Marshal(t)
			out[k] = string(b)
		}
	}
	return out
}
