package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newHandlerFixture(t *testing.T, cfg Config) (*Handler, *serviceFixture) {
	t.Helper()
	f := newServiceFixture(t, cfg)
	return NewHandler(f.svc, zap.NewNop().Sugar()), f
}

func postJSON(t *testing.T, fn http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestLoginHandlerOK(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{})

	rec := postJSON(t, h.Login, map[string]any{
		"id":         12345,
		"first_name": "Ivan",
		"username":   "ivan_news",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res LoginResult
	decodeBody(t, rec, &res)
	if res.TelegramID != 12345 || res.UserID == 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Token == "" {
		t.Fatalf("expected a session token in the response")
	}
}

func TestLoginHandlerNumericID(t *testing.T) {
	// Telegram ids arrive as JSON numbers; they must survive float64 decoding
	h, _ := newHandlerFixture(t, Config{})

	rec := postJSON(t, h.Login, map[string]any{"id": float64(6428885412)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res LoginResult
	decodeBody(t, rec, &res)
	if res.TelegramID != 6428885412 {
		t.Fatalf("expected telegram id 6428885412, got %d", res.TelegramID)
	}
}

func TestLoginHandlerMissingID(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{})

	rec := postJSON(t, h.Login, map[string]any{"first_name": "Ivan"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginHandlerBadSignature(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{BotToken: "bot-token"})

	rec := postJSON(t, h.Login, map[string]any{"id": 12345, "hash": "deadbeef"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "invalid telegram data" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestLoginHandlerInvalidJSON(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestRequestCodeHandlerForbidden(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{AdminIDs: []int64{111}})

	rec := postJSON(t, h.RequestCode, RequestCodeRequest{TelegramID: 12345})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequestCodeHandlerSent(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{AdminIDs: []int64{12345}})

	rec := postJSON(t, h.RequestCode, RequestCodeRequest{TelegramID: 12345})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]bool
	decodeBody(t, rec, &body)
	if !body["sent"] {
		t.Fatalf("expected sent=true, got %v", body)
	}
}

func TestRequestCodeHandlerDeliveryFailure(t *testing.T) {
	h, f := newHandlerFixture(t, Config{AdminIDs: []int64{12345}})
	f.msg.fail = true

	rec := postJSON(t, h.RequestCode, RequestCodeRequest{TelegramID: 12345})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestRequestCodeHandlerMissingID(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{AdminIDs: []int64{12345}})

	rec := postJSON(t, h.RequestCode, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVerifyCodeHandlerFlow(t *testing.T) {
	h, f := newHandlerFixture(t, Config{AdminIDs: []int64{12345}})

	login, err := f.svc.Login(httptest.NewRequest(http.MethodPost, "/", nil).Context(),
		map[string]string{"id": "12345", "first_name": "Ivan"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec := postJSON(t, h.RequestCode, RequestCodeRequest{TelegramID: 12345}); rec.Code != http.StatusOK {
		t.Fatalf("request code: %d", rec.Code)
	}
	code := f.lastCode(t)

	rec := postJSON(t, h.VerifyCode, VerifyCodeRequest{TelegramID: 12345, Code: code, UserID: login.UserID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]bool
	decodeBody(t, rec, &body)
	if !body["is_admin"] {
		t.Fatalf("expected is_admin=true, got %v", body)
	}

	// replaying the same code is rejected with the uniform message
	rec = postJSON(t, h.VerifyCode, VerifyCodeRequest{TelegramID: 12345, Code: code, UserID: login.UserID})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on replay, got %d", rec.Code)
	}
	var errBody map[string]string
	decodeBody(t, rec, &errBody)
	if errBody["error"] != "invalid or expired code" {
		t.Fatalf("unexpected error body: %v", errBody)
	}
}

func TestVerifyCodeHandlerMissingFields(t *testing.T) {
	h, _ := newHandlerFixture(t, Config{})

	for _, body := range []VerifyCodeRequest{
		{TelegramID: 0, Code: "123456"},
		{TelegramID: 12345, Code: ""},
	} {
		rec := postJSON(t, h.VerifyCode, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %+v, got %d", body, rec.Code)
		}
	}
}
