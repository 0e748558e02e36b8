package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ogf-media/portal-core/internal/auth/entity"
	"github.com/ogf-media/portal-core/pkg/utilities"
)

var (
	ErrNoIdentity     = errors.New("telegram id required")
	ErrBadSignature   = errors.New("invalid telegram data")
	ErrNotAllowed     = errors.New("telegram id not allowed")
	ErrInvalidCode    = errors.New("invalid or expired code")
	ErrDeliveryFailed = errors.New("code delivery failed")
)

// Service implements Telegram widget login and the admin elevation code flow.
type Service struct {
	users    UserStore
	codes    CodeStore
	msg      Messenger
	sessions *Sessions
	logger   *zap.SugaredLogger
	cfg      Config

	now func() time.Time
}

func NewService(users UserStore, codes CodeStore, msg Messenger, logger *zap.SugaredLogger, cfg Config) *Service {
	return &Service{
		users:    users,
		codes:    codes,
		msg:      msg,
		sessions: NewSessions(cfg.SessionSecret, cfg.SessionTTL),
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Sessions exposes the token codec so the request identifier can share it.
func (s *Service) Sessions() *Sessions { return s.sessions }

// LoginResult is the session identity returned to the frontend after login.
type LoginResult struct {
	UserID     int64   `json:"user_id"`
	TelegramID int64   `json:"telegram_id"`
	Username   *string `json:"username"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	PhotoURL   *string `json:"photo_url"`
	IsAdmin    bool    `json:"is_admin"`
	Token      string  `json:"token"`
}

// Login verifies the signed widget payload and upserts the user. When no bot
// token is configured the signature check is skipped: development mode,
// logged loudly so it cannot pass for a production posture.
func (s *Service) Login(ctx context.Context, fields map[string]string) (*LoginResult, error) {
	tgID, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil || tgID == 0 {
		return nil, ErrNoIdentity
	}

	if !VerifyWidgetSignature(s.cfg.BotToken, fields) {
		if s.cfg.BotToken != "" {
			return nil, ErrBadSignature
		}
		s.logger.Warnw("telegram signature check skipped: no bot token configured", "telegram_id", tgID)
	}

	u := &entity.User{
		TelegramID: tgID,
		Username:   optionalField(fields, "username"),
		FirstName:  optionalField(fields, "first_name"),
		LastName:   optionalField(fields, "last_name"),
		PhotoURL:   optionalField(fields, "photo_url"),
	}
	id, isAdmin, err := s.users.UpsertUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.sessions.Issue(id, tgID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{
		UserID:     id,
		TelegramID: tgID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		PhotoURL:   u.PhotoURL,
		IsAdmin:    isAdmin,
		Token:      token,
	}, nil
}

// RequestCode issues a fresh elevation code for an allow-listed Telegram
// identity and delivers it via the messenger. The returned bool reports
// whether the code actually went out. A delivery failure is surfaced as
// ErrDeliveryFailed but the persisted code stays valid.
func (s *Service) RequestCode(ctx context.Context, telegramID int64) (bool, error) {
	if telegramID == 0 {
		return false, ErrNoIdentity
	}
	if !s.allowed(telegramID) {
		return false, ErrNotAllowed
	}

	code, err := randomCode(6)
	if err != nil {
		return false, fmt.Errorf("generate code: %w", err)
	}
	now := s.now()
	c := &entity.AdminCode{
		ID:         utilities.NewRecordID(),
		TelegramID: telegramID,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.CodeTTL),
	}
	if err := s.codes.InsertCode(ctx, c); err != nil {
		return false, fmt.Errorf("insert code: %w", err)
	}

	if !s.msg.Enabled() {
		s.logger.Warnw("admin code not delivered: messenger not configured", "telegram_id", telegramID)
		return false, nil
	}

	text := fmt.Sprintf("🔐 Ваш код администратора ГТРК ОГФ: *%s*\n\nДействителен %d минут.",
		code, int(s.cfg.CodeTTL.Minutes()))
	if err := s.msg.SendMessage(ctx, telegramID, text); err != nil {
		s.logger.Warnw("admin code delivery failed", "telegram_id", telegramID, "err", err)
		return false, ErrDeliveryFailed
	}
	return true, nil
}

// VerifyCode consumes a submitted code and elevates the user. The failure is
// deliberately uniform: the caller cannot tell a wrong code from an expired
// or already-used one.
func (s *Service) VerifyCode(ctx context.Context, telegramID int64, code string, userID int64) error {
	code = strings.TrimSpace(code)
	if telegramID == 0 || code == "" {
		return ErrNoIdentity
	}
	if err := s.codes.ConsumeCode(ctx, telegramID, code, userID); err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}

func (s *Service) allowed(telegramID int64) bool {
	for _, id := range s.cfg.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func optionalField(m map[string]string, key string) *string {
	if v, ok := m[key]; ok && v != "" {
		return &v
	}
	return nil
}

// randomCode draws a uniform n-digit code from crypto/rand so a code cannot
// be guessed within its validity window.
func randomCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
