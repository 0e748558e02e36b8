package channel

import (
	"context"
	"errors"
	"strings"

	"github.com/ogf-media/portal-core/internal/channel/entity"
)

// VerificationLabels maps a verification type to its display label.
var VerificationLabels = map[string]string{
	"government": "Государственный",
	"political":  "Политический",
	"medical":    "Медицинский",
	"news":       "Новостной",
}

// Store is the data access surface the channel service needs.
type Store interface {
	List(ctx context.Context) ([]entity.Channel, error)
	Create(ctx context.Context, c *entity.Channel) (int64, error)
	SetVerification(ctx context.Context, id int64, verified bool, vtype *string) error
}

var (
	ErrValidation          = errors.New("name required")
	ErrBadVerificationType = errors.New("invalid verification type")
)

// Service holds channel business rules.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// List returns all channels, verified first, with display labels attached.
func (s *Service) List(ctx context.Context) ([]entity.Channel, error) {
	channels, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range channels {
		c := &channels[i]
		if c.VerificationType != nil {
			if label, ok := VerificationLabels[*c.VerificationType]; ok {
				c.VerificationLabel = &label
			}
		}
	}
	return channels, nil
}

// Create registers a new channel owned by userID. Icon and color fall back
// to the portal defaults.
func (s *Service) Create(ctx context.Context, userID int64, name, description, icon, color string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrValidation
	}
	if icon == "" {
		icon = "Newspaper"
	}
	if color == "" {
		color = "bg-blue-700"
	}
	c := &entity.Channel{
		Name:        name,
		Description: strings.TrimSpace(description),
		Icon:        icon,
		Color:       color,
		CreatedByID: userID,
	}
	return s.store.Create(ctx, c)
}

// Verify grants or revokes the channel verification badge. Granting requires
// a known verification type; revoking clears it.
func (s *Service) Verify(ctx context.Context, id int64, verified bool, vtype string) error {
	if !verified {
		return s.store.SetVerification(ctx, id, false, nil)
	}
	if _, ok := VerificationLabels[vtype]; !ok {
		return ErrBadVerificationType
	}
	return s.store.SetVerification(ctx, id, true, &vtype)
}
