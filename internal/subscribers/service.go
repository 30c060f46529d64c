package subscribers

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masstransitco/mtc-toys/pkg/db/models"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
)

// DefaultSource labels signups that do not state where they came from.
const DefaultSource = "website"

// Service records marketing opt-ins. Subscribing twice refreshes the
// existing row instead of failing.
type Service interface {
	Subscribe(ctx context.Context, email, source string) error
}

type service struct {
	db *gorm.DB
}

// NewService builds the subscribers service.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	return &service{db: db}, nil
}

func (s *service) Subscribe(ctx context.Context, email, source string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}

	row := models.Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Source:       source,
		SubscribedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"source", "subscribed_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save subscriber")
	}
	return nil
}
