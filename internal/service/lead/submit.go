package lead

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/metrics"
	"github.com/janisto/realty-portal/internal/service/notify"
)

// Service captures leads.
type Service struct {
	repo         Repository
	personalizer Personalizer
	notifier     notify.Notifier
	now          func() time.Time
}

// NewService wires a lead service. personalizer and notifier may be nil.
func NewService(repo Repository, personalizer Personalizer, notifier notify.Notifier) *Service {
	return &Service{
		repo:         repo,
		personalizer: personalizer,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Submit validates and stores a lead, then records the visitor's city and
// notifies the agents. Only validation and persistence failures are
// returned; personalization and notification problems are logged.
func (s *Service) Submit(ctx context.Context, visitorID string, in Input) (*Lead, error) {
	sub := sanitize(in)
	if err := sub.validate(); err != nil {
		applog.LogInfo(ctx, "lead rejected", zap.Error(err))
		return nil, err
	}

	lead := &Lead{
		ID:           uuid.NewString(),
		Name:         sub.Name,
		Email:        sub.Email,
		Phone:        sub.Phone,
		Message:      sub.Message,
		PostalCode:   sub.PostalCode,
		Street:       sub.Street,
		Neighborhood: sub.Neighborhood,
		City:         sub.normalizedCity(),
		State:        sub.State,
		PropertyID:   sub.PropertyID,
		Source:       Source(sub.Source),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, lead); err != nil {
		applog.LogError(ctx, "lead insert failed", err, zap.String("leadId", lead.ID))
		return nil, &PersistenceError{cause: err}
	}
	metrics.LeadSubmitted(string(lead.Source))
	applog.LogInfo(ctx, "lead captured",
		zap.String("leadId", lead.ID),
		zap.String("source", string(lead.Source)),
		zap.String("city", lead.City),
	)

	if s.personalizer != nil && visitorID != "" && lead.City != "" {
		if err := s.personalizer.Set(ctx, visitorID, lead.City); err != nil {
			applog.LogWarn(ctx, "personalization update failed",
				zap.String("leadId", lead.ID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		n := notify.Notification{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Message:   lead.Message,
			City:      sub.City,
			State:     lead.State,
			Source:    string(lead.Source),
			CreatedAt: lead.CreatedAt,
		}
		// The lead is stored; a client disconnect must not abort delivery.
		if err := s.notifier.NotifyLead(context.WithoutCancel(ctx), n); err != nil {
			metrics.LeadNotificationFailed(s.notifier.Name())
			applog.LogError(ctx, "lead notification failed", err, zap.String("leadId", lead.ID))
		}
	}

	return lead, nil
}

// Recent returns the most recent leads, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	leads, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, &PersistenceError{cause: err}
	}
	return leads, nil
}

// Get returns one lead. Unknown ids return ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	lead, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &PersistenceError{cause: err}
	}
	return lead, nil
}
