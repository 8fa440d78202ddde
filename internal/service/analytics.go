package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"course-upgrade-service/internal/repository"
	"course-upgrade-service/internal/upgrade"
)

// analytics event names
const (
	eventUpgradeSuccess     = "course_upgrade_success"
	eventUpgradeError       = "course_upgrade_error"
	eventPaymentError       = "course_upgrade_payment_error"
	eventPaymentCancelError = "course_upgrade_payment_cancel_error"
	eventErrorAction        = "course_upgrade_error_action"
)

type analyticsServiceImpl struct {
	events repository.AnalyticsEventRepository
	log    zerolog.Logger
}

// NewAnalyticsService returns an upgrade.Analytics sink that logs every
// event and keeps an audit row for it. Emission is fire and forget; a
// failed append never surfaces to the caller.
func NewAnalyticsService(events repository.AnalyticsEventRepository, log zerolog.Logger) upgrade.Analytics {
	return &analyticsServiceImpl{
		events: events,
		log:    log,
	}
}

func (s *analyticsServiceImpl) TrackUpgradeSuccess(p upgrade.EventProps) {
	s.track(eventUpgradeSuccess, p)
}

func (s *analyticsServiceImpl) TrackUpgradeError(p upgrade.EventProps) {
	s.track(eventUpgradeError, p)
}

func (s *analyticsServiceImpl) TrackPaymentError(cancelled bool, p upgrade.EventProps) {
	if cancelled {
		s.track(eventPaymentCancelError, p)
		return
	}
	s.track(eventPaymentError, p)
}

func (s *analyticsServiceImpl) TrackErrorAction(p upgrade.EventProps) {
	s.track(eventErrorAction, p)
}

type eventProperties struct {
	CourseID string `json:"course_id"`
	BlockID  string `json:"block_id,omitempty"`
	Pacing   string `json:"pacing"`
	Price    string `json:"price,omitempty"`
	Screen   string `json:"screen"`
	Error    string `json:"error,omitempty"`
	Flow     string `json:"flow,omitempty"`
	Action   string `json:"action,omitempty"`
}

func (s *analyticsServiceImpl) track(name string, p upgrade.EventProps) {
	props := eventProperties{
		CourseID: p.CourseID,
		BlockID:  p.BlockID,
		Pacing:   string(p.Pacing),
		Price:    p.Price,
		Screen:   string(p.Screen),
		Error:    p.Error,
		Flow:     string(p.Flow),
		Action:   string(p.Action),
	}

	s.log.Info().
		Str("event", name).
		Str("course_id", p.CourseID).
		Str("screen", string(p.Screen)).
		Str("error", p.Error).
		Msg("analytics event")

	data, err := json.Marshal(props)
	if err != nil {
		s.log.Warn().Err(err).Str("event", name).Msg("failed to marshal analytics properties")
		return
	}
	if err := s.events.Append(context.Background(), name, string(data)); err != nil {
		s.log.Warn().Err(err).Str("event", name).Msg("failed to persist analytics event")
	}
}
