package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"poppi/models"
)

// Service answers availability lookups for a single calendar.
type Service struct {
	calendar    CalendarClient
	hours       models.WorkingHours
	slotMinutes int
	logger      *zap.Logger
}

// NewService wires the engine to a calendar. A nil calendar makes every
// lookup fail with ErrCalendarNotConfigured.
func NewService(cal CalendarClient, hours models.WorkingHours, slotMinutes int, logger *zap.Logger) *Service {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	if hours.EndHour <= hours.StartHour {
		hours = DefaultWorkingHours
	}
	return &Service{
		calendar:    cal,
		hours:       hours,
		slotMinutes: slotMinutes,
		logger:      logger,
	}
}

// Configured reports whether a calendar client is attached.
func (s *Service) Configured() bool {
	return s.calendar != nil
}

// Lookup computes the open slots of day and a few following days to suggest.
func (s *Service) Lookup(ctx context.Context, day time.Time) (*models.AvailabilityResponse, error) {
	if s.calendar == nil {
		return nil, ErrCalendarNotConfigured
	}

	busy, err := s.calendar.BusyIntervals(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("fetch busy intervals: %w", err)
	}

	slots := ComputeAvailableSlots(day, busy, s.hours, s.slotMinutes)
	s.logger.Debug("availability computed",
		zap.String("date", FormatDay(day)),
		zap.Int("busy", len(busy)),
		zap.Int("slots", len(slots)),
	)

	return &models.AvailabilityResponse{
		Date:              FormatDay(day),
		AvailableSlots:    slots,
		NextAvailableDays: NextCandidateDays(day, DefaultSuggestions, DefaultHorizonDays),
		Available:         len(slots) > 0,
	}, nil
}
