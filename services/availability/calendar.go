package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"poppi/models"
)

// ErrCalendarNotConfigured is returned when the service-account credentials
// are missing. Nothing at request time can recover from it.
var ErrCalendarNotConfigured = errors.New("calendar service unavailable")

const maxEventsPerDay = 250

// CalendarClient reports the busy intervals of a calendar day.
type CalendarClient interface {
	BusyIntervals(ctx context.Context, day time.Time) ([]models.BusyInterval, error)
}

type listEventsFunc func(ctx context.Context, calendarID, timeMin, timeMax string) ([]*calendar.Event, error)

// GoogleCalendarClient reads events from Google Calendar with a service account.
type GoogleCalendarClient struct {
	calendarID string
	listEvents listEventsFunc
}

// NewGoogleCalendarClient builds a read-only Calendar client. Literal "\n"
// sequences in privateKey are expanded, as keys are usually stored on one line.
func NewGoogleCalendarClient(ctx context.Context, email, privateKey, calendarID string) (*GoogleCalendarClient, error) {
	if email == "" || privateKey == "" {
		return nil, ErrCalendarNotConfigured
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		Scopes:     []string{calendar.CalendarReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &GoogleCalendarClient{
		calendarID: calendarID,
		listEvents: func(ctx context.Context, calendarID, timeMin, timeMax string) ([]*calendar.Event, error) {
			events, err := svc.Events.List(calendarID).
				TimeMin(timeMin).
				TimeMax(timeMax).
				SingleEvents(true).
				OrderBy("startTime").
				MaxResults(maxEventsPerDay).
				Context(ctx).
				Do()
			if err != nil {
				return nil, err
			}
			return events.Items, nil
		},
	}, nil
}

// BusyIntervals lists the events between 00:00:00Z and 23:59:59Z of day.
func (c *GoogleCalendarClient) BusyIntervals(ctx context.Context, day time.Time) ([]models.BusyInterval, error) {
	date := FormatDay(day)
	items, err := c.listEvents(ctx, c.calendarID, date+"T00:00:00Z", date+"T23:59:59Z")
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return eventsToBusy(items), nil
}

func eventsToBusy(items []*calendar.Event) []models.BusyInterval {
	busy := make([]models.BusyInterval, 0, len(items))
	for _, event := range items {
		if event == nil {
			continue
		}
		busy = append(busy, models.BusyInterval{
			Start: eventTime(event.Start),
			End:   eventTime(event.End),
		})
	}
	return busy
}

// eventTime prefers the timed value and falls back to the all-day date.
func eventTime(edt *calendar.EventDateTime) *time.Time {
	if edt == nil {
		return nil
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return &t
		}
	}
	if edt.Date != "" {
		if t, err := time.ParseInLocation(dayLayout, edt.Date, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}
