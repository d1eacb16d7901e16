package chat

import (
	"fmt"

	"poppi/config"
	"poppi/models"
	"poppi/services/availability"
)

// Profile describes the business the assistant books for.
type Profile struct {
	Name          string
	Services      []string
	FeeCents      int64
	AvailableDays []string
	Hours         models.WorkingHours
}

// DefaultProfile mirrors the stock configuration.
func DefaultProfile() Profile {
	return ProfileFromConfig(config.Defaults())
}

// ProfileFromConfig builds a Profile from application settings.
func ProfileFromConfig(cfg config.Config) Profile {
	hours := models.WorkingHours{StartHour: cfg.WorkStartHour, EndHour: cfg.WorkEndHour}
	if hours.EndHour <= hours.StartHour {
		hours = availability.DefaultWorkingHours
	}
	return Profile{
		Name:          cfg.BusinessName,
		Services:      cfg.Services(),
		FeeCents:      cfg.ConsultationFeeCents,
		AvailableDays: cfg.Days(),
		Hours:         hours,
	}
}

// FeeLabel renders the fee as "$15" or "$15.50".
func (p Profile) FeeLabel() string {
	if p.FeeCents%100 == 0 {
		return fmt.Sprintf("$%d", p.FeeCents/100)
	}
	return fmt.Sprintf("$%d.%02d", p.FeeCents/100, p.FeeCents%100)
}

// HoursLabel renders the working window as "9am-5pm".
func (p Profile) HoursLabel() string {
	return hourLabel(p.Hours.StartHour) + "-" + hourLabel(p.Hours.EndHour)
}

func hourLabel(h int) string {
	switch {
	case h == 0 || h == 24:
		return "12am"
	case h < 12:
		return fmt.Sprintf("%dam", h)
	case h == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", h-12)
	}
}
