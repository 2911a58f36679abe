package domain

import (
	"fmt"
	"time"
)

// TimeOfDay é um horário sem data, medido desde a meia-noite.
type TimeOfDay time.Duration

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

func (t TimeOfDay) parts() (int, int, int) {
	total := int(time.Duration(t) / time.Second)
	return total / 3600, (total % 3600) / 60, total % 60
}

// String formata como HH:MM:SS.
func (t TimeOfDay) String() string {
	h, m, s := t.parts()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Short formata como HH:MM.
func (t TimeOfDay) Short() string {
	h, m, _ := t.parts()
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ParseTimeOfDay aceita HH:MM:SS ou HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(parsed.Hour(), parsed.Minute(), parsed.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}
