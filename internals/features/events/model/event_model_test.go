package model

import (
	"testing"
	"time"
)

func timeptr(t time.Time) *time.Time { return &t }

func TestRegistrationStatusAt(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	cases := []struct {
		name  string
		event EventModel
		want  string
	}{
		{"no window", EventModel{}, RegistrationOpen},
		{"inside window", EventModel{RegistrationStart: timeptr(earlier), RegistrationEnd: timeptr(later)}, RegistrationOpen},
		{"before start", EventModel{RegistrationStart: timeptr(later)}, RegistrationNotStarted},
		{"after end", EventModel{RegistrationEnd: timeptr(earlier)}, RegistrationClosed},
		{"open ended start", EventModel{RegistrationStart: timeptr(earlier)}, RegistrationOpen},
		{"open ended end", EventModel{RegistrationEnd: timeptr(later)}, RegistrationOpen},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.event.RegistrationStatusAt(now); got != c.want {
				t.Fatalf("status = %q, want %q", got, c.want)
			}
			wantOpen := c.want == RegistrationOpen
			if got := c.event.RegistrationOpenAt(now); got != wantOpen {
				t.Fatalf("open = %v, want %v", got, wantOpen)
			}
		})
	}
}

func TestRegistrationBoundsInclusive(t *testing.T) {
	now := time.Now()
	event := EventModel{RegistrationStart: timeptr(now), RegistrationEnd: timeptr(now)}
	if !event.RegistrationOpenAt(now) {
		t.Fatal("window bounds are inclusive")
	}
}
