// Package localtime converts between UTC storage instants and the local civil calendar
// that reference hours and day boundaries are defined in.
package localtime

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/now"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a settable clock for tests.
type FixedClock struct {
	mu sync.RWMutex
	t  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t.UTC()
}

func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}

type Zone struct {
	loc   *time.Location
	clock Clock
}

func NewZone(name string, clock Clock) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Zone{loc: loc, clock: clock}, nil
}

func MustZone(name string, clock Clock) *Zone {
	z, err := NewZone(name, clock)
	if err != nil {
		panic(err)
	}
	return z
}

func (z *Zone) Location() *time.Location {
	return z.loc
}

// Now is the current instant in UTC.
func (z *Zone) Now() time.Time {
	return z.clock.Now().UTC()
}

func (z *Zone) Local(t time.Time) time.Time {
	return t.In(z.loc)
}

func (z *Zone) Hour(t time.Time) int {
	return t.In(z.loc).Hour()
}

func (z *Zone) CurrentHour() int {
	return z.Hour(z.Now())
}

// SameLocalHour reports whether a and b fall in the same hour of the same local day.
func (z *Zone) SameLocalHour(a, b time.Time) bool {
	const layout = "2006010215"
	return a.In(z.loc).Format(layout) == b.In(z.loc).Format(layout)
}

// DayBounds returns the first and last instant of t's local day, in UTC.
func (z *Zone) DayBounds(t time.Time) (time.Time, time.Time) {
	n := now.With(t.In(z.loc))
	return n.BeginningOfDay().UTC(), n.EndOfDay().UTC()
}

func (z *Zone) Today() (time.Time, time.Time) {
	return z.DayBounds(z.Now())
}

// YesterdayBounds returns the local calendar day before t's, in UTC.
func (z *Zone) YesterdayBounds(t time.Time) (time.Time, time.Time) {
	return z.DayBounds(t.In(z.loc).AddDate(0, 0, -1))
}

// AtLocalHour returns hour:00 local time on t's local day, in UTC.
func (z *Zone) AtLocalHour(t time.Time, hour int) time.Time {
	begin := now.With(t.In(z.loc)).BeginningOfDay()
	return time.Date(begin.Year(), begin.Month(), begin.Day(), hour, 0, 0, 0, z.loc).UTC()
}

// LastOccurrenceOfHour returns the most recent local hour:00 at or before t, in UTC.
func (z *Zone) LastOccurrenceOfHour(t time.Time, hour int) time.Time {
	at := z.AtLocalHour(t, hour)
	if at.After(t) {
		at = z.AtLocalHour(t.In(z.loc).AddDate(0, 0, -1), hour)
	}
	return at
}

var dateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

func (z *Zone) parseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, date, z.loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.In(z.loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", date)
}

// EndOfLocalDate returns 23:59 local time on the given date, in UTC.
func (z *Zone) EndOfLocalDate(date string) (time.Time, error) {
	d, err := z.parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, z.loc).UTC(), nil
}

// ParseLocal parses a local date and an "HH" or "HH:MM" clock into a UTC instant.
func (z *Zone) ParseLocal(date, clock string) (time.Time, error) {
	d, err := z.parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	var hh, mm int
	clock = strings.TrimSpace(clock)
	if strings.Contains(clock, ":") {
		_, err = fmt.Sscanf(clock, "%d:%d", &hh, &mm)
	} else {
		_, err = fmt.Sscanf(clock, "%d", &hh)
	}
	if err != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return time.Time{}, fmt.Errorf("unrecognised clock %q", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, z.loc).UTC(), nil
}

func (z *Zone) LocalDate(t time.Time) string {
	return t.In(z.loc).Format("2006-01-02")
}
