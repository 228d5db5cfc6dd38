package domain

import (
	"fmt"
	"time"
)

// Instant is the smallest time step exchanged with the operational store and API callers.
const Instant = time.Millisecond

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: date range bounds are required", ErrInvalidScope)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: range end %s is before start %s", ErrInvalidScope,
			r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	return nil
}

func (r DateRange) Label() string {
	return fmt.Sprintf("%s - %s", r.Start.Format("Jan 2, 2006"), r.End.Format("Jan 2, 2006"))
}

// ReportScope identifies the slice of operational data a report covers.
type ReportScope struct {
	OrganizationID string
	ClientID       string // empty means every client of the organization
	DateRange      *DateRange
}

func (s ReportScope) HasClient() bool {
	return s.ClientID != ""
}

// WithRange returns a copy of the scope bound to r.
func (s ReportScope) WithRange(r DateRange) ReportScope {
	s.DateRange = &r
	return s
}

// WithoutRange returns a copy of the scope with no date range.
func (s ReportScope) WithoutRange() ReportScope {
	s.DateRange = nil
	return s
}

func (s ReportScope) Validate() error {
	if s.OrganizationID == "" {
		return fmt.Errorf("%w: organization is required", ErrInvalidScope)
	}
	if s.DateRange != nil {
		return s.DateRange.Validate()
	}
	return nil
}

// RequireRange validates the scope and additionally requires a date range.
func (s ReportScope) RequireRange() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.DateRange == nil {
		return fmt.Errorf("%w: date range is required", ErrInvalidScope)
	}
	return nil
}

// RequireClient validates the scope and additionally requires a client and a date range.
func (s ReportScope) RequireClient() error {
	if err := s.RequireRange(); err != nil {
		return err
	}
	if s.ClientID == "" {
		return fmt.Errorf("%w: client is required", ErrInvalidScope)
	}
	return nil
}

const (
	DayLayout        = "2006-01-02"
	DefaultRangeDays = 30
)

// ParseDayRange resolves from and to (YYYY-MM-DD, both optional) in now's
// location. to covers its whole day. A missing to defaults to today and a
// missing from to DefaultRangeDays days ending at to.
func ParseDayRange(from, to string, now time.Time) (DateRange, error) {
	loc := now.Location()

	var start, end time.Time
	if from != "" {
		t, err := time.ParseInLocation(DayLayout, from, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid 'from' date format. Expected format: YYYY-MM-DD")
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(DayLayout, to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid 'to' date format. Expected format: YYYY-MM-DD")
		}
		end = t
	}

	if end.IsZero() {
		y, m, d := now.Date()
		end = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -(DefaultRangeDays - 1))
	}

	return DateRange{
		Start: start,
		End:   end.AddDate(0, 0, 1).Add(-Instant),
	}, nil
}
