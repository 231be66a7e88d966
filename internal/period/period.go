// Package period maps calendar dates to canonical period references
// (day, ISO week, month, quarter, half-year, year) and back.
//
// All dates handled here are calendar days normalized to midnight UTC. Callers
// convert wall-clock instants with Today before asking for a period.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Periodicity is the recurrence of a documentation task.
type Periodicity string

const (
	Daily      Periodicity = "DAILY"
	Weekly     Periodicity = "WEEKLY"
	Monthly    Periodicity = "MONTHLY"
	Quarterly  Periodicity = "QUARTERLY"
	HalfYearly Periodicity = "HALF_YEARLY"
	Yearly     Periodicity = "YEARLY"
)

// All lists the periodicities from finest to coarsest.
var All = []Periodicity{Daily, Weekly, Monthly, Quarterly, HalfYearly, Yearly}

// ErrInvalidPeriodicity is returned for unknown periodicity names.
var ErrInvalidPeriodicity = errors.New("invalid periodicity")

// ErrInvalidRef is returned when a reference string does not denote a period.
var ErrInvalidRef = errors.New("invalid period reference")

var aliases = map[string]Periodicity{
	"daily":       Daily,
	"day":         Daily,
	"weekly":      Weekly,
	"week":        Weekly,
	"monthly":     Monthly,
	"month":       Monthly,
	"quarterly":   Quarterly,
	"quarter":     Quarterly,
	"half_yearly": HalfYearly,
	"half-yearly": HalfYearly,
	"halfyearly":  HalfYearly,
	"half-year":   HalfYearly,
	"halfyear":    HalfYearly,
	"yearly":      Yearly,
	"year":        Yearly,
}

// Valid reports whether p is a known periodicity.
func (p Periodicity) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Quarterly, HalfYearly, Yearly:
		return true
	}
	return false
}

// ParsePeriodicity accepts the enum value or one of its lower-case aliases.
func ParsePeriodicity(s string) (Periodicity, error) {
	if p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, s)
}

// Period is a half-open calendar interval [Start, End) identified by Ref.
type Period struct {
	Periodicity Periodicity `json:"periodicity"`
	Ref         string      `json:"ref"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar day as seen in t's location.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the calendar day of now in loc.
func Today(loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Truncate(now.In(loc))
}

// Ref returns the canonical reference of the p-period containing date.
func Ref(p Periodicity, date time.Time) string {
	d := Truncate(date)
	switch p {
	case Daily:
		return d.Format("2006-01-02")
	case Weekly:
		y, w := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case Monthly:
		return d.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", d.Year(), quarterOf(d.Month()))
	case HalfYearly:
		return fmt.Sprintf("%04d-H%d", d.Year(), halfOf(d.Month()))
	case Yearly:
		return fmt.Sprintf("%04d", d.Year())
	}
	return ""
}

// Of returns the p-period containing date.
func Of(p Periodicity, date time.Time) Period {
	d := Truncate(date)
	var start, end time.Time
	switch p {
	case Daily:
		start = d
		end = d.AddDate(0, 0, 1)
	case Weekly:
		start = d.AddDate(0, 0, -mondayOffset(d))
		end = start.AddDate(0, 0, 7)
	case Monthly:
		start = Date(d.Year(), d.Month(), 1)
		end = start.AddDate(0, 1, 0)
	case Quarterly:
		start = Date(d.Year(), time.Month((quarterOf(d.Month())-1)*3+1), 1)
		end = start.AddDate(0, 3, 0)
	case HalfYearly:
		start = Date(d.Year(), time.Month((halfOf(d.Month())-1)*6+1), 1)
		end = start.AddDate(0, 6, 0)
	case Yearly:
		start = Date(d.Year(), time.January, 1)
		end = start.AddDate(1, 0, 0)
	default:
		return Period{}
	}
	return Period{Periodicity: p, Ref: Ref(p, d), Start: start, End: end}
}

// Parse validates ref against p and returns the period it denotes.
func Parse(p Periodicity, ref string) (Period, error) {
	start, err := parseStart(p, ref)
	if err != nil {
		return Period{}, err
	}
	pd := Of(p, start)
	if pd.Ref != ref {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return pd, nil
}

// Detect infers the periodicity of ref from its shape and parses it.
func Detect(ref string) (Period, error) {
	switch {
	case len(ref) == 4:
		return Parse(Yearly, ref)
	case len(ref) == 7 && ref[5] == 'Q':
		return Parse(Quarterly, ref)
	case len(ref) == 7 && ref[5] == 'H':
		return Parse(HalfYearly, ref)
	case len(ref) == 7:
		return Parse(Monthly, ref)
	case len(ref) == 8 && ref[5] == 'W':
		return Parse(Weekly, ref)
	case len(ref) == 10:
		return Parse(Daily, ref)
	}
	return Period{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
}

func parseStart(p Periodicity, ref string) (time.Time, error) {
	bad := fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	switch p {
	case Daily:
		t, err := time.Parse("2006-01-02", ref)
		if err != nil {
			return time.Time{}, bad
		}
		return t, nil
	case Monthly:
		t, err := time.Parse("2006-01", ref)
		if err != nil {
			return time.Time{}, bad
		}
		return t, nil
	case Yearly:
		y, ok := parseYear(ref)
		if !ok || len(ref) != 4 {
			return time.Time{}, bad
		}
		return Date(y, time.January, 1), nil
	case Weekly:
		if len(ref) != 8 || ref[4] != '-' || ref[5] != 'W' {
			return time.Time{}, bad
		}
		y, ok := parseYear(ref[:4])
		w, err := strconv.Atoi(ref[6:])
		if !ok || err != nil || w < 1 || w > WeeksInYear(y) {
			return time.Time{}, bad
		}
		return isoWeekStart(y, w), nil
	case Quarterly, HalfYearly:
		marker, max, months := byte('Q'), 4, 3
		if p == HalfYearly {
			marker, max, months = 'H', 2, 6
		}
		if len(ref) != 7 || ref[4] != '-' || ref[5] != marker {
			return time.Time{}, bad
		}
		y, ok := parseYear(ref[:4])
		n := int(ref[6] - '0')
		if !ok || n < 1 || n > max {
			return time.Time{}, bad
		}
		return Date(y, time.Month((n-1)*months+1), 1), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriodicity, p)
}

func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 || y > 9999 {
		return 0, false
	}
	return y, true
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in ISO year y.
func WeeksInYear(y int) int {
	_, w := Date(y, time.December, 28).ISOWeek()
	return w
}

func isoWeekStart(y, w int) time.Time {
	jan4 := Date(y, time.January, 4)
	week1 := jan4.AddDate(0, 0, -mondayOffset(jan4))
	return week1.AddDate(0, 0, (w-1)*7)
}

func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func quarterOf(m time.Month) int { return (int(m)-1)/3 + 1 }

func halfOf(m time.Month) int { return (int(m)-1)/6 + 1 }

// Next returns the period following pd.
func (pd Period) Next() Period {
	return Of(pd.Periodicity, pd.End)
}

// Prev returns the period preceding pd.
func (pd Period) Prev() Period {
	return Of(pd.Periodicity, pd.Start.AddDate(0, 0, -1))
}

// Contains reports whether the calendar day of t falls inside pd.
func (pd Period) Contains(t time.Time) bool {
	d := Truncate(t)
	return !d.Before(pd.Start) && d.Before(pd.End)
}

// Days enumerates every calendar day of pd.
func (pd Period) Days() []time.Time {
	var days []time.Time
	for d := pd.Start; d.Before(pd.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// LastDay returns the final calendar day of pd.
func (pd Period) LastDay() time.Time {
	return pd.End.AddDate(0, 0, -1)
}

var monthNames = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Label returns a human readable German label, e.g. "KW 45/2025".
func (pd Period) Label() string {
	s := pd.Start
	switch pd.Periodicity {
	case Daily:
		return s.Format("02.01.2006")
	case Weekly:
		y, w := s.ISOWeek()
		return fmt.Sprintf("KW %d/%d", w, y)
	case Monthly:
		return fmt.Sprintf("%s %d", monthNames[s.Month()-1], s.Year())
	case Quarterly:
		return fmt.Sprintf("Q%d %d", quarterOf(s.Month()), s.Year())
	case HalfYearly:
		return fmt.Sprintf("%d. Halbjahr %d", halfOf(s.Month()), s.Year())
	case Yearly:
		return strconv.Itoa(s.Year())
	}
	return pd.Ref
}

// Overlapping enumerates the p-periods intersecting [start, end).
func Overlapping(p Periodicity, start, end time.Time) []Period {
	start, end = Truncate(start), Truncate(end)
	if !p.Valid() || !start.Before(end) {
		return nil
	}
	var out []Period
	for pd := Of(p, start); pd.Start.Before(end); pd = pd.Next() {
		out = append(out, pd)
	}
	return out
}

// Finer reports whether a is a strictly finer periodicity than b.
func Finer(a, b Periodicity) bool {
	return rank(a) < rank(b)
}

func rank(p Periodicity) int {
	for i, q := range All {
		if q == p {
			return i
		}
	}
	return len(All)
}
