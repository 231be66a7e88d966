package period_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haccp/internal/period"
)

func TestRef(t *testing.T) {
	d := period.Date(2025, time.November, 3)

	tests := []struct {
		p    period.Periodicity
		want string
	}{
		{period.Daily, "2025-11-03"},
		{period.Weekly, "2025-W45"},
		{period.Monthly, "2025-11"},
		{period.Quarterly, "2025-Q4"},
		{period.HalfYearly, "2025-H2"},
		{period.Yearly, "2025"},
	}
	for _, tt := range tests {
		t.Run(string(tt.p), func(t *testing.T) {
			assert.Equal(t, tt.want, period.Ref(tt.p, d))
		})
	}
}

func TestRef_ISOWeekYearBoundary(t *testing.T) {
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
	assert.Equal(t, "2025-W01", period.Ref(period.Weekly, period.Date(2024, time.December, 30)))
	// 2021-01-03 is a Sunday still in ISO week 53 of 2020.
	assert.Equal(t, "2020-W53", period.Ref(period.Weekly, period.Date(2021, time.January, 3)))
}

func TestOf_Bounds(t *testing.T) {
	d := period.Date(2025, time.November, 5)

	w := period.Of(period.Weekly, d)
	assert.Equal(t, period.Date(2025, time.November, 3), w.Start)
	assert.Equal(t, period.Date(2025, time.November, 10), w.End)

	q := period.Of(period.Quarterly, d)
	assert.Equal(t, period.Date(2025, time.October, 1), q.Start)
	assert.Equal(t, period.Date(2026, time.January, 1), q.End)

	h := period.Of(period.HalfYearly, period.Date(2025, time.March, 31))
	assert.Equal(t, "2025-H1", h.Ref)
	assert.Equal(t, period.Date(2025, time.July, 1), h.End)
}

func TestParse_RoundTrip(t *testing.T) {
	refs := map[period.Periodicity]string{
		period.Daily:      "2024-02-29",
		period.Weekly:     "2026-W01",
		period.Monthly:    "2025-12",
		period.Quarterly:  "2025-Q1",
		period.HalfYearly: "2025-H2",
		period.Yearly:     "2030",
	}
	for p, ref := range refs {
		pd, err := period.Parse(p, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, ref, pd.Ref)
		assert.Equal(t, ref, period.Ref(p, pd.Start))
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		p   period.Periodicity
		ref string
	}{
		{period.Daily, "2025-02-29"},
		{period.Daily, "2025-2-1"},
		{period.Weekly, "2025-W53"},
		{period.Weekly, "2025-W00"},
		{period.Weekly, "2025W10"},
		{period.Monthly, "2025-13"},
		{period.Quarterly, "2025-Q5"},
		{period.HalfYearly, "2025-H3"},
		{period.Yearly, "25"},
		{period.Monthly, "2025-Q1"},
	}
	for _, c := range cases {
		_, err := period.Parse(c.p, c.ref)
		assert.ErrorIs(t, err, period.ErrInvalidRef, c.ref)
	}
}

func TestParse_Week53(t *testing.T) {
	pd, err := period.Parse(period.Weekly, "2020-W53")
	require.NoError(t, err)
	assert.Equal(t, period.Date(2020, time.December, 28), pd.Start)
	assert.Equal(t, 53, period.WeeksInYear(2020))
	assert.Equal(t, 52, period.WeeksInYear(2025))
}

func TestDetect(t *testing.T) {
	for ref, want := range map[string]period.Periodicity{
		"2025-11-03": period.Daily,
		"2025-W45":   period.Weekly,
		"2025-11":    period.Monthly,
		"2025-Q4":    period.Quarterly,
		"2025-H2":    period.HalfYearly,
		"2025":       period.Yearly,
	} {
		pd, err := period.Detect(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, want, pd.Periodicity, ref)
	}

	_, err := period.Detect("November")
	assert.ErrorIs(t, err, period.ErrInvalidRef)
}

func TestParsePeriodicity(t *testing.T) {
	p, err := period.ParsePeriodicity("half-year")
	require.NoError(t, err)
	assert.Equal(t, period.HalfYearly, p)

	p, err = period.ParsePeriodicity("WEEKLY")
	require.NoError(t, err)
	assert.Equal(t, period.Weekly, p)

	_, err = period.ParsePeriodicity("hourly")
	assert.ErrorIs(t, err, period.ErrInvalidPeriodicity)
}

func TestNextPrev(t *testing.T) {
	m, _ := period.Parse(period.Monthly, "2025-12")
	assert.Equal(t, "2026-01", m.Next().Ref)
	assert.Equal(t, "2025-11", m.Prev().Ref)

	w, _ := period.Parse(period.Weekly, "2026-W01")
	assert.Equal(t, "2025-W52", w.Prev().Ref)

	h, _ := period.Parse(period.HalfYearly, "2025-H1")
	assert.Equal(t, "2024-H2", h.Prev().Ref)
}

func TestDays_Month(t *testing.T) {
	feb, _ := period.Parse(period.Monthly, "2024-02")
	days := feb.Days()
	require.Len(t, days, 29)
	assert.Equal(t, period.Date(2024, time.February, 1), days[0])
	assert.Equal(t, period.Date(2024, time.February, 29), days[28])
	assert.Equal(t, days[28], feb.LastDay())
}

func TestContains(t *testing.T) {
	q, _ := period.Parse(period.Quarterly, "2025-Q2")
	assert.True(t, q.Contains(time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, q.Contains(period.Date(2025, time.July, 1)))
	assert.False(t, q.Contains(period.Date(2025, time.March, 31)))
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"2025-11-03": "03.11.2025",
		"2025-W45":   "KW 45/2025",
		"2025-03":    "März 2025",
		"2025-Q4":    "Q4 2025",
		"2025-H1":    "1. Halbjahr 2025",
		"2025":       "2025",
	}
	for ref, want := range cases {
		pd, err := period.Detect(ref)
		require.NoError(t, err)
		assert.Equal(t, want, pd.Label())
	}
}

func TestOverlapping_WeeksInMonth(t *testing.T) {
	nov, _ := period.Parse(period.Monthly, "2025-11")
	weeks := period.Overlapping(period.Weekly, nov.Start, nov.End)

	// 2025-11-01 is a Saturday (W44); 2025-11-30 is a Sunday (W48).
	require.Len(t, weeks, 5)
	assert.Equal(t, "2025-W44", weeks[0].Ref)
	assert.Equal(t, "2025-W48", weeks[4].Ref)
}

func TestOverlapping_CoarserThanRange(t *testing.T) {
	nov, _ := period.Parse(period.Monthly, "2025-11")
	years := period.Overlapping(period.Yearly, nov.Start, nov.End)
	require.Len(t, years, 1)
	assert.Equal(t, "2025", years[0].Ref)
}

func TestOverlapping_EmptyRange(t *testing.T) {
	d := period.Date(2025, time.January, 1)
	assert.Nil(t, period.Overlapping(period.Daily, d, d))
	assert.Nil(t, period.Overlapping("HOURLY", d, d.AddDate(0, 0, 1)))
}

func TestToday_UsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on Nov 3 is already Nov 4 in Berlin.
	now := time.Date(2025, time.November, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, period.Date(2025, time.November, 4), period.Today(berlin, now))
	assert.Equal(t, period.Date(2025, time.November, 3), period.Today(nil, now))
}

func TestFiner(t *testing.T) {
	assert.True(t, period.Finer(period.Daily, period.Monthly))
	assert.False(t, period.Finer(period.Yearly, period.Quarterly))
	assert.False(t, period.Finer(period.Monthly, period.Monthly))
}
