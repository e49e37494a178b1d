package domain_test

import (
	"testing"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) // a Monday
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Interval
		want bool
	}{
		{"disjoint", domain.Interval{at(9, 0), at(10, 0)}, domain.Interval{at(11, 0), at(12, 0)}, false},
		{"adjacent is not overlap", domain.Interval{at(9, 0), at(10, 0)}, domain.Interval{at(10, 0), at(11, 0)}, false},
		{"partial", domain.Interval{at(9, 0), at(10, 30)}, domain.Interval{at(10, 0), at(11, 0)}, true},
		{"contained", domain.Interval{at(9, 0), at(12, 0)}, domain.Interval{at(10, 0), at(11, 0)}, true},
		{"empty never overlaps", domain.Interval{at(10, 0), at(10, 0)}, domain.Interval{at(9, 0), at(11, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSubtract(t *testing.T) {
	open := []domain.Interval{{at(8, 0), at(12, 0)}}

	t.Run("no busy", func(t *testing.T) {
		assert.Equal(t, open, domain.Subtract(open, nil))
	})

	t.Run("busy in the middle splits the window", func(t *testing.T) {
		got := domain.Subtract(open, []domain.Interval{{at(9, 0), at(10, 0)}})
		assert.Equal(t, []domain.Interval{{at(8, 0), at(9, 0)}, {at(10, 0), at(12, 0)}}, got)
	})

	t.Run("unsorted overlapping busy", func(t *testing.T) {
		got := domain.Subtract(open, []domain.Interval{
			{at(10, 30), at(11, 0)},
			{at(8, 0), at(9, 0)},
			{at(8, 30), at(9, 30)},
		})
		assert.Equal(t, []domain.Interval{{at(9, 30), at(10, 30)}, {at(11, 0), at(12, 0)}}, got)
	})

	t.Run("busy covers everything", func(t *testing.T) {
		assert.Empty(t, domain.Subtract(open, []domain.Interval{{at(7, 0), at(13, 0)}}))
	})

	t.Run("boundary instants are not double counted", func(t *testing.T) {
		got := domain.Subtract(open, []domain.Interval{{at(12, 0), at(13, 0)}, {at(7, 0), at(8, 0)}})
		assert.Equal(t, open, got)
	})
}

func TestMerge(t *testing.T) {
	got := domain.Merge([]domain.Interval{
		{at(13, 0), at(14, 0)},
		{at(8, 0), at(10, 0)},
		{at(9, 0), at(11, 0)},
		{at(11, 0), at(12, 0)},
	})
	assert.Equal(t, []domain.Interval{{at(8, 0), at(12, 0)}, {at(13, 0), at(14, 0)}}, got)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := domain.ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, domain.NewTimeOfDay(9, 30), tod)
	assert.Equal(t, "09:30", tod.String())
	assert.Equal(t, at(9, 30), tod.On(at(0, 0)))

	_, err = domain.ParseTimeOfDay("9h")
	assert.Error(t, err)
}

func TestSchedule_OverrideReplacesWeeklyTemplate(t *testing.T) {
	monday := at(0, 0)
	weekly := []domain.WeeklyAvailability{
		{DayOfWeek: time.Monday, StartTime: domain.NewTimeOfDay(8, 0), EndTime: domain.NewTimeOfDay(12, 0), IsAvailable: true},
		{DayOfWeek: time.Monday, StartTime: domain.NewTimeOfDay(13, 0), EndTime: domain.NewTimeOfDay(17, 0), IsAvailable: true},
		{DayOfWeek: time.Tuesday, StartTime: domain.NewTimeOfDay(8, 0), EndTime: domain.NewTimeOfDay(12, 0), IsAvailable: true},
	}

	t.Run("weekly rows for the weekday", func(t *testing.T) {
		s := domain.Schedule{Weekly: weekly}
		assert.Equal(t, []domain.Interval{{at(8, 0), at(12, 0)}, {at(13, 0), at(17, 0)}}, s.WindowsOn(monday))
	})

	t.Run("available override wins without merging", func(t *testing.T) {
		s := domain.Schedule{Weekly: weekly, Overrides: []domain.AvailabilityOverride{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: domain.NewTimeOfDay(18, 0), EndTime: domain.NewTimeOfDay(20, 0), IsAvailable: true},
		}}
		assert.Equal(t, []domain.Interval{{at(18, 0), at(20, 0)}}, s.WindowsOn(monday))
	})

	t.Run("block override empties the date", func(t *testing.T) {
		s := domain.Schedule{Weekly: weekly, Overrides: []domain.AvailabilityOverride{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: domain.NewTimeOfDay(9, 0), EndTime: domain.NewTimeOfDay(10, 0), IsAvailable: false},
		}}
		assert.Empty(t, s.WindowsOn(monday))
	})

	t.Run("override on another date is ignored", func(t *testing.T) {
		s := domain.Schedule{Weekly: weekly, Overrides: []domain.AvailabilityOverride{
			{Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), IsAvailable: false},
		}}
		assert.Len(t, s.WindowsOn(monday), 2)
	})

	t.Run("busy appointments are subtracted", func(t *testing.T) {
		s := domain.Schedule{Weekly: weekly, Busy: []domain.Interval{{at(8, 0), at(8, 30)}, {at(16, 30), at(17, 0)}}}
		assert.Equal(t, []domain.Interval{{at(8, 30), at(12, 0)}, {at(13, 0), at(16, 30)}}, s.OpenOn(monday))
	})
}

func TestSchedule_OpenBetween(t *testing.T) {
	s := domain.Schedule{
		Weekly: []domain.WeeklyAvailability{
			{DayOfWeek: time.Monday, StartTime: domain.NewTimeOfDay(8, 0), EndTime: domain.NewTimeOfDay(12, 0), IsAvailable: true},
			{DayOfWeek: time.Tuesday, StartTime: domain.NewTimeOfDay(9, 0), EndTime: domain.NewTimeOfDay(10, 0), IsAvailable: true},
		},
		Busy:     []domain.Interval{{at(9, 0), at(10, 0)}},
		Location: time.UTC,
	}
	tuesday := func(h int) time.Time { return at(h, 0).AddDate(0, 0, 1) }

	seq := s.OpenBetween(at(0, 0), at(0, 0).AddDate(0, 0, 2))

	var first []domain.Interval
	for iv := range seq {
		first = append(first, iv)
	}
	assert.Equal(t, []domain.Interval{
		{at(8, 0), at(9, 0)},
		{at(10, 0), at(12, 0)},
		{tuesday(9), tuesday(10)},
	}, first)

	// restartable
	var second []domain.Interval
	for iv := range seq {
		second = append(second, iv)
	}
	assert.Equal(t, first, second)

	t.Run("clipped to bounds", func(t *testing.T) {
		var got []domain.Interval
		for iv := range s.OpenBetween(at(8, 30), at(11, 0)) {
			got = append(got, iv)
		}
		assert.Equal(t, []domain.Interval{{at(8, 30), at(9, 0)}, {at(10, 0), at(11, 0)}}, got)
	})

	t.Run("early break", func(t *testing.T) {
		n := 0
		for range seq {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})

	t.Run("empty range yields nothing", func(t *testing.T) {
		for range s.OpenBetween(at(10, 0), at(10, 0)) {
			t.Fatal("unexpected interval")
		}
	})
}

func TestSchedule_OpenBetweenUsesLocation(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	s := domain.Schedule{
		Weekly: []domain.WeeklyAvailability{
			{DayOfWeek: time.Monday, StartTime: domain.NewTimeOfDay(8, 0), EndTime: domain.NewTimeOfDay(9, 0), IsAvailable: true},
		},
		Location: ict,
	}
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, ict)
	var got []domain.Interval
	for iv := range s.OpenBetween(from, from.AddDate(0, 0, 1)) {
		got = append(got, iv)
	}
	require.Len(t, got, 1)
	assert.True(t, got[0].Start.Equal(time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)))
}

func TestSchedule_CanHost(t *testing.T) {
	s := domain.Schedule{
		Weekly: []domain.WeeklyAvailability{
			{DayOfWeek: time.Monday, StartTime: domain.NewTimeOfDay(8, 0), EndTime: domain.NewTimeOfDay(12, 0), IsAvailable: true},
		},
		Busy:     []domain.Interval{{at(10, 0), at(10, 30)}},
		Location: time.UTC,
	}

	assert.True(t, s.CanHost(domain.Interval{at(8, 0), at(8, 30)}))
	assert.True(t, s.CanHost(domain.Interval{at(9, 30), at(10, 0)}), "ends exactly where a booking starts")
	assert.True(t, s.CanHost(domain.Interval{at(10, 30), at(11, 0)}), "starts exactly where a booking ends")
	assert.False(t, s.CanHost(domain.Interval{at(9, 45), at(10, 15)}), "overlaps a booking")
	assert.False(t, s.CanHost(domain.Interval{at(11, 30), at(12, 30)}), "runs past the window")
	assert.False(t, s.CanHost(domain.Interval{at(13, 0), at(13, 30)}), "outside any window")
	assert.False(t, s.CanHost(domain.Interval{at(9, 0), at(9, 0)}), "empty slot")
}
