package domain

import (
	"fmt"
	"iter"
	"sort"
	"time"
)

// TimeOfDay is an offset from local midnight.
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from hours and minutes.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseTimeOfDay parses a HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// On anchors t on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(t))
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
// Adjacent intervals (one ends where the other starts) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	if !i.Valid() || !o.Valid() {
		return false
	}
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Subtract removes every busy interval from open. Both inputs may be unsorted;
// the result is sorted by start and contains no empty intervals.
func Subtract(open []Interval, busy []Interval) []Interval {
	sorted := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if b.Valid() {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start.Before(sorted[b].Start) })

	var result []Interval
	for _, o := range Merge(open) {
		cursor := o.Start
		for _, b := range sorted {
			if !b.End.After(cursor) || !b.Start.Before(o.End) {
				continue
			}
			if b.Start.After(cursor) {
				result = append(result, Interval{Start: cursor, End: b.Start})
			}
			if b.End.After(cursor) {
				cursor = b.End
			}
			if !cursor.Before(o.End) {
				break
			}
		}
		if cursor.Before(o.End) {
			result = append(result, Interval{Start: cursor, End: o.End})
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Start.Before(result[b].Start) })
	return result
}

// Merge sorts intervals and coalesces those that overlap or touch.
func Merge(intervals []Interval) []Interval {
	sorted := make([]Interval, 0, len(intervals))
	for _, i := range intervals {
		if i.Valid() {
			sorted = append(sorted, i)
		}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start.Before(sorted[b].Start) })

	var merged []Interval
	for _, i := range sorted {
		if n := len(merged); n > 0 && !i.Start.After(merged[n-1].End) {
			if i.End.After(merged[n-1].End) {
				merged[n-1].End = i.End
			}
			continue
		}
		merged = append(merged, i)
	}
	return merged
}

// WeeklyAvailability is one row of a doctor's recurring template.
type WeeklyAvailability struct {
	ID          string       `json:"id"`
	DoctorID    string       `json:"doctorID"`
	DayOfWeek   time.Weekday `json:"dayOfWeek"`
	StartTime   TimeOfDay    `json:"startTime"`
	EndTime     TimeOfDay    `json:"endTime"`
	IsAvailable bool         `json:"isAvailable"`
}

// AvailabilityOverride is a date-specific record. Any override on a date
// replaces the weekly template for that whole date; rows with IsAvailable
// false contribute no open time.
type AvailabilityOverride struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctorID"`
	Date        time.Time `json:"date"`
	StartTime   TimeOfDay `json:"startTime"`
	EndTime     TimeOfDay `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Reason      string    `json:"reason,omitempty"`
}

// DateKey normalizes a calendar date for map lookups.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Schedule is a loaded snapshot of everything the availability calculation
// needs for one doctor over a date range.
type Schedule struct {
	Weekly    []WeeklyAvailability
	Overrides []AvailabilityOverride
	Busy      []Interval
	Location  *time.Location
}

// WindowsOn returns the open windows for the calendar date of day before
// existing appointments are subtracted.
func (s Schedule) WindowsOn(day time.Time) []Interval {
	key := DateKey(day)
	var overrides []AvailabilityOverride
	for _, o := range s.Overrides {
		if DateKey(o.Date) == key {
			overrides = append(overrides, o)
		}
	}

	var windows []Interval
	if len(overrides) > 0 {
		for _, o := range overrides {
			if o.IsAvailable {
				windows = append(windows, Interval{Start: o.StartTime.On(day), End: o.EndTime.On(day)})
			}
		}
		return windows
	}

	for _, w := range s.Weekly {
		if w.DayOfWeek == day.Weekday() && w.IsAvailable {
			windows = append(windows, Interval{Start: w.StartTime.On(day), End: w.EndTime.On(day)})
		}
	}
	return windows
}

// OpenOn returns the bookable intervals on the date of day.
func (s Schedule) OpenOn(day time.Time) []Interval {
	return Subtract(s.WindowsOn(day), s.Busy)
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// StartOfDay returns local midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// OpenBetween yields the open intervals inside [from, to), day by day in the
// schedule's location. Intervals straddling the bounds are clipped. The
// sequence reads only the snapshot, so it can be ranged over repeatedly.
func (s Schedule) OpenBetween(from, to time.Time) iter.Seq[Interval] {
	bounds := Interval{Start: from, End: to}
	loc := s.location()
	return func(yield func(Interval) bool) {
		if !bounds.Valid() {
			return
		}
		for day := StartOfDay(from, loc); day.Before(to); day = day.AddDate(0, 0, 1) {
			for _, open := range s.OpenOn(day) {
				clipped := open.clip(bounds)
				if !clipped.Valid() {
					continue
				}
				if !yield(clipped) {
					return
				}
			}
		}
	}
}

// CanHost reports whether slot fits entirely inside one open interval of its
// own calendar day.
func (s Schedule) CanHost(slot Interval) bool {
	if !slot.Valid() {
		return false
	}
	for _, open := range s.OpenOn(StartOfDay(slot.Start, s.location())) {
		if open.Contains(slot) {
			return true
		}
	}
	return false
}

func (i Interval) clip(bounds Interval) Interval {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}
