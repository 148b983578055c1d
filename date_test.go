package invtrack

import (
	"slices"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: day(2025, time.July, 1)},
		{in: "2025-7-1", want: day(2025, time.July, 1)},
		{in: " 2025-12-31 ", want: day(2025, time.December, 31)},
		{in: "2025/07/01", wantErr: true},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDate_EndOf(t *testing.T) {
	testCases := []struct {
		name   string
		on     Date
		period Period
		want   Date
	}{
		{"end of month", day(2025, time.February, 10), Monthly, day(2025, time.February, 28)},
		{"end of leap february", day(2024, time.February, 10), Monthly, day(2024, time.February, 29)},
		{"end of quarter", day(2025, time.May, 2), Quarterly, day(2025, time.June, 30)},
		{"end of year", day(2025, time.May, 2), Yearly, day(2025, time.December, 31)},
		{"end of week is sunday", day(2025, time.July, 2), Weekly, day(2025, time.July, 6)},
		{"daily is identity", day(2025, time.July, 2), Daily, day(2025, time.July, 2)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.on.EndOf(tc.period); got != tc.want {
				t.Errorf("%v.EndOf(%v) = %v, want %v", tc.on, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Samples(t *testing.T) {
	t.Run("daily yields every day", func(t *testing.T) {
		r := NewRange(day(2025, time.March, 1), day(2025, time.March, 5))
		got := slices.Collect(r.Samples(Daily))
		if len(got) != 5 {
			t.Fatalf("Samples(Daily) yielded %d dates, want 5: %v", len(got), got)
		}
	})

	t.Run("monthly yields start then month ends", func(t *testing.T) {
		r := NewRange(day(2025, time.January, 15), day(2025, time.March, 10))
		got := slices.Collect(r.Samples(Monthly))
		want := []Date{
			day(2025, time.January, 15),
			day(2025, time.January, 31),
			day(2025, time.February, 28),
			day(2025, time.March, 10), // clipped to range end
		}
		if !slices.Equal(got, want) {
			t.Errorf("Samples(Monthly) = %v, want %v", got, want)
		}
	})

	t.Run("single day range", func(t *testing.T) {
		on := day(2025, time.June, 30)
		got := slices.Collect(NewRange(on, on).Samples(Monthly))
		want := []Date{on}
		if !slices.Equal(got, want) {
			t.Errorf("Samples(Monthly) = %v, want %v", got, want)
		}
	})
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(day(2025, time.January, 10), day(2025, time.January, 20))
	if !r.Contains(day(2025, time.January, 10)) || !r.Contains(day(2025, time.January, 20)) {
		t.Error("range boundaries should be included")
	}
	if r.Contains(day(2025, time.January, 9)) || r.Contains(day(2025, time.January, 21)) {
		t.Error("dates outside the range should not be contained")
	}
}
