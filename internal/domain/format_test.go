package domain

import "testing"

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{350, "350 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{12345, "12.3 km"},
	}
	for _, c := range cases {
		if got := FormatDistance(c.meters); got != c.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", c.meters, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{59, "0min"},
		{720, "12min"},
		{3660, "1h 1min"},
		{7500, "2h 5min"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
