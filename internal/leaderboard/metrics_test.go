package leaderboard

import "testing"

func TestCommafy(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1,000"},
		{in: 1234567, want: "1,234,567"},
		{in: -45000, want: "-45,000"},
	}
	for _, tc := range tests {
		if got := commafy(tc.in); got != tc.want {
			t.Fatalf("commafy(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 1, want: "st"},
		{in: 2, want: "nd"},
		{in: 3, want: "rd"},
		{in: 4, want: "th"},
		{in: 11, want: "th"},
		{in: 12, want: "th"},
		{in: 13, want: "th"},
		{in: 21, want: "st"},
		{in: 22, want: "nd"},
		{in: 103, want: "rd"},
		{in: 111, want: "th"},
	}
	for _, tc := range tests {
		if got := ordinalSuffix(tc.in); got != tc.want {
			t.Fatalf("ordinalSuffix(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
