package merge

import (
	"errors"
	"testing"
	"time"
)

func TestNumericComparator(t *testing.T) {
	tests := []struct {
		a, b    string
		want    int
		wantErr bool
	}{
		{"1", "1", 0, false},
		{"1", "2", -1, false},
		{"10", "9", 1, false},
		{"-3", "2", -1, false},
		{"+4", "4", 0, false},
		{"007", "7", 0, false},
		{"9223372036854775807", "-9223372036854775808", 1, false},
		{"", "1", 0, true},
		{"1", "x", 0, true},
		{" 1", "1", 0, true},
		{"1.5", "1", 0, true},
		{"9223372036854775808", "1", 0, true},
	}

	for _, tt := range tests {
		got, err := NumericComparator{}.Compare(tt.a, tt.b)
		if (err != nil) != tt.wantErr {
			t.Errorf("Compare(%q, %q) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNumericComparator_ErrorSide(t *testing.T) {
	_, err := NumericComparator{}.Compare("1", "nope")
	var perr *keyParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *keyParseError, got %T", err)
	}
	if perr.side != Right || perr.key != "nope" {
		t.Errorf("got side %v key %q, want right \"nope\"", perr.side, perr.key)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"00:00:01", time.Second, false},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second, false},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second, false},
		{"100:00:00", 100 * time.Hour, false},
		{"00:00:01.5", 1500 * time.Millisecond, false},
		{"00:00:01.000000001", time.Second + time.Nanosecond, false},
		{"-00:00:02", -2 * time.Second, false},
		{"01:30", time.Hour + 30*time.Minute, false},
		{"1h30m", time.Hour + 30*time.Minute, false},
		{"250ms", 250 * time.Millisecond, false},
		{"5", 5 * time.Hour, false},
		{"-5", -5 * time.Hour, false},
		{"-0:30", -30 * time.Minute, false},
		{"1:70", 2*time.Hour + 10*time.Minute, false},
		{"00:60:00", time.Hour, false},
		{"00:00:60", time.Minute, false},
		{"0:0:3725", time.Hour + 2*time.Minute + 5*time.Second, false},
		{"00:000:00", 0, false},
		{"00:00:00.1234567890", 123456789 * time.Nanosecond, false},
		{"", 0, true},
		{"-", 0, true},
		{"abc", 0, true},
		{"5.5", 0, true},
		{"1:30.5", 0, true},
		{"00:00:00.", 0, true},
		{"00:00:00.5.5", 0, true},
		{"1:2:3:4", 0, true},
		{"1::3", 0, true},
		{"a:00:00", 0, true},
		{"00:0x:00", 0, true},
		{"99999999999999999:00:00", 0, true},
		{"2562047:47:16.854775807", maxDuration, false},
		{"2562047:47:16.854775808", 0, true},
		{"0:99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDurationComparator(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"00:00:01.500", "00:00:01.5", 0},
		{"00:00:59", "00:01:00", -1},
		{"10:00:00", "9:59:59.999", 1},
		{"-00:00:01", "00:00:00", -1},
		{"1:70", "2:10", 0},
		{"5", "4:59:59", 1},
	}

	for _, tt := range tests {
		got, err := DurationComparator{}.Compare(tt.a, tt.b)
		if err != nil {
			t.Errorf("Compare(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := (DurationComparator{}).Compare("00:00:01", "later"); err == nil {
		t.Error("expected error for malformed right key")
	}
}
