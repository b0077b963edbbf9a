package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty is local", "", false},
		{"explicit local", "Local", false},
		{"utc", "UTC", false},
		{"iana", "America/New_York", false},
		{"invalid", "Not/AZone", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Europe/Berlin") {
		t.Error("ValidateTimezone(Europe/Berlin) = false, want true")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone(Mars/Olympus) = true, want false")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	in := time.Date(2024, 3, 10, 23, 59, 59, 999, loc)
	got := StartOfDay(in)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestAddDaysAcrossMonth(t *testing.T) {
	in := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got := AddDays(in, -1)
	if DayKey(got) != "2024-02-29" {
		t.Errorf("AddDays(-1) = %s, want 2024-02-29", DayKey(got))
	}
}

func TestFormatEntryDate(t *testing.T) {
	in := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)
	if got := FormatEntryDate(in); got != "2024-05-06T07:08:09.123Z" {
		t.Errorf("FormatEntryDate() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.config/mindful/mindful.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".config/mindful/mindful.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath() changed absolute path: %q", got)
	}
}
