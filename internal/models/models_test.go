package models

import (
	"testing"
	"time"
)

func TestMoodScore(t *testing.T) {
	tests := []struct {
		mood  Mood
		score int
	}{
		{MoodAmazing, 5},
		{MoodGood, 4},
		{MoodOkay, 3},
		{MoodDifficult, 2},
		{MoodChallenging, 1},
		{Mood("meh"), 0},
		{Mood(""), 0},
	}
	for _, tt := range tests {
		if got := tt.mood.Score(); got != tt.score {
			t.Errorf("%q.Score() = %d, want %d", tt.mood, got, tt.score)
		}
		if got := tt.mood.Valid(); got != (tt.score > 0) {
			t.Errorf("%q.Valid() = %v", tt.mood, got)
		}
	}
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood("  Amazing ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != MoodAmazing {
		t.Errorf("got %q, want amazing", m)
	}

	if _, err := ParseMood("ecstatic"); err == nil {
		t.Error("expected error for unknown mood")
	}
}

func TestParseEntryDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-14T10:30:00.000Z", time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)},
		{"2024-03-14T10:30:00+02:00", time.Date(2024, 3, 14, 8, 30, 0, 0, time.UTC)},
		{"2024-03-14T10:30", time.Date(2024, 3, 14, 10, 30, 0, 0, ny)},
		{"2024-03-14", time.Date(2024, 3, 14, 0, 0, 0, 0, ny)},
	}
	for _, tt := range tests {
		got, err := ParseEntryDate(tt.in, ny)
		if err != nil {
			t.Errorf("ParseEntryDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseEntryDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseEntryDate("last tuesday", ny); err == nil {
		t.Error("expected error for garbage date")
	}
}

func TestEntryTimeConvertsToLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	e := JournalEntry{Date: "2024-03-14T20:00:00Z"}
	got, err := e.Time(tokyo)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 15 || got.Hour() != 5 {
		t.Errorf("got %v, want Mar 15 05:00 JST", got)
	}
}

func TestValidate(t *testing.T) {
	valid := JournalEntry{
		ID:        "abc",
		Date:      "2024-03-14T10:00:00Z",
		Mood:      MoodOkay,
		CreatedAt: 10,
		UpdatedAt: 20,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	cases := map[string]func(e *JournalEntry){
		"missing id":        func(e *JournalEntry) { e.ID = "" },
		"bad mood":          func(e *JournalEntry) { e.Mood = "meh" },
		"bad date":          func(e *JournalEntry) { e.Date = "yesterday" },
		"updated < created": func(e *JournalEntry) { e.UpdatedAt = 5 },
	}
	for name, mutate := range cases {
		e := valid
		mutate(&e)
		if err := e.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestHasTag(t *testing.T) {
	e := JournalEntry{Tags: []string{"work", "Family"}}
	if !e.HasTag("work") {
		t.Error("expected work tag")
	}
	if e.HasTag("family") {
		t.Error("tag match should be exact")
	}
}

func TestTrendPointHasData(t *testing.T) {
	if (TrendPoint{MoodScore: 0}).HasData() {
		t.Error("zero score should mean no data")
	}
	if !(TrendPoint{MoodScore: 1}).HasData() {
		t.Error("score 1 should have data")
	}
}
