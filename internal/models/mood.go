package models

import (
	"fmt"
	"strings"
)

// Mood is the closed five-value scale an entry is rated on.
type Mood string

const (
	MoodAmazing     Mood = "amazing"
	MoodGood        Mood = "good"
	MoodOkay        Mood = "okay"
	MoodDifficult   Mood = "difficult"
	MoodChallenging Mood = "challenging"
)

// Moods returns every mood, best first.
func Moods() []Mood {
	return []Mood{MoodAmazing, MoodGood, MoodOkay, MoodDifficult, MoodChallenging}
}

// Score maps a mood onto 1 (challenging) through 5 (amazing).
// Unknown values score 0.
func (m Mood) Score() int {
	switch m {
	case MoodAmazing:
		return 5
	case MoodGood:
		return 4
	case MoodOkay:
		return 3
	case MoodDifficult:
		return 2
	case MoodChallenging:
		return 1
	default:
		return 0
	}
}

func (m Mood) Valid() bool {
	return m.Score() > 0
}

func (m Mood) Label() string {
	switch m {
	case MoodAmazing:
		return "Amazing"
	case MoodGood:
		return "Good"
	case MoodOkay:
		return "Okay"
	case MoodDifficult:
		return "Difficult"
	case MoodChallenging:
		return "Challenging"
	default:
		return string(m)
	}
}

func (m Mood) Emoji() string {
	switch m {
	case MoodAmazing:
		return "✨"
	case MoodGood:
		return "😊"
	case MoodOkay:
		return "😌"
	case MoodDifficult:
		return "😔"
	case MoodChallenging:
		return "💙"
	default:
		return ""
	}
}

// ParseMood accepts a mood name in any case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid mood %q (expected amazing|good|okay|difficult|challenging)", s)
	}
	return m, nil
}

// EmojiPalette lists the decorative emoji offered when writing an entry.
var EmojiPalette = []string{"🌸", "🦋", "🌈", "🕊️", "💎", "🌺", "🍃", "☀️", "🌙", "⭐"}
