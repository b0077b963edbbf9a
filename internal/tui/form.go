package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/models"
)

// EntryFormModel holds the editable fields of an entry while a form runs.
type EntryFormModel struct {
	Mood       models.Mood
	Emoji      string
	Highlights string
	Challenges string
	Gratitude  string
	FreeText   string
	Tags       string // comma separated
}

// NewEntryFormModel seeds a form from an existing entry.
func NewEntryFormModel(e models.JournalEntry) *EntryFormModel {
	mood := e.Mood
	if !mood.Valid() {
		mood = models.MoodOkay
	}
	return &EntryFormModel{
		Mood:       mood,
		Emoji:      e.Emoji,
		Highlights: e.Highlights,
		Challenges: e.Challenges,
		Gratitude:  e.Gratitude,
		FreeText:   e.FreeText,
		Tags:       strings.Join(e.Tags, ", "),
	}
}

// Apply copies the form values onto e. Tags are trimmed and deduplicated.
func (fm *EntryFormModel) Apply(e models.JournalEntry) models.JournalEntry {
	e.Mood = fm.Mood
	e.Emoji = fm.Emoji
	e.Highlights = fm.Highlights
	e.Challenges = fm.Challenges
	e.Gratitude = fm.Gratitude
	e.FreeText = fm.FreeText
	e.Tags = ParseTags(fm.Tags)
	return e
}

// ParseTags splits a comma separated list into tags, dropping blanks and
// repeats.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tags = journal.AddTag(tags, part)
	}
	return tags
}

func moodOptions() []huh.Option[models.Mood] {
	opts := make([]huh.Option[models.Mood], 0, len(models.Moods()))
	for _, m := range models.Moods() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", m.Emoji(), m.Label()), m))
	}
	return opts
}

func emojiOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("none", "")}
	for _, e := range models.EmojiPalette {
		opts = append(opts, huh.NewOption(e, e))
	}
	return opts
}

// NewEntryForm builds the interactive entry editor.
func NewEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Mood]().
				Title("How are you feeling?").
				Options(moodOptions()...).
				Value(&fm.Mood),
			huh.NewSelect[string]().
				Title("Emoji").
				Options(emojiOptions()...).
				Value(&fm.Emoji),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Highlights").
				Description("What went well today?").
				Value(&fm.Highlights),
			huh.NewText().
				Title("Challenges").
				Description("What was difficult?").
				Value(&fm.Challenges),
			huh.NewText().
				Title("Gratitude").
				Description("What are you grateful for?").
				Value(&fm.Gratitude),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Free writing").
				Value(&fm.FreeText),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&fm.Tags),
		),
	).WithTheme(huh.ThemeDracula())
}

// RunEntryForm runs the editor on e and returns the edited copy. ok is false
// when the user aborts.
func RunEntryForm(e models.JournalEntry) (models.JournalEntry, bool, error) {
	fm := NewEntryFormModel(e)
	if err := NewEntryForm(fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return e, false, nil
		}
		return e, false, fmt.Errorf("interactive form error: %w", err)
	}
	return fm.Apply(e), true, nil
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}
