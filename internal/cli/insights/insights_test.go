package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/lockfile"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
	"github.com/julianstephens/mindful/internal/utils"
)

// Thursday
var now = time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

func newContext(t *testing.T) *cli.Context {
	t.Helper()
	ctx := cli.NewContext(storage.NewMemorySlot(), func() time.Time { return now })
	ctx.ConfigDir = t.TempDir()

	orig := runWithSpinner
	runWithSpinner = func(c context.Context, _ string, fn func(context.Context) error) error {
		return fn(c)
	}
	t.Cleanup(func() { runWithSpinner = orig })
	return ctx
}

func addEntry(t *testing.T, ctx *cli.Context, at time.Time, mood models.Mood) models.JournalEntry {
	t.Helper()
	e := journal.NewEntry(at)
	e.Date = utils.FormatEntryDate(at)
	e.Mood = mood
	saved, err := ctx.Store.Save(e)
	require.NoError(t, err)
	return saved
}

type fakeRelay struct {
	*httptest.Server
	summaries atomic.Int32
	lastBody  []models.JournalEntry
}

func newFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()
	f := &fakeRelay{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/summary", func(w http.ResponseWriter, r *http.Request) {
		f.summaries.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Summary{
			WeeklySummary:   "A steady week.",
			WeeklyThemes:    []string{"rest"},
			NextWeekFocus:   []string{"sleep"},
			LimitingBeliefs: []string{},
		})
	})
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChatReply{Reply: "echo: " + req.Message})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func TestStatsTrendAchievements(t *testing.T) {
	ctx := newContext(t)
	addEntry(t, ctx, now, models.MoodGood)
	addEntry(t, ctx, now.AddDate(0, 0, -1), models.MoodOkay)

	assert.NoError(t, (&StatsCmd{Days: 7}).Run(ctx))
	assert.NoError(t, (&TrendCmd{Days: 14}).Run(ctx))
	assert.NoError(t, (&AchievementsCmd{All: true}).Run(ctx))
	assert.Equal(t, 0, ctx.Memo.Hits())

	assert.NoError(t, (&StatsCmd{Days: 7}).Run(ctx))
	assert.Equal(t, 1, ctx.Memo.Hits(), "unchanged entries should reuse the cached snapshot")
}

func TestTrendCmd_RejectsNonPositiveDays(t *testing.T) {
	ctx := newContext(t)
	assert.Error(t, (&TrendCmd{Days: 0}).Run(ctx))
}

func TestStatsCmd_Empty(t *testing.T) {
	ctx := newContext(t)
	assert.NoError(t, (&StatsCmd{Days: 7}).Run(ctx))
}

func TestSummaryCmd_SendsFullCollection(t *testing.T) {
	ctx := newContext(t)
	relay := newFakeRelay(t)
	ctx.RelayURL = relay.URL

	inWeek := addEntry(t, ctx, now.AddDate(0, 0, -2), models.MoodGood)
	addEntry(t, ctx, now.AddDate(0, 0, -10), models.MoodDifficult)

	require.NoError(t, (&SummaryCmd{Timeout: time.Second}).Run(ctx))
	assert.Equal(t, int32(1), relay.summaries.Load())
	assert.Len(t, relay.lastBody, 2)

	require.NoError(t, (&SummaryCmd{Week: true, JSON: true, Timeout: time.Second}).Run(ctx))
	require.Len(t, relay.lastBody, 1)
	assert.Equal(t, inWeek.ID, relay.lastBody[0].ID)
}

func TestSummaryCmd_NoEntries(t *testing.T) {
	ctx := newContext(t)
	relay := newFakeRelay(t)
	ctx.RelayURL = relay.URL

	assert.Error(t, (&SummaryCmd{Timeout: time.Second}).Run(ctx))

	addEntry(t, ctx, now.AddDate(0, 0, -30), models.MoodGood)
	assert.Error(t, (&SummaryCmd{Week: true, Timeout: time.Second}).Run(ctx))
	assert.Equal(t, int32(0), relay.summaries.Load())
}

func TestSummaryCmd_Locked(t *testing.T) {
	ctx := newContext(t)
	relay := newFakeRelay(t)
	ctx.RelayURL = relay.URL
	addEntry(t, ctx, now, models.MoodGood)

	held, err := lockfile.Acquire(ctx.ConfigDir, constants.SummaryLockName)
	require.NoError(t, err)
	defer held.Release()

	err = (&SummaryCmd{Timeout: time.Second}).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, lockfile.ErrLocked)
	assert.Equal(t, int32(0), relay.summaries.Load())
}

func TestSummaryCmd_ReleasesLock(t *testing.T) {
	ctx := newContext(t)
	relay := newFakeRelay(t)
	ctx.RelayURL = relay.URL
	addEntry(t, ctx, now, models.MoodGood)

	require.NoError(t, (&SummaryCmd{Timeout: time.Second}).Run(ctx))

	lock, err := lockfile.Acquire(ctx.ConfigDir, constants.SummaryLockName)
	require.NoError(t, err, "lock should be free after the summary finishes")
	assert.NoError(t, lock.Release())
}

func TestChatCmd(t *testing.T) {
	ctx := newContext(t)
	relay := newFakeRelay(t)
	ctx.RelayURL = relay.URL

	assert.NoError(t, (&ChatCmd{Message: []string{"hello", "there"}, Timeout: time.Second}).Run(ctx))
	assert.Error(t, (&ChatCmd{Message: []string{"  "}, Timeout: time.Second}).Run(ctx))
}

func TestChatCmd_RelayDown(t *testing.T) {
	ctx := newContext(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	ctx.RelayURL = srv.URL

	assert.Error(t, (&ChatCmd{Message: []string{"hi"}, Timeout: time.Second}).Run(ctx))
}
