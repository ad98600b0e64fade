// It uses an in-memory SQLite database to ensure tests are fast and isolated.

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(testutil.SetupTestDB(t))
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestBeginRunAndRecordMoves(t *testing.T) {
	s := newTestStore(t)

	run, err := s.BeginRun("/out", false)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, "/out", run.Root)

	require.NoError(t, s.RecordMove(run.ID, "/in/a.cbz", "/out/DC Comics/Batman/a.cbz"))
	require.NoError(t, s.RecordMove(run.ID, "/in/b.cbz", "/out/DC Comics/Batman/b.cbz"))
	require.NoError(t, s.FinishRun(run.ID))

	moves, err := s.MovesForRun(run.ID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "/in/a.cbz", moves[0].Source)
	assert.Equal(t, "/out/DC Comics/Batman/b.cbz", moves[1].Destination)
	assert.True(t, moves[0].ID < moves[1].ID)

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.False(t, got.Undone)
}

func TestRecordMoveUnknownRun(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.RecordMove("missing", "a", "b"))
}

func TestLastRun(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LastRun()
	assert.ErrorIs(t, err, ErrNoRuns)

	first, err := s.BeginRun("/out", false)
	require.NoError(t, err)
	require.NoError(t, s.RecordMove(first.ID, "/in/a.cbz", "/out/x/a.cbz"))

	second, err := s.BeginRun("/out", false)
	require.NoError(t, err)
	require.NoError(t, s.RecordMove(second.ID, "/in/b.cbz", "/out/x/b.cbz"))

	// Runs without moves and dry runs are skipped.
	_, err = s.BeginRun("/out", false)
	require.NoError(t, err)
	dry, err := s.BeginRun("/out", true)
	require.NoError(t, err)
	require.NoError(t, s.RecordMove(dry.ID, "/in/c.cbz", "/out/x/c.cbz"))

	last, err := s.LastRun()
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)

	require.NoError(t, s.MarkUndone(second.ID))
	last, err = s.LastRun()
	require.NoError(t, err)
	assert.Equal(t, first.ID, last.ID)

	require.NoError(t, s.MarkUndone(first.ID))
	_, err = s.LastRun()
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	a, err := s.BeginRun("/out", false)
	require.NoError(t, err)
	b, err := s.BeginRun("/out", true)
	require.NoError(t, err)

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, b.ID, runs[0].ID)
	assert.Equal(t, a.ID, runs[1].ID)

	runs, err = s.ListRuns(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestUnknownRun(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, s.MarkUndone("nope"), ErrRunNotFound)
	assert.ErrorIs(t, s.FinishRun("nope"), ErrRunNotFound)
}
