package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestCreateAndFetchRecording(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRecording(42, 32, 24, 10)
	if err != nil {
		t.Fatalf("CreateRecording() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("ID %q is not a UUID: %v", id, err)
	}

	if err := store.FinishRecording(id, 350); err != nil {
		t.Fatalf("FinishRecording() failed: %v", err)
	}

	rec, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if rec.Seed != 42 || rec.Cols != 32 || rec.Rows != 24 || rec.TickRate != 10 || rec.Ticks != 350 {
		t.Errorf("Recording() = %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Recording("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Recording() error = %v, expected ErrNotFound", err)
	}
	if err := store.FinishRecording("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("FinishRecording() error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteRecording("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecording() error = %v, expected ErrNotFound", err)
	}
}

func TestInputsOrdered(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateRecording(1, 32, 24, 10)
	if err != nil {
		t.Fatalf("CreateRecording() failed: %v", err)
	}

	// Two inputs on the same tick keep insertion order
	for _, in := range []Input{{3, "down"}, {3, "left"}, {7, "up"}} {
		if err := store.AppendInput(id, in.Tick, in.Direction); err != nil {
			t.Fatalf("AppendInput() failed: %v", err)
		}
	}

	inputs, err := store.Inputs(id)
	if err != nil {
		t.Fatalf("Inputs() failed: %v", err)
	}
	want := []Input{{3, "down"}, {3, "left"}, {7, "up"}}
	if len(inputs) != len(want) {
		t.Fatalf("Inputs() = %v, expected %v", inputs, want)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input %d = %+v, expected %+v", i, inputs[i], want[i])
		}
	}
}

func TestListRecordingsLimit(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := range 5 {
		id, err := store.CreateRecording(int64(i), 32, 24, 10)
		if err != nil {
			t.Fatalf("CreateRecording() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recs, err := store.ListRecordings(3)
	if err != nil {
		t.Fatalf("ListRecordings() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recordings with limit, got %d", len(recs))
	}
	// Newest first
	if recs[0].ID != ids[4] {
		t.Errorf("first recording = %s, expected %s", recs[0].ID, ids[4])
	}
}

func TestDeleteRecording(t *testing.T) {
	store := openTestStore(t)
	keep, _ := store.CreateRecording(1, 32, 24, 10)
	drop, _ := store.CreateRecording(2, 32, 24, 10)
	store.AppendInput(keep, 1, "up")
	store.AppendInput(drop, 1, "down")

	if err := store.DeleteRecording(drop); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}

	if _, err := store.Recording(drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted recording still present: %v", err)
	}
	if inputs, _ := store.Inputs(drop); len(inputs) != 0 {
		t.Errorf("deleted recording kept %d inputs", len(inputs))
	}
	if inputs, _ := store.Inputs(keep); len(inputs) != 1 {
		t.Error("other recordings should not be affected")
	}
}

func TestScriptRejectsBadDirection(t *testing.T) {
	if _, err := Script([]Input{{1, "sideways"}}); err == nil {
		t.Error("Script() should reject unknown directions")
	}
}

func TestRecorderReplay(t *testing.T) {
	store := openTestStore(t)

	gr, err := grid.New(640, 480, 20)
	if err != nil {
		t.Fatalf("grid.New() failed: %v", err)
	}
	original, err := snake.New(snake.Config{Grid: gr, Seed: 99})
	if err != nil {
		t.Fatalf("snake.New() failed: %v", err)
	}

	rec, err := store.NewRecorder(original, 10)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	script := make(session.Script)
	script.Add(4, snake.DirDown)
	script.Add(10, snake.DirLeft)
	script.Add(10, snake.DirUp)
	script.Add(25, snake.DirRight)

	runner := session.NewRunner(original, session.Options{
		Ticks:    session.Immediate(60),
		Script:   script,
		Recorder: rec,
	})
	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if err := rec.Finish(res.Ticks); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	// Rebuild the game purely from what was stored
	stored, err := store.Recording(rec.ID())
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	inputs, err := store.Inputs(rec.ID())
	if err != nil {
		t.Fatalf("Inputs() failed: %v", err)
	}
	if len(inputs) != 4 {
		t.Fatalf("stored %d inputs, expected 4", len(inputs))
	}
	replayScript, err := Script(inputs)
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}

	rg, err := grid.NewCells(stored.Cols, stored.Rows)
	if err != nil {
		t.Fatalf("grid.NewCells() failed: %v", err)
	}
	replayed, err := snake.New(snake.Config{Grid: rg, Seed: stored.Seed})
	if err != nil {
		t.Fatalf("snake.New() failed: %v", err)
	}
	replayRunner := session.NewRunner(replayed, session.Options{
		Ticks:  session.Immediate(int(stored.Ticks)),
		Script: replayScript,
	})
	if _, err := replayRunner.Run(context.Background()); err != nil {
		t.Fatalf("replay Run() failed: %v", err)
	}

	if original.Snapshot() != replayed.Snapshot() {
		t.Errorf("replay diverged\noriginal: %+v\nreplayed: %+v", original.Snapshot(), replayed.Snapshot())
	}
	if replayed.Tick() != 60 {
		t.Errorf("replay ran %d ticks, expected 60", replayed.Tick())
	}
}
