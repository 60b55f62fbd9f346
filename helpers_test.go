package main

import (
	"io"
	"log/slog"
	"time"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore() *Store {
	return NewStore(testLogger())
}

func newTestEditor() *Editor {
	opts := DefaultEditorOptions()
	opts.Logger = testLogger()
	return NewEditor(newTestStore(), opts)
}

// ms is a timestamp the given number of milliseconds after testEpoch.
func ms(n int) time.Time {
	return testEpoch.Add(time.Duration(n) * time.Millisecond)
}
