package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "roadrush.db")
	s, err := Open(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestEmptyStoreHasNoBest(t *testing.T) {
	s, _ := openTemp(t)
	best, err := s.BestScore()
	if err != nil {
		t.Fatal(err)
	}
	if best != 0 {
		t.Errorf("best = %d, want 0", best)
	}
}

func TestReportScore(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	tests := []struct {
		score   int
		want    bool
		wantMax int
	}{
		{120, true, 120},
		{80, false, 120},
		{120, false, 120}, // a tie is not a new best
		{2500, true, 2500},
	}
	for _, tt := range tests {
		got, err := s.ReportScore(ctx, tt.score, 1)
		if err != nil {
			t.Fatalf("ReportScore(%d): %v", tt.score, err)
		}
		if got != tt.want {
			t.Errorf("ReportScore(%d) = %v, want %v", tt.score, got, tt.want)
		}
		best, err := s.BestScore()
		if err != nil {
			t.Fatal(err)
		}
		if best != tt.wantMax {
			t.Errorf("best after %d = %d, want %d", tt.score, best, tt.wantMax)
		}
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)
	for i, score := range []int{10, 20, 30} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		if _, err := s.ReportScore(ctx, score, i+1); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].Score != 30 || runs[0].Level != 3 || runs[1].Score != 20 {
		t.Errorf("runs = %+v", runs)
	}
	if !runs[0].Finished.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("finished = %v", runs[0].Finished)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	s, path := openTemp(t)
	if _, err := s.ReportScore(context.Background(), 777, 2); err != nil {
		t.Fatal(err)
	}
	s.Close()

	again, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	best, err := again.BestScore()
	if err != nil {
		t.Fatal(err)
	}
	if best != 777 {
		t.Errorf("best after reopen = %d", best)
	}
}

func TestInMemory(t *testing.T) {
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.ReportScore(context.Background(), 5, 1); err != nil {
		t.Fatal(err)
	}
	if best, _ := s.BestScore(); best != 5 {
		t.Errorf("best = %d", best)
	}
}
