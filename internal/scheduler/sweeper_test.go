package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type deleterFunc func(ctx context.Context, now time.Time) (int64, error)

func (f deleterFunc) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f(ctx, now)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweep(t *testing.T) {
	fixed := time.Date(2026, time.March, 1, 3, 0, 0, 0, time.UTC)
	var gotNow time.Time
	s := NewSweeper(deleterFunc(func(_ context.Context, now time.Time) (int64, error) {
		gotNow = now
		return 4, nil
	}), "", discard())
	s.now = func() time.Time { return fixed }

	n, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 removed, got %d", n)
	}
	if !gotNow.Equal(fixed) {
		t.Errorf("expected cutoff %v, got %v", fixed, gotNow)
	}
}

func TestSweep_Error(t *testing.T) {
	boom := errors.New("db down")
	s := NewSweeper(deleterFunc(func(context.Context, time.Time) (int64, error) {
		return 0, boom
	}), "", discard())

	if _, err := s.Sweep(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestStart(t *testing.T) {
	noop := deleterFunc(func(context.Context, time.Time) (int64, error) { return 0, nil })

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "disabled", spec: ""},
		{name: "daily", spec: "0 3 * * *"},
		{name: "invalid", spec: "every day", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSweeper(noop, tt.spec, discard())
			err := s.Start()
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			s.Stop()
		})
	}
}
