package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/rs/zerolog"
)

type stubSource struct {
	result  models.ResultSet
	err     error
	release chan struct{}
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, _ models.Filter, _ models.Page) (models.ResultSet, error) {
	if s.release != nil {
		// Ignores ctx on purpose: the pipeline must not depend on the source
		// honouring cancellation.
		<-s.release
	}
	return s.result, s.err
}

func TestBeginReturnsResult(t *testing.T) {
	src := &stubSource{result: models.ResultSet{
		Data:       []models.Job{{ID: "a"}},
		Pagination: models.Pagination{Page: 1, Size: 20, Total: 1},
	}}
	p := New(src, zerolog.Nop())

	got, err := p.Begin(context.Background(), Replace, models.Filter{}, models.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if len(got.Data) != 1 || got.Data[0].ID != "a" {
		t.Fatalf("Begin() = %+v, want job a", got)
	}
}

func TestBeginMapsFailures(t *testing.T) {
	p := New(&stubSource{err: errors.New("connection refused")}, zerolog.Nop())

	_, err := p.Begin(context.Background(), Append, models.Filter{}, models.Page{Number: 2, Size: 20})
	if !errors.Is(err, ErrQueryFailed) {
		t.Fatalf("Begin() error = %v, want ErrQueryFailed", err)
	}
	if err.Error() != "failed to load jobs" {
		t.Fatalf("Begin() error = %q, want generic message", err.Error())
	}
}

func TestBeginCancelledIgnoresLateResult(t *testing.T) {
	src := &stubSource{release: make(chan struct{}), result: models.ResultSet{Data: []models.Job{{ID: "late"}}}}
	p := New(src, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error, 1)
	go func() {
		_, err := p.Begin(ctx, Replace, models.Filter{}, models.Page{Number: 1, Size: 20})
		errs <- err
	}()

	cancel()
	select {
	case err := <-errs:
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("Begin() error = %v, want ErrCancelled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Begin() did not return after cancellation")
	}
	close(src.release)
}

func TestBeginSourceErrorAfterCancelIsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(&stubSource{err: context.Canceled}, zerolog.Nop())

	_, err := p.Begin(ctx, Replace, models.Filter{}, models.Page{Number: 1, Size: 20})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Begin() error = %v, want ErrCancelled", err)
	}
}

func TestModeString(t *testing.T) {
	if Replace.String() != "replace" || Append.String() != "append" {
		t.Fatalf("Mode.String() = %q/%q", Replace, Append)
	}
}
