// Package state holds the filter and fetch status of a browsing session and
// drives the fetch pipeline from them.
package state

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/pipeline"
	"github.com/MrJJimenez/jobboard/internal/query"
	"github.com/rs/zerolog"
)

// Fetcher is the part of the pipeline the store depends on.
type Fetcher interface {
	Begin(ctx context.Context, mode pipeline.Mode, filter models.Filter, page models.Page) (models.ResultSet, error)
}

// channel tracks the single outstanding fetch of one purpose. gen increases
// on every start and stop so completions can detect they were superseded.
type channel struct {
	gen    uint64
	cancel context.CancelFunc
}

func (c *channel) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *channel) start(parent context.Context) (context.Context, uint64) {
	c.stop()
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	return ctx, c.gen
}

// finish releases the channel if gen is still the current fetch.
func (c *channel) finish(gen uint64) bool {
	if c.gen != gen {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return true
}

// Store owns the filter and fetch status. All mutation happens under mu;
// fetch goroutines only touch state through finishInitial and finishMore.
type Store struct {
	fetcher  Fetcher
	logger   zerolog.Logger
	pageSize int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	filter    models.Filter
	status    Status
	result    *models.ResultSet
	err       error
	initial   channel
	more      channel
	listeners map[int]func(Snapshot)
	nextID    int
	seq       uint64

	// notifyMu orders delivery; delivered is the seq of the newest snapshot
	// handed to listeners.
	notifyMu  sync.Mutex
	delivered uint64
}

func New(fetcher Fetcher, pageSize int, logger zerolog.Logger) *Store {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		fetcher:   fetcher,
		logger:    logger.With().Str("component", "store").Logger(),
		pageSize:  pageSize,
		ctx:       ctx,
		cancel:    cancel,
		listeners: map[int]func(Snapshot){},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Filter: s.filter.Clone(),
		Status: s.status,
		Err:    s.err,
	}
	if s.result != nil {
		result := models.ResultSet{
			Data:       slices.Clone(s.result.Data),
			Pagination: s.result.Pagination,
		}
		snap.Result = &result
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive in the order the changes were made; one that is already
// older than a delivered snapshot is skipped. Callbacks run on the goroutine
// that made the change, one at a time, and must not mutate the store.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// commitLocked snapshots the state for listeners; the returned func must be
// called after mu is released.
func (s *Store) commitLocked() func() {
	s.seq++
	seq := s.seq
	if len(s.listeners) == 0 {
		return func() {}
	}
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		if seq <= s.delivered {
			return
		}
		s.delivered = seq
		for _, fn := range fns {
			fn(snap)
		}
	}
}

// Filter returns a copy of the current filter.
func (s *Store) Filter() models.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Clone()
}

// SetFilter parses values for dimension and stores them. It never starts a
// fetch; it reports whether the filter changed so the caller can decide.
func (s *Store) SetFilter(dim Dimension, values []string) (bool, error) {
	switch dim {
	case DimCompany:
		return s.SetCompany(strings.Join(values, " ")), nil
	case DimExperience:
		parsed, err := query.ParseInts(values)
		if err != nil {
			return false, err
		}
		return s.SetExperience(parsed), nil
	case DimLocation:
		parsed, err := query.ParseLocations(values)
		if err != nil {
			return false, err
		}
		return s.SetLocations(parsed), nil
	case DimRoles:
		return s.SetRoles(query.SplitList(values)), nil
	case DimSalary:
		parsed, err := query.ParseInts(values)
		if err != nil {
			return false, err
		}
		return s.SetSalary(parsed), nil
	default:
		return false, errors.New("unknown filter dimension")
	}
}

func (s *Store) SetCompany(company string) bool {
	return s.update(func(f *models.Filter) { f.Company = company })
}

func (s *Store) SetExperience(values []int) bool {
	return s.update(func(f *models.Filter) { f.Experience = slices.Clone(values) })
}

func (s *Store) SetLocations(values []string) bool {
	return s.update(func(f *models.Filter) { f.Locations = slices.Clone(values) })
}

func (s *Store) SetRoles(values []string) bool {
	return s.update(func(f *models.Filter) { f.Roles = slices.Clone(values) })
}

func (s *Store) SetSalary(values []int) bool {
	return s.update(func(f *models.Filter) { f.Salary = slices.Clone(values) })
}

// ResetFilters clears every constraint.
func (s *Store) ResetFilters() bool {
	return s.update(func(f *models.Filter) { *f = models.Filter{} })
}

func (s *Store) update(mutate func(*models.Filter)) bool {
	s.mu.Lock()
	next := s.filter.Clone()
	mutate(&next)
	if next.Equal(s.filter) {
		s.mu.Unlock()
		return false
	}
	s.filter = next
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return true
}

// LoadInitial replaces the results with page 1 for the current filter. Any
// in-flight initial or load-more fetch is cancelled first. The returned
// channel closes once this fetch has settled.
func (s *Store) LoadInitial() <-chan struct{} {
	s.mu.Lock()
	s.more.stop()
	ctx, gen := s.initial.start(s.ctx)
	s.status = Loading
	s.result = nil
	s.err = nil
	filter := s.filter.Clone()
	page := models.Page{Number: 1, Size: s.pageSize}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	s.logger.Debug().Uint64("gen", gen).Msg("initial load started")

	done := make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		result, err := s.fetcher.Begin(ctx, pipeline.Replace, filter, page)
		s.finishInitial(gen, result, err)
	}()
	return done
}

func (s *Store) finishInitial(gen uint64, result models.ResultSet, err error) {
	s.mu.Lock()
	if errors.Is(err, pipeline.ErrCancelled) || !s.initial.finish(gen) {
		s.mu.Unlock()
		s.logger.Debug().Uint64("gen", gen).Msg("initial load superseded")
		return
	}

	if err != nil {
		s.status = Failed
		s.result = nil
		s.err = pipeline.ErrQueryFailed
	} else {
		s.status = Succeeded
		s.result = &result
		s.err = nil
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
}

// LoadMore appends the next page when the last fetch succeeded and more jobs
// match. It reports false, without fetching, otherwise.
func (s *Store) LoadMore() (<-chan struct{}, bool) {
	s.mu.Lock()
	if s.status != Succeeded || s.result == nil || s.result.Exhausted() {
		status := s.status
		s.mu.Unlock()
		s.logger.Debug().Stringer("status", status).Msg("load more skipped")
		return nil, false
	}

	ctx, gen := s.more.start(s.ctx)
	s.status = Loading
	s.err = nil
	filter := s.filter.Clone()
	page := s.result.Current().Next()
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	s.logger.Debug().Uint64("gen", gen).Int("page", page.Number).Msg("load more started")

	done := make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		result, err := s.fetcher.Begin(ctx, pipeline.Append, filter, page)
		s.finishMore(gen, result, err)
	}()
	return done, true
}

func (s *Store) finishMore(gen uint64, result models.ResultSet, err error) {
	s.mu.Lock()
	if errors.Is(err, pipeline.ErrCancelled) || !s.more.finish(gen) {
		s.mu.Unlock()
		s.logger.Debug().Uint64("gen", gen).Msg("load more superseded")
		return
	}
	// Appending is only valid onto the data this fetch started from.
	if s.status != Loading || s.result == nil {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.status = Failed
		s.err = pipeline.ErrQueryFailed
	} else {
		data := make([]models.Job, 0, len(s.result.Data)+len(result.Data))
		data = append(data, s.result.Data...)
		data = append(data, result.Data...)
		s.result = &models.ResultSet{Data: data, Pagination: result.Pagination}
		s.status = Succeeded
		s.err = nil
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
}

// Close cancels every outstanding fetch and waits for their goroutines.
func (s *Store) Close() {
	s.mu.Lock()
	s.initial.stop()
	s.more.stop()
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
