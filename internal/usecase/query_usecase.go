package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// PageResult is one materialized page of the filtered entry set. Total
// reflects the filter-qualified count, not the full store, and Seq orders
// the result against concurrent requests from the same consumer.
type PageResult struct {
	Entries []*domain.Entry
	Total   int
	Page    int
	Seq     uint64
}

// QueryPlanner translates a filter state into the count and page queries
// issued to the entry store, and reconciles the filtered total with the
// current page contents. Filter-transition and visible-result state is
// tracked per consumer key, so one caller changing its filter never
// disturbs another caller's paging.
type QueryPlanner struct {
	store           EntryRepository
	clock           *clock.Clock
	defaultPageSize int

	mu        sync.Mutex
	consumers map[string]*consumerState
}

type consumerState struct {
	seq             uint64
	appliedSeq      uint64
	latest          *PageResult
	lastFingerprint string
}

// NewQueryPlanner creates a new QueryPlanner. defaultPageSize applies
// when a fetch does not name a page size.
func NewQueryPlanner(store EntryRepository, c *clock.Clock, defaultPageSize int) *QueryPlanner {
	return &QueryPlanner{
		store:           store,
		clock:           c,
		defaultPageSize: defaultPageSize,
		consumers:       make(map[string]*consumerState),
	}
}

// FetchPage fetches one page of entries matching the filter, newest
// first. The count query and the page query share a single predicate.
// A change in any filter dimension since the same consumer's previous
// call forces the page back to 1: a stale page number against a new
// filter is a defect, not a valid state. A consumer's first call never
// resets, there is no previous filter to have changed from. On store
// failure nothing partial is returned.
func (p *QueryPlanner) FetchPage(ctx context.Context, consumer string, filter query.FilterState, page, pageSize int) (*PageResult, error) {
	if pageSize <= 0 {
		pageSize = p.defaultPageSize
	}
	page, pageSize = domain.ValidatePagination(page, pageSize)

	p.mu.Lock()
	s, ok := p.consumers[consumer]
	if !ok {
		s = &consumerState{lastFingerprint: filter.Fingerprint()}
		p.consumers[consumer] = s
	} else if fp := filter.Fingerprint(); fp != s.lastFingerprint {
		s.lastFingerprint = fp
		page = 1
	}
	s.seq++
	seq := s.seq
	p.mu.Unlock()

	pred, err := filter.Predicate(p.clock)
	if err != nil {
		return nil, err
	}

	total, err := p.store.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("%w: counting entries: %w", domain.ErrQueryFailed, err)
	}

	offset := (page - 1) * pageSize
	entries, err := p.store.GetPage(ctx, pred, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching page %d: %w", domain.ErrQueryFailed, page, err)
	}

	return &PageResult{Entries: entries, Total: total, Page: page, Seq: seq}, nil
}

// Apply admits a completed result into the consumer's visible state.
// Only the highest-numbered result ever wins: a superseded fetch that
// completes late is discarded regardless of completion order. Returns
// false when the result is stale and must be ignored.
func (p *QueryPlanner) Apply(consumer string, res *PageResult) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.consumers[consumer]
	if !ok || res.Seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = res.Seq
	s.latest = res
	return true
}

// Latest returns the consumer's most recently applied result, or nil
// before its first successful fetch.
func (p *QueryPlanner) Latest(consumer string) *PageResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.consumers[consumer]; ok {
		return s.latest
	}
	return nil
}
