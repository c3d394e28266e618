// Package search resolves free-text queries into bounded, deduplicated
// candidate sets of person records. Indexed prefix queries are tried first;
// a bounded unindexed scan with a client-side filter is the safety net when
// the indexed queries fail or come back empty. Read failures never surface
// to callers: the planner fails open to an empty suggestion list.
package search

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mquezada/katutubo/internal/classify"
	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/observability"
)

// Defaults for the planner bounds, matching the shipped configuration.
const (
	DefaultSuggestionLimit   = 8
	DefaultFallbackScanLimit = 120
)

// Querier is the slice of the datastore the planner needs.
type Querier interface {
	PrefixSearch(field datastore.SearchField, term string, limit int) ([]datastore.Person, error)
	AgeSearch(age, limit int) ([]datastore.Person, error)
	Window(limit int) ([]datastore.Person, error)
}

// Planner composes and executes suggestion queries.
type Planner struct {
	store             Querier
	suggestionLimit   int
	fallbackScanLimit int
	logger            *slog.Logger
	metrics           *observability.Metrics
}

// Option configures a Planner.
type Option func(*Planner)

// WithLimits overrides the suggestion and fallback-scan bounds.
func WithLimits(suggestionLimit, fallbackScanLimit int) Option {
	return func(p *Planner) {
		if suggestionLimit > 0 {
			p.suggestionLimit = suggestionLimit
		}
		if fallbackScanLimit > 0 {
			p.fallbackScanLimit = fallbackScanLimit
		}
	}
}

// WithLogger sets the planner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithMetrics attaches the service metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Planner) { p.metrics = m }
}

// NewPlanner creates a Planner over store.
func NewPlanner(store Querier, opts ...Option) *Planner {
	p := &Planner{
		store:             store,
		suggestionLimit:   DefaultSuggestionLimit,
		fallbackScanLimit: DefaultFallbackScanLimit,
		logger:            slog.Default().With("service", "search"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Suggest resolves raw user text into at most the suggestion limit of
// matching records. An empty term returns nil without touching the store.
// The error return is always nil today; it is kept so callers are written
// against the failure contract rather than the current implementation.
func (p *Planner) Suggest(ctx context.Context, rawTerm string) ([]datastore.Person, error) {
	term := classify.Normalize(rawTerm)
	if term == "" {
		return nil, nil
	}

	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.SearchDuration.Observe(time.Since(start).Seconds())
		}
	}()

	merged, ok := p.indexedQueries(ctx, term)
	if !ok {
		// At least one indexed query failed; abandon all of them and fall
		// back to the bounded scan with the client-side filter.
		p.countFallback("query_failed")
		return p.fallbackScan(term), nil
	}

	if len(merged) == 0 {
		// Indexed queries succeeded but matched nothing, commonly because
		// the lowercase projections are absent on old data. Same bounded
		// scan, same filter.
		p.countFallback("no_hits")
		return p.fallbackScan(term), nil
	}

	p.countQuery("indexed")
	return truncate(merged, p.suggestionLimit), nil
}

// indexedQueries runs the per-field prefix queries in parallel and merges
// their results. ok is false when any query failed.
func (p *Planner) indexedQueries(ctx context.Context, term string) ([]datastore.Person, bool) {
	fields := datastore.SearchFields
	slots := make([][]datastore.Person, len(fields)+1)

	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for i, field := range fields {
		g.Go(func() error {
			people, err := p.store.PrefixSearch(field, term, p.suggestionLimit)
			if err != nil {
				return err
			}
			mu.Lock()
			slots[i] = people
			mu.Unlock()
			return nil
		})
	}

	if classify.IsNumeric(term) {
		age, err := strconv.Atoi(term)
		if err == nil {
			g.Go(func() error {
				people, err := p.store.AgeSearch(age, p.suggestionLimit)
				if err != nil {
					return err
				}
				mu.Lock()
				slots[len(fields)] = people
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		p.logger.Warn("indexed suggestion query failed, falling back to scan",
			"term", term, "error", err)
		return nil, false
	}

	// Merge in slot order so the result is deterministic regardless of
	// which query finished first. First-seen data wins per record.
	seen := make(map[string]struct{})
	var merged []datastore.Person
	for _, slot := range slots {
		for _, person := range slot {
			if _, dup := seen[person.PublicID]; dup {
				continue
			}
			seen[person.PublicID] = struct{}{}
			merged = append(merged, person)
		}
	}
	return merged, true
}

// fallbackScan pulls a bounded window of the collection and applies the
// starts-with filter client-side. A failing scan degrades to no
// suggestions, never to an error.
func (p *Planner) fallbackScan(term string) []datastore.Person {
	window, err := p.store.Window(p.fallbackScanLimit)
	if err != nil {
		p.logger.Error("fallback scan failed, returning no suggestions",
			"term", term, "error", err)
		p.countQuery("empty")
		return nil
	}

	var ageWanted int
	numeric := classify.IsNumeric(term)
	if numeric {
		ageWanted, _ = strconv.Atoi(term)
	}

	var matches []datastore.Person
	for _, person := range window {
		if matchesTerm(&person, term, numeric, ageWanted) {
			matches = append(matches, person)
		}
	}
	p.countQuery("fallback")
	return truncate(matches, p.suggestionLimit)
}

// matchesTerm applies the client-side suggestion predicate: any of the four
// name/location fields starts with the term, or the stored age equals a
// numeric term exactly.
func matchesTerm(p *datastore.Person, term string, numeric bool, age int) bool {
	if hasPrefixFold(p.FirstName, term) ||
		hasPrefixFold(p.LastName, term) ||
		hasPrefixFold(p.Barangay, term) ||
		hasPrefixFold(p.Lineage, term) {
		return true
	}
	return numeric && p.Age != nil && *p.Age == age
}

func hasPrefixFold(value, term string) bool {
	v := classify.Normalize(value)
	return len(v) >= len(term) && v[:len(term)] == term
}

func truncate(people []datastore.Person, limit int) []datastore.Person {
	if len(people) > limit {
		return people[:limit]
	}
	return people
}

func (p *Planner) countQuery(outcome string) {
	if p.metrics != nil {
		p.metrics.SearchQueries.WithLabelValues(outcome).Inc()
	}
}

func (p *Planner) countFallback(reason string) {
	if p.metrics != nil {
		p.metrics.FallbackScans.WithLabelValues(reason).Inc()
	}
}
