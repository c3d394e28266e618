package search

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquezada/katutubo/internal/datastore"
)

// fakeStore is a scripted Querier that records every call.
type fakeStore struct {
	mu sync.Mutex

	prefixResults map[datastore.SearchField][]datastore.Person
	prefixErr     error
	ageResults    []datastore.Person
	windowResults []datastore.Person
	windowErr     error

	prefixCalls int
	ageCalls    int
	windowCalls int
}

func (f *fakeStore) PrefixSearch(field datastore.SearchField, term string, limit int) ([]datastore.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixCalls++
	if f.prefixErr != nil {
		return nil, f.prefixErr
	}
	return f.prefixResults[field], nil
}

func (f *fakeStore) AgeSearch(age, limit int) ([]datastore.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ageCalls++
	return f.ageResults, nil
}

func (f *fakeStore) Window(limit int) ([]datastore.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windowCalls++
	if f.windowErr != nil {
		return nil, f.windowErr
	}
	return f.windowResults, nil
}

func person(id, first, last string) datastore.Person {
	return datastore.Person{PublicID: id, FirstName: first, LastName: last}
}

func TestSuggestEmptyTermSkipsStore(t *testing.T) {
	store := &fakeStore{}
	p := NewPlanner(store)

	for _, term := range []string{"", "   ", "\t"} {
		results, err := p.Suggest(context.Background(), term)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, store.prefixCalls)
	assert.Zero(t, store.ageCalls)
	assert.Zero(t, store.windowCalls)
}

func TestSuggestIndexedHit(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{
			datastore.FieldFirstName: {person("a", "Maria", "Cruz")},
			datastore.FieldLastName:  {person("b", "Juan", "Marquez")},
		},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "mar")
	require.NoError(t, err)
	require.Len(t, results, 2)
	// No fallback when the indexed queries hit.
	assert.Zero(t, store.windowCalls)
	assert.Equal(t, len(datastore.SearchFields), store.prefixCalls)
}

func TestSuggestDeduplicatesAcrossFields(t *testing.T) {
	same := person("dup", "Maria", "Marquez")
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{
			datastore.FieldFirstName: {same},
			datastore.FieldLastName:  {same},
		},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "mar")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "dup", results[0].PublicID)
}

func TestSuggestTruncatesToLimit(t *testing.T) {
	var many []datastore.Person
	for i := 0; i < 20; i++ {
		many = append(many, person(fmt.Sprintf("p%d", i), "Maria", "Cruz"))
	}
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{
			datastore.FieldFirstName: many,
		},
	}
	p := NewPlanner(store, WithLimits(5, 50))

	results, err := p.Suggest(context.Background(), "maria")
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSuggestNumericTermQueriesAge(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{},
		ageResults:    []datastore.Person{person("aged", "Jose", "Reyes")},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "25")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "aged", results[0].PublicID)
	assert.Equal(t, 1, store.ageCalls)
}

func TestSuggestFallbackOnQueryFailure(t *testing.T) {
	store := &fakeStore{
		prefixErr: fmt.Errorf("index missing"),
		windowResults: []datastore.Person{
			person("hit", "Maria", "Cruz"),
			person("miss", "Jose", "Reyes"),
		},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "mar")
	require.NoError(t, err)
	assert.Equal(t, 1, store.windowCalls)
	// The scan window is filtered client-side; only starts-with matches
	// survive.
	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0].PublicID)
}

func TestSuggestFallbackOnNoHits(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{},
		windowResults: []datastore.Person{
			person("brgy", "Jose", "Reyes"),
		},
	}
	store.windowResults[0].Barangay = "Madulao"
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "madu")
	require.NoError(t, err)
	assert.Equal(t, 1, store.windowCalls)
	require.Len(t, results, 1)
	assert.Equal(t, "brgy", results[0].PublicID)
}

func TestSuggestFallbackNumericMatchesStoredAge(t *testing.T) {
	age := 25
	older := 52
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{},
		windowResults: []datastore.Person{
			{PublicID: "young", FirstName: "Ana", Age: &age},
			{PublicID: "older", FirstName: "Ben", Age: &older},
		},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "25")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "young", results[0].PublicID)
}

func TestSuggestScanFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{
		prefixErr: fmt.Errorf("index missing"),
		windowErr: fmt.Errorf("scan failed"),
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "mar")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSuggestNormalizesTerm(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{},
		windowResults: []datastore.Person{person("hit", "Maria", "Cruz")},
	}
	p := NewPlanner(store)

	results, err := p.Suggest(context.Background(), "  MARIA  ")
	require.NoError(t, err)
	require.Len(t, results, 1)
}
