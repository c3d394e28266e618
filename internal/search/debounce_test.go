package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mquezada/katutubo/internal/datastore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// commitRecorder collects commits in arrival order.
type commitRecorder struct {
	mu      sync.Mutex
	commits []string
	signal  chan struct{}
}

func newCommitRecorder() *commitRecorder {
	return &commitRecorder{signal: make(chan struct{}, 16)}
}

func (r *commitRecorder) commit(term string, results []datastore.Person) {
	r.mu.Lock()
	r.commits = append(r.commits, term)
	r.mu.Unlock()
	r.signal <- struct{}{}
}

func (r *commitRecorder) terms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commits...)
}

func (r *commitRecorder) waitForCommit(t *testing.T) {
	t.Helper()
	select {
	case <-r.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a commit")
	}
}

func TestDebouncerCommitsAfterQuietPeriod(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{
			datastore.FieldFirstName: {person("a", "Maria", "Cruz")},
		},
	}
	rec := newCommitRecorder()
	d := NewDebouncer(NewPlanner(store), 10*time.Millisecond, rec.commit)
	defer d.Stop()

	d.Update("maria")
	rec.waitForCommit(t)

	assert.Equal(t, []string{"maria"}, rec.terms())
}

func TestDebouncerCoalescesRapidKeystrokes(t *testing.T) {
	store := &fakeStore{
		prefixResults: map[datastore.SearchField][]datastore.Person{},
		windowResults: []datastore.Person{person("hit", "Maria", "Cruz")},
	}
	rec := newCommitRecorder()
	d := NewDebouncer(NewPlanner(store), 50*time.Millisecond, rec.commit)
	defer d.Stop()

	// Keystrokes faster than the quiet period; only the last term fires.
	d.Update("m")
	d.Update("ma")
	d.Update("mar")
	d.Update("maria")
	rec.waitForCommit(t)

	assert.Equal(t, []string{"maria"}, rec.terms())
}

func TestDebouncerEmptyTermResetsImmediately(t *testing.T) {
	store := &fakeStore{}
	rec := newCommitRecorder()
	d := NewDebouncer(NewPlanner(store), time.Hour, rec.commit)
	defer d.Stop()

	// The reset does not wait out the quiet period and issues no query.
	d.Update("maria")
	d.Update("")
	rec.waitForCommit(t)

	assert.Equal(t, []string{""}, rec.terms())
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Zero(t, store.prefixCalls)
	assert.Zero(t, store.windowCalls)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	store := &fakeStore{}
	rec := newCommitRecorder()
	d := NewDebouncer(NewPlanner(store), time.Hour, rec.commit)

	d.Update("maria")
	d.Stop()

	assert.Empty(t, rec.terms())
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Zero(t, store.prefixCalls)
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(NewPlanner(&fakeStore{}), 0, func(string, []datastore.Person) {})
	require.Equal(t, DefaultDebounce, d.delay)
	d.Stop()
}
