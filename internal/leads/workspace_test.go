package leads

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T, store *recordingStore, notifier Notifier) *Workspace {
	t.Helper()
	return NewWorkspace(NewAdapter(store, nil, testLogger()), notifier, nil, testLogger())
}

func TestWorkspaceLoad(t *testing.T) {
	store := newRecordingStore()
	ctx := context.Background()
	_, err := store.InMemoryStore.Insert(ctx, validForm("Ada", "ada@example.com"))
	require.NoError(t, err)

	ws := newTestWorkspace(t, store, nil)
	assert.Equal(t, 0, ws.Len())
	require.NoError(t, ws.Load(ctx))
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaceLoadFailureKeepsPreviousSet(t *testing.T) {
	store := newRecordingStore()
	ctx := context.Background()
	ws := newTestWorkspace(t, store, nil)
	_, err := ws.Create(ctx, validForm("Ada", "ada@example.com"))
	require.NoError(t, err)

	store.listErr = errors.New("timeout")
	err = ws.Load(ctx)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaceCreatePrepends(t *testing.T) {
	notifier := &recordingNotifier{}
	ws := newTestWorkspace(t, newRecordingStore(), notifier)
	ctx := context.Background()

	first, err := ws.Create(ctx, validForm("First", "first@example.com"))
	require.NoError(t, err)
	second, err := ws.Create(ctx, validForm("Second", "second@example.com"))
	require.NoError(t, err)

	leads := ws.Leads()
	require.Len(t, leads, 2)
	assert.Equal(t, second.ID, leads[0].ID)
	assert.Equal(t, first.ID, leads[1].ID)
	assert.Len(t, notifier.leads, 2)
}

func TestWorkspaceCreateInvalidNeverReachesStore(t *testing.T) {
	store := newRecordingStore()
	ws := newTestWorkspace(t, store, nil)

	_, err := ws.Create(context.Background(), LeadFormData{Name: "A", Email: "nope"})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, FieldName)
	assert.Contains(t, valErr.Fields, FieldEmail)
	assert.Equal(t, 0, store.probes)
	assert.Equal(t, 0, store.inserts)
	assert.Equal(t, 0, ws.Len())
}

func TestWorkspaceCreateFailureLeavesCollection(t *testing.T) {
	store := newRecordingStore()
	ws := newTestWorkspace(t, store, nil)
	ctx := context.Background()
	_, err := ws.Create(ctx, validForm("Ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = ws.Create(ctx, validForm("Copy", "ada@example.com"))
	var dup *DuplicateEmailError
	require.ErrorAs(t, err, &dup)

	store.insertErr = errors.New("disk full")
	_, err = ws.Create(ctx, validForm("Bob", "bob@example.com"))
	require.Error(t, err)

	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaceNotifierFailureDoesNotFailCreate(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	ws := newTestWorkspace(t, newRecordingStore(), notifier)

	lead, err := ws.Create(context.Background(), validForm("Ada", "ada@example.com"))
	require.NoError(t, err)
	assert.NotNil(t, lead)
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaceDelete(t *testing.T) {
	store := newRecordingStore()
	ws := newTestWorkspace(t, store, nil)
	ctx := context.Background()
	keep, err := ws.Create(ctx, validForm("Keep", "keep@example.com"))
	require.NoError(t, err)
	drop, err := ws.Create(ctx, validForm("Drop", "drop@example.com"))
	require.NoError(t, err)

	name, err := ws.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drop", name)
	assert.Equal(t, []string{drop.ID}, store.deletes)

	leads := ws.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, keep.ID, leads[0].ID)
}

func TestWorkspaceDeleteUnknownID(t *testing.T) {
	store := newRecordingStore()
	ws := newTestWorkspace(t, store, nil)

	name, err := ws.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", name)
	assert.Len(t, store.deletes, 1)
}

func TestWorkspaceDeleteFailureKeepsLead(t *testing.T) {
	store := newRecordingStore()
	ws := newTestWorkspace(t, store, nil)
	ctx := context.Background()
	lead, err := ws.Create(ctx, validForm("Ada", "ada@example.com"))
	require.NoError(t, err)

	store.deleteErr = errors.New("network unreachable")
	_, err = ws.Delete(ctx, lead.ID)
	assert.EqualError(t, err, "network unreachable")
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaceGet(t *testing.T) {
	ws := newTestWorkspace(t, newRecordingStore(), nil)
	lead, err := ws.Create(context.Background(), validForm("Ada", "ada@example.com"))
	require.NoError(t, err)

	got, err := ws.Get(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, *lead, *got)

	_, err = ws.Get("nope")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestWorkspaceView(t *testing.T) {
	ws := newTestWorkspace(t, newRecordingStore(), nil)
	ws.now = func() time.Time { return base }
	ws.leads = fixture()

	view := ws.View(Query{Source: "Website", Sort: SortState{Field: SortByName}})
	assert.Equal(t, []string{"Carol", "Bob"}, names(view.Leads))
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, SortState{Field: SortByName, Order: SortDesc}, view.Sort)
	assert.Equal(t, []string{"Website", "Referral"}, view.Sources)
	assert.Equal(t, Stats{Total: 3, ThisMonth: 3, ConversionRate: 100}, view.Stats)
}

func TestWorkspaceConcurrentCreates(t *testing.T) {
	ws := newTestWorkspace(t, newRecordingStore(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			form := validForm("Lead", "lead"+string(rune('a'+i))+"@example.com")
			_, _ = ws.Create(ctx, form)
			_ = ws.View(Query{})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, ws.Len())
}

func TestOutcomeMessages(t *testing.T) {
	assert.Equal(t, `Lead "Ada" created successfully!`, CreatedMessage("Ada"))
	assert.Equal(t, `Lead "Unknown" deleted successfully!`, DeletedMessage("Unknown"))
}
