package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/smartjourney/studio/internal/campaign"
)

// mockCache implements Cache in memory
type mockCache struct {
	mu        sync.Mutex
	campaigns []*campaign.Campaign
	templates []*campaign.Template
	saveErr   error
	loadErr   error
	saves     int
}

func (m *mockCache) LoadCampaigns() ([]*campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.campaigns, nil
}

func (m *mockCache) SaveCampaigns(cs []*campaign.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.campaigns = cs
	m.saves++
	return nil
}

func (m *mockCache) LoadTemplates() ([]*campaign.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.templates, nil
}

func (m *mockCache) SaveTemplates(ts []*campaign.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = ts
	return nil
}

func (m *mockCache) Close() error { return nil }

func (m *mockCache) snapshot() []*campaign.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns
}

// mockRemote implements Remote with scriptable failures
type mockRemote struct {
	mu        sync.Mutex
	campaigns []*campaign.Campaign
	templates []*campaign.Template
	fail      bool
	created   []string
	updated   []string
	deleted   []string
}

var errRemoteDown = errors.New("connection refused")

func (m *mockRemote) FetchCampaigns(ctx context.Context) ([]*campaign.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errRemoteDown
	}
	return m.campaigns, nil
}

func (m *mockRemote) CreateCampaign(ctx context.Context, c *campaign.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	m.created = append(m.created, c.ID)
	return nil
}

func (m *mockRemote) UpdateCampaign(ctx context.Context, c *campaign.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	m.updated = append(m.updated, c.ID)
	return nil
}

func (m *mockRemote) DeleteCampaign(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRemote) FetchTemplates(ctx context.Context) ([]*campaign.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errRemoteDown
	}
	return m.templates, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(cache Cache, remote Remote) *Store {
	return New(Options{
		Cache:         cache,
		Remote:        remote,
		RemoteTimeout: time.Second,
		Logger:        testLogger(),
	})
}

func awaitOutcome(t *testing.T, s *Store) Outcome {
	t.Helper()
	select {
	case o := <-s.Outcomes():
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mirror outcome")
		return Outcome{}
	}
}

func TestLoadSeedsEmptyCache(t *testing.T) {
	cache := &mockCache{}
	s := newTestStore(cache, nil)

	campaigns, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(campaigns) != 5 {
		t.Errorf("Load() returned %d campaigns, want 5 seeds", len(campaigns))
	}
	// Seeds are persisted immediately so subsequent loads are stable.
	if len(cache.snapshot()) != 5 {
		t.Errorf("seed collection not persisted, cache has %d", len(cache.snapshot()))
	}
	if len(s.Templates()) != 6 {
		t.Errorf("Templates() = %d, want 6 seeds", len(s.Templates()))
	}
}

func TestLoadRemoteUnavailableKeepsBaseline(t *testing.T) {
	local := []*campaign.Campaign{{ID: "local-1", Name: "Local", Status: campaign.StatusDraft, Audience: campaign.AudienceAll}}
	cache := &mockCache{campaigns: local, templates: campaign.SeedTemplates()}
	remote := &mockRemote{fail: true}
	s := newTestStore(cache, remote)

	campaigns, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != "local-1" {
		t.Errorf("Load() = %+v, want local snapshot", campaigns)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := s.List()
	if len(got) != 1 || got[0].ID != "local-1" {
		t.Errorf("collection changed after failed remote refresh: %+v", got)
	}
}

func TestLoadAdoptsRemoteWholesale(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{{ID: "stale", Name: "Stale", Status: campaign.StatusDraft, Audience: campaign.AudienceAll}}, templates: campaign.SeedTemplates()}
	remote := &mockRemote{campaigns: []*campaign.Campaign{
		{ID: "r1", Name: "Remote One", Status: campaign.StatusDraft, Audience: campaign.AudienceAll},
		{ID: "r2", Name: "Remote Two", Status: campaign.StatusSent, Audience: campaign.AudienceVIP},
	}}
	s := newTestStore(cache, remote)

	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := s.List()
	if len(got) != 2 || got[0].ID != "r1" {
		t.Fatalf("remote collection not adopted: %+v", got)
	}
	// The adopted collection is re-persisted locally.
	if snap := cache.snapshot(); len(snap) != 2 {
		t.Errorf("adopted collection not persisted, cache has %d", len(snap))
	}
}

func TestSaveAssignsIDAndPersists(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	s := newTestStore(cache, nil)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	in := &campaign.Campaign{Name: "Test", Content: campaign.Content{Subject: "Hi"}, Status: campaign.StatusDraft, Audience: campaign.AudienceAll}
	saved, err := s.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Save() did not assign an id")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("Save() did not set created_at")
	}
	if in.ID != "" {
		t.Error("Save() mutated the caller's record")
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Test" || got.Content.Subject != "Hi" {
		t.Errorf("Get() = %+v", got)
	}

	if len(cache.snapshot()) != 1 {
		t.Error("Save() did not persist the collection synchronously")
	}
}

func TestSaveLastWriterWins(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	s := newTestStore(cache, nil)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	first, err := s.Save(context.Background(), &campaign.Campaign{Name: "v1", Status: campaign.StatusDraft, Audience: campaign.AudienceAll})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := first.Clone()
	second.Name = "v2"
	if _, err := s.Save(context.Background(), second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "v2" {
		t.Errorf("Name = %q, want v2 (last writer wins)", got.Name)
	}
	if len(s.List()) != 1 {
		t.Errorf("upsert appended instead of replacing, %d records", len(s.List()))
	}
}

func TestSavePersistenceFailurePropagates(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	s := newTestStore(cache, nil)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cache.mu.Lock()
	cache.saveErr = errors.New("disk full")
	cache.mu.Unlock()

	if _, err := s.Save(context.Background(), &campaign.Campaign{Name: "X", Status: campaign.StatusDraft, Audience: campaign.AudienceAll}); err == nil {
		t.Fatal("Save() should surface local persistence failure")
	}
	if len(s.List()) != 0 {
		t.Error("failed Save() left a record in memory")
	}
}

func TestSaveMirrorFailureIsAbsorbed(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	remote := &mockRemote{fail: true}
	s := newTestStore(cache, remote)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Drain the refresh failure before saving.
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	saved, err := s.Save(context.Background(), &campaign.Campaign{Name: "X", Status: campaign.StatusDraft, Audience: campaign.AudienceAll})
	if err != nil {
		t.Fatalf("Save() error = %v, mirror failures must not surface", err)
	}

	o := awaitOutcome(t, s)
	if o.Err == nil || o.ID != saved.ID || o.Op != "create" {
		t.Errorf("outcome = %+v, want failed create for %s", o, saved.ID)
	}

	// Local commit remains authoritative.
	if _, err := s.Get(saved.ID); err != nil {
		t.Errorf("Get() after failed mirror error = %v", err)
	}
}

func TestSaveMirrorsCreateThenUpdate(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	remote := &mockRemote{}
	s := newTestStore(cache, remote)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	saved, err := s.Save(context.Background(), &campaign.Campaign{Name: "X", Status: campaign.StatusDraft, Audience: campaign.AudienceAll})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if o := awaitOutcome(t, s); o.Op != "create" || o.Err != nil {
		t.Errorf("first outcome = %+v, want create", o)
	}

	if _, err := s.Save(context.Background(), saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if o := awaitOutcome(t, s); o.Op != "update" || o.Err != nil {
		t.Errorf("second outcome = %+v, want update", o)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.created) != 1 || len(remote.updated) != 1 {
		t.Errorf("remote saw created=%v updated=%v", remote.created, remote.updated)
	}
}

func TestDelete(t *testing.T) {
	cache := &mockCache{campaigns: []*campaign.Campaign{}, templates: campaign.SeedTemplates()}
	remote := &mockRemote{}
	s := newTestStore(cache, remote)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	saved, err := s.Save(context.Background(), &campaign.Campaign{Name: "X", Status: campaign.StatusDraft, Audience: campaign.AudienceAll})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	awaitOutcome(t, s)

	if err := s.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if o := awaitOutcome(t, s); o.Op != "delete" || o.Err != nil {
		t.Errorf("outcome = %+v, want delete", o)
	}

	if _, err := s.Get(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if len(cache.snapshot()) != 0 {
		t.Error("Delete() did not persist the reduced collection")
	}

	// Deleting an absent id is a no-op, not an error.
	if err := s.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestQueuedRetryStrategy(t *testing.T) {
	var calls int
	strategy := QueuedRetry{Interval: time.Millisecond, MaxRetries: 2}

	attempts, err := strategy.Run(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errRemoteDown
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	calls = 0
	attempts, err = strategy.Run(context.Background(), func(context.Context) error {
		calls++
		return errRemoteDown
	})
	if err == nil {
		t.Fatal("Run() should give up after max retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", attempts)
	}
}
