package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartjourney/studio/internal/campaign"
	"github.com/smartjourney/studio/internal/metrics"
)

// ErrNotFound is returned when a campaign id is not in the collection.
var ErrNotFound = errors.New("campaign not found")

// Remote is the upstream campaign service surface the store mirrors to.
// Every call is best-effort: failures are absorbed at the store boundary.
type Remote interface {
	FetchCampaigns(ctx context.Context) ([]*campaign.Campaign, error)
	CreateCampaign(ctx context.Context, c *campaign.Campaign) error
	UpdateCampaign(ctx context.Context, c *campaign.Campaign) error
	DeleteCampaign(ctx context.Context, id string) error
	FetchTemplates(ctx context.Context) ([]*campaign.Template, error)
}

// Options configures a Store.
type Options struct {
	Cache         Cache
	Remote        Remote // nil disables remote sync
	Strategy      Strategy
	RemoteTimeout time.Duration
	Logger        *slog.Logger
	Metrics       *metrics.Metrics // optional
}

// Store owns the in-session campaign and template collections. Local commits
// are synchronous; remote mirroring happens on supervised background tasks
// whose outcomes are reported on the Outcomes channel. Per id, the most recent
// save or delete wins; no conflict detection is kept.
type Store struct {
	mu        sync.RWMutex
	campaigns []*campaign.Campaign
	templates []*campaign.Template

	cache         Cache
	remote        Remote
	strategy      Strategy
	remoteTimeout time.Duration
	logger        *slog.Logger
	metrics       *metrics.Metrics

	outcomes chan Outcome
	wg       sync.WaitGroup
}

// New creates a Store. Load must be called before the collections are used.
func New(opts Options) *Store {
	if opts.Strategy == nil {
		opts.Strategy = BestEffort{}
	}
	if opts.RemoteTimeout == 0 {
		opts.RemoteTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		cache:         opts.Cache,
		remote:        opts.Remote,
		strategy:      opts.Strategy,
		remoteTimeout: opts.RemoteTimeout,
		logger:        opts.Logger.With("component", "store"),
		metrics:       opts.Metrics,
		outcomes:      make(chan Outcome, 64),
	}
}

// Load reads the durable snapshot synchronously and returns the baseline
// collection. When no snapshot exists yet the seed collection is persisted and
// used. A remote refresh is started in the background; when it succeeds the
// remote collection replaces the baseline wholesale and is re-persisted.
// Remote failures are logged and otherwise invisible to the caller.
func (s *Store) Load(ctx context.Context) ([]*campaign.Campaign, error) {
	s.mu.Lock()

	campaigns, err := s.cache.LoadCampaigns()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("load campaign snapshot: %w", err)
	}
	if campaigns == nil {
		campaigns = campaign.SeedCampaigns()
		if err := s.cache.SaveCampaigns(campaigns); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("persist seed campaigns: %w", err)
		}
		s.logger.Info("no local snapshot found, seeded campaign collection", "count", len(campaigns))
	}
	s.campaigns = campaigns

	templates, err := s.cache.LoadTemplates()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("load template snapshot: %w", err)
	}
	if templates == nil {
		templates = campaign.SeedTemplates()
		if err := s.cache.SaveTemplates(templates); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("persist seed templates: %w", err)
		}
	}
	s.templates = templates

	baseline := cloneAll(s.campaigns)
	s.mu.Unlock()

	if s.remote != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.refreshFromRemote(context.WithoutCancel(ctx))
		}()
	}

	return baseline, nil
}

// refreshFromRemote fetches the authoritative collections and adopts them
// wholesale. Any failure keeps the local baseline unchanged.
func (s *Store) refreshFromRemote(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	campaigns, err := s.remote.FetchCampaigns(ctx)
	if err != nil {
		s.logger.Warn("remote campaign fetch failed, keeping local snapshot", "error", err)
		s.countRefresh("failure")
		return
	}

	s.mu.Lock()
	s.campaigns = campaigns
	err = s.cache.SaveCampaigns(s.campaigns)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("failed to persist refreshed campaigns", "error", err)
		s.countRefresh("failure")
		return
	}

	if templates, err := s.remote.FetchTemplates(ctx); err != nil {
		s.logger.Warn("remote template fetch failed, keeping local templates", "error", err)
	} else if len(templates) > 0 {
		s.mu.Lock()
		s.templates = templates
		if err := s.cache.SaveTemplates(templates); err != nil {
			s.logger.Error("failed to persist refreshed templates", "error", err)
		}
		s.mu.Unlock()
	}

	s.countRefresh("success")
	s.logger.Info("adopted remote campaign collection", "count", len(campaigns))
}

// List returns independent copies of all campaigns.
func (s *Store) List() []*campaign.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.campaigns)
}

// Get returns a copy of the campaign with the given id.
func (s *Store) Get(id string) (*campaign.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.campaigns {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Templates returns independent copies of the template library.
func (s *Store) Templates() []*campaign.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*campaign.Template, len(s.templates))
	for i, t := range s.templates {
		cp := *t
		cp.Tags = append([]string(nil), t.Tags...)
		out[i] = &cp
	}
	return out
}

// Template returns a copy of one template by id.
func (s *Store) Template(id string) (*campaign.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			cp := *t
			cp.Tags = append([]string(nil), t.Tags...)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Save upserts a campaign. A missing id is assigned; the full collection is
// persisted synchronously before Save returns, then the single record is
// mirrored to the remote service in the background. Only local persistence
// errors are returned.
func (s *Store) Save(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	rec := c.Clone()
	isNew := rec.ID == ""
	if isNew {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	next := make([]*campaign.Campaign, 0, len(s.campaigns)+1)
	replaced := false
	for _, existing := range s.campaigns {
		if existing.ID == rec.ID {
			next = append(next, rec)
			replaced = true
		} else {
			next = append(next, existing)
		}
	}
	if !replaced {
		next = append(next, rec)
	}

	if err := s.cache.SaveCampaigns(next); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("persist campaigns: %w", err)
	}
	s.campaigns = next
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SavesTotal.Inc()
	}

	op := "update"
	if !replaced {
		op = "create"
	}
	s.mirror(ctx, op, rec.ID, func(mctx context.Context) error {
		if op == "create" {
			return s.remote.CreateCampaign(mctx, rec)
		}
		return s.remote.UpdateCampaign(mctx, rec)
	})

	return rec.Clone(), nil
}

// Delete removes a campaign by id. A missing id is a no-op. The reduced
// collection is persisted synchronously, then the remote delete runs in the
// background with the same best-effort semantics as Save.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]*campaign.Campaign, 0, len(s.campaigns))
	found := false
	for _, existing := range s.campaigns {
		if existing.ID == id {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		s.mu.Unlock()
		return nil
	}

	if err := s.cache.SaveCampaigns(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist campaigns: %w", err)
	}
	s.campaigns = next
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DeletesTotal.Inc()
	}

	s.mirror(ctx, "delete", id, func(mctx context.Context) error {
		return s.remote.DeleteCampaign(mctx, id)
	})

	return nil
}

// mirror supervises one background remote write and reports its outcome.
func (s *Store) mirror(ctx context.Context, op, id string, do func(context.Context) error) {
	if s.remote == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		attempts, err := s.strategy.Run(ctx, func(actx context.Context) error {
			actx, cancel := context.WithTimeout(actx, s.remoteTimeout)
			defer cancel()
			return do(actx)
		})

		result := "success"
		if err != nil {
			result = "failure"
			s.logger.Warn("remote mirror failed, local copy remains authoritative",
				"op", op, "id", id, "attempts", attempts, "error", err)
		}
		if s.metrics != nil {
			s.metrics.MirrorTotal.WithLabelValues(op, result).Inc()
		}

		select {
		case s.outcomes <- Outcome{Op: op, ID: id, Attempts: attempts, Err: err}:
		default: // nobody listening, drop
		}
	}()
}

// Outcomes exposes mirror task results for observation; reads are optional.
func (s *Store) Outcomes() <-chan Outcome {
	return s.outcomes
}

// Close waits for in-flight background tasks and closes the cache.
func (s *Store) Close() error {
	s.wg.Wait()
	return s.cache.Close()
}

func (s *Store) countRefresh(result string) {
	if s.metrics != nil {
		s.metrics.RemoteRefreshTotal.WithLabelValues(result).Inc()
	}
}

func cloneAll(in []*campaign.Campaign) []*campaign.Campaign {
	out := make([]*campaign.Campaign, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
