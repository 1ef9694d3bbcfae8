// Package lifecycle enforces campaign status transitions and is the single
// write path into the record store. Editing surfaces never call the store
// directly; they go through a Manager, which composes generated content and
// suggestions into the working copy before committing it.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartjourney/studio/internal/campaign"
	"github.com/smartjourney/studio/internal/genai"
	"github.com/smartjourney/studio/internal/store"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Manager owns campaign state transitions.
type Manager struct {
	store     *store.Store
	generator *genai.Generator
	session   *genai.Session
	logger    *slog.Logger

	// now is swapped in tests to pin the scheduling guard.
	now func() time.Time
}

// New creates a Manager.
func New(st *store.Store, gen *genai.Generator, session *genai.Session, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     st,
		generator: gen,
		session:   session,
		logger:    logger.With("component", "lifecycle"),
		now:       time.Now,
	}
}

// NewDraft returns an unsaved campaign with empty defaults. The id is assigned
// by the store on first save.
func (m *Manager) NewDraft() *campaign.Campaign {
	return &campaign.Campaign{
		Audience: campaign.AudienceAll,
		Status:   campaign.StatusDraft,
	}
}

// FromTemplate instantiates a template into a new draft campaign and commits
// it. The campaign is an independent copy; later template changes never reach
// it.
func (m *Manager) FromTemplate(ctx context.Context, templateID string) (*campaign.Campaign, error) {
	tpl, err := m.store.Template(templateID)
	if err != nil {
		return nil, err
	}
	draft := tpl.Instantiate(m.now().UTC())
	saved, err := m.store.Save(ctx, draft)
	if err != nil {
		return nil, err
	}
	m.logger.Info("instantiated template", "template_id", templateID, "campaign_id", saved.ID)
	return saved, nil
}

// Generate produces campaign content from a free-text prompt.
func (m *Manager) Generate(prompt string) (campaign.Content, error) {
	return m.generator.Generate(prompt)
}

// Suggest runs a suggestion computation for the field's current value. A newer
// call for the same field supersedes this one.
func (m *Manager) Suggest(ctx context.Context, field, value string) ([]genai.Suggestion, error) {
	return m.session.Suggest(ctx, field, value)
}

// ApplySuggestion replaces the target field on the working copy with the
// suggestion's text and discards any computation still in flight for that
// field. The caller commits via Save when the edit session ends.
func (m *Manager) ApplySuggestion(c *campaign.Campaign, s genai.Suggestion) error {
	switch s.Field {
	case "subject":
		c.Content.Subject = s.Text
	case "body":
		c.Content.Body = s.Text
	default:
		return &campaign.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown suggestion target %q", s.Field)}
	}
	m.session.Cancel(s.Field)
	return nil
}

// Save validates and commits an edited campaign. Editing an unsent campaign
// always returns it to draft and clears its schedule; a campaign that has been
// sent is immutable.
func (m *Manager) Save(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	rec := c.Clone()

	if rec.ID == "" {
		rec.Metrics = campaign.Metrics{}
	} else {
		existing, err := m.store.Get(rec.ID)
		if err != nil {
			return nil, &campaign.ValidationError{Field: "id", Reason: fmt.Sprintf("campaign %s does not exist", rec.ID)}
		}
		if existing.Status == campaign.StatusSent {
			return nil, &campaign.ValidationError{Field: "status", Reason: "sent campaigns cannot be edited"}
		}
		// Delivery counters belong to the reporting collaborator; an edit
		// never changes them.
		rec.Metrics = existing.Metrics
		rec.CreatedAt = existing.CreatedAt
	}

	rec.Status = campaign.StatusDraft
	rec.ScheduledDate = ""
	rec.ScheduledTime = ""

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return m.store.Save(ctx, rec)
}

// Schedule moves a draft or scheduled campaign to scheduled for the given
// date and time. The guard rejects past dates outright and, for today, any
// time already gone; nothing is silently corrected.
func (m *Manager) Schedule(ctx context.Context, id, date, timeOfDay string) (*campaign.Campaign, error) {
	rec, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != campaign.StatusDraft && rec.Status != campaign.StatusScheduled {
		return nil, &campaign.ValidationError{Field: "status", Reason: fmt.Sprintf("cannot schedule a %s campaign", rec.Status)}
	}

	if err := m.checkSchedule(date, timeOfDay); err != nil {
		return nil, err
	}

	rec.Status = campaign.StatusScheduled
	rec.ScheduledDate = date
	rec.ScheduledTime = timeOfDay
	saved, err := m.store.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	m.logger.Info("campaign scheduled", "id", id, "date", date, "time", timeOfDay)
	return saved, nil
}

func (m *Manager) checkSchedule(date, timeOfDay string) error {
	if date == "" {
		return &campaign.ValidationError{Field: "scheduled_date", Reason: "is required"}
	}
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return &campaign.ValidationError{Field: "scheduled_date", Reason: "must be YYYY-MM-DD"}
	}

	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return &campaign.ValidationError{Field: "scheduled_date", Reason: "must not be in the past"}
	}
	if !day.Equal(today) {
		if timeOfDay != "" {
			if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
				return &campaign.ValidationError{Field: "scheduled_time", Reason: "must be HH:MM"}
			}
		}
		return nil
	}

	// Same-day schedules need an explicit time that has not passed yet.
	if timeOfDay == "" {
		return &campaign.ValidationError{Field: "scheduled_time", Reason: "is required when scheduling for today"}
	}
	tod, err := time.Parse(timeLayout, timeOfDay)
	if err != nil {
		return &campaign.ValidationError{Field: "scheduled_time", Reason: "must be HH:MM"}
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour(), tod.Minute(), 0, 0, time.Local)
	if at.Before(now.Truncate(time.Minute)) {
		return &campaign.ValidationError{Field: "scheduled_time", Reason: "must not be in the past"}
	}
	return nil
}

// SendNow moves a draft or scheduled campaign to active and clears its
// schedule. Delivery completion is reported separately via RecordDelivery.
func (m *Manager) SendNow(ctx context.Context, id string) (*campaign.Campaign, error) {
	rec, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != campaign.StatusDraft && rec.Status != campaign.StatusScheduled {
		return nil, &campaign.ValidationError{Field: "status", Reason: fmt.Sprintf("cannot send a %s campaign", rec.Status)}
	}

	rec.Status = campaign.StatusActive
	rec.ScheduledDate = ""
	rec.ScheduledTime = ""
	saved, err := m.store.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	m.logger.Info("campaign sending", "id", id)
	return saved, nil
}

// RecordDelivery is the delivery collaborator's completion report: it moves an
// active campaign to sent and writes its delivery counters. No other path may
// set sent or touch metrics.
func (m *Manager) RecordDelivery(ctx context.Context, id string, metrics campaign.Metrics) (*campaign.Campaign, error) {
	rec, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != campaign.StatusActive {
		return nil, &campaign.ValidationError{Field: "status", Reason: fmt.Sprintf("delivery reported for a %s campaign", rec.Status)}
	}
	if metrics.Sent < 0 || metrics.Opened < 0 || metrics.Clicked < 0 || metrics.Converted < 0 {
		return nil, &campaign.ValidationError{Field: "metrics", Reason: "counters must not be negative"}
	}

	rec.Status = campaign.StatusSent
	rec.Metrics = metrics
	saved, err := m.store.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	m.logger.Info("campaign delivered", "id", id, "sent", metrics.Sent)
	return saved, nil
}

// Delete removes a campaign. Deleting an unknown id is a no-op.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
