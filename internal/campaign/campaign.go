package campaign

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a campaign.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusSent      Status = "sent"
)

// Audience identifies the subscriber segment a campaign targets.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceNew      Audience = "new"
	AudienceActive   Audience = "active"
	AudienceVIP      Audience = "vip"
	AudienceInactive Audience = "inactive"
)

// BudgetType selects how a campaign budget is applied.
type BudgetType string

const (
	BudgetTotal   BudgetType = "total"
	BudgetDaily   BudgetType = "daily"
	BudgetMonthly BudgetType = "monthly"
)

// SegmentSizes are the subscriber counts per audience segment, maintained by the
// audience service and mirrored here for overview/analytics output.
var SegmentSizes = map[Audience]int{
	AudienceAll:      12450,
	AudienceNew:      1890,
	AudienceActive:   8920,
	AudienceVIP:      890,
	AudienceInactive: 2150,
}

// Content is the email payload of a campaign or template. Subject lives here and
// only here; the top-level subject some consumers expect is derived at the
// serialization boundary.
type Content struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Metrics are delivery counters. They are zeroed at creation and afterwards
// written only by the delivery reporting collaborator, never by the editor.
type Metrics struct {
	Sent      int `json:"sent"`
	Opened    int `json:"opened"`
	Clicked   int `json:"clicked"`
	Converted int `json:"converted"`
}

// Campaign is a single editable marketing message.
type Campaign struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Content       Content    `json:"content"`
	Audience      Audience   `json:"audience"`
	Budget        float64    `json:"budget,omitempty"`
	BudgetType    BudgetType `json:"budgetType,omitempty"`
	Status        Status     `json:"status"`
	ScheduledDate string     `json:"scheduled_date,omitempty"` // 2006-01-02
	ScheduledTime string     `json:"scheduled_time,omitempty"` // 15:04
	Metrics       Metrics    `json:"metrics"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MarshalJSON emits a legacy denormalized top-level subject alongside
// content.subject; the upstream service and older snapshots carry both.
func (c Campaign) MarshalJSON() ([]byte, error) {
	type alias Campaign
	return json.Marshal(struct {
		alias
		Subject string `json:"subject"`
	}{alias(c), c.Content.Subject})
}

// UnmarshalJSON folds a legacy top-level subject back into content.subject
// when the nested one is absent.
func (c *Campaign) UnmarshalJSON(data []byte) error {
	type alias Campaign
	var w struct {
		alias
		Subject string `json:"subject"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Campaign(w.alias)
	if c.Content.Subject == "" {
		c.Content.Subject = w.Subject
	}
	return nil
}

// Clone returns an independent copy of the campaign, suitable as a detached
// working copy for an editing session.
func (c *Campaign) Clone() *Campaign {
	cp := *c
	return &cp
}

// Template is an immutable content blueprint. Instantiating one produces a new
// draft campaign; the template itself is never edited here.
type Template struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Content    Content  `json:"content"`
	Preview    string   `json:"preview"`
	Tags       []string `json:"tags"`
	UsageCount int      `json:"usage_count"`
}

// Instantiate creates a new independent draft campaign from the template.
func (t *Template) Instantiate(now time.Time) *Campaign {
	return &Campaign{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("Campaign from %s", t.Name),
		Content:   t.Content,
		Audience:  AudienceAll,
		Status:    StatusDraft,
		CreatedAt: now,
	}
}

// ValidationError describes a rejected field with a specific reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the fields a save requires. Scheduling validity is enforced
// separately by the lifecycle manager because it depends on the current time.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	switch c.Status {
	case StatusDraft, StatusScheduled, StatusActive, StatusSent:
	default:
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", c.Status)}
	}
	switch c.Audience {
	case AudienceAll, AudienceNew, AudienceActive, AudienceVIP, AudienceInactive:
	default:
		return &ValidationError{Field: "audience", Reason: fmt.Sprintf("unknown audience %q", c.Audience)}
	}
	if c.Budget < 0 {
		return &ValidationError{Field: "budget", Reason: "must not be negative"}
	}
	if c.BudgetType != "" {
		switch c.BudgetType {
		case BudgetTotal, BudgetDaily, BudgetMonthly:
		default:
			return &ValidationError{Field: "budgetType", Reason: fmt.Sprintf("unknown budget type %q", c.BudgetType)}
		}
	}
	if c.Status == StatusScheduled && c.ScheduledDate == "" {
		return &ValidationError{Field: "scheduled_date", Reason: "is required for scheduled campaigns"}
	}
	return nil
}
