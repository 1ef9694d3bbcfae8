package campaign

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	base := func() *Campaign {
		return &Campaign{
			Name:     "Test",
			Status:   StatusDraft,
			Audience: AudienceAll,
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	c := base()
	c.Name = ""
	if err := c.Validate(); err == nil {
		t.Error("Validate() should reject empty name")
	}

	c = base()
	c.Status = "archived"
	if err := c.Validate(); err == nil {
		t.Error("Validate() should reject unknown status")
	}

	c = base()
	c.Budget = -1
	if err := c.Validate(); err == nil {
		t.Error("Validate() should reject negative budget")
	}

	c = base()
	c.Status = StatusScheduled
	if err := c.Validate(); err == nil {
		t.Error("Validate() should reject scheduled campaign without date")
	}

	c = base()
	c.Audience = "everyone"
	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() should reject unknown audience")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "audience" {
		t.Errorf("Validate() error = %v, want ValidationError on audience", err)
	}
}

func TestMarshalDenormalizedSubject(t *testing.T) {
	c := Campaign{
		ID:      "c1",
		Name:    "Test",
		Content: Content{Subject: "Hello", Body: "Body"},
		Status:  StatusDraft,
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m["subject"] != "Hello" {
		t.Errorf("top-level subject = %v, want Hello", m["subject"])
	}
}

func TestUnmarshalLegacySubject(t *testing.T) {
	// Older snapshots only carry the top-level subject.
	raw := `{"id":"c1","name":"Test","subject":"Legacy","content":{"body":"Body"},"status":"draft"}`

	var c Campaign
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Content.Subject != "Legacy" {
		t.Errorf("Content.Subject = %q, want Legacy", c.Content.Subject)
	}

	// Nested subject wins when both are present.
	raw = `{"id":"c1","name":"Test","subject":"Old","content":{"subject":"New","body":"Body"},"status":"draft"}`
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Content.Subject != "New" {
		t.Errorf("Content.Subject = %q, want New", c.Content.Subject)
	}
}

func TestTemplateInstantiate(t *testing.T) {
	tmpl := SeedTemplates()[0]
	now := time.Now()

	c := tmpl.Instantiate(now)
	if c.ID == "" {
		t.Error("Instantiate() did not assign an id")
	}
	if c.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", c.Status)
	}
	if c.Content != tmpl.Content {
		t.Error("Instantiate() did not copy template content")
	}
	if c.Metrics != (Metrics{}) {
		t.Errorf("Metrics = %+v, want zero", c.Metrics)
	}

	// The campaign is a copy, not a reference.
	c.Content.Subject = "edited"
	if tmpl.Content.Subject == "edited" {
		t.Error("editing the campaign mutated the template")
	}

	c2 := tmpl.Instantiate(now)
	if c2.ID == c.ID {
		t.Error("Instantiate() reused an id")
	}
}

func TestSeedCollectionsIndependent(t *testing.T) {
	a := SeedCampaigns()
	b := SeedCampaigns()
	a[0].Name = "mutated"
	if b[0].Name == "mutated" {
		t.Error("SeedCampaigns() returned shared values")
	}
	if len(a) != 5 {
		t.Errorf("len(SeedCampaigns()) = %d, want 5", len(a))
	}
	if len(SeedTemplates()) != 6 {
		t.Errorf("len(SeedTemplates()) = %d, want 6", len(SeedTemplates()))
	}
}
