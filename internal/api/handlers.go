package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartjourney/studio/internal/campaign"
	"github.com/smartjourney/studio/internal/genai"
	"github.com/smartjourney/studio/internal/store"
)

// CampaignsResponse is the response for GET /campaigns
type CampaignsResponse struct {
	Campaigns []*campaign.Campaign `json:"campaigns"`
}

// TemplatesResponse is the response for GET /templates
type TemplatesResponse struct {
	Templates []*campaign.Template `json:"templates"`
}

// GenerateRequest is the request body for POST /generate
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// SuggestionsRequest is the request body for POST /ai-suggestions
type SuggestionsRequest struct {
	Field        string `json:"field"`
	CurrentValue string `json:"currentValue"`
}

// SuggestionsResponse is the response for POST /ai-suggestions
type SuggestionsResponse struct {
	Field       string             `json:"field"`
	Suggestions []genai.Suggestion `json:"suggestions"`
}

// ScheduleRequest is the request body for POST /campaigns/{id}/schedule
type ScheduleRequest struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

// Recommendation is one entry of GET /ai-recommendations/{id}
type Recommendation struct {
	Type            string   `json:"type"`
	Impact          string   `json:"impact"`
	Confidence      float64  `json:"confidence"`
	Preview         string   `json:"preview"`
	ActionableSteps []string `json:"actionable_steps"`
}

// RecommendationsResponse is the response for GET /ai-recommendations/{id}
type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// OverviewResponse is the response for GET /metrics/overview
type OverviewResponse struct {
	TotalCampaigns  int     `json:"total_campaigns"`
	ActiveCampaigns int     `json:"active_campaigns"`
	TotalSent       int     `json:"total_sent"`
	TotalOpened     int     `json:"total_opened"`
	OpenRate        float64 `json:"open_rate"`
	ClickRate       float64 `json:"click_rate"`
}

// SegmentSummary is one audience row of GET /analytics
type SegmentSummary struct {
	Audience    campaign.Audience `json:"audience"`
	Subscribers int               `json:"subscribers"`
	Campaigns   int               `json:"campaigns"`
}

// AnalyticsResponse is the response for GET /analytics
type AnalyticsResponse struct {
	TotalCampaigns  int                     `json:"total_campaigns"`
	ActiveCampaigns int                     `json:"active_campaigns"`
	TotalBudget     float64                 `json:"total_budget"`
	StatusCounts    map[campaign.Status]int `json:"status_counts"`
	Segments        []SegmentSummary        `json:"segments"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Campaigns int    `json:"campaigns"`
}

// ErrorResponse is the error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, CampaignsResponse{Campaigns: s.store.List()})
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var rec campaign.Campaign
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rec.ID = ""

	saved, err := s.manager.Save(r.Context(), &rec)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(id); err != nil {
		s.handleError(w, err)
		return
	}

	var rec campaign.Campaign
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rec.ID = id

	saved, err := s.manager.Save(r.Context(), &rec)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted successfully"})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := s.manager.Schedule(r.Context(), chi.URLParam(r, "id"), req.ScheduledDate, req.ScheduledTime)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSendNow(w http.ResponseWriter, r *http.Request) {
	saved, err := s.manager.SendNow(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	var report campaign.Metrics
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := s.manager.RecordDelivery(r.Context(), chi.URLParam(r, "id"), report)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, saved)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, TemplatesResponse{Templates: s.store.Templates()})
}

func (s *Server) handleInstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	created, err := s.manager.FromTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := s.manager.Generate(req.Prompt)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, content)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Field == "" {
		s.sendError(w, http.StatusBadRequest, "field is required")
		return
	}

	suggestions, err := s.manager.Suggest(r.Context(), req.Field, req.CurrentValue)
	if err != nil {
		// A newer request for the same field superseded this one.
		s.sendError(w, http.StatusConflict, "superseded by a newer request")
		return
	}
	if suggestions == nil {
		suggestions = []genai.Suggestion{}
	}
	s.sendJSON(w, http.StatusOK, SuggestionsResponse{Field: req.Field, Suggestions: suggestions})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Get(chi.URLParam(r, "id")); err != nil {
		s.handleError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, RecommendationsResponse{Recommendations: recommendations})
}

// recommendations is the static advisory set served per campaign.
var recommendations = []Recommendation{
	{
		Type:       "Subject Line Optimization",
		Impact:     "+15% open rate potential",
		Confidence: 0.89,
		Preview:    "Consider adding urgency or personalization to your subject line",
		ActionableSteps: []string{
			"Add recipient's first name for personalization",
			"Include time-sensitive words like 'limited' or 'expires'",
			"Test A/B variations with different emotional triggers",
		},
	},
	{
		Type:       "Send Time Optimization",
		Impact:     "+8% engagement boost",
		Confidence: 0.76,
		Preview:    "Your audience is most active on Tuesday mornings",
		ActionableSteps: []string{
			"Schedule for Tuesday 10:00 AM",
			"Avoid Monday mornings and Friday afternoons",
			"Consider timezone differences for global audience",
		},
	},
	{
		Type:       "Content Enhancement",
		Impact:     "+12% click-through rate",
		Confidence: 0.82,
		Preview:    "Add more visual elements and clear CTAs",
		ActionableSteps: []string{
			"Include relevant images or GIFs",
			"Make your call-to-action button more prominent",
			"Break up text with bullet points or numbered lists",
		},
	},
}

func (s *Server) handleMetricsOverview(w http.ResponseWriter, r *http.Request) {
	campaigns := s.store.List()

	var overview OverviewResponse
	overview.TotalCampaigns = len(campaigns)
	var clicked int
	for _, c := range campaigns {
		if c.Status == campaign.StatusActive {
			overview.ActiveCampaigns++
		}
		overview.TotalSent += c.Metrics.Sent
		overview.TotalOpened += c.Metrics.Opened
		clicked += c.Metrics.Clicked
	}
	if overview.TotalSent > 0 {
		overview.OpenRate = round1(float64(overview.TotalOpened) / float64(overview.TotalSent) * 100)
		overview.ClickRate = round1(float64(clicked) / float64(overview.TotalSent) * 100)
	}

	s.sendJSON(w, http.StatusOK, overview)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	campaigns := s.store.List()

	resp := AnalyticsResponse{
		TotalCampaigns: len(campaigns),
		StatusCounts:   map[campaign.Status]int{},
	}
	perAudience := map[campaign.Audience]int{}
	for _, c := range campaigns {
		resp.StatusCounts[c.Status]++
		if c.Status == campaign.StatusActive {
			resp.ActiveCampaigns++
		}
		resp.TotalBudget += c.Budget
		perAudience[c.Audience]++
	}

	for _, aud := range []campaign.Audience{
		campaign.AudienceAll, campaign.AudienceNew, campaign.AudienceActive,
		campaign.AudienceVIP, campaign.AudienceInactive,
	} {
		resp.Segments = append(resp.Segments, SegmentSummary{
			Audience:    aud,
			Subscribers: campaign.SegmentSizes[aud],
			Campaigns:   perAudience[aud],
		})
	}

	s.sendJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   "0.1.0",
		Uptime:    time.Since(s.startTime).String(),
		Campaigns: len(s.store.List()),
	})
}

// handleError maps domain errors onto HTTP statuses
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var verr *campaign.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.sendError(w, http.StatusNotFound, "Not found")
	case errors.As(err, &verr):
		s.sendError(w, http.StatusBadRequest, verr.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// sendJSON sends a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: message})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
