// Package genai implements the deterministic content engines behind the
// studio's "AI" features: prompt-driven content generation and field-level
// copy suggestions. Both are pure rule tables; no model inference happens.
package genai

import (
	"fmt"
	"strings"

	"github.com/smartjourney/studio/internal/campaign"
	"github.com/smartjourney/studio/internal/metrics"
)

// rule maps prompt keywords to a complete content block. Rules are checked in
// order; the first keyword hit wins.
type rule struct {
	Intent   string
	Keywords []string
	Subject  string
	Body     string
}

var rules = []rule{
	{
		Intent:   "welcome",
		Keywords: []string{"welcome", "onboard"},
		Subject:  "Welcome to SmartJourney! Let's get you started 🚀",
		Body:     "Hi [First Name],\n\nWelcome to SmartJourney! We're thrilled to have you join thousands of marketers who are already seeing amazing results.\n\nHere's what you can do right now:\n• Create your first AI-powered campaign\n• Explore our template library\n• Set up audience segments\n\nReady to transform your email marketing?\n\n[Get Started Button]\n\nNeed help? Our support team is here 24/7.\n\nBest regards,\nThe SmartJourney Team",
	},
	{
		Intent:   "product",
		Keywords: []string{"product", "launch"},
		Subject:  "🚀 Introducing Our Game-Changing New Feature!",
		Body:     "Hi [First Name],\n\nAfter months of development, we're excited to announce our latest breakthrough!\n\nIntroducing: AI-Powered Campaign Optimization\n\n✨ What's new:\n• Real-time performance predictions\n• Automatic A/B testing\n• Smart send-time optimization\n• Personalized content suggestions\n\nEarly access starts today for our valued customers like you.\n\n[Try It Now Button]\n\nQuestions? Hit reply - we'd love to hear from you!\n\nCheers,\nThe Product Team",
	},
	{
		Intent:   "sale",
		Keywords: []string{"sale", "discount", "offer"},
		Subject:  "🎉 Exclusive 48-Hour Flash Sale - Up to 50% Off!",
		Body:     "Hi [First Name],\n\nWe're celebrating and you're invited to the party!\n\n🎊 FLASH SALE ALERT 🎊\nUp to 50% off all premium plans\n\n⏰ This exclusive offer expires in 48 hours!\n\nWhat you get:\n• All premium features unlocked\n• Priority customer support\n• Advanced analytics dashboard\n• Unlimited campaigns\n\nUse code: FLASH50\n\n[Claim Your Discount Button]\n\nDon't wait - this deal won't last long!\n\nHappy saving,\nThe SmartJourney Team",
	},
	{
		Intent:   "newsletter",
		Keywords: []string{"newsletter", "update"},
		Subject:  "📊 Your Monthly Success Report + What's Coming Next",
		Body:     "Hi [First Name],\n\nHere's your monthly roundup of wins and what's on the horizon!\n\n📈 This Month's Highlights:\n• 25% increase in average open rates\n• New AI features launched\n• 500+ new templates added\n• Customer success stories\n\n🔮 Coming Next Month:\n• Advanced segmentation tools\n• Integration with popular CRMs\n• Mobile app improvements\n\n💡 Pro Tip: Try our new subject line optimizer - it's boosting open rates by 30%!\n\n[Explore New Features Button]\n\nAs always, we're here if you need anything.\n\nBest,\nThe SmartJourney Team",
	},
}

// Generator turns free-text prompts into campaign content
type Generator struct {
	metrics *metrics.Metrics // optional
}

// NewGenerator creates a Generator
func NewGenerator(m *metrics.Metrics) *Generator {
	return &Generator{metrics: m}
}

// Generate produces content for a prompt. Matching is case-insensitive and
// checks rules in declaration order; a prompt matching none of them falls back
// to a generic announcement that embeds the prompt verbatim.
func (g *Generator) Generate(prompt string) (campaign.Content, error) {
	if strings.TrimSpace(prompt) == "" {
		return campaign.Content{}, &campaign.ValidationError{Field: "prompt", Reason: "prompt must not be empty"}
	}

	lower := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				g.count(r.Intent)
				return campaign.Content{Subject: r.Subject, Body: r.Body}, nil
			}
		}
	}

	g.count("generic")
	return campaign.Content{
		Subject: "Important Update from SmartJourney",
		Body: fmt.Sprintf("Hi [First Name],\n\n%s\n\nWe hope this message finds you well and that you're seeing great results with your campaigns.\n\n"+
			"If you have any questions or need assistance, don't hesitate to reach out to our support team.\n\n[Contact Support Button]\n\nBest regards,\nThe SmartJourney Team", prompt),
	}, nil
}

func (g *Generator) count(intent string) {
	if g.metrics != nil {
		g.metrics.GenerationsTotal.WithLabelValues(intent).Inc()
	}
}
