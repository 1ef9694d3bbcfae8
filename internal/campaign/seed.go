package campaign

import "time"

// SeedCampaigns returns the starter campaign collection used when no local
// snapshot exists yet. Callers get fresh copies on every call.
func SeedCampaigns() []*Campaign {
	seeds := []*Campaign{
		{
			ID:   "c-welcome-series",
			Name: "Welcome Series - New Users",
			Content: Content{
				Subject: "Welcome to SmartJourney! 🚀",
				Body:    "Hi there! Welcome to SmartJourney AI Platform. We're excited to help you create amazing campaigns that convert! Our AI-powered tools will help you optimize every aspect of your email marketing.",
			},
			Status:    StatusActive,
			Audience:  AudienceNew,
			Metrics:   Metrics{Sent: 1250, Opened: 875, Clicked: 234, Converted: 45},
			CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:   "c-product-launch",
			Name: "Product Launch - AI Features",
			Content: Content{
				Subject: "🤖 New AI Features Are Here!",
				Body:    "Discover our latest AI-powered features that will revolutionize your campaign management experience. From smart subject line optimization to predictive analytics, we've got you covered.",
			},
			Status:    StatusSent,
			Audience:  AudienceActive,
			Metrics:   Metrics{Sent: 3200, Opened: 2240, Clicked: 672, Converted: 128},
			CreatedAt: time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:   "c-newsletter-jan",
			Name: "Monthly Newsletter - January",
			Content: Content{
				Subject: "Your January Success Report 📊",
				Body:    "Here's what happened in January and what's coming next month. Your campaigns performed exceptionally well with above-average engagement rates across all segments.",
			},
			Status:    StatusDraft,
			Audience:  AudienceAll,
			CreatedAt: time.Date(2024, 1, 20, 16, 45, 0, 0, time.UTC),
		},
		{
			ID:   "c-reengagement",
			Name: "Re-engagement Campaign",
			Content: Content{
				Subject: "We miss you! Come back for exclusive offers 💝",
				Body:    "It's been a while since we've heard from you. We have some exciting updates and exclusive offers just for you. Don't miss out on what's new!",
			},
			Status:        StatusScheduled,
			Audience:      AudienceInactive,
			ScheduledDate: "2024-02-01",
			ScheduledTime: "09:00",
			CreatedAt:     time.Date(2024, 1, 22, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:   "c-holiday-sale",
			Name: "Holiday Sale Announcement",
			Content: Content{
				Subject: "🎉 Holiday Sale: Up to 50% Off Everything!",
				Body:    "Our biggest sale of the year is here! Get up to 50% off on all premium features. Limited time offer - don't wait, upgrade today and save big!",
			},
			Status:    StatusSent,
			Audience:  AudienceAll,
			Metrics:   Metrics{Sent: 5200, Opened: 4160, Clicked: 1248, Converted: 312},
			CreatedAt: time.Date(2024, 1, 5, 11, 30, 0, 0, time.UTC),
		},
	}

	out := make([]*Campaign, len(seeds))
	for i, s := range seeds {
		out[i] = s.Clone()
	}
	return out
}

// SeedTemplates returns the built-in template library.
func SeedTemplates() []*Template {
	seeds := []*Template{
		{
			ID:       "t-welcome",
			Name:     "Welcome Email Template",
			Category: "Onboarding",
			Preview:  "A warm welcome email for new subscribers with clear next steps and value proposition.",
			Content: Content{
				Subject: "Welcome to [Company Name]! 🎉",
				Body:    "Hi [First Name],\n\nWelcome to [Company Name]! We're thrilled to have you join our community of successful marketers.\n\nHere's what you can expect:\n• Personalized campaign recommendations\n• AI-powered optimization tips\n• 24/7 customer support\n\nReady to get started? Click the button below to create your first campaign!\n\n[Get Started Button]\n\nBest regards,\nThe [Company Name] Team",
			},
			Tags:       []string{"welcome", "onboarding", "new-user"},
			UsageCount: 45,
		},
		{
			ID:       "t-product-launch",
			Name:     "Product Launch Template",
			Category: "Announcement",
			Preview:  "Professional product launch template with features, benefits, and clear call-to-action.",
			Content: Content{
				Subject: "🚀 Introducing [Product Name]",
				Body:    "We're excited to announce the launch of [Product Name]!\n\nAfter months of development and testing, we're proud to bring you a solution that will transform how you [solve problem].\n\nKey Features:\n• [Feature 1] - [Benefit]\n• [Feature 2] - [Benefit]\n• [Feature 3] - [Benefit]\n\nSpecial Launch Offer: Get 30% off for the first 100 customers!\n\n[Learn More Button] [Get Started Button]\n\nQuestions? Reply to this email - we'd love to hear from you!",
			},
			Tags:       []string{"launch", "product", "announcement"},
			UsageCount: 23,
		},
		{
			ID:       "t-newsletter",
			Name:     "Newsletter Template",
			Category: "Newsletter",
			Preview:  "Monthly newsletter template with sections for updates, tips, and community highlights.",
			Content: Content{
				Subject: "[Month] Newsletter - [Company Name]",
				Body:    "Hi [First Name],\n\nHere's what's new this month at [Company Name]!\n\n📈 Company Updates\n• [Update 1]\n• [Update 2]\n• [Update 3]\n\n💡 Tips & Tricks\n• [Tip 1]: [Description]\n• [Tip 2]: [Description]\n• [Tip 3]: [Description]\n\n🌟 Community Spotlight\nThis month we're featuring [Customer Name] who achieved [Achievement] using our platform!\n\n📅 Upcoming Events\n• [Event 1] - [Date]\n• [Event 2] - [Date]\n\nThat's all for now. See you next month!\n\nBest,\nThe [Company Name] Team",
			},
			Tags:       []string{"newsletter", "monthly", "updates"},
			UsageCount: 67,
		},
		{
			ID:       "t-reengagement",
			Name:     "Re-engagement Campaign",
			Category: "Retention",
			Preview:  "Win back inactive subscribers with special incentives and personalized content.",
			Content: Content{
				Subject: "We miss you! Come back for exclusive offers 💝",
				Body:    "Hi [First Name],\n\nWe noticed you haven't opened our emails lately. We miss you!\n\nAs a valued subscriber, we want to make sure you're getting the most out of [Company Name]. Here's what you might have missed:\n\n• New AI features that save 5+ hours per week\n• Advanced analytics dashboard\n• Priority customer support\n\nAs a welcome back gift, here's an exclusive 20% discount on any premium plan:\n\nUse code: COMEBACK20\n\n[Claim Discount Button]\n\nThis offer expires in 48 hours, so don't wait!\n\nWe'd love to have you back,\nThe [Company Name] Team\n\nP.S. If you no longer wish to receive emails, you can [unsubscribe here].",
			},
			Tags:       []string{"re-engagement", "discount", "retention"},
			UsageCount: 31,
		},
		{
			ID:       "t-event-invite",
			Name:     "Event Invitation",
			Category: "Events",
			Preview:  "Professional event invitation template with RSVP functionality and event details.",
			Content: Content{
				Subject: "🎉 You're Invited: [Event Name]",
				Body:    "Dear [First Name],\n\nYou're cordially invited to [Event Name]!\n\nJoin us for an exclusive event where we'll be sharing:\n• Latest industry insights\n• Networking opportunities\n• Live product demonstrations\n• Q&A with our expert team\n\n📅 Date: [Date]\n🕐 Time: [Time]\n📍 Location: [Location]\n🎟️ Admission: [Free/Paid]\n\nSpaces are limited, so please RSVP by [RSVP Date].\n\n[RSVP Yes Button] [RSVP No Button]\n\nCan't make it in person? We'll also be live streaming the event!\n\n[Join Live Stream Button]\n\nLooking forward to seeing you there!\n\nBest regards,\n[Your Name]\n[Company Name]",
			},
			Tags:       []string{"event", "invitation", "rsvp"},
			UsageCount: 18,
		},
		{
			ID:       "t-cart-recovery",
			Name:     "Abandoned Cart Recovery",
			Category: "E-commerce",
			Preview:  "Recover abandoned carts with personalized reminders and incentives.",
			Content: Content{
				Subject: "Don't forget your items! Complete your purchase 🛒",
				Body:    "Hi [First Name],\n\nYou left some great items in your cart! Don't let them get away.\n\nYour Cart:\n• [Product 1] - [Price]\n• [Product 2] - [Price]\n• [Product 3] - [Price]\n\nTotal: [Total Price]\n\nComplete your purchase now and get FREE shipping on orders over $50!\n\n[Complete Purchase Button]\n\nHurry! These items are popular and may sell out soon.\n\nNeed help? Reply to this email or call us at [Phone Number].\n\nHappy shopping!\nThe [Company Name] Team",
			},
			Tags:       []string{"ecommerce", "cart-recovery", "sales"},
			UsageCount: 89,
		},
	}

	out := make([]*Template, len(seeds))
	for i, s := range seeds {
		cp := *s
		cp.Tags = append([]string(nil), s.Tags...)
		out[i] = &cp
	}
	return out
}
