package content

import "github.com/galactis/web/internal/domain/model"

var fallbackPosts = []model.BlogPost{
	{
		Title:         "The Five Essential Pillars of Technology Value Optimization",
		PublishedDate: "October 2025",
		Excerpt:       "How CIOs align IT spend with business outcomes using continuous benchmarking and AI-driven insights.",
	},
	{
		Title:         "Architecting Agentic Workflows for High-Regulation Sectors",
		PublishedDate: "September 2025",
		Excerpt:       "Design patterns for orchestrating AI agents with human approvals, compliance guardrails, and audit trails.",
	},
	{
		Title:         "Closing the Loop on Network Automation",
		PublishedDate: "August 2025",
		Excerpt:       "Implementing observability-driven runbooks that repair incidents autonomously and capture learning back into the platform.",
	},
}

// Fallback returns the built-in posts shown when the CMS has none.
func Fallback() []model.BlogPost {
	posts := make([]model.BlogPost, len(fallbackPosts))
	for i, p := range fallbackPosts {
		p.Slug = GenerateSlug(p.Title)
		p.ID = "fallback-" + p.Slug
		posts[i] = p
	}
	return posts
}

// OrFallback returns posts, or the fallback set when posts is empty.
func OrFallback(posts []model.BlogPost) []model.BlogPost {
	if len(posts) == 0 {
		return Fallback()
	}
	return posts
}

// FallbackBySlug finds a built-in post by slug.
func FallbackBySlug(slug string) (model.BlogPost, bool) {
	for _, p := range Fallback() {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.BlogPost{}, false
}
