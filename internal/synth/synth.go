// Package synth fabricates the content a real conversational search product
// would fetch or generate: canned answers, citation lists, processing
// traces, and whole synthetic conversation records for the feed. Everything
// is template assembly over a clock and a rand source, both injectable so
// tests can run deterministic and instant.
package synth

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/threadscout/internal/conversation"
)

// Generator owns the randomness and clock used by every fabrication helper.
type Generator struct {
	now func() time.Time
	rng *rand.Rand
}

// NewGenerator wires a generator. A nil clock falls back to time.Now and a
// nil rng to a time-seeded source.
func NewGenerator(now func() time.Time, rng *rand.Rand) *Generator {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{now: now, rng: rng}
}

// Response fabricates one full response for a query: answer text, sources,
// processing trace, optional charts, and related questions. Pure template
// assembly; it never fails, unknown categories get the fallback template.
func (g *Generator) Response(query string, category conversation.Category) conversation.Response {
	return conversation.Response{
		ID:               uuid.NewString(),
		Query:            query,
		Timestamp:        g.now().UnixMilli(),
		Category:         category,
		Answer:           answerFor(query, category),
		Sources:          sourcesFor(query, category),
		Steps:            stepsFor(query),
		Charts:           chartsFor(query, category),
		RelatedQuestions: relatedQuestionsFor(category),
	}
}

func sourcesFor(query string, category conversation.Category) []conversation.Source {
	sources := []conversation.Source{
		{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("%s Documentation - %s", category, query),
			URL:         "https://documentation.example.com",
			Domain:      "documentation.example.com",
			Description: fmt.Sprintf("Comprehensive documentation and guidelines for %s.", query),
			Selected:    true,
			Reviewed:    true,
		},
		{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("%s Best Practices Guide", category),
			URL:         "https://bestpractices.example.com",
			Domain:      "bestpractices.example.com",
			Description: fmt.Sprintf("Industry best practices and recommended approaches for %s implementations.", category),
			Selected:    true,
		},
		{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("%s - Stack Overflow Discussion", query),
			URL:         "https://stackoverflow.com",
			Domain:      "stackoverflow.com",
			Description: fmt.Sprintf("Community discussions and solutions related to %s.", query),
			Reviewed:    true,
		},
	}
	if category == conversation.CategoryAnalysis {
		sources = append(sources,
			conversation.Source{
				ID:          uuid.NewString(),
				Title:       "Financial Data Analysis - Yahoo Finance",
				URL:         "https://finance.yahoo.com",
				Domain:      "finance.yahoo.com",
				Description: "Real-time financial data and historical market information.",
				Selected:    true,
				Reviewed:    true,
			},
			conversation.Source{
				ID:          uuid.NewString(),
				Title:       "Market Analysis - Bloomberg Terminal",
				URL:         "https://bloomberg.com",
				Domain:      "bloomberg.com",
				Description: "Professional financial analysis and market insights.",
				Selected:    true,
			},
		)
	}
	return sources
}

func stepsFor(query string) []conversation.ProcessingStep {
	return []conversation.ProcessingStep{
		{
			ID:     1,
			Title:  fmt.Sprintf("Analyzing %s to generate comprehensive insights", query),
			Status: "completed",
			Details: []string{
				"Searching for relevant information",
				"Processing source material",
				"Analyzing historical trends",
			},
		},
		{
			ID:     2,
			Title:  "Gathering information from authoritative sources",
			Status: "completed",
			Details: []string{
				"Accessing reference databases",
				"Retrieving historical data",
				"Validating data quality",
			},
		},
		{
			ID:     3,
			Title:  "Processing and analyzing collected data",
			Status: "completed",
			Details: []string{
				"Statistical analysis",
				"Trend identification",
				"Pattern recognition",
			},
		},
		{
			ID:     4,
			Title:  "Generating visualizations and insights",
			Status: "completed",
			Details: []string{
				"Creating charts and graphs",
				"Generating key insights",
				"Preparing recommendations",
			},
		},
	}
}

func chartsFor(query string, category conversation.Category) []conversation.Chart {
	lower := strings.ToLower(query)
	if category != conversation.CategoryAnalysis && !strings.Contains(lower, "chart") && !strings.Contains(lower, "plot") {
		return nil
	}
	return []conversation.Chart{
		{
			ID:          1,
			Kind:        "scatter",
			Title:       "Performance Scatter Plot",
			Description: "Scatter plot showing performance over time with trend analysis",
			Data:        "Interactive chart showing historical performance data",
		},
		{
			ID:          2,
			Kind:        "line",
			Title:       "Historical Trend Analysis",
			Description: "Line chart displaying long-term trends and patterns",
			Data:        "Time series data visualization",
		},
	}
}

func relatedQuestionsFor(category conversation.Category) []string {
	switch category {
	case conversation.CategoryAnalysis:
		return []string{
			"What are the key performance indicators for this analysis?",
			"How do these trends compare to industry benchmarks?",
			"What factors might influence future performance?",
			"Can you provide a deeper statistical analysis?",
		}
	case conversation.CategoryTechnical:
		return []string{
			"What are the scalability considerations for this implementation?",
			"How can we optimize performance further?",
			"What are the security implications?",
			"What monitoring and alerting should be implemented?",
		}
	case conversation.CategoryMarketData:
		return []string{
			"What are the current market conditions affecting this strategy?",
			"How can we optimize the trading algorithms?",
			"What risk management strategies should be implemented?",
			"Can you analyze the profitability metrics?",
		}
	default:
		return []string{
			"Can you provide more detailed information about this topic?",
			"What are the best practices for implementation?",
			"How does this compare to alternative approaches?",
			"What are the potential challenges and solutions?",
		}
	}
}
