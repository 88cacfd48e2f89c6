package slides

import "github.com/slidecast/slidecast/pkg/errors"

// Strategy is one entry in the fixed messaging-strategy catalog.
// Strategies are immutable reference data, not user-created.
type Strategy struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// strategies is the fixed catalog. Order matters for display.
var strategies = []Strategy{
	{
		ID:          "FOMO",
		Name:        "FOMO Strategy",
		Description: "Limited time offers, urgency-based content",
		Examples: []string{
			"Only 24 hours left to download",
			"Last chance to get premium features",
			"Don't miss out on this exclusive app",
		},
	},
	{
		ID:          "Hype",
		Name:        "Hype Strategy",
		Description: "Viral trends, social proof, buzz creation",
		Examples: []string{
			"10M+ users can't be wrong",
			"The app everyone's talking about",
			"Going viral for all the right reasons",
		},
	},
	{
		ID:          "Educational",
		Name:        "Educational Strategy",
		Description: "How-to content, tutorials, tips",
		Examples: []string{
			"How to 10x your productivity",
			"The secret feature nobody knows",
			"Tutorial: Master this app in 5 minutes",
		},
	},
	{
		ID:          "Problem-Solution",
		Name:        "Problem-Solution",
		Description: "Pain points and solutions",
		Examples: []string{
			"Tired of apps that don't work?",
			"Finally, an app that gets it right",
			"The solution you've been waiting for",
		},
	},
	{
		ID:          "Comparison",
		Name:        "Comparison Strategy",
		Description: "Before/after, competitor comparison",
		Examples: []string{
			"Why we're better than the rest",
			"Before vs After using our app",
			"The difference is night and day",
		},
	},
}

// Strategies returns the full strategy catalog.
// The returned slice must not be modified.
func Strategies() []Strategy {
	return strategies
}

// StrategyByID looks up a strategy in the catalog.
func StrategyByID(id string) (Strategy, error) {
	for _, s := range strategies {
		if s.ID == id {
			return s, nil
		}
	}
	return Strategy{}, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy: %q", id)
}
