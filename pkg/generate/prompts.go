package generate

import (
	"fmt"

	"github.com/slidecast/slidecast/pkg/slides"
)

// hookPromptTemplate transforms an inspiration hook into a strategy-flavored,
// app-specific opening line. The word-count figures are guidance for the
// service, not enforced on the response.
const hookPromptTemplate = `Transform this hook inspiration: "%s"

For app: %s - %s
Strategy: %s
Target: %s

Create a viral short-form hook that:
1. Is 8-15 words maximum
2. Uses the %s strategy principles
3. Is specific to this app
4. Creates urgency/curiosity

Return only the hook text.`

// pagePrompt returns the per-index content prompt. Each page has its own
// role (opening line / main benefit / social proof / call-to-action) and
// word ceiling.
func pagePrompt(app slides.AppDetails, strategy string, index int) string {
	switch index {
	case 1:
		return fmt.Sprintf("Create engaging content for page 2 highlighting the main benefit of %s. Strategy: %s. Keep it under 15 words.", app.Name, strategy)
	case 2:
		return fmt.Sprintf("Create content for page 3 showing social proof or features of %s. Strategy: %s. Keep it under 15 words.", app.Name, strategy)
	case 3:
		return fmt.Sprintf("Create a strong call-to-action for the final page about %s. Strategy: %s. Keep it under 10 words.", app.Name, strategy)
	default:
		return fmt.Sprintf("Create a compelling opening line for page 1 of a short-form slide about %s. Strategy: %s. Keep it under 12 words.", app.Name, strategy)
	}
}

// hookFallback is the deterministic hook used when the text service fails,
// derived from the app name and strategy.
func hookFallback(app slides.AppDetails, strategy string) string {
	switch strategy {
	case "FOMO":
		return fmt.Sprintf("Don't miss out on %s!", app.Name)
	case "Hype":
		return fmt.Sprintf("Everyone's talking about %s", app.Name)
	case "Educational":
		return fmt.Sprintf("Learn how %s works", app.Name)
	case "Problem-Solution":
		return fmt.Sprintf("%s solves your biggest problem", app.Name)
	case "Comparison":
		return fmt.Sprintf("Why %s beats the competition", app.Name)
	default:
		return fmt.Sprintf("Download %s today!", app.Name)
	}
}

// pageFallback is the deterministic per-index text used when a page content
// call fails.
func pageFallback(app slides.AppDetails, index int) string {
	switch index {
	case 1:
		return "Transform your experience"
	case 2:
		return "Join thousands of users"
	case 3:
		return "Download now!"
	default:
		return fmt.Sprintf("Discover %s", app.Name)
	}
}
