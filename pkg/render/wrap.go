package render

import "strings"

// Wrap splits text into lines that fit within maxWidth, measured by the
// given function. Words are accumulated greedily: a new line starts at the
// first word that would push the candidate line past the budget. A single
// word wider than the budget is emitted on its own line unsplit.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""

	for _, word := range words {
		candidate := current
		if candidate != "" {
			candidate += " "
		}
		candidate += word

		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
