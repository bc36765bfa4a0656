package legal

import (
	"fmt"
	"strings"
)

// Confirmation restates a query back to the user before it is analyzed.
type Confirmation struct {
	Summary    string   `json:"summary"`
	KeyDetails []string `json:"key_details"`
	Questions  []string `json:"questions"`
	NextSteps  string   `json:"next_steps"`
}

// BuildConfirmation never fails and does not consult any provider.
func BuildConfirmation(q Query) Confirmation {
	provided := "No"
	if q.AdditionalInfo != "" {
		provided = "Yes"
	}

	return Confirmation{
		Summary: fmt.Sprintf("I understand you're asking about %s in %s.", q.CrimeCode, q.Jurisdiction),
		KeyDetails: []string{
			"Crime/Penal Code: " + q.CrimeCode,
			"Jurisdiction: " + q.Jurisdiction,
			"Additional information provided: " + provided,
		},
		Questions: []string{
			"Is this the correct crime code you're asking about?",
			"Is this the right jurisdiction (city, county, or state)?",
			"Have you provided all relevant details about your situation?",
		},
		NextSteps: "If this information is correct, I'll analyze your case using our Legal Decompiler, Analytics Engine, and Precedent Explorer.",
	}
}

// CountWords returns the number of whitespace-delimited words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
