package legal

import (
	"context"
	"fmt"
)

// Decompiler explains a crime code in plain language.
type Decompiler interface {
	Explain(ctx context.Context, crimeCode, jurisdiction string) (*LegalExplanation, error)
}

// StaticDecompiler answers from a fixed table keyed by Category.
type StaticDecompiler struct{}

func (StaticDecompiler) Explain(_ context.Context, crimeCode, jurisdiction string) (*LegalExplanation, error) {
	var exp *LegalExplanation
	switch Classify(crimeCode) {
	case CategoryDUI:
		exp = duiExplanation()
	case CategoryAssault:
		exp = assaultExplanation()
	default:
		exp = unknownExplanation(crimeCode)
	}

	exp.Jurisdiction = jurisdiction
	exp.Code = crimeCode
	return exp, nil
}

func duiExplanation() *LegalExplanation {
	return &LegalExplanation{
		CrimeName:         "Driving Under the Influence (DUI)",
		SimpleExplanation: "This means driving a car when you've had too much alcohol or drugs. It's like trying to ride a bike when you're dizzy - it's dangerous and not allowed.",
		WhatProsecutionMustProve: []string{
			"You were driving or in control of a vehicle",
			"You had alcohol or drugs in your system above the legal limit",
			"Your ability to drive safely was impaired",
		},
		Penalties: map[string]Penalty{
			"first_offense": {
				"fines":              "$390 - $2000+ (with fees)",
				"jail_time":          "Up to 6 months",
				"license_suspension": "4 months to 1 year",
				"programs":           "DUI education program (3-9 months)",
			},
		},
		Severity: "Misdemeanor (first offense)",
		LegalProcess: []string{
			"Arrest and booking",
			"DMV hearing (within 10 days to challenge license suspension)",
			"Arraignment (first court appearance)",
			"Pre-trial conference",
			"Trial or plea agreement",
		},
	}
}

func assaultExplanation() *LegalExplanation {
	return &LegalExplanation{
		CrimeName:         "Assault",
		SimpleExplanation: "This means threatening to hurt someone or actually touching them in a way they don't want. It's like when someone raises their hand to hit you, even if they don't actually do it.",
		WhatProsecutionMustProve: []string{
			"You intended to cause harmful or offensive contact",
			"You had the ability to carry out the threat",
			"The victim reasonably feared immediate harm",
		},
		Penalties: map[string]Penalty{
			"misdemeanor": {
				"fines":     "Up to $1000",
				"jail_time": "Up to 6 months",
				"probation": "Up to 3 years",
			},
		},
		Severity: "Misdemeanor or Felony (depending on circumstances)",
		LegalProcess: []string{
			"Arrest and booking",
			"Arraignment",
			"Pre-trial conference",
			"Trial or plea agreement",
		},
	}
}

func unknownExplanation(crimeCode string) *LegalExplanation {
	return &LegalExplanation{
		CrimeName:         fmt.Sprintf("Criminal Code %s", crimeCode),
		SimpleExplanation: "This is a crime that breaks the law in your area. Like breaking a rule at school, but more serious because it affects other people's safety or rights.",
		WhatProsecutionMustProve: []string{
			"You committed the specific acts described in the law",
			"You did so intentionally or recklessly",
			"The acts meet all elements of the crime",
		},
		Penalties: map[string]Penalty{
			"general": {
				"fines":     "Varies by jurisdiction",
				"jail_time": "Varies by severity",
				"other":     "May include probation, community service, or other requirements",
			},
		},
		Severity: "To be determined based on specific code",
		LegalProcess: []string{
			"Investigation",
			"Arrest (if applicable)",
			"Court proceedings",
			"Resolution",
		},
	}
}
