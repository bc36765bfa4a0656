package legal

import "context"

// PrecedentExplorer finds case law relevant to a query.
type PrecedentExplorer interface {
	FindCases(ctx context.Context, crimeCode, jurisdiction, additionalInfo string) (*PrecedentResult, error)
}

// StaticPrecedents returns a fixed set of cases, echoing the jurisdiction.
type StaticPrecedents struct{}

func (StaticPrecedents) FindCases(_ context.Context, _, jurisdiction, _ string) (*PrecedentResult, error) {
	return &PrecedentResult{
		TotalCasesFound: 23,
		Cases: []CaseSummary{
			{
				CaseName:       "People v. Martinez (2023)",
				Jurisdiction:   jurisdiction,
				RelevanceScore: 94.2,
				KeyIssue:       "Breathalyzer calibration errors",
				Outcome:        "Dismissed - evidence suppressed",
				Summary:        "Court found breathalyzer machine not properly calibrated, making BAC reading inadmissible.",
				LegalPrinciple: "Evidence obtained through faulty equipment violates due process",
				Citation:       "2023 Cal. App. 4th 156",
			},
			{
				CaseName:       "State v. Thompson (2022)",
				Jurisdiction:   jurisdiction,
				RelevanceScore: 87.6,
				KeyIssue:       "Illegal traffic stop",
				Outcome:        "Evidence suppressed",
				Summary:        "Officer lacked reasonable suspicion for initial traffic stop. All subsequent evidence excluded.",
				LegalPrinciple: "Fourth Amendment protections against unreasonable searches",
				Citation:       "2022 Cal. App. 3rd 289",
			},
			{
				CaseName:       "People v. Rodriguez (2023)",
				Jurisdiction:   jurisdiction,
				RelevanceScore: 82.1,
				KeyIssue:       "Field sobriety test reliability",
				Outcome:        "Conviction upheld",
				Summary:        "Court found field sobriety tests properly administered despite defendant medical condition claims.",
				LegalPrinciple: "FST reliability when properly conducted",
				Citation:       "2023 Cal. App. 2nd 445",
			},
		},
		SearchStrategy: SearchStrategy{
			KeywordsUsed:      []string{"DUI", jurisdiction, "breathalyzer", "traffic stop"},
			DatabasesSearched: []string{"Westlaw (mock)", "LexisNexis (mock)", "Google Scholar"},
			FiltersApplied: []string{
				"Jurisdiction: " + jurisdiction,
				"Date range: 2020-2024",
				"Case type: Criminal",
			},
		},
		RelatedStatutes: []Statute{
			{Code: "Vehicle Code § 23152(b)", Title: "Driving with 0.08% or higher BAC", Relevance: "Primary statute"},
			{Code: "Penal Code § 1538.5", Title: "Motion to suppress evidence", Relevance: "Common defense motion"},
		},
	}, nil
}
