// Package legal holds the crime classifier, the static knowledge providers and
// the orchestrator that combines them into an analysis.
package legal

// Query is the input to an analysis.
type Query struct {
	CrimeCode      string
	Jurisdiction   string
	AdditionalInfo string
}

// Penalty describes one penalty bracket. Keys vary by category
// (fines, jail_time, license_suspension, probation, ...).
type Penalty map[string]string

// LegalExplanation is the plain-language breakdown of a crime.
type LegalExplanation struct {
	CrimeName                string             `json:"crime_name"`
	SimpleExplanation        string             `json:"simple_explanation"`
	WhatProsecutionMustProve []string           `json:"what_prosecution_must_prove"`
	Penalties                map[string]Penalty `json:"penalties"`
	Severity                 string             `json:"severity"`
	LegalProcess             []string           `json:"legal_process"`
	Jurisdiction             string             `json:"jurisdiction"`
	Code                     string             `json:"code"`
}

type JurisdictionStats struct {
	TotalCasesLastYear  int     `json:"total_cases_last_year"`
	ConvictionRate      float64 `json:"conviction_rate"`
	AverageSentenceDays int     `json:"average_sentence_days"`
	AverageFine         int     `json:"average_fine"`
}

type DefenseStrategy struct {
	Strategy    string  `json:"strategy"`
	SuccessRate float64 `json:"success_rate"`
	Frequency   float64 `json:"frequency"`
}

// SuccessRates are outcome percentages that sum to 100.
type SuccessRates struct {
	Dismissal         float64 `json:"dismissal"`
	ReductionToLesser float64 `json:"reduction_to_lesser"`
	FullConviction    float64 `json:"full_conviction"`
}

type JudicialPatterns struct {
	AverageFineByJudge   map[string]int    `json:"average_fine_by_judge"`
	SentencingVariations map[string]string `json:"sentencing_variations"`
}

type TimingFactors struct {
	CaseDurationAverageDays int                `json:"case_duration_average_days"`
	BestPleaTiming          string             `json:"best_plea_timing"`
	TrialVsPleaRates        map[string]float64 `json:"trial_vs_plea_rates"`
}

// AnalyticsSnapshot is the statistical view of a jurisdiction.
type AnalyticsSnapshot struct {
	JurisdictionStats JurisdictionStats `json:"jurisdiction_stats"`
	CommonDefenses    []DefenseStrategy `json:"common_defenses"`
	SuccessRates      SuccessRates      `json:"success_rates"`
	JudicialPatterns  JudicialPatterns  `json:"judicial_patterns"`
	TimingFactors     TimingFactors     `json:"timing_factors"`
}

type CaseSummary struct {
	CaseName       string  `json:"case_name"`
	Jurisdiction   string  `json:"jurisdiction"`
	RelevanceScore float64 `json:"relevance_score"`
	KeyIssue       string  `json:"key_issue"`
	Outcome        string  `json:"outcome"`
	Summary        string  `json:"summary"`
	LegalPrinciple string  `json:"legal_principle"`
	Citation       string  `json:"citation"`
}

type SearchStrategy struct {
	KeywordsUsed      []string `json:"keywords_used"`
	DatabasesSearched []string `json:"databases_searched"`
	FiltersApplied    []string `json:"filters_applied"`
}

type Statute struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Relevance string `json:"relevance"`
}

// PrecedentResult is the outcome of a case-law search.
type PrecedentResult struct {
	TotalCasesFound int            `json:"total_cases_found"`
	Cases           []CaseSummary  `json:"cases"`
	SearchStrategy  SearchStrategy `json:"search_strategy"`
	RelatedStatutes []Statute      `json:"related_statutes"`
}

type Summary struct {
	KeyPoints          []string `json:"key_points"`
	RecommendedActions []string `json:"recommended_actions"`
}

// AnalysisResult is the combined output of the three providers. When
// processing fails only Error and Details are set.
type AnalysisResult struct {
	LegalExplanation *LegalExplanation  `json:"legal_explanation,omitempty"`
	Analytics        *AnalyticsSnapshot `json:"analytics,omitempty"`
	Precedents       *PrecedentResult   `json:"precedents,omitempty"`
	Summary          *Summary           `json:"summary,omitempty"`

	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Failed reports whether the result carries an error instead of an analysis.
func (r *AnalysisResult) Failed() bool {
	return r.Error != ""
}
