package legal

import (
	"context"
	"fmt"

	"github.com/JustJay7/precedent/pkg/logger"
)

const errProcessFailed = "Failed to process legal query"

var recommendedActions = []string{
	"Consult with a qualified attorney",
	"Review similar case outcomes in your jurisdiction",
	"Consider common defense strategies",
	"Gather evidence to support your case",
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithDecompiler(d Decompiler) Option {
	return func(o *Orchestrator) { o.decompiler = d }
}

func WithAnalytics(a AnalyticsEngine) Option {
	return func(o *Orchestrator) { o.analytics = a }
}

func WithPrecedents(p PrecedentExplorer) Option {
	return func(o *Orchestrator) { o.precedents = p }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// Orchestrator runs the decompiler, analytics engine and precedent explorer
// in that order and condenses their output into a summary.
type Orchestrator struct {
	decompiler Decompiler
	analytics  AnalyticsEngine
	precedents PrecedentExplorer
	logger     *logger.Logger
}

// NewOrchestrator returns an orchestrator backed by the static providers
// unless overridden by opts.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		decompiler: StaticDecompiler{},
		analytics:  StaticAnalytics{},
		precedents: StaticPrecedents{},
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process never returns an error: provider failures and panics come back as
// a result with Error and Details set.
func (o *Orchestrator) Process(ctx context.Context, q Query) (result *AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = o.failure(q, fmt.Errorf("panic: %v", r))
		}
	}()

	explanation, err := o.decompiler.Explain(ctx, q.CrimeCode, q.Jurisdiction)
	if err != nil {
		return o.failure(q, fmt.Errorf("legal decompiler: %w", err))
	}

	analytics, err := o.analytics.Analyze(ctx, q.CrimeCode, q.Jurisdiction, q.AdditionalInfo)
	if err != nil {
		return o.failure(q, fmt.Errorf("analytics engine: %w", err))
	}

	precedents, err := o.precedents.FindCases(ctx, q.CrimeCode, q.Jurisdiction, q.AdditionalInfo)
	if err != nil {
		return o.failure(q, fmt.Errorf("precedent explorer: %w", err))
	}

	return &AnalysisResult{
		LegalExplanation: explanation,
		Analytics:        analytics,
		Precedents:       precedents,
		Summary:          BuildSummary(explanation, analytics, precedents),
	}
}

func (o *Orchestrator) failure(q Query, err error) *AnalysisResult {
	o.logger.Error("Orchestrator error",
		"crime_code", q.CrimeCode,
		"jurisdiction", q.Jurisdiction,
		"error", err,
	)
	return &AnalysisResult{
		Error:   errProcessFailed,
		Details: err.Error(),
	}
}

// BuildSummary derives the key points shown at the top of an analysis.
func BuildSummary(explanation *LegalExplanation, analytics *AnalyticsSnapshot, precedents *PrecedentResult) *Summary {
	defense := "None identified"
	if len(analytics.CommonDefenses) > 0 {
		defense = analytics.CommonDefenses[0].Strategy
	}

	actions := make([]string, len(recommendedActions))
	copy(actions, recommendedActions)

	return &Summary{
		KeyPoints: []string{
			"Crime: " + explanation.CrimeName,
			"Severity: " + explanation.Severity,
			"Most common defense: " + defense,
			"Success rate: " + FormatPercent(analytics.SuccessRates.Dismissal),
			fmt.Sprintf("Relevant cases found: %d", len(precedents.Cases)),
		},
		RecommendedActions: actions,
	}
}

// FormatPercent renders a percentage with one decimal, e.g. "24.3%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
