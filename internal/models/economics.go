package models

// Revenues breaks down monthly revenue for one economics scenario.
type Revenues struct {
	Interchange float64 `json:"interchange"`
	Interest    float64 `json:"interest"`
	Total       float64 `json:"total"`
}

// Costs breaks down monthly cost for one economics scenario.
type Costs struct {
	Perks        float64 `json:"perks"`
	ExpectedLoss float64 `json:"expected_loss"`
	Funding      float64 `json:"funding"`
	Operations   float64 `json:"operations"`
	Total        float64 `json:"total"`
}

// EconomicsScenario is one fully-computed unit-economics case: either the
// base case or a stress variant derived from it. Scenarios are plain values;
// stress transforms build new ones rather than mutating the base.
type EconomicsScenario struct {
	MonthlySpend       float64  `json:"monthly_spend"`
	AvgBalance         float64  `json:"avg_balance"`
	RevolvingBalance   float64  `json:"revolving_balance"`
	PD                 float64  `json:"pd"`
	Revenues           Revenues `json:"revenues"`
	Costs              Costs    `json:"costs"`
	ProfitMonthly      float64  `json:"profit_monthly"`
	ProfitAnnual       float64  `json:"profit_annual"`
	ROE                float64  `json:"roe"`
	LossRate           float64  `json:"loss_rate"`
	CapitalRequirement float64  `json:"capital_requirement"`
}

// Violation severities.
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ConstraintViolation records a policy constraint breach.
type ConstraintViolation struct {
	Constraint string  `json:"constraint"`
	Required   float64 `json:"required"`
	Actual     float64 `json:"actual"`
	Severity   string  `json:"severity"`
}

// Decision actions.
const (
	ActionApproveAsIs  = "approve_as_is"
	ActionCounterOffer = "counter_offer"
	ActionReject       = "reject"
)

// Improvement is a rough linear estimate of what a counter-offer buys back.
type Improvement struct {
	APRIncreaseBps               float64 `json:"apr_increase_bps"`
	CreditLimitChange            float64 `json:"credit_limit_change"`
	EstimatedROEImprovement      float64 `json:"estimated_roe_improvement"`
	EstimatedProfitImprovementMo float64 `json:"estimated_profit_improvement_monthly"`
}

// Decision is the challenger's verdict on a proposal. Action is always one
// of approve_as_is, counter_offer, or reject; the optional fields are
// populated per action.
type Decision struct {
	Action              string                `json:"action"`
	Reason              string                `json:"reason"`
	ProfitMargin        float64               `json:"profit_margin,omitempty"`
	ROE                 float64               `json:"roe,omitempty"`
	Violations          []ConstraintViolation `json:"violations,omitempty"`
	CounterProposal     *TermsProposal        `json:"counter_proposal,omitempty"`
	ExpectedImprovement *Improvement          `json:"expected_improvement,omitempty"`
}

// ChallengeResult is the full output of one proposal stress-test.
type ChallengeResult struct {
	Agent                string                       `json:"agent"`
	AnalysisTimestamp    string                       `json:"analysis_timestamp"`
	OriginalProposal     TermsProposal                `json:"original_proposal"`
	BaseEconomics        EconomicsScenario            `json:"base_economics"`
	StressTestResults    map[string]EconomicsScenario `json:"stress_test_results"`
	ConstraintViolations []ConstraintViolation        `json:"constraint_violations"`
	Decision             Decision                     `json:"decision"`
	Confidence           int                          `json:"confidence"`
	Error                string                       `json:"error,omitempty"`
}
