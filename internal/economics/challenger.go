package economics

import (
	"time"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
)

// Bank policy constraints checked against every proposal.
type policyConstraints struct {
	minROE               float64 // ROE floor
	maxLossRate          float64 // loss rate ceiling
	maxPerkBudgetMonthly float64 // per-user monthly perk budget
	minAPR               float64
	maxAPR               float64
	cofBase              float64 // annual cost of funds
	opsCost              float64 // monthly operational cost per account
}

// Economic parameters for unit-economics math.
type economicParams struct {
	interchangeRate    float64 // fee on monthly spend
	perkCostMultiplier float64 // cost on perk-eligible spend
	lgd                float64 // loss given default
	capitalRatio       float64 // regulatory capital requirement
}

// Missing proposal fields take the demo defaults the upstream agents assume.
const (
	defaultCreditLimit   = 15000.0
	defaultAPR           = 18.99
	defaultTotalSpending = 5000.0
	defaultRiskScore     = 50
)

// Challenger stress-tests terms proposals against bank unit economics. It is
// a pure evaluator: AnalyzeProposal depends only on its arguments and the
// fixed policy tables, so a single Challenger is safe for concurrent use.
type Challenger struct {
	log         *logrus.Logger
	constraints policyConstraints
	params      economicParams
}

// NewChallenger initializes a challenger with the standard policy tables.
func NewChallenger(log *logrus.Logger) *Challenger {
	return &Challenger{
		log: log,
		constraints: policyConstraints{
			minROE:               0.15,
			maxLossRate:          0.08,
			maxPerkBudgetMonthly: 50,
			minAPR:               12.99,
			maxAPR:               29.99,
			cofBase:              0.04,
			opsCost:              15,
		},
		params: economicParams{
			interchangeRate:    0.018,
			perkCostMultiplier: 0.035,
			lgd:                0.45,
			capitalRatio:       0.08,
		},
	}
}

// WithCostOfFunds returns a copy of the challenger using the given annual
// cost-of-funds rate instead of the 4% policy base. Rates outside (0, 0.25)
// are ignored.
func (c *Challenger) WithCostOfFunds(annualRate float64) *Challenger {
	if annualRate <= 0 || annualRate >= 0.25 {
		return c
	}
	clone := *c
	clone.constraints.cofBase = annualRate
	return &clone
}

// AnalyzeProposal stress-tests a terms proposal and returns the base
// economics, stress scenarios, constraint violations, and a three-way
// decision. It never panics outward: internal failures degrade to a reject
// decision with a generic reason.
func (c *Challenger) AnalyzeProposal(proposal models.TermsProposal, risk models.RiskSummary, spending models.SpendingSummary) (result models.ChallengeResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Challenger analysis failed: %v", r)
			result = models.ChallengeResult{
				Agent:             "challenger-agent",
				AnalysisTimestamp: time.Now().Format(time.RFC3339),
				OriginalProposal:  proposal,
				Decision: models.Decision{
					Action: models.ActionReject,
					Reason: "Analysis failed",
				},
			}
		}
	}()

	c.log.Infof("Challenger analyzing proposal: APR=%.2f%%, Limit=$%.0f", proposal.APRRate, proposal.CreditLimit)

	base := c.buildBaseScenario(proposal, risk, spending)
	stress := c.runStressTests(base)
	violations := c.checkConstraints(base, stress)
	decision := c.makeDecision(base, violations, proposal)

	return models.ChallengeResult{
		Agent:                "challenger-agent",
		AnalysisTimestamp:    time.Now().Format(time.RFC3339),
		OriginalProposal:     proposal,
		BaseEconomics:        base,
		StressTestResults:    stress,
		ConstraintViolations: violations,
		Decision:             decision,
		Confidence:           95,
	}
}

// extractPD maps the 0-100 risk score (higher = riskier) onto an annual
// probability of default via a step function. A missing score takes the
// demo default.
func (c *Challenger) extractPD(risk models.RiskSummary) float64 {
	score := defaultRiskScore
	if risk.RiskScore != nil {
		score = *risk.RiskScore
	}
	switch {
	case score <= 20:
		return 0.02
	case score <= 40:
		return 0.04
	case score <= 60:
		return 0.07
	case score <= 80:
		return 0.12
	default:
		return 0.20
	}
}
