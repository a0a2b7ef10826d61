package economics

import (
	"testing"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChallenger() *Challenger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewChallenger(log)
}

// The canonical worked example: $15k limit at 18.99% APR, moderate risk,
// $60k annual spend.
func moderateInputs() (models.TermsProposal, models.RiskSummary, models.SpendingSummary) {
	return models.TermsProposal{APRRate: 18.99, CreditLimit: 15000},
		models.NewRiskSummary(50),
		models.NewSpendingSummary(60000)
}

func TestBuildBaseScenario_ModerateExample(t *testing.T) {
	c := testChallenger()
	proposal, riskSummary, spending := moderateInputs()

	base := c.buildBaseScenario(proposal, riskSummary, spending)

	assert.InDelta(t, 5000, base.MonthlySpend, 1e-9)
	assert.InDelta(t, 0.07, base.PD, 1e-9)
	assert.InDelta(t, 4500, base.AvgBalance, 1e-9)
	assert.InDelta(t, 2250, base.RevolvingBalance, 1e-9)

	assert.InDelta(t, 90.0, base.Revenues.Interchange, 1e-9)
	assert.InDelta(t, 35.60625, base.Revenues.Interest, 1e-6)
	assert.InDelta(t, base.Revenues.Interchange+base.Revenues.Interest, base.Revenues.Total, 1e-9)

	assert.InDelta(t, 105, base.Costs.Perks, 1e-9)
	assert.InDelta(t, 11.8125, base.Costs.ExpectedLoss, 1e-9)
	assert.InDelta(t, 15, base.Costs.Funding, 1e-9)
	assert.InDelta(t, 15, base.Costs.Operations, 1e-9)

	assert.InDelta(t, 1200, base.CapitalRequirement, 1e-9)
	assert.InDelta(t, base.ProfitAnnual/base.CapitalRequirement, base.ROE, 1e-9)
	assert.InDelta(t, 0.0315, base.LossRate, 1e-9)
}

func TestBuildBaseScenario_ZeroSpendingVsAbsent(t *testing.T) {
	c := testChallenger()
	proposal := models.TermsProposal{APRRate: 18.99, CreditLimit: 15000}

	// Explicit zero spending means no interchange and no perk costs.
	zero := c.buildBaseScenario(proposal, models.NewRiskSummary(50), models.NewSpendingSummary(0))
	assert.InDelta(t, 0, zero.MonthlySpend, 1e-9)
	assert.InDelta(t, 0, zero.Revenues.Interchange, 1e-9)
	assert.InDelta(t, 0, zero.Costs.Perks, 1e-9)

	// An absent total falls back to the demo default of $5000/yr.
	absent := c.buildBaseScenario(proposal, models.NewRiskSummary(50), models.SpendingSummary{})
	assert.InDelta(t, 5000.0/12, absent.MonthlySpend, 1e-9)
}

func TestExtractPD_StepFunction(t *testing.T) {
	c := testChallenger()
	cases := []struct {
		score int
		want  float64
	}{
		// An explicit zero is the lowest-risk score, not an absent field.
		{0, 0.02},
		{10, 0.02}, {20, 0.02},
		{21, 0.04}, {40, 0.04},
		{41, 0.07}, {60, 0.07},
		{61, 0.12}, {80, 0.12},
		{81, 0.20}, {100, 0.20},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, c.extractPD(models.NewRiskSummary(tc.score)), 1e-9, "score %d", tc.score)
	}

	// A missing score takes the demo default of 50.
	assert.InDelta(t, 0.07, c.extractPD(models.RiskSummary{}), 1e-9)
}

func TestRunStressTests_PureAndIdempotent(t *testing.T) {
	c := testChallenger()
	proposal, riskSummary, spending := moderateInputs()
	base := c.buildBaseScenario(proposal, riskSummary, spending)
	snapshot := base

	first := c.runStressTests(base)
	second := c.runStressTests(base)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, base, "base scenario must not be mutated")

	for _, name := range stressOrder {
		require.Contains(t, first, name)
	}
}

func TestStressTransforms_RecomputeTotals(t *testing.T) {
	c := testChallenger()
	proposal, riskSummary, spending := moderateInputs()
	base := c.buildBaseScenario(proposal, riskSummary, spending)
	stress := c.runStressTests(base)

	spendDown := stress[scenarioSpendDown]
	assert.InDelta(t, base.MonthlySpend*0.8, spendDown.MonthlySpend, 1e-9)
	assert.InDelta(t, base.Revenues.Interchange*0.8, spendDown.Revenues.Interchange, 1e-9)
	assert.InDelta(t, base.Costs.Perks*0.8, spendDown.Costs.Perks, 1e-9)
	assert.InDelta(t, base.Revenues.Interest, spendDown.Revenues.Interest, 1e-9)
	assert.InDelta(t,
		spendDown.Costs.Perks+spendDown.Costs.ExpectedLoss+spendDown.Costs.Funding+spendDown.Costs.Operations,
		spendDown.Costs.Total, 1e-9)
	assert.InDelta(t, spendDown.Revenues.Total-spendDown.Costs.Total, spendDown.ProfitMonthly, 1e-9)

	defaultUp := stress[scenarioDefaultUp]
	assert.InDelta(t, base.PD*1.5, defaultUp.PD, 1e-9)
	assert.InDelta(t, base.Costs.ExpectedLoss*1.5, defaultUp.Costs.ExpectedLoss, 1e-9)
	assert.InDelta(t, base.LossRate*1.5, defaultUp.LossRate, 1e-9)

	cofUp := stress[scenarioCofUp]
	assert.InDelta(t, base.AvgBalance*0.05/12, cofUp.Costs.Funding, 1e-9)

	perkMaxed := stress[scenarioPerkMaxed]
	assert.InDelta(t, base.MonthlySpend*0.9*0.035, perkMaxed.Costs.Perks, 1e-9)
}

func TestAnalyzeProposal_ModerateExampleCounterOffer(t *testing.T) {
	c := testChallenger()
	proposal, riskSummary, spending := moderateInputs()

	result := c.AnalyzeProposal(proposal, riskSummary, spending)

	// Negative ROE plus the $105 perk bill plus all four stress scenarios
	// failing: one high violation, five medium.
	require.Len(t, result.ConstraintViolations, 6)
	assert.Equal(t, "min_roe", result.ConstraintViolations[0].Constraint)
	assert.Equal(t, models.SeverityHigh, result.ConstraintViolations[0].Severity)

	highCount := 0
	for _, v := range result.ConstraintViolations {
		if v.Severity == models.SeverityHigh {
			highCount++
		}
	}
	assert.Equal(t, 1, highCount)

	require.Equal(t, models.ActionCounterOffer, result.Decision.Action)
	counter := result.Decision.CounterProposal
	require.NotNil(t, counter)

	// Five ROE-tagged violations cap the APR bump at 200bps; no loss-rate
	// violation, so the limit stands.
	assert.InDelta(t, 20.99, counter.APRRate, 1e-9)
	assert.InDelta(t, 15000, counter.CreditLimit, 1e-9)

	improvement := result.Decision.ExpectedImprovement
	require.NotNil(t, improvement)
	assert.InDelta(t, 200, improvement.APRIncreaseBps, 1e-9)
	assert.InDelta(t, 0.4, improvement.EstimatedROEImprovement, 1e-9)
}

func TestAnalyzeProposal_ApprovesHealthyProposal(t *testing.T) {
	c := testChallenger()

	// $20k limit at 29% with modest spend: positive ROE, clean loss rate,
	// perks under budget; only the perk-maxed stress scenario trips.
	result := c.AnalyzeProposal(
		models.TermsProposal{APRRate: 29, CreditLimit: 20000},
		models.NewRiskSummary(10),
		models.NewSpendingSummary(24000),
	)

	require.Equal(t, models.ActionApproveAsIs, result.Decision.Action)
	assert.InDelta(t, 0.2025, result.Decision.ROE, 1e-6)
	assert.LessOrEqual(t, len(result.ConstraintViolations), 1)
	for _, v := range result.ConstraintViolations {
		assert.NotEqual(t, models.SeverityHigh, v.Severity)
	}
}

func TestAnalyzeProposal_AlwaysThreeWay(t *testing.T) {
	c := testChallenger()
	validActions := []string{models.ActionApproveAsIs, models.ActionCounterOffer, models.ActionReject}

	for _, proposal := range []models.TermsProposal{
		{},
		{APRRate: 12.99, CreditLimit: 500},
		{APRRate: 29.99, CreditLimit: 50000},
	} {
		for _, score := range []int{0, 30, 60, 100} {
			for _, spend := range []float64{0, 12000, 200000} {
				result := c.AnalyzeProposal(proposal, models.NewRiskSummary(score), models.NewSpendingSummary(spend))
				assert.Contains(t, validActions, result.Decision.Action)
			}
		}
	}
}

func TestMakeDecision_RejectsOnManyHighViolations(t *testing.T) {
	c := testChallenger()
	violations := []models.ConstraintViolation{
		{Constraint: "min_roe", Severity: models.SeverityHigh},
		{Constraint: "max_loss_rate", Severity: models.SeverityHigh},
		{Constraint: "min_roe_stressed", Severity: models.SeverityHigh},
	}

	decision := c.makeDecision(models.EconomicsScenario{}, violations, models.TermsProposal{})

	assert.Equal(t, models.ActionReject, decision.Action)
	assert.Contains(t, decision.Reason, "3 high severity")
	assert.Equal(t, violations, decision.Violations)
}

func TestGenerateCounterOffer_Bounds(t *testing.T) {
	c := testChallenger()
	violations := []models.ConstraintViolation{
		{Constraint: "min_roe", Severity: models.SeverityHigh},
		{Constraint: "max_loss_rate", Severity: models.SeverityHigh},
		{Constraint: "max_perk_budget", Severity: models.SeverityMedium},
	}
	original := models.TermsProposal{
		APRRate:           29.50,
		CreditLimit:       6000,
		PromotionalOffers: []string{"5% dining", "2x travel", "0% intro APR"},
	}

	counter := c.generateCounterOffer(original, violations)

	// APR never above policy max, limit never below $5000.
	assert.LessOrEqual(t, counter.APRRate, 29.99)
	assert.InDelta(t, 5000, counter.CreditLimit, 1e-9)
	assert.Len(t, counter.PromotionalOffers, 1)
	assert.Len(t, counter.Adjustments, 3)

	// The original proposal is untouched.
	assert.InDelta(t, 29.50, original.APRRate, 1e-9)
	assert.Len(t, original.PromotionalOffers, 3)
}

func TestGenerateCounterOffer_APRIncreaseScalesWithROEViolations(t *testing.T) {
	c := testChallenger()
	original := models.TermsProposal{APRRate: 18.99, CreditLimit: 15000}

	oneROE := c.generateCounterOffer(original, []models.ConstraintViolation{
		{Constraint: "min_roe", Severity: models.SeverityHigh},
	})
	assert.InDelta(t, 19.99, oneROE.APRRate, 1e-9) // floor of 100bps for one violation

	threeROE := c.generateCounterOffer(original, []models.ConstraintViolation{
		{Constraint: "min_roe", Severity: models.SeverityHigh},
		{Constraint: "stress_roe_spend_down_20pct", Severity: models.SeverityMedium},
		{Constraint: "stress_roe_cof_up_100bps", Severity: models.SeverityMedium},
	})
	assert.InDelta(t, 20.99, threeROE.APRRate, 1e-9) // capped at 200bps
}
