package economics

import "github.com/boa-labs/preapproval/internal/models"

// Stress scenario names, in the order they are evaluated and reported.
const (
	scenarioSpendDown = "spend_down_20pct"
	scenarioDefaultUp = "default_up_1_5x"
	scenarioCofUp     = "cof_up_100bps"
	scenarioPerkMaxed = "perk_usage_maxed"
)

var stressOrder = []string{
	scenarioSpendDown,
	scenarioDefaultUp,
	scenarioCofUp,
	scenarioPerkMaxed,
}

// runStressTests derives the four stress scenarios from the base case. Each
// transform takes the base by value and returns a fresh scenario with
// totals, profit, ROE, and loss rate recomputed from the perturbed driver,
// so no state is shared or carried between scenarios.
func (c *Challenger) runStressTests(base models.EconomicsScenario) map[string]models.EconomicsScenario {
	return map[string]models.EconomicsScenario{
		scenarioSpendDown: c.stressSpendDown(base),
		scenarioDefaultUp: c.stressDefaultUp(base),
		scenarioCofUp:     c.stressCofUp(base),
		scenarioPerkMaxed: c.stressPerkMaxed(base),
	}
}

// recompute fills the derived fields of a scenario whose revenue or cost
// components have been perturbed. Loss rate is left to the caller since only
// the default scenario changes it.
func recompute(s models.EconomicsScenario) models.EconomicsScenario {
	s.Revenues.Total = s.Revenues.Interchange + s.Revenues.Interest
	s.Costs.Total = s.Costs.Perks + s.Costs.ExpectedLoss + s.Costs.Funding + s.Costs.Operations
	s.ProfitMonthly = s.Revenues.Total - s.Costs.Total
	s.ProfitAnnual = s.ProfitMonthly * 12
	if s.CapitalRequirement > 0 {
		s.ROE = s.ProfitAnnual / s.CapitalRequirement
	}
	return s
}

// stressSpendDown models monthly spend dropping 20%, scaling interchange
// revenue and perk cost with it.
func (c *Challenger) stressSpendDown(s models.EconomicsScenario) models.EconomicsScenario {
	s.MonthlySpend *= 0.8
	s.Revenues.Interchange *= 0.8
	s.Costs.Perks *= 0.8
	return recompute(s)
}

// stressDefaultUp models default probability rising 1.5x.
func (c *Challenger) stressDefaultUp(s models.EconomicsScenario) models.EconomicsScenario {
	s.PD *= 1.5
	s.Costs.ExpectedLoss *= 1.5
	s = recompute(s)
	if s.AvgBalance > 0 {
		s.LossRate = (s.Costs.ExpectedLoss * 12) / s.AvgBalance
	}
	return s
}

// stressCofUp reprices funding at the cost of funds plus 100bps.
func (c *Challenger) stressCofUp(s models.EconomicsScenario) models.EconomicsScenario {
	s.Costs.Funding = s.AvgBalance * ((c.constraints.cofBase + 0.01) / 12)
	return recompute(s)
}

// stressPerkMaxed assumes 90% of spend becomes perk-eligible instead of 60%.
func (c *Challenger) stressPerkMaxed(s models.EconomicsScenario) models.EconomicsScenario {
	s.Costs.Perks = s.MonthlySpend * perkMaxedShare * c.params.perkCostMultiplier
	return recompute(s)
}
