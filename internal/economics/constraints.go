package economics

import "github.com/boa-labs/preapproval/internal/models"

// stressROEFraction is the share of the ROE floor that stress scenarios must
// still clear.
const stressROEFraction = 0.8

// checkConstraints evaluates the base case and stress scenarios against the
// fixed policy thresholds. Stress scenarios are checked in a fixed order so
// the violation list is deterministic.
func (c *Challenger) checkConstraints(base models.EconomicsScenario, stress map[string]models.EconomicsScenario) []models.ConstraintViolation {
	violations := []models.ConstraintViolation{}

	if base.ROE < c.constraints.minROE {
		violations = append(violations, models.ConstraintViolation{
			Constraint: "min_roe",
			Required:   c.constraints.minROE,
			Actual:     base.ROE,
			Severity:   models.SeverityHigh,
		})
	}

	if base.LossRate > c.constraints.maxLossRate {
		violations = append(violations, models.ConstraintViolation{
			Constraint: "max_loss_rate",
			Required:   c.constraints.maxLossRate,
			Actual:     base.LossRate,
			Severity:   models.SeverityHigh,
		})
	}

	if base.Costs.Perks > c.constraints.maxPerkBudgetMonthly {
		violations = append(violations, models.ConstraintViolation{
			Constraint: "max_perk_budget",
			Required:   c.constraints.maxPerkBudgetMonthly,
			Actual:     base.Costs.Perks,
			Severity:   models.SeverityMedium,
		})
	}

	stressFloor := c.constraints.minROE * stressROEFraction
	for _, name := range stressOrder {
		scenario, ok := stress[name]
		if !ok {
			continue
		}
		if scenario.ROE < stressFloor {
			violations = append(violations, models.ConstraintViolation{
				Constraint: "stress_roe_" + name,
				Required:   stressFloor,
				Actual:     scenario.ROE,
				Severity:   models.SeverityMedium,
			})
		}
	}

	return violations
}
