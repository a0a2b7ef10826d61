package economics

import (
	"fmt"
	"math"
	"strings"

	"github.com/boa-labs/preapproval/internal/models"
)

// makeDecision resolves a proposal into approve, counter-offer, or reject.
// Tie-break order: no high-severity violations and at most one total
// approves as-is; up to two high-severity produces a counter-offer; more
// rejects.
func (c *Challenger) makeDecision(base models.EconomicsScenario, violations []models.ConstraintViolation, original models.TermsProposal) models.Decision {
	highCount := 0
	for _, v := range violations {
		if v.Severity == models.SeverityHigh {
			highCount++
		}
	}

	switch {
	case highCount == 0 && len(violations) <= 1:
		return models.Decision{
			Action:       models.ActionApproveAsIs,
			Reason:       "Proposal meets all key constraints and stress tests",
			ProfitMargin: base.ProfitMonthly,
			ROE:          base.ROE,
		}
	case highCount <= 2:
		counter := c.generateCounterOffer(original, violations)
		return models.Decision{
			Action:              models.ActionCounterOffer,
			Reason:              fmt.Sprintf("Adjustments needed due to %d constraint violations", len(violations)),
			Violations:          violations,
			CounterProposal:     &counter,
			ExpectedImprovement: estimateImprovement(counter, original),
		}
	default:
		return models.Decision{
			Action:     models.ActionReject,
			Reason:     fmt.Sprintf("Too many constraint violations (%d high severity)", highCount),
			Violations: violations,
		}
	}
}

// generateCounterOffer adjusts the proposal toward the nearest compliant
// terms: APR up 50-200bps per ROE violation (capped at policy max), credit
// limit down 20% (between $1000 and $5000, floored at $5000) on loss
// violations, and promotional offers truncated on perk violations.
func (c *Challenger) generateCounterOffer(original models.TermsProposal, violations []models.ConstraintViolation) models.TermsProposal {
	counter := original
	counter.PromotionalOffers = append([]string(nil), original.PromotionalOffers...)
	var adjustments []string

	roeViolations := 0
	lossViolations := 0
	perkViolations := 0
	for _, v := range violations {
		if strings.Contains(v.Constraint, "roe") {
			roeViolations++
		}
		if strings.Contains(v.Constraint, "loss") {
			lossViolations++
		}
		if strings.Contains(v.Constraint, "perk") {
			perkViolations++
		}
	}

	if roeViolations > 0 {
		aprIncreaseBps := math.Min(200, math.Max(50, float64(roeViolations)*100))
		counter.APRRate = math.Min(c.constraints.maxAPR, original.APRRate+aprIncreaseBps/100)
		adjustments = append(adjustments, fmt.Sprintf("APR increased by %.0f bps to improve ROE", aprIncreaseBps))
	}

	if lossViolations > 0 {
		reduction := math.Min(5000, math.Max(1000, math.Trunc(original.CreditLimit*0.2)))
		counter.CreditLimit = math.Max(5000, original.CreditLimit-reduction)
		adjustments = append(adjustments, fmt.Sprintf("Credit limit reduced by $%.0f to manage loss exposure", reduction))
	}

	if perkViolations > 0 {
		if len(counter.PromotionalOffers) > 1 {
			counter.PromotionalOffers = counter.PromotionalOffers[:1]
		}
		adjustments = append(adjustments, "Reduced promotional benefits to control perk costs")
	}

	counter.Adjustments = adjustments
	return counter
}

// estimateImprovement is a rough linear heuristic, not a re-derivation from
// the stress model: each bp of APR is worth ~0.002 ROE and ~$5 of monthly
// profit per 100bps.
func estimateImprovement(counter, original models.TermsProposal) *models.Improvement {
	aprIncreaseBps := (counter.APRRate - original.APRRate) * 100
	return &models.Improvement{
		APRIncreaseBps:               aprIncreaseBps,
		CreditLimitChange:            counter.CreditLimit - original.CreditLimit,
		EstimatedROEImprovement:      aprIncreaseBps * 0.002,
		EstimatedProfitImprovementMo: aprIncreaseBps * 5,
	}
}
