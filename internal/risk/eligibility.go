package risk

import "github.com/boa-labs/preapproval/internal/models"

// creditCardTerms is the per-tier limit/APR lookup for the credit card
// product. Every tier qualifies; terms improve as tier rises.
var creditCardTerms = map[models.Tier]models.EligibilityResult{
	models.TierGold: {
		Eligible:   true,
		LimitRange: []float64{4000, 8000},
		APRRange:   []float64{19.99, 22.99},
		Confidence: 0.95,
	},
	models.TierSilver: {
		Eligible:   true,
		LimitRange: []float64{1500, 4000},
		APRRange:   []float64{22.99, 26.99},
		Confidence: 0.85,
	},
	models.TierBronze: {
		Eligible:   true,
		LimitRange: []float64{500, 1500},
		APRRange:   []float64{26.99, 29.99},
		Confidence: 0.70,
	},
}

// assessEligibility builds the per-product eligibility map.
func assessEligibility(f models.FinancialFeatures, tier models.Tier) map[string]models.EligibilityResult {
	eligibility := make(map[string]models.EligibilityResult, 3)

	eligibility[models.ProductCreditCard] = creditCardTerms[tier]

	// Overdraft line requires a clean NSF record and some balance history.
	if f.NSFEvents == 0 && f.AvgBalance > 200 {
		if tier == models.TierGold {
			eligibility[models.ProductOverdraftLine] = models.EligibilityResult{
				Eligible:   true,
				LimitRange: []float64{300, 700},
				APRRange:   []float64{17.99, 20.99},
				Confidence: 0.90,
			}
		} else {
			eligibility[models.ProductOverdraftLine] = models.EligibilityResult{
				Eligible:   true,
				LimitRange: []float64{100, 300},
				APRRange:   []float64{20.99, 24.99},
				Confidence: 0.75,
			}
		}
	} else {
		eligibility[models.ProductOverdraftLine] = models.EligibilityResult{
			Eligible:   false,
			Reason:     "Insufficient balance history or NSF events",
			Confidence: 0.60,
		}
	}

	if f.MonthlyNetInflow > 1000 {
		eligibility[models.ProductBNPL] = models.EligibilityResult{
			Eligible:   true,
			LimitRange: []float64{250, 1000},
			Confidence: 0.85,
		}
	} else {
		eligibility[models.ProductBNPL] = models.EligibilityResult{
			Eligible:   false,
			Reason:     "Insufficient income",
			Confidence: 0.60,
		}
	}

	return eligibility
}
