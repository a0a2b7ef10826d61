package risk

import (
	"math"

	"github.com/boa-labs/preapproval/internal/models"
)

// Sub-score weights for the 300-850 composite. Must sum to 1.0.
var scoreWeights = map[string]float64{
	"income_stability":    0.25,
	"cash_flow":           0.20,
	"balance_management":  0.20,
	"payment_consistency": 0.15,
	"expense_ratio":       0.20,
}

// calculateScore combines five weighted sub-scores into a 300-850 composite.
func calculateScore(f models.FinancialFeatures) int {
	scores := map[string]float64{
		"income_stability":    math.Min(850, f.IncomeStability*850),
		"cash_flow":           cashFlowScore(f.MonthlyNetInflow),
		"balance_management":  balanceManagementScore(f.AvgBalance, f.NSFEvents),
		"payment_consistency": f.PaymentConsistency * 850,
		"expense_ratio":       expenseRatioScore(f.ExpenseRatio),
	}

	total := 0.0
	for key, score := range scores {
		total += score * scoreWeights[key]
	}
	return int(total)
}

func cashFlowScore(monthlyNetInflow float64) float64 {
	if monthlyNetInflow <= 0 {
		return 300
	}
	return math.Min(850, (monthlyNetInflow/2000)*400+450)
}

// balanceManagementScore bands the average balance, then deducts 50 points
// per NSF event with a floor of 300.
func balanceManagementScore(avgBalance float64, nsfEvents int) float64 {
	var score float64
	switch {
	case avgBalance > 1000:
		score = 750
	case avgBalance > 500:
		score = 650
	case avgBalance > 100:
		score = 550
	default:
		score = 400
	}
	score -= float64(nsfEvents) * 50
	return math.Max(300, score)
}

func expenseRatioScore(ratio float64) float64 {
	switch {
	case ratio < 0.3:
		return 800
	case ratio < 0.5:
		return 700
	case ratio < 0.8:
		return 600
	default:
		return 400
	}
}

// determineTier maps a score onto Bronze [0,599], Silver [600,699],
// Gold [700,850]. The bands cover the full 300-850 range.
func determineTier(score int) models.Tier {
	switch {
	case score >= 700 && score <= 850:
		return models.TierGold
	case score >= 600 && score <= 699:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}
