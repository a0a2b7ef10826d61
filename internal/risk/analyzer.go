package risk

import (
	"math"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
)

// Analyzer scores a user's transaction history on the 300-850 scale and
// derives tier and product eligibility. It holds no mutable state; AnalyzeRisk
// is a pure function of its inputs and may be called concurrently.
type Analyzer struct {
	log *logrus.Logger
}

// NewAnalyzer initializes a new risk analyzer.
func NewAnalyzer(log *logrus.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// AnalyzeRisk performs a complete risk analysis. It never fails: missing or
// empty transaction histories fall back to the default feature set so the
// pipeline always produces an assessment.
func (a *Analyzer) AnalyzeRisk(userID string, transactions []models.Transaction, currentBalance float64, windowMonths int) models.CreditAssessment {
	features := extractFeatures(transactions, currentBalance)
	score := calculateScore(features)
	tier := determineTier(score)
	eligibility := assessEligibility(features, tier)

	balanceVolatility := 1 - features.MinBalance/math.Max(features.AvgBalance, 1)
	riskFactors := map[string]float64{
		"income_stability":    features.IncomeStability,
		"balance_volatility":  balanceVolatility,
		"expense_ratio":       features.ExpenseRatio,
		"nsf_frequency":       float64(features.NSFEvents) / math.Max(float64(windowMonths), 1),
		"payment_reliability": features.PaymentConsistency,
	}

	// Overdrawn histories push balance_volatility past 1, which would drag
	// the blend negative; confidence stays within [0, 0.95].
	confidence := math.Min(0.95, math.Max(0,
		features.IncomeStability*0.3+
			(1-balanceVolatility)*0.25+
			(1-math.Min(1, features.ExpenseRatio))*0.25+
			features.PaymentConsistency*0.2))

	a.log.Infof("Risk assessment for %s: score=%d tier=%s nsf=%d", userID, score, tier, features.NSFEvents)

	return models.CreditAssessment{
		UserID:      userID,
		Score:       score,
		Tier:        tier,
		RiskFactors: riskFactors,
		Eligibility: eligibility,
		Confidence:  confidence,
		Features:    features,
	}
}
