package risk

import (
	"testing"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestAnalyzeRisk_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())
	history := steadyHistory()

	first := analyzer.AnalyzeRisk("testuser", history, 2000, 6)
	for i := 0; i < 5; i++ {
		again := analyzer.AnalyzeRisk("testuser", history, 2000, 6)
		assert.Equal(t, first.Score, again.Score)
		assert.Equal(t, first.Tier, again.Tier)
		assert.Equal(t, first.Eligibility, again.Eligibility)
		assert.Equal(t, first.RiskFactors, again.RiskFactors)
		assert.Equal(t, first.Confidence, again.Confidence)
	}
}

func TestAnalyzeRisk_EmptyHistoryUsesDefaults(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())
	assessment := analyzer.AnalyzeRisk("testuser", nil, 0, 6)

	// Default features: stability .85, inflow 3200, avg balance 1250,
	// consistency .90, expense ratio .75.
	assert.Equal(t, 735, assessment.Score)
	assert.Equal(t, models.TierGold, assessment.Tier)
	assert.Equal(t, models.DefaultFeatures(), assessment.Features)
	assert.True(t, assessment.Eligibility[models.ProductCreditCard].Eligible)
}

func TestAnalyzeRisk_ConfidenceCapped(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())
	assessment := analyzer.AnalyzeRisk("testuser", steadyHistory(), 2000, 6)
	assert.LessOrEqual(t, assessment.Confidence, 0.95)
	assert.GreaterOrEqual(t, assessment.Confidence, 0.0)
}

func TestAnalyzeRisk_ConfidenceFlooredWhenOverdrawn(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())

	// A small closing balance against months of net deposits drives the
	// backward balance walk deep below zero, so balance volatility exceeds 1
	// and the raw confidence blend goes negative.
	assessment := analyzer.AnalyzeRisk("testuser", steadyHistory(), 100, 6)

	require.Greater(t, assessment.RiskFactors["balance_volatility"], 1.0)
	assert.Equal(t, 0.0, assessment.Confidence)
}

func TestCalculateScore_Bounds(t *testing.T) {
	for _, stability := range []float64{0, 0.5, 1} {
		for _, inflow := range []float64{-500, 0, 800, 2500, 10000} {
			for _, avgBalance := range []float64{0, 150, 800, 5000} {
				for _, nsf := range []int{0, 1, 5, 20} {
					for _, consistency := range []float64{0.8, 0.90} {
						for _, ratio := range []float64{0.1, 0.4, 0.7, 1.5} {
							f := models.FinancialFeatures{
								MonthlyNetInflow:   inflow,
								IncomeStability:    stability,
								AvgBalance:         avgBalance,
								NSFEvents:          nsf,
								ExpenseRatio:       ratio,
								PaymentConsistency: consistency,
							}
							score := calculateScore(f)
							require.GreaterOrEqual(t, score, 300, "features %+v", f)
							require.LessOrEqual(t, score, 850, "features %+v", f)
						}
					}
				}
			}
		}
	}
}

func TestDetermineTier_CoversFullRange(t *testing.T) {
	for score := 300; score <= 850; score++ {
		tier := determineTier(score)
		switch {
		case score <= 599:
			require.Equal(t, models.TierBronze, tier, "score %d", score)
		case score <= 699:
			require.Equal(t, models.TierSilver, tier, "score %d", score)
		default:
			require.Equal(t, models.TierGold, tier, "score %d", score)
		}
	}
}

func TestBalanceManagementScore_NSFMonotonic(t *testing.T) {
	for _, avgBalance := range []float64{0, 150, 800, 5000} {
		previous := balanceManagementScore(avgBalance, 0)
		for nsf := 1; nsf <= 15; nsf++ {
			current := balanceManagementScore(avgBalance, nsf)
			require.LessOrEqual(t, current, previous, "avg %.0f nsf %d", avgBalance, nsf)
			require.GreaterOrEqual(t, current, 300.0)
			previous = current
		}
	}
}

func TestAssessEligibility_OverdraftGating(t *testing.T) {
	base := models.FinancialFeatures{MonthlyNetInflow: 2000, AvgBalance: 1500}

	for _, tier := range []models.Tier{models.TierBronze, models.TierSilver, models.TierGold} {
		withNSF := base
		withNSF.NSFEvents = 1
		result := assessEligibility(withNSF, tier)[models.ProductOverdraftLine]
		assert.False(t, result.Eligible, "tier %s with NSF", tier)
		assert.Equal(t, "Insufficient balance history or NSF events", result.Reason)

		lowBalance := base
		lowBalance.AvgBalance = 200
		result = assessEligibility(lowBalance, tier)[models.ProductOverdraftLine]
		assert.False(t, result.Eligible, "tier %s with low balance", tier)

		clean := assessEligibility(base, tier)[models.ProductOverdraftLine]
		assert.True(t, clean.Eligible, "tier %s clean", tier)
	}

	// Gold overdraft terms are better than the shared lower-tier terms.
	gold := assessEligibility(base, models.TierGold)[models.ProductOverdraftLine]
	silver := assessEligibility(base, models.TierSilver)[models.ProductOverdraftLine]
	assert.Equal(t, []float64{300, 700}, gold.LimitRange)
	assert.Equal(t, []float64{100, 300}, silver.LimitRange)
	assert.Less(t, gold.APRRange[0], silver.APRRange[0])
}

func TestAssessEligibility_BNPLIncomeGate(t *testing.T) {
	rich := models.FinancialFeatures{MonthlyNetInflow: 1001}
	poor := models.FinancialFeatures{MonthlyNetInflow: 1000}

	assert.True(t, assessEligibility(rich, models.TierBronze)[models.ProductBNPL].Eligible)
	result := assessEligibility(poor, models.TierGold)[models.ProductBNPL]
	assert.False(t, result.Eligible)
	assert.Equal(t, "Insufficient income", result.Reason)
}

func TestAssessEligibility_CreditCardAlwaysEligible(t *testing.T) {
	f := models.FinancialFeatures{NSFEvents: 10}
	for tier, wantLimit := range map[models.Tier][]float64{
		models.TierGold:   {4000, 8000},
		models.TierSilver: {1500, 4000},
		models.TierBronze: {500, 1500},
	} {
		result := assessEligibility(f, tier)[models.ProductCreditCard]
		assert.True(t, result.Eligible)
		assert.Equal(t, wantLimit, result.LimitRange)
	}
}
