package models

import "math"

// Tier is a coarse creditworthiness bucket derived from the composite score.
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Product identifiers used as eligibility map keys.
const (
	ProductCreditCard    = "credit_card"
	ProductOverdraftLine = "overdraft_line"
	ProductBNPL          = "bnpl"
)

// EligibilityResult describes whether a user qualifies for a product and on
// what terms. LimitRange and APRRange are [low, high] pairs when present.
type EligibilityResult struct {
	Eligible   bool      `json:"eligible"`
	LimitRange []float64 `json:"limit_range,omitempty"`
	APRRange   []float64 `json:"apr_range,omitempty"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason,omitempty"`
}

// CreditAssessment is the output of a risk analysis run.
type CreditAssessment struct {
	UserID      string                       `json:"user_id"`
	Score       int                          `json:"score"`
	Tier        Tier                         `json:"tier"`
	RiskFactors map[string]float64           `json:"risk_factors"`
	Eligibility map[string]EligibilityResult `json:"eligibility"`
	Confidence  float64                      `json:"confidence"`
	Features    FinancialFeatures            `json:"features"`
}

// RiskScore100 maps the canonical 300-850 credit score onto the inverted
// 0-100 risk scale consumed by the economics challenger (higher = riskier).
func RiskScore100(creditScore int) int {
	risk := int(math.Round(float64(850-creditScore) * 100 / 550))
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}
