package models

// TermsProposal is a credit-card terms proposal submitted for stress-testing.
type TermsProposal struct {
	ProductType       string   `json:"product_type,omitempty"`
	APRRate           float64  `json:"apr_rate"`
	CreditLimit       float64  `json:"credit_limit"`
	PromotionalOffers []string `json:"promotional_offers,omitempty"`
	Adjustments       []string `json:"adjustments,omitempty"`
}

// RiskSummary carries the coarse risk input for the challenger's PD lookup.
// RiskScore is on the inverted 0-100 scale (higher = riskier), not the
// 300-850 credit score; see RiskScore100 for the conversion. A nil score
// means the field was absent; zero is a valid lowest-risk value.
type RiskSummary struct {
	RiskScore *int `json:"risk_score,omitempty"`
}

// NewRiskSummary builds a summary with an explicit risk score.
func NewRiskSummary(score int) RiskSummary {
	return RiskSummary{RiskScore: &score}
}

// SpendingSummary carries annual card-eligible spending for a user. A nil
// total means the field was absent; an explicit zero is honored.
type SpendingSummary struct {
	TotalSpending *float64 `json:"total_spending,omitempty"`
}

// NewSpendingSummary builds a summary with an explicit annual total.
func NewSpendingSummary(total float64) SpendingSummary {
	return SpendingSummary{TotalSpending: &total}
}
