package models

// ProductOffer is a concrete templated offer shown to the user.
type ProductOffer struct {
	ProductType     string    `json:"type"`
	LimitRange      []float64 `json:"limit_range"`
	APRRange        []float64 `json:"apr_range,omitempty"`
	IntroOffer      string    `json:"intro_offer"`
	Perks           []string  `json:"perks"`
	Explanation     string    `json:"explanation_md"`
	TermsConditions string    `json:"terms_conditions"`
}

// OfferSet is the terms generator's output for one user.
type OfferSet struct {
	UserID     string                   `json:"user_id"`
	Tier       Tier                     `json:"tier"`
	Offers     map[string]*ProductOffer `json:"offers"`
	Confidence float64                  `json:"confidence"`
}

// PreApproval is the combined response produced by the orchestrator.
type PreApproval struct {
	UserID      string             `json:"user_id"`
	Eligible    bool               `json:"eligible"`
	Tier        Tier               `json:"tier,omitempty"`
	Score       int                `json:"score,omitempty"`
	Confidence  float64            `json:"confidence,omitempty"`
	RiskFactors map[string]float64 `json:"risk_factors,omitempty"`
	Products    []ProductOffer     `json:"products,omitempty"`
	Challenge   *ChallengeResult   `json:"challenge,omitempty"`
	Timestamp   string             `json:"timestamp"`
	Status      string             `json:"status"`
	Error       string             `json:"error,omitempty"`
}
