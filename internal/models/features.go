package models

// FinancialFeatures holds the signals extracted from a transaction history.
// Values are computed fresh on every scoring call and never mutated.
type FinancialFeatures struct {
	MonthlyNetInflow   float64            `json:"monthly_net_inflow"`
	IncomeStability    float64            `json:"income_stability"`
	AvgBalance         float64            `json:"avg_balance"`
	MinBalance         float64            `json:"min_balance"`
	NSFEvents          int                `json:"nsf_events"`
	ExpenseRatio       float64            `json:"expense_ratio"`
	PaymentConsistency float64            `json:"payment_consistency"`
	CategorySpending   map[string]float64 `json:"category_spending"`
}

// DefaultFeatures returns the fallback feature set used when no transaction
// history is available, so scoring stays total.
func DefaultFeatures() FinancialFeatures {
	return FinancialFeatures{
		MonthlyNetInflow:   3200,
		IncomeStability:    0.85,
		AvgBalance:         1250,
		MinBalance:         200,
		NSFEvents:          0,
		ExpenseRatio:       0.75,
		PaymentConsistency: 0.90,
		CategorySpending: map[string]float64{
			"dining":    180.0,
			"grocery":   320.0,
			"utilities": 200.0,
			"gas":       120.0,
			"shopping":  150.0,
		},
	}
}
