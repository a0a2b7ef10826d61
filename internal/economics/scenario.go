package economics

import "github.com/boa-labs/preapproval/internal/models"

// Base-case behavioral assumptions: 30% of the limit is utilized, half of
// that revolves, and 60% of spend is perk-eligible.
const (
	utilizationRate   = 0.3
	revolvingShare    = 0.5
	perkEligibleShare = 0.6
	perkMaxedShare    = 0.9
)

// buildBaseScenario computes the base-case unit economics for a proposal.
func (c *Challenger) buildBaseScenario(terms models.TermsProposal, risk models.RiskSummary, spending models.SpendingSummary) models.EconomicsScenario {
	creditLimit := terms.CreditLimit
	if creditLimit == 0 {
		creditLimit = defaultCreditLimit
	}
	aprPct := terms.APRRate
	if aprPct == 0 {
		aprPct = defaultAPR
	}
	apr := aprPct / 100
	totalSpending := defaultTotalSpending
	if spending.TotalSpending != nil {
		totalSpending = *spending.TotalSpending
	}
	monthlySpend := totalSpending / 12
	pd := c.extractPD(risk)

	avgBalance := creditLimit * utilizationRate
	revolvingBalance := avgBalance * revolvingShare

	interchange := monthlySpend * c.params.interchangeRate
	interest := revolvingBalance * (apr / 12)

	perkCosts := monthlySpend * perkEligibleShare * c.params.perkCostMultiplier
	expectedLoss := pd * c.params.lgd * avgBalance / 12
	funding := avgBalance * (c.constraints.cofBase / 12)
	ops := c.constraints.opsCost

	totalRevenue := interchange + interest
	totalCosts := perkCosts + expectedLoss + funding + ops
	profit := totalRevenue - totalCosts

	capital := creditLimit * c.params.capitalRatio
	roe := 0.0
	if capital > 0 {
		roe = (profit * 12) / capital
	}
	lossRate := 0.0
	if avgBalance > 0 {
		lossRate = (expectedLoss * 12) / avgBalance
	}

	return models.EconomicsScenario{
		MonthlySpend:     monthlySpend,
		AvgBalance:       avgBalance,
		RevolvingBalance: revolvingBalance,
		PD:               pd,
		Revenues: models.Revenues{
			Interchange: interchange,
			Interest:    interest,
			Total:       totalRevenue,
		},
		Costs: models.Costs{
			Perks:        perkCosts,
			ExpectedLoss: expectedLoss,
			Funding:      funding,
			Operations:   ops,
			Total:        totalCosts,
		},
		ProfitMonthly:      profit,
		ProfitAnnual:       profit * 12,
		ROE:                roe,
		LossRate:           lossRate,
		CapitalRequirement: capital,
	}
}
