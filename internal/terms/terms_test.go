package terms

import (
	"testing"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewGenerator(log)
}

func goldAssessment() models.CreditAssessment {
	return models.CreditAssessment{
		UserID: "testuser",
		Score:  720,
		Tier:   models.TierGold,
		Eligibility: map[string]models.EligibilityResult{
			models.ProductCreditCard: {
				Eligible:   true,
				LimitRange: []float64{4000, 8000},
				APRRange:   []float64{19.99, 22.99},
				Confidence: 0.95,
			},
			models.ProductOverdraftLine: {
				Eligible:   true,
				LimitRange: []float64{300, 700},
				APRRange:   []float64{17.99, 20.99},
				Confidence: 0.90,
			},
		},
		Confidence: 0.9,
		Features: models.FinancialFeatures{
			CategorySpending: map[string]float64{"dining": 450, "grocery": 200, "gas": 100},
		},
	}
}

func TestGenerateOffers_GoldTier(t *testing.T) {
	offers := testGenerator().GenerateOffers(goldAssessment())

	require.Len(t, offers.Offers, 2)

	card := offers.Offers[models.ProductCreditCard]
	require.NotNil(t, card)
	assert.Equal(t, "CREDIT_CARD", card.ProductType)
	assert.Equal(t, []float64{4000, 8000}, card.LimitRange)
	assert.Equal(t, "5% cash back on dining for 6 months", card.IntroOffer)
	assert.Contains(t, card.Perks, "Airport lounge access")
	assert.Contains(t, card.Explanation, "Gold")

	overdraft := offers.Offers[models.ProductOverdraftLine]
	require.NotNil(t, overdraft)
	assert.Equal(t, "OVERDRAFT_LINE", overdraft.ProductType)
	assert.Equal(t, "No fees for first 30 days", overdraft.IntroOffer)
}

func TestGenerateOffers_SkipsIneligibleProducts(t *testing.T) {
	assessment := goldAssessment()
	assessment.Eligibility[models.ProductOverdraftLine] = models.EligibilityResult{
		Eligible: false,
		Reason:   "Insufficient balance history or NSF events",
	}

	offers := testGenerator().GenerateOffers(assessment)

	require.Len(t, offers.Offers, 1)
	assert.Contains(t, offers.Offers, models.ProductCreditCard)
}

func TestSelectIntroOffer_FollowsDominantCategory(t *testing.T) {
	offers := creditCardTemplates[models.TierSilver].introOffers

	assert.Equal(t, "3% cash back on dining for 6 months",
		selectIntroOffer(offers, map[string]float64{"dining": 500, "grocery": 100, "gas": 50}))
	assert.Equal(t, "5% cash back on gas for 3 months",
		selectIntroOffer(offers, map[string]float64{"dining": 50, "grocery": 100, "gas": 400}))
	// No matching keyword falls back to the first template entry.
	assert.Equal(t, offers[0],
		selectIntroOffer(offers, map[string]float64{"grocery": 800}))
	assert.Equal(t, offers[0], selectIntroOffer(offers, nil))
}

func TestProposalFromOffer_Midpoints(t *testing.T) {
	proposal := ProposalFromOffer(models.ProductOffer{
		ProductType: "CREDIT_CARD",
		LimitRange:  []float64{4000, 8000},
		APRRange:    []float64{19.99, 22.99},
		IntroOffer:  "2x points on travel",
	})

	assert.InDelta(t, 6000, proposal.CreditLimit, 1e-9)
	assert.InDelta(t, 21.49, proposal.APRRate, 1e-9)
	assert.Equal(t, []string{"2x points on travel"}, proposal.PromotionalOffers)
}
