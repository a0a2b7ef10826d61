package terms

import (
	"fmt"
	"strings"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
)

// tierTemplate holds the per-tier offer building blocks for a product.
type tierTemplate struct {
	introOffers []string
	perks       []string
}

var creditCardTemplates = map[models.Tier]tierTemplate{
	models.TierBronze: {
		introOffers: []string{"2% cash back on groceries for 3 months", "1% cash back on all purchases"},
		perks:       []string{"No annual fee", "Mobile app alerts", "24/7 customer service"},
	},
	models.TierSilver: {
		introOffers: []string{"3% cash back on dining for 6 months", "5% cash back on gas for 3 months"},
		perks:       []string{"No annual fee", "Purchase protection", "Extended warranty", "Mobile app"},
	},
	models.TierGold: {
		introOffers: []string{"5% cash back on dining for 6 months", "2x points on travel", "0% APR for 12 months on purchases"},
		perks:       []string{"Premium rewards program", "Travel insurance", "Purchase protection", "Concierge service", "Airport lounge access"},
	},
}

// Generator builds templated product offers from a risk assessment. Only the
// template path of the upstream offer system is implemented here; generative
// explanations are a separate concern.
type Generator struct {
	log *logrus.Logger
}

// NewGenerator initializes a terms generator.
func NewGenerator(log *logrus.Logger) *Generator {
	return &Generator{log: log}
}

// GenerateOffers produces the offer set a user qualifies for.
func (g *Generator) GenerateOffers(assessment models.CreditAssessment) models.OfferSet {
	offers := make(map[string]*models.ProductOffer, 2)

	if card := g.creditCardOffer(assessment); card != nil {
		offers[models.ProductCreditCard] = card
	}
	if od := g.overdraftOffer(assessment); od != nil {
		offers[models.ProductOverdraftLine] = od
	}

	g.log.Infof("Generated %d offers for %s (tier %s)", len(offers), assessment.UserID, assessment.Tier)

	return models.OfferSet{
		UserID:     assessment.UserID,
		Tier:       assessment.Tier,
		Offers:     offers,
		Confidence: assessment.Confidence,
	}
}

func (g *Generator) creditCardOffer(assessment models.CreditAssessment) *models.ProductOffer {
	eligibility, ok := assessment.Eligibility[models.ProductCreditCard]
	if !ok || !eligibility.Eligible {
		return nil
	}
	template := creditCardTemplates[assessment.Tier]
	return &models.ProductOffer{
		ProductType:     "CREDIT_CARD",
		LimitRange:      eligibility.LimitRange,
		APRRange:        eligibility.APRRange,
		IntroOffer:      selectIntroOffer(template.introOffers, assessment.Features.CategorySpending),
		Perks:           template.perks,
		Explanation:     templateExplanation(assessment, "credit card"),
		TermsConditions: termsConditions(assessment.Tier),
	}
}

func (g *Generator) overdraftOffer(assessment models.CreditAssessment) *models.ProductOffer {
	eligibility, ok := assessment.Eligibility[models.ProductOverdraftLine]
	if !ok || !eligibility.Eligible {
		return nil
	}
	return &models.ProductOffer{
		ProductType:     "OVERDRAFT_LINE",
		LimitRange:      eligibility.LimitRange,
		APRRange:        eligibility.APRRange,
		IntroOffer:      "No fees for first 30 days",
		Perks:           []string{"Automatic overdraft protection", "Mobile alerts", "No minimum balance"},
		Explanation:     templateExplanation(assessment, "overdraft line of credit"),
		TermsConditions: termsConditions(assessment.Tier),
	}
}

// selectIntroOffer picks the intro offer best aligned with the user's
// dominant spending category, falling back to the first template entry.
func selectIntroOffer(offers []string, spending map[string]float64) string {
	if len(offers) == 0 {
		return ""
	}
	if len(spending) == 0 {
		return offers[0]
	}
	dining := spending["dining"]
	grocery := spending["grocery"]
	gas := spending["gas"]

	var keyword string
	switch {
	case dining > grocery && dining > gas:
		keyword = "dining"
	case grocery > gas:
		keyword = "groceries"
	default:
		keyword = "gas"
	}
	for _, offer := range offers {
		if strings.Contains(strings.ToLower(offer), keyword) {
			return offer
		}
	}
	return offers[0]
}

func templateExplanation(assessment models.CreditAssessment, product string) string {
	return fmt.Sprintf(
		"Based on your banking history, you qualify for our %s tier %s with competitive rates and benefits.",
		assessment.Tier, product)
}

func termsConditions(tier models.Tier) string {
	return fmt.Sprintf(
		"This is a %s tier pre-approval estimate. Final approval subject to credit application.", tier)
}

// ProposalFromOffer collapses an offer's ranges into the single terms
// proposal submitted to the economics challenger, using the midpoint of the
// limit and APR ranges.
func ProposalFromOffer(offer models.ProductOffer) models.TermsProposal {
	proposal := models.TermsProposal{ProductType: offer.ProductType}
	if len(offer.LimitRange) == 2 {
		proposal.CreditLimit = (offer.LimitRange[0] + offer.LimitRange[1]) / 2
	}
	if len(offer.APRRange) == 2 {
		proposal.APRRate = (offer.APRRange[0] + offer.APRRange[1]) / 2
	}
	if offer.IntroOffer != "" {
		proposal.PromotionalOffers = []string{offer.IntroOffer}
	}
	return proposal
}
