package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boa-labs/preapproval/internal/cache"
	"github.com/boa-labs/preapproval/internal/config"
	"github.com/boa-labs/preapproval/internal/economics"
	"github.com/boa-labs/preapproval/internal/integrations/rates"
	"github.com/boa-labs/preapproval/internal/models"
	"github.com/boa-labs/preapproval/internal/repository"
	"github.com/boa-labs/preapproval/internal/risk"
	"github.com/boa-labs/preapproval/internal/terms"
	"github.com/boa-labs/preapproval/internal/utils/email"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service orchestrates the pre-approval pipeline: risk scoring, offer
// generation, economics stress-testing, and the combined response.
type Service struct {
	repo       *repository.Repository
	cache      *cache.Cache
	analyzer   *risk.Analyzer
	generator  *terms.Generator
	challenger *economics.Challenger
	rates      *rates.Provider
	notifier   *email.Sender
	log        *logrus.Logger
	config     *config.Config
}

// NewService initializes a new service.
func NewService(
	repo *repository.Repository,
	responseCache *cache.Cache,
	ratesProvider *rates.Provider,
	notifier *email.Sender,
	log *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:       repo,
		cache:      responseCache,
		analyzer:   risk.NewAnalyzer(log),
		generator:  terms.NewGenerator(log),
		challenger: economics.NewChallenger(log),
		rates:      ratesProvider,
		notifier:   notifier,
		log:        log,
		config:     cfg,
	}
}

// Register creates a new user with hashed password.
func (s *Service) Register(username, emailAddr, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token whose subject is the
// username.
func (s *Service) Login(emailAddr, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(emailAddr)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.Username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// AssessRisk runs the risk scorer against a user's transaction history. Data
// access failures fall back to an empty history, so an assessment is always
// returned; the error reports what data was missing.
func (s *Service) AssessRisk(username string, months int) (models.CreditAssessment, error) {
	account, err := s.repo.FindAccountByUsername(username)
	if err != nil {
		s.log.Errorf("No account for %s, assessing with defaults: %v", username, err)
		return s.analyzer.AnalyzeRisk(username, nil, 0, months), err
	}

	transactions, err := s.repo.ListTransactions(account.ID, months)
	if err != nil {
		s.log.Errorf("Failed to load transactions for %s, assessing with defaults: %v", username, err)
		return s.analyzer.AnalyzeRisk(username, nil, account.Balance, months), err
	}

	return s.analyzer.AnalyzeRisk(username, transactions, account.Balance, months), nil
}

// ChallengeTerms stress-tests an externally supplied terms proposal. The
// risk_score field uses the inverted 0-100 scale.
func (s *Service) ChallengeTerms(proposal models.TermsProposal, riskSummary models.RiskSummary, spending models.SpendingSummary) models.ChallengeResult {
	return s.currentChallenger().AnalyzeProposal(proposal, riskSummary, spending)
}

// GetPreapproval produces the combined pre-approval response for a user,
// serving from the short-TTL cache when possible.
func (s *Service) GetPreapproval(ctx context.Context, username string) (*models.PreApproval, error) {
	if cached, ok := s.cache.Get(ctx, username); ok {
		s.log.Infof("Returning cached pre-approval for %s", username)
		return cached, nil
	}

	requestID := uuid.NewString()
	s.log.Infof("Computing pre-approval for %s (request %s)", username, requestID)

	assessment, err := s.AssessRisk(username, s.config.WindowMonths)
	if err != nil {
		// Degraded assessment built from default features; keep going.
		s.log.Warnf("Pre-approval for %s proceeding on fallback data (request %s)", username, requestID)
	}

	offerSet := s.generator.GenerateOffers(assessment)

	pre := &models.PreApproval{
		UserID:      username,
		Eligible:    true,
		Tier:        assessment.Tier,
		Score:       assessment.Score,
		Confidence:  minFloat(assessment.Confidence, offerSet.Confidence),
		RiskFactors: assessment.RiskFactors,
		Products:    formatProducts(offerSet),
		Timestamp:   time.Now().Format(time.RFC3339),
		Status:      "success",
	}

	if card, ok := offerSet.Offers[models.ProductCreditCard]; ok {
		proposal := terms.ProposalFromOffer(*card)
		challenge := s.currentChallenger().AnalyzeProposal(
			proposal,
			models.NewRiskSummary(models.RiskScore100(assessment.Score)),
			models.NewSpendingSummary(s.annualSpending(assessment.Features)),
		)
		pre.Challenge = &challenge
		if challenge.Decision.Action == models.ActionReject {
			pre.Eligible = false
		}
	}

	s.cache.Set(ctx, username, pre)
	s.notifyDecision(username, pre)

	return pre, nil
}

// currentChallenger applies the latest fetched cost-of-funds rate when one
// is available; otherwise the policy base rate stands.
func (s *Service) currentChallenger() *economics.Challenger {
	if s.rates == nil {
		return s.challenger
	}
	if rate, ok := s.rates.Current(); ok {
		return s.challenger.WithCostOfFunds(rate)
	}
	return s.challenger
}

// annualSpending annualizes the category spend observed over the analysis
// window.
func (s *Service) annualSpending(features models.FinancialFeatures) float64 {
	total := 0.0
	for _, amount := range features.CategorySpending {
		total += amount
	}
	months := s.config.WindowMonths
	if months <= 0 {
		months = 6
	}
	return total * 12 / float64(months)
}

func (s *Service) notifyDecision(username string, pre *models.PreApproval) {
	if s.notifier == nil || !s.config.NotificationsEnabled() {
		return
	}
	user, err := s.repo.FindUserByUsername(username)
	if err != nil {
		s.log.Warnf("Cannot notify %s, user lookup failed: %v", username, err)
		return
	}
	// Best effort; the response does not wait on SMTP.
	go func() {
		if err := s.notifier.SendDecisionNotification(user.Email, user.Username, pre); err != nil {
			s.log.Warnf("Decision notification for %s failed: %v", username, err)
		}
	}()
}

// formatProducts flattens the offer set into a deterministic product list.
func formatProducts(offerSet models.OfferSet) []models.ProductOffer {
	products := make([]models.ProductOffer, 0, len(offerSet.Offers))
	for _, key := range []string{models.ProductCreditCard, models.ProductOverdraftLine, models.ProductBNPL} {
		if offer, ok := offerSet.Offers[key]; ok && offer != nil {
			products = append(products, *offer)
		}
	}
	return products
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
