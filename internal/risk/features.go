package risk

import (
	"math"
	"sort"
	"strings"

	"github.com/boa-labs/preapproval/internal/models"
)

// balanceWindow caps how many of the most recent transactions seed the
// reconstructed balance series. The walk is per transaction, not per
// calendar day, so sparse accounts cover more than 90 days; kept as-is for
// parity with the production scorer this replaces.
const balanceWindow = 90

// recurringMinCount is how many times a description must repeat before it
// counts as a recurring monthly expense.
const recurringMinCount = 3

// extractFeatures derives FinancialFeatures from a transaction history and
// the current balance. Empty input yields the documented default features.
func extractFeatures(transactions []models.Transaction, currentBalance float64) models.FinancialFeatures {
	if len(transactions) == 0 {
		return models.DefaultFeatures()
	}

	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	inflows := monthlyInflows(sorted)
	avgInflow := mean(inflows)
	volatility := 0.0
	if len(inflows) > 1 {
		volatility = popStdev(inflows)
	}
	incomeStability := math.Max(0, 1-volatility/math.Max(avgInflow, 1))

	balances := estimateDailyBalances(sorted, currentBalance)
	avgBalance := mean(balances)
	minBalance := balances[0]
	nsfEvents := 0
	for _, b := range balances {
		if b < minBalance {
			minBalance = b
		}
		if b < 0 {
			nsfEvents++
		}
	}

	recurring := identifyRecurringExpenses(sorted)
	totalRecurring := 0.0
	for _, amount := range recurring {
		totalRecurring += amount
	}
	expenseRatio := 1.0
	if avgInflow > 0 {
		expenseRatio = totalRecurring / math.Max(avgInflow, 1)
	}

	paymentConsistency := 0.8
	if len(recurring) > 0 {
		paymentConsistency = 0.90
	}

	return models.FinancialFeatures{
		MonthlyNetInflow:   avgInflow,
		IncomeStability:    incomeStability,
		AvgBalance:         avgBalance,
		MinBalance:         minBalance,
		NSFEvents:          nsfEvents,
		ExpenseRatio:       expenseRatio,
		PaymentConsistency: paymentConsistency,
		CategorySpending:   categorizeSpending(sorted),
	}
}

// monthlyInflows sums transaction amounts per calendar month.
func monthlyInflows(transactions []models.Transaction) []float64 {
	sums := make(map[string]float64)
	var order []string
	for _, tx := range transactions {
		key := tx.Timestamp.Format("2006-01")
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += tx.Amount
	}
	inflows := make([]float64, 0, len(order))
	for _, key := range order {
		inflows = append(inflows, sums[key])
	}
	return inflows
}

// estimateDailyBalances walks the most recent transactions backward from the
// current balance, subtracting each amount. The series seeds with the
// current balance itself. This approximates, rather than reconstructs, true
// daily balances.
func estimateDailyBalances(transactions []models.Transaction, currentBalance float64) []float64 {
	start := 0
	if len(transactions) > balanceWindow {
		start = len(transactions) - balanceWindow
	}
	balance := currentBalance
	balances := []float64{balance}
	for i := len(transactions) - 1; i >= start; i-- {
		balance -= transactions[i].Amount
		balances = append(balances, balance)
	}
	return balances
}

// identifyRecurringExpenses groups outflows by exact description and buckets
// any description repeating at least recurringMinCount times into housing,
// utilities, or phone by keyword. Utilities accumulate across matching
// descriptions; housing and phone keep the latest match.
func identifyRecurringExpenses(transactions []models.Transaction) map[string]float64 {
	byDescription := make(map[string][]float64)
	var order []string
	for _, tx := range transactions {
		if tx.Amount >= 0 {
			continue
		}
		if _, seen := byDescription[tx.Description]; !seen {
			order = append(order, tx.Description)
		}
		byDescription[tx.Description] = append(byDescription[tx.Description], math.Abs(tx.Amount))
	}

	patterns := make(map[string]float64)
	for _, desc := range order {
		amounts := byDescription[desc]
		if len(amounts) < recurringMinCount {
			continue
		}
		avg := mean(amounts)
		upper := strings.ToUpper(desc)
		switch {
		case strings.Contains(upper, "RENT") || strings.Contains(upper, "MORTGAGE"):
			patterns["housing"] = avg
		case containsAny(upper, "ELECTRIC", "GAS", "WATER", "UTILITIES"):
			patterns["utilities"] += avg
		case strings.Contains(upper, "PHONE") || strings.Contains(upper, "WIRELESS"):
			patterns["phone"] = avg
		}
	}
	return patterns
}

// categorizeSpending buckets every outflow into a spending category.
func categorizeSpending(transactions []models.Transaction) map[string]float64 {
	categories := make(map[string]float64, len(spendingCategories))
	for _, c := range spendingCategories {
		categories[c] = 0
	}
	for _, tx := range transactions {
		if tx.Amount >= 0 {
			continue
		}
		categories[categorize(tx.Description)] += math.Abs(tx.Amount)
	}
	return categories
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// popStdev is the population standard deviation.
func popStdev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
