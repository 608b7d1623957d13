package textutil

// PricingTable maps a model identifier to its USD price per 1k tokens.
// Like SynonymTable this is injected configuration data, not a global the
// estimator reads directly.
type PricingTable map[string]float64

// defaultPricePer1k is charged for models missing from the table. It is a
// deliberately conservative mid-range figure so unknown models never report
// a zero cost.
const defaultPricePer1k = 0.002

// DefaultPricing returns the built-in per-1k-token price table.
func DefaultPricing() PricingTable {
	return PricingTable{
		"gemini-2.0-flash":     0.0004,
		"gemini-1.5-pro":       0.0050,
		"gpt-4o-mini":          0.0006,
		"gpt-4o":               0.0100,
		"llama-3.1-8b-instant": 0.0001,
		"llama-3.3-70b":        0.0008,
		"fallback-local":       0,
	}
}

// CostEstimator converts token usage into an estimated USD cost.
type CostEstimator struct {
	table PricingTable
}

// NewCostEstimator creates a CostEstimator over the given pricing table.
// A nil table means every model uses the default unit price.
func NewCostEstimator(table PricingTable) *CostEstimator {
	return &CostEstimator{table: table}
}

// EstimateUSD returns (totalTokens/1000) * pricePer1k for the model, using
// the default unit price when the model is unknown.
func (c *CostEstimator) EstimateUSD(model string, totalTokens int) float64 {
	if totalTokens <= 0 {
		return 0
	}
	price, ok := c.table[model]
	if !ok {
		price = defaultPricePer1k
	}
	return float64(totalTokens) / 1000 * price
}
