package service

import (
	"encoding/json"
	"strconv"
)

// FeatureSet is a normalized feature mapping handed to the scoring engine.
// Callers own field validation; the engine only coerces values leniently and
// treats anything missing or unusable as zero (false for booleans).
type FeatureSet map[string]any

// Feature keys for individual applicants.
const (
	FeatureYearlyIncome       = "yearly_income"
	FeatureExistingDebt       = "existing_debt"
	FeatureRequestedAmount    = "requested_amount"
	FeatureCollateralValue    = "collateral_value"
	FeatureCreditHistoryScore = "credit_history_score"
	FeatureCriminalHistory    = "criminal_history"
)

// Feature keys for company applicants.
const (
	FeatureRevenue     = "revenue"
	FeatureNetIncome   = "net_income"
	FeatureAssets      = "assets"
	FeatureLiabilities = "liabilities"
)

// Float returns the named feature coerced to float64, or 0 when the feature
// is absent, nil, or not numeric.
func (f FeatureSet) Float(key string) float64 {
	v, ok := f[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Int returns the named feature coerced to int. The second return reports
// whether the feature was present and integer-coercible.
func (f FeatureSet) Int(key string) (int, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Bool returns the named feature as a boolean, defaulting to false for
// anything absent or non-boolean.
func (f FeatureSet) Bool(key string) bool {
	v, ok := f[key]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}
