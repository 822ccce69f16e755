package service

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

// RuleModelVersion identifies the additive rule-based scoring path.
const RuleModelVersion = "rule/v1"

// Prediction is the immutable result of one scoring invocation.
type Prediction struct {
	Score        int
	Explanation  valueobject.Explanation
	ModelVersion string
}

// RiskScorer is the deterministic risk scoring engine. It maps a normalized
// feature set to a bounded score in [0,100] with an ordered explanation,
// consulting an optional pre-trained model before falling back to rules.
// It performs no I/O and owns no mutable state, so a single instance may be
// shared across any number of goroutines.
type RiskScorer struct {
	individualModel Model
	companyModel    Model
	logger          *slog.Logger
}

// NewRiskScorer creates a scoring engine. Pass AbsentModel for applicant
// types without a trained model; rules are used for those.
func NewRiskScorer(individualModel, companyModel Model, logger *slog.Logger) *RiskScorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RiskScorer{
		individualModel: individualModel,
		companyModel:    companyModel,
		logger:          logger,
	}
}

// NewRuleBasedScorer creates an engine with no statistical models.
func NewRuleBasedScorer(logger *slog.Logger) *RiskScorer {
	return NewRiskScorer(AbsentModel, AbsentModel, logger)
}

// Score evaluates the applicant's risk. The only error condition is an
// unknown applicant type; malformed or partial features never fail.
func (s *RiskScorer) Score(applicantType valueobject.ApplicantType, features FeatureSet) (Prediction, error) {
	switch {
	case applicantType.Equal(valueobject.ApplicantIndividual):
		return s.ScoreIndividual(features), nil
	case applicantType.Equal(valueobject.ApplicantCompany):
		return s.ScoreCompany(features), nil
	default:
		return Prediction{}, fmt.Errorf("%w: %q", valueobject.ErrUnknownApplicantType, applicantType.String())
	}
}

// ScoreIndividual scores an individual applicant, preferring the trained
// model when one is loaded and usable.
func (s *RiskScorer) ScoreIndividual(features FeatureSet) Prediction {
	if pred, ok := s.tryModel(s.individualModel, IndividualVector(features)); ok {
		return pred
	}
	return s.scoreIndividualRules(features)
}

// ScoreCompany scores a company applicant, preferring the trained model
// when one is loaded and usable.
func (s *RiskScorer) ScoreCompany(features FeatureSet) Prediction {
	if pred, ok := s.tryModel(s.companyModel, CompanyVector(features)); ok {
		return pred
	}
	return s.scoreCompanyRules(features)
}

// tryModel consults the optional statistical model. Any failure is reported
// as ok=false so that the caller falls back to rules; fallback is invisible
// to the engine's callers.
func (s *RiskScorer) tryModel(model Model, vector []float64) (Prediction, bool) {
	if model.IsAbsent() {
		return Prediction{}, false
	}

	probability, ok := model.probabilityFor(vector)
	if !ok {
		s.logger.Warn("model inference failed, using rule-based scoring",
			slog.String("model_id", model.ID()),
		)
		return Prediction{}, false
	}

	return Prediction{
		Score: clampScore(probability * 100),
		Explanation: valueobject.Explanation{
			{Feature: "model", Impact: 0, Reason: "scored by ML model"},
		},
		ModelVersion: "model:" + model.ID(),
	}, true
}

// IndividualVector maps individual features to the fixed-order numeric
// vector trained models expect.
func IndividualVector(f FeatureSet) []float64 {
	income := f.Float(FeatureYearlyIncome)
	debt := f.Float(FeatureExistingDebt)
	requested := f.Float(FeatureRequestedAmount)
	collateral := f.Float(FeatureCollateralValue)
	creditScore := f.Float(FeatureCreditHistoryScore)

	criminal := 0.0
	if f.Bool(FeatureCriminalHistory) {
		criminal = 1.0
	}

	dti := 0.0
	if income != 0 {
		dti = debt / income
	}
	colReq := 0.0
	if requested != 0 {
		colReq = collateral / requested
	}

	return []float64{income, debt, requested, collateral, creditScore, criminal, dti, colReq}
}

// CompanyVector maps company features to the fixed-order numeric vector
// trained models expect.
func CompanyVector(f FeatureSet) []float64 {
	revenue := f.Float(FeatureRevenue)
	netIncome := f.Float(FeatureNetIncome)
	assets := f.Float(FeatureAssets)
	liabilities := f.Float(FeatureLiabilities)

	profitMargin := 0.0
	if revenue != 0 {
		profitMargin = netIncome / revenue
	}

	equity := math.Max(0, assets-liabilities)
	leverage := 0.0
	if equity != 0 {
		leverage = liabilities / equity
	}

	return []float64{revenue, netIncome, assets, liabilities, profitMargin, leverage}
}

// scoreIndividualRules applies the additive rule set for individuals.
// Base 50; each rule contributes independently; only the final sum is
// clamped. Explanation order is fixed regardless of which branches fire.
func (s *RiskScorer) scoreIndividualRules(f FeatureSet) Prediction {
	base := 50.0
	explanation := make(valueobject.Explanation, 0, 4)

	income := f.Float(FeatureYearlyIncome)
	debt := f.Float(FeatureExistingDebt)
	requested := f.Float(FeatureRequestedAmount)
	collateral := f.Float(FeatureCollateralValue)

	// Debt-to-income: undefined when income is zero.
	if income != 0 {
		dti := debt / income
		var impact int
		var reason string
		switch {
		case dti < 0.2:
			impact, reason = 12, fmt.Sprintf("dti=%.2f very low", dti)
		case dti < 0.5:
			impact, reason = 3, fmt.Sprintf("dti=%.2f moderate", dti)
		case dti < 1.0:
			impact, reason = -10, fmt.Sprintf("dti=%.2f high", dti)
		default:
			impact, reason = -25, fmt.Sprintf("dti=%.2f very high", dti)
		}
		base += float64(impact)
		explanation = append(explanation, valueobject.Factor{Feature: "debt_to_income", Impact: impact, Reason: reason})
	} else {
		explanation = append(explanation, valueobject.Factor{Feature: "debt_to_income", Impact: 0, Reason: "income or debt missing"})
	}

	// Collateral coverage: only meaningful for a positive requested amount.
	if requested > 0 {
		colReq := collateral / requested
		var impact int
		var reason string
		switch {
		case colReq >= 1.0:
			impact, reason = 10, fmt.Sprintf("collateral covers request (ratio=%.2f)", colReq)
		case colReq >= 0.5:
			impact, reason = 4, fmt.Sprintf("partial collateral (ratio=%.2f)", colReq)
		default:
			impact, reason = -5, fmt.Sprintf("low collateral (ratio=%.2f)", colReq)
		}
		base += float64(impact)
		explanation = append(explanation, valueobject.Factor{Feature: "collateral_to_requested", Impact: impact, Reason: reason})
	} else {
		explanation = append(explanation, valueobject.Factor{Feature: "collateral_to_requested", Impact: 0, Reason: "requested or collateral missing"})
	}

	// Credit history score: no entry at all when absent.
	if creditScore, ok := f.Int(FeatureCreditHistoryScore); ok {
		var impact int
		var reason string
		switch {
		case creditScore >= 700:
			impact, reason = 10, fmt.Sprintf("credit_score=%d excellent", creditScore)
		case creditScore >= 500:
			impact, reason = 2, fmt.Sprintf("credit_score=%d fair", creditScore)
		default:
			impact, reason = -12, fmt.Sprintf("credit_score=%d poor", creditScore)
		}
		base += float64(impact)
		explanation = append(explanation, valueobject.Factor{Feature: "credit_history_score", Impact: impact, Reason: reason})
	}

	// Criminal history: flat penalty, recorded only when set.
	if f.Bool(FeatureCriminalHistory) {
		base -= 40
		explanation = append(explanation, valueobject.Factor{Feature: "criminal_history", Impact: -40, Reason: "criminal history present"})
	}

	return Prediction{
		Score:        clampScore(base),
		Explanation:  explanation,
		ModelVersion: RuleModelVersion,
	}
}

// scoreCompanyRules applies the additive rule set for companies.
func (s *RiskScorer) scoreCompanyRules(f FeatureSet) Prediction {
	base := 50.0
	explanation := make(valueobject.Explanation, 0, 2)

	revenue := f.Float(FeatureRevenue)
	netIncome := f.Float(FeatureNetIncome)
	assets := f.Float(FeatureAssets)
	liabilities := f.Float(FeatureLiabilities)

	// Profitability: only meaningful for positive revenue.
	if revenue > 0 {
		profit := netIncome / revenue
		var impact int
		var reason string
		switch {
		case profit > 0.1:
			impact, reason = 15, fmt.Sprintf("profitability=%.2f good", profit)
		case profit > 0:
			impact, reason = 5, fmt.Sprintf("profitability=%.2f low positive", profit)
		default:
			impact, reason = -15, fmt.Sprintf("profitability=%.2f negative", profit)
		}
		base += float64(impact)
		explanation = append(explanation, valueobject.Factor{Feature: "profitability", Impact: impact, Reason: reason})
	} else {
		explanation = append(explanation, valueobject.Factor{Feature: "profitability", Impact: 0, Reason: "revenue missing or zero"})
	}

	// Leverage: the neutral 1-2 band still fires and is recorded with
	// impact 0, unlike the missing-equity entry whose reason marks it.
	equity := math.Max(0, assets-liabilities)
	if equity > 0 {
		leverage := liabilities / equity
		var impact int
		var reason string
		switch {
		case leverage < 1:
			impact, reason = 10, fmt.Sprintf("leverage=%.2f low", leverage)
		case leverage < 2:
			impact, reason = 0, fmt.Sprintf("leverage=%.2f moderate", leverage)
		default:
			impact, reason = -15, fmt.Sprintf("leverage=%.2f high", leverage)
		}
		base += float64(impact)
		explanation = append(explanation, valueobject.Factor{Feature: "leverage", Impact: impact, Reason: reason})
	} else {
		explanation = append(explanation, valueobject.Factor{Feature: "leverage", Impact: 0, Reason: "assets or liabilities missing"})
	}

	return Prediction{
		Score:        clampScore(base),
		Explanation:  explanation,
		ModelVersion: RuleModelVersion,
	}
}

// clampScore rounds to the nearest integer and bounds the result to [0,100].
// Intermediate rule arithmetic may exceed these bounds; only the final value
// is clamped.
func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
