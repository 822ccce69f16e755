package valueobject

// Factor is one named contribution to a risk score: a signed impact plus a
// human-readable reason. Impact 0 is used both for neutral bands that fired
// and for rules skipped on missing data; the reason string distinguishes
// the two.
type Factor struct {
	Feature string `json:"feature"`
	Impact  int    `json:"impact"`
	Reason  string `json:"reason"`
}

// Explanation is the ordered list of factors behind a prediction. Order
// follows rule evaluation order and is reproducible for identical inputs.
type Explanation []Factor

// TotalImpact sums the signed impacts of all factors.
func (e Explanation) TotalImpact() int {
	total := 0
	for _, f := range e {
		total += f.Impact
	}
	return total
}

// Clone returns a copy so that callers cannot mutate a stored explanation.
func (e Explanation) Clone() Explanation {
	if e == nil {
		return nil
	}
	out := make(Explanation, len(e))
	copy(out, e)
	return out
}
