package valueobject

import (
	"errors"
	"fmt"
)

// ErrUnknownApplicantType is returned when scoring is asked for an applicant
// type the engine does not know. Callers are expected to validate the type
// before invoking scoring.
var ErrUnknownApplicantType = errors.New("unknown applicant type")

// ApplicantType is an immutable value object identifying who a credit
// request originates from. It selects the feature schema and rule set used
// for scoring.
type ApplicantType struct {
	value string
}

var (
	ApplicantIndividual = ApplicantType{value: "individual"}
	ApplicantCompany    = ApplicantType{value: "company"}
)

// ApplicantTypeFromString reconstructs an ApplicantType from its string
// representation.
func ApplicantTypeFromString(s string) (ApplicantType, error) {
	switch s {
	case "individual":
		return ApplicantIndividual, nil
	case "company":
		return ApplicantCompany, nil
	default:
		return ApplicantType{}, fmt.Errorf("%w: %q", ErrUnknownApplicantType, s)
	}
}

// String returns the string representation.
func (a ApplicantType) String() string {
	return a.value
}

// IsZero returns true if the ApplicantType has not been set.
func (a ApplicantType) IsZero() bool {
	return a.value == ""
}

// Equal checks equality with another ApplicantType.
func (a ApplicantType) Equal(other ApplicantType) bool {
	return a.value == other.value
}
