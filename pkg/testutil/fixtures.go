package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestIndividualID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestCompanyID       = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestCreditRequestID = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestUserID          = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)
