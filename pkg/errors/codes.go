package errors

// ErrorCode identifies a specific failure category.  Codes are stable strings
// so they can appear unchanged in logs and reports across releases.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	CodeUnknown       ErrorCode = "COMMON_000"
	CodeInternal      ErrorCode = "COMMON_001"
	CodeInvalidParam  ErrorCode = "COMMON_002"
	CodeNotFound      ErrorCode = "COMMON_003"
	CodeConflict      ErrorCode = "COMMON_004"
	CodeValidation    ErrorCode = "COMMON_005"
	CodeSerialization ErrorCode = "COMMON_006"
	CodeIO            ErrorCode = "COMMON_007"

	// CodeOK is a sentinel returned by GetCode for nil errors.
	CodeOK ErrorCode = "OK"
)

// Pipeline error codes
const (
	// CodeStageAlreadyRun signals a second Run() call on a one-shot stage.
	// Stages perform non-idempotent I/O; re-running would corrupt outputs.
	CodeStageAlreadyRun ErrorCode = "PIPE_001"
)

// Property-store error codes
const (
	// CodePropsKeyMissing signals a lookup on a molecule that was never
	// assigned a property key.
	CodePropsKeyMissing ErrorCode = "PROPS_001"

	// CodePropsKeyRange signals a property key outside the store's bounds,
	// which means the molecule/store pairing is broken.
	CodePropsKeyRange ErrorCode = "PROPS_002"
)

// Fingerprint error codes
const (
	// CodeFingerprintBonds signals a fingerprint construction attempt on a
	// nitrogen site that does not have exactly three neighbor bonds.
	CodeFingerprintBonds ErrorCode = "FP_001"
)

// Selection error codes
const (
	// CodeOutputExists signals that a selector output location already
	// exists; proceeding would mix molecules from different runs.
	CodeOutputExists ErrorCode = "SEL_001"

	// CodePairMismatch signals an input list that cannot be split into
	// (molecule dump, property blob) pairs.
	CodePairMismatch ErrorCode = "SEL_002"
)

// Chemistry-engine error codes
const (
	// CodeChargeNotConverged signals that the engine's partial-charge
	// computation failed its convergence check for a molecule.
	CodeChargeNotConverged ErrorCode = "CHEM_001"
)
