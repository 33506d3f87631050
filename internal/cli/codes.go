package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/store"
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // Input file could not be read
	ErrCodeParseFailed = "E003" // Input file is not valid JSON, JSON Lines or YAML
	ErrCodeSchema      = "E004" // CUE schema could not be loaded or compiled
	ErrCodeNotFound    = "E005" // Column or file not found
	ErrCodeStore       = "E006" // Store could not be opened or queried
	ErrCodeCorrupt     = "E007" // Stored column failed its digest check
	ErrCodeBadArgs     = "E008" // Invalid flag or argument combination
)

// Error codes for array contract failures.
const (
	ErrCodeTypeMismatch    = "E101"
	ErrCodeIndexOutOfRange = "E102"
	ErrCodeEmptyTake       = "E103"
	ErrCodeDtypeParse      = "E104"
	ErrCodeInvalidIndexer  = "E105"
)

// ErrCodeValidation is reported when elements fail schema validation.
const ErrCodeValidation = "E110"

var contractCodes = map[extension.ErrorCode]string{
	extension.ErrCodeTypeMismatch:    ErrCodeTypeMismatch,
	extension.ErrCodeIndexOutOfRange: ErrCodeIndexOutOfRange,
	extension.ErrCodeEmptyTake:       ErrCodeEmptyTake,
	extension.ErrCodeDtypeParse:      ErrCodeDtypeParse,
	extension.ErrCodeInvalidIndexer:  ErrCodeInvalidIndexer,
}

// MapErrorToCode picks the response code for err. Contract errors take
// precedence over the store error they may be wrapped in.
func MapErrorToCode(err error) string {
	if code, ok := contractCodes[extension.CodeOf(err)]; ok {
		return code
	}
	switch {
	case errors.Is(err, store.ErrColumnNotFound), errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, store.ErrDigestMismatch):
		return ErrCodeCorrupt
	case errors.Is(err, store.ErrInvalidName):
		return ErrCodeBadArgs
	}
	return ErrCodeGeneric
}

// exitCodeFor reports contract failures as ExitFailure and everything else
// as ExitCommandError.
func exitCodeFor(code string) int {
	switch code {
	case ErrCodeTypeMismatch, ErrCodeIndexOutOfRange, ErrCodeEmptyTake,
		ErrCodeDtypeParse, ErrCodeInvalidIndexer, ErrCodeValidation:
		return ExitFailure
	}
	return ExitCommandError
}

// fail reports err through f and returns the matching ExitError.
func fail(f *OutputFormatter, code string, err error) error {
	if code == "" {
		code = MapErrorToCode(err)
	}
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exitCodeFor(code), code, err)
}
