// Package errors provides structured error handling for resultsmcp.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Parse errors (malformed records)
//   - 3XX: Fetch errors (external catalog)
//   - 4XX: Validation errors (caller arguments)
//   - 5XX: Internal errors
//   - 6XX: Not-found errors
//   - 7XX: Consistency errors (dangling entity references)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryParse indicates a malformed tournament record.
	CategoryParse Category = "PARSE"
	// CategoryFetch indicates an external catalog fetch failure.
	CategoryFetch Category = "FETCH"
	// CategoryValidation indicates malformed caller arguments.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
	// CategoryNotFound indicates a missing tournament, team, event or placement.
	CategoryNotFound Category = "NOT_FOUND"
	// CategoryConsistency indicates dangling references between entities.
	CategoryConsistency Category = "CONSISTENCY"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Parse errors (200-299)
	ErrCodeRecordMalformed = "ERR_201_RECORD_MALFORMED"
	ErrCodeFieldMissing    = "ERR_202_FIELD_MISSING"
	ErrCodeFieldInvalid    = "ERR_203_FIELD_INVALID"

	// Fetch errors (300-399)
	ErrCodeCatalogUnreachable = "ERR_301_CATALOG_UNREACHABLE"
	ErrCodeCatalogMalformed   = "ERR_302_CATALOG_MALFORMED"

	// Validation errors (400-499)
	ErrCodeInvalidArgument = "ERR_401_INVALID_ARGUMENT"
	ErrCodeQueryEmpty      = "ERR_402_QUERY_EMPTY"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"

	// Not-found errors (600-699)
	ErrCodeTournamentNotFound = "ERR_601_TOURNAMENT_NOT_FOUND"
	ErrCodeTeamNotFound       = "ERR_602_TEAM_NOT_FOUND"
	ErrCodeEventNotFound      = "ERR_603_EVENT_NOT_FOUND"
	ErrCodePlacementNotFound  = "ERR_604_PLACEMENT_NOT_FOUND"

	// Consistency errors (700-799)
	ErrCodeDanglingTeam  = "ERR_701_DANGLING_TEAM"
	ErrCodeDanglingEvent = "ERR_702_DANGLING_EVENT"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryParse
	case '3':
		return CategoryFetch
	case '4':
		return CategoryValidation
	case '6':
		return CategoryNotFound
	case '7':
		return CategoryConsistency
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Config errors abort startup; everything else fails a single request.
func severityFromCode(code string) Severity {
	if categoryFromCode(code) == CategoryConfig {
		return SeverityFatal
	}
	return SeverityError
}

// isRetryableCode reports whether the operation behind the code may be retried.
// Only catalog fetches are transient; records on disk do not fix themselves.
func isRetryableCode(code string) bool {
	return categoryFromCode(code) == CategoryFetch
}
