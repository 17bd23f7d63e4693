package handlers

// Stable error codes carried in ErrorResponse.Code. Clients branch on
// these, so changing a value is a breaking API change. The first group
// mirrors plain HTTP semantics; the second names failures specific to the
// registry and match flows where the status alone is too coarse.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeCascadeFailed    = "cascade_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
