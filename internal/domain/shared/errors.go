package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation           = NewDomainError("VALIDATION", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENT_MODIFICATION", "Resource was modified by another process")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrOverReceipt          = NewDomainError("OVER_RECEIPT", "Received quantity exceeds outstanding quantity")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrShiftNotOpen         = NewDomainError("SHIFT_NOT_OPEN", "No open cash shift for this branch")
	ErrInternal             = NewDomainError("INTERNAL", "Internal error")
	ErrDuplicateIdempotency = NewDomainError("DUPLICATE_REQUEST", "Request with this idempotency key was already processed")
)
