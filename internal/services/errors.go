package services

import "errors"

const (
	CodeValidation    = "VALIDATION"
	CodeAuthorization = "AUTHORIZATION"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodePrecondition  = "PRECONDITION"
	CodeNotFound      = "NOT_FOUND"
	CodeDelivery      = "DELIVERY"
)

// Error is a domain failure carrying a code the HTTP layer maps to a status.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// Is matches by code when target has no message, so the category sentinels
// below match every error of their kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Message == "" {
		return e.Code == t.Code
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrValidation    = &Error{Code: CodeValidation}
	ErrAuthorization = &Error{Code: CodeAuthorization}
	ErrUnauthorized  = &Error{Code: CodeUnauthorized}
	ErrPrecondition  = &Error{Code: CodePrecondition}
	ErrNotFound      = &Error{Code: CodeNotFound}
	ErrDelivery      = &Error{Code: CodeDelivery}
)

var (
	ErrInvalidEmail  = &Error{Code: CodeValidation, Message: "invalid email"}
	ErrInvalidRole   = &Error{Code: CodeValidation, Message: "invalid role"}
	ErrInvalidStatus = &Error{Code: CodeValidation, Message: "invalid status"}
	ErrInvalidLimit  = &Error{Code: CodeValidation, Message: "limit must be between 1 and 100"}
	ErrInvalidCursor = &Error{Code: CodeValidation, Message: "invalid cursor"}
	ErrInvalidSecret = &Error{Code: CodeValidation, Message: "secret value is required"}

	ErrPlatformRequired = &Error{Code: CodePrecondition, Message: "platform id is required"}

	ErrPlatformNotFound  = &Error{Code: CodeAuthorization, Message: "platform not found"}
	ErrPlatformNotOwned  = &Error{Code: CodeAuthorization, Message: "platform is not owned by the current user"}
	ErrEmbeddingDisabled = &Error{Code: CodeAuthorization, Message: "embedding is not enabled for this platform"}

	ErrInvitationDenied = &Error{Code: CodeUnauthorized, Message: "invitation denied"}

	ErrMemberNotFound = &Error{Code: CodeNotFound, Message: "project member not found"}
	ErrUserNotFound   = &Error{Code: CodeNotFound, Message: "user not found"}

	ErrInvitationDelivery = &Error{Code: CodeDelivery, Message: "failed to deliver invitation"}
)

var (
	ErrConnectionNameRequired = &Error{Code: CodeValidation, Message: "name is required"}
	ErrConnectionNameInvalid  = &Error{Code: CodeValidation, Message: "name may only contain letters, digits and underscores"}
	ErrAppNameRequired        = &Error{Code: CodeValidation, Message: "app_name is required"}
	ErrConnectionTypeInvalid  = &Error{Code: CodeValidation, Message: "unsupported connection type"}
)
