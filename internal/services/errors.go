package services

import "errors"

// Domain outcomes returned by the services. Handlers match them with
// errors.Is and pick the HTTP status.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrUnauthorized     = errors.New("requesting user not found")
	ErrForbidden        = errors.New("requester is not an admin")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already registered")
	ErrDuplicateUser    = errors.New("username or email already registered")
	ErrUserHasFeedback  = errors.New("user still owns feedback")
)
