package notification

import "fmt"

// ValidationError signals a missing required field on emit or broadcast.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NotFoundError is returned when a notification does not exist or is not
// owned by the calling user. The message never distinguishes the two, so
// ownership is not observable through probing.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return "notification not found: " + e.ID
}

// ForbiddenError signals that the actor lacks the role an operation needs.
type ForbiddenError struct {
	ActorID string
}

func (e ForbiddenError) Error() string {
	return "actor " + e.ActorID + " is not allowed to broadcast announcements"
}
