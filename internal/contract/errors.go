package contract

import "strings"

type RequestErrorCode string

const (
	ErrMissingStudentID RequestErrorCode = "MISSING_STUDENT_ID"
	ErrEmptyMessage     RequestErrorCode = "EMPTY_MESSAGE"
)

// RequestError reports caller input the coach refuses to act on.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ValidateStudentID rejects blank ids.
func ValidateStudentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &RequestError{Code: ErrMissingStudentID, Message: "student id is required"}
	}
	return nil
}

// ValidateMessage rejects blank chat messages.
func ValidateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return &RequestError{Code: ErrEmptyMessage, Message: "message must not be empty"}
	}
	return nil
}
