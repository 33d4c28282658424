package leads

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidSortField is returned for an unknown sort column
	ErrInvalidSortField = errors.New("sort field must be one of name, email, leadsource, createdat")

	// ErrInvalidSortOrder is returned for anything other than asc/desc
	ErrInvalidSortOrder = errors.New("sort order must be asc or desc")
)

// Messages shown when the underlying failure has nothing better to say.
const (
	msgFetchFailed  = "Failed to fetch leads"
	msgCreateFailed = "Failed to create lead"
	msgDeleteFailed = "Failed to delete lead"
	msgDuplicate    = "A lead with this email already exists"
)

// ValidationError carries the per-field messages that blocked a submission.
type ValidationError struct {
	Fields ErrorMap
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, string(field))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[Field(key)]))
	}
	return "leads: invalid form: " + strings.Join(parts, "; ")
}

// DuplicateEmailError is returned when a lead with the same email already exists.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return msgDuplicate
}

// StoreError wraps a transport or query failure from the remote store.
// Message is safe to show to the user.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// newStoreError picks the transport's message, or fallback when there is none.
func newStoreError(op, fallback string, err error) *StoreError {
	msg := fallback
	var messenger interface{ UserMessage() string }
	if errors.As(err, &messenger) {
		if m := strings.TrimSpace(messenger.UserMessage()); m != "" {
			msg = m
		}
	} else if root := rootCause(err); root != nil {
		if m := strings.TrimSpace(root.Error()); m != "" {
			msg = m
		}
	}
	return &StoreError{Op: op, Message: msg, Err: err}
}

// rootCause follows single-error wrapping down to the transport's own error.
func rootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var dup *DuplicateEmailError
	if errors.As(err, &dup) {
		return dup.Error()
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return "Please fix the highlighted fields"
	}
	return err.Error()
}
