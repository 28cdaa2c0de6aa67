package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEmployeeNotFound = errors.New("roster: employee not found")
	ErrInvalidID        = errors.New("roster: invalid id")
)

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "roster: invalid fields (" + strings.Join(parts, "; ") + ")"
}

// AsFieldErrors unwraps err into FieldErrors when it carries them.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
