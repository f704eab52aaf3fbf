package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadID means the identifier is malformed. It never reaches the store.
	ErrBadID = errors.New("invalid card id")

	// ErrDuplicateName means a card with the exact same cardName exists.
	ErrDuplicateName = errors.New("card with this name already exists")

	// ErrNoChange means an update supplied no fields, or changed nothing.
	ErrNoChange = errors.New("no card data was changed")

	// ErrBadQuery means a query parameter failed validation at the boundary.
	ErrBadQuery = errors.New("invalid query parameter")
)

// NotFoundError reports a valid name or id with no matching record. For
// name resolution it carries up to 5 suggested card names.
type NotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no credit card found for %q", e.Query)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean: %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
