package repos

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound covers missing accounts, products and tokens.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is the conflict-class failure for the unique email
	// invariant, enforced by the store so concurrent registrations cannot race.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrSellerRequired is raised by the store when a product insert carries no
	// valid seller reference.
	ErrSellerRequired = errors.New("product requires an existing seller")
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
