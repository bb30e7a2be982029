package qualify

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrLogicalError is returned by the select pass when a table name does
	// not have exactly a database and a table component after
	// qualification. It means the tree is malformed and the statement must
	// not be executed.
	ErrLogicalError = errors.NewKind("logical error: table expression %s has %d name components, expected 2")

	// ErrEmptyDatabase is returned by NewStrict when no default database is
	// given.
	ErrEmptyDatabase = errors.NewKind("default database is empty")
)
