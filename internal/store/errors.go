package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when no local record matches the
	// requested table and id (or remote id).
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists is returned when inserting a local record whose id or
	// remote id is already taken.
	ErrRecordExists = errors.New("record already exists")

	// ErrQueueEntryNotFound is returned when no queue entry matches.
	ErrQueueEntryNotFound = errors.New("sync queue entry not found")

	// ErrOutstandingEntryExists is returned when inserting a second
	// Pending/Processing entry for a record.
	ErrOutstandingEntryExists = errors.New("outstanding sync queue entry already exists")

	// ErrDocumentNotFound is returned by the document repository when the
	// document does not exist or is a tombstone.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrTemporarilyUnavailable wraps database errors classified as
	// retryable.
	ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")

	// ErrInvalidFilter is returned when a query references a field name or
	// operator the query builder cannot express safely.
	ErrInvalidFilter = errors.New("invalid query filter")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
