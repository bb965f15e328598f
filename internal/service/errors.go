package service

import "errors"

var (
	ErrOffline         = errors.New("remote store is unreachable")
	ErrSyncInProgress  = errors.New("sync pass already running")
	ErrPassInProgress  = errors.New("queue processing pass already running")
	ErrRemoteIDMissing = errors.New("remote id is not known yet")

	ErrUnknownTable     = errors.New("unknown table")
	ErrCodec            = errors.New("record codec error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrRecordDeleted    = errors.New("record is deleted")
	ErrMissingRecordID  = errors.New("record id is required")
	ErrEntryNotFailed   = errors.New("queue entry is not failed")
	ErrEntrySuperseded  = errors.New("a newer queue entry exists for the record")

	ErrNoUserID                = errors.New("no user id")
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrUnknownCollection       = errors.New("unknown collection")
	ErrInvalidQuery            = errors.New("invalid query")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrDatabaseUnavailable     = errors.New("database unavailable")
)
