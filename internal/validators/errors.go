package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidCollection = errors.New("invalid collection")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrEmptyFields       = errors.New("fields are required")
	ErrFieldsNotObject   = errors.New("fields must be a JSON object")
	ErrReservedField     = errors.New("fields must not contain reserved keys")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidOrderBy    = errors.New("invalid order by field")
	ErrInvalidLimit      = errors.New("invalid limit")
)
