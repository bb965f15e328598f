package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/MKhiriev/gig-sync/models"
)

// Field names accepted by Validate.
const (
	FieldCollection = "collection"
	FieldClientID   = "client_id"
	FieldFields     = "fields"
	FieldFilters    = "filters"
	FieldOrderBy    = "order_by"
	FieldLimit      = "limit"
)

// MaxQueryLimit caps the page size of a document query.
const MaxQueryLimit = 1000

// identRe matches document field names the store can address.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedKeys are document attributes owned by the server.
var reservedKeys = []string{"id", "clientId", models.FieldUpdatedAt, "deleted"}

// DocumentValidator validates document API input: collections, insert and
// update bodies and queries.
type DocumentValidator struct{}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.TableName, models.InsertRequest, models.UpdateRequest and
// models.Query, by value or pointer.
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TableName:
		return v.validateCollection(value)
	case *models.TableName:
		return v.validateCollection(*value)

	case models.InsertRequest:
		return v.validateInsertRequest(value, fields...)
	case *models.InsertRequest:
		return v.validateInsertRequest(*value, fields...)

	case models.UpdateRequest:
		return v.validateUpdateRequest(value, fields...)
	case *models.UpdateRequest:
		return v.validateUpdateRequest(*value, fields...)

	case models.Query:
		return v.validateQuery(value, fields...)
	case *models.Query:
		return v.validateQuery(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateCollection(collection models.TableName) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}

func (v *DocumentValidator) validateInsertRequest(req models.InsertRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientID, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldClientID:
			if len(req.ClientID) > 128 {
				return ErrInvalidClientID
			}
		case FieldFields:
			if err := validateFields(req.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *DocumentValidator) validateUpdateRequest(req models.UpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldFields:
			if err := validateFields(req.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *DocumentValidator) validateQuery(q models.Query, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFilters, FieldOrderBy, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldFilters:
			for _, filter := range q.Filters {
				if !identRe.MatchString(filter.Field) {
					return fmt.Errorf("%w: field %q", ErrInvalidFilter, filter.Field)
				}
				if !filter.Op.Valid() {
					return fmt.Errorf("%w: operator %q", ErrInvalidFilter, filter.Op)
				}
				if filter.Value == nil {
					return fmt.Errorf("%w: %s needs a value", ErrInvalidFilter, filter.Field)
				}
			}
		case FieldOrderBy:
			if q.OrderBy != "" && !identRe.MatchString(q.OrderBy) {
				return fmt.Errorf("%w: %q", ErrInvalidOrderBy, q.OrderBy)
			}
		case FieldLimit:
			if q.Limit < 0 || q.Limit > MaxQueryLimit {
				return fmt.Errorf("%w: %d", ErrInvalidLimit, q.Limit)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateFields checks that raw is a JSON object without server-owned keys.
func validateFields(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyFields
	}
	if trimmed[0] != '{' {
		return ErrFieldsNotObject
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return fmt.Errorf("%w: %w", ErrFieldsNotObject, err)
	}
	for _, key := range reservedKeys {
		if _, ok := object[key]; ok {
			return fmt.Errorf("%w: %q", ErrReservedField, key)
		}
	}
	return nil
}
