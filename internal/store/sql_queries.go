package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/gig-sync/models"
)

var postgres = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var documentColumns = []string{"id", "client_id", "fields", "updated_at", "deleted"}

const (
	insertDocument = `
		INSERT INTO documents (collection, id, client_id, owner_id, fields)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, client_id) DO UPDATE SET client_id = EXCLUDED.client_id
		RETURNING id, client_id, fields, updated_at, deleted;`

	patchDocument = `
		UPDATE documents
		SET fields = fields || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2 AND deleted = FALSE
		RETURNING id, client_id, fields, updated_at, deleted;`

	deleteDocument = `
		UPDATE documents
		SET deleted = TRUE, updated_at = NOW()
		WHERE collection = $1 AND id = $2 AND deleted = FALSE;`
)

// documentFilter translates a filter into a predicate over the JSONB body.
// Values are compared as jsonb, so numbers compare numerically and strings
// lexically. The reserved updatedAt field targets the updated_at column.
func documentFilter(f models.Filter) (sq.Sqlizer, error) {
	if f.Field == models.FieldUpdatedAt {
		return updatedAtFilter(f)
	}
	if !identRe.MatchString(f.Field) {
		return nil, fmt.Errorf("%w: field %q", ErrInvalidFilter, f.Field)
	}

	if f.Op == models.OpIn {
		values, err := jsonList(f.Value)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return sq.Expr("FALSE"), nil
		}
		or := sq.Or{}
		for _, v := range values {
			or = append(or, sq.Expr("fields -> ?::text = ?::jsonb", f.Field, v))
		}
		return or, nil
	}

	value := f.Value
	if f.Op == models.OpArrayContains {
		value = []any{f.Value}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	switch f.Op {
	case models.OpEqual:
		return sq.Expr("fields -> ?::text = ?::jsonb", f.Field, string(encoded)), nil
	case models.OpNotEqual:
		return sq.Expr("fields -> ?::text IS DISTINCT FROM ?::jsonb", f.Field, string(encoded)), nil
	case models.OpLess, models.OpLessEqual, models.OpGreater, models.OpGreaterEqual:
		return sq.Expr(fmt.Sprintf("fields -> ?::text %s ?::jsonb", f.Op), f.Field, string(encoded)), nil
	case models.OpArrayContains:
		return sq.Expr("fields -> ?::text @> ?::jsonb", f.Field, string(encoded)), nil
	}

	return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
}

func updatedAtFilter(f models.Filter) (sq.Sqlizer, error) {
	t, err := filterTime(f.Value)
	if err != nil {
		return nil, err
	}

	switch f.Op {
	case models.OpEqual:
		return sq.Eq{"updated_at": t}, nil
	case models.OpNotEqual:
		return sq.NotEq{"updated_at": t}, nil
	case models.OpLess:
		return sq.Lt{"updated_at": t}, nil
	case models.OpLessEqual:
		return sq.LtOrEq{"updated_at": t}, nil
	case models.OpGreater:
		return sq.Gt{"updated_at": t}, nil
	case models.OpGreaterEqual:
		return sq.GtOrEq{"updated_at": t}, nil
	}

	return nil, fmt.Errorf("%w: operator %q on %s", ErrInvalidFilter, f.Op, models.FieldUpdatedAt)
}

// filterTime accepts a time.Time or an RFC 3339 string, which is what a
// filter value decoded from JSON holds.
func filterTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val != nil {
			return *val, nil
		}
	case string:
		t, err := time.Parse(time.RFC3339Nano, val)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s needs a timestamp", ErrInvalidFilter, models.FieldUpdatedAt)
}

func jsonList(v any) ([]string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: 'in' needs a list value", ErrInvalidFilter)
	}

	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		encoded, err := json.Marshal(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		out = append(out, string(encoded))
	}
	return out, nil
}

func buildDocumentQuery(collection string, q models.Query) (string, []any, error) {
	b := postgres.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"collection": collection})

	for _, f := range q.Filters {
		cond, err := documentFilter(f)
		if err != nil {
			return "", nil, err
		}
		b = b.Where(cond)
	}

	direction := " ASC"
	if q.Descending {
		direction = " DESC"
	}
	switch {
	case q.OrderBy == "" || q.OrderBy == models.FieldUpdatedAt:
		b = b.OrderBy("updated_at"+direction, "id"+direction)
	case identRe.MatchString(q.OrderBy):
		b = b.OrderBy(fmt.Sprintf("fields -> '%s'%s", q.OrderBy, direction), "id"+direction)
	default:
		return "", nil, fmt.Errorf("%w: order by %q", ErrInvalidFilter, q.OrderBy)
	}

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	return b.ToSql()
}
