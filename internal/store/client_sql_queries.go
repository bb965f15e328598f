// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/gig-sync/models"
)

// SyncQueueTable is the change feed topic of queue writes.
const SyncQueueTable = "sync_queue"

const watermarksTable = "sync_watermarks"

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var recordColumns = []string{
	"id", "remote_id", "data", "updated_at", "synced_at", "remote_version", "is_dirty", "deleted",
}

var queueColumns = []string{
	"id", "table_name", "local_record_id", "remote_id", "operation", "payload",
	"created_at", "last_attempt_at", "attempts", "last_error", "status",
}

// identRe restricts field names that are spliced into JSON paths.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// recordMetaColumns maps sync bookkeeping field names to their columns.
var recordMetaColumns = map[string]string{
	"id":        "id",
	"remoteId":  "remote_id",
	"updatedAt": "updated_at",
	"syncedAt":  "synced_at",
	"isDirty":   "is_dirty",
}

func recordTable(table models.TableName) (string, error) {
	if !table.Valid() {
		return "", fmt.Errorf("%w: unknown table %q", ErrInvalidFilter, table)
	}
	return table.String(), nil
}

// recordFieldExpr returns the SQL expression of a record field: a column for
// bookkeeping fields, json_extract over data otherwise.
func recordFieldExpr(field string) (expr string, meta bool, err error) {
	if col, ok := recordMetaColumns[field]; ok {
		return col, true, nil
	}
	if !identRe.MatchString(field) {
		return "", false, fmt.Errorf("%w: field %q", ErrInvalidFilter, field)
	}
	return fmt.Sprintf("json_extract(data, '$.%s')", field), false, nil
}

// sqliteValue converts a filter value to what the column or json_extract
// yields in SQLite.
func sqliteValue(v any, meta bool) any {
	switch val := v.(type) {
	case time.Time:
		if meta {
			return toNanos(val)
		}
		return val.Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return nil
		}
		return sqliteValue(*val, meta)
	case bool:
		return boolToInt(val)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

func sqliteList(v any, meta bool) ([]any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: 'in' needs a list value", ErrInvalidFilter)
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, sqliteValue(rv.Index(i).Interface(), meta))
	}
	return out, nil
}

func recordFilter(f models.Filter) (sq.Sqlizer, error) {
	expr, meta, err := recordFieldExpr(f.Field)
	if err != nil {
		return nil, err
	}

	switch f.Op {
	case models.OpEqual:
		return sq.Eq{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpNotEqual:
		return sq.NotEq{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpLess:
		return sq.Lt{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpLessEqual:
		return sq.LtOrEq{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpGreater:
		return sq.Gt{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpGreaterEqual:
		return sq.GtOrEq{expr: sqliteValue(f.Value, meta)}, nil
	case models.OpIn:
		values, err := sqliteList(f.Value, meta)
		if err != nil {
			return nil, err
		}
		return sq.Eq{expr: values}, nil
	case models.OpArrayContains:
		if meta {
			return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidFilter, f.Field)
		}
		return sq.Expr(
			fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(data, '$.%s') WHERE json_each.value = ?)", f.Field),
			sqliteValue(f.Value, false),
		), nil
	}

	return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
}

func applyRecordQuery(b sq.SelectBuilder, q models.RecordQuery) (sq.SelectBuilder, error) {
	if !q.IncludeDeleted {
		b = b.Where(sq.Eq{"deleted": 0})
	}
	for _, f := range q.Filters {
		cond, err := recordFilter(f)
		if err != nil {
			return b, err
		}
		b = b.Where(cond)
	}
	return b, nil
}

func buildRecordSelect(table models.TableName, q models.RecordQuery) (string, []any, error) {
	name, err := recordTable(table)
	if err != nil {
		return "", nil, err
	}

	b, err := applyRecordQuery(sqlite.Select(recordColumns...).From(name), q)
	if err != nil {
		return "", nil, err
	}

	orderBy := "updated_at"
	if q.OrderBy != "" {
		if orderBy, _, err = recordFieldExpr(q.OrderBy); err != nil {
			return "", nil, err
		}
	}
	direction := " ASC"
	if q.Descending {
		direction = " DESC"
	}
	b = b.OrderBy(orderBy+direction, "id"+direction)

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	return b.ToSql()
}

func buildRecordCount(table models.TableName, q models.RecordQuery) (string, []any, error) {
	name, err := recordTable(table)
	if err != nil {
		return "", nil, err
	}

	b, err := applyRecordQuery(sqlite.Select("COUNT(*)").From(name), q)
	if err != nil {
		return "", nil, err
	}
	return b.ToSql()
}

func buildQueueList(filter models.QueueFilter) (string, []any, error) {
	b := sqlite.Select(queueColumns...).From(SyncQueueTable)

	if filter.TableName != "" {
		b = b.Where(sq.Eq{"table_name": filter.TableName.String()})
	}
	if filter.LocalRecordID != "" {
		b = b.Where(sq.Eq{"local_record_id": filter.LocalRecordID})
	}
	if len(filter.Statuses) > 0 {
		b = b.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}

	b = b.OrderBy("created_at ASC", "id ASC")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	return b.ToSql()
}

func statusStrings(statuses []models.QueueStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
