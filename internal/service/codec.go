package service

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/gig-sync/models"
)

// Codec converts between a table's typed record and its remote document
// fields.
type Codec interface {
	Table() models.TableName
	// New returns an empty record of the table.
	New() models.Record
	Encode(rec models.Record) (json.RawMessage, error)
	// Decode parses fields into a new record. Meta is left zero.
	Decode(fields json.RawMessage) (models.Record, error)
}

type recordPtr[T any] interface {
	*T
	models.Record
}

type jsonCodec[T any, PT recordPtr[T]] struct {
	table models.TableName
}

// NewJSONCodec returns a Codec that maps fields with encoding/json and the
// record's struct tags.
func NewJSONCodec[T any, PT recordPtr[T]](table models.TableName) Codec {
	return jsonCodec[T, PT]{table: table}
}

func (c jsonCodec[T, PT]) Table() models.TableName { return c.table }

func (c jsonCodec[T, PT]) New() models.Record { return PT(new(T)) }

func (c jsonCodec[T, PT]) Encode(rec models.Record) (json.RawMessage, error) {
	if _, ok := rec.(PT); !ok {
		return nil, fmt.Errorf("%w: %T is not a %s record", ErrCodec, rec, c.table)
	}
	fields, err := rec.Fields()
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrCodec, c.table, err)
	}
	return fields, nil
}

func (c jsonCodec[T, PT]) Decode(fields json.RawMessage) (models.Record, error) {
	rec := PT(new(T))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: decode %s: empty document", ErrCodec, c.table)
	}
	if err := json.Unmarshal(fields, rec); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCodec, c.table, err)
	}
	return rec, nil
}

// Codecs is the per-table codec registry.
type Codecs map[models.TableName]Codec

// DefaultCodecs registers a codec for every synced table.
func DefaultCodecs() Codecs {
	return NewCodecs(
		NewJSONCodec[models.Event](models.TableEvents),
		NewJSONCodec[models.Offer](models.TableOffers),
		NewJSONCodec[models.Artist](models.TableArtists),
		NewJSONCodec[models.Conversation](models.TableConversations),
		NewJSONCodec[models.Message](models.TableMessages),
	)
}

func NewCodecs(codecs ...Codec) Codecs {
	registry := make(Codecs, len(codecs))
	for _, c := range codecs {
		registry[c.Table()] = c
	}
	return registry
}

func (c Codecs) Get(table models.TableName) (Codec, error) {
	codec, ok := c[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return codec, nil
}

// Canonical decodes fields with the table's codec and encodes them back,
// which validates a document and normalises its shape.
func (c Codecs) Canonical(table models.TableName, fields json.RawMessage) (json.RawMessage, error) {
	codec, err := c.Get(table)
	if err != nil {
		return nil, err
	}
	rec, err := codec.Decode(fields)
	if err != nil {
		return nil, err
	}
	return codec.Encode(rec)
}

// Hydrate turns a stored row into a typed record carrying its sync meta.
func (c Codecs) Hydrate(row models.LocalRecord) (models.Record, error) {
	codec, err := c.Get(row.Table)
	if err != nil {
		return nil, err
	}
	rec, err := codec.Decode(row.Data)
	if err != nil {
		return nil, err
	}
	*rec.Meta() = row.SyncMeta
	return rec, nil
}
