// Package encoder implements the MutationKeyEncoder façade: given a
// schema and a mutation, it produces the opaque, order-preserving byte
// string that groups and sorts mutations the way the target database
// would order the same rows.
package encoder

import (
	"encoding/binary"
	"fmt"

	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/types/enum"
	"github.com/turtacn/keysort/internal/keyenc"
	"github.com/turtacn/keysort/mutation"
	"github.com/turtacn/keysort/schema"
)

// MutationKeyEncoder is a stateless wrapper over a *schema.Schema. It
// is safe for concurrent use by many callers; each call to
// EncodeTableNameAndKey owns its own output buffer.
type MutationKeyEncoder struct {
	schema   *schema.Schema
	registry *UnknownTableRegistry
}

// Option configures a MutationKeyEncoder at construction time.
type Option func(*MutationKeyEncoder)

// WithUnknownTableRegistry injects a registry other than
// DefaultUnknownTableRegistry, avoiding a forced process-wide
// singleton for callers that want isolated counters (tests, multiple
// schemas in one process).
func WithUnknownTableRegistry(r *UnknownTableRegistry) Option {
	return func(e *MutationKeyEncoder) { e.registry = r }
}

// NewMutationKeyEncoder returns an encoder bound to s.
func NewMutationKeyEncoder(s *schema.Schema, opts ...Option) *MutationKeyEncoder {
	e := &MutationKeyEncoder{schema: s, registry: DefaultUnknownTableRegistry}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeTableNameAndKey converts m into its opaque sort key. It never
// returns an error for an unrecognized table; that case is handled by
// the unknown-table fallback and counted in the encoder's registry.
func (e *MutationKeyEncoder) EncodeTableNameAndKey(m mutation.Mutation) ([]byte, error) {
	tableName := m.TableName()

	tbl, known := e.schema.Table(tableName)
	if !known {
		e.registry.IncrementAndGet(tableName)
		w := keyenc.NewWriter()
		w.WriteFixedBytes(constants.UnknownTableGroupPrefix[:])
		w.WriteString(tableName, enum.Ascending)
		w.WriteString(m.Render(), enum.Ascending)
		return w.Bytes(), nil
	}

	idx, _ := e.schema.TableIndex(tableName)
	w := keyenc.NewWriter()
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], idx)
	w.WriteFixedBytes(idxBytes[:])

	switch mut := m.(type) {
	case *mutation.Delete:
		if err := e.encodeDelete(w, tbl, mut); err != nil {
			return nil, err
		}
	case *mutation.Write:
		if err := e.encodeWrite(w, tbl, mut); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (e *MutationKeyEncoder) encodeDelete(w *keyenc.Writer, tbl *schema.Table, d *mutation.Delete) error {
	if d.KeySet.Kind != enum.KeySetPoints {
		// All and Ranges group before every point delete and write on
		// this table: nothing more to emit after the table prefix.
		return nil
	}
	if len(d.KeySet.Keys) != 1 {
		return errors.New(errors.CategoryEncode, errors.CodeUnsupported,
			"multi-point deletes are not supported", nil)
	}
	return e.encodeKeyParts(w, tbl, d.KeySet.Keys[0])
}

func (e *MutationKeyEncoder) encodeWrite(w *keyenc.Writer, tbl *schema.Table, wr *mutation.Write) error {
	dialect := e.schema.Dialect()
	for _, kp := range tbl.KeyParts {
		dir := enum.Ascending
		if kp.Descending {
			dir = enum.Descending
		}
		v, present := wr.ColumnValues[kp.Column]
		if !present {
			v = mutation.UnsetValue()
		}
		col := tbl.Columns[kp.Column]
		if err := keyenc.EncodeScalar(w, col.Type, dialect, v, dir); err != nil {
			return err
		}
	}
	return nil
}

func (e *MutationKeyEncoder) encodeKeyParts(w *keyenc.Writer, tbl *schema.Table, key mutation.Key) error {
	if len(key) != len(tbl.KeyParts) {
		return errors.New(errors.CategoryEncode, errors.CodeTypeMismatch,
			fmt.Sprintf("table %q declares %d key parts, delete key has %d", tbl.Name, len(tbl.KeyParts), len(key)), nil)
	}
	dialect := e.schema.Dialect()
	for i, kp := range tbl.KeyParts {
		dir := enum.Ascending
		if kp.Descending {
			dir = enum.Descending
		}
		col := tbl.Columns[kp.Column]
		if err := keyenc.EncodeScalar(w, col.Type, dialect, key[i], dir); err != nil {
			return err
		}
	}
	return nil
}
