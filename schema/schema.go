// Package schema holds the in-memory representation of the tables,
// columns, and key parts a MutationKeyEncoder needs: which columns
// exist, what type each one is, and in what order (and direction) the
// primary key columns are declared. A Schema is built once via
// SchemaBuilder and is read-only afterward.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/types/enum"
)

// Column is one declared column of a Table.
type Column struct {
	Name    string
	Type    enum.ColumnType
	Dialect enum.Dialect
}

// KeyPart is one column of a Table's declared primary key, in
// declaration order, with its sort direction.
type KeyPart struct {
	Column     string
	Descending bool
}

// Table is the full set of known columns plus the ordered key parts
// for one database table.
type Table struct {
	Name     string
	Columns  map[string]Column
	KeyParts []KeyPart
}

// Schema is an immutable, built collection of Tables plus the
// deterministic table-name ordering index.
type Schema struct {
	dialect enum.Dialect
	tables  map[string]*Table
	index   map[string]uint32
}

// Dialect returns the SQL dialect this schema was built for.
func (s *Schema) Dialect() enum.Dialect { return s.dialect }

// Table returns the named table, or false if it is not known.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// TableIndex returns the table's 0-based position in Unicode-codepoint
// name order, or false if the table is unknown.
func (s *Schema) TableIndex(name string) (uint32, bool) {
	idx, ok := s.index[name]
	return idx, ok
}

// TableNames returns every known table name, ordered by table index.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.index))
	for name, idx := range s.index {
		names[idx] = name
	}
	return names
}

type tableDraft struct {
	columns  map[string]Column
	keyParts []KeyPart
	// duplicates records, in detection order, every column name seen
	// more than once via AddColumn.
	duplicates []string
}

// SchemaBuilder accumulates column and key-part declarations before
// producing an immutable Schema.
type SchemaBuilder struct {
	dialect enum.Dialect
	tables  map[string]*tableDraft
	// order preserves first-seen table insertion order for error
	// messages; it does not affect the built table ordering index,
	// which is always name-sorted.
	order []string
}

// NewSchemaBuilder returns a builder for dialect. The zero value of
// enum.Dialect is GoogleStandardSql, so an unspecified dialect
// defaults to it.
func NewSchemaBuilder(dialect enum.Dialect) *SchemaBuilder {
	return &SchemaBuilder{
		dialect: dialect,
		tables:  make(map[string]*tableDraft),
	}
}

func (b *SchemaBuilder) draft(table string) *tableDraft {
	d, ok := b.tables[table]
	if !ok {
		d = &tableDraft{columns: make(map[string]Column)}
		b.tables[table] = d
		b.order = append(b.order, table)
	}
	return d
}

// AddColumn declares a column's type on a table, creating the table
// draft on first reference. typeString is matched case-insensitively
// against both dialects' type spellings; building fails if it matches
// none of them. A second AddColumn call for the same (table, column)
// pair, even with an identical type, fails at Build time with
// CodeDuplicateColumn. Returns b for chaining.
func (b *SchemaBuilder) AddColumn(table, column, typeString string) *SchemaBuilder {
	d := b.draft(table)
	if _, exists := d.columns[column]; exists {
		d.duplicates = append(d.duplicates, column)
	}
	d.columns[column] = Column{
		Name:    column,
		Type:    resolveColumnType(typeString, b.dialect),
		Dialect: b.dialect,
	}
	return b
}

// AddKeyPart declares that column is the next key part of table, in
// the given direction. Order across calls is significant and is
// preserved in Table.KeyParts. Returns b for chaining.
func (b *SchemaBuilder) AddKeyPart(table, column string, descending bool) *SchemaBuilder {
	d := b.draft(table)
	d.keyParts = append(d.keyParts, KeyPart{Column: column, Descending: descending})
	return b
}

// Build validates every declared table and produces an immutable
// Schema, including the table-name ordering index.
func (b *SchemaBuilder) Build() (*Schema, error) {
	tables := make(map[string]*Table, len(b.tables))
	for _, name := range b.order {
		d := b.tables[name]
		if len(d.duplicates) > 0 {
			return nil, DuplicateColumnError(name, d.duplicates[0])
		}
		for _, kp := range d.keyParts {
			col, ok := d.columns[kp.Column]
			if !ok {
				return nil, errors.New(errors.CategorySchema, errors.CodeUnknownKeyColumn,
					fmt.Sprintf("table %q declares key part %q with no matching column", name, kp.Column), nil)
			}
			if col.Type == -1 {
				return nil, errors.New(errors.CategorySchema, errors.CodeUnknownTypeString,
					fmt.Sprintf("table %q column %q has an unrecognized type string", name, kp.Column), nil)
			}
		}
		for colName, col := range d.columns {
			if col.Type == -1 {
				return nil, errors.New(errors.CategorySchema, errors.CodeUnknownTypeString,
					fmt.Sprintf("table %q column %q has an unrecognized type string", name, colName), nil)
			}
		}
		tables[name] = &Table{Name: name, Columns: d.columns, KeyParts: d.keyParts}
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	index := make(map[string]uint32, len(names))
	for i, name := range names {
		index[name] = uint32(i)
	}

	return &Schema{dialect: b.dialect, tables: tables, index: index}, nil
}

// DuplicateColumnError reports that table declares column more than
// once. Build returns this directly; it is exported so callers that
// detect the same condition earlier (e.g. while parsing a file format
// that lists columns before they ever reach AddColumn) can raise it
// with the same Category/Code.
func DuplicateColumnError(table, column string) error {
	return errors.New(errors.CategorySchema, errors.CodeDuplicateColumn,
		fmt.Sprintf("table %q declares column %q more than once", table, column), nil)
}

func resolveColumnType(s string, dialect enum.Dialect) enum.ColumnType {
	t, ok := typeStringTable[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return -1
	}
	if t == enum.Numeric && dialect == enum.PostgreSql {
		return enum.PgNumeric
	}
	return t
}

var typeStringTable = map[string]enum.ColumnType{
	"bool":                        enum.Bool,
	"boolean":                     enum.Bool,
	"int64":                       enum.Int64,
	"bigint":                      enum.Int64,
	"float64":                     enum.Float64,
	"double precision":            enum.Float64,
	"string":                      enum.String,
	"character varying":           enum.String,
	"varchar":                     enum.String,
	"text":                        enum.String,
	"bytes":                       enum.Bytes,
	"bytea":                       enum.Bytes,
	"date":                        enum.Date,
	"timestamp":                   enum.Timestamp,
	"timestamp with time zone":    enum.Timestamp,
	"timestamptz":                 enum.Timestamp,
	"numeric":                     enum.Numeric,
	"decimal":                     enum.Numeric,
	"json":                        enum.Json,
	"jsonb":                       enum.Json,
}
