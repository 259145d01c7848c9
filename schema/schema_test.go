package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/types/enum"
)

func TestSchemaBuilderBuildsTableIndexInNameOrder(t *testing.T) {
	b := NewSchemaBuilder(enum.GoogleStandardSql)
	b.AddColumn("zebra", "id", "INT64")
	b.AddKeyPart("zebra", "id", false)
	b.AddColumn("apple", "id", "INT64")
	b.AddKeyPart("apple", "id", false)
	b.AddColumn("mango", "id", "INT64")
	b.AddKeyPart("mango", "id", false)

	s, err := b.Build()
	require.NoError(t, err)

	appleIdx, ok := s.TableIndex("apple")
	require.True(t, ok)
	mangoIdx, ok := s.TableIndex("mango")
	require.True(t, ok)
	zebraIdx, ok := s.TableIndex("zebra")
	require.True(t, ok)

	require.Equal(t, uint32(0), appleIdx)
	require.Equal(t, uint32(1), mangoIdx)
	require.Equal(t, uint32(2), zebraIdx)
}

func TestSchemaBuilderUnknownKeyColumn(t *testing.T) {
	b := NewSchemaBuilder(enum.GoogleStandardSql)
	b.AddColumn("t", "id", "INT64")
	b.AddKeyPart("t", "missing", false)

	_, err := b.Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeUnknownKeyColumn))
}

func TestSchemaBuilderUnknownTypeString(t *testing.T) {
	b := NewSchemaBuilder(enum.GoogleStandardSql)
	b.AddColumn("t", "id", "totally-not-a-type")
	b.AddKeyPart("t", "id", false)

	_, err := b.Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeUnknownTypeString))
}

func TestSchemaBuilderTypeStringsCaseInsensitiveAcrossDialectSpellings(t *testing.T) {
	b := NewSchemaBuilder(enum.GoogleStandardSql)
	b.AddColumn("t", "a", "int64")
	b.AddColumn("t", "b", "BIGINT")
	b.AddColumn("t", "c", "Character Varying")
	b.AddKeyPart("t", "a", false)

	s, err := b.Build()
	require.NoError(t, err)

	tbl, ok := s.Table("t")
	require.True(t, ok)
	require.Equal(t, enum.Int64, tbl.Columns["a"].Type)
	require.Equal(t, enum.Int64, tbl.Columns["b"].Type)
	require.Equal(t, enum.String, tbl.Columns["c"].Type)
}

func TestSchemaBuilderDuplicateColumnFailsAtBuild(t *testing.T) {
	b := NewSchemaBuilder(enum.GoogleStandardSql)
	b.AddColumn("t", "id", "INT64")
	b.AddColumn("t", "id", "INT64")
	b.AddKeyPart("t", "id", false)

	_, err := b.Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeDuplicateColumn))
}

func TestSchemaBuilderNumericResolvesByDialect(t *testing.T) {
	gb := NewSchemaBuilder(enum.GoogleStandardSql)
	gb.AddColumn("t", "amount", "NUMERIC")
	gb.AddKeyPart("t", "amount", false)
	gs, err := gb.Build()
	require.NoError(t, err)
	gt, _ := gs.Table("t")
	require.Equal(t, enum.Numeric, gt.Columns["amount"].Type)

	pb := NewSchemaBuilder(enum.PostgreSql)
	pb.AddColumn("t", "amount", "numeric")
	pb.AddKeyPart("t", "amount", false)
	ps, err := pb.Build()
	require.NoError(t, err)
	pt, _ := ps.Table("t")
	require.Equal(t, enum.PgNumeric, pt.Columns["amount"].Type)
}
