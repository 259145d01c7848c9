package mutation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/keysort/common/types/enum"
)

func TestWriteRenderIsStableAcrossColumnInsertionOrder(t *testing.T) {
	a := &Write{
		Table: "items",
		Kind:  enum.Insert,
		ColumnValues: map[string]Value{
			"b": Int64Value(2),
			"a": Int64Value(1),
		},
	}
	b := &Write{
		Table: "items",
		Kind:  enum.Insert,
		ColumnValues: map[string]Value{
			"a": Int64Value(1),
			"b": Int64Value(2),
		},
	}
	require.Equal(t, a.Render(), b.Render())
}

func TestWriteRenderIncludesNullAndUnset(t *testing.T) {
	w := &Write{
		Table: "items",
		Kind:  enum.Update,
		ColumnValues: map[string]Value{
			"deleted_at": NullValue(),
			"name":       UnsetValue(),
		},
	}
	render := w.Render()
	require.Contains(t, render, "deleted_at=NULL")
	require.Contains(t, render, "name=UNSET")
}

func TestDeleteRenderDistinguishesKeySetKinds(t *testing.T) {
	all := &Delete{Table: "items", KeySet: AllKeys()}
	points := &Delete{Table: "items", KeySet: PointKeys(Key{Int64Value(1)})}
	ranges := &Delete{Table: "items", KeySet: RangeKeys(KeyRange{Start: Key{Int64Value(1)}, End: Key{Int64Value(9)}})}

	require.Contains(t, all.Render(), "ALL")
	require.Contains(t, points.Render(), "POINTS(1)")
	require.Contains(t, ranges.Render(), "RANGES(1)")
}

func TestMutationTableName(t *testing.T) {
	var w Mutation = &Write{Table: "orders"}
	var d Mutation = &Delete{Table: "orders"}
	require.Equal(t, "orders", w.TableName())
	require.Equal(t, "orders", d.TableName())
}
