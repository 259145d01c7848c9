package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/keysort/common/types/enum"
	"github.com/turtacn/keysort/mutation"
)

// mutationFile is one entry of a keysortctl mutations batch file. A
// Write is any entry with Values set; a Delete is any entry with
// Delete set. An entry must set exactly one.
type mutationFile struct {
	Table  string                 `yaml:"table"`
	Kind   string                 `yaml:"kind"`
	Values map[string]interface{} `yaml:"values"`
	Delete *deleteFile            `yaml:"delete"`
}

// deleteFile's Keys is a list of ordered value lists, one per point
// key, with entries in the table's declared key-part order: YAML maps
// do not preserve key order, so a map here could silently scramble
// multi-column keys.
type deleteFile struct {
	KeySet string          `yaml:"keySet"`
	Keys   [][]interface{} `yaml:"keys"`
}

func loadMutationsFile(path string) ([]mutation.Mutation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mutations file %s: %w", path, err)
	}

	var entries []mutationFile
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing mutations file %s: %w", path, err)
	}

	muts := make([]mutation.Mutation, 0, len(entries))
	for i, e := range entries {
		m, err := e.toMutation()
		if err != nil {
			return nil, fmt.Errorf("mutations file %s, entry %d: %w", path, i, err)
		}
		muts = append(muts, m)
	}
	return muts, nil
}

func (e mutationFile) toMutation() (mutation.Mutation, error) {
	if (e.Delete != nil) == (e.Values != nil) {
		return nil, fmt.Errorf("entry for table %q must set exactly one of values or delete", e.Table)
	}
	if e.Delete != nil {
		return e.Delete.toDelete(e.Table)
	}

	kind, err := parseMutationKind(e.Kind)
	if err != nil {
		return nil, err
	}
	values := make(map[string]mutation.Value, len(e.Values))
	for name, raw := range e.Values {
		values[name] = parseScalarValue(raw)
	}
	return &mutation.Write{Table: e.Table, Kind: kind, ColumnValues: values}, nil
}

func (d *deleteFile) toDelete(table string) (mutation.Mutation, error) {
	switch d.KeySet {
	case "", "all":
		return &mutation.Delete{Table: table, KeySet: mutation.AllKeys()}, nil
	case "points":
		keys := make([]mutation.Key, 0, len(d.Keys))
		for _, k := range d.Keys {
			keys = append(keys, keyFromValues(k))
		}
		return &mutation.Delete{Table: table, KeySet: mutation.PointKeys(keys...)}, nil
	default:
		return nil, fmt.Errorf("unsupported delete keySet %q (want all or points)", d.KeySet)
	}
}

func keyFromValues(values []interface{}) mutation.Key {
	key := make(mutation.Key, 0, len(values))
	for _, v := range values {
		key = append(key, parseScalarValue(v))
	}
	return key
}

func parseMutationKind(s string) (enum.MutationKind, error) {
	switch s {
	case "", "insert":
		return enum.Insert, nil
	case "update":
		return enum.Update, nil
	case "replace":
		return enum.Replace, nil
	case "insertOrUpdate":
		return enum.InsertOrUpdate, nil
	default:
		return 0, fmt.Errorf("unknown mutation kind %q", s)
	}
}

// parseScalarValue maps a decoded YAML scalar to a mutation.Value.
// nil means NULL; there is no YAML spelling for Unset besides omitting
// the column entirely.
func parseScalarValue(raw interface{}) mutation.Value {
	if raw == nil {
		return mutation.NullValue()
	}
	switch v := raw.(type) {
	case bool:
		return mutation.BoolValue(v)
	case int:
		return mutation.Int64Value(int64(v))
	case int64:
		return mutation.Int64Value(v)
	case float64:
		return mutation.Float64Value(v)
	case string:
		return mutation.StringValue(v)
	default:
		return mutation.StringValue(fmt.Sprintf("%v", v))
	}
}
