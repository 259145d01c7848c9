// Package commands implements keysortctl's cobra subcommands.
package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/keysort/common/types/enum"
	"github.com/turtacn/keysort/config"
	"github.com/turtacn/keysort/schema"
)

// schemaFile is the on-disk YAML shape keysortctl reads schemas from.
// Columns is a list rather than a map purely to give duplicate
// declarations a stable order to be rejected in; schema.SchemaBuilder
// itself is what rejects them, at Build time.
type schemaFile struct {
	Dialect string                 `yaml:"dialect"`
	Tables  map[string]tableFile   `yaml:"tables"`
}

type tableFile struct {
	Columns  []columnFile  `yaml:"columns"`
	KeyParts []keyPartFile `yaml:"keyParts"`
}

type columnFile struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type keyPartFile struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending"`
}

// loadSchemaFile reads and builds a *schema.Schema from path.
func loadSchemaFile(path string) (*schema.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parsing schema file %s: %w", path, err)
	}

	dialect, err := parseDialect(sf.Dialect)
	if sf.Dialect == "" {
		dialect, err = config.ParseDialect(config.GetConfig().Dialect)
	}
	if err != nil {
		return nil, err
	}

	b := schema.NewSchemaBuilder(dialect)
	for tableName, tbl := range sf.Tables {
		for _, col := range tbl.Columns {
			b.AddColumn(tableName, col.Name, col.Type)
		}
		for _, kp := range tbl.KeyParts {
			b.AddKeyPart(tableName, kp.Column, kp.Descending)
		}
	}

	return b.Build()
}

func parseDialect(s string) (enum.Dialect, error) {
	switch s {
	case "", "GoogleStandardSql":
		return enum.GoogleStandardSql, nil
	case "PostgreSql":
		return enum.PostgreSql, nil
	default:
		return enum.GoogleStandardSql, fmt.Errorf("unknown dialect %q (want GoogleStandardSql or PostgreSql)", s)
	}
}
