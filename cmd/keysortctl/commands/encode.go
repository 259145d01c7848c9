package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/turtacn/keysort/config"
	"github.com/turtacn/keysort/encoder"
)

// NewEncodeCmd creates the encode command: given a schema file and a
// mutations file, prints each mutation's opaque sort key, in input
// order or, with --sort, in the byte order of the keys.
func NewEncodeCmd() *cobra.Command {
	var (
		schemaPath    string
		mutationsPath string
		sortOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a batch of mutations into their sort keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(schemaPath, mutationsPath, sortOutput)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema YAML file (required)")
	cmd.Flags().StringVar(&mutationsPath, "mutations", "", "path to the mutations YAML file (required)")
	cmd.Flags().BoolVar(&sortOutput, "sort", false, "print keys sorted by byte order instead of input order")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("mutations")

	return cmd
}

func runEncode(schemaPath, mutationsPath string, sortOutput bool) error {
	s, err := loadSchemaFile(schemaPath)
	if err != nil {
		return err
	}
	muts, err := loadMutationsFile(mutationsPath)
	if err != nil {
		return err
	}

	registry := encoder.NewUnknownTableRegistry(config.GetConfig().Registry.WarnLogThreshold)
	enc := encoder.NewMutationKeyEncoder(s, encoder.WithUnknownTableRegistry(registry))
	keys := make([][]byte, len(muts))
	for i, m := range muts {
		k, err := enc.EncodeTableNameAndKey(m)
		if err != nil {
			return fmt.Errorf("encoding mutation %d (%s): %w", i, m.TableName(), err)
		}
		keys[i] = k
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	if sortOutput {
		sort.SliceStable(order, func(i, j int) bool {
			return bytes.Compare(keys[order[i]], keys[order[j]]) < 0
		})
	}

	for _, i := range order {
		fmt.Printf("%d\t%s\t%s\n", i, muts[i].TableName(), hex.EncodeToString(keys[i]))
	}

	if snap := registry.Snapshot(); len(snap) > 0 {
		fmt.Println("unknown tables encountered:")
		for table, count := range snap {
			fmt.Printf("  %s: %d\n", table, count)
		}
	}
	return nil
}
