// Package main provides the construct-probe CLI.
//
// construct-probe exercises the construction engine against a YAML type
// schema without writing any Go code:
//   - Loads and validates a schema file describing constructors/properties
//   - Loads a YAML data file (a mapping of field keys to values)
//   - Runs one construction attempt for the requested type
//   - Prints the outcome: the instance and residual problems, or every
//     candidate's rejection report
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"construct-engine/construct"
	"construct-engine/schema"
)

func main() {
	var (
		schemaPath       = flag.String("schema", "", "path to the YAML type schema")
		dataPath         = flag.String("data", "", "path to the YAML data mapping")
		typeName         = flag.String("type", "", "target type name from the schema")
		ignoreUnknown    = flag.Bool("ignore-unknown", false, "tolerate input keys that bind to nothing")
		nullableOptional = flag.Bool("nullable-optional", false, "treat unbound nullable parameters as optional")
		ignoreUnchecked  = flag.Bool("ignore-unchecked", false, "tolerate assignments verified only at the erased level")
	)

	flag.Parse()

	if *schemaPath == "" || *dataPath == "" || *typeName == "" {
		fmt.Fprintln(os.Stderr, "construct-probe requires -schema, -data and -type")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*schemaPath, *dataPath, *typeName, construct.Options{
		IgnoreUnknownData:          *ignoreUnknown,
		NullableIsOptional:         *nullableOptional,
		IgnoreUncheckedAssignments: *ignoreUnchecked,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "construct-probe:", err)
		os.Exit(1)
	}
}

func run(schemaPath, dataPath, typeName string, opts construct.Options) error {
	file, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}

	diags := schema.Validate(file)
	for _, w := range diags.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if diags.HasErrors() {
		for _, e := range diags.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}

		return fmt.Errorf("schema %s failed validation", schemaPath)
	}

	registry, err := schema.NewRegistry(file)
	if err != nil {
		return err
	}

	meta, err := registry.Dynamic(typeName)
	if err != nil {
		return err
	}

	data, err := loadData(dataPath)
	if err != nil {
		return err
	}

	engine, err := construct.New(meta, nil, opts)
	if err != nil {
		return err
	}

	result, err := engine.Construct(data)
	if err != nil {
		return err
	}

	if !result.Ok() {
		fmt.Printf("construction of %s failed; %d candidate(s) rejected:\n",
			typeName, len(result.Rejected))

		for i, problems := range result.Rejected {
			fmt.Printf("  constructor #%d: %s\n", i, problems)
		}

		return fmt.Errorf("no eligible constructor for %s", typeName)
	}

	fmt.Printf("constructed %s\n", typeName)

	if len(result.Problems) > 0 {
		fmt.Println("tolerated problems:")

		for _, p := range result.Problems {
			fmt.Println("  " + p.String())
		}
	}

	spew.Dump(result.Instance)

	return nil
}

func loadData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data YAML: %w", err)
	}

	return data, nil
}
