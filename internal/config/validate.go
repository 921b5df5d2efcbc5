package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks configuration values outside their allowed ranges.
var ErrInvalid = errors.New("config: invalid")

const schemaURL = "robotsim.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config: cannot load schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("config: cannot compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// validateSchema checks a YAML document against the embedded JSON schema.
// The document is round-tripped through JSON so the validator sees plain
// JSON types.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return nil // Empty document keeps every default
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: cannot normalise document: %w", err)
	}
	var normalised any
	if err := json.Unmarshal(raw, &normalised); err != nil {
		return fmt.Errorf("config: cannot normalise document: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(normalised); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks value ranges that must hold before a run starts.
// Whether the roster fits the free cells is only known after generation.
func (c SimConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Map.Width >= 3, "map width %d below 3", c.Map.Width)
	check(c.Map.Height >= 3, "map height %d below 3", c.Map.Height)
	check(inUnit(c.Map.ItemProbability), "item probability %v outside [0,1]", c.Map.ItemProbability)
	check(inUnit(c.Map.ObstacleCoverage), "obstacle coverage %v outside [0,1]", c.Map.ObstacleCoverage)

	r := c.Roster
	for name, n := range map[string]int{
		"normal": r.Normal, "broken": r.Broken, "liar": r.Liar,
		"item_destroyer": r.ItemDestroyer, "arsonist": r.Arsonist,
	} {
		check(n >= 0, "negative %s count %d", name, n)
	}
	check(c.Turns >= 0, "negative turn count %d", c.Turns)
	check(c.Output.Format == FormatTSV || c.Output.Format == FormatSQLite, "unknown output format %q", c.Output.Format)

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
