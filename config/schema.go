package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"beer-reviews/models"
)

//go:embed schema.yaml
var defaultSchema []byte

// Reference table names used as keys under "references".
const (
	TableBeers        = "beers"
	TableBreweries    = "breweries"
	TableUsers        = "users"
	TableMatchedUsers = "matched_users"
)

// ReferenceSchema describes how one delimited reference file is normalized.
type ReferenceSchema struct {
	ProvenanceRow bool                  `yaml:"provenance_row"`
	Columns       []models.ColumnRename `yaml:"columns"`
}

// AllowList returns the source columns kept from the file, in order.
func (r ReferenceSchema) AllowList() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.From
	}
	return out
}

// Schema is the column contract of every stage, loaded once at startup.
type Schema struct {
	Reviews struct {
		Required []string `yaml:"required"`
	} `yaml:"reviews"`
	References map[string]ReferenceSchema `yaml:"references"`
	Canonical  []models.ColumnRename      `yaml:"canonical"`
}

// Reference returns the schema for the named reference table.
func (s *Schema) Reference(name string) (ReferenceSchema, error) {
	ref, ok := s.References[name]
	if !ok {
		return ReferenceSchema{}, fmt.Errorf("schema: no reference table %q", name)
	}
	return ref, nil
}

// CanonicalColumns returns the output column names in order.
func (s *Schema) CanonicalColumns() []string {
	out := make([]string, len(s.Canonical))
	for i, c := range s.Canonical {
		out[i] = c.To
	}
	return out
}

// DefaultSchema returns the embedded schema, validated.
func DefaultSchema() (*Schema, error) {
	return ParseSchema(defaultSchema)
}

// ParseSchema decodes a schema from YAML and validates it against the
// columns the typed adapters and the canonical projection need.
func ParseSchema(data []byte) (*Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schema: payload is empty")
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every column a later stage reads is produced by the
// schema, so a typo fails at startup rather than mid-run.
func (s *Schema) Validate() error {
	if err := requireAll("reviews", s.Reviews.Required, models.ReviewLabels); err != nil {
		return err
	}

	required := map[string][]string{
		TableBeers:        models.BeerColumns,
		TableBreweries:    models.BreweryColumns,
		TableUsers:        models.UserColumns,
		TableMatchedUsers: models.MatchedUserColumns,
	}
	for name, cols := range required {
		ref, err := s.Reference(name)
		if err != nil {
			return err
		}
		targets := make([]string, len(ref.Columns))
		for i, c := range ref.Columns {
			targets[i] = c.To
		}
		if err := requireAll(name, targets, cols); err != nil {
			return err
		}
	}

	if len(s.Canonical) == 0 {
		return fmt.Errorf("schema: canonical projection is empty")
	}
	seen := make(map[string]struct{}, len(s.Canonical))
	for _, c := range s.Canonical {
		if _, dup := seen[c.To]; dup {
			return fmt.Errorf("schema: canonical column %q declared twice", c.To)
		}
		seen[c.To] = struct{}{}
	}
	var from []string
	for _, c := range s.Canonical {
		from = append(from, c.From)
	}
	return requireAll("canonical", models.EnrichedFields, from)
}

// requireAll fails with a SchemaRenameError for the first name in want that
// have does not contain.
func requireAll(table string, have, want []string) error {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return &models.SchemaRenameError{Table: table, Column: w}
		}
	}
	return nil
}
