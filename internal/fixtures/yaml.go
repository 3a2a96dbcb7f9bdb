package fixtures

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// yamlTable is the on-disk shape of one table block in a YAML fixture file.
type yamlTable struct {
	Table string                   `yaml:"table" validate:"required"`
	Rows  []map[string]interface{} `yaml:"rows"`
}

var validate = validator.New()

// parseYAML reads a YAML fixture file: a list of table blocks, each with a
// table name and its rows.
func parseYAML(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var docs []yamlTable
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	fixture := Fixture{Path: path}
	for i, doc := range docs {
		if err := validate.Struct(doc); err != nil {
			return Fixture{}, fmt.Errorf("fixture %s, entry %d: missing table name: %w", path, i, err)
		}

		table := Table{Name: doc.Table}
		for _, raw := range doc.Rows {
			row := Row{}
			for k, v := range raw {
				row[k] = normalizeYAMLValue(v)
			}
			table.Rows = append(table.Rows, row)
		}
		fixture.Tables = append(fixture.Tables, table)
	}

	return fixture, nil
}

// normalizeYAMLValue converts yaml.v2's interface-keyed maps into
// string-keyed ones so rows can be handed to the ORM as-is.
func normalizeYAMLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := map[string]interface{}{}
		for k, inner := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAMLValue(inner)
		}
		return m
	case []interface{}:
		for i := range val {
			val[i] = normalizeYAMLValue(val[i])
		}
		return val
	default:
		return v
	}
}
