// Package loader reads table declarations and literal rows from YAML
// dataset files and installs them into a registry.
package loader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/marrowdb/marrow/pkg/registry"
	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// RefDef names the table and column a foreign key column points at.
type RefDef struct {
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

// ColumnDef declares a single column. Nullable defaults to true when
// omitted. A column with References is always required.
type ColumnDef struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Nullable   *bool   `yaml:"nullable,omitempty"`
	References *RefDef `yaml:"references,omitempty"`
}

// TableDef declares a table and its columns in order.
type TableDef struct {
	Name    string      `yaml:"name"`
	Columns []ColumnDef `yaml:"columns"`
}

// Dataset is the on-disk shape of a dataset file: table declarations
// plus optional literal rows keyed by table name.
type Dataset struct {
	Tables []TableDef                  `yaml:"tables"`
	Rows   map[string][]map[string]any `yaml:"rows,omitempty"`
}

// Loader builds registries from dataset files.
type Loader struct {
	logger *logrus.Logger
}

// New creates a new loader
func New(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads and parses a dataset file.
func (l *Loader) Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	if len(ds.Tables) == 0 {
		return nil, fmt.Errorf("dataset file %s declares no tables", path)
	}

	l.logger.Debugf("Loaded dataset with %d table declarations from %s", len(ds.Tables), path)
	return &ds, nil
}

// Build constructs fresh, unregistered tables from the declarations in
// declaration order.
func (l *Loader) Build(ds *Dataset) ([]*table.Table, error) {
	tables := make([]*table.Table, 0, len(ds.Tables))
	for _, def := range ds.Tables {
		t, err := buildTable(def)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Apply builds the declared tables, registers them in dependency order
// and inserts the literal rows. Rows are inserted per table in
// registration order so that referenced rows exist before the rows
// that point at them.
func (l *Loader) Apply(ds *Dataset, reg *registry.Registry) error {
	tables, err := l.Build(ds)
	if err != nil {
		return err
	}

	declared := make(map[string]bool, len(ds.Tables))
	for _, def := range ds.Tables {
		declared[def.Name] = true
	}
	for name := range ds.Rows {
		if !declared[name] {
			return fmt.Errorf("rows declared for unknown table %q", name)
		}
	}

	if err := reg.RegisterAll(tables...); err != nil {
		return err
	}

	for _, name := range reg.DependencyOrder() {
		rows, ok := ds.Rows[name]
		if !ok {
			continue
		}
		t, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		for i, data := range rows {
			if _, err := t.Insert(data); err != nil {
				return fmt.Errorf("table %s row %d: %w", name, i+1, err)
			}
		}
		l.logger.Infof("Inserted %d literal rows into table %s", len(rows), name)
	}

	return nil
}

func buildTable(def TableDef) (*table.Table, error) {
	b := table.NewBuilder(def.Name)
	for _, col := range def.Columns {
		dt, err := schema.ParseDataType(col.Type)
		if err != nil {
			if serr, ok := err.(*schema.SchemaError); ok {
				serr.Table = def.Name
				serr.Column = col.Name
			}
			return nil, err
		}

		switch {
		case col.References != nil:
			b.AddForeignKey(col.Name, dt, col.References.Table, col.References.Column)
		case col.Nullable != nil && !*col.Nullable:
			b.AddNotNull(col.Name, dt)
		default:
			b.AddColumn(col.Name, dt)
		}
	}
	return b.Build()
}
