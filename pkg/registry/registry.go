// Package registry catalogs tables by name and enforces that foreign
// key targets are registered before their dependents. A registry is
// created explicitly and passed to whatever needs one; there is no
// package-level instance.
package registry

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// Registry resolves table names for foreign key checks and keeps the
// catalog of registered tables. Like the tables it holds, it is not
// safe for concurrent use.
type Registry struct {
	tables map[string]*table.Table
	logger *logrus.Logger
}

// New creates an empty registry.
func New(logger *logrus.Logger) *Registry {
	return &Registry{
		tables: make(map[string]*table.Table),
		logger: logger,
	}
}

// Register adds t to the catalog. Every table referenced by t's foreign
// keys must already be registered; a table referencing itself can
// therefore never be registered, which keeps the catalog acyclic by
// construction. Registering a name twice replaces the earlier table.
func (r *Registry) Register(t *table.Table) error {
	s := t.Schema()
	for i := 0; i < s.Len(); i++ {
		col := s.At(i)
		if col.Ref == nil {
			continue
		}
		if _, ok := r.tables[col.Ref.ReferencedTable]; !ok {
			return &schema.SchemaError{
				Kind:       schema.MissingReferencedTable,
				Table:      t.Name(),
				Column:     col.Name,
				Referenced: col.Ref.ReferencedTable,
			}
		}
	}

	if _, exists := r.tables[t.Name()]; exists {
		r.logger.Warningf("Table %s is already registered, replacing it", t.Name())
	}
	r.tables[t.Name()] = t
	t.SetResolver(r)
	r.logger.Debugf("Registered table %s with %d columns", t.Name(), s.Len())
	return nil
}

// Lookup returns the registered table with the given name. This is the
// only read operation foreign key checks use.
func (r *Registry) Lookup(name string) (*table.Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns the registered table names in sorted order.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.tables)
}
