package registry

import (
	"sort"

	"github.com/yourbasic/graph"

	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// RegisterAll registers a batch of tables in foreign key dependency
// order, so callers need not sort their declarations by hand. Foreign
// keys may point at batch members or at tables already registered. The
// batch is rejected, with nothing registered, when a reference cannot be
// satisfied: a target in neither the batch nor the registry, a table
// referencing itself, or a reference cycle within the batch.
func (r *Registry) RegisterAll(tables ...*table.Table) error {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name()] = i
	}

	g := graph.New(len(tables))
	for i, t := range tables {
		s := t.Schema()
		for c := 0; c < s.Len(); c++ {
			col := s.At(c)
			if col.Ref == nil {
				continue
			}
			target := col.Ref.ReferencedTable
			j, inBatch := index[target]
			if !inBatch {
				if _, registered := r.tables[target]; !registered {
					return &schema.SchemaError{
						Kind:       schema.MissingReferencedTable,
						Table:      t.Name(),
						Column:     col.Name,
						Referenced: target,
					}
				}
				continue
			}
			if j == i {
				// Self-references can never be satisfied: the target
				// must be present before its dependent registers.
				return &schema.SchemaError{
					Kind:       schema.MissingReferencedTable,
					Table:      t.Name(),
					Column:     col.Name,
					Referenced: target,
				}
			}
			// Register the referenced table before its dependent.
			g.Add(j, i)
		}
	}

	order, ok := graph.TopSort(g)
	if !ok {
		name, column, target := r.blameCycle(tables)
		return &schema.SchemaError{
			Kind:       schema.MissingReferencedTable,
			Table:      name,
			Column:     column,
			Referenced: target,
		}
	}

	for _, i := range order {
		if err := r.Register(tables[i]); err != nil {
			return err
		}
	}
	return nil
}

// blameCycle picks a concrete foreign key to report when the batch graph
// has a cycle: the first reference, in batch order, that stays inside its
// table's own cycle group. A reference between two members of one group
// always lies on a cycle; one pointing into a different cyclic group does
// not.
func (r *Registry) blameCycle(tables []*table.Table) (name, column, target string) {
	group := make(map[string]int)
	for i, members := range CircularReferences(tables...) {
		for _, member := range members {
			group[member] = i
		}
	}
	for _, t := range tables {
		g, cyclic := group[t.Name()]
		if !cyclic {
			continue
		}
		s := t.Schema()
		for c := 0; c < s.Len(); c++ {
			col := s.At(c)
			if col.Ref == nil {
				continue
			}
			if tg, ok := group[col.Ref.ReferencedTable]; ok && tg == g {
				return t.Name(), col.Name, col.Ref.ReferencedTable
			}
		}
	}
	if len(tables) > 0 {
		return tables[0].Name(), "", tables[0].Name()
	}
	return "", "", ""
}

// DependencyOrder returns the registered table names ordered so that
// every table appears after the tables it references. Registration
// keeps the catalog acyclic, so an order always exists. Unconstrained
// tables appear in sorted name order.
func (r *Registry) DependencyOrder() []string {
	names := r.Tables()
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	g := graph.New(len(names))
	for i, name := range names {
		s := r.tables[name].Schema()
		for c := 0; c < s.Len(); c++ {
			col := s.At(c)
			if col.Ref == nil {
				continue
			}
			if j, ok := index[col.Ref.ReferencedTable]; ok && j != i {
				g.Add(j, i)
			}
		}
	}

	order, ok := graph.TopSort(g)
	if !ok {
		return names
	}
	ordered := make([]string, 0, len(names))
	for _, i := range order {
		ordered = append(ordered, names[i])
	}
	return ordered
}

// CircularReferences reports groups of tables in the batch whose foreign
// keys reference each other in a cycle, including tables that reference
// themselves. Such groups can never be registered. Groups and their
// members are sorted by name.
func CircularReferences(tables ...*table.Table) [][]string {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name()] = i
	}

	g := graph.New(len(tables))
	selfRef := make([]bool, len(tables))
	for i, t := range tables {
		s := t.Schema()
		for c := 0; c < s.Len(); c++ {
			col := s.At(c)
			if col.Ref == nil {
				continue
			}
			j, inBatch := index[col.Ref.ReferencedTable]
			if !inBatch {
				continue
			}
			if j == i {
				selfRef[i] = true
				continue
			}
			g.Add(i, j)
		}
	}

	var groups [][]string
	for _, component := range graph.StrongComponents(g) {
		if len(component) == 1 && !selfRef[component[0]] {
			continue
		}
		group := make([]string, 0, len(component))
		for _, i := range component {
			group = append(group, tables[i].Name())
		}
		sort.Strings(group)
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
