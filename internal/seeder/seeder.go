// Package seeder fills registered tables with generated rows. Column
// names steer the generators the same way they would in a fixture
// written by hand: an "email" column gets an email, a "city" column
// gets a city.
package seeder

import (
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"

	"github.com/marrowdb/marrow/pkg/registry"
	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// Seeder generates fake rows for the tables of a registry
type Seeder struct {
	faker    faker.Faker
	registry *registry.Registry
	logger   *logrus.Logger
}

// New creates a new seeder
func New(reg *registry.Registry, logger *logrus.Logger) *Seeder {
	return &Seeder{
		faker:    faker.New(),
		registry: reg,
		logger:   logger,
	}
}

// Generate produces a candidate row for the table. Referencing columns
// are filled with a key picked from the referenced table; when the
// referenced table has no usable keys the column is left absent and
// the insert is allowed to reject the row.
func (s *Seeder) Generate(t *table.Table) map[string]any {
	sc := t.Schema()
	data := make(map[string]any, sc.Len())

	for i := 0; i < sc.Len(); i++ {
		col := sc.At(i)

		if col.Ref != nil {
			value, ok := s.referenceValue(col)
			if ok {
				data[col.Name] = value
			} else {
				s.logger.Debugf("No candidate keys in %s.%s for column %s of table %s",
					col.Ref.ReferencedTable, col.Ref.ReferencedColumn, col.Name, t.Name())
			}
			continue
		}

		data[col.Name] = s.generateValue(col)
	}

	return data
}

// referenceValue picks a random existing value from the referenced column.
func (s *Seeder) referenceValue(col schema.Column) (any, bool) {
	target, ok := s.registry.Lookup(col.Ref.ReferencedTable)
	if !ok {
		return nil, false
	}

	var candidates []any
	for _, row := range target.Scan() {
		if value, ok := row.Fields[col.Ref.ReferencedColumn]; ok && value != nil {
			candidates = append(candidates, value)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

func (s *Seeder) generateValue(col schema.Column) any {
	switch col.Type {
	case schema.String:
		return s.generateString(col.Name)
	case schema.Integer:
		return s.generateInteger(col.Name)
	case schema.Float:
		return s.generateFloat(col.Name)
	case schema.Bool:
		return rand.Intn(2) == 1
	default:
		return s.faker.Lorem().Word()
	}
}

// generateString generates a string value based on the column name
func (s *Seeder) generateString(name string) string {
	columnName := strings.ToLower(name)

	if strings.Contains(columnName, "email") {
		return s.faker.Internet().Email()
	} else if strings.Contains(columnName, "name") && !strings.Contains(columnName, "file") {
		if strings.Contains(columnName, "first") {
			return s.faker.Person().FirstName()
		} else if strings.Contains(columnName, "last") {
			return s.faker.Person().LastName()
		} else if strings.Contains(columnName, "full") {
			return s.faker.Person().Name()
		} else if strings.Contains(columnName, "user") {
			return s.faker.Internet().User()
		} else if strings.Contains(columnName, "company") || strings.Contains(columnName, "business") {
			return s.faker.Company().Name()
		} else {
			return s.faker.Person().Name()
		}
	} else if strings.Contains(columnName, "phone") {
		return s.faker.Phone().Number()
	} else if strings.Contains(columnName, "address") {
		return s.faker.Address().Address()
	} else if strings.Contains(columnName, "city") {
		return s.faker.Address().City()
	} else if strings.Contains(columnName, "state") {
		return s.faker.Address().State()
	} else if strings.Contains(columnName, "country") {
		return s.faker.Address().Country()
	} else if strings.Contains(columnName, "zip") || strings.Contains(columnName, "postal") {
		return s.faker.Address().PostCode()
	} else if strings.Contains(columnName, "description") || strings.Contains(columnName, "summary") {
		return s.faker.Lorem().Paragraph(3)
	} else if strings.Contains(columnName, "title") {
		return s.faker.Lorem().Sentence(4)
	} else if strings.Contains(columnName, "url") || strings.Contains(columnName, "website") {
		return s.faker.Internet().URL()
	} else if strings.Contains(columnName, "ip") {
		return s.faker.Internet().Ipv4()
	} else if strings.Contains(columnName, "password") {
		return s.faker.Internet().Password()
	} else if strings.Contains(columnName, "token") {
		return s.faker.RandomStringWithLength(32)
	} else if strings.Contains(columnName, "color") {
		return s.faker.Color().Hex()
	} else if strings.Contains(columnName, "uuid") {
		return s.faker.UUID().V4()
	}

	return s.faker.Lorem().Word()
}

// generateInteger generates an integer value based on the column name
func (s *Seeder) generateInteger(name string) any {
	columnName := strings.ToLower(name)

	if strings.Contains(columnName, "year") {
		currentYear := time.Now().Year()
		return rand.Intn(currentYear-1970+1) + 1970
	}

	return rand.Int31()
}

// generateFloat generates a float value based on the column name
func (s *Seeder) generateFloat(name string) any {
	columnName := strings.ToLower(name)

	if strings.Contains(columnName, "lat") {
		return s.faker.Address().Latitude()
	} else if strings.Contains(columnName, "lon") {
		return s.faker.Address().Longitude()
	}

	return rand.Float64() * 1000
}

// Populate inserts up to n generated rows into the table. Rows the
// table rejects are logged and skipped; the number of rows actually
// inserted is returned.
func (s *Seeder) Populate(t *table.Table, n int) int {
	inserted := 0
	for i := 0; i < n; i++ {
		data := s.Generate(t)
		if _, err := t.Insert(data); err != nil {
			s.logger.Warningf("Skipping generated row for table %s: %v", t.Name(), err)
			continue
		}
		inserted++
	}

	if inserted < n {
		s.logger.Warningf("Inserted %d/%d rows into table %s", inserted, n, t.Name())
	} else {
		s.logger.Infof("Inserted %d rows into table %s", inserted, t.Name())
	}
	return inserted
}

// PopulateAll populates every registered table in dependency order, so
// referenced tables have rows before the tables that point at them.
// It returns the per-table insert counts.
func (s *Seeder) PopulateAll(n int) map[string]int {
	order := s.registry.DependencyOrder()
	s.logger.Infof("Populating %d tables with %d records each", len(order), n)

	counts := make(map[string]int, len(order))
	for _, name := range order {
		t, ok := s.registry.Lookup(name)
		if !ok {
			continue
		}
		counts[name] = s.Populate(t, n)
	}
	return counts
}
