package seeder

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdb/marrow/pkg/registry"
	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests
	return logger
}

func mustBuild(t *testing.T, b *table.Builder) *table.Table {
	t.Helper()
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func TestGenerateFillsEveryColumn(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer).
		AddColumn("email", schema.String).
		AddColumn("city", schema.String).
		AddColumn("active", schema.Bool).
		AddColumn("score", schema.Float))

	reg := registry.New(testLogger())
	require.NoError(t, reg.Register(users))

	s := New(reg, testLogger())
	data := s.Generate(users)

	require.Len(t, data, 5)

	email, ok := data["email"].(string)
	require.True(t, ok)
	assert.Contains(t, email, "@")

	city, ok := data["city"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, city)

	assert.IsType(t, int32(0), data["id"])
	assert.IsType(t, false, data["active"])
	assert.IsType(t, float64(0), data["score"])
}

func TestGenerateNameDispatch(t *testing.T) {
	people := mustBuild(t, table.NewBuilder("people").
		AddColumn("first_name", schema.String).
		AddColumn("last_name", schema.String).
		AddColumn("company_name", schema.String).
		AddColumn("uuid", schema.String))

	reg := registry.New(testLogger())
	require.NoError(t, reg.Register(people))

	s := New(reg, testLogger())
	data := s.Generate(people)

	for _, name := range []string{"first_name", "last_name", "company_name"} {
		value, ok := data[name].(string)
		require.True(t, ok, name)
		assert.NotEmpty(t, value, name)
	}

	uuid, ok := data["uuid"].(string)
	require.True(t, ok)
	assert.Len(t, uuid, 36)
}

func TestGeneratePicksReferenceFromTarget(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer))
	posts := mustBuild(t, table.NewBuilder("posts").
		AddColumn("title", schema.String).
		AddForeignKey("user_id", schema.Integer, "users", "id"))

	reg := registry.New(testLogger())
	require.NoError(t, reg.RegisterAll(users, posts))

	for _, id := range []int{10, 20, 30} {
		_, err := users.Insert(map[string]any{"id": id})
		require.NoError(t, err)
	}

	s := New(reg, testLogger())
	data := s.Generate(posts)

	assert.Contains(t, []any{10, 20, 30}, data["user_id"])
}

func TestGenerateLeavesReferenceAbsentWhenTargetEmpty(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer))
	posts := mustBuild(t, table.NewBuilder("posts").
		AddForeignKey("user_id", schema.Integer, "users", "id"))

	reg := registry.New(testLogger())
	require.NoError(t, reg.RegisterAll(users, posts))

	s := New(reg, testLogger())
	data := s.Generate(posts)

	_, present := data["user_id"]
	assert.False(t, present)
}

func TestPopulate(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer).
		AddColumn("name", schema.String))

	reg := registry.New(testLogger())
	require.NoError(t, reg.Register(users))

	s := New(reg, testLogger())
	inserted := s.Populate(users, 5)

	assert.Equal(t, 5, inserted)
	assert.Equal(t, 5, users.Len())
}

func TestPopulateSkipsRejectedRows(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer))
	posts := mustBuild(t, table.NewBuilder("posts").
		AddForeignKey("user_id", schema.Integer, "users", "id"))

	reg := registry.New(testLogger())
	require.NoError(t, reg.RegisterAll(users, posts))

	// users is empty, so every generated post misses its required key
	s := New(reg, testLogger())
	inserted := s.Populate(posts, 3)

	assert.Equal(t, 0, inserted)
	assert.Equal(t, 0, posts.Len())
}

func TestPopulateAll(t *testing.T) {
	users := mustBuild(t, table.NewBuilder("users").
		AddNotNull("id", schema.Integer).
		AddColumn("name", schema.String))
	posts := mustBuild(t, table.NewBuilder("posts").
		AddNotNull("id", schema.Integer).
		AddForeignKey("user_id", schema.Integer, "users", "id"))

	reg := registry.New(testLogger())
	require.NoError(t, reg.RegisterAll(users, posts))

	s := New(reg, testLogger())
	counts := s.PopulateAll(4)

	assert.Equal(t, map[string]int{"users": 4, "posts": 4}, counts)
	assert.Equal(t, 4, users.Len())
	assert.Equal(t, 4, posts.Len())

	// Every post points at a user id that exists
	ids := make(map[any]bool)
	for _, row := range users.Scan() {
		ids[row.Fields["id"]] = true
	}
	for _, row := range posts.Scan() {
		assert.True(t, ids[row.Fields["user_id"]], "user_id %v not found in users", row.Fields["user_id"])
	}
}
