package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaKeepsDeclarationOrder(t *testing.T) {
	s, err := NewSchema("users", []Column{
		{Name: "Id", Type: Integer},
		{Name: "Name", Type: String, Nullable: true},
		{Name: "Active", Type: Bool, Nullable: true},
	})
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "Id", s.At(0).Name)
	assert.Equal(t, "Name", s.At(1).Name)
	assert.Equal(t, "Active", s.At(2).Name)

	col, ok := s.Column("Name")
	require.True(t, ok)
	assert.Equal(t, String, col.Type)
	assert.True(t, col.Nullable)

	_, ok = s.Column("Missing")
	assert.False(t, ok)
}

func TestNewSchemaRejectsDuplicateColumn(t *testing.T) {
	_, err := NewSchema("users", []Column{
		{Name: "Id", Type: Integer},
		{Name: "Id", Type: String},
	})
	require.Error(t, err)

	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, DuplicateColumn, serr.Kind)
	assert.Equal(t, "users", serr.Table)
	assert.Equal(t, "Id", serr.Column)
}

func TestSchemaColumnsReturnsCopy(t *testing.T) {
	s, err := NewSchema("users", []Column{{Name: "Id", Type: Integer}})
	require.NoError(t, err)

	cols := s.Columns()
	cols[0].Name = "mutated"
	assert.Equal(t, "Id", s.At(0).Name)
}
