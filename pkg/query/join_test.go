package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

func joinFixture(t *testing.T) (*table.Table, *table.Table) {
	t.Helper()
	users, err := table.NewBuilder("Users").
		AddNotNull("Id", schema.Integer).
		AddColumn("Name", schema.String).
		Build()
	require.NoError(t, err)

	orders, err := table.NewBuilder("Orders").
		AddNotNull("OrderId", schema.Integer).
		AddColumn("UserId", schema.Integer).
		AddColumn("Amount", schema.Integer).
		Build()
	require.NoError(t, err)

	for _, r := range []map[string]any{
		{"Id": 1, "Name": "Alice"},
		{"Id": 2, "Name": "Bob"},
	} {
		_, err := users.Insert(r)
		require.NoError(t, err)
	}
	for _, r := range []map[string]any{
		{"OrderId": 101, "UserId": 1, "Amount": 150},
		{"OrderId": 102, "UserId": 2, "Amount": 75},
		{"OrderId": 103, "UserId": 1, "Amount": 300},
	} {
		_, err := orders.Insert(r)
		require.NoError(t, err)
	}
	return users, orders
}

func TestJoinMatchesPairs(t *testing.T) {
	users, orders := joinFixture(t)

	rows := Join(orders, users, "UserId", "Id")
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 101, first.Fields["OrderId"])
	assert.Equal(t, 1, first.Fields["UserId"])
	assert.Equal(t, 150, first.Fields["Amount"])
	assert.Equal(t, "Alice", first.Fields["Name"])
	assert.Equal(t, 1, first.Fields["Id"], "non-colliding right fields keep their name")
	assert.Equal(t, int64(0), first.ID, "merged rows carry no id")

	assert.Equal(t, "Bob", rows[1].Fields["Name"])
	assert.Equal(t, "Alice", rows[2].Fields["Name"])
}

func TestJoinRenamesCollidingRightFields(t *testing.T) {
	left, err := table.NewBuilder("Employees").
		AddNotNull("Id", schema.Integer).
		AddColumn("Name", schema.String).
		AddColumn("DeptId", schema.Integer).
		Build()
	require.NoError(t, err)

	right, err := table.NewBuilder("Departments").
		AddNotNull("Id", schema.Integer).
		AddColumn("Name", schema.String).
		Build()
	require.NoError(t, err)

	_, err = left.Insert(map[string]any{"Id": 1, "Name": "Dana", "DeptId": 10})
	require.NoError(t, err)
	_, err = right.Insert(map[string]any{"Id": 10, "Name": "Research"})
	require.NoError(t, err)

	rows := Join(left, right, "DeptId", "Id")
	require.Len(t, rows, 1)

	fields := rows[0].Fields
	assert.Equal(t, "Dana", fields["Name"], "left fields keep the unqualified name")
	assert.Equal(t, "Research", fields["Departments_Name"])
	assert.Equal(t, 1, fields["Id"])
	assert.Equal(t, 10, fields["Departments_Id"])
}

func TestJoinSkipsRowsWithoutJoinColumn(t *testing.T) {
	users, orders := joinFixture(t)
	_, err := orders.Insert(map[string]any{"OrderId": 104, "Amount": 20})
	require.NoError(t, err)

	rows := Join(orders, users, "UserId", "Id")
	assert.Len(t, rows, 3)
}

func TestJoinWithoutMatchesIsEmpty(t *testing.T) {
	users, orders := joinFixture(t)
	rows := Join(orders, users, "UserId", "Name")
	assert.Empty(t, rows, "integer keys never equal string names")
}

func TestJoinResultsAreDetached(t *testing.T) {
	users, orders := joinFixture(t)

	rows := Join(orders, users, "UserId", "Id")
	rows[0].Fields["Name"] = "mutated"

	assert.Equal(t, "Alice", users.Scan()[0].Fields["Name"])
	assert.Equal(t, 150, orders.Scan()[0].Fields["Amount"])
}
