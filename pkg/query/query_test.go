package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

func ordersFixture(t *testing.T) *table.Table {
	t.Helper()
	orders, err := table.NewBuilder("Orders").
		AddNotNull("OrderId", schema.Integer).
		AddColumn("Amount", schema.Integer).
		AddColumn("Status", schema.String).
		Build()
	require.NoError(t, err)

	rows := []map[string]any{
		{"OrderId": 101, "Amount": 150, "Status": "open"},
		{"OrderId": 102, "Amount": 75, "Status": "open"},
		{"OrderId": 103, "Amount": 300, "Status": "closed"},
		{"OrderId": 104, "Status": "draft"},
	}
	for _, r := range rows {
		_, err := orders.Insert(r)
		require.NoError(t, err)
	}
	return orders
}

func orderIDs(rows []table.Row) []any {
	ids := make([]any, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Fields["OrderId"])
	}
	return ids
}

func TestQueryWithoutConditionsReturnsAllRows(t *testing.T) {
	orders := ordersFixture(t)

	rows := New(orders).Execute()
	require.Len(t, rows, 4)
	assert.Equal(t, []any{101, 102, 103, 104}, orderIDs(rows))
	assert.Equal(t, int64(1), rows[0].ID)
}

func TestQueryEquality(t *testing.T) {
	orders := ordersFixture(t)

	rows := New(orders).Where("Status", "==", "open").Execute()
	assert.Equal(t, []any{101, 102}, orderIDs(rows))
}

func TestQueryOrdering(t *testing.T) {
	orders := ordersFixture(t)

	t.Run("greater than", func(t *testing.T) {
		rows := New(orders).Where("Amount", ">", 100).Execute()
		assert.Equal(t, []any{101, 103}, orderIDs(rows))
	})

	t.Run("less than", func(t *testing.T) {
		rows := New(orders).Where("Amount", "<", 100).Execute()
		assert.Equal(t, []any{102}, orderIDs(rows))
	})

	t.Run("comparisons span integer widths", func(t *testing.T) {
		rows := New(orders).Where("Amount", ">", int64(100)).Execute()
		assert.Equal(t, []any{101, 103}, orderIDs(rows))
	})
}

func TestQueryConditionsCombineWithAnd(t *testing.T) {
	orders := ordersFixture(t)

	rows := New(orders).
		Where("Status", "==", "open").
		Where("Amount", ">", 100).
		Execute()
	assert.Equal(t, []any{101}, orderIDs(rows))
}

func TestQueryNonMatches(t *testing.T) {
	orders := ordersFixture(t)

	t.Run("absent column", func(t *testing.T) {
		// Order 104 has no Amount, so it can never match an Amount
		// condition, not even a negated-looking one.
		rows := New(orders).Where("Amount", ">", 0).Execute()
		assert.Equal(t, []any{101, 102, 103}, orderIDs(rows))
	})

	t.Run("unknown operator", func(t *testing.T) {
		rows := New(orders).Where("Amount", ">=", 75).Execute()
		assert.Empty(t, rows)
	})

	t.Run("cross-kind equality", func(t *testing.T) {
		rows := New(orders).Where("Amount", "==", "150").Execute()
		assert.Empty(t, rows)
	})

	t.Run("cross-kind ordering", func(t *testing.T) {
		rows := New(orders).Where("Status", ">", 5).Execute()
		assert.Empty(t, rows)
	})
}

func TestQueryProjection(t *testing.T) {
	orders := ordersFixture(t)

	t.Run("subset of fields", func(t *testing.T) {
		rows := New(orders).Select("OrderId", "Amount").Execute()
		require.Len(t, rows, 4)
		for _, r := range rows {
			_, hasStatus := r.Fields["Status"]
			assert.False(t, hasStatus)
		}
		assert.Equal(t, 150, rows[0].Fields["Amount"])
		assert.Equal(t, int64(1), rows[0].ID, "projection keeps the source row id")
	})

	t.Run("projected names absent from a row are dropped", func(t *testing.T) {
		rows := New(orders).Select("OrderId", "Amount").Where("Status", "==", "draft").Execute()
		require.Len(t, rows, 1)
		assert.Equal(t, map[string]any{"OrderId": 104}, rows[0].Fields)
	})
}

func TestQueryResultsAreDetached(t *testing.T) {
	orders := ordersFixture(t)

	rows := New(orders).Execute()
	rows[0].Fields["Amount"] = -1

	again := New(orders).Execute()
	assert.Equal(t, 150, again[0].Fields["Amount"])
}

func TestQuerySeesLiveRows(t *testing.T) {
	orders := ordersFixture(t)
	q := New(orders).Where("Status", "==", "open")

	require.Len(t, q.Execute(), 2)

	_, err := orders.Insert(map[string]any{"OrderId": 105, "Amount": 20, "Status": "open"})
	require.NoError(t, err)
	assert.Len(t, q.Execute(), 3, "execute reads the table's current rows")
}
