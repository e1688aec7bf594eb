package cli

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests
	return logger
}

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDemo(&buf, "table", testLogger()))

	out := buf.String()

	assert.Contains(t, out, "Registered tables: users, orders")
	assert.Contains(t, out, "Rejected:")
	assert.Contains(t, out, "Orders while the transaction is open: 4")
	assert.Contains(t, out, "Orders after rollback: 3")
	assert.Contains(t, out, "Orders after a committed insert: 4")

	// All orders, then the filtered set
	assert.Contains(t, out, "(4 rows)")
	assert.Contains(t, out, "(2 rows)")

	// The join pulls user columns in, renaming the colliding id
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "USERS_ID")
}

func TestRunDemoCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDemo(&buf, "csv", testLogger()))

	out := buf.String()
	assert.Contains(t, out, "id,amount,user_id")
	assert.Contains(t, out, "101,150,1")
}
