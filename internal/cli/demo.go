package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/render"
	"github.com/marrowdb/marrow/pkg/query"
	"github.com/marrowdb/marrow/pkg/registry"
	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

func newDemoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the store with a small example catalog",
		Long: `Builds a two-table catalog in memory and walks through inserts,
reference checks, transactions, filters and a join.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.setup()
			return runDemo(cmd.OutOrStdout(), opts.format, logger)
		},
	}
}

func runDemo(w io.Writer, format string, logger *logrus.Logger) error {
	users, err := table.NewBuilder("users").
		AddNotNull("id", schema.Integer).
		AddColumn("name", schema.String).
		AddColumn("email", schema.String).
		Build()
	if err != nil {
		return err
	}

	orders, err := table.NewBuilder("orders").
		AddNotNull("id", schema.Integer).
		AddForeignKey("user_id", schema.Integer, "users", "id").
		AddColumn("amount", schema.Float).
		Build()
	if err != nil {
		return err
	}

	reg := registry.New(logger)
	if err := reg.RegisterAll(users, orders); err != nil {
		return err
	}
	fmt.Fprintf(w, "Registered tables: %s\n\n", strings.Join(reg.DependencyOrder(), ", "))

	for _, data := range []map[string]any{
		{"id": 1, "name": "Alice", "email": "alice@example.com"},
		{"id": 2, "name": "Bob", "email": "bob@example.com"},
	} {
		if _, err := users.Insert(data); err != nil {
			return err
		}
	}

	// An order pointing at a user that does not exist is rejected whole
	if _, err := orders.Insert(map[string]any{"id": 100, "user_id": 99, "amount": 12.5}); err != nil {
		fmt.Fprintf(w, "Rejected: %v\n\n", err)
	}

	for _, data := range []map[string]any{
		{"id": 101, "user_id": 1, "amount": 150.0},
		{"id": 102, "user_id": 2, "amount": 75.5},
		{"id": 103, "user_id": 1, "amount": 320.0},
	} {
		if _, err := orders.Insert(data); err != nil {
			return err
		}
	}

	// Inserts made inside a snapshot vanish on rollback
	orders.Begin()
	if _, err := orders.Insert(map[string]any{"id": 104, "user_id": 2, "amount": 18.0}); err != nil {
		return err
	}
	fmt.Fprintf(w, "Orders while the transaction is open: %d\n", orders.Len())
	orders.Rollback()
	fmt.Fprintf(w, "Orders after rollback: %d\n", orders.Len())

	orders.Begin()
	if _, err := orders.Insert(map[string]any{"id": 104, "user_id": 2, "amount": 18.0}); err != nil {
		return err
	}
	orders.Commit()
	fmt.Fprintf(w, "Orders after a committed insert: %d\n\n", orders.Len())

	fmt.Fprintln(w, "All orders:")
	if err := render.Rows(w, nil, orders.Scan(), format); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nOrders with amount > 100:")
	big := query.New(orders).Where("amount", ">", 100.0).Execute()
	if err := render.Rows(w, nil, big, format); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nOrders joined with users on user_id = id:")
	joined := query.Join(orders, users, "user_id", "id")
	return render.Rows(w, nil, joined, format)
}
