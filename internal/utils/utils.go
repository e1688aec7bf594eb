package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/marrowdb/marrow/pkg/registry"
	"github.com/marrowdb/marrow/pkg/table"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	logger := logrus.New()

	// Get log level from environment variable or parameter
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("MARROW_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	return logger
}

// LoadEnvironmentVariables loads environment variables from a .env file
// when one exists.
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) {
	// Point at a sample file when the real one is missing
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		sampleEnvFile := envFile + ".sample"
		if _, err := os.Stat(sampleEnvFile); err == nil {
			logger.Infof("No %s file found, but %s exists. Consider copying %s to %s and updating it.",
				envFile, sampleEnvFile, sampleEnvFile, envFile)
		}
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.Warningf("Error loading %s file: %v", envFile, err)
		} else {
			logger.Infof("Loaded environment variables from %s", envFile)
		}
	} else {
		logger.Debugf("No %s file found, using existing environment variables", envFile)
	}

	// Log all available MARROW_* environment variables (for debugging)
	if logger.Level == logrus.DebugLevel {
		for _, env := range os.Environ() {
			if strings.HasPrefix(env, "MARROW_") {
				parts := strings.SplitN(env, "=", 2)
				if len(parts) == 2 {
					logger.Debugf("%s=%s", parts[0], parts[1])
				}
			}
		}
	}
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// PrintSeedSummary prints a summary of the seeding process
func PrintSeedSummary(order []string, counts map[string]int, recordsPerTable int) {
	totalRows := 0
	var shortTables []string
	for _, name := range order {
		totalRows += counts[name]
		if counts[name] < recordsPerTable {
			shortTables = append(shortTables, name)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Tables seeded: %d\n", len(order))
	fmt.Printf("Requested rows per table: %d\n", recordsPerTable)
	fmt.Printf("Total rows inserted: %d\n", totalRows)

	if len(shortTables) > 0 {
		fmt.Println("\nTables that fell short (rejected candidates are skipped):")
		for _, name := range shortTables {
			fmt.Printf("  - %s: %d/%d rows\n", name, counts[name], recordsPerTable)
		}
	}

	fmt.Println(strings.Repeat("=", 50))
}

// PrintSchemaAnalysis prints a detailed analysis of a set of table
// declarations: per-table columns, reference edges, registration order,
// and reference cycles.
func PrintSchemaAnalysis(tables []*table.Table, orderedTables []string, cycles [][]string) {
	circular := make(map[string]bool)
	for _, group := range cycles {
		for _, name := range group {
			circular[name] = true
		}
	}

	totalColumns := 0
	tablesWithKeys := 0
	for _, t := range tables {
		s := t.Schema()
		totalColumns += s.Len()
		for i := 0; i < s.Len(); i++ {
			if s.At(i).Ref != nil {
				tablesWithKeys++
				break
			}
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SCHEMA ANALYSIS REPORT")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Println("\n1. BASIC STATISTICS")
	fmt.Printf("   Total tables: %d\n", len(tables))
	fmt.Printf("   Total columns: %d\n", totalColumns)
	fmt.Printf("   Tables with foreign keys: %d\n", tablesWithKeys)
	fmt.Printf("   Tables in reference cycles: %d\n", len(circular))

	fmt.Println("\n2. TABLES")
	for _, t := range tables {
		fmt.Printf("   %s\n", t.Name())
		s := t.Schema()
		for i := 0; i < s.Len(); i++ {
			col := s.At(i)
			line := fmt.Sprintf("      %s %s", col.Name, col.Type)
			if !col.Nullable {
				line += " not null"
			}
			if col.Ref != nil {
				line += fmt.Sprintf(" -> %s.%s", col.Ref.ReferencedTable, col.Ref.ReferencedColumn)
			}
			fmt.Println(line)
		}
	}

	if len(cycles) > 0 {
		fmt.Println("\n3. REFERENCE CYCLES")
		fmt.Println("   These tables can never be registered:")
		for _, group := range cycles {
			if len(group) == 1 {
				fmt.Printf("     %s -> %s\n", group[0], group[0])
			} else {
				fmt.Printf("     %s\n", strings.Join(group, " <-> "))
			}
		}
	}

	if len(orderedTables) > 0 {
		fmt.Println("\n4. REGISTRATION ORDER")
		for i, name := range orderedTables {
			category := "standalone"
			if circular[name] {
				category = "circular"
			} else if hasForeignKeys(tables, name) {
				category = "dependent"
			}
			fmt.Printf("   %3d. %s (%s)\n", i+1, name, category)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
}

func hasForeignKeys(tables []*table.Table, name string) bool {
	for _, t := range tables {
		if t.Name() != name {
			continue
		}
		s := t.Schema()
		for i := 0; i < s.Len(); i++ {
			if s.At(i).Ref != nil {
				return true
			}
		}
	}
	return false
}

// VerifyTablePopulation verifies that all registered tables have at
// least the minimum number of rows.
func VerifyTablePopulation(reg *registry.Registry, minRecords int, logger *logrus.Logger) (bool, []string, map[string]int) {
	logger.Infof("Verifying that all tables have at least %d row(s)...", minRecords)

	emptyTables := []string{}
	partiallyPopulatedTables := make(map[string]int)

	for _, name := range reg.Tables() {
		t, ok := reg.Lookup(name)
		if !ok {
			continue
		}

		count := t.Len()
		if count == 0 {
			logger.Warningf("Table %s has no rows", name)
			emptyTables = append(emptyTables, name)
		} else if count < minRecords {
			logger.Warningf("Table %s has only %d/%d expected rows", name, count, minRecords)
			partiallyPopulatedTables[name] = count
		}
	}

	success := len(emptyTables) == 0 && len(partiallyPopulatedTables) == 0

	if success {
		logger.Info("Verification successful: all tables have at least the minimum number of rows")
	} else {
		if len(emptyTables) > 0 {
			logger.Errorf("Verification failed: %d tables have no rows", len(emptyTables))
		}
		if len(partiallyPopulatedTables) > 0 {
			logger.Errorf("Verification failed: %d tables are partially populated", len(partiallyPopulatedTables))
		}
	}

	return success, emptyTables, partiallyPopulatedTables
}

// PrintVerificationResults prints the results of the table population verification
func PrintVerificationResults(emptyTables []string, partiallyPopulatedTables map[string]int, minRecords int) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("TABLE POPULATION VERIFICATION RESULTS")
	fmt.Println(strings.Repeat("=", 50))

	if len(emptyTables) == 0 && len(partiallyPopulatedTables) == 0 {
		fmt.Printf("✅ All tables have at least %d row(s)\n", minRecords)
		fmt.Println(strings.Repeat("=", 50))
		return
	}

	if len(emptyTables) > 0 {
		fmt.Printf("❌ %d tables have no rows:\n", len(emptyTables))
		for _, name := range emptyTables {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println()
	}

	if len(partiallyPopulatedTables) > 0 {
		fmt.Printf("⚠️  %d tables are partially populated:\n", len(partiallyPopulatedTables))
		for name, count := range partiallyPopulatedTables {
			fmt.Printf("  - %s: %d/%d rows\n", name, count, minRecords)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 50))
}
