package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/genesis-ledger/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the journal schema
	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

func resetJournal(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE journal_entries RESTART IDENTITY").Error)
}

func makeEntry(entryID, operation string, occurredAt time.Time) *schema.JournalEntry {
	return &schema.JournalEntry{
		EntryID:    entryID,
		Operation:  operation,
		Caller:     "0x1111111111111111111111111111111111111111",
		Origin:     "0x1111111111111111111111111111111111111111",
		Value:      "0",
		Params:     datatypes.JSON([]byte(`{"amount":1}`)),
		Checksum:   "0xabc",
		OccurredAt: occurredAt,
	}
}

func TestAppendAndListJournalEntries(t *testing.T) {
	resetJournal(t)
	ctx := context.Background()
	s := NewPGStore(testDB)

	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("01A", "mint", now)))
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("01B", "transfer_from", now.Add(time.Second))))
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("01C", "burn", now.Add(2*time.Second))))

	entries, err := s.ListJournalEntries(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "01A", entries[0].EntryID)
	assert.Equal(t, "mint", entries[0].Operation)
	assert.Equal(t, "01B", entries[1].EntryID)
	assert.Equal(t, "01C", entries[2].EntryID)
	assert.True(t, entries[0].Sequence < entries[1].Sequence)
	assert.True(t, entries[1].Sequence < entries[2].Sequence)
	assert.JSONEq(t, `{"amount":1}`, string(entries[0].Params))
}

func TestListJournalEntriesPagination(t *testing.T) {
	resetJournal(t)
	ctx := context.Background()
	s := NewPGStore(testDB)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendJournalEntry(ctx, makeEntry(fmt.Sprintf("entry-%d", i), "mint", now)))
	}

	first, err := s.ListJournalEntries(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	rest, err := s.ListJournalEntries(ctx, first[1].Sequence, 10)
	require.NoError(t, err)
	require.Len(t, rest, 3)
	assert.Equal(t, "entry-2", rest[0].EntryID)
}

func TestAppendJournalEntryDuplicateEntryID(t *testing.T) {
	resetJournal(t)
	ctx := context.Background()
	s := NewPGStore(testDB)

	now := time.Now().UTC()
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("dup", "mint", now)))

	err := s.AppendJournalEntry(ctx, makeEntry("dup", "mint", now))
	assert.Error(t, err)
}

func TestCountAndLatestJournalEntry(t *testing.T) {
	resetJournal(t)
	ctx := context.Background()
	s := NewPGStore(testDB)

	count, err := s.CountJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	latest, err := s.LatestJournalEntry(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	now := time.Now().UTC()
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("first", "mint", now)))
	require.NoError(t, s.AppendJournalEntry(ctx, makeEntry("second", "loan", now.Add(time.Second))))

	count, err = s.CountJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	latest, err = s.LatestJournalEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "second", latest.EntryID)
	assert.Equal(t, "loan", latest.Operation)
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Minute, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}
