package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"editmarket/internal/infrastructure/mysql"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// SetupTestDB returns a migrated MySQL database. TEST_MYSQL_DSN selects an
// existing server and must enable parseTime and multiStatements; otherwise one
// container is started per test binary. The test is skipped when neither is
// available.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
		containerOnce.Do(startContainer)
		if containerErr != nil {
			t.Skipf("mysql container not available: %v", containerErr)
		}
		dsn = containerDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := mysql.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	truncate(t, db)
	return db
}

func startContainer() {
	ctx := context.Background()

	ctr, err := tcmysql.Run(ctx,
		"mysql:8.0.36",
		tcmysql.WithDatabase("editmarket_test"),
		tcmysql.WithUsername("editmarket"),
		tcmysql.WithPassword("secret"),
	)
	if err != nil {
		containerErr = fmt.Errorf("starting mysql container: %w", err)
		return
	}

	containerDSN, containerErr = ctr.ConnectionString(ctx, "parseTime=true", "multiStatements=true")
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}
	truncate(t, db)
	db.Close()
}

func truncate(t *testing.T, db *sql.DB) {
	tables := mysql.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", tables[i])); err != nil {
			t.Logf("failed to clean table %s: %v", tables[i], err)
		}
	}
}
