// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state so other packages can embed their own FS.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users and everything they authored.
// Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		var id uuid.UUID
		if err := db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id); err != nil {
			continue
		}
		db.Exec(`DELETE FROM replies WHERE replier_id = $1`, id)
		db.Exec(`DELETE FROM comments WHERE commentator_id = $1`, id)
		db.Exec(`DELETE FROM articles WHERE author_id = $1`, id)
		db.Exec(`DELETE FROM users WHERE id = $1`, id)
	}
}

// makeUser creates a user through the store for test scenarios.
func makeUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create("User "+email, email, "testpass123", "test bio", "")
	if err != nil {
		t.Fatalf("create test user %s: %v", email, err)
	}
	return u
}

// makeArticle creates an article authored by the given user.
func makeArticle(t *testing.T, db *sql.DB, authorID uuid.UUID, title string) *models.Article {
	t.Helper()
	a, err := NewArticleStore(db).Create(&models.Article{
		Title:    title,
		Content:  "body of " + title,
		Category: "testing",
		Tag:      "test",
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("create test article %q: %v", title, err)
	}
	return a
}
