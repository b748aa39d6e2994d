package testutil

import (
	"database/sql"
	"testing"
	"time"
)

// InsertUser creates a user row and returns its id.
func InsertUser(t *testing.T, db *sql.DB, email, role string) uint {
	t.Helper()

	res, err := db.Exec(`INSERT INTO Users (name, email, role, isAvailable) VALUES (?, ?, ?, ?)`,
		email, email, role, role == "FREELANCER")
	if err != nil {
		t.Fatalf("inserting user %s: %v", email, err)
	}
	return lastID(t, res)
}

// InsertOrder creates an order owned by clientID in the given status.
func InsertOrder(t *testing.T, db *sql.DB, clientID uint, freelancerID *uint, status string) uint {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO Orders (userId, freelancerId, title, description, price, deadline, status)
		VALUES (?, ?, 'Test order', 'Edit my footage', 100.00, ?, ?)`,
		clientID, freelancerID, time.Now().Add(7*24*time.Hour).UTC(), status)
	if err != nil {
		t.Fatalf("inserting order: %v", err)
	}
	return lastID(t, res)
}

func lastID(t *testing.T, res sql.Result) uint {
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("reading insert id: %v", err)
	}
	return uint(id)
}
