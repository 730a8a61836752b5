package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/ErlanBelekov/friendlist/internal/infrastructure/postgres/migrations"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintViolated(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: friendEmailUniqueKey}

	if !constraintViolated(fmt.Errorf("scan friend: %w", dup), friendEmailUniqueKey) {
		t.Error("wrapped unique violation not detected")
	}
	if constraintViolated(dup, "users_email_key") {
		t.Error("matched the wrong constraint")
	}
	if constraintViolated(&pgconn.PgError{Code: "23503", ConstraintName: friendEmailUniqueKey}, friendEmailUniqueKey) {
		t.Error("foreign key violation reported as unique violation")
	}
	if constraintViolated(errors.New("boom"), friendEmailUniqueKey) {
		t.Error("plain error reported as unique violation")
	}
}

func TestValidID(t *testing.T) {
	if !validID("6f1c2d3e-4a5b-4c6d-8e7f-0123456789ab") {
		t.Error("uuid rejected")
	}
	for _, id := range []string{"", "1", "not-a-uuid"} {
		if validID(id) {
			t.Errorf("validID(%q) = true", id)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("embedded migrations = %v, want 2 files", files)
	}
}
