package postgres_test

import (
	"testing"

	"fast-generic-api/pkg/postgres"
)

func TestDSN(t *testing.T) {
	cfg := postgres.Config{Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "items"}
	want := "host=db port=5432 user=app password=secret dbname=items sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	cfg.SSLMode = "require"
	if got := cfg.DSN(); got != "host=db port=5432 user=app password=secret dbname=items sslmode=require" {
		t.Errorf("unexpected DSN %q", got)
	}
}
