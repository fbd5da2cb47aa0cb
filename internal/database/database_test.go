//go:build integration
// +build integration

package database_test

import (
	"strings"
	"testing"

	"contacthub-backend/internal/database"
	"contacthub-backend/internal/testutils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scratchDSN creates a throwaway database on the shared container and returns
// a DSN pointing at it, so schema assertions are not polluted by the migrated
// shared database.
func scratchDSN(t *testing.T, base *testutils.BaseTestSuite, name string) string {
	t.Helper()
	base.DB.Exec(`DROP DATABASE IF EXISTS ` + name)
	require.NoError(t, base.DB.Exec(`CREATE DATABASE `+name).Error)
	t.Cleanup(func() {
		base.DB.Exec(`DROP DATABASE IF EXISTS ` + name)
	})
	return strings.Replace(base.Config.DatabaseURL, "/testdb", "/"+name, 1)
}

func TestInitialize_MigratesByDefault(t *testing.T) {
	base := testutils.SetupTestSuite(t)
	dsn := scratchDSN(t, base, "init_default_test")

	db, err := database.Initialize(dsn, &database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	defer closeDB(db)

	m := db.Migrator()
	for _, table := range []string{"organizations", "users", "memberships", "contacts", "contact_notes", "contact_meta"} {
		require.True(t, m.HasTable(table), "expected table %q after default init", table)
	}
	require.True(t, m.HasIndex("contacts", "idx_contacts_org_email_lower"))
}

func TestInitialize_SkipMigrateLeavesSchemaAlone(t *testing.T) {
	base := testutils.SetupTestSuite(t)
	dsn := scratchDSN(t, base, "init_skip_test")

	db, err := database.Initialize(dsn, &database.Options{
		LogLevel:    logger.Silent,
		SkipMigrate: true,
	})
	require.NoError(t, err)
	defer closeDB(db)

	m := db.Migrator()
	for _, table := range []string{"organizations", "users", "contacts"} {
		require.False(t, m.HasTable(table), "table %q must not exist when migration is skipped", table)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
