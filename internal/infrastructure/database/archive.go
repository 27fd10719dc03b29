package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
)

// ArchiveTables renames every model's table to a "<name>_archive_<suffix>"
// name using the migrator's RenameTable, then recreates the live tables
// empty via AutoMigrate, per spec.md §4.6's archive-on-reset step. suffix
// is caller-supplied (e.g. a Unix timestamp) since this package never
// calls time.Now itself.
func ArchiveTables(db *gorm.DB, suffix string) error {
	for _, model := range persistence.AllModels() {
		if !db.Migrator().HasTable(model) {
			continue
		}
		archived := fmt.Sprintf("%s_archive_%s", tableName(db, model), suffix)
		if err := db.Migrator().RenameTable(model, archived); err != nil {
			return fmt.Errorf("archive table for %T: %w", model, err)
		}
	}
	return AutoMigrate(db)
}

func tableName(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
