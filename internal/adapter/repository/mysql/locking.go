package mysql

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withLock adds SELECT ... FOR UPDATE. SQLite (the test database) has
// no row locks and a single writer, so the clause is skipped there.
func withLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
