package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Project{},
		&ProjectMembership{},
		&Invite{},
		&Task{},
		&TaskStage{},
		&Note{},
	); err != nil {
		return err
	}

	// Case-insensitive unique email for non-soft-deleted users.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email))) WHERE deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	// Point lookups on the public join path.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_invites_project_created " +
			"ON invites (project_id, created_at DESC)",
	).Error
}
