package database

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/arjunr/formbuilder/config"
	"github.com/arjunr/formbuilder/log"
)

// seedAdminUser creates the admin account on first start. An existing
// account is never touched, so password rotation goes through the DB.
func seedAdminUser(db *sql.DB, cfg config.Config) error {
	var exists bool
	err := db.QueryRow("SELECT 1 FROM user WHERE username = 'admin'").Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if cfg.AdminPassword == "" {
		log.Warn("no admin user and no -admin-password given, admin API will be unreachable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec("INSERT INTO user (username, password_hash) VALUES ('admin', ?)", hash)
	if err != nil {
		return err
	}
	log.Info("created admin user")
	return nil
}
