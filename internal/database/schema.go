package database

import (
	"context"
	"database/sql"
)

// schema holds the idempotent DDL for the bulletin tables.  Statements are
// executed in order at startup; CREATE TABLE IF NOT EXISTS keeps repeated
// startups safe against an already-provisioned database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email     VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role      CHAR(1) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS eventtypes (
		eventtypeid   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		eventtypename VARCHAR(100) NOT NULL UNIQUE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS events (
		eventid          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		eventname        VARCHAR(255) NOT NULL,
		eventdescription TEXT NULL,
		starttime        DATETIME NOT NULL,
		endtime          DATETIME NOT NULL,
		eventlocation    VARCHAR(255) NOT NULL,
		eventhost        VARCHAR(255) NULL,
		eventurl         VARCHAR(512) NULL,
		eventlinktext    VARCHAR(255) NULL,
		eventimagepath   VARCHAR(512) NULL,
		eventtypeid      BIGINT UNSIGNED NULL,
		CONSTRAINT fk_events_type FOREIGN KEY (eventtypeid) REFERENCES eventtypes (eventtypeid)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS event_submissions (
		submissionid     BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		eventname        VARCHAR(255) NOT NULL,
		eventdescription TEXT NOT NULL,
		starttime        DATETIME NOT NULL,
		endtime          DATETIME NOT NULL,
		eventlocation    VARCHAR(255) NOT NULL,
		eventhost        VARCHAR(255) NULL,
		eventurl         VARCHAR(512) NULL,
		eventlinktext    VARCHAR(255) NULL,
		eventimagepath   VARCHAR(512) NULL,
		eventtypeid      BIGINT UNSIGNED NULL,
		submitterid      BIGINT UNSIGNED NOT NULL,
		status           ENUM('pending','approved','denied') NOT NULL DEFAULT 'pending',
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_sub_type FOREIGN KEY (eventtypeid) REFERENCES eventtypes (eventtypeid),
		CONSTRAINT fk_sub_user FOREIGN KEY (submitterid) REFERENCES users (id)
	) ENGINE=InnoDB`,
}

// seedTypes is inserted only when the eventtypes table is empty so a fresh
// install has something to put in the category dropdowns.
var seedTypes = []string{"Workshop", "Social", "Lecture", "Club Meeting", "Performance", "Sports"}

// EnsureSchema applies the DDL and seeds reference data.  It is safe to call
// on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eventtypes`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, name := range seedTypes {
			if _, err := db.ExecContext(ctx, `INSERT INTO eventtypes (eventtypename) VALUES (?)`, name); err != nil {
				return err
			}
		}
	}
	return nil
}
