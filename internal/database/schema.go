package database

import (
	"context"
	"database/sql"
	"log"
)

// schemaStatements creates the three tables on first boot. The bookings
// table carries a generated active_key column that is 'A' for ACTIVE
// rows and NULL otherwise; since MySQL unique indexes admit any number
// of NULLs, uq_seat_date and uq_user_date enforce at-most-one ACTIVE
// booking per seat/date and per user/date while keeping every
// CANCELLED row for audit.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(100) NOT NULL,
		batch      ENUM('BATCH_1','BATCH_2') NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		seat_number INT UNSIGNED NOT NULL,
		seat_type   ENUM('FIXED','FLOATER') NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seat_number (seat_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id      BIGINT UNSIGNED NOT NULL,
		seat_id      BIGINT UNSIGNED NOT NULL,
		booking_date DATE NOT NULL,
		status       ENUM('ACTIVE','CANCELLED') NOT NULL DEFAULT 'ACTIVE',
		active_key   CHAR(1) GENERATED ALWAYS AS (IF(status = 'ACTIVE', 'A', NULL)) STORED,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seat_date (seat_id, booking_date, active_key),
		UNIQUE KEY uq_user_date (user_id, booking_date, active_key),
		KEY idx_date_status (booking_date, status),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_seat FOREIGN KEY (seat_id) REFERENCES seats (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedReferenceData populates the seat catalog and the employee
// directory mirror when their tables are empty, so a fresh deployment
// is immediately usable by the booking client. Existing data is never
// touched.
func SeedReferenceData(ctx context.Context, db *sql.DB) error {
	empty, err := tableEmpty(ctx, db, "seats")
	if err != nil {
		return err
	}
	if empty {
		const q = `INSERT INTO seats (seat_number, seat_type) VALUES
			(1,'FIXED'),(2,'FIXED'),(3,'FIXED'),(4,'FIXED'),
			(5,'FIXED'),(6,'FIXED'),(7,'FIXED'),(8,'FIXED'),
			(9,'FLOATER'),(10,'FLOATER')`
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
		log.Println("seeded default seat catalog (10 seats)")
	}

	empty, err = tableEmpty(ctx, db, "users")
	if err != nil {
		return err
	}
	if empty {
		const q = `INSERT INTO users (name, batch) VALUES
			('Aarav Shah','BATCH_1'),
			('Diya Patel','BATCH_1'),
			('Rohan Mehta','BATCH_1'),
			('Isha Verma','BATCH_2'),
			('Kabir Nair','BATCH_2'),
			('Meera Iyer','BATCH_2')`
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
		log.Println("seeded default employee directory (6 users)")
	}
	return nil
}

func tableEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	// table comes from the two constant call sites above, never from input
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
