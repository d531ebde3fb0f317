package model

import "time"

// Batch values as stored in the users.batch column.  Employees belong to
// one of two cohorts which alternate office days when the rotation
// policy is enabled.
const (
	BatchOne = "BATCH_1"
	BatchTwo = "BATCH_2"
)

// User represents an employee record as stored in the `users` table.
// User data is owned by an external directory and consumed read-only
// here; the service never creates or mutates users at runtime, it only
// lists them and validates booking requests against them.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the employee.
//  Batch     – cohort tag (BATCH_1 or BATCH_2).
//  CreatedAt – timestamp of the row import.
type User struct {
	ID        uint64    // users.id
	Name      string    // users.name
	Batch     string    // users.batch
	CreatedAt time.Time // users.created_at
}
