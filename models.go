package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// snapshotRow maps to health_snapshots. Data holds the flat snapshot as jsonb;
// bmi and bmi_category are duplicated into columns for range queries.
type snapshotRow struct {
	ID          int             `json:"id"           db:"id"`
	UserID      int             `json:"user_id"      db:"user_id"`
	Date        DateOnly        `json:"date"         db:"date"`
	Data        health.Snapshot `json:"data"         db:"data"`
	BMI         float64         `json:"bmi"          db:"bmi"`
	BMICategory string          `json:"bmi_category" db:"bmi_category"`
	CreatedAt   *time.Time      `json:"created_at"   db:"created_at"`
}

// historyStats summarises the snapshots of a GET /api/snapshot/history range.
// BMI fields are nil when the range is empty.
type historyStats struct {
	Count     int      `json:"count"`
	FirstBMI  *float64 `json:"first_bmi"`
	LastBMI   *float64 `json:"last_bmi"`
	BMIChange *float64 `json:"bmi_change"`
	MinBMI    *float64 `json:"min_bmi"`
	MaxBMI    *float64 `json:"max_bmi"`
}

// historyResponse is the response shape for GET /api/snapshot/history.
type historyResponse struct {
	Snapshots []snapshotRow `json:"snapshots"`
	Stats     historyStats  `json:"stats"`
}

// snapshotResponse is returned by PUT /api/snapshot: the calculation plus the
// stored row's id and date.
type snapshotResponse struct {
	health.Result
	ID   int      `json:"id"`
	Date DateOnly `json:"date"`
}
