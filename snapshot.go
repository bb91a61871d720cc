package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// latestSnapshot returns the most recent snapshot for userID. This is the
// server-side counterpart of the client's single "bmiData" key.
func (h *Handler) latestSnapshot(c *gin.Context, userID int) (snapshotRow, error) {
	return queryOne[snapshotRow](h.db, c,
		`SELECT * FROM health_snapshots
		 WHERE user_id = @userID
		 ORDER BY date DESC, id DESC
		 LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
}

// saveSnapshot computes metrics for the posted form and stores them as the
// user's snapshot for today.
// PUT /api/snapshot. Body: same as POST /api/bmi/calculate.
// The UNIQUE(user_id, date) constraint means saving twice on one day updates in place.
func (h *Handler) saveSnapshot(c *gin.Context) {
	userID := c.GetInt("user_id")

	res, ok := evaluateRequest(c)
	if !ok {
		return
	}

	data, err := json.Marshal(res.Snapshot)
	if err != nil {
		log.Printf("[snapshot] marshal: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save snapshot")
		return
	}

	row, err := queryOne[snapshotRow](h.db, c,
		`INSERT INTO health_snapshots (user_id, date, data, bmi, bmi_category)
		 VALUES (@userID, @date, @data::jsonb, @bmi, @category)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			data         = EXCLUDED.data,
			bmi          = EXCLUDED.bmi,
			bmi_category = EXCLUDED.bmi_category,
			created_at   = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"date":     time.Now().Format("2006-01-02"),
			"data":     string(data),
			"bmi":      res.Metrics.BMI,
			"category": res.Metrics.BMICategory.String(),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save snapshot")
		return
	}

	c.JSON(http.StatusCreated, snapshotResponse{Result: res, ID: row.ID, Date: row.Date})
}

// getLatestSnapshot returns the user's most recent snapshot.
// GET /api/snapshot. 404 if the user has never saved one.
func (h *Handler) getLatestSnapshot(c *gin.Context) {
	row, err := h.latestSnapshot(c, c.GetInt("user_id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "no snapshot saved")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch snapshot")
		}
		return
	}
	c.JSON(http.StatusOK, row)
}

// getSnapshotHistory returns snapshots and BMI stats for a date range.
// GET /api/snapshot/history?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
func (h *Handler) getSnapshotHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	rows, err := queryMany[snapshotRow](h.db, c,
		`SELECT * FROM health_snapshots
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch snapshot history")
		return
	}
	// Ensure empty array (not null) in JSON
	if rows == nil {
		rows = []snapshotRow{}
	}

	c.JSON(http.StatusOK, historyResponse{Snapshots: rows, Stats: summarizeHistory(rows)})
}

// deleteSnapshot removes a snapshot by ID.
// DELETE /api/snapshot/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteSnapshot(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid snapshot id")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM health_snapshots WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete snapshot")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "snapshot not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDateRange reads and checks the start/end query params. On failure the
// response has already been written.
func parseDateRange(c *gin.Context) (start, end string, ok bool) {
	start = c.Query("start")
	end = c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// summarizeHistory computes range stats over rows ordered by date ascending.
func summarizeHistory(rows []snapshotRow) historyStats {
	stats := historyStats{Count: len(rows)}
	if len(rows) == 0 {
		return stats
	}

	first, last := rows[0].BMI, rows[len(rows)-1].BMI
	change := last - first
	minBMI, maxBMI := first, first
	for _, r := range rows[1:] {
		minBMI = min(minBMI, r.BMI)
		maxBMI = max(maxBMI, r.BMI)
	}

	stats.FirstBMI = &first
	stats.LastBMI = &last
	stats.BMIChange = &change
	stats.MinBMI = &minBMI
	stats.MaxBMI = &maxBMI
	return stats
}
