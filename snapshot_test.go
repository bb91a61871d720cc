package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSummarizeHistory(t *testing.T) {
	stats := summarizeHistory(nil)
	if stats.Count != 0 || stats.FirstBMI != nil || stats.MinBMI != nil {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	rows := []snapshotRow{{BMI: 28.0}, {BMI: 26.5}, {BMI: 27.0}, {BMI: 25.5}}
	stats = summarizeHistory(rows)
	if stats.Count != 4 {
		t.Errorf("expected count 4, got %d", stats.Count)
	}
	if *stats.FirstBMI != 28.0 || *stats.LastBMI != 25.5 {
		t.Errorf("unexpected first/last %v/%v", *stats.FirstBMI, *stats.LastBMI)
	}
	if *stats.BMIChange != -2.5 {
		t.Errorf("expected change -2.5, got %v", *stats.BMIChange)
	}
	if *stats.MinBMI != 25.5 || *stats.MaxBMI != 28.0 {
		t.Errorf("unexpected min/max %v/%v", *stats.MinBMI, *stats.MaxBMI)
	}
}

func TestParseDateRange(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		ok    bool
	}{
		{"start=2024-01-01&end=2024-01-31", true},
		{"start=2024-01-01&end=2024-01-01", true},
		{"start=2024-01-01", false},
		{"start=01/01/2024&end=2024-01-31", false},
		{"start=2024-01-01&end=tomorrow", false},
		{"start=2024-02-01&end=2024-01-01", false},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/snapshot/history?"+tt.query, nil)

		_, _, ok := parseDateRange(c)
		if ok != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.query, tt.ok, ok)
		}
		if !ok && w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.query, w.Code)
		}
	}
}

func TestDeleteSnapshot_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	for _, id := range []string{"abc", "1.5", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("DELETE", "/api/snapshot/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", 1)

		h.deleteSnapshot(c)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		if ok != tt.ok || (ok && token != tt.token) {
			t.Errorf("%q: expected (%q, %v), got (%q, %v)", tt.header, tt.token, tt.ok, token, ok)
		}
	}
}

func TestDateOnly_JSON(t *testing.T) {
	d := DateOnly{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-09"` {
		t.Errorf("unexpected %s", b)
	}

	var back DateOnly
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("expected %v, got %v", d.Time, back.Time)
	}
}
