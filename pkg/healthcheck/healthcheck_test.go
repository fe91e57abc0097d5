package healthcheck

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func staticChecker(status Status, message string) Checker {
	return NewCustomChecker(func(ctx context.Context) (Status, string, interface{}) {
		return status, message, nil
	})
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db
}

func TestHealthCheck_Check_NoCheckers(t *testing.T) {
	hc := New("1.0.0", zaptest.NewLogger(t))

	response := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Empty(t, response.Checks)
	assert.False(t, response.Timestamp.IsZero())
}

func TestHealthCheck_Check_WorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zaptest.NewLogger(t))
			for i, s := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(s, ""))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			require.Len(t, response.Checks, len(tt.statuses))
		})
	}
}

func TestHealthCheck_Check_SortedAndNamed(t *testing.T) {
	hc := New("1.0.0", zaptest.NewLogger(t))
	hc.Register("model", staticChecker(StatusDegraded, "no key"))
	hc.Register("database", staticChecker(StatusHealthy, ""))
	hc.Register("drafts", staticChecker(StatusHealthy, ""))

	response := hc.Check(context.Background())

	names := make([]string, 0, len(response.Checks))
	for _, c := range response.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"database", "drafts", "model"}, names)
	assert.Equal(t, "no key", response.Checks[2].Message)
}

func TestHealthCheck_Check_Timeout(t *testing.T) {
	hc := New("1.0.0", zaptest.NewLogger(t))
	hc.SetTimeout(20 * time.Millisecond)
	hc.Register("slow", NewCustomChecker(func(ctx context.Context) (Status, string, interface{}) {
		<-ctx.Done()
		return StatusUnhealthy, ctx.Err().Error(), nil
	}))

	response := hc.Check(context.Background())

	assert.Equal(t, StatusUnhealthy, response.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), response.Checks[0].Message)
}

func TestDatabaseChecker(t *testing.T) {
	db := openSQLite(t)

	check := NewDatabaseChecker(db).Check(context.Background())

	assert.Equal(t, StatusHealthy, check.Status)
	metadata, ok := check.Metadata.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sqlite", metadata["dialect"])
}

func TestDatabaseChecker_Closed(t *testing.T) {
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	check := NewDatabaseChecker(db).Check(context.Background())

	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}

func TestResponse_MarshalJSON(t *testing.T) {
	response := Response{
		Status:        StatusHealthy,
		Version:       "1.0.0",
		Checks:        []Check{{Name: "database", Status: StatusHealthy, Duration: 1500 * time.Millisecond}},
		TotalDuration: 2 * time.Second,
	}

	data, err := json.Marshal(response)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2000.0, decoded["total_duration_ms"])
	checks := decoded["checks"].([]interface{})
	assert.Equal(t, 1500.0, checks[0].(map[string]interface{})["duration_ms"])
}
