package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careercrafter/career-crafter-api/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 0.8, cfg.Scoring.SkillWeight)
	assert.Equal(t, 3, cfg.Scoring.DefaultTopN)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.True(t, cfg.Worker.Enabled)
	assert.Empty(t, cfg.Scoring.InDemandSkills)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SKILL_WEIGHT", "0.6")
	t.Setenv("SALARY_WEIGHT", "0.4")
	t.Setenv("IN_DEMAND_SKILLS", "Go, Rust ,,SQL")
	t.Setenv("WORKER_ENABLED", "false")
	t.Setenv("WORKER_POLL_INTERVAL", "250ms")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Scoring.SkillWeight)
	assert.Equal(t, 0.4, cfg.Scoring.SalaryWeight)
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, cfg.Scoring.InDemandSkills)
	assert.False(t, cfg.Worker.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.PollInterval)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Contains(t, cfg.GetDatabaseDSN(), "sslmode=require")
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")
	t.Setenv("WORKER_POLL_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"negative weight", map[string]string{"SALARY_WEIGHT": "-1"}},
		{"zero recommendation weights", map[string]string{"SKILL_WEIGHT": "0", "SALARY_WEIGHT": "0"}},
		{"zero ceiling", map[string]string{"EXPERIENCE_CEILING_YEARS": "0"}},
		{"threshold out of range", map[string]string{"FEEDBACK_THRESHOLD": "120"}},
		{"unknown storage driver", map[string]string{"STORAGE_DRIVER": "ftp"}},
		{"s3 without bucket", map[string]string{"STORAGE_DRIVER": "s3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsScoringErrorsInOrder(t *testing.T) {
	t.Setenv("SALARY_WEIGHT", "-1")
	t.Setenv("RESUME_EDUCATION_WEIGHT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "invalid scoring configuration: salary weight must be a non-negative number, got -1", err.Error())
}

func TestScoringEngineKeepsEducationScores(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	engine := cfg.Scoring.Engine()
	assert.Equal(t, cfg.Scoring.SkillWeight, engine.SkillWeight)
	assert.Equal(t, 100.0, engine.EducationScores[models.EducationPhD])
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       LogConfig
		env       string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"development defaults to text", LogConfig{Level: "debug"}, "development", logrus.DebugLevel, false},
		{"production defaults to json", LogConfig{Level: "warn"}, "production", logrus.WarnLevel, true},
		{"explicit text format", LogConfig{Level: "info", Format: "text"}, "production", logrus.InfoLevel, false},
		{"bad level falls back to info", LogConfig{Level: "loud"}, "production", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLogger(tt.cfg, tt.env)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
