package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/services"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Scoring  ScoringConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	Qdrant   QdrantConfig
	Worker   WorkerConfig
	Events   EventsConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	// Path to a YAML catalog. Empty uses the built-in catalog.
	Path string
}

type ScoringConfig struct {
	SkillWeight            float64
	SalaryWeight           float64
	ResumeSkillsWeight     float64
	ResumeExperienceWeight float64
	ResumeEducationWeight  float64
	ExperienceCeilingYears int
	FeedbackThreshold      float64
	DefaultTopN            int
	// Overrides the catalog's in-demand skills when set.
	InDemandSkills []string
}

type StorageConfig struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
	S3          S3Config
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type WorkerConfig struct {
	Enabled          bool
	Concurrency      int
	RetryMaxAttempts int
	PollInterval     time.Duration
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment and defaults")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			BodyLimit:    getEnvAsInt("BODY_LIMIT", 12*1024*1024),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "career_crafter"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Scoring: ScoringConfig{
			SkillWeight:            getEnvAsFloat("SKILL_WEIGHT", 0.8),
			SalaryWeight:           getEnvAsFloat("SALARY_WEIGHT", 0.2),
			ResumeSkillsWeight:     getEnvAsFloat("RESUME_SKILLS_WEIGHT", 0.5),
			ResumeExperienceWeight: getEnvAsFloat("RESUME_EXPERIENCE_WEIGHT", 0.3),
			ResumeEducationWeight:  getEnvAsFloat("RESUME_EDUCATION_WEIGHT", 0.2),
			ExperienceCeilingYears: getEnvAsInt("EXPERIENCE_CEILING_YEARS", 10),
			FeedbackThreshold:      getEnvAsFloat("FEEDBACK_THRESHOLD", 70),
			DefaultTopN:            getEnvAsInt("DEFAULT_TOP_N", 3),
			InDemandSkills:         getEnvAsList("IN_DEMAND_SKILLS"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				Region:    getEnv("S3_REGION", "auto"),
				Bucket:    getEnv("S3_BUCKET", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
			},
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "career_crafter_careers"),
		},
		Worker: WorkerConfig{
			Enabled:          getEnvAsBool("WORKER_ENABLED", true),
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			PollInterval:     getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "career_crafter.events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Scoring.Engine().Validate(); err != nil {
		return fmt.Errorf("invalid scoring configuration: %w", err)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	return nil
}

// Engine returns the scorer settings, keeping the built-in education scores.
func (s ScoringConfig) Engine() services.ScoringConfig {
	scoring := services.DefaultScoringConfig()
	scoring.SkillWeight = s.SkillWeight
	scoring.SalaryWeight = s.SalaryWeight
	scoring.ResumeSkillsWeight = s.ResumeSkillsWeight
	scoring.ResumeExperienceWeight = s.ResumeExperienceWeight
	scoring.ResumeEducationWeight = s.ResumeEducationWeight
	scoring.ExperienceCeilingYears = s.ExperienceCeilingYears
	scoring.FeedbackThreshold = s.FeedbackThreshold
	return scoring
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
