package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Azure    AzureConfig
	Upload   UploadConfig
	Session  SessionConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// AzureConfig holds Azure service configuration
type AzureConfig struct {
	OpenAI  OpenAIConfig
	Storage StorageConfig
}

// OpenAIConfig holds Azure OpenAI configuration. All fields empty means
// AI enhancement is disabled and the rule-based enhancer is used alone.
type OpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
}

// Enabled reports whether AI enhancement is configured
func (c OpenAIConfig) Enabled() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.Deployment != ""
}

// StorageConfig holds Azure Blob Storage configuration
type StorageConfig struct {
	AccountName     string
	AccountKey      string
	ReportContainer string
}

// UploadConfig holds report upload limits
type UploadConfig struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
	ProcessingDelay   time.Duration
}

// AllowsExtension reports whether the extension (without dot) is accepted
func (c UploadConfig) AllowsExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SessionConfig holds transient result buffer configuration
type SessionConfig struct {
	TTL time.Duration
}

// SecurityConfig holds at-rest encryption settings. An empty key disables
// encryption of stored report text.
type SecurityConfig struct {
	EncryptionKey string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.connmaxlifetime", 5*time.Minute)

	// Azure Storage defaults
	v.SetDefault("azure.storage.reportcontainer", "medical-reports")

	// Upload defaults
	v.SetDefault("upload.maxsizebytes", int64(16*1024*1024))
	v.SetDefault("upload.allowedextensions", []string{"pdf", "png", "jpg", "jpeg", "tiff", "txt"})
	v.SetDefault("upload.processingdelay", 1500*time.Millisecond)

	// Session defaults
	v.SetDefault("session.ttl", 30*time.Minute)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")

	// Azure OpenAI
	v.BindEnv("azure.openai.endpoint", "AZURE_OPENAI_ENDPOINT")
	v.BindEnv("azure.openai.apikey", "AZURE_OPENAI_API_KEY")
	v.BindEnv("azure.openai.deployment", "AZURE_OPENAI_DEPLOYMENT")

	// Azure Storage
	v.BindEnv("azure.storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("azure.storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("azure.storage.reportcontainer", "AZURE_STORAGE_REPORT_CONTAINER")

	// Upload
	v.BindEnv("upload.maxsizebytes", "UPLOAD_MAX_SIZE_BYTES")
	v.BindEnv("upload.processingdelay", "UPLOAD_PROCESSING_DELAY")

	// Session
	v.BindEnv("session.ttl", "SESSION_TTL")

	// Security
	v.BindEnv("security.encryptionkey", "ENCRYPTION_KEY")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}

	if c.Azure.Storage.AccountName == "" || c.Azure.Storage.AccountKey == "" {
		return fmt.Errorf("azure storage credentials are required (account name + key)")
	}

	// OpenAI is optional but must be complete when partially set
	openAI := c.Azure.OpenAI
	partiallySet := openAI.Endpoint != "" || openAI.APIKey != "" || openAI.Deployment != ""
	if partiallySet && !openAI.Enabled() {
		return fmt.Errorf("azure.openai requires endpoint, apikey, and deployment together")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.maxsizebytes must be positive")
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("upload.allowedextensions must not be empty")
	}

	if key := c.Security.EncryptionKey; key != "" && len(key) != 32 {
		return fmt.Errorf("security.encryptionkey must be exactly 32 bytes, got %d", len(key))
	}

	return nil
}
