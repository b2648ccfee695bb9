package configuration

import (
	"os"
	"strconv"

	"social-manager/infrastructure/logger"

	"github.com/spf13/viper"
)

// C is the process-wide configuration, loaded once at startup. Components
// receive the sections they need through their constructors; nothing reads C
// at call time.
var C Config

type Config struct {
	App       App       `json:"app"`
	Database  Database  `json:"database"`
	YouTube   YouTube   `json:"youtube"`
	Generator Generator `json:"generator"`
	Vault     Vault     `json:"vault"`
	Redis     Redis     `json:"redis"`
	Pubsub    Pubsub    `json:"pubsub"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

type YouTube struct {
	// RedirectURI is where Google sends the user back after consent. The
	// per-brand client id/secret live on the Brand record, not here.
	RedirectURI string   `json:"redirectUri"`
	Scopes      []string `json:"scopes"`
}

type Generator struct {
	BaseURL string `json:"baseUrl"`
}

type Vault struct {
	MasterKeyHex string `json:"masterKeyHex"`
}

type Redis struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

func init() {
	LoadConfig()
}

// LoadConfig reads config.json (optional) and applies environment overrides.
// Environment always wins so deployments can run without a config file.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		logger.GetLogger().WithField("error", err.Error()).Info("config.json not loaded; relying on environment")
	} else if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("failed to unmarshal config.json")
	}

	initApp(&C)
	initDatabase(&C)
	initYouTube(&C)
	initGenerator(&C)
	initVault(&C)
	initRedis(&C)
	initPubsub(&C)
}

func initApp(c *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.App.SecretKey = v
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 10010
	}
	if c.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initDatabase(c *Config) {
	if v := os.Getenv("PSQL_DB_NAME"); v != "" {
		c.Database.Psql.Name = v
	}
	if v := os.Getenv("PSQL_HOST"); v != "" {
		c.Database.Psql.Host = v
	}
	if v := os.Getenv("PSQL_PORT"); v != "" {
		c.Database.Psql.Port = v
	}
	if v := os.Getenv("PSQL_USER"); v != "" {
		c.Database.Psql.User = v
	}
	if v := os.Getenv("PSQL_PASSWORD"); v != "" {
		c.Database.Psql.Password = v
	}
	if v := os.Getenv("PSQL_SSL_MODE"); v != "" {
		c.Database.Psql.SSLMode = v
	}
	// Local dev defaults
	if c.Database.Psql.Host == "" {
		c.Database.Psql.Host = "localhost"
	}
	if c.Database.Psql.Port == "" {
		c.Database.Psql.Port = "5432"
	}
	if c.Database.Psql.Name == "" {
		c.Database.Psql.Name = "social_manager"
	}
	if c.Database.Psql.User == "" {
		c.Database.Psql.User = "postgres"
	}
	if c.Database.Psql.SSLMode == "" {
		c.Database.Psql.SSLMode = "disable"
	}
}

func initYouTube(c *Config) {
	if v := os.Getenv("YOUTUBE_REDIRECT_URI"); v != "" {
		c.YouTube.RedirectURI = v
	}
	if c.YouTube.RedirectURI == "" {
		c.YouTube.RedirectURI = "http://localhost:10010/auth/youtube/callback"
	}
	if len(c.YouTube.Scopes) == 0 {
		c.YouTube.Scopes = []string{
			"https://www.googleapis.com/auth/youtube",
			"https://www.googleapis.com/auth/youtube.upload",
		}
	}
}

func initGenerator(c *Config) {
	if v := os.Getenv("VIDEO_GENERATOR_API_URL"); v != "" {
		c.Generator.BaseURL = v
	}
	if c.Generator.BaseURL == "" {
		c.Generator.BaseURL = "http://localhost:8080"
	}
}

func initVault(c *Config) {
	if v := os.Getenv("ENCRYPTION_KEY"); v != "" {
		c.Vault.MasterKeyHex = v
	}
	if c.Vault.MasterKeyHex == "" {
		logger.GetLogger().Warn("ENCRYPTION_KEY not set; credential storage will be unavailable")
	}
}

func initRedis(c *Config) {
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
}

func initPubsub(c *Config) {
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		c.Pubsub.ProjectID = v
	}
	if v := os.Getenv("PUBSUB_TOPIC"); v != "" {
		c.Pubsub.Topic = v
	}
	if c.Pubsub.Topic == "" {
		c.Pubsub.Topic = "publish-events"
	}
}
