package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

type Config struct {
	DB        DBConfig
	Server    ServerConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	Poll      PollConfig
	RateLimit RateLimitConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
	AllowOrigins string
}

type LoggerConfig struct {
	Env   string
	Level string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// PollConfig holds the knobs of the poll engine itself.
type PollConfig struct {
	OptionCountCacheTTL time.Duration
}

type RateLimitConfig struct {
	GlobalMax       int
	GlobalWindow    time.Duration
	StartPollMax    int
	StartPollWindow time.Duration
}

func setDefaults() {
	viper.SetDefault("db.driver", DriverPostgres)
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.max_open_conns", 20)
	viper.SetDefault("db.max_idle_conns", 5)
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.idle_timeout", 20)
	viper.SetDefault("server.body_limit", 1024*1024)
	viper.SetDefault("server.allow_origins", "*")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("jwt.access_token_ttl", "24h")
	viper.SetDefault("poll.option_count_cache_ttl", "30m")
	viper.SetDefault("rate_limit.global_max", 1000)
	viper.SetDefault("rate_limit.global_window", "24h")
	viper.SetDefault("rate_limit.start_poll_max", 100)
	viper.SetDefault("rate_limit.start_poll_window", "24h")
}

func LoadConfig() (*Config, error) {
	// A missing .env file is not an error, the process environment still applies.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Driver:       viper.GetString("db.driver"),
			Host:         viper.GetString("db.host"),
			Port:         viper.GetInt("db.port"),
			User:         viper.GetString("db.user"),
			Password:     viper.GetString("db.password"),
			DBName:       viper.GetString("db.name"),
			SSLMode:      viper.GetString("db.sslmode"),
			MaxOpenConns: viper.GetInt("db.max_open_conns"),
			MaxIdleConns: viper.GetInt("db.max_idle_conns"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  viper.GetDuration("server.idle_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
			AllowOrigins: viper.GetString("server.allow_origins"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		JWT: JWTConfig{
			SecretKey:      viper.GetString("jwt.secret_key"),
			AccessTokenTTL: viper.GetDuration("jwt.access_token_ttl"),
		},
		Poll: PollConfig{
			OptionCountCacheTTL: viper.GetDuration("poll.option_count_cache_ttl"),
		},
		RateLimit: RateLimitConfig{
			GlobalMax:       viper.GetInt("rate_limit.global_max"),
			GlobalWindow:    viper.GetDuration("rate_limit.global_window"),
			StartPollMax:    viper.GetInt("rate_limit.start_poll_max"),
			StartPollWindow: viper.GetDuration("rate_limit.start_poll_window"),
		},
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		viper.Set("db.port", port)
		config.DB.Port = viper.GetInt("db.port")
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverOracle:
	default:
		return fmt.Errorf("unsupported db driver: %q", c.DB.Driver)
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key must be set")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("jwt.access_token_ttl must be positive")
	}
	if c.Poll.OptionCountCacheTTL <= 0 {
		return fmt.Errorf("poll.option_count_cache_ttl must be positive")
	}
	return nil
}

func (c *Config) GetDSN() string {
	dsn := url.URL{
		Scheme: c.DB.Driver,
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   "/" + c.DB.DBName,
	}
	if c.DB.Driver == DriverPostgres {
		dsn.RawQuery = url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode()
	}
	return dsn.String()
}
