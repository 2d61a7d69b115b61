package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env    string       `env-default:"local" yaml:"env"`                       // Env is the current environment: local, dev, prod.
	HTTP   HTTPConfig   `                    yaml:"http"`                      // HTTP holds the console listener settings.
	EMS    EMSConfig    `                    yaml:"ems"   env-required:"true"` // EMS holds the upstream EMS API settings.
	Redis  RedisConfig  `                    yaml:"redis"`                     // Redis holds the session store settings.
	Cookie CookieConfig `                    yaml:"cookie"`                    // Cookie holds the session cookie settings.
}

// HTTPConfig struct holds the listener settings of the console itself.
type HTTPConfig struct {
	Address string `yaml:"address" env-default:":8080"` // Address is the host:port the console listens on.
}

// EMSConfig struct holds the connection details for the remote EMS API.
type EMSConfig struct {
	BaseURL string        `yaml:"url"`                       // BaseURL is the EMS API root in format `https://example.com`
	Timeout time.Duration `yaml:"timeout" env-default:"15s"` // Timeout bounds every request to the EMS API.
}

// RedisConfig struct holds the connection details for the session store.
type RedisConfig struct {
	Addr       string        `yaml:"addr"        env-default:"localhost:6379"` // Addr is the Redis server address.
	Password   string        `yaml:"password"`                                 // Password is the Redis password, empty when unset.
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"12h"`            // SessionTTL is how long an idle session survives.
}

// CookieConfig struct holds the session cookie settings.
type CookieConfig struct {
	Name   string `yaml:"name"   env-default:"ems_session"` // Name is the session cookie name.
	Secure bool   `yaml:"secure"`                           // Secure marks the cookie HTTPS-only.
}

// MustLoad loads the configuration from a YAML file and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load() // load .env if present

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic("config error: " + err.Error())
	}

	viper.SetDefault("http.address", ":8080")
	viper.SetDefault("ems.timeout", 15*time.Second)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.session_ttl", 12*time.Hour)
	viper.SetDefault("cookie.name", "ems_session")

	return &Config{
		Env: viper.GetString("env"),
		HTTP: HTTPConfig{
			Address: viper.GetString("http.address"),
		},
		EMS: EMSConfig{
			BaseURL: viper.GetString("ems.url"),
			Timeout: viper.GetDuration("ems.timeout"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("redis.addr"),
			Password:   viper.GetString("redis.password"),
			SessionTTL: viper.GetDuration("redis.session_ttl"),
		},
		Cookie: CookieConfig{
			Name:   viper.GetString("cookie.name"),
			Secure: viper.GetBool("cookie.secure"),
		},
	}
}
