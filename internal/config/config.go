package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Social     Social     `yaml:"social"`
	Feed       Feed       `yaml:"feed"`
	Auth       Auth       `yaml:"auth"`
	Moderation Moderation `yaml:"moderation"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

// Social configures the remote feed service this board posts through.
type Social struct {
	BaseURL     string `yaml:"baseURL"`
	BearerToken string `yaml:"bearerToken"`
	AccountRef  string `yaml:"accountRef"`
}

type Feed struct {
	FreshnessWindow time.Duration `yaml:"freshnessWindow"`
	FetchLimit      int           `yaml:"fetchLimit"`
}

type Auth struct {
	JWTSecret string `yaml:"jwtSecret"`
	Audience  string `yaml:"audience"`
	// SessionTTL bounds how long a ghost name stays resolvable.
	SessionTTL time.Duration `yaml:"sessionTTL"`
}

type Moderation struct {
	ProhibitedWords []string `yaml:"prohibitedWords"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = ":8000"
	}
	if config.Feed.FreshnessWindow == 0 {
		config.Feed.FreshnessWindow = 5 * time.Minute
	}
	if config.Feed.FetchLimit == 0 {
		config.Feed.FetchLimit = 20
	}
	if config.Auth.SessionTTL == 0 {
		config.Auth.SessionTTL = 24 * time.Hour
	}

	return config, nil
}
