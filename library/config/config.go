package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	cb "github.com/Astemirdum/curator-library/pkg/circuit_breaker"
	"github.com/Astemirdum/curator-library/pkg/kafka"
	"github.com/Astemirdum/curator-library/pkg/logger"
	"github.com/Astemirdum/curator-library/pkg/openlibrary"
	"github.com/Astemirdum/curator-library/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Metadata struct {
	Timeout  time.Duration `envconfig:"METADATA_TIMEOUT" default:"5s"`
	RedisURL string        `envconfig:"REDIS_URL" json:"-"`
	CacheTTL time.Duration `envconfig:"METADATA_CACHE_TTL" default:"0s"`
}

type Config struct {
	Server      HTTPServer         `yaml:"server"`
	Storage     string             `yaml:"storage" envconfig:"LIBRARY_STORAGE" default:"postgres"`
	Database    postgres.DB        `yaml:"db"`
	Kafka       kafka.Config       `yaml:"kafka"`
	OpenLibrary openlibrary.Config `yaml:"openLibrary"`
	Breaker     cb.Config          `yaml:"breaker"`
	Metadata    Metadata           `yaml:"metadata"`
	Log         logger.Log         `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
// Options act as defaults; environment variables that are set take precedence.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
