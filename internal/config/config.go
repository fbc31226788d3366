package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceMySQL  = "mysql"
	SourceFolder = "folder"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Source     `yaml:"source"`
	Cache      `yaml:"cache"`
	Upload     `yaml:"upload"`

	DBUser     string `yaml:"db_user" env:"DB_USER"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// AllowedOrigins фронтенд, которому разрешен CORS
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// Source откуда берутся книги складов: mysql или папка с xlsx.
type Source struct {
	Kind   string `yaml:"kind" env:"SOURCE_KIND" env-default:"folder"`
	Folder string `yaml:"folder" env:"SOURCE_FOLDER" env-default:"./workbooks"`
	Sheet  string `yaml:"sheet" env-default:"Input"`
}

type Cache struct {
	TTL  time.Duration `yaml:"ttl" env-default:"60s"`
	Size int           `yaml:"size" env-default:"32"`
}

type Upload struct {
	MaxBytes int64   `yaml:"max_bytes" env-default:"20971520"`
	RPS      float64 `yaml:"rps" env-default:"1"`
	Burst    int     `yaml:"burst" env-default:"5"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load читает yaml и накладывает переменные окружения.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// без файла работаем только на env и значениях по умолчанию
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
