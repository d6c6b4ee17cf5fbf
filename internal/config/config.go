// config реализует конфигурацию harvester-а: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	S3        S3Config        `yaml:"s3"`
	TikTok    TikTokConfig    `yaml:"tiktok"`
	Detection DetectionConfig `yaml:"detection"`
	Input     InputConfig     `yaml:"input"`
	Upload    UploadConfig    `yaml:"upload"`
	Export    ExportConfig    `yaml:"export"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — служебный HTTP (livez/healthz/metrics) на время прогона.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к PostgreSQL.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// S3Config — объектное хранилище (S3/MinIO) для видео, превью и аватаров.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"          env:"S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id"     env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket"            env:"S3_BUCKET"`
	Region          string `yaml:"region"            env:"S3_REGION" env-default:"us-east-1"`
}

// TikTokConfig — параметры клиента площадки.
type TikTokConfig struct {
	BaseURL      string `yaml:"base_url"       env:"TIKTOK_BASE_URL"       env-default:"https://www.tiktok.com"`
	VideoBaseURL string `yaml:"video_base_url" env:"TIKTOK_VIDEO_BASE_URL" env-default:"https://www.tikwm.com"`
	UserAgent    string `yaml:"user_agent"     env:"TIKTOK_USER_AGENT"     env-default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:129.0) Gecko/20100101 Firefox/129.0"`
	// Размер страницы комментариев (count); курсор сдвигается на это значение.
	PageSize int `yaml:"page_size" env:"TIKTOK_PAGE_SIZE" env-default:"50"`
	// Ограничение параллельных запросов ответов.
	MaxConcurrent  int           `yaml:"max_concurrent"  env:"TIKTOK_MAX_CONCURRENT"  env-default:"6"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TIKTOK_REQUEST_TIMEOUT" env-default:"15s"`
}

// DetectionConfig — политика классификации.
type DetectionConfig struct {
	IncludeFile string  `yaml:"include_file" env:"INCLUDE_FILE" env-default:"include.txt"`
	DenyFile    string  `yaml:"deny_file"    env:"DENY_FILE"    env-default:"do_not_include.txt"`
	Threshold   float64 `yaml:"threshold"    env:"DETECTION_THRESHOLD" env-default:"0.5"`
	// Число воркеров классификации текстов комментариев.
	Workers int `yaml:"workers" env:"DETECTION_WORKERS" env-default:"4"`
}

// InputConfig — входные данные прогона.
type InputConfig struct {
	PostsFile string `yaml:"posts_file" env:"POSTS_FILE" env-default:"video_items.json"`
}

// UploadConfig — выгрузка медиа в S3.
type UploadConfig struct {
	Enabled       bool `yaml:"enabled"        env:"UPLOAD_ENABLED"        env-default:"false"`
	AvatarWorkers int  `yaml:"avatar_workers" env:"UPLOAD_AVATAR_WORKERS" env-default:"8"`
}

// ExportConfig — выгрузка комментариев постов в JSON-файлы.
// Пустой Dir отключает выгрузку.
type ExportConfig struct {
	Dir string `yaml:"dir" env:"EXPORT_DIR"`
	// flat | threaded
	Format string `yaml:"format" env:"EXPORT_FORMAT" env-default:"threaded"`
}

// TimeoutConfig — таймауты прогона.
type TimeoutConfig struct {
	// Общий дедлайн обработки одного поста (fetch -> persist -> upload).
	Post     time.Duration `yaml:"post"     env:"TIMEOUT_POST"     env-default:"2m"`
	Shutdown time.Duration `yaml:"shutdown" env:"TIMEOUT_SHUTDOWN" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var candidate string
	switch {
	case path != "":
		candidate = path
	case os.Getenv("CONFIG_PATH") != "":
		candidate = os.Getenv("CONFIG_PATH")
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			candidate = "local.yaml"
		}
	}

	if candidate != "" {
		c, err := tryRead(candidate)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Upload.Enabled {
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("s3.endpoint and s3.bucket are required when upload is enabled")
		}

		if c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return fmt.Errorf("s3 credentials are required when upload is enabled")
		}

		if c.Upload.AvatarWorkers <= 0 {
			return fmt.Errorf("upload.avatar_workers must be > 0")
		}
	}

	if c.TikTok.BaseURL == "" {
		return fmt.Errorf("tiktok.base_url is required")
	}

	if c.TikTok.PageSize <= 0 || c.TikTok.PageSize > 100 {
		return fmt.Errorf("tiktok.page_size must be in (0, 100]")
	}

	if c.TikTok.MaxConcurrent <= 0 {
		return fmt.Errorf("tiktok.max_concurrent must be > 0")
	}

	if c.TikTok.RequestTimeout <= 0 {
		return fmt.Errorf("tiktok.request_timeout must be > 0")
	}

	if c.Detection.IncludeFile == "" {
		return fmt.Errorf("detection.include_file is required")
	}

	if c.Detection.Threshold <= 0 || c.Detection.Threshold > 1 {
		return fmt.Errorf("detection.threshold must be in (0, 1]")
	}

	if c.Detection.Workers <= 0 {
		return fmt.Errorf("detection.workers must be > 0")
	}

	if c.Input.PostsFile == "" {
		return fmt.Errorf("input.posts_file is required")
	}

	if c.Export.Dir != "" && c.Export.Format != "flat" && c.Export.Format != "threaded" {
		return fmt.Errorf("export.format must be flat or threaded")
	}

	if c.Timeouts.Post <= 0 {
		return fmt.Errorf("timeouts.post must be > 0")
	}

	return nil
}
