package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int    `mapstructure:"REDIS_DB"`
	CacheTTLList int    `mapstructure:"CACHE_TTL_TEMPLATE_LIST"`
	CacheTTLItem int    `mapstructure:"CACHE_TTL_TEMPLATE_ITEM"`

	JWTSecret string `mapstructure:"SECRET_KEY"`

	// Remote object storage. Leaving endpoint or keys empty switches
	// the storage abstraction to the local filesystem fallback.
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`

	TemplatesBucket string `mapstructure:"BUCKET_TEMPLATES"`
	DocumentsBucket string `mapstructure:"BUCKET_DOCUMENTS"`
	UploadDir       string `mapstructure:"UPLOAD_DIR"`

	AdminName     string `mapstructure:"ADMIN_NAME"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "doc_express")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_TEMPLATE_LIST", 60)
	viper.SetDefault("CACHE_TTL_TEMPLATE_ITEM", 300)
	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("BUCKET_TEMPLATES", "templates")
	viper.SetDefault("BUCKET_DOCUMENTS", "documents")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("ADMIN_NAME", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")

	viper.AutomaticEnv()

	// A missing .env is fine: defaults plus process environment apply.
	if readErr := viper.ReadInConfig(); readErr != nil {
		_, notFound := readErr.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(readErr) {
			return config, readErr
		}
	}

	err = viper.Unmarshal(&config)
	return
}
