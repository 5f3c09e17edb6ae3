package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	ServerPort int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MediaBucket    string

	RedisAddr     string
	RedisPassword string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string

	IncomingPrefix  string
	PublishedPrefix string

	ModerationMinConfidence float64
	ModerationTimeout       time.Duration
	MaxPublishBytes         int
	WorkerConcurrency       int

	JWTPublicKey string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("INCOMING_PREFIX", "uploads/")
	viper.SetDefault("PUBLISHED_PREFIX", "processed/")
	viper.SetDefault("MODERATION_MIN_CONFIDENCE", 75)
	viper.SetDefault("MODERATION_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MAX_PUBLISH_BYTES", 1<<20)
	viper.SetDefault("WORKER_CONCURRENCY", 10)

	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}
	if !viper.IsSet("MEDIA_BUCKET") {
		return nil, fmt.Errorf("MEDIA_BUCKET is required")
	}
	if !viper.IsSet("AWS_REGION") {
		return nil, fmt.Errorf("AWS_REGION is required")
	}

	return &Settings{
		ServerPort:              viper.GetInt("SERVER_PORT"),
		MinioEndpoint:           viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:          viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:          viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:             viper.GetBool("MINIO_USE_SSL"),
		MediaBucket:             viper.GetString("MEDIA_BUCKET"),
		RedisAddr:               viper.GetString("REDIS_ADDR"),
		RedisPassword:           viper.GetString("REDIS_PASSWORD"),
		AWSRegion:               viper.GetString("AWS_REGION"),
		AWSAccessKey:            viper.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:            viper.GetString("AWS_SECRET_ACCESS_KEY"),
		IncomingPrefix:          viper.GetString("INCOMING_PREFIX"),
		PublishedPrefix:         viper.GetString("PUBLISHED_PREFIX"),
		ModerationMinConfidence: viper.GetFloat64("MODERATION_MIN_CONFIDENCE"),
		ModerationTimeout:       time.Duration(viper.GetInt("MODERATION_TIMEOUT_SECONDS")) * time.Second,
		MaxPublishBytes:         viper.GetInt("MAX_PUBLISH_BYTES"),
		WorkerConcurrency:       viper.GetInt("WORKER_CONCURRENCY"),
		JWTPublicKey:            viper.GetString("JWT_PUBLIC_KEY"),
	}, nil
}
