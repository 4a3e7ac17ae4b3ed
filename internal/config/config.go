package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, sourced from the environment.
type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	MongoURI string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" env-default:"gramseva"`

	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	// StorageBackend selects where attachments live: "disk" or "minio".
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"disk"`
	UploadDir      string `env:"UPLOAD_DIR" env-default:"uploads"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	MinioBucket    string `env:"MINIO_BUCKET" env-default:"gramseva-uploads"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

// MustLoad reads .env if present, then the environment. Exits on a missing
// required value since the server cannot run without a token secret.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %v", err)
	}
	return &cfg
}
