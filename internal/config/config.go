package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/thsteixeira/precatorios/internal/config/connections/mongo"
	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/config/connections/s3"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environments the service runs in. Local development keeps media on disk
// unless USE_S3 is set; test and production always store media in S3 under an
// environment-scoped prefix.
const (
	EnvLocal      = "local"
	EnvTest       = "test"
	EnvProduction = "production"
)

type Config struct {
	Environment string
	Port        string
	JWTSecret   []byte
	UseS3       bool
	MediaRoot   string

	S3       *s3.S3
	Mongo    *mongo.Mongo
	Postgres *postgres.Postgres
}

// Init loads .env, an optional config.<environment>.yaml overlay, then opens
// the connections. Environment variables win over the overlay file.
func Init(ctx context.Context) *Config {
	_ = godotenv.Load()

	env := strings.ToLower(getenv(nil, "ENVIRONMENT", EnvLocal))
	if env != EnvLocal && env != EnvTest && env != EnvProduction {
		log.Fatalf("unknown ENVIRONMENT %q (want local, test or production)", env)
	}

	overlay := loadOverlay("config." + env + ".yaml")

	port := getenv(overlay, "SERVER_PORT", "8070")
	secret := getenv(overlay, "JWT_SECRET", "")
	if secret == "" {
		if env == EnvProduction {
			log.Fatal("JWT_SECRET is required in production")
		}
		secret = "dev-only-secret"
	}

	useS3 := env != EnvLocal
	if v := getenv(overlay, "USE_S3", ""); v != "" {
		useS3 = v == "true"
	}
	if env != EnvLocal && !useS3 {
		log.Fatalf("USE_S3=false is only allowed in the local environment")
	}

	var s3c *s3.S3
	if useS3 {
		var err error
		s3c, err = s3.NewConnection(s3.ConnectionInfo{
			Endpoint:  getenv(overlay, "AWS_ENDPOINT", "http://localhost:9000"),
			AccessKey: getenv(overlay, "AWS_ACCESS_KEY_ID", "minioadmin"),
			SecretKey: getenv(overlay, "AWS_SECRET_ACCESS_KEY", "minioadmin"),
			Region:    getenv(overlay, "AWS_S3_REGION_NAME", "us-east-1"),
			Bucket:    getenv(overlay, "AWS_STORAGE_BUCKET_NAME", "precatorios"),
			Location:  "media/" + env,
			UseSSL:    getenv(overlay, "AWS_USE_SSL", "false") == "true",
		})
		if err != nil {
			log.Fatal("S3 connect error:", err)
		}
	}

	mg, err := mongo.NewConnection(ctx, mongo.ConnectionInfo{
		Scheme:     getenv(overlay, "MONGO_SCHEME", "mongodb"),
		User:       getenv(overlay, "MONGO_USER", "root"),
		Password:   getenv(overlay, "MONGO_PASSWORD", "secret"),
		Host:       getenv(overlay, "MONGO_HOST", "127.0.0.1"),
		Port:       getenv(overlay, "MONGO_PORT", "27017"),
		DB:         getenv(overlay, "MONGO_DB", "precatorios"),
		AuthSource: getenv(overlay, "MONGO_AUTH_SOURCE", "admin"),
	})
	if err != nil {
		log.Fatal("Mongo connect error:", err)
	}

	pg, err := postgres.NewConnection(ctx, postgres.ConnectionInfo{
		Host:     getenv(overlay, "PG_HOST", "127.0.0.1"),
		Port:     getenv(overlay, "PG_PORT", "5432"),
		User:     getenv(overlay, "PG_USER", "root"),
		Password: getenv(overlay, "PG_PASSWORD", "hello-world"),
		DB:       getenv(overlay, "PG_DB", "precatorios"),
		SSLMode:  getenv(overlay, "PG_SSLMODE", "disable"),
	})
	if err != nil {
		log.Fatal("Postgres connect error:", err)
	}

	log.Printf("[CONFIG] environment=%s use_s3=%v", env, useS3)

	return &Config{
		Environment: env,
		Port:        port,
		JWTSecret:   []byte(secret),
		UseS3:       useS3,
		MediaRoot:   getenv(overlay, "MEDIA_ROOT", "media"),
		S3:          s3c,
		Mongo:       mg,
		Postgres:    pg,
	}
}

func (c *Config) CheckConnections(ctx context.Context) error {
	var errs []error

	if c.Postgres == nil || c.Postgres.Pool == nil {
		errs = append(errs, errors.New("postgres not initialized"))
	} else if err := c.Postgres.Pool.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("postgres ping failed: %w", err))
	}

	if c.Mongo == nil || c.Mongo.Client == nil {
		errs = append(errs, errors.New("mongo not initialized"))
	} else if err := c.Mongo.Client.Ping(ctx, nil); err != nil {
		errs = append(errs, fmt.Errorf("mongo ping failed: %w", err))
	}

	if c.UseS3 {
		if c.S3 == nil || c.S3.Client == nil {
			errs = append(errs, errors.New("s3 not initialized"))
		} else if ok, err := c.S3.Client.BucketExists(ctx, c.S3.Bucket); err != nil {
			errs = append(errs, fmt.Errorf("s3 bucket check failed: %w", err))
		} else if !ok {
			errs = append(errs, fmt.Errorf("s3 bucket %q not found", c.S3.Bucket))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(errs...)
}

// getenv resolves a key from the process environment, then the yaml overlay,
// then the default.
func getenv(overlay map[string]string, k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	if v, ok := overlay[k]; ok && v != "" {
		return v
	}
	return def
}

func loadOverlay(path string) map[string]string {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	out := map[string]string{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		log.Printf("[CONFIG][WARN] ignoring %s: %v", path, err)
		return nil
	}
	return out
}
