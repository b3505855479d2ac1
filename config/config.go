// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	seedDemoData   = pflag.Bool("seed", false, "Wipes the users table and inserts demo accounts")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBTypes   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.frontend_url", "host_frontend_url")

	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl.certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl.certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("security.bcrypt_cost", "security_bcrypt_cost")
	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("db.type", "db_type")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("storage.enabled", "storage_enabled")
	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.public_url", "aws_public_url")

	v.BindEnv("turnstile.enabled", "turnstile_enabled")
	v.BindEnv("turnstile.secret_token", "turnstile_secret_token")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.frontend_url", "http://localhost:5173")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("security.bcrypt_cost", 12)
	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("mail.port", 587)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("upload.max_size", 5)

	v.SetDefault("turnstile.enabled", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("security.bcrypt_cost") < 10 {
		return errors.New("security.bcrypt_cost must be at least 10")
	}

	if !slices.Contains(validDBTypes, v.GetString("db.type")) {
		return errors.New("invalid database type provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail host can't be empty")
	}

	if v.GetString("mail.sender") == "" {
		return errors.New("mail sender address can't be empty")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetBool("storage.enabled") {
		if v.GetString("aws.access_key_id") == "" {
			return errors.New("access key id can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
		if v.GetString("aws.region") == "" {
			return errors.New("region can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	}

	if v.GetBool("turnstile.enabled") && v.GetString("turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

// SeedRequested reports whether the --seed flag was passed on startup
func SeedRequested() bool {
	return *seedDemoData
}
