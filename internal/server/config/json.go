package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/flagx"
	"github.com/ajcloudsolutions/vmailapi/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration.
// Duration fields accept "15m" style strings or integer nanoseconds.
// Fields left out of the file keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	DBMaxOpenConns              int            `json:"db_max_open_conns"`
	DBMaxIdleConns              int            `json:"db_max_idle_conns"`
	DBConnMaxLifetime           timex.Duration `json:"db_conn_max_lifetime"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RedisAddr                   string         `json:"redis_addr"`
	LockoutThreshold            int            `json:"lockout_threshold"`
	LockoutWindow               timex.Duration `json:"lockout_window"`
	MetricsAddr                 string         `json:"metrics_addr"`
	LogLevel                    string         `json:"log_level"`
	ProvisionBackend            string         `json:"provision_backend"`
	StorageBaseDirectory        string         `json:"storage_base_directory"`
	StorageNode                 string         `json:"storage_node"`
	MailboxFolder               string         `json:"mailbox_folder"`
	DefaultLanguage             string         `json:"default_language"`
	MaildirSuffix               string         `json:"maildir_suffix"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config into config.
// It does nothing when no path is given and panics if the file cannot be
// read or is not valid JSON.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setInt(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	setInt(&config.DBMaxIdleConns, c.DBMaxIdleConns)
	setDuration(&config.DBConnMaxLifetime, c.DBConnMaxLifetime)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setString(&config.RedisAddr, c.RedisAddr)
	setInt(&config.LockoutThreshold, c.LockoutThreshold)
	setDuration(&config.LockoutWindow, c.LockoutWindow)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.ProvisionBackend, c.ProvisionBackend)
	setString(&config.StorageBaseDirectory, c.StorageBaseDirectory)
	setString(&config.StorageNode, c.StorageNode)
	setString(&config.MailboxFolder, c.MailboxFolder)
	setString(&config.DefaultLanguage, c.DefaultLanguage)
	setString(&config.MaildirSuffix, c.MaildirSuffix)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
