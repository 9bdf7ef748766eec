package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
	"github.com/dmitrijs2005/recordkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Zero values mean
// "not set" and leave the corresponding Config field alone.
type FileConfig struct {
	Variant         string         `json:"variant" yaml:"variant"`
	StorageDriver   string         `json:"storage_driver" yaml:"storage_driver"`
	DatabasePath    string         `json:"database_path" yaml:"database_path"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	SlotKey         string         `json:"slot_key" yaml:"slot_key"`
	GenerationDelay timex.Duration `json:"generation_delay" yaml:"generation_delay"`
	Username        string         `json:"username" yaml:"username"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	S3              S3FileConfig   `json:"s3" yaml:"s3"`
}

type S3FileConfig struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	Prefix       string `json:"prefix" yaml:"prefix"`
	Region       string `json:"region" yaml:"region"`
	BaseEndpoint string `json:"base_endpoint" yaml:"base_endpoint"`
	AccessKey    string `json:"access_key" yaml:"access_key"`
	SecretKey    string `json:"secret_key" yaml:"secret_key"`
	PathStyle    bool   `json:"path_style" yaml:"path_style"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.Variant, fc.Variant)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.SlotKey, fc.SlotKey)
	setString(&cfg.Username, fc.Username)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.GenerationDelay.Duration != 0 {
		cfg.GenerationDelay = fc.GenerationDelay.Duration
	}

	setString(&cfg.S3Bucket, fc.S3.Bucket)
	setString(&cfg.S3Prefix, fc.S3.Prefix)
	setString(&cfg.S3Region, fc.S3.Region)
	setString(&cfg.S3BaseEndpoint, fc.S3.BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3.AccessKey)
	setString(&cfg.S3SecretKey, fc.S3.SecretKey)
	if fc.S3.PathStyle {
		cfg.S3PathStyle = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
