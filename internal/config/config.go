package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/namecleaner/internal/table"
)

const (
	DefaultPrefix         = "cleaned_"
	DefaultPreviewRows    = 5
	DefaultAddr           = ":8080"
	DefaultMaxUploadBytes = 32 << 20
)

// Config holds all runtime configuration for a namecleaner run.
type Config struct {
	DSN            string
	FilePath       string
	OutputPath     string
	Column         string
	Prefix         string // derived column is Prefix + Column
	InputFormat    string // "" means detect from FilePath
	OutputFormat   string // "" means detect from OutputPath
	LogFormat      string // "text" or "json"
	LogLevel       string
	Workers        int
	PreviewRows    int
	Force          bool
	Addr           string
	MaxUploadBytes int64
	S3             S3Config
}

// S3Config configures access to s3:// paths.
type S3Config struct {
	Region    string `yaml:"region"`
	Profile   string `yaml:"profile"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Column         string   `yaml:"column"`
	Prefix         string   `yaml:"prefix"`
	InputFormat    string   `yaml:"input_format"`
	OutputFormat   string   `yaml:"output_format"`
	Workers        int      `yaml:"workers"`
	PreviewRows    *int     `yaml:"preview_rows"`
	Addr           string   `yaml:"addr"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	S3             S3Config `yaml:"s3"`
}

// LoadFromFile reads a YAML config file and fills in any field not already
// set from flags.
func (c *Config) LoadFromFile(p string) error {
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&c.Column, yc.Column)
	setString(&c.Prefix, yc.Prefix)
	setString(&c.InputFormat, yc.InputFormat)
	setString(&c.OutputFormat, yc.OutputFormat)
	setString(&c.Addr, yc.Addr)
	setString(&c.S3.Region, yc.S3.Region)
	setString(&c.S3.Profile, yc.S3.Profile)
	setString(&c.S3.Endpoint, yc.S3.Endpoint)
	if c.Workers == 0 {
		c.Workers = yc.Workers
	}
	if c.PreviewRows == 0 && yc.PreviewRows != nil {
		c.PreviewRows = *yc.PreviewRows
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = yc.MaxUploadBytes
	}
	c.S3.PathStyle = c.S3.PathStyle || yc.S3.PathStyle
	return nil
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = DefaultPreviewRows
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if !IsS3(c.FilePath) {
		if _, err := os.Stat(c.FilePath); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	if strings.TrimSpace(c.Column) == "" {
		return fmt.Errorf("--column is required")
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview rows must not be negative")
	}
	for _, f := range []string{c.InputFormat, c.OutputFormat} {
		if f == "" {
			continue
		}
		if _, err := table.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or NAMECLEANER_DB_URL is required")
	}
	return nil
}

// CleanedColumn is the name of the derived column appended to the table.
func (c *Config) CleanedColumn() string {
	return c.Prefix + c.Column
}

// ResolveInputFormat returns the configured input format or the one implied
// by FilePath.
func (c *Config) ResolveInputFormat() table.Format {
	if f, err := table.ParseFormat(c.InputFormat); err == nil {
		return f
	}
	return table.FormatFromPath(c.FilePath)
}

// ResolveOutputFormat returns the configured output format or the one implied
// by the output path.
func (c *Config) ResolveOutputFormat() table.Format {
	if f, err := table.ParseFormat(c.OutputFormat); err == nil {
		return f
	}
	return table.FormatFromPath(c.ResolveOutputPath())
}

// ResolveOutputPath returns OutputPath, or "<prefix><input name>" next to the input.
func (c *Config) ResolveOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if IsS3(c.FilePath) {
		dir, base := path.Split(c.FilePath)
		return dir + prefix + base
	}
	dir, base := filepath.Split(c.FilePath)
	return filepath.Join(dir, prefix+base)
}

// IsS3 reports whether p is an s3:// URI.
func IsS3(p string) bool {
	return strings.HasPrefix(p, "s3://")
}
