// Package config loads the optional ncdedup config file and resolves
// connection settings across the three sources: CLI arguments beat
// environment variables, which beat the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Every field is optional; the CLI
// works without a file at all.
type File struct {
	ServerURL   string  `yaml:"server_url"`
	Username    string  `yaml:"username"`
	AddressBook string  `yaml:"address_book"`
	Threshold   *int    `yaml:"threshold"`
	Network     Network `yaml:"network"`
}

// Network tunes the CardDAV transport.
type Network struct {
	TimeoutSecs    int  `yaml:"timeout_secs"`
	MaxRetries     *int `yaml:"max_retries"`
	RetryDelaySecs int  `yaml:"retry_delay_secs"`
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ncdedup", "config.yaml")
}

// Load reads a config file. An explicit path must exist; the default
// path is allowed to be absent and yields an empty config.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if f.Threshold != nil && (*f.Threshold < 0 || *f.Threshold > 100) {
		return nil, fmt.Errorf("config %s: threshold must be between 0 and 100 (got %d)", path, *f.Threshold)
	}
	return &f, nil
}

// Connection is the fully resolved set of server settings for a run.
type Connection struct {
	ServerURL   string
	Username    string
	Password    string
	AddressBook string
}

// ResolveConnection merges CLI arguments, NCDEDUP_* environment
// variables, and the config file, in that order of precedence. The
// password never comes from the file; only NCDEDUP_PASSWORD or an
// interactive prompt provide it.
func ResolveConnection(f *File, argServer, argUser, flagBook string) Connection {
	conn := Connection{
		ServerURL:   firstNonEmpty(argServer, os.Getenv("NCDEDUP_SERVER_URL"), f.ServerURL),
		Username:    firstNonEmpty(argUser, os.Getenv("NCDEDUP_USERNAME"), f.Username),
		Password:    os.Getenv("NCDEDUP_PASSWORD"),
		AddressBook: firstNonEmpty(flagBook, os.Getenv("NCDEDUP_ADDRESSBOOK"), f.AddressBook),
	}
	return conn
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
