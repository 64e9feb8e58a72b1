// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`

	// AllowedOrigins is the CORS allow-list. Empty allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxUploadBytes caps the size of one document upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// ReadTimeout and WriteTimeout bound request handling. The write
	// timeout must leave room for a full tier walk including web search.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DefaultServerConfig returns the standard server settings.
func DefaultServerConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: 32 << 20,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   60 * time.Second,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}

	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 32 << 20
	}
	return config, nil
}
