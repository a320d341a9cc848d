// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"io"

	"github.com/born-ml/phenomics/internal/config"
)

// Config is a decoded YAML model description.
type Config = config.Document

// ConfigOverrides captures command-line supplied values applied on top of a
// Config.
type ConfigOverrides = config.Overrides

// LoadConfig reads a YAML model description from path. Relative dataset
// paths are resolved against the directory of path.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParseConfig decodes a YAML model description from r.
func ParseConfig(r io.Reader) (*Config, error) {
	return config.Parse(r)
}
