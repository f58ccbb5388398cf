// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package engine

import "go.uber.org/zap"

const (
	DefaultDir            = "data"
	DefaultParseCacheSize = 128
)

type Config struct {
	// Dir holds the badger files under Dir/db. Ignored when InMemory.
	Dir            string
	InMemory       bool
	ParseCacheSize int
	Logger         *zap.SugaredLogger
}

func (c Config) withDefaults() Config {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.ParseCacheSize <= 0 {
		c.ParseCacheSize = DefaultParseCacheSize
	}
	return c
}
