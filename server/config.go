// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"github.com/huaouo/tabsql/engine"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Port           string `yaml:"port"`
	Dir            string `yaml:"dir"`
	InMemory       bool   `yaml:"inMemory"`
	LogDir         string `yaml:"logDir"`
	LogLevel       string `yaml:"logLevel"`
	ParseCacheSize int    `yaml:"parseCacheSize"`
}

func defaultConfig() Config {
	return Config{Server: ServerConfig{
		Port:           "1214",
		Dir:            engine.DefaultDir,
		LogLevel:       "info",
		ParseCacheSize: engine.DefaultParseCacheSize,
	}}
}

// loadConfig reads a YAML file over the defaults. A missing file leaves
// the defaults untouched.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	content, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return config, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, errors.Wrapf(err, "parse config %s", path)
	}
	return config, nil
}
