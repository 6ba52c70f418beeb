package cmd

import (
	"errors"
	"io/ioutil"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config is the parse5.yaml shape, grounded on LoadConfig's os.Stat +
// yaml.Unmarshal device, repurposed from per-environment database
// connection strings to conformance fixture directories and the default
// run mode.
type Config struct {
	FixtureDirs []string `yaml:"fixtureDirs"`
	Chunked     bool     `yaml:"chunked"`
	Silent      bool     `yaml:"silent"`
}

func LoadConfig() (Config, error) {
	var result Config

	configFilename := path.Join(directory, "parse5.yaml")
	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		return Config{}, errors.New("no parse5.yaml found in " + directory)
	}

	yamlFile, err := ioutil.ReadFile(configFilename)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(yamlFile, &result); err != nil {
		return Config{}, err
	}
	return result, nil
}
