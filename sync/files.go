package sync

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
)

type ConfigFile struct {
	Name   string
	Reader io.Reader
	Length int
}

// EmbeddedConfig locates the layered YAML config files under Root.
type EmbeddedConfig struct {
	Root  string
	Files EmbeddedFS
}

type EmbeddedFS interface {
	Open(name string) (fs.File, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

func (ec EmbeddedConfig) MustFindRootConfigFile(filename string) (ConfigFile, error) {
	var result ConfigFile
	name := path.Join(ec.Root, filename)
	contents, err := ec.Files.ReadFile(name)
	if err == nil {
		result.Name = name
		result.Reader = bytes.NewReader(contents)
		result.Length = len(contents)
	}
	return result, err
}

func (ec EmbeddedConfig) MustFindDefaultsConfigFile() (ConfigFile, error) {
	return ec.MustFindRootConfigFile("defaults.yaml")
}

// FindEnvironmentConfigFile returns "<environment>.yaml" when present.
// A missing file is not an error: the returned ConfigFile is empty.
func (ec EmbeddedConfig) FindEnvironmentConfigFile(environment string) (ConfigFile, error) {
	if environment == "" {
		return ConfigFile{}, nil
	}
	result, err := ec.MustFindRootConfigFile(fmt.Sprintf("%s.yaml", environment))
	if errors.Is(err, fs.ErrNotExist) {
		return ConfigFile{}, nil
	}
	return result, err
}

// ReadConfigFile reads a config file from disk, e.g. one passed on the command line.
func ReadConfigFile(name string) (ConfigFile, error) {
	var result ConfigFile
	contents, err := os.ReadFile(name)
	if err != nil {
		return result, fmt.Errorf("failed to read config file %s %w", name, err)
	}
	result.Name = name
	result.Reader = bytes.NewReader(contents)
	result.Length = len(contents)
	return result, nil
}
