package sync

import (
	"fmt"
	"os"
)

const (
	// EnvironmentEnvVar selects the layered environment config (staging or production).
	EnvironmentEnvVar = "PLAYERSYNC_ENVIRONMENT"
	// CredentialsEnvVar holds a JSON object of secrets, e.g.
	// {"ENTERACTIVE_USERNAME":"...","ENTERACTIVE_PASSWORD":"..."}.
	CredentialsEnvVar = "ENTERACTIVE_SDK"
)

// configOptions holds optional configuration for LoadConfigFromEnvironment.
type configOptions struct {
	environment     string
	extra           []ConfigFile
	compositeEnvVar CompositeEnvVar
}

// ConfigOption is a functional option for configuring LoadConfigFromEnvironment.
type ConfigOption func(*configOptions)

// ConfigWithEnvironment overrides PLAYERSYNC_ENVIRONMENT.
func ConfigWithEnvironment(environment string) ConfigOption {
	return func(o *configOptions) {
		o.environment = environment
	}
}

// ConfigWithFile layers an extra config file on top of the embedded ones.
func ConfigWithFile(file ConfigFile) ConfigOption {
	return func(o *configOptions) {
		o.extra = append(o.extra, file)
	}
}

// ConfigWithCompositeEnvVar replaces the lookup used to expand ${VAR} references.
func ConfigWithCompositeEnvVar(compev CompositeEnvVar) ConfigOption {
	return func(o *configOptions) {
		o.compositeEnvVar = compev
	}
}

// LoadConfigFromEnvironment loads defaults.yaml, then <environment>.yaml, then any
// extra files, expanding secrets from ENTERACTIVE_SDK and the process environment.
func LoadConfigFromEnvironment(embedded EmbeddedConfig, opts ...ConfigOption) (Config, error) {
	options := configOptions{
		environment: os.Getenv(EnvironmentEnvVar),
		compositeEnvVar: FallbackCompositeEnvVar{
			Composite: JSONCompositeEnvVar{Parent: CredentialsEnvVar},
		},
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.environment == "" {
		options.environment = EnvironmentStaging
	}

	var result Config
	defaultsConfigFile, err := embedded.MustFindDefaultsConfigFile()
	if err != nil {
		return result, fmt.Errorf("failed to read defaults config file %w", err)
	}

	environmentConfigFile, err := embedded.FindEnvironmentConfigFile(options.environment)
	if err != nil {
		return result, fmt.Errorf("failed to read %s config file %w", options.environment, err)
	}

	sources := append([]ConfigFile{defaultsConfigFile, environmentConfigFile}, options.extra...)

	result, err = YAMLConfigUnmarshaler{}.Unmarshal(options.compositeEnvVar, sources...)
	if err != nil {
		return result, fmt.Errorf("failed to load config %w", err)
	}
	if result.API.Environment == "" {
		result.API.Environment = options.environment
	}

	if err = result.Normalise(); err != nil {
		return result, fmt.Errorf("invalid config %w", err)
	}

	return result, nil
}
