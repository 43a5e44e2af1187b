package sync

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/config"
)

type Config struct {
	API           APISettings       `yaml:"api"`
	Brands        map[string]string `yaml:"brands"` // local brand code -> Enteractive brand name
	Import        ImportSettings    `yaml:"import"`
	Update        UpdateSettings    `yaml:"update"`
	Source        SourceSettings    `yaml:"source"`
	Log           LogSettings       `yaml:"log"`
	Metrics       MetricsSettings   `yaml:"metrics"`
	FailurePolicy FailurePolicy     `yaml:"failurePolicy"`
}

type APISettings struct {
	// Environment selects one of Endpoints ("staging" or "production").
	Environment string `yaml:"environment"`
	Endpoints   struct {
		Staging    string `yaml:"staging"`
		Production string `yaml:"production"`
	} `yaml:"endpoints"`
	Credentials struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"credentials"`
}

const (
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "production"
)

// Endpoint returns the base URL for the configured environment.
func (a APISettings) Endpoint() (string, error) {
	var endpoint string
	switch strings.ToLower(a.Environment) {
	case EnvironmentStaging:
		endpoint = a.Endpoints.Staging
	case EnvironmentProduction:
		endpoint = a.Endpoints.Production
	default:
		return "", fmt.Errorf("unsupported api environment %q", a.Environment)
	}
	if endpoint == "" {
		return "", fmt.Errorf("no endpoint configured for api environment %q", a.Environment)
	}
	return endpoint, nil
}

type ImportSettings struct {
	CampaignType CampaignType `yaml:"campaignType"`
}

type UpdateSettings struct {
	// ConvertedPlayersCSV is where converted players are written after a
	// successful sync. Empty disables the export.
	ConvertedPlayersCSV string `yaml:"convertedPlayersCsv"`
}

type SourceSettings struct {
	Kind         string        `yaml:"kind"` // "sample" or "file"
	Path         string        `yaml:"path"`
	ImportRows   string        `yaml:"importRows"` // gjson path to the import rows array
	UpdateRows   string        `yaml:"updateRows"` // gjson path to the update rows array
	ImportFields FieldMappings `yaml:"importFields"`
	UpdateFields FieldMappings `yaml:"updateFields"`

	// Transforms applied to mapped fields, e.g. {"country": "toLower"}
	ImportTransforms map[string]string `yaml:"importTransforms"`
	UpdateTransforms map[string]string `yaml:"updateTransforms"`
}

const (
	SourceKindSample = "sample"
	SourceKindFile   = "file"
)

type LogSettings struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"` // "development" or "production"
}

type MetricsSettings struct {
	// Textfile, when set, receives the run's metrics in the node exporter
	// textfile collector format.
	Textfile string `yaml:"textfile"`
}

// FieldMappings maps player field names to gjson paths within a source row.
type FieldMappings struct {
	Strings    map[string]string `yaml:"strings"`
	Booleans   map[string]string `yaml:"booleans"`
	Timestamps map[string]string `yaml:"timestamps"`
}

func (m FieldMappings) AllKeys() []string {
	var result []string
	result = append(result, FieldMapsKeys(m.Strings)...)
	result = append(result, FieldMapsKeys(m.Booleans)...)
	result = append(result, FieldMapsKeys(m.Timestamps)...)
	sort.Strings(result)
	return result
}

func FieldMapsKeys(m map[string]string) []string {
	result := make([]string, len(m))
	i := 0
	for k := range m {
		result[i] = k
		i++
	}
	return result
}

// CampaignType classifies the purpose of outreach for imported players.
type CampaignType string

const (
	Reactivation CampaignType = "Reactivation"
	NRC          CampaignType = "NRC"
	VFC          CampaignType = "VFC"
)

var campaignTypes = []CampaignType{Reactivation, NRC, VFC}

// ParseCampaignType matches s against the known campaign types ignoring case.
func ParseCampaignType(s string) (CampaignType, error) {
	for _, c := range campaignTypes {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported campaign type %q", s)
}

// RequiresDepositDate reports whether players imported for this campaign
// must carry a last deposit date.
func (c CampaignType) RequiresDepositDate() bool {
	return c == Reactivation || c == VFC
}

// RequiresRegistrationDate reports whether players imported for this
// campaign must carry a registration date.
func (c CampaignType) RequiresRegistrationDate() bool {
	return c == NRC
}

// FailurePolicy decides whether remote failures fail the run.
type FailurePolicy string

const (
	// FailurePolicyPermissive logs every failure and always completes the run.
	FailurePolicyPermissive FailurePolicy = "permissive"
	// FailurePolicyStrict still runs every step but reports the failures as an error.
	FailurePolicyStrict FailurePolicy = "strict"
)

type CompositeEnvVar interface {
	LookupEnv(child string) (string, bool)
}

// JSONCompositeEnvVar looks up children of a single env var holding a JSON
// object, e.g. ENTERACTIVE_SDK={"ENTERACTIVE_USERNAME":"...","ENTERACTIVE_PASSWORD":"..."}.
type JSONCompositeEnvVar struct {
	Parent string
}

func (c JSONCompositeEnvVar) LookupEnv(child string) (string, bool) {
	if c.Parent != "" {
		s := os.Getenv(c.Parent)
		if s != "" {
			m := make(map[string]string)
			err := json.Unmarshal([]byte(s), &m)
			if err == nil {
				v, exists := m[child]
				return v, exists
			}
		}
	}
	return "", false
}

// FallbackCompositeEnvVar consults Composite first and then the process environment.
type FallbackCompositeEnvVar struct {
	Composite CompositeEnvVar
}

func (f FallbackCompositeEnvVar) LookupEnv(child string) (string, bool) {
	if f.Composite != nil {
		if v, ok := f.Composite.LookupEnv(child); ok {
			return v, true
		}
	}
	return os.LookupEnv(child)
}

type YAMLConfigUnmarshaler struct{}

// Unmarshal merges sources in order (later sources override earlier ones),
// expanding ${VAR:default} references through compev.
func (u YAMLConfigUnmarshaler) Unmarshal(compev CompositeEnvVar, sources ...ConfigFile) (Config, error) {
	var result Config
	var options []config.YAMLOption
	for _, s := range sources {
		if s.Length > 0 {
			options = append(options, config.Source(s.Reader))
		}
	}
	options = append(options, config.Expand(compev.LookupEnv))
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}
	readError := func(key string, cause error) error {
		return fmt.Errorf("failed to read '%s' from yaml config %w", key, cause)
	}
	key := "api"
	err = yaml.Get(key).Populate(&result.API)
	if err != nil {
		return result, readError(key, err)
	}
	key = "brands"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Brands)
		if err != nil {
			return result, readError(key, err)
		}
	}
	key = "import"
	err = yaml.Get(key).Populate(&result.Import)
	if err != nil {
		return result, readError(key, err)
	}
	key = "update"
	err = yaml.Get(key).Populate(&result.Update)
	if err != nil {
		return result, readError(key, err)
	}
	key = "source"
	err = yaml.Get(key).Populate(&result.Source)
	if err != nil {
		return result, readError(key, err)
	}
	key = "log"
	err = yaml.Get(key).Populate(&result.Log)
	if err != nil {
		return result, readError(key, err)
	}
	key = "metrics"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Metrics)
		if err != nil {
			return result, readError(key, err)
		}
	}
	key = "failurePolicy"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.FailurePolicy)
		if err != nil {
			return result, readError(key, err)
		}
	}

	return result, nil
}

// Normalise parses enumerated values in place and validates the config.
func (c *Config) Normalise() error {
	var errs []error

	campaignType, err := ParseCampaignType(string(c.Import.CampaignType))
	if err != nil {
		errs = append(errs, fmt.Errorf("import.campaignType: %w", err))
	}
	c.Import.CampaignType = campaignType

	if _, err := c.API.Endpoint(); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}

	switch c.FailurePolicy {
	case "":
		c.FailurePolicy = FailurePolicyPermissive
	case FailurePolicyPermissive, FailurePolicyStrict:
	default:
		errs = append(errs, fmt.Errorf("failurePolicy: unsupported value %q", c.FailurePolicy))
	}

	switch c.Source.Kind {
	case "":
		c.Source.Kind = SourceKindSample
	case SourceKindSample:
	case SourceKindFile:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path is required for file sources"))
		}
		if err := validateFieldNames(c.Source.ImportFields, importPlayerFields); err != nil {
			errs = append(errs, fmt.Errorf("source.importFields: %w", err))
		}
		if err := validateFieldNames(c.Source.UpdateFields, updatePlayerFields); err != nil {
			errs = append(errs, fmt.Errorf("source.updateFields: %w", err))
		}
		if err := ValidateFieldTransforms(c.Source.ImportTransforms, importPlayerFields); err != nil {
			errs = append(errs, fmt.Errorf("source.importTransforms: %w", err))
		}
		if err := ValidateFieldTransforms(c.Source.UpdateTransforms, updatePlayerFields); err != nil {
			errs = append(errs, fmt.Errorf("source.updateTransforms: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind: unsupported value %q", c.Source.Kind))
	}

	if len(c.Brands) == 0 {
		errs = append(errs, errors.New("brands: at least one brand mapping is required"))
	}

	return errors.Join(errs...)
}

func validateFieldNames(mappings FieldMappings, known map[string]bool) error {
	var unknown []string
	for _, k := range mappings.AllKeys() {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown fields %s", strings.Join(unknown, ", "))
	}
	return nil
}
