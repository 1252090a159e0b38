package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xPolygon/bridgeledger/attestation"
	"github.com/0xPolygon/bridgeledger/config/types"
	"github.com/0xPolygon/bridgeledger/erc20app"
	"github.com/0xPolygon/bridgeledger/ethapp"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagComponents is the flag for components.
	FlagComponents = "components"
	// FlagSaveConfigPath is the flag to save the final configuration file
	FlagSaveConfigPath = "save-config-path"
	// FlagSchema prints the JSON schema of the configuration instead of the defaults
	FlagSchema = "schema"
	// FlagKey is the flag for the private key files used to attest a payload
	FlagKey = "key"
	// FlagPayload is the flag for the hex encoded payload to attest
	FlagPayload = "payload"

	// EnvVarPrefix is the prefix for the environment variables
	EnvVarPrefix = "BRIDGELEDGER"
	// ConfigType is the type of the configuration file
	ConfigType = "toml"
	// SaveConfigFileName is the name of the file to save the configuration
	SaveConfigFileName = "bridgeledger_config.toml"
	// DefaultCreationFilePermissions is the default permissions for the files created
	DefaultCreationFilePermissions = os.FileMode(0600)
)

// MetricsConfig is the prometheus endpoint
type MetricsConfig struct {
	Enabled           bool           `mapstructure:"Enabled"`
	Host              string         `mapstructure:"Host"`
	Port              int            `mapstructure:"Port"`
	ReadHeaderTimeout types.Duration `mapstructure:"ReadHeaderTimeout"`
}

/*
Config represents the configuration of the bridge ledger node.
The file is [TOML format]

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// PathRWData is the directory where the node keeps its data
	PathRWData string `mapstructure:"PathRWData"`
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config
	// Configuration of the JSON-RPC server exposing the bridge namespace
	RPC jRPC.Config
	// Prometheus metrics endpoint
	Metrics MetricsConfig
	// Ledger storage
	State state.Config
	// Signer set and threshold used to accept relayed messages
	Verifier attestation.Config
	ETHApp   ethapp.Config
	ERC20App erc20app.Config
}

// Load loads the configuration from the files given on the command line
func Load(ctx *cli.Context) (*Config, error) {
	filesData, err := readFiles(ctx.StringSlice(FlagCfg))
	if err != nil {
		return nil, fmt.Errorf("error reading files:  Err:%w", err)
	}
	return LoadFile(filesData, ctx.String(FlagSaveConfigPath))
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %s. Err:%w", file, err)
		}
		fileContent, err := convertFileToToml(string(content), getFileExtension(file))
		if err != nil {
			return nil, fmt.Errorf("error converting file: %s to TOML. Err:%w", file, err)
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}

func getFileExtension(fileName string) string {
	return strings.TrimPrefix(filepath.Ext(fileName), ".")
}

// LoadFile renders the defaults plus files and decodes the result. If
// saveConfigPath is set the rendered file is written there.
func LoadFile(files []FileData, saveConfigPath string) (*Config, error) {
	fileData := make([]FileData, 0, len(files)+2) //nolint:mnd
	fileData = append(fileData, FileData{Name: "default_vars", Content: DefaultVars})
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	renderedCfg, err := NewConfigRender(fileData, EnvVarPrefix).Render()
	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, SaveConfigFileName)
		err = os.WriteFile(fullPath, []byte(renderedCfg), DefaultCreationFilePermissions)
		if err != nil {
			err = fmt.Errorf("error writing config file: %s. Err: %w", fullPath, err)
			log.Error(err)
			return nil, err
		}
	}
	return LoadFileFromString(renderedCfg, ConfigType)
}

// LoadFileFromString decodes an already rendered configuration
func LoadFileFromString(configFileData string, configType string) (*Config, error) {
	cfg := &Config{}
	if err := loadString(cfg, configFileData, configType, true, EnvVarPrefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfigToString returns the configuration as JSON
func SaveConfigToString(cfg Config) (string, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func loadString(cfg *Config, configData string, configType string,
	allowEnvVars bool, envPrefix string) error {
	v := viper.New()
	v.SetConfigType(configType)
	if allowEnvVars {
		replacer := strings.NewReplacer(".", "_")
		v.SetEnvKeyReplacer(replacer)
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}
	if err := v.ReadConfig(bytes.NewBufferString(configData)); err != nil {
		return err
	}
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), mapstructure.StringToSliceHookFunc(","))),
	}
	if err := v.Unmarshal(cfg, decodeHooks...); err != nil {
		return err
	}

	expectedKeys, err := defaultKeys(configType)
	if err != nil {
		return err
	}
	for _, field := range getUnexpectedFields(v.AllKeys(), expectedKeys) {
		log.Debugf("field %s in config file doesnt have a default value", field)
	}
	return nil
}

func defaultKeys(configType string) ([]string, error) {
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewBufferString(DefaultVars + DefaultValues)); err != nil {
		return nil, fmt.Errorf("error reading default values. Err: %w", err)
	}
	return v.AllKeys(), nil
}

func getUnexpectedFields(keysOnFile, expectedConfigKeys []string) []string {
	expected := make(map[string]struct{}, len(expectedConfigKeys))
	for _, key := range expectedConfigKeys {
		expected[key] = struct{}{}
	}
	wrongFields := make([]string, 0)
	for _, key := range keysOnFile {
		if _, ok := expected[key]; !ok {
			wrongFields = append(wrongFields, key)
		}
	}
	return wrongFields
}
