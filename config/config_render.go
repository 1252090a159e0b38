package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/0xPolygon/bridgeledger/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

var (
	// ErrCycleVars is returned when config vars reference each other and never resolve
	ErrCycleVars = errors.New("cycle vars")
	// ErrMissingVars is returned when a var is neither defined in the config nor in the environment
	ErrMissingVars = errors.New("missing vars")
	// ErrUnsupportedConfigFileType is returned for config files that are not toml or json
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")

	varRegexp = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)
)

// FileData is a config file already read into memory
type FileData struct {
	Name    string
	Content string
}

// ConfigRender merges a list of toml files, later files overriding earlier
// ones, and replaces every {{Var}} reference with the value of the key Var.
// An environment variable <prefix>_<Var> takes precedence over the files.
type ConfigRender struct {
	FilesData []FileData
	// LookupEnvFunc is the function used to read env vars, os.LookupEnv by default
	LookupEnvFunc     func(key string) (string, bool)
	EnvironmentPrefix string
}

// NewConfigRender creates a ConfigRender reading env vars from the process
func NewConfigRender(filesData []FileData, environmentPrefix string) *ConfigRender {
	return &ConfigRender{
		FilesData:         filesData,
		LookupEnvFunc:     os.LookupEnv,
		EnvironmentPrefix: environmentPrefix,
	}
}

// Render merges the files and resolves the vars
func (c *ConfigRender) Render() (string, error) {
	mergedData, err := c.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files. Err: %w", err)
	}
	return c.ResolveVars(mergedData)
}

// Merge merges the files into a single toml document
func (c *ConfigRender) Merge() (string, error) {
	k := koanf.New(".")
	for _, data := range c.FilesData {
		err := k.Load(rawbytes.Provider([]byte(data.Content)), toml.Parser())
		if err != nil {
			log.Errorf("error loading file %s. Err:%v", data.Name, err)
			return "", fmt.Errorf("fail to load file %s as toml. Err: %w", data.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml. Err: %w", err)
	}
	return string(marshaled), nil
}

// ResolveVars replaces the vars of a toml document until none is left.
// A var can point to a value that holds other vars, so the substitution runs
// once per level of indirection.
func (c *ConfigRender) ResolveVars(data string) (string, error) {
	pending := GetVars(data)
	maxPasses := len(pending) + 1
	for pass := 0; len(pending) > 0; pass++ {
		values, err := definedValues(data)
		if err != nil {
			return data, err
		}
		if missing := c.unresolvedVars(pending, values); len(missing) > 0 {
			return data, fmt.Errorf("missing vars: %v. Err: %w", missing, ErrMissingVars)
		}
		if pass == maxPasses {
			return data, fmt.Errorf("not resolved cycle vars: %v. Err: %w", pending, ErrCycleVars)
		}
		data = c.executeTemplate(data, values)
		pending = GetVars(data)
	}
	return data, nil
}

// GetVars returns the distinct var names referenced in data, sorted
func GetVars(data string) []string {
	seen := make(map[string]struct{})
	for _, match := range varRegexp.FindAllStringSubmatch(data, -1) {
		seen[match[1]] = struct{}{}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func (c *ConfigRender) executeTemplate(data string, values map[string]interface{}) string {
	return fasttemplate.ExecuteFuncString(data, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		if value, ok := c.lookup(name, values); ok {
			return w.Write([]byte(value))
		}
		return w.Write([]byte(startTag + tag + endTag))
	})
}

func (c *ConfigRender) unresolvedVars(vars []string, values map[string]interface{}) []string {
	var missing []string
	for _, v := range vars {
		if _, ok := c.lookup(v, values); !ok {
			missing = append(missing, v)
		}
	}
	return missing
}

func (c *ConfigRender) lookup(name string, values map[string]interface{}) (string, bool) {
	if c.LookupEnvFunc != nil {
		if value, ok := c.LookupEnvFunc(c.envVarName(name)); ok {
			return value, true
		}
	}
	value, ok := values[name]
	if !ok {
		return "", false
	}
	return fmt.Sprint(value), true
}

func (c *ConfigRender) envVarName(name string) string {
	return c.EnvironmentPrefix + "_" + strings.ReplaceAll(name, ".", "_")
}

func definedValues(data string) (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(data)), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error parsing rendered config. Err: %w", err)
	}
	return k.All(), nil
}

func convertFileToToml(fileData string, fileType string) (string, error) {
	var parser koanf.Parser
	switch strings.ToLower(fileType) {
	case "json":
		parser = json.Parser()
	case "toml":
		return fileData, nil
	default:
		return "", fmt.Errorf("%s: %w", fileType, ErrUnsupportedConfigFileType)
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(fileData)), parser); err != nil {
		return "", fmt.Errorf("error parsing %s. Err: %w", fileType, err)
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("error converting %s to toml. Err: %w", fileType, err)
	}
	return string(marshaled), nil
}
