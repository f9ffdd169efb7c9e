package connector

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed example-config.yaml
var ExampleConfig string

const defaultDisplaynameTemplate = "{{.FirstName}} {{.LastName}}"

type Config struct {
	BaseURL             string        `yaml:"base_url"`
	Proxy               string        `yaml:"proxy"`
	Cookies             string        `yaml:"cookies"`
	RequestTimeout      time.Duration `yaml:"request_timeout"`
	FetchTimeout        time.Duration `yaml:"fetch_timeout"`
	DisplaynameTemplate string        `yaml:"displayname_template"`
	Listen              string        `yaml:"listen"`
	LogLevel            string        `yaml:"log_level"`

	displaynameTemplate *template.Template `yaml:"-"`
}

type umConfig Config

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	err := node.Decode((*umConfig)(c))
	if err != nil {
		return err
	}
	return c.compileTemplate()
}

func (c *Config) compileTemplate() (err error) {
	if strings.TrimSpace(c.DisplaynameTemplate) == "" {
		c.DisplaynameTemplate = defaultDisplaynameTemplate
	}
	c.displaynameTemplate, err = template.New("displayname").Parse(c.DisplaynameTemplate)
	return err
}

// LoadConfig reads the config at path on top of the embedded example config.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(ExampleConfig), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

type DisplaynameParams struct {
	FirstName string
	LastName  string
}

func (c *Config) FormatDisplayname(firstName, lastName string) string {
	if c.displaynameTemplate == nil {
		if err := c.compileTemplate(); err != nil {
			return strings.TrimSpace(firstName + " " + lastName)
		}
	}
	var nameBuf strings.Builder
	err := c.displaynameTemplate.Execute(&nameBuf, &DisplaynameParams{
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return strings.TrimSpace(firstName + " " + lastName)
	}
	return strings.TrimSpace(nameBuf.String())
}
