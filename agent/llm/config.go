package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/questline/questline-agent/agent/contract"
	openrouterx "github.com/questline/questline-agent/pkg/openrouter"
)

// Role selects which pipeline stage a model configuration is resolved for.
type Role string

const (
	RoleAnalyzer Role = "analyzer"
	RoleExecutor Role = "executor"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	AnalyzerModel       string  `envconfig:"ANALYZER_MODEL" split_words:"true"`
	ExecutorModel       string  `envconfig:"EXECUTOR_MODEL" split_words:"true"`
	AnalyzerTemperature float32 `envconfig:"ANALYZER_TEMPERATURE" split_words:"true" default:"-1"`
	ExecutorTemperature float32 `envconfig:"EXECUTOR_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrConfiguration)
	}
	return nil
}

// OpenRouterFor resolves the model configuration for one role, applying the
// per-role model and temperature overrides when set.
func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch role {
	case RoleAnalyzer:
		if v := strings.TrimSpace(c.AnalyzerModel); v != "" {
			modelName = v
		}
		if c.AnalyzerTemperature >= 0 {
			temp = c.AnalyzerTemperature
		}
	case RoleExecutor:
		if v := strings.TrimSpace(c.ExecutorModel); v != "" {
			modelName = v
		}
		if c.ExecutorTemperature >= 0 {
			temp = c.ExecutorTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
