package output

import "github.com/kazuma-desu/showmore/pkg/truncate"

// ContextView represents a context for display purposes.
// It contains only the fields needed for output rendering.
type ContextView struct {
	Username  string   `json:"username,omitempty" yaml:"username,omitempty"`
	Endpoints []string `json:"endpoints" yaml:"endpoints"`
}

// ConfigView represents the configuration for display purposes.
type ConfigView struct {
	CurrentContext string                  `json:"current-context,omitempty" yaml:"current-context,omitempty"`
	LogLevel       string                  `json:"log-level,omitempty" yaml:"log-level,omitempty"`
	DefaultOutput  string                  `json:"default-output,omitempty" yaml:"default-output,omitempty"`
	Strict         bool                    `json:"strict" yaml:"strict"`
	Thresholds     truncate.Thresholds     `json:"thresholds" yaml:"thresholds"`
	Labels         Labels                  `json:"labels" yaml:"labels"`
	Contexts       map[string]*ContextView `json:"contexts,omitempty" yaml:"contexts,omitempty"`
}
