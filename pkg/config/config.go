package config

import (
	"fmt"
	"time"

	"github.com/kazuma-desu/showmore/pkg/client"
)

// GetEtcdConfigWithContext retrieves etcd configuration with optional context override
// Priority: explicit context > current context
func GetEtcdConfigWithContext(contextName string) (*client.Config, error) {
	var ctxConfig *ContextConfig

	if contextName != "" {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		ctxConfig = cfg.Contexts[contextName]
		if ctxConfig == nil {
			return nil, fmt.Errorf("context %q not found in config - use 'showmore config set-context' to add it", contextName)
		}
	} else {
		current, _, err := GetCurrentContext()
		if err != nil {
			return nil, fmt.Errorf("failed to get current context: %w", err)
		}
		if current == nil {
			return nil, fmt.Errorf("no current context set - use 'showmore config set-context <name>' or 'showmore config use-context <name>'")
		}
		ctxConfig = current
	}

	if len(ctxConfig.Endpoints) == 0 {
		return nil, fmt.Errorf("no etcd endpoints configured - use 'showmore config set-context' to add them")
	}

	return &client.Config{
		Endpoints:             ctxConfig.Endpoints,
		Username:              ctxConfig.Username,
		Password:              ctxConfig.Password,
		DialTimeout:           5 * time.Second,
		CACert:                ctxConfig.CACert,
		Cert:                  ctxConfig.Cert,
		Key:                   ctxConfig.Key,
		InsecureSkipTLSVerify: ctxConfig.InsecureSkipTLSVerify,
	}, nil
}
