package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type agentsClient struct {
	agent agent.Agent
}

// NewAgents creates a Client from a go-agents configuration file. Fields
// missing from the file keep the go-agents defaults.
func NewAgents(path string) (Client, error) {
	cfg := agtconfig.DefaultAgentConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read agent config: %w", err)
		}

		var userCfg agtconfig.AgentConfig
		if err := json.Unmarshal(data, &userCfg); err != nil {
			return nil, fmt.Errorf("parse agent config: %w", err)
		}
		cfg.Merge(&userCfg)
	}

	a, err := agent.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &agentsClient{agent: a}, nil
}

func (c *agentsClient) Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error) {
	opts := map[string]any{}
	if systemPrompt != "" {
		opts["system_prompt"] = systemPrompt
	}

	resp, err := c.agent.Chat(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return resp.Content(), nil
}
