package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/volunteerhub/backend/model"
)

// ruleConfig is the YAML form of one policy row
type ruleConfig struct {
	Operation string   `yaml:"operation"`
	Roles     []string `yaml:"roles"`
	Ownership bool     `yaml:"ownership"`
}

type policyConfig struct {
	Rules []ruleConfig `yaml:"rules"`
}

// Parse overlays YAML rule rows onto the built-in table. Rows replace the
// built-in rule for their operation; operations the file does not mention
// keep their defaults.
func Parse(content []byte) (*Policy, error) {
	var cfg policyConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}

	rules := defaultRules()
	for _, rc := range cfg.Rules {
		op := Operation(rc.Operation)
		if _, known := rules[op]; !known {
			return nil, fmt.Errorf("unknown operation %q in policy config", rc.Operation)
		}
		if len(rc.Roles) == 0 {
			return nil, fmt.Errorf("operation %q lists no roles", rc.Operation)
		}
		roles := make([]model.Role, 0, len(rc.Roles))
		for _, r := range rc.Roles {
			if !model.ValidRole(r) {
				return nil, fmt.Errorf("unknown role %q for operation %q", r, rc.Operation)
			}
			roles = append(roles, r)
		}
		rules[op] = Rule{Roles: roles, Ownership: rc.Ownership}
	}

	return &Policy{rules: rules}, nil
}

// Load reads the policy table, overlaying the YAML file at path when path
// is non-empty.
func Load(path string) (*Policy, error) {
	if path == "" {
		return New(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy config: %w", err)
	}
	return Parse(content)
}
