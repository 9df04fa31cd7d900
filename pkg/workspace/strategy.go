package workspace

import (
	"sort"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/errors"
)

// SharingStrategy decides where a user directory of a workspace lives
type SharingStrategy string

const (
	// StrategyGlobal shares the directory between every workspace
	StrategyGlobal SharingStrategy = "global"
	// StrategyBase shares the directory between workspaces of the same base profile
	StrategyBase SharingStrategy = "base"
	// StrategyWorkspace keeps the directory local to the workspace
	StrategyWorkspace SharingStrategy = "workspace"
)

// Rules maps a path key to its sharing strategy
type Rules map[string]SharingStrategy

// ParseStrategy parses a strategy name, ignoring case
func ParseStrategy(s string) (SharingStrategy, error) {
	switch SharingStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyGlobal:
		return StrategyGlobal, nil
	case StrategyBase:
		return StrategyBase, nil
	case StrategyWorkspace:
		return StrategyWorkspace, nil
	}
	return "", errors.Newf(errors.ErrInvalidStrategy, "Invalid sharing strategy: %s", s).
		WithDetail("strategy", s)
}

// Shared reports whether the strategy puts the directory under a shared root
func (s SharingStrategy) Shared() bool {
	return s == StrategyGlobal || s == StrategyBase
}

// DefaultSharingRules shares screenshots everywhere, addons per base and
// keeps WTF local.
func DefaultSharingRules() Rules {
	return Rules{
		"screenshots":      StrategyGlobal,
		"interface/addons": StrategyBase,
		"wtf":              StrategyWorkspace,
	}
}

// Clone returns a copy of the rules
func (r Rules) Clone() Rules {
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the rule keys in sorted order
func (r Rules) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseShareArgs applies key=value arguments on top of defaults.
// Keys are lowercased so an override replaces the default it matches.
func ParseShareArgs(defaults Rules, args []string) (Rules, error) {
	rules := defaults.Clone()
	for _, arg := range args {
		parts := strings.Split(arg, "=")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "Invalid share rule %q (expected key=value)", arg).
				WithDetail("arg", arg)
		}
		strategy, err := ParseStrategy(parts[1])
		if err != nil {
			return nil, err
		}
		rules[strings.ToLower(strings.TrimSpace(parts[0]))] = strategy
	}
	return rules, nil
}

// DetermineStrategy returns the strategy of the rule matching rel, or def.
// A key matches when it equals the path, is an ancestor of it, or equals any
// single component of it, all ignoring case. The longest matching key wins.
func DetermineStrategy(rel string, rules Rules, def SharingStrategy) SharingStrategy {
	key, ok := matchRule(rel, rules)
	if !ok {
		return def
	}
	return rules[key]
}

func matchRule(rel string, rules Rules) (string, bool) {
	normalized := strings.ToLower(rel)
	components := strings.Split(normalized, "/")

	best, found := "", false
	for _, key := range rules.Keys() {
		k := strings.ToLower(key)
		if !keyMatches(normalized, components, k) {
			continue
		}
		if !found || len(key) > len(best) {
			best, found = key, true
		}
	}
	return best, found
}

func keyMatches(path string, components []string, key string) bool {
	if path == key || strings.HasPrefix(path, key+"/") {
		return true
	}
	for _, c := range components {
		if c == key {
			return true
		}
	}
	return false
}

// defaultStrategy is used for user directories no rule matches
func defaultStrategy(role base.FileRole) SharingStrategy {
	if role == base.RoleUserMedia {
		return StrategyGlobal
	}
	return StrategyWorkspace
}
