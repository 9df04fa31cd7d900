package base

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// RoleRule assigns Role to paths matching Pattern. Literal patterns match
// the path itself and everything below it.
type RoleRule struct {
	Pattern string   `toml:"pattern"`
	Role    FileRole `toml:"role"`
	IsRegex bool     `toml:"is_regex"`
}

// WarningRule flags a path that should not be present in a base
type WarningRule struct {
	Pattern string `toml:"pattern"`
	Message string `toml:"message"`
}

// Profile describes the layout of one client version
type Profile struct {
	Name          string
	Version       string
	Aliases       []string
	RequiredFiles []string
	RequiredDirs  []string
	RoleRules     []RoleRule
	Warnings      []WarningRule
}

// Builtin profile names
const (
	ProfileChromie = "chromie-3.3.5a"
	ProfileVanilla = "vanilla-1.12"
)

// DefaultProfile is used by init-base when no profile is given
const DefaultProfile = ProfileChromie

func regexRule(pattern string, role FileRole) RoleRule {
	return RoleRule{Pattern: pattern, Role: role, IsRegex: true}
}

func ephemeralWarning(dir string) WarningRule {
	return WarningRule{
		Pattern: dir,
		Message: dir + " directory present in base - should be ephemeral",
	}
}

// Chromie returns the Wrath of the Lich King 3.3.5a profile
func Chromie() Profile {
	return Profile{
		Name:    ProfileChromie,
		Version: "3.3.5a",
		Aliases: []string{"3.3.5a", "335", "335a"},
		RequiredFiles: []string{
			"Wow.exe",
			"Data/common.MPQ",
			"Data/patch.MPQ",
			"Data/lichking.MPQ",
		},
		RequiredDirs: []string{"Data"},
		RoleRules: []RoleRule{
			{Pattern: "Wow.exe", Role: RoleExecutable},
			regexRule(`^Data/common.*\.MPQ$`, RoleBaseData),
			regexRule(`^Data/expansion.*\.MPQ$`, RoleBaseData),
			regexRule(`^Data/lichking.*\.MPQ$`, RoleBaseData),
			regexRule(`^Data/patch.*\.MPQ$`, RoleMutableData),
			regexRule(`^Screenshots($|/)`, RoleUserMedia),
			regexRule(`^WTF($|/)`, RoleUserConfig),
			regexRule(`^Interface($|/)`, RoleUserConfig),
			regexRule(`^Cache($|/)`, RoleEphemeral),
			regexRule(`^Logs($|/)`, RoleEphemeral),
			regexRule(`^Errors($|/)`, RoleEphemeral),
		},
		Warnings: []WarningRule{
			ephemeralWarning("Cache"),
			ephemeralWarning("Logs"),
			ephemeralWarning("Errors"),
		},
	}
}

// Vanilla returns the 1.12 profile
func Vanilla() Profile {
	return Profile{
		Name:          ProfileVanilla,
		Version:       "1.12",
		Aliases:       []string{"1.12", "112"},
		RequiredFiles: []string{"WoW.exe", "realmlist.wtf"},
		RequiredDirs:  []string{"Data", "WTF", "Interface"},
		RoleRules: []RoleRule{
			{Pattern: "WoW.exe", Role: RoleExecutable},
			// Listed before the patch rule, so patch archives classify as BaseData
			regexRule(`^Data/.*\.MPQ$`, RoleBaseData),
			regexRule(`^Data/patch.*\.MPQ$`, RoleMutableData),
			regexRule(`^Screenshots($|/)`, RoleUserMedia),
			regexRule(`^WTF($|/)`, RoleUserConfig),
			regexRule(`^Interface($|/)`, RoleUserConfig),
			regexRule(`^Logs($|/)`, RoleEphemeral),
			regexRule(`^Errors($|/)`, RoleEphemeral),
			regexRule(`^WDB($|/)`, RoleEphemeral),
		},
		Warnings: []WarningRule{
			ephemeralWarning("Logs"),
			ephemeralWarning("Errors"),
		},
	}
}

// Profiles returns the builtin profiles
func Profiles() []Profile {
	return []Profile{Chromie(), Vanilla()}
}

// LookupProfile resolves a builtin profile by name or alias
func LookupProfile(name string) (Profile, error) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
		for _, alias := range p.Aliases {
			if alias == name {
				return p, nil
			}
		}
	}
	return Profile{}, errors.Newf(errors.ErrUnknownProfile, "Unknown profile: %s", name).
		WithDetail("profile", name)
}

// VerifyRequirements checks that every required file and directory exists
// under dir. Files are checked first.
func (p Profile) VerifyRequirements(fsys types.FS, dir string) error {
	for _, file := range p.RequiredFiles {
		if _, err := fsys.Stat(filepath.Join(dir, filepath.FromSlash(file))); err != nil {
			return errors.Newf(errors.ErrRequirementMissing, "Required file not found: %s", file).
				WithDetail("path", file)
		}
	}

	for _, d := range p.RequiredDirs {
		info, err := fsys.Stat(filepath.Join(dir, filepath.FromSlash(d)))
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrRequirementMissing, "Required directory not found: %s", d).
				WithDetail("path", d)
		}
	}

	return nil
}

// CheckWarnings returns the message of every warning rule whose path exists
func (p Profile) CheckWarnings(fsys types.FS, dir string) []string {
	var warnings []string
	for _, w := range p.Warnings {
		if _, err := fsys.Stat(filepath.Join(dir, filepath.FromSlash(w.Pattern))); err == nil {
			warnings = append(warnings, w.Message)
		}
	}
	return warnings
}

// Classify returns the role of the first rule matching rel, or RoleOther.
// rel is relative to the base and uses forward slashes.
func (p Profile) Classify(rel string) FileRole {
	rel = path.Clean(filepath.ToSlash(rel))
	for _, rule := range p.RoleRules {
		if rule.matches(rel) {
			return rule.Role
		}
	}
	return RoleOther
}

func (r RoleRule) matches(rel string) bool {
	if !r.IsRegex {
		return rel == r.Pattern || strings.HasPrefix(rel, r.Pattern+"/")
	}
	re := compileCached(r.Pattern)
	return re != nil && re.MatchString(rel)
}

// regexCache maps a pattern to its compiled form, or nil when invalid
var regexCache sync.Map

func compileCached(pattern string) *regexp.Regexp {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	regexCache.Store(pattern, re)
	return re
}
