package workspace_test

import (
	"testing"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/workspace"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSharingRules(t *testing.T) {
	rules := workspace.DefaultSharingRules()

	assert.Equal(t, workspace.StrategyGlobal, rules["screenshots"])
	assert.Equal(t, workspace.StrategyBase, rules["interface/addons"])
	assert.Equal(t, workspace.StrategyWorkspace, rules["wtf"])
	assert.Len(t, rules, 3)
}

func TestParseShareArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     workspace.Rules
		wantCode errors.ErrorCode
	}{
		{
			name: "no args keeps defaults",
			want: workspace.DefaultSharingRules(),
		},
		{
			name: "override and add",
			args: []string{"screenshots=workspace", "Interface/Icons=GLOBAL"},
			want: workspace.Rules{
				"screenshots":      workspace.StrategyWorkspace,
				"interface/addons": workspace.StrategyBase,
				"wtf":              workspace.StrategyWorkspace,
				"interface/icons":  workspace.StrategyGlobal,
			},
		},
		{
			name: "override ignores case",
			args: []string{"Screenshots=base", " WTF =base"},
			want: workspace.Rules{
				"screenshots":      workspace.StrategyBase,
				"interface/addons": workspace.StrategyBase,
				"wtf":              workspace.StrategyBase,
			},
		},
		{
			name:     "unknown strategy",
			args:     []string{"wtf=everywhere"},
			wantCode: errors.ErrInvalidStrategy,
		},
		{
			name:     "missing separator",
			args:     []string{"wtf"},
			wantCode: errors.ErrInvalidInput,
		},
		{
			name:     "two separators",
			args:     []string{"wtf=base=global"},
			wantCode: errors.ErrInvalidInput,
		},
		{
			name:     "empty key",
			args:     []string{"=global"},
			wantCode: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := workspace.DefaultSharingRules()
			got, err := workspace.ParseShareArgs(defaults, tt.args)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rules mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, workspace.DefaultSharingRules(), defaults, "defaults must not be mutated")
		})
	}
}

func TestDetermineStrategy(t *testing.T) {
	rules := workspace.Rules{
		"screenshots":      workspace.StrategyGlobal,
		"interface":        workspace.StrategyWorkspace,
		"interface/addons": workspace.StrategyBase,
		"customicons":      workspace.StrategyGlobal,
	}

	tests := []struct {
		path string
		def  workspace.SharingStrategy
		want workspace.SharingStrategy
	}{
		{"Screenshots", workspace.StrategyWorkspace, workspace.StrategyGlobal},
		{"Screenshots/2024", workspace.StrategyWorkspace, workspace.StrategyGlobal},
		{"Interface", workspace.StrategyGlobal, workspace.StrategyWorkspace},
		// Longest key wins over the shorter "interface" ancestor
		{"Interface/AddOns", workspace.StrategyGlobal, workspace.StrategyBase},
		{"Interface/AddOns/Foo", workspace.StrategyGlobal, workspace.StrategyBase},
		// Component match, longer than "interface"
		{"Interface/CustomIcons", workspace.StrategyWorkspace, workspace.StrategyGlobal},
		// Ancestor "interface" only, no component rule
		{"Interface/Icons", workspace.StrategyGlobal, workspace.StrategyWorkspace},
		{"WTF", workspace.StrategyBase, workspace.StrategyBase},
		{"ScreenshotsOld", workspace.StrategyWorkspace, workspace.StrategyWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.DetermineStrategy(tt.path, rules, tt.def))
		})
	}
}

func TestDetermineStrategy_ComponentKey(t *testing.T) {
	rules := workspace.Rules{"addons": workspace.StrategyBase}

	assert.Equal(t, workspace.StrategyBase,
		workspace.DetermineStrategy("Interface/AddOns", rules, workspace.StrategyWorkspace))
	assert.Equal(t, workspace.StrategyWorkspace,
		workspace.DetermineStrategy("Interface/Icons", rules, workspace.StrategyWorkspace))
}

func TestParseStrategy(t *testing.T) {
	s, err := workspace.ParseStrategy(" Base ")
	require.NoError(t, err)
	assert.Equal(t, workspace.StrategyBase, s)
	assert.True(t, s.Shared())
	assert.False(t, workspace.StrategyWorkspace.Shared())

	_, err = workspace.ParseStrategy("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidStrategy))
}
