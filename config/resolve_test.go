package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSettings() Settings {
	return Settings{
		Video: VideoSettings{
			DurationSeconds: 25,
			Style:           "viral_facts",
			Voice:           "en-US-GuyNeural",
			Transition:      TransitionSettings{Type: "fade", Enabled: true},
			CaptionStyle:    "bounce",
			RenderMode:      "images",
			Hook:            ToggleSettings{Enabled: true},
		},
		Branding: BrandingSettings{
			Logo:    LogoSettings{Enabled: false},
			EndCard: ToggleSettings{Enabled: true},
		},
	}
}

func TestResolve_NoOverridesRoundTrip(t *testing.T) {
	base := baseSettings()
	resolved := Resolve(base, Overrides{})
	assert.Equal(t, base, resolved)
}

func TestResolve_JobValuesWin(t *testing.T) {
	enabled := true
	disabled := false

	resolved := Resolve(baseSettings(), Overrides{
		Duration:     60,
		Style:        "true_crime",
		Voice:        "en-GB-RyanNeural",
		Transition:   "kenburns",
		CaptionStyle: "karaoke",
		RenderMode:   "combo",
		LogoEnabled:  &enabled,
		LogoPath:     "jobs/abc/logo.png",
		EndCard:      &disabled,
		Hook:         &disabled,
	})

	assert.Equal(t, 60, resolved.Video.DurationSeconds)
	assert.Equal(t, "true_crime", resolved.Video.Style)
	assert.Equal(t, "en-GB-RyanNeural", resolved.Video.Voice)
	assert.Equal(t, "kenburns", resolved.Video.Transition.Type)
	assert.True(t, resolved.Video.Transition.Enabled)
	assert.Equal(t, "karaoke", resolved.Video.CaptionStyle)
	assert.Equal(t, "combo", resolved.Video.RenderMode)
	assert.True(t, resolved.Branding.Logo.Enabled)
	assert.Equal(t, "jobs/abc/logo.png", resolved.Branding.Logo.ImagePath)
	assert.False(t, resolved.Branding.EndCard.Enabled)
	assert.False(t, resolved.Video.Hook.Enabled)
}

func TestResolve_TransitionNoneDisables(t *testing.T) {
	resolved := Resolve(baseSettings(), Overrides{Transition: "none"})
	assert.Equal(t, "fade", resolved.Video.Transition.Type)
	assert.False(t, resolved.Video.Transition.Enabled)
}

func TestResolve_AbsentOverridesFallBack(t *testing.T) {
	resolved := Resolve(baseSettings(), Overrides{Duration: 90})
	assert.Equal(t, 90, resolved.Video.DurationSeconds)
	assert.Equal(t, "viral_facts", resolved.Video.Style)
	assert.Equal(t, "bounce", resolved.Video.CaptionStyle)
	assert.True(t, resolved.Branding.EndCard.Enabled)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job", "settings.yaml")
	base := baseSettings()

	require.NoError(t, WriteSnapshot(base, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var restored Settings
	require.NoError(t, yaml.Unmarshal(data, &restored))
	assert.Equal(t, base, restored)
}
