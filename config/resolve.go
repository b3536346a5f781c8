package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Settings is the overlayable configuration document every stage tool
// consumes. One resolved snapshot is written into the job directory and
// copied into the working area so all stages read the same values.
type Settings struct {
	Video    VideoSettings    `yaml:"video" mapstructure:"video"`
	Branding BrandingSettings `yaml:"branding" mapstructure:"branding"`
}

type VideoSettings struct {
	DurationSeconds int                `yaml:"duration_seconds" mapstructure:"duration_seconds"`
	Style           string             `yaml:"style" mapstructure:"style"`
	Voice           string             `yaml:"voice" mapstructure:"voice"`
	Transition      TransitionSettings `yaml:"transition" mapstructure:"transition"`
	CaptionStyle    string             `yaml:"caption_style" mapstructure:"caption_style"`
	RenderMode      string             `yaml:"render_mode" mapstructure:"render_mode"`
	Hook            ToggleSettings     `yaml:"hook" mapstructure:"hook"`
}

type TransitionSettings struct {
	Type    string `yaml:"type" mapstructure:"type"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

type BrandingSettings struct {
	Logo    LogoSettings   `yaml:"logo" mapstructure:"logo"`
	EndCard ToggleSettings `yaml:"end_card" mapstructure:"end_card"`
}

type LogoSettings struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	ImagePath string `yaml:"image_path" mapstructure:"image_path"`
}

type ToggleSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// Overrides holds the per-job choices overlaid onto the base settings.
// Zero values mean "absent": the base value stays. LogoEnabled, EndCard and
// Hook are pointers for the same reason, since false is a meaningful choice.
type Overrides struct {
	Duration     int
	Style        string
	Voice        string
	Transition   string // "none" keeps the base type but disables it
	CaptionStyle string
	RenderMode   string
	LogoEnabled  *bool
	LogoPath     string
	EndCard      *bool
	Hook         *bool
}

// Resolve overlays job-specific choices onto the base settings. Pure: no
// filesystem, no network, no registry. Job values always win; absent
// overrides fall back to the base.
func Resolve(base Settings, o Overrides) Settings {
	out := base

	if o.Duration > 0 {
		out.Video.DurationSeconds = o.Duration
	}
	if o.Style != "" {
		out.Video.Style = o.Style
	}
	if o.Voice != "" {
		out.Video.Voice = o.Voice
	}
	if o.Transition != "" {
		if o.Transition == "none" {
			out.Video.Transition.Type = "fade"
			out.Video.Transition.Enabled = false
		} else {
			out.Video.Transition.Type = o.Transition
			out.Video.Transition.Enabled = true
		}
	}
	if o.CaptionStyle != "" {
		out.Video.CaptionStyle = o.CaptionStyle
	}
	if o.RenderMode != "" {
		out.Video.RenderMode = o.RenderMode
	}
	if o.LogoEnabled != nil {
		out.Branding.Logo.Enabled = *o.LogoEnabled
	}
	if o.LogoPath != "" {
		out.Branding.Logo.ImagePath = o.LogoPath
	}
	if o.EndCard != nil {
		out.Branding.EndCard.Enabled = *o.EndCard
	}
	if o.Hook != nil {
		out.Video.Hook.Enabled = *o.Hook
	}

	return out
}

// WriteSnapshot serializes a resolved settings document to path. The
// snapshot is immutable for the duration of the job's run.
func WriteSnapshot(s Settings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
