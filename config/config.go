package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `yaml:"app" mapstructure:"app"`
	Server   Server   `yaml:"server" mapstructure:"server"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
	Tools    Tools    `yaml:"tools" mapstructure:"tools"`
	Settings Settings `yaml:"settings" mapstructure:"settings"`
}

type App struct {
	Environment string `yaml:"environment" mapstructure:"environment"`
}

type Server struct {
	HttpPort string `yaml:"http_port" mapstructure:"http_port"`
}

// Paths locates the per-job area, the shared working area the stage tools
// read and write, the public showcase gallery and the tool scripts.
type Paths struct {
	Jobs     string `yaml:"jobs" mapstructure:"jobs"`
	Work     string `yaml:"work" mapstructure:"work"`
	Images   string `yaml:"images" mapstructure:"images"`
	Videos   string `yaml:"videos" mapstructure:"videos"`
	Showcase string `yaml:"showcase" mapstructure:"showcase"`
	Scripts  string `yaml:"scripts" mapstructure:"scripts"`
}

type Tools struct {
	// Interpreter runs the stage tools (script, voice, captions, media,
	// render). The tools themselves are fixed filenames under Paths.Scripts.
	Interpreter string `yaml:"interpreter" mapstructure:"interpreter"`
	// FFmpeg overrides executable discovery when set.
	FFmpeg string `yaml:"ffmpeg" mapstructure:"ffmpeg"`
	// ImageFallback enables the built-in HTTP image fetcher when the image
	// download tool is missing from Paths.Scripts.
	ImageFallback bool `yaml:"image_fallback" mapstructure:"image_fallback"`
}

// Load reads settings.yaml from path. A malformed base configuration is
// fatal at startup, never per-job.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")

	viper.SetDefault("app.environment", "develop")
	viper.SetDefault("server.http_port", "5000")
	viper.SetDefault("paths.jobs", "jobs")
	viper.SetDefault("paths.work", "output")
	viper.SetDefault("paths.images", "images")
	viper.SetDefault("paths.videos", "videos")
	viper.SetDefault("paths.showcase", "static/showcase")
	viper.SetDefault("paths.scripts", "scripts")
	viper.SetDefault("tools.interpreter", "python3")
	viper.SetDefault("tools.image_fallback", true)
	viper.SetDefault("settings.video.duration_seconds", 25)
	viper.SetDefault("settings.video.style", "viral_facts")
	viper.SetDefault("settings.video.voice", "en-US-GuyNeural")
	viper.SetDefault("settings.video.transition.type", "fade")
	viper.SetDefault("settings.video.transition.enabled", true)
	viper.SetDefault("settings.video.caption_style", "bounce")
	viper.SetDefault("settings.video.render_mode", "images")
	viper.SetDefault("settings.video.hook.enabled", true)
	viper.SetDefault("settings.branding.end_card.enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
