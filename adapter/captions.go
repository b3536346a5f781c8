package adapter

import (
	"context"
	"path/filepath"

	"reelforge/config"
	"reelforge/constant"
)

// captionTools maps each caption style to its generator tool. Unknown
// styles fall back to the bounce style.
var captionTools = map[string]string{
	constant.CaptionStyleBounce:    "make_captions_bounce.py",
	constant.CaptionStyleColorBox:  "make_captions_color_box.py",
	constant.CaptionStyleKaraoke:   "make_captions_karaoke.py",
	constant.CaptionStyleYellowBox: "make_captions_yellow_box.py",
	constant.CaptionStyleWhiteBox:  "make_captions_white_box.py",
	constant.CaptionStyleSinglePop: "make_captions_single_pop.py",
}

type CaptionGenerator struct {
	interpreter string
	scriptsDir  string
}

func NewCaptionGenerator(cfg *config.Config) *CaptionGenerator {
	return &CaptionGenerator{
		interpreter: cfg.Tools.Interpreter,
		scriptsDir:  cfg.Paths.Scripts,
	}
}

func (c *CaptionGenerator) Generate(ctx context.Context, style string) error {
	return runTool(ctx, c.interpreter, filepath.Join(c.scriptsDir, CaptionTool(style)))
}

// CaptionTool resolves a style to its tool filename.
func CaptionTool(style string) string {
	if tool, ok := captionTools[style]; ok {
		return tool
	}
	return captionTools[constant.CaptionStyleBounce]
}
