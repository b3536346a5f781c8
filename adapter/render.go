package adapter

import (
	"context"
	"path/filepath"

	"reelforge/config"
	"reelforge/constant"
)

type Renderer struct {
	interpreter string
	scriptsDir  string
}

func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		interpreter: cfg.Tools.Interpreter,
		scriptsDir:  cfg.Paths.Scripts,
	}
}

// Render invokes the render tool matching the content type with the target
// platform as its argument. The tool must leave the final video in the
// workspace's final slot.
func (r *Renderer) Render(ctx context.Context, contentType constant.ContentType, platform string) error {
	return runTool(ctx, r.interpreter, filepath.Join(r.scriptsDir, RenderTool(contentType)), platform)
}

// RenderTool picks the renderer variant: pure clips, image+clip combo, or
// the default image slideshow.
func RenderTool(contentType constant.ContentType) string {
	switch contentType {
	case constant.ContentTypeVideos, constant.ContentTypeUploadVideos:
		return "make_video_render_clips.py"
	case constant.ContentTypeCombo, constant.ContentTypeUploadBoth:
		return "make_video_render_combo.py"
	default:
		return "make_video_render.py"
	}
}
