package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"reelforge/config"
	"reelforge/pkg/workspace"
)

// MediaCollector fills the canonical image and video slots, either from
// user uploads or by invoking the download tools. Uploaded content always
// takes precedence for its class.
type MediaCollector struct {
	interpreter string
	imagesTool  string
	videosTool  string
	fetcher     *ImageFetcher
	ws          *workspace.Workspace
}

func NewMediaCollector(cfg *config.Config, ws *workspace.Workspace) *MediaCollector {
	m := &MediaCollector{
		interpreter: cfg.Tools.Interpreter,
		imagesTool:  filepath.Join(cfg.Paths.Scripts, "make_images.py"),
		videosTool:  filepath.Join(cfg.Paths.Scripts, "make_videos.py"),
		ws:          ws,
	}
	if cfg.Tools.ImageFallback {
		m.fetcher = NewImageFetcher()
	}
	return m
}

// CopyImages clears stale slot contents and copies the uploaded files into
// the canonical image slots, keeping each original extension.
func (m *MediaCollector) CopyImages(ctx context.Context, srcs []string) error {
	if err := m.ws.ClearImages(); err != nil {
		return err
	}
	for i, src := range srcs {
		dst := m.ws.ImageSlot(i+1, strings.ToLower(filepath.Ext(src)))
		if err := workspace.CopyFile(src, dst); err != nil {
			return fmt.Errorf("copy image %s: %w", filepath.Base(src), err)
		}
	}
	zerolog.Ctx(ctx).Info().Int("count", len(srcs)).Msg("uploaded images staged")
	return nil
}

func (m *MediaCollector) CopyVideos(ctx context.Context, srcs []string) error {
	if err := m.ws.ClearVideos(); err != nil {
		return err
	}
	for i, src := range srcs {
		if err := workspace.CopyFile(src, m.ws.VideoSlot(i+1)); err != nil {
			return fmt.Errorf("copy video %s: %w", filepath.Base(src), err)
		}
	}
	zerolog.Ctx(ctx).Info().Int("count", len(srcs)).Msg("uploaded videos staged")
	return nil
}

// DownloadImages clears stale images and invokes the image download tool.
// When the tool is absent and the built-in fetcher is enabled, images are
// fetched directly over HTTP instead.
func (m *MediaCollector) DownloadImages(ctx context.Context, topic, style string, count int) error {
	if err := m.ws.ClearImages(); err != nil {
		return err
	}

	if _, err := os.Stat(m.imagesTool); err != nil && m.fetcher != nil {
		zerolog.Ctx(ctx).Info().Msg("image tool missing, using built-in fetcher")
		return m.fetcher.Fetch(ctx, topic, style, count, m.ws)
	}

	return runTool(ctx, m.interpreter, m.imagesTool)
}

func (m *MediaCollector) DownloadVideos(ctx context.Context) error {
	if err := m.ws.ClearVideos(); err != nil {
		return err
	}
	return runTool(ctx, m.interpreter, m.videosTool)
}
