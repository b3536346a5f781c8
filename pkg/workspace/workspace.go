// Package workspace names the shared file slots the stage tools communicate
// through. Every adapter receives the same Workspace value instead of
// rediscovering ambient paths, which is what makes stale-artifact clearing
// enforceable in one place.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Workspace struct {
	// Jobs holds one durable directory per job id.
	Jobs string
	// Work is the transient area shared by the stage tools. Single-job
	// at a time: the executor's global gate is what makes this safe.
	Work   string
	Images string
	Videos string
}

func New(jobs, work, images, videos string) *Workspace {
	return &Workspace{Jobs: jobs, Work: work, Images: images, Videos: videos}
}

func (w *Workspace) EnsureDirs() error {
	for _, dir := range []string{w.Jobs, w.Work, w.Images, w.Videos} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func (w *Workspace) JobDir(jobID string) string {
	return filepath.Join(w.Jobs, jobID)
}

// OutputVideo is the durable per-job final artifact location.
func (w *Workspace) OutputVideo(jobID string) string {
	return filepath.Join(w.JobDir(jobID), "video.mp4")
}

func (w *Workspace) Script() string       { return filepath.Join(w.Work, "script.txt") }
func (w *Workspace) ScriptStruct() string { return filepath.Join(w.Work, "script_struct.json") }
func (w *Workspace) Voice() string        { return filepath.Join(w.Work, "voice.wav") }
func (w *Workspace) HookVoice() string    { return filepath.Join(w.Work, "voice_hook.wav") }
func (w *Workspace) CaptionASS() string   { return filepath.Join(w.Work, "captions.ass") }
func (w *Workspace) CaptionSRT() string   { return filepath.Join(w.Work, "captions.srt") }
func (w *Workspace) Snapshot() string     { return filepath.Join(w.Work, "settings.yaml") }
func (w *Workspace) FinalVideo() string   { return filepath.Join(w.Work, "final.mp4") }

// ImageSlot returns the canonical slot for the n-th image (1-based),
// keeping the original extension.
func (w *Workspace) ImageSlot(n int, ext string) string {
	return filepath.Join(w.Images, fmt.Sprintf("img_%02d%s", n, ext))
}

func (w *Workspace) VideoSlot(n int) string {
	return filepath.Join(w.Videos, fmt.Sprintf("video_%02d.mp4", n))
}

// ClearVoice removes a stale voice track left by a previous run.
func (w *Workspace) ClearVoice() {
	remove(w.Voice())
}

func (w *Workspace) ClearScript() {
	remove(w.Script())
	remove(w.ScriptStruct())
}

func (w *Workspace) ClearCaptions() {
	remove(w.CaptionASS())
	remove(w.CaptionSRT())
}

func (w *Workspace) ClearImages() error {
	return removeGlob(filepath.Join(w.Images, "img_*.*"))
}

func (w *Workspace) ClearVideos() error {
	return removeGlob(filepath.Join(w.Videos, "video_*.mp4"))
}

func remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		// Best effort: a stale artifact that cannot be removed surfaces
		// later as a stage failure with better context.
		_ = err
	}
}

func removeGlob(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CopyFile copies src to dst, creating parent directories as needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
