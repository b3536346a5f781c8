package adapter

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

var ffmpegCandidates = []string{
	"ffmpeg",
	filepath.Join("ffmpeg", "bin", "ffmpeg"),
	"/usr/local/bin/ffmpeg",
	"/opt/homebrew/bin/ffmpeg",
}

var (
	ffmpegOnce sync.Once
	ffmpegPath string
	ffmpegErr  error
)

// LocateFFmpeg probes the candidate paths once and caches the first
// executable that answers -version. An explicit configured path wins
// without probing.
func LocateFFmpeg(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	ffmpegOnce.Do(func() {
		for _, candidate := range ffmpegCandidates {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := exec.CommandContext(ctx, candidate, "-version").Run()
			cancel()
			if err == nil {
				ffmpegPath = candidate
				return
			}
		}
		ffmpegErr = fmt.Errorf("ffmpeg executable not found; install ffmpeg or set tools.ffmpeg")
	})

	return ffmpegPath, ffmpegErr
}
