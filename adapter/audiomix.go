package adapter

import (
	"context"
	"os"
	"path/filepath"

	"reelforge/config"
	"reelforge/constant"
	"reelforge/pkg/workspace"
)

// mixWeights are the narration/custom-audio amix weights per mix mode.
var mixWeights = map[constant.AudioSource]string{
	constant.AudioSourceMixQuiet:  "1 0.2",
	constant.AudioSourceMixMedium: "1 0.5",
	constant.AudioSourceMixLoud:   "1 0.8",
}

type AudioMixer struct {
	configured string
	ws         *workspace.Workspace
}

// NewAudioMixer never probes for ffmpeg. Discovery happens on first use,
// so a host without ffmpeg still serves the rest of the API and only the
// audio stages fail.
func NewAudioMixer(cfg *config.Config, ws *workspace.Workspace) *AudioMixer {
	return &AudioMixer{configured: cfg.Tools.FFmpeg, ws: ws}
}

// Prime transcodes a user-supplied audio file into the canonical voice
// track slot so a skip-AI render has a voice track to work with.
func (a *AudioMixer) Prime(ctx context.Context, src string) error {
	ffmpeg, err := LocateFFmpeg(a.configured)
	if err != nil {
		return err
	}
	return runTool(ctx, ffmpeg,
		"-y",
		"-i", src,
		"-ar", "44100",
		"-ac", "2",
		a.ws.Voice(),
	)
}

// Mux overlays the custom audio onto video: full replacement for the
// replace mode, weighted amix otherwise. The video file is swapped
// atomically only after ffmpeg succeeds.
func (a *AudioMixer) Mux(ctx context.Context, video, audio string, mode constant.AudioSource) error {
	ffmpeg, err := LocateFFmpeg(a.configured)
	if err != nil {
		return err
	}

	temp := filepath.Join(filepath.Dir(video), "temp_with_audio.mp4")

	var args []string
	if mode == constant.AudioSourceReplace {
		args = []string{
			"-y",
			"-i", video,
			"-i", audio,
			"-c:v", "copy",
			"-map", "0:v",
			"-map", "1:a",
			"-shortest",
			temp,
		}
	} else {
		weight, ok := mixWeights[mode]
		if !ok {
			weight = mixWeights[constant.AudioSourceMixMedium]
		}
		args = []string{
			"-y",
			"-i", video,
			"-i", audio,
			"-filter_complex", "[0:a][1:a]amix=inputs=2:duration=first:weights=" + weight + ":dropout_transition=3[a]",
			"-map", "0:v",
			"-map", "[a]",
			"-c:v", "copy",
			"-c:a", "aac",
			"-shortest",
			temp,
		}
	}

	if err := runTool(ctx, ffmpeg, args...); err != nil {
		os.Remove(temp)
		return err
	}

	return os.Rename(temp, video)
}
