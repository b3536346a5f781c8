package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"reelforge/adapter"
	"reelforge/config"
	"reelforge/constant"
	"reelforge/entities"
	"reelforge/pkg/workspace"
	"reelforge/repository"
)

// Stage adapter capabilities consumed by the pipeline. Concrete
// implementations live in the adapter package; tests substitute fakes.
type ScriptAdapter interface {
	Generate(ctx context.Context, topic string) (adapter.ScriptByProducts, error)
}

type VoiceAdapter interface {
	Synthesize(ctx context.Context) (hookAudio bool, err error)
}

type CaptionAdapter interface {
	Generate(ctx context.Context, style string) error
}

type MediaAdapter interface {
	CopyImages(ctx context.Context, srcs []string) error
	CopyVideos(ctx context.Context, srcs []string) error
	DownloadImages(ctx context.Context, topic, style string, count int) error
	DownloadVideos(ctx context.Context) error
}

type RenderAdapter interface {
	Render(ctx context.Context, contentType constant.ContentType, platform string) error
}

type AudioAdapter interface {
	Prime(ctx context.Context, src string) error
	Mux(ctx context.Context, video, audio string, mode constant.AudioSource) error
}

type Toolchain struct {
	Script   ScriptAdapter
	Voice    VoiceAdapter
	Captions CaptionAdapter
	Media    MediaAdapter
	Render   RenderAdapter
	Audio    AudioAdapter
}

// Pipeline runs one job end to end on a background goroutine and reports
// exclusively through job-record mutation. A single process-wide gate
// serializes the resource-intensive portion: transcoding is CPU-bound and
// the upstream AI services are rate limited, so at most one job renders at
// a time.
type Pipeline struct {
	store    repository.JobStore
	cfg      *config.Config
	ws       *workspace.Workspace
	tools    Toolchain
	showcase *Showcase

	gate sync.Mutex
}

func NewPipeline(store repository.JobStore, cfg *config.Config, ws *workspace.Workspace, tools Toolchain, showcase *Showcase) *Pipeline {
	return &Pipeline{
		store:    store,
		cfg:      cfg,
		ws:       ws,
		tools:    tools,
		showcase: showcase,
	}
}

// Run executes the whole pipeline for jobID. Invoked exactly once per job.
// Failures never escape: they terminate the job, not the process, and the
// gate is always released.
func (p *Pipeline) Run(ctx context.Context, jobID string) {
	job, ok := p.store.Get(jobID)
	if !ok {
		zerolog.Ctx(ctx).Error().Str("job_id", jobID).Msg("job not found in store")
		return
	}

	firstStage := "Generating script..."
	if job.SkipAI {
		firstStage = "Preparing media..."
	}

	waited := false
	if !p.gate.TryLock() {
		// Another job holds the render slot. Make the wait visible to
		// pollers, then block until the slot frees up.
		p.store.Mutate(jobID, func(j *entities.Job) {
			j.Status = constant.JobStatusProcessing
			j.Stage = "Waiting for previous job to finish..."
		})
		waited = true
		p.gate.Lock()
	}
	defer p.gate.Unlock()

	p.store.Mutate(jobID, func(j *entities.Job) {
		j.Status = constant.JobStatusProcessing
		j.Stage = firstStage
	})
	if waited {
		zerolog.Ctx(ctx).Info().Str("job_id", jobID).Msg("render slot acquired after wait")
	}

	if err := p.execute(ctx, job); err != nil {
		p.fail(ctx, jobID, err)
		return
	}

	zerolog.Ctx(ctx).Info().Str("job_id", jobID).Msg("job completed")
}

func (p *Pipeline) execute(ctx context.Context, job *entities.Job) error {
	log := zerolog.Ctx(ctx)

	jobDir := p.ws.JobDir(job.ID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return err
	}

	eff, err := p.resolveSettings(job, jobDir)
	if err != nil {
		return err
	}

	// Clear leftovers from whichever job last used the shared working
	// area, so skip modes cannot silently inherit a stale voice track,
	// script or caption file.
	p.ws.ClearVoice()
	if job.SkipAI {
		p.ws.ClearScript()
	}
	if job.SkipAI || job.SkipCaptions {
		p.ws.ClearCaptions()
	}

	// Stage 1: script generation.
	if !job.SkipAI {
		p.setStage(job.ID, "Creating script...", constant.ProgressScript)
		byProducts, err := p.tools.Script.Generate(ctx, job.Topic)
		if err != nil {
			return err
		}
		p.store.Mutate(job.ID, func(j *entities.Job) {
			j.SelectedHook = byProducts.SelectedHook
			j.HookOptions = byProducts.HookOptions
			j.Timeline = byProducts.Timeline
		})
		log.Info().Str("job_id", job.ID).Msg("script generated")
	} else {
		p.setStage(job.ID, "Skipping AI generation...", constant.ProgressScript)
	}

	// Stage 2: voice synthesis.
	if !job.SkipAI {
		p.setStage(job.ID, "Synthesizing voice...", constant.ProgressVoice)
		hookAudio, err := p.tools.Voice.Synthesize(ctx)
		if err != nil {
			return err
		}
		p.store.Mutate(job.ID, func(j *entities.Job) {
			j.HasHookAudio = hookAudio
		})
	} else {
		p.store.Mutate(job.ID, func(j *entities.Job) {
			j.Progress = constant.ProgressVoice
			j.HasHookAudio = false
		})
	}

	// Stage 3: captions, per the effective style after skip flags.
	captionStyle := eff.Video.CaptionStyle
	if !job.SkipAI && captionStyle != constant.CaptionStyleNone {
		p.setStage(job.ID, "Creating captions...", constant.ProgressCaptions)
		if err := p.tools.Captions.Generate(ctx, captionStyle); err != nil {
			return err
		}
	} else {
		p.store.Mutate(job.ID, func(j *entities.Job) {
			j.Progress = constant.ProgressCaptions
		})
	}

	// Stage 4: content collection. Uploads win over auto-download for
	// their class.
	p.setStage(job.ID, "Collecting content...", constant.ProgressContent)
	if len(job.ImagePaths) > 0 {
		if err := p.tools.Media.CopyImages(ctx, job.ImagePaths); err != nil {
			return err
		}
	} else if job.ContentType.WantsImages() {
		count := max(3, job.Duration/3)
		if err := p.tools.Media.DownloadImages(ctx, job.Topic, job.Style, count); err != nil {
			return err
		}
	}
	if len(job.VideoPaths) > 0 {
		if err := p.tools.Media.CopyVideos(ctx, job.VideoPaths); err != nil {
			return err
		}
	} else if job.ContentType.WantsVideos() {
		// Clip download failures leave the renderer to work with what it
		// has; this path has flaky upstream sources.
		if err := p.tools.Media.DownloadVideos(ctx); err != nil {
			log.Warn().Err(err).Str("job_id", job.ID).Msg("video download failed")
		}
	}

	// Stage 5: skip-AI audio priming. Rendering cannot proceed without a
	// voice track in this mode.
	if job.SkipAI && job.AudioSource == constant.AudioSourceReplace && job.AudioPath != "" {
		if _, err := os.Stat(job.AudioPath); err == nil {
			p.store.Mutate(job.ID, func(j *entities.Job) {
				j.Stage = "Preparing custom audio..."
			})
			if err := p.tools.Audio.Prime(ctx, job.AudioPath); err != nil {
				log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to prime custom audio")
			}
		}
	}
	if job.SkipAI {
		if _, err := os.Stat(p.ws.Voice()); err != nil {
			return errors.New("skip AI requires a custom audio file; voice track was not prepared correctly")
		}
	}

	// Stage 6: render.
	p.setStage(job.ID, "Rendering video...", constant.ProgressRender)
	if err := p.tools.Render.Render(ctx, job.ContentType, job.Platform); err != nil {
		return err
	}

	return p.finalize(ctx, job)
}

func (p *Pipeline) finalize(ctx context.Context, job *entities.Job) error {
	log := zerolog.Ctx(ctx)

	finalVideo := p.ws.FinalVideo()
	if _, err := os.Stat(finalVideo); err != nil {
		return errors.New("video rendering failed: final video artifact is missing")
	}

	outputVideo := p.ws.OutputVideo(job.ID)
	if err := workspace.CopyFile(finalVideo, outputVideo); err != nil {
		return fmt.Errorf("copy final video: %w", err)
	}

	// Custom audio overlay, unless the priming stage already consumed the
	// uploaded audio as the voice track. Overlay failure keeps the
	// un-mixed video rather than failing a fully rendered job.
	if job.AudioSource != constant.AudioSourceNone && job.AudioPath != "" &&
		!(job.SkipAI && job.AudioSource == constant.AudioSourceReplace) {
		if _, err := os.Stat(job.AudioPath); err == nil {
			p.setStage(job.ID, "Adding custom audio...", constant.ProgressAudio)
			if err := p.tools.Audio.Mux(ctx, outputVideo, job.AudioPath, job.AudioSource); err != nil {
				log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to add custom audio")
			}
		}
	}

	if err := p.showcase.Publish(outputVideo, job.ID); err != nil {
		log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to publish to showcase")
	}

	now := time.Now()
	p.store.Mutate(job.ID, func(j *entities.Job) {
		j.Status = constant.JobStatusCompleted
		j.Stage = "Complete!"
		j.Progress = constant.ProgressDone
		j.VideoPath = outputVideo
		j.CompletedAt = &now
	})

	return nil
}

// resolveSettings overlays the job's choices onto the base settings and
// writes the snapshot into the job directory plus the shared working area,
// so every stage tool reads one consistent document.
func (p *Pipeline) resolveSettings(job *entities.Job, jobDir string) (config.Settings, error) {
	captionStyle := job.CaptionStyle
	if job.SkipCaptions || job.SkipAI {
		captionStyle = constant.CaptionStyleNone
	}

	ov := config.Overrides{
		Duration:     job.Duration,
		Style:        job.Style,
		Voice:        job.Voice,
		Transition:   job.Transition,
		CaptionStyle: captionStyle,
		RenderMode:   job.ContentType.String(),
		EndCard:      &job.EndCard,
		Hook:         &job.Hook,
	}

	switch job.LogoOption {
	case constant.LogoOptionDefault:
		ov.LogoEnabled = boolPtr(true)
	case constant.LogoOptionUpload:
		if job.LogoPath != "" {
			ov.LogoEnabled = boolPtr(true)
			ov.LogoPath = job.LogoPath
		}
	case constant.LogoOptionNone:
		ov.LogoEnabled = boolPtr(false)
	}

	eff := config.Resolve(p.cfg.Settings, ov)

	snapshot := filepath.Join(jobDir, "settings.yaml")
	if err := config.WriteSnapshot(eff, snapshot); err != nil {
		return config.Settings{}, fmt.Errorf("write settings snapshot: %w", err)
	}
	if err := workspace.CopyFile(snapshot, p.ws.Snapshot()); err != nil {
		return config.Settings{}, fmt.Errorf("stage settings snapshot: %w", err)
	}

	return eff, nil
}

func (p *Pipeline) setStage(jobID, stage string, progress int) {
	p.store.Mutate(jobID, func(j *entities.Job) {
		j.Stage = stage
		j.Progress = progress
	})
}

// fail marks the job terminally failed, preserving the adapter's captured
// diagnostic output when present.
func (p *Pipeline) fail(ctx context.Context, jobID string, err error) {
	detail := err.Error()
	stage := "Error: " + detail
	var stageErr *adapter.StageError
	if errors.As(err, &stageErr) {
		detail = "Command failed: " + stageErr.Diagnostic()
		stage = "Error occurred"
	}

	zerolog.Ctx(ctx).Error().Str("job_id", jobID).Str("error", detail).Msg("pipeline failed")

	p.store.Mutate(jobID, func(j *entities.Job) {
		j.Status = constant.JobStatusFailed
		j.Stage = stage
		j.Progress = 0
		j.Error = detail
	})
}

func boolPtr(b bool) *bool {
	return &b
}
