package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reelforge/constant"
	"reelforge/dto"
	"reelforge/entities"
	"reelforge/pkg/workspace"
	"reelforge/repository"
	"reelforge/service"
)

// PipelineRunner starts the background run for a submitted job.
type PipelineRunner interface {
	Run(ctx context.Context, jobID string)
}

// AudioMuxer overlays an audio track onto a finished video in place.
type AudioMuxer interface {
	Mux(ctx context.Context, video, audio string, mode constant.AudioSource) error
}

type Handler struct {
	store    repository.JobStore
	intake   *service.Intake
	pipeline PipelineRunner
	showcase *service.Showcase
	audio    AudioMuxer
	ws       *workspace.Workspace

	// baseCtx carries the process logger into the per-job goroutines,
	// which must outlive the submitting request.
	baseCtx context.Context
}

func New(baseCtx context.Context, store repository.JobStore, intake *service.Intake, pipeline PipelineRunner, showcase *service.Showcase, audio AudioMuxer, ws *workspace.Workspace) *Handler {
	return &Handler{
		store:    store,
		intake:   intake,
		pipeline: pipeline,
		showcase: showcase,
		audio:    audio,
		ws:       ws,
		baseCtx:  baseCtx,
	}
}

// Generate accepts a submission, validates it and starts the pipeline on a
// background goroutine. The response returns immediately with the job id.
func (h *Handler) Generate(c *gin.Context) {
	req, files, err := parseSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Upload failed: " + err.Error()})
		return
	}

	job, err := h.intake.Submit(req, files)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Message})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Upload failed: " + err.Error()})
		return
	}

	go h.pipeline.Run(h.baseCtx, job.ID)

	c.JSON(http.StatusOK, dto.SubmitResponse{JobID: job.ID, Status: constant.JobStatusQueued.String()})
}

func (h *Handler) Status(c *gin.Context) {
	job, ok := h.store.Get(c.Param("job_id"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) Download(c *gin.Context) {
	path, ok := h.videoPath(c)
	if !ok {
		return
	}
	c.FileAttachment(path, "video.mp4")
}

func (h *Handler) Stream(c *gin.Context) {
	path, ok := h.videoPath(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "video/mp4")
	c.File(path)
}

// videoPath resolves the artifact for download/stream. Jobs no longer in
// the registry fall back to probing the job directory, so artifacts
// survive a restart even though records do not.
func (h *Handler) videoPath(c *gin.Context) (string, bool) {
	jobID := c.Param("job_id")

	path := h.ws.OutputVideo(jobID)
	if job, ok := h.store.Get(jobID); ok {
		if job.Status != constant.JobStatusCompleted {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Video not ready"})
			return "", false
		}
		path = job.VideoPath
	}

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Video file not found"})
		return "", false
	}
	return path, true
}

// AddAudio layers an uploaded track onto an already-finished video,
// replacing the job's video.mp4 in place. Works off the job directory
// alone, so it also serves artifacts whose registry record is gone.
func (h *Handler) AddAudio(c *gin.Context) {
	jobID := c.Param("job_id")

	audioFile, err := c.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No audio file provided"})
		return
	}
	mode := constant.AudioSource(c.DefaultPostForm("mode", string(constant.AudioSourceReplace)))

	jobDir := h.ws.JobDir(jobID)
	if _, err := os.Stat(jobDir); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Job not found"})
		return
	}
	video := h.ws.OutputVideo(jobID)
	if _, err := os.Stat(video); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Video not found"})
		return
	}

	audioPath := filepath.Join(jobDir, "custom_audio.mp3")
	if err := c.SaveUploadedFile(audioFile, audioPath); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.audio.Mux(c.Request.Context(), video, audioPath, mode); err != nil {
		zerolog.Ctx(h.baseCtx).Error().Err(err).Str("job_id", jobID).Msg("audio layering failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Audio processing failed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Audio added successfully"})
}

func (h *Handler) Showcase(c *gin.Context) {
	entries, err := h.showcase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if entries == nil {
		entries = []entities.ShowcaseEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConfigResponse{
		Platforms:   constant.Platforms,
		Styles:      constant.Styles,
		Transitions: constant.Transitions,
		Durations:   constant.Durations,
	})
}

// jsonSubmission mirrors the multipart field names for JSON clients, which
// cannot attach files.
type jsonSubmission struct {
	Topic        string `json:"topic"`
	Platform     string `json:"platform"`
	Style        string `json:"style"`
	Voice        string `json:"voice"`
	Duration     int    `json:"duration"`
	Transition   string `json:"transition"`
	CaptionStyle string `json:"caption_style"`
	ContentType  string `json:"content_type"`
	LogoOption   string `json:"logo_option"`
	EndCard      string `json:"end_card_option"`
	Hook         string `json:"hook_option"`
	AudioSource  string `json:"audio_source"`
	SkipAI       bool   `json:"skip_ai"`
	SkipCaptions bool   `json:"skip_captions"`
}

func parseSubmission(c *gin.Context) (dto.SubmitRequest, service.UploadSet, error) {
	var files service.UploadSet

	if strings.Contains(c.ContentType(), "application/json") {
		var body jsonSubmission
		if err := c.ShouldBindJSON(&body); err != nil {
			return dto.SubmitRequest{}, files, err
		}
		return buildRequest(
			body.Topic, body.Platform, body.Style, body.Voice, body.Duration,
			body.Transition, body.CaptionStyle, body.ContentType, body.LogoOption,
			body.EndCard, body.Hook, body.AudioSource, body.SkipAI, body.SkipCaptions,
		), files, nil
	}

	duration, _ := strconv.Atoi(c.DefaultPostForm("duration", "25"))

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files.Images = form.File["image_files"]
		files.Videos = form.File["video_files"]
		if logos := form.File["logo_file"]; len(logos) > 0 {
			files.Logo = logos[0]
		}
		if audios := form.File["custom_audio_file"]; len(audios) > 0 {
			files.Audio = audios[0]
		}
	}

	return buildRequest(
		c.PostForm("topic"),
		c.PostForm("platform"),
		c.PostForm("style"),
		c.PostForm("voice"),
		duration,
		c.PostForm("transition"),
		c.PostForm("caption_style"),
		c.PostForm("content_type"),
		c.PostForm("logo_option"),
		c.PostForm("end_card_option"),
		c.PostForm("hook_option"),
		c.PostForm("audio_source"),
		strings.EqualFold(c.PostForm("skip_ai"), "true"),
		strings.EqualFold(c.PostForm("skip_captions"), "true"),
	), files, nil
}

func buildRequest(topic, platform, style, voice string, duration int, transition, captionStyle, contentType, logoOption, endCard, hook, audioSource string, skipAI, skipCaptions bool) dto.SubmitRequest {
	return dto.SubmitRequest{
		Topic:        strings.TrimSpace(topic),
		Platform:     defaultString(platform, "tiktok"),
		Style:        defaultString(style, "viral_facts"),
		Voice:        defaultString(voice, "en-US-GuyNeural"),
		Duration:     defaultInt(duration, 25),
		Transition:   defaultString(transition, "fade"),
		CaptionStyle: defaultString(captionStyle, constant.CaptionStyleBounce),
		ContentType:  constant.ContentType(defaultString(contentType, constant.ContentTypeImages.String())),
		LogoOption:   constant.LogoOption(defaultString(logoOption, string(constant.LogoOptionNone))),
		EndCard:      defaultString(endCard, "enabled") == "enabled",
		Hook:         defaultString(hook, "enabled") == "enabled",
		AudioSource:  constant.AudioSource(defaultString(audioSource, string(constant.AudioSourceNone))),
		SkipAI:       skipAI,
		SkipCaptions: skipCaptions,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
