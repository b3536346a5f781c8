package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelforge/constant"
	"reelforge/dto"
	"reelforge/entities"
	"reelforge/pkg/workspace"
	"reelforge/repository"
)

const (
	maxImageSize = 10 << 20  // 10MB per image
	maxVideoSize = 100 << 20 // 100MB per video
)

// Extension allow-lists per asset class. Files outside the list are
// silently dropped from the accepted set, they never fail the submission.
var (
	logoExtensions  = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
	audioExtensions = map[string]bool{".mp3": true, ".wav": true}
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	videoExtensions = map[string]bool{".mp4": true}
)

// ValidationError rejects a submission before any job record exists.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func rejectf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UploadSet carries the file parts of a submission.
type UploadSet struct {
	Logo   *multipart.FileHeader
	Audio  *multipart.FileHeader
	Images []*multipart.FileHeader
	Videos []*multipart.FileHeader
}

// Intake validates submissions and persists accepted uploads into the
// job-scoped directory. All checks run before the job record is created so
// a rejected submission leaves no record behind.
type Intake struct {
	store repository.JobStore
	ws    *workspace.Workspace
}

func NewIntake(store repository.JobStore, ws *workspace.Workspace) *Intake {
	return &Intake{store: store, ws: ws}
}

func (s *Intake) Submit(req dto.SubmitRequest, files UploadSet) (*entities.Job, error) {
	if req.SkipAI && req.AudioSource != constant.AudioSourceReplace {
		return nil, rejectf("Skip AI mode requires audio source set to Replace with a custom upload.")
	}
	if strings.TrimSpace(req.Topic) == "" && !req.SkipAI {
		return nil, rejectf("Topic is required")
	}

	// Minimum 3 seconds of screen time per asset bounds how many the
	// requested duration can use.
	maxImages := max(3, req.Duration/3)
	maxVideos := max(2, req.Duration/3)

	if len(files.Images) > maxImages {
		return nil, rejectf("Too many images. Maximum %d images for %ds video (min 3s per image)", maxImages, req.Duration)
	}
	if len(files.Videos) > maxVideos {
		return nil, rejectf("Too many videos. Maximum %d videos for %ds video (min 3s per video)", maxVideos, req.Duration)
	}

	for _, fh := range files.Images {
		if fh.Size > maxImageSize {
			return nil, rejectf("Image '%s' is too large. Max 10MB per image.", fh.Filename)
		}
	}
	for _, fh := range files.Videos {
		if fh.Size > maxVideoSize {
			return nil, rejectf("Video '%s' is too large. Max 100MB per video.", fh.Filename)
		}
	}

	jobID := uuid.NewString()
	jobDir := s.ws.JobDir(jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return nil, err
	}

	var logoPath string
	if files.Logo != nil && req.LogoOption == constant.LogoOptionUpload {
		ext := strings.ToLower(filepath.Ext(files.Logo.Filename))
		if logoExtensions[ext] {
			logoPath = filepath.Join(jobDir, "logo"+ext)
			if err := saveUpload(files.Logo, logoPath); err != nil {
				return nil, err
			}
		}
	}

	var audioPath string
	if files.Audio != nil && req.AudioSource != constant.AudioSourceNone {
		ext := strings.ToLower(filepath.Ext(files.Audio.Filename))
		if audioExtensions[ext] {
			audioPath = filepath.Join(jobDir, "custom_audio"+ext)
			if err := saveUpload(files.Audio, audioPath); err != nil {
				return nil, err
			}
		}
	}

	var imagePaths []string
	if len(files.Images) > 0 && (req.ContentType == constant.ContentTypeUploadImages || req.ContentType == constant.ContentTypeUploadBoth) {
		dir := filepath.Join(jobDir, "images")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		for i, fh := range files.Images {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if !imageExtensions[ext] {
				continue
			}
			dst := filepath.Join(dir, fmt.Sprintf("%02d%s", i, ext))
			if err := saveUpload(fh, dst); err != nil {
				return nil, err
			}
			imagePaths = append(imagePaths, dst)
		}
	}

	var videoPaths []string
	if len(files.Videos) > 0 && (req.ContentType == constant.ContentTypeUploadVideos || req.ContentType == constant.ContentTypeUploadBoth) {
		dir := filepath.Join(jobDir, "videos")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		for i, fh := range files.Videos {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if !videoExtensions[ext] {
				continue
			}
			dst := filepath.Join(dir, fmt.Sprintf("%02d.mp4", i))
			if err := saveUpload(fh, dst); err != nil {
				return nil, err
			}
			videoPaths = append(videoPaths, dst)
		}
	}

	if req.SkipAI && req.AudioSource == constant.AudioSourceReplace && audioPath == "" {
		return nil, rejectf("Upload a custom audio file when using Skip AI mode.")
	}

	job := &entities.Job{
		ID:           jobID,
		Topic:        strings.TrimSpace(req.Topic),
		Platform:     req.Platform,
		Style:        req.Style,
		Voice:        req.Voice,
		Duration:     req.Duration,
		Transition:   req.Transition,
		CaptionStyle: req.CaptionStyle,
		ContentType:  req.ContentType,
		LogoOption:   req.LogoOption,
		EndCard:      req.EndCard,
		Hook:         req.Hook,
		AudioSource:  req.AudioSource,
		SkipAI:       req.SkipAI,
		SkipCaptions: req.SkipCaptions,
		LogoPath:     logoPath,
		AudioPath:    audioPath,
		ImagePaths:   imagePaths,
		VideoPaths:   videoPaths,
		Status:       constant.JobStatusQueued,
		Stage:        "Initializing...",
		Progress:     0,
		CreatedAt:    time.Now(),
	}
	s.store.Create(job)

	return job, nil
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}
