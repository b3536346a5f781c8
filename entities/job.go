package entities

import (
	"time"

	"reelforge/constant"
)

// Job is the central record for one end-to-end video generation request.
// It is created by the intake service, mutated exclusively by the pipeline
// executor and read-only for the HTTP layer.
type Job struct {
	ID           string               `json:"id"`
	Topic        string               `json:"topic"`
	Platform     string               `json:"platform"`
	Style        string               `json:"style"`
	Voice        string               `json:"voice"`
	Duration     int                  `json:"duration"`
	Transition   string               `json:"transition"`
	CaptionStyle string               `json:"caption_style"`
	ContentType  constant.ContentType `json:"content_type"`
	LogoOption   constant.LogoOption  `json:"logo_option"`
	EndCard      bool                 `json:"end_card"`
	Hook         bool                 `json:"hook"`
	AudioSource  constant.AudioSource `json:"audio_source"`
	SkipAI       bool                 `json:"skip_ai"`
	SkipCaptions bool                 `json:"skip_captions"`

	LogoPath   string   `json:"logo_path,omitempty"`
	AudioPath  string   `json:"audio_path,omitempty"`
	ImagePaths []string `json:"image_paths,omitempty"`
	VideoPaths []string `json:"video_paths,omitempty"`

	Status   constant.JobStatus `json:"status"`
	Stage    string             `json:"stage"`
	Progress int                `json:"progress"`
	Error    string             `json:"error,omitempty"`

	// Script by-products surfaced for UI display while the job runs.
	SelectedHook string   `json:"selected_hook"`
	HookOptions  []string `json:"hook_options"`
	Timeline     []string `json:"timeline"`
	HasHookAudio bool     `json:"has_hook_audio"`

	VideoPath   string     `json:"video_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Clone returns a deep copy so status polling never observes a record the
// executor is mutating.
func (j *Job) Clone() *Job {
	c := *j
	c.ImagePaths = append([]string(nil), j.ImagePaths...)
	c.VideoPaths = append([]string(nil), j.VideoPaths...)
	c.HookOptions = append([]string(nil), j.HookOptions...)
	c.Timeline = append([]string(nil), j.Timeline...)
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
