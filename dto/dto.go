package dto

import "reelforge/constant"

// SubmitRequest carries the parsed submission fields. File parts travel
// separately as multipart headers.
type SubmitRequest struct {
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
}

type SubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ConfigResponse struct {
	Platforms   []constant.Platform   `json:"platforms"`
	Styles      []constant.Style      `json:"styles"`
	Transitions []constant.Transition `json:"transitions"`
	Durations   []int                 `json:"durations"`
}
