package constant

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCompleted  JobStatus = "completed"
)

func (s JobStatus) String() string {
	return string(s)
}

type ContentType string

const (
	ContentTypeImages       ContentType = "images"
	ContentTypeVideos       ContentType = "videos"
	ContentTypeCombo        ContentType = "combo"
	ContentTypeUploadImages ContentType = "upload_images"
	ContentTypeUploadVideos ContentType = "upload_videos"
	ContentTypeUploadBoth   ContentType = "upload_both"
)

// WantsImages reports whether the auto-download path should fetch still
// images for this content type when the user uploaded none.
func (c ContentType) WantsImages() bool {
	return c == ContentTypeImages || c == ContentTypeCombo
}

func (c ContentType) WantsVideos() bool {
	return c == ContentTypeVideos || c == ContentTypeCombo
}

func (c ContentType) String() string {
	return string(c)
}

type AudioSource string

const (
	AudioSourceNone      AudioSource = "none"
	AudioSourceReplace   AudioSource = "replace"
	AudioSourceMixQuiet  AudioSource = "mix_quiet"
	AudioSourceMixMedium AudioSource = "mix_medium"
	AudioSourceMixLoud   AudioSource = "mix_loud"
)

type LogoOption string

const (
	LogoOptionNone    LogoOption = "none"
	LogoOptionDefault LogoOption = "default"
	LogoOptionUpload  LogoOption = "upload"
)

const (
	CaptionStyleNone      = "none"
	CaptionStyleBounce    = "bounce"
	CaptionStyleColorBox  = "color_box"
	CaptionStyleKaraoke   = "karaoke"
	CaptionStyleYellowBox = "yellow_box"
	CaptionStyleWhiteBox  = "white_box"
	CaptionStyleSinglePop = "single_pop"
)

// Progress checkpoints reported per stage. Coarse by design: clients poll
// the record and only need to see forward movement.
const (
	ProgressScript   = 20
	ProgressVoice    = 40
	ProgressCaptions = 55
	ProgressContent  = 70
	ProgressRender   = 85
	ProgressAudio    = 95
	ProgressDone     = 100
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

const (
	ShowcaseMaxEntries = 20
	ShowcaseMaxAgeDays = 7
)
