package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelforge/constant"
	"reelforge/dto"
	"reelforge/entities"
	"reelforge/pkg/workspace"
	"reelforge/repository"
)

func testIntake(t *testing.T) (*Intake, repository.JobStore, *workspace.Workspace) {
	t.Helper()
	root := t.TempDir()
	ws := workspace.New(root+"/jobs", root+"/output", root+"/images", root+"/videos")
	require.NoError(t, ws.EnsureDirs())
	store := repository.NewStore()
	return NewIntake(store, ws), store, ws
}

// fileHeaders builds real multipart headers so sizes and filenames behave
// exactly as they do for a live upload.
func fileHeaders(t *testing.T, names []string, size int) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte("x"), size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(256 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func baseRequest() dto.SubmitRequest {
	return dto.SubmitRequest{
		Topic:        "deep sea mysteries",
		Platform:     "tiktok",
		Style:        "viral_facts",
		Voice:        "en-US-GuyNeural",
		Duration:     25,
		Transition:   "fade",
		CaptionStyle: constant.CaptionStyleBounce,
		ContentType:  constant.ContentTypeImages,
		LogoOption:   constant.LogoOptionNone,
		EndCard:      true,
		Hook:         true,
		AudioSource:  constant.AudioSourceNone,
	}
}

func TestSubmit_CreatesQueuedJob(t *testing.T) {
	intake, store, _ := testIntake(t)

	job, err := intake.Submit(baseRequest(), UploadSet{})
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, constant.JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.False(t, job.CreatedAt.IsZero())

	stored, ok := store.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, "deep sea mysteries", stored.Topic)
}

func TestSubmit_TopicRequiredUnlessSkipAI(t *testing.T) {
	intake, _, _ := testIntake(t)

	req := baseRequest()
	req.Topic = "   "
	_, err := intake.Submit(req, UploadSet{})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Topic is required")
}

func TestSubmit_SkipAIRequiresReplaceAudio(t *testing.T) {
	intake, _, _ := testIntake(t)

	req := baseRequest()
	req.SkipAI = true
	req.AudioSource = constant.AudioSourceMixMedium

	_, err := intake.Submit(req, UploadSet{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Skip AI mode requires audio source set to Replace")
}

func TestSubmit_SkipAIRequiresAudioFile(t *testing.T) {
	intake, _, _ := testIntake(t)

	req := baseRequest()
	req.SkipAI = true
	req.AudioSource = constant.AudioSourceReplace

	_, err := intake.Submit(req, UploadSet{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Upload a custom audio file")
}

func TestSubmit_ImageCountLimit(t *testing.T) {
	intake, _, _ := testIntake(t)

	req := baseRequest()
	req.Duration = 6 // max(3, 6/3) = 3 images
	req.ContentType = constant.ContentTypeUploadImages

	t.Run("within limit", func(t *testing.T) {
		files := UploadSet{Images: fileHeaders(t, []string{"a.jpg", "b.jpg"}, 10)}
		_, err := intake.Submit(req, files)
		assert.NoError(t, err)
	})

	t.Run("over limit names the computed cap", func(t *testing.T) {
		files := UploadSet{Images: fileHeaders(t, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, 10)}
		_, err := intake.Submit(req, files)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "Maximum 3 images")
	})
}

func TestSubmit_OversizeImageRejectedByName(t *testing.T) {
	intake, _, _ := testIntake(t)

	req := baseRequest()
	req.ContentType = constant.ContentTypeUploadImages
	files := UploadSet{Images: fileHeaders(t, []string{"huge.jpg"}, 10<<20+1)}

	_, err := intake.Submit(req, files)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "huge.jpg")
	assert.Contains(t, ve.Message, "Max 10MB")
}

func TestSubmit_DisallowedExtensionsSilentlyDropped(t *testing.T) {
	intake, store, _ := testIntake(t)

	req := baseRequest()
	req.ContentType = constant.ContentTypeUploadImages
	files := UploadSet{Images: fileHeaders(t, []string{"ok.png", "nope.gif"}, 10)}

	job, err := intake.Submit(req, files)
	require.NoError(t, err)

	stored, _ := store.Get(job.ID)
	require.Len(t, stored.ImagePaths, 1)
	assert.True(t, strings.HasSuffix(stored.ImagePaths[0], ".png"))
}

func TestSubmit_PersistsFilesWithDeterministicNames(t *testing.T) {
	intake, store, ws := testIntake(t)

	req := baseRequest()
	req.ContentType = constant.ContentTypeUploadBoth
	files := UploadSet{
		Images: fileHeaders(t, []string{"first.jpg", "second.png"}, 10),
		Videos: fileHeaders(t, []string{"clip.mp4"}, 10),
	}

	job, err := intake.Submit(req, files)
	require.NoError(t, err)

	stored, _ := store.Get(job.ID)
	require.Len(t, stored.ImagePaths, 2)
	require.Len(t, stored.VideoPaths, 1)

	assert.True(t, strings.HasSuffix(stored.ImagePaths[0], "00.jpg"))
	assert.True(t, strings.HasSuffix(stored.ImagePaths[1], "01.png"))
	assert.True(t, strings.HasSuffix(stored.VideoPaths[0], "00.mp4"))

	for _, p := range append(stored.ImagePaths, stored.VideoPaths...) {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.DirExists(t, ws.JobDir(job.ID))
}

type countingStore struct {
	repository.JobStore
	creates int
}

func (c *countingStore) Create(job *entities.Job) {
	c.creates++
	c.JobStore.Create(job)
}

func TestSubmit_ValidationLeavesNoRecord(t *testing.T) {
	root := t.TempDir()
	ws := workspace.New(root+"/jobs", root+"/output", root+"/images", root+"/videos")
	require.NoError(t, ws.EnsureDirs())
	store := &countingStore{JobStore: repository.NewStore()}
	intake := NewIntake(store, ws)

	req := baseRequest()
	req.SkipAI = true
	req.AudioSource = constant.AudioSourceNone

	_, err := intake.Submit(req, UploadSet{})
	require.Error(t, err)
	assert.Zero(t, store.creates)
}
