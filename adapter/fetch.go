package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"reelforge/pkg/workspace"
)

// ImageFetcher fetches AI-generated stills over HTTP when no image
// download tool is installed. Free endpoint, no key required.
type ImageFetcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{
		baseURL:    "https://image.pollinations.ai/prompt",
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch downloads count images for the topic into the canonical image
// slots. Each download retries with exponential backoff; the endpoint
// occasionally times out under load.
func (f *ImageFetcher) Fetch(ctx context.Context, topic, style string, count int, ws *workspace.Workspace) error {
	prompt := topic
	if style != "" {
		prompt = fmt.Sprintf("%s, %s aesthetic, vertical composition, cinematic lighting", topic, style)
	}

	for i := 1; i <= count; i++ {
		imageURL := fmt.Sprintf("%s/%s?width=1080&height=1920&nologo=true&seed=%d",
			f.baseURL, url.PathEscape(prompt), i*42+7)
		outFile := ws.ImageSlot(i, ".jpg")

		operation := func() ([]byte, error) {
			return f.download(ctx, imageURL)
		}

		bo := backoff.NewExponentialBackOff()
		bo.MaxInterval = 10 * time.Second
		data, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3))
		if err != nil {
			return fmt.Errorf("fetch image %d: %w", i, err)
		}

		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return err
		}
		zerolog.Ctx(ctx).Debug().Str("file", outFile).Msg("image fetched")
	}

	return nil
}

func (f *ImageFetcher) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from image endpoint", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) < 100 {
		return nil, fmt.Errorf("response too small (%d bytes), likely an error page", len(data))
	}
	return data, nil
}
