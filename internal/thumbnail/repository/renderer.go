package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Renderer screenshot a page as jpeg
type Renderer interface {
	Screenshot(ctx context.Context, pageURL string) ([]byte, error)
}

type screenshotRequest struct {
	URL      string            `json:"url"`
	Options  screenshotOptions `json:"options"`
	Viewport viewport          `json:"viewport"`
}

type screenshotOptions struct {
	Type     string `json:"type"`
	FullPage bool   `json:"fullPage"`
}

type viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type httpRenderer struct {
	endpoint string
	width    int
	height   int
	timeout  time.Duration
}

// NewHTTPRenderer renderer backed by a headless browser screenshot endpoint (browserless style POST /screenshot)
func NewHTTPRenderer(endpoint string, width, height int, timeout time.Duration) Renderer {
	return &httpRenderer{endpoint: endpoint, width: width, height: height, timeout: timeout}
}

func (r *httpRenderer) Screenshot(ctx context.Context, pageURL string) ([]byte, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	agent := fiber.Post(r.endpoint).
		JSON(screenshotRequest{
			URL:      pageURL,
			Options:  screenshotOptions{Type: "jpeg"},
			Viewport: viewport{Width: r.width, Height: r.height},
		}).
		Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "call renderer")
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("renderer returned status %d", code)
	}
	if len(body) == 0 {
		return nil, errors.New("renderer returned empty body")
	}
	return body, nil
}
