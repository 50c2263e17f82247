// Package headless captures raster and vector snapshots of backend-generated
// HTML by driving a headless Chrome instance. The browser and the temporary
// chart file are released unconditionally, including on failure.
package headless

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Exporter drives a headless browser to snapshot chart HTML.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates an exporter. A nil logger disables logging.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// CapturePNG renders the HTML document in a headless browser and returns a
// PNG screenshot scaled to width x height pixels.
func (e *Exporter) CapturePNG(ctx context.Context, html []byte, width, height int) ([]byte, error) {
	var out []byte
	err := e.withPage(ctx, html, width, height, func(page *rod.Page) error {
		data, err := page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		out, err = resizePNG(data, width, height)
		return err
	})
	return out, err
}

// CaptureSVG renders the HTML document and extracts the chart's SVG element
// text. The document must have been rendered with the SVG renderer.
func (e *Exporter) CaptureSVG(ctx context.Context, html []byte, width, height int) (string, error) {
	var out string
	err := e.withPage(ctx, html, width, height, func(page *rod.Page) error {
		res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
			JS: `
			() => {
				const svg = document.querySelector('svg');
				return svg ? svg.outerHTML : '';
			}`,
		})
		if err != nil {
			return fmt.Errorf("extract svg: %w", err)
		}
		out = res.Value.Str()
		if out == "" {
			return fmt.Errorf("no svg element in rendered chart")
		}
		return nil
	})
	return out, err
}

// withPage writes html to a temp file, opens it in a fresh headless browser,
// runs fn against the loaded page, and tears everything down.
func (e *Exporter) withPage(ctx context.Context, html []byte, width, height int, fn func(*rod.Page) error) error {
	path := filepath.Join(os.TempDir(), "chartful-"+uuid.NewString()+".html")
	if err := os.WriteFile(path, html, 0o600); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("failed to remove chart temp file", zap.String("path", path), zap.Error(err))
		}
	}()

	launch := launcher.New().Headless(true).NoSandbox(true)
	controlURL, err := launch.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			e.logger.Warn("failed to close browser", zap.Error(err))
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		e.logger.Warn("failed to set viewport", zap.Error(err))
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("wait for chart load: %w", err)
	}
	// Give the chart script a beat to paint.
	if err := page.Context(ctx).WaitStable(300 * time.Millisecond); err != nil {
		e.logger.Debug("page did not settle", zap.Error(err))
	}
	// The chart should fill the frame edge to edge.
	if _, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS: `() => { document.body.style.margin = '0'; }`,
	}); err != nil {
		e.logger.Debug("failed to strip body margin", zap.Error(err))
	}

	e.logger.Debug("chart page ready",
		zap.String("path", path), zap.Int("width", width), zap.Int("height", height))
	return fn(page)
}

// resizePNG rescales the screenshot to the target dimensions with Catmull-Rom
// resampling when the captured size differs.
func resizePNG(data []byte, width, height int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	bounds := src.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return data, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode resized screenshot: %w", err)
	}
	return buf.Bytes(), nil
}
