package detailpage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-detailpage/internal/fileutil"
	"github.com/alnah/go-detailpage/internal/process"
)

// Exporter captures compiled pages as PNG images.
type Exporter interface {
	ToPNG(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// pngRenderer abstracts screenshot capture from an HTML file to enable testing
// without a browser.
type pngRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ Exporter    = (*RodExporter)(nil)
	_ pngRenderer = (*rodRenderer)(nil)
)

// Export defaults.
const (
	// DefaultViewportWidth matches the fixed width of the page container.
	DefaultViewportWidth = 860
	MaxViewportWidth     = 4096

	defaultExportTimeout = 30 * time.Second

	// viewportHeight is the initial window height; captures are full page.
	viewportHeight = 1200

	// settleDelay outlasts the carousel script's delayed re-measure.
	settleDelay = 150 * time.Millisecond
)

// ExportOption configures an Exporter.
type ExportOption func(*exportConfig)

type exportConfig struct {
	width   int
	timeout time.Duration
}

// WithViewportWidth sets the browser viewport width in CSS pixels.
func WithViewportWidth(px int) ExportOption {
	return func(c *exportConfig) {
		c.width = px
	}
}

// WithTimeout sets the page load timeout used when the context carries no
// deadline.
func WithTimeout(d time.Duration) ExportOption {
	return func(c *exportConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func newExportConfig(opts []ExportOption) (exportConfig, error) {
	cfg := exportConfig{width: DefaultViewportWidth, timeout: defaultExportTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 || cfg.width > MaxViewportWidth {
		return cfg, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidWidth, cfg.width, MaxViewportWidth)
	}
	return cfg, nil
}

// RodExporter renders pages to PNG using headless Chrome via go-rod.
// The browser starts on first use. Rod downloads Chromium if none is found.
// A RodExporter handles one page at a time; use ExporterPool for parallelism.
type RodExporter struct {
	renderer pngRenderer
}

// NewExporter creates a RodExporter.
// Returns ErrInvalidWidth if the viewport width is out of range.
func NewExporter(opts ...ExportOption) (*RodExporter, error) {
	cfg, err := newExportConfig(opts)
	if err != nil {
		return nil, err
	}
	return newRodExporter(cfg), nil
}

func newRodExporter(cfg exportConfig) *RodExporter {
	return &RodExporter{renderer: &rodRenderer{width: cfg.width, timeout: cfg.timeout}}
}

// ToPNG captures html as a full-page PNG.
func (e *RodExporter) ToPNG(ctx context.Context, html string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (e *RodExporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// rodRenderer implements pngRenderer using go-rod.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	width    int
	timeout  time.Duration
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and captures it.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.width,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Let carousels re-measure their slides after images load.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(settleDelay):
	}

	img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return img, nil
}
