package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-detailpage/internal/model"
)

// ErrRenderPanic wraps a panic recovered while rendering a block.
var ErrRenderPanic = errors.New("renderer panicked")

// CarouselIDPrefix prefixes the sequential carousel element ids.
const CarouselIDPrefix = "carousel-"

// Body is the composed content of the page container.
type Body struct {
	HTML      string
	Carousels []string // ids of carousels actually emitted, in order
	Failures  []*model.BlockRenderError
}

// Composer walks the block list, groups consecutive full_image blocks into
// carousels, and isolates failures so that one bad block never aborts the
// page.
type Composer struct {
	renderer BlockRenderer
	logger   *zap.Logger
}

// NewComposer creates a Composer. A nil logger disables logging.
func NewComposer(r BlockRenderer, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{renderer: r, logger: logger}
}

// Segment is one failure boundary of the compositor: a single block, or a
// run of two or more consecutive full_image blocks rendered as a carousel.
type Segment struct {
	Start      int    // index of the first block
	End        int    // one past the last block
	CarouselID string // empty for single blocks
}

// Len returns the number of blocks in the segment.
func (s Segment) Len() int { return s.End - s.Start }

// Segments splits blocks into greedy maximal full_image runs and single
// blocks. A run of one image is a single block. Carousel ids are numbered
// from 0 in encounter order.
func Segments(blocks []model.RawBlock) []Segment {
	var segs []Segment
	nextCarousel := 0

	for i := 0; i < len(blocks); {
		end := i + 1
		if blocks[i].Type() == model.TypeFullImage {
			for end < len(blocks) && blocks[end].Type() == model.TypeFullImage {
				end++
			}
		}

		seg := Segment{Start: i, End: end}
		if seg.Len() > 1 {
			seg.CarouselID = CarouselIDPrefix + strconv.Itoa(nextCarousel)
			nextCarousel++
		}
		segs = append(segs, seg)
		i = end
	}
	return segs
}

// Compose renders blocks in order. A carousel run that fails still consumes
// its id.
func (c *Composer) Compose(blocks []model.RawBlock) *Body {
	body := &Body{}
	var sb strings.Builder

	for _, seg := range Segments(blocks) {
		run := blocks[seg.Start:seg.End]
		if seg.CarouselID == "" {
			c.emit(&sb, body, seg.Start, run[0], func() (string, error) {
				return c.renderOne(run[0])
			})
			continue
		}
		if c.emit(&sb, body, seg.Start, run[0], func() (string, error) {
			return c.renderRun(seg.CarouselID, run)
		}) {
			body.Carousels = append(body.Carousels, seg.CarouselID)
		}
	}

	body.HTML = sb.String()
	return body
}

func (c *Composer) renderOne(raw model.RawBlock) (string, error) {
	blk, err := raw.Decode()
	if err != nil {
		return "", err
	}
	return c.renderer.RenderBlock(blk)
}

func (c *Composer) renderRun(id string, run []model.RawBlock) (string, error) {
	images := make([]*model.FullImage, len(run))
	for k, raw := range run {
		blk, err := raw.Decode()
		if err != nil {
			return "", fmt.Errorf("slide %d (block %q): %w", k, raw.ID(), err)
		}
		img, ok := blk.(*model.FullImage)
		if !ok {
			return "", fmt.Errorf("slide %d: %w: %T", k, ErrUnhandledBlock, blk)
		}
		images[k] = img
	}
	return c.renderer.RenderCarousel(id, images)
}

// emit runs render inside a failure boundary and writes either its markup or
// an error fragment. It reports whether render succeeded.
func (c *Composer) emit(sb *strings.Builder, body *Body, index int, first model.RawBlock, render func() (string, error)) bool {
	out, err := guard(render)
	if err == nil {
		sb.WriteString(out)
		return true
	}

	failure := &model.BlockRenderError{
		BlockID: first.ID(),
		Index:   index,
		Type:    first.Type(),
		Err:     err,
	}
	body.Failures = append(body.Failures, failure)
	c.logger.Warn("block render failed",
		zap.String("block_id", failure.BlockID),
		zap.Int("index", index),
		zap.String("type", string(failure.Type)),
		zap.Error(err),
	)

	fragment, ferr := guard(func() (string, error) { return c.renderer.RenderError(failure) })
	if ferr != nil {
		c.logger.Debug("error template failed, using fallback", zap.Error(ferr))
		fragment = fallbackErrorFragment(failure)
	}
	sb.WriteString(fragment)
	return false
}

// guard calls render and converts a panic into an error.
func guard(render func() (string, error)) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
	}()
	return render()
}

// fallbackErrorFragment is used when the error template itself fails.
func fallbackErrorFragment(f *model.BlockRenderError) string {
	v := newErrorView(f)
	return `<div class="block-render-error" data-block-id="` + html.EscapeString(v.BlockID) +
		`" style="border: 2px dashed red; padding: 20px; margin: 10px 0; background-color: #fff5f5; color: #c53030; font-family: sans-serif;">` +
		`<p style="margin:0; font-weight: bold;">⚠️ ERROR: '` + html.EscapeString(v.Label) + `'</p>` +
		`<p style="margin: 5px 0 0 0; font-size: 12px; color: #a02c2c;">` + html.EscapeString(v.Cause) + `</p></div>`
}
