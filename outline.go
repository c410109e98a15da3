package detailpage

import (
	"errors"

	"github.com/alnah/go-detailpage/internal/pipeline"
)

// Block decode states reported by Outline.
const (
	StatusOK        = "ok"
	StatusMalformed = "malformed"
	StatusUnknown   = "unknown"
)

// BlockInfo describes one block as the compiler will see it, without
// rendering anything.
type BlockInfo struct {
	Index    int       `json:"index"`
	ID       string    `json:"block_id"`
	Type     BlockType `json:"type"`
	Status   string    `json:"status"`
	Carousel string    `json:"carousel,omitempty"` // carousel id when part of an image run
	Slide    int       `json:"slide,omitempty"`    // position inside the carousel
	Problem  string    `json:"problem,omitempty"`  // decode error for malformed blocks
	Err      error     `json:"-"`
}

// Outline decodes every block of doc and reports its type, decode status,
// and carousel grouping. Carousel ids match the ones Compile assigns. A
// malformed slide makes the whole carousel render as one error fragment.
func Outline(doc *Document) []BlockInfo {
	if doc == nil {
		return nil
	}

	out := make([]BlockInfo, 0, len(doc.Blocks))
	for _, seg := range pipeline.Segments(doc.Blocks) {
		for i := seg.Start; i < seg.End; i++ {
			raw := doc.Blocks[i]
			info := BlockInfo{
				Index:    i,
				ID:       raw.ID(),
				Type:     raw.Type(),
				Status:   StatusOK,
				Carousel: seg.CarouselID,
				Slide:    i - seg.Start,
			}

			blk, err := raw.Decode()
			switch {
			case err != nil:
				info.Status = StatusMalformed
				info.Problem = err.Error()
				info.Err = err
			case !blk.Kind().Known():
				info.Status = StatusUnknown
			}
			out = append(out, info)
		}
	}
	return out
}

// MalformedBlocks returns the entries of infos that will render as error
// fragments.
func MalformedBlocks(infos []BlockInfo) []BlockInfo {
	var bad []BlockInfo
	for _, info := range infos {
		if info.Err != nil && errors.Is(info.Err, ErrMalformedBlock) {
			bad = append(bad, info)
		}
	}
	return bad
}
