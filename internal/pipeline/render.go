package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-detailpage/internal/assets"
	"github.com/alnah/go-detailpage/internal/model"
)

// Sentinel errors for block rendering.
var (
	ErrTemplateRender = errors.New("block template rendering failed")
	ErrUnhandledBlock = errors.New("no renderer for block")
	ErrTemplateParse  = errors.New("parsing template set")
)

// UnknownBlockComment is emitted for blocks with an unrecognized type.
const UnknownBlockComment = "<!-- Unknown block type -->"

// Template names outside the per-type ones.
const (
	stickerTemplate  = "sticker"
	carouselTemplate = "carousel"
	errorTemplate    = "error"
)

// RequiredTemplates lists every template name a set must define.
func RequiredTemplates() []string {
	names := make([]string, 0, len(model.Types)+3)
	for _, t := range model.Types {
		names = append(names, string(t))
	}
	return append(names, stickerTemplate, carouselTemplate, errorTemplate)
}

// BlockRenderer turns decoded blocks into markup fragments.
type BlockRenderer interface {
	RenderBlock(b model.Block) (string, error)
	RenderCarousel(id string, images []*model.FullImage) (string, error)
	RenderError(f *model.BlockRenderError) (string, error)
}

// Renderer renders blocks through a parsed template set.
// It is safe for concurrent use once created.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the three files of ts into one template namespace and
// checks that every name from RequiredTemplates is defined.
func NewRenderer(ts *assets.TemplateSet) (*Renderer, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", assets.ErrIncompleteTemplateSet)
	}

	root := template.New(ts.Name)
	for _, part := range []struct{ file, content string }{
		{assets.BlocksFile, ts.Blocks},
		{assets.CarouselFile, ts.Carousel},
		{assets.ErrorFile, ts.Error},
	} {
		if _, err := root.New(part.file).Parse(part.content); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrTemplateParse, ts.Name, part.file, err)
		}
	}

	var missing []string
	for _, name := range RequiredTemplates() {
		if root.Lookup(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q does not define %s", assets.ErrIncompleteTemplateSet, ts.Name, strings.Join(missing, ", "))
	}

	return &Renderer{tmpl: root}, nil
}

// RenderBlock renders one standalone block. Unknown types yield
// UnknownBlockComment.
func (r *Renderer) RenderBlock(b model.Block) (string, error) {
	var data any
	switch b := b.(type) {
	case *model.Hero:
		data = heroView{
			BrandTag:  markup(b.BrandTag),
			MainTitle: markup(b.MainTitle),
			SubTitle:  markup(b.SubTitle),
			EmojiDeco: markup(b.EmojiDeco),
		}
	case *model.FullImage:
		data = newImageView(b, 0)
	case *model.CatchPhrase:
		data = catchPhraseView{Lines: markupList(b.Lines)}
	case *model.StoryCard:
		data = storyCardView{
			Badge:     badgeView{Icon: markup(b.Badge.Icon), Text: markup(b.Badge.Text)},
			MainText:  markup(b.MainText),
			PointText: markup(b.PointText),
		}
	case *model.ChoiceSection:
		v := choiceSectionView{Title: markup(b.Title), Subtitle: markup(b.Subtitle)}
		for _, c := range b.Choices {
			v.Choices = append(v.Choices, choiceView{
				Label:  markup(c.Label),
				ImgSrc: template.URL(c.ImgSrc), // #nosec G203 -- document URLs are trusted
				ImgAlt: c.ImgAlt,
				Name:   markup(c.Name),
			})
		}
		data = v
	case *model.PointsSection:
		v := pointsSectionView{Title: markup(b.Title), Subtitle: markup(b.Subtitle)}
		for _, p := range b.Points {
			v.Points = append(v.Points, pointView{Icon: markup(p.Icon), Title: markup(p.Title), Description: markup(p.Description)})
		}
		data = v
	case *model.DetailSection:
		v := detailSectionView{Title: markup(b.Title)}
		for _, it := range b.Items {
			v.Items = append(v.Items, detailItemView{
				Label:  markup(it.Label),
				Title:  markup(it.Title),
				Text:   markup(it.Text),
				ImgSrc: template.URL(it.ImgSrc), // #nosec G203 -- document URLs are trusted
				ImgAlt: it.ImgAlt,
			})
		}
		data = v
	case *model.UsageSection:
		v := usageSectionView{Title: markup(b.Title), Subtitle: markup(b.Subtitle)}
		if b.MainImage != nil {
			v.MainImage = &plainImageView{Src: template.URL(b.MainImage.Src), Alt: b.MainImage.Alt} // #nosec G203
		}
		for _, it := range b.Items {
			v.Items = append(v.Items, usageItemView{Emoji: markup(it.Emoji), Title: markup(it.Title), Description: markup(it.Description)})
		}
		data = v
	case *model.RecommendSection:
		data = recommendView{Badge: markup(b.Badge), Text: markup(b.Text)}
	case *model.VideoTestimonial:
		data = videoView{
			Title:    markup(b.Title),
			VideoURL: template.URL(b.VideoURL), // #nosec G203 -- document URLs are trusted
			Quote:    markup(b.Quote),
			Author:   markup(b.Author),
		}
	case *model.InfoSection:
		v := infoSectionView{Title: markup(b.Title)}
		for _, row := range b.Rows {
			v.Rows = append(v.Rows, infoRowView{Key: markup(row.Key), Value: markup(row.Value)})
		}
		data = v
	case *model.NoticeSection:
		data = noticeView{Title: markup(b.Title), Items: markupList(b.Items)}
	case *model.FooterSection:
		data = footerView{Logo: markup(b.Logo), Text: markup(b.Text), Emoji: markup(b.Emoji)}
	case *model.Unknown:
		return UnknownBlockComment, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnhandledBlock, b)
	}

	return r.execute(string(b.Kind()), data)
}

// RenderCarousel renders a run of images as one carousel with the given id.
func (r *Renderer) RenderCarousel(id string, images []*model.FullImage) (string, error) {
	v := carouselView{ID: id, Slides: make([]imageView, len(images))}
	for i, img := range images {
		v.Slides[i] = newImageView(img, i)
	}
	return r.execute(carouselTemplate, v)
}

// RenderError renders the inline fragment that replaces a failed block.
func (r *Renderer) RenderError(f *model.BlockRenderError) (string, error) {
	return r.execute(errorTemplate, newErrorView(f))
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return sb.String(), nil
}

// Compile-time interface check.
var _ BlockRenderer = (*Renderer)(nil)
