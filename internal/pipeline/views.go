package pipeline

import (
	"html/template"

	"github.com/alnah/go-detailpage/internal/model"
)

// Template views. Free-text fields are template.HTML because documents may
// carry inline markup such as <strong> and <br>. URLs are template.URL so
// data: URIs survive. Alt texts stay plain strings and get escaped.

// markup marks document text as trusted HTML.
func markup(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- document text is trusted inline markup
}

func markupList(ss []string) []template.HTML {
	out := make([]template.HTML, len(ss))
	for i, s := range ss {
		out[i] = markup(s)
	}
	return out
}

type heroView struct {
	BrandTag, MainTitle, SubTitle, EmojiDeco template.HTML
}

type stickerView struct {
	Text     template.HTML
	Position string
}

type imageView struct {
	Index   int
	Number  int
	Src     template.URL
	Alt     string
	Sticker *stickerView
}

func newImageView(b *model.FullImage, index int) imageView {
	v := imageView{
		Index:  index,
		Number: index + 1,
		Src:    template.URL(b.Src), // #nosec G203 -- document URLs are trusted
		Alt:    b.Alt,
	}
	if b.Sticker != nil {
		v.Sticker = &stickerView{Text: markup(b.Sticker.Text), Position: b.Sticker.Position}
	}
	return v
}

type plainImageView struct {
	Src template.URL
	Alt string
}

type carouselView struct {
	ID     string
	Slides []imageView
}

type catchPhraseView struct {
	Lines []template.HTML
}

type badgeView struct {
	Icon, Text template.HTML
}

type storyCardView struct {
	Badge     badgeView
	MainText  template.HTML
	PointText template.HTML
}

type choiceView struct {
	Label  template.HTML
	ImgSrc template.URL
	ImgAlt string
	Name   template.HTML
}

type choiceSectionView struct {
	Title, Subtitle template.HTML
	Choices         []choiceView
}

type pointView struct {
	Icon, Title, Description template.HTML
}

type pointsSectionView struct {
	Title, Subtitle template.HTML
	Points          []pointView
}

type detailItemView struct {
	Label, Title, Text template.HTML
	ImgSrc             template.URL
	ImgAlt             string
}

type detailSectionView struct {
	Title template.HTML
	Items []detailItemView
}

type usageItemView struct {
	Emoji, Title, Description template.HTML
}

type usageSectionView struct {
	Title, Subtitle template.HTML
	MainImage       *plainImageView
	Items           []usageItemView
}

type recommendView struct {
	Badge, Text template.HTML
}

type videoView struct {
	Title    template.HTML
	VideoURL template.URL
	Quote    template.HTML
	Author   template.HTML
}

type infoRowView struct {
	Key, Value template.HTML
}

type infoSectionView struct {
	Title template.HTML
	Rows  []infoRowView
}

type noticeView struct {
	Title template.HTML
	Items []template.HTML
}

type footerView struct {
	Logo, Text, Emoji template.HTML
}

// errorView feeds the error template.
type errorView struct {
	BlockID string
	Label   string
	Cause   string
}

func newErrorView(f *model.BlockRenderError) errorView {
	label := "Unknown Block"
	if f.BlockID != "" {
		label = "ID: " + f.BlockID
	}
	cause := ""
	if f.Err != nil {
		cause = f.Err.Error()
	}
	return errorView{BlockID: f.BlockID, Label: label, Cause: cause}
}
