package model

// Type is the block discriminant carried in the "type" field.
type Type string

// Known block types. The string values are part of the wire format.
const (
	TypeHero             Type = "hero_section"
	TypeFullImage        Type = "full_image"
	TypeCatchPhrase      Type = "catch_phrase"
	TypeStoryCard        Type = "story_card"
	TypeChoiceSection    Type = "choice_section"
	TypePointsSection    Type = "points_section"
	TypeDetailSection    Type = "detail_section"
	TypeUsageSection     Type = "usage_section"
	TypeRecommendSection Type = "recommend_section"
	TypeVideoTestimonial Type = "video_testimonial"
	TypeInfoSection      Type = "info_section"
	TypeNoticeSection    Type = "notice_section"
	TypeFooterSection    Type = "footer_section"
)

// Types lists every known block type in declaration order.
var Types = []Type{
	TypeHero,
	TypeFullImage,
	TypeCatchPhrase,
	TypeStoryCard,
	TypeChoiceSection,
	TypePointsSection,
	TypeDetailSection,
	TypeUsageSection,
	TypeRecommendSection,
	TypeVideoTestimonial,
	TypeInfoSection,
	TypeNoticeSection,
	TypeFooterSection,
}

// Known reports whether t is one of the block types this package decodes.
func (t Type) Known() bool {
	_, ok := decoders[t]
	return ok
}

// Block is one decoded content unit. The concrete type is always a pointer to
// one of the variant structs below, or *Unknown.
type Block interface {
	ID() string
	Kind() Type
}

// Header holds the fields shared by every variant.
type Header struct {
	BlockID string `json:"block_id"`
}

// ID returns the caller-assigned block identifier.
func (h Header) ID() string { return h.BlockID }

// StickerTopRight is the only sticker corner the stylesheet positions.
const StickerTopRight = "top-right"

// Sticker is the circular annotation drawn over a full-width image.
type Sticker struct {
	Text     string `json:"text"`
	Position string `json:"position"`
}

// Image is a plain image reference.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Hero struct {
	Header
	BrandTag  string `json:"brandTag"`
	MainTitle string `json:"mainTitle"`
	SubTitle  string `json:"subTitle"`
	EmojiDeco string `json:"emojiDeco"`
}

// FullImage is a full-width picture. Consecutive full images are grouped
// into a carousel by the compositor.
type FullImage struct {
	Header
	Src     string   `json:"src"`
	Alt     string   `json:"alt"`
	Sticker *Sticker `json:"sticker,omitempty"`
}

// CatchPhrase lines are joined with <br> when rendered.
type CatchPhrase struct {
	Header
	Lines []string `json:"lines"`
}

type Badge struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type StoryCard struct {
	Header
	Badge     Badge  `json:"badge"`
	MainText  string `json:"mainText"`
	PointText string `json:"pointText"`
}

type Choice struct {
	Label  string `json:"label"`
	ImgSrc string `json:"imgSrc"`
	ImgAlt string `json:"imgAlt"`
	Name   string `json:"name"`
}

type ChoiceSection struct {
	Header
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Choices  []Choice `json:"choices"`
}

type Point struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PointsSection struct {
	Header
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Points   []Point `json:"points"`
}

type DetailItem struct {
	Label  string `json:"label"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	ImgSrc string `json:"imgSrc"`
	ImgAlt string `json:"imgAlt"`
}

type DetailSection struct {
	Header
	Title string       `json:"title"`
	Items []DetailItem `json:"items"`
}

type UsageItem struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UsageSection struct {
	Header
	Title     string      `json:"title"`
	Subtitle  string      `json:"subtitle"`
	MainImage *Image      `json:"mainImage,omitempty"`
	Items     []UsageItem `json:"items"`
}

type RecommendSection struct {
	Header
	Badge string `json:"badge"`
	Text  string `json:"text"`
}

// VideoTestimonial embeds a video player. VideoURL must be an embeddable URL.
type VideoTestimonial struct {
	Header
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
}

type InfoRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type InfoSection struct {
	Header
	Title string    `json:"title"`
	Rows  []InfoRow `json:"rows"`
}

type NoticeSection struct {
	Header
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type FooterSection struct {
	Header
	Logo  string `json:"logo"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// Unknown carries a block whose discriminant this version does not know.
// It renders as an empty comment.
type Unknown struct {
	Header
	Type Type     `json:"type"`
	Raw  RawBlock `json:"-"`
}

func (*Hero) Kind() Type             { return TypeHero }
func (*FullImage) Kind() Type        { return TypeFullImage }
func (*CatchPhrase) Kind() Type      { return TypeCatchPhrase }
func (*StoryCard) Kind() Type        { return TypeStoryCard }
func (*ChoiceSection) Kind() Type    { return TypeChoiceSection }
func (*PointsSection) Kind() Type    { return TypePointsSection }
func (*DetailSection) Kind() Type    { return TypeDetailSection }
func (*UsageSection) Kind() Type     { return TypeUsageSection }
func (*RecommendSection) Kind() Type { return TypeRecommendSection }
func (*VideoTestimonial) Kind() Type { return TypeVideoTestimonial }
func (*InfoSection) Kind() Type      { return TypeInfoSection }
func (*NoticeSection) Kind() Type    { return TypeNoticeSection }
func (*FooterSection) Kind() Type    { return TypeFooterSection }
func (u *Unknown) Kind() Type        { return u.Type }
