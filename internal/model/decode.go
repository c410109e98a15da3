package model

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// fields reads required and optional values from one JSON object and keeps
// the first problem it meets. Decoders read every field unconditionally and
// check err once at the end.
type fields struct {
	obj    gjson.Result
	prefix string
	err    error
}

func (f *fields) fail(name, reason string) {
	if f.err == nil {
		f.err = &FieldError{Path: f.prefix + name, Reason: reason}
	}
}

// lookup returns the value for name and whether it is present and non-null.
func (f *fields) lookup(name string) (gjson.Result, bool) {
	r := f.obj.Get(gjson.Escape(name))
	if !r.Exists() || r.Type == gjson.Null {
		return r, false
	}
	return r, true
}

// text reads a required text field. Numbers are accepted and kept as their
// literal JSON text.
func (f *fields) text(name string) string {
	r, ok := f.lookup(name)
	if !ok {
		f.fail(name, "is missing")
		return ""
	}
	s, ok := textValue(r)
	if !ok {
		f.fail(name, "must be text, got "+jsonKind(r))
	}
	return s
}

// texts reads a required array of text values.
func (f *fields) texts(name string) []string {
	r, ok := f.lookup(name)
	if !ok {
		f.fail(name, "is missing")
		return nil
	}
	if !r.IsArray() {
		f.fail(name, "must be an array, got "+jsonKind(r))
		return nil
	}
	elems := r.Array()
	out := make([]string, 0, len(elems))
	for i, el := range elems {
		s, ok := textValue(el)
		if !ok {
			f.fail(name+"["+strconv.Itoa(i)+"]", "must be text, got "+jsonKind(el))
			return nil
		}
		out = append(out, s)
	}
	return out
}

// object runs fn against a nested object. When optional is true an absent
// value is not an error and object returns false.
func (f *fields) object(name string, optional bool, fn func(*fields)) bool {
	r, ok := f.lookup(name)
	if !ok {
		if !optional {
			f.fail(name, "is missing")
		}
		return false
	}
	if !r.IsObject() {
		f.fail(name, "must be an object, got "+jsonKind(r))
		return false
	}
	sub := &fields{obj: r, prefix: f.prefix + name + "."}
	fn(sub)
	if sub.err != nil && f.err == nil {
		f.err = sub.err
	}
	return true
}

// list decodes a required array of objects, preserving order.
func list[T any](f *fields, name string, fn func(*fields) T) []T {
	r, ok := f.lookup(name)
	if !ok {
		f.fail(name, "is missing")
		return nil
	}
	if !r.IsArray() {
		f.fail(name, "must be an array, got "+jsonKind(r))
		return nil
	}
	elems := r.Array()
	out := make([]T, 0, len(elems))
	for i, el := range elems {
		elemPath := name + "[" + strconv.Itoa(i) + "]"
		if !el.IsObject() {
			f.fail(elemPath, "must be an object, got "+jsonKind(el))
			return nil
		}
		sub := &fields{obj: el, prefix: f.prefix + elemPath + "."}
		v := fn(sub)
		if sub.err != nil {
			if f.err == nil {
				f.err = sub.err
			}
			return nil
		}
		out = append(out, v)
	}
	return out
}

func textValue(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		return r.Str, true
	case gjson.Number:
		return r.Raw, true
	}
	return "", false
}

func jsonKind(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	case r.IsBool():
		return "boolean"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	return "unknown"
}

func decodeImage(f *fields) Image {
	return Image{Src: f.text("src"), Alt: f.text("alt")}
}

// decoders maps each known discriminant to its variant decoder. The header
// has already been validated when these run.
var decoders = map[Type]func(h Header, f *fields) Block{
	TypeHero: func(h Header, f *fields) Block {
		return &Hero{
			Header:    h,
			BrandTag:  f.text("brandTag"),
			MainTitle: f.text("mainTitle"),
			SubTitle:  f.text("subTitle"),
			EmojiDeco: f.text("emojiDeco"),
		}
	},
	TypeFullImage: func(h Header, f *fields) Block {
		b := &FullImage{Header: h, Src: f.text("src"), Alt: f.text("alt")}
		var st Sticker
		if f.object("sticker", true, func(sf *fields) {
			st.Text = sf.text("text")
			st.Position = sf.text("position")
			if sf.err == nil && st.Position != StickerTopRight {
				sf.fail("position", "must be "+strconv.Quote(StickerTopRight))
			}
		}) {
			b.Sticker = &st
		}
		return b
	},
	TypeCatchPhrase: func(h Header, f *fields) Block {
		return &CatchPhrase{Header: h, Lines: f.texts("lines")}
	},
	TypeStoryCard: func(h Header, f *fields) Block {
		b := &StoryCard{Header: h}
		f.object("badge", false, func(bf *fields) {
			b.Badge = Badge{Icon: bf.text("icon"), Text: bf.text("text")}
		})
		b.MainText = f.text("mainText")
		b.PointText = f.text("pointText")
		return b
	},
	TypeChoiceSection: func(h Header, f *fields) Block {
		return &ChoiceSection{
			Header:   h,
			Title:    f.text("title"),
			Subtitle: f.text("subtitle"),
			Choices: list(f, "choices", func(cf *fields) Choice {
				return Choice{
					Label:  cf.text("label"),
					ImgSrc: cf.text("imgSrc"),
					ImgAlt: cf.text("imgAlt"),
					Name:   cf.text("name"),
				}
			}),
		}
	},
	TypePointsSection: func(h Header, f *fields) Block {
		return &PointsSection{
			Header:   h,
			Title:    f.text("title"),
			Subtitle: f.text("subtitle"),
			Points: list(f, "points", func(pf *fields) Point {
				return Point{Icon: pf.text("icon"), Title: pf.text("title"), Description: pf.text("description")}
			}),
		}
	},
	TypeDetailSection: func(h Header, f *fields) Block {
		return &DetailSection{
			Header: h,
			Title:  f.text("title"),
			Items: list(f, "items", func(df *fields) DetailItem {
				return DetailItem{
					Label:  df.text("label"),
					Title:  df.text("title"),
					Text:   df.text("text"),
					ImgSrc: df.text("imgSrc"),
					ImgAlt: df.text("imgAlt"),
				}
			}),
		}
	},
	TypeUsageSection: func(h Header, f *fields) Block {
		b := &UsageSection{Header: h, Title: f.text("title"), Subtitle: f.text("subtitle")}
		var img Image
		if f.object("mainImage", true, func(mf *fields) { img = decodeImage(mf) }) {
			b.MainImage = &img
		}
		b.Items = list(f, "items", func(uf *fields) UsageItem {
			return UsageItem{Emoji: uf.text("emoji"), Title: uf.text("title"), Description: uf.text("description")}
		})
		return b
	},
	TypeRecommendSection: func(h Header, f *fields) Block {
		return &RecommendSection{Header: h, Badge: f.text("badge"), Text: f.text("text")}
	},
	TypeVideoTestimonial: func(h Header, f *fields) Block {
		return &VideoTestimonial{
			Header:   h,
			Title:    f.text("title"),
			VideoURL: f.text("videoUrl"),
			Quote:    f.text("quote"),
			Author:   f.text("author"),
		}
	},
	TypeInfoSection: func(h Header, f *fields) Block {
		return &InfoSection{
			Header: h,
			Title:  f.text("title"),
			Rows: list(f, "rows", func(rf *fields) InfoRow {
				return InfoRow{Key: rf.text("key"), Value: rf.text("value")}
			}),
		}
	},
	TypeNoticeSection: func(h Header, f *fields) Block {
		return &NoticeSection{Header: h, Title: f.text("title"), Items: f.texts("items")}
	},
	TypeFooterSection: func(h Header, f *fields) Block {
		return &FooterSection{Header: h, Logo: f.text("logo"), Text: f.text("text"), Emoji: f.text("emoji")}
	},
}
