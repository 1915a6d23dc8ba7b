package memo

import (
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	typeColor     = "color"
	typeSize      = "size"
	typeBold      = "bold"
	typeItalic    = "italic"
	typeUnderline = "underline"

	// DefaultSpanSize is used for a size record that carries no value.
	DefaultSpanSize = 14
)

// Serialize encodes doc as
//
//	{"text":"...","spans":[{"start":0,"end":2,"type":"color","value":16711680}]}
//
// Trailing whitespace is trimmed from the text and spans that no longer fit
// are skipped. Combined bold-italic spans are written as a bold and an italic
// record over the same range; composing underlines are not written at all.
func Serialize(doc *Document) string {
	text := ""
	if doc != nil {
		text = strings.TrimRightFunc(doc.Text, unicode.IsSpace)
	}
	out, _ := sjson.Set(`{}`, "text", text)

	var records []string
	if text != "" {
		n := Units(text)
		for _, sp := range doc.Spans {
			if sp.Start < 0 || sp.End > n || sp.Start >= sp.End {
				continue
			}
			switch sp.Kind {
			case KindColor:
				records = append(records, encodeRecord(sp, typeColor, true))
			case KindSize:
				records = append(records, encodeRecord(sp, typeSize, true))
			case KindBold:
				records = append(records, encodeRecord(sp, typeBold, false))
			case KindItalic:
				records = append(records, encodeRecord(sp, typeItalic, false))
			case KindBoldItalic:
				records = append(records,
					encodeRecord(sp, typeBold, false),
					encodeRecord(sp, typeItalic, false))
			case KindUnderline:
				if !sp.Composing {
					records = append(records, encodeRecord(sp, typeUnderline, false))
				}
			}
		}
	}

	out, _ = sjson.SetRaw(out, "spans", "["+strings.Join(records, ",")+"]")
	return out
}

func encodeRecord(sp Span, typ string, withValue bool) string {
	rec, _ := sjson.Set(`{}`, "start", sp.Start)
	rec, _ = sjson.Set(rec, "end", sp.End)
	rec, _ = sjson.Set(rec, "type", typ)
	if withValue {
		rec, _ = sjson.Set(rec, "value", sp.Value)
	}
	return rec
}

// Deserialize decodes data produced by Serialize. Records are clamped to the
// text, and records that end up empty, lack a range or carry an unknown type
// are skipped. Structurally malformed input yields an empty document rather
// than an error.
func Deserialize(data string) *Document {
	if !gjson.Valid(data) {
		return &Document{}
	}
	root := gjson.Parse(data)
	if !root.IsObject() {
		return &Document{}
	}

	doc := &Document{Text: root.Get("text").String()}
	spans := root.Get("spans")
	if doc.Text == "" || !spans.Exists() {
		return doc
	}
	if !spans.IsArray() {
		return &Document{}
	}

	n := doc.Len()
	malformed := false
	spans.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsObject() {
			malformed = true
			return false
		}
		if sp, ok := decodeRecord(rec, n); ok {
			doc.Spans = append(doc.Spans, sp)
		}
		return true
	})
	if malformed {
		return &Document{}
	}
	return doc
}

func decodeRecord(rec gjson.Result, n int) (Span, bool) {
	start := rec.Get("start")
	end := rec.Get("end")
	if !start.Exists() || !end.Exists() {
		return Span{}, false
	}

	sp := Span{}
	sp.Start = clamp(int(start.Int()), 0, n)
	sp.End = clamp(int(end.Int()), sp.Start, n)
	if sp.Start >= sp.End {
		return Span{}, false
	}

	value := rec.Get("value")
	switch rec.Get("type").String() {
	case typeColor:
		sp.Kind = KindColor
		if value.Exists() {
			sp.Value = int(value.Int())
		}
	case typeSize:
		sp.Kind = KindSize
		sp.Value = DefaultSpanSize
		if value.Exists() {
			sp.Value = int(value.Int())
		}
	case typeBold:
		sp.Kind = KindBold
	case typeItalic:
		sp.Kind = KindItalic
	case typeUnderline:
		sp.Kind = KindUnderline
	default:
		return Span{}, false
	}
	return sp, true
}
