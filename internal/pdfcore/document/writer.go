package document

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// Write serializes doc into a self-contained PDF byte stream: every
// object in the table, a freshly rebuilt classic cross-reference table,
// and a trailer pointing at it. Grounded on
// other_examples/022e474b_lvillar-gofpdf__form-fill.go.go's rebuildXref
// for the exact byte layout of a classic table (10-digit offset,
// 5-digit generation, " n \n"/" f \n", "xref\n0 N\n", "trailer\n",
// "startxref\nN\n%%EOF\n"). Always emits a classic table regardless of
// what the input used, bounding C8's serialize-side scope the same way
// parsing bounds its read side (see internal/pdfcore/xref's doc
// comment).
func Write(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	version := doc.Version
	if version == "" {
		version = "1.4"
	}
	fmt.Fprintf(&buf, "%%PDF-%s\n", version)
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	ids := make([]object.ObjectID, 0, len(doc.Objects))
	maxNum := int64(0)
	for id := range doc.Objects {
		ids = append(ids, id)
		if id.Number > maxNum {
			maxNum = id.Number
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Number < ids[j].Number })

	offsets := make(map[int64]int64, len(ids))
	for _, id := range ids {
		offsets[id.Number] = int64(buf.Len())
		obj := doc.Objects[id]
		if obj.Kind == object.KindStream {
			obj.Dict = obj.Dict.Clone()
			obj.Dict.Set("Length", object.Integer(int64(len(obj.Stream))))
		}
		fmt.Fprintf(&buf, "%d %d obj\n", id.Number, id.Generation)
		if err := writeValue(&buf, obj); err != nil {
			return nil, fmt.Errorf("serializing object %s: %w", id, err)
		}
		buf.WriteString("\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for n := int64(1); n <= maxNum; n++ {
		if off, ok := offsets[n]; ok {
			fmt.Fprintf(&buf, "%010d %05d n \n", off, 0)
		} else {
			buf.WriteString("0000000000 00000 f \n")
		}
	}

	trailer := doc.Trailer.Clone()
	trailer.Set("Size", object.Integer(maxNum+1))
	trailer.Delete("Prev")
	trailer.Delete("XRefStm")

	buf.WriteString("trailer\n")
	if err := writeValue(&buf, object.DictObj(trailer)); err != nil {
		return nil, fmt.Errorf("serializing trailer: %w", err)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, obj object.Object) error {
	switch obj.Kind {
	case object.KindNull:
		buf.WriteString("null")
	case object.KindBoolean:
		if obj.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case object.KindInteger:
		buf.WriteString(strconv.FormatInt(obj.Int, 10))
	case object.KindReal:
		buf.WriteString(formatReal(obj.Real))
	case object.KindName:
		buf.WriteString("/")
		buf.WriteString(escapeName(obj.Name))
	case object.KindString:
		buf.WriteString("<")
		buf.WriteString(fmt.Sprintf("%x", obj.Str))
		buf.WriteString(">")
	case object.KindArray:
		buf.WriteString("[")
		for i, item := range obj.Items {
			if i > 0 {
				buf.WriteString(" ")
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("]")
	case object.KindDictionary:
		return writeDict(buf, obj.Dict)
	case object.KindStream:
		if err := writeDict(buf, obj.Dict); err != nil {
			return err
		}
		buf.WriteString("\nstream\n")
		buf.Write(obj.Stream)
		buf.WriteString("\nendstream")
	case object.KindReference:
		fmt.Fprintf(buf, "%d %d R", obj.Ref.Number, obj.Ref.Generation)
	default:
		return fmt.Errorf("unknown object kind %v", obj.Kind)
	}
	return nil
}

func writeDict(buf *bytes.Buffer, d *object.Dict) error {
	buf.WriteString("<<")
	for _, key := range d.Keys() {
		v, _ := d.Get(key)
		buf.WriteString("/")
		buf.WriteString(escapeName(key))
		buf.WriteString(" ")
		if err := writeValue(buf, v); err != nil {
			return err
		}
		buf.WriteString(" ")
	}
	buf.WriteString(">>")
	return nil
}

func escapeName(name string) string {
	var out bytes.Buffer
	for i := 0; i < len(name); i++ {
		b := name[i]
		if object.IsWhitespace(b) || object.IsDelimiter(b) || b == '#' || b < 0x21 || b > 0x7E {
			fmt.Fprintf(&out, "#%02X", b)
		} else {
			out.WriteByte(b)
		}
	}
	return out.String()
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}
