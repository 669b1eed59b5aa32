package object

import (
	"bytes"
	"fmt"
	"strconv"
)

// parser drives a lexer over a byte slice to produce Objects. Grounded
// on internal/pdf/custom/parser.go's parseObject/parseDictionary/
// parseArray/checkForStream, restructured to return values directly
// instead of stashing them behind a cache-on-demand resolver — this
// parser's caller (document.Load) always runs it to eager completion.
type parser struct {
	data []byte
	lex  *lexer
}

func newParser(data []byte) *parser {
	return &parser{data: data, lex: newLexer(bytes.NewReader(data))}
}

// parseIndirectObject reads "N G obj <object> endobj" starting at the
// parser's current position and returns the object's id and value.
func (p *parser) parseIndirectObject() (ObjectID, Object, error) {
	numTok, err := p.lex.next()
	if err != nil {
		return ObjectID{}, Object{}, err
	}
	if numTok.Type != TokenNumber {
		return ObjectID{}, Object{}, newParseError(fmt.Sprintf("expected object number, got %q", numTok.Value), numTok.Pos)
	}
	num, err := strconv.ParseInt(numTok.Value, 10, 64)
	if err != nil {
		return ObjectID{}, Object{}, newParseError("invalid object number", numTok.Pos)
	}

	genTok, err := p.lex.next()
	if err != nil {
		return ObjectID{}, Object{}, err
	}
	if genTok.Type != TokenNumber {
		return ObjectID{}, Object{}, newParseError(fmt.Sprintf("expected generation number, got %q", genTok.Value), genTok.Pos)
	}
	gen, err := strconv.ParseInt(genTok.Value, 10, 64)
	if err != nil {
		return ObjectID{}, Object{}, newParseError("invalid generation number", genTok.Pos)
	}

	objTok, err := p.lex.next()
	if err != nil {
		return ObjectID{}, Object{}, err
	}
	if objTok.Type != TokenObjStart {
		return ObjectID{}, Object{}, newParseError(fmt.Sprintf("expected 'obj', got %q", objTok.Value), objTok.Pos)
	}

	value, err := p.parseValue()
	if err != nil {
		return ObjectID{}, Object{}, err
	}

	// A dictionary directly followed by "stream" is a Stream object.
	if value.Kind == KindDictionary {
		if s, err := p.maybeReadStream(value.Dict); err != nil {
			return ObjectID{}, Object{}, err
		} else if s != nil {
			value = *s
		}
	}

	endTok, err := p.lex.next()
	if err != nil {
		return ObjectID{}, Object{}, err
	}
	if endTok.Type != TokenObjEnd {
		return ObjectID{}, Object{}, newParseError(fmt.Sprintf("expected 'endobj', got %q", endTok.Value), endTok.Pos)
	}

	return ObjectID{Number: num, Generation: gen}, value, nil
}

// parseValue parses a single PDF value starting at the lexer's current
// token position.
func (p *parser) parseValue() (Object, error) {
	tok, err := p.lex.next()
	if err != nil {
		return Object{}, err
	}
	return p.parseValueFromToken(tok)
}

func (p *parser) parseValueFromToken(tok Token) (Object, error) {
	switch tok.Type {
	case TokenKeyword:
		switch tok.Value {
		case "null":
			return Null, nil
		case "true":
			return Boolean(true), nil
		case "false":
			return Boolean(false), nil
		default:
			return Object{}, newParseError(fmt.Sprintf("unexpected keyword %q", tok.Value), tok.Pos)
		}
	case TokenNumber:
		return p.parseNumberOrReference(tok)
	case TokenString:
		return Object{Kind: KindString, Str: []byte(tok.Value)}, nil
	case TokenHexString:
		decoded, err := decodeHex(tok.Value)
		if err != nil {
			return Object{}, newParseError(err.Error(), tok.Pos)
		}
		return Object{Kind: KindString, Str: decoded, IsHex: true}, nil
	case TokenName:
		return NameObj(tok.Value), nil
	case TokenArrayStart:
		return p.parseArray()
	case TokenDictStart:
		return p.parseDictionary()
	default:
		return Object{}, newParseError(fmt.Sprintf("unexpected token %v %q", tok.Type, tok.Value), tok.Pos)
	}
}

// parseNumberOrReference disambiguates "N" from "N G R" by peeking two
// tokens ahead and rewinding the underlying byte stream if the lookahead
// doesn't confirm a reference — the same strategy as the teacher's
// parseNumberOrRef, reimplemented over a byte-offset-addressable lexer
// instead of a stream-only one since our lexer always has the full
// buffer available.
func (p *parser) parseNumberOrReference(numTok Token) (Object, error) {
	savedPos := p.lex.position
	savedCurrent := p.lex.current
	savedHasNext := p.lex.hasNext

	genTok, err := p.lex.next()
	if err == nil && genTok.Type == TokenNumber {
		refTok, err2 := p.lex.next()
		if err2 == nil && refTok.Type == TokenIndirectRef {
			gen, gerr := strconv.ParseInt(genTok.Value, 10, 64)
			num, nerr := parseIntLiteral(numTok.Value)
			if gerr == nil && nerr == nil {
				return Reference(ObjectID{Number: num, Generation: gen}), nil
			}
		}
	}

	// Not a reference: rewind and parse numTok as a plain number.
	p.rewindTo(savedPos, savedCurrent, savedHasNext)
	return parseNumberLiteral(numTok.Value)
}

func (p *parser) rewindTo(pos int64, current byte, hasNext bool) {
	// Reset the lexer with a fresh reader over the original buffer
	// starting at byte offset pos, so that current is the byte at pos
	// again and the next advance reads pos+1.
	if hasNext && pos >= 0 && pos < int64(len(p.data)) {
		p.lex = newLexer(bytes.NewReader(p.data[pos:]))
		p.lex.position = pos
		p.lex.current = current
		p.lex.hasNext = hasNext
	} else {
		p.lex.hasNext = false
		p.lex.current = 0
		p.lex.position = pos
	}
}

func parseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseNumberLiteral(s string) (Object, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Object{}, fmt.Errorf("invalid number literal %q", s)
	}
	return Real(f), nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		s += "0"
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi := hexVal(s[i*2])
		lo := hexVal(s[i*2+1])
		if hi < 0 || lo < 0 {
			return nil, fmt.Errorf("invalid hex digit in string")
		}
		out[i] = byte(hi<<4 | lo)
	}
	return out, nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}

func (p *parser) parseArray() (Object, error) {
	var items []Object
	for {
		tok, err := p.lex.next()
		if err != nil {
			return Object{}, err
		}
		if tok.Type == TokenArrayEnd {
			break
		}
		if tok.Type == TokenEOF {
			return Object{}, newParseError("unterminated array", tok.Pos)
		}
		val, err := p.parseValueFromToken(tok)
		if err != nil {
			return Object{}, err
		}
		items = append(items, val)
	}
	return ArrayObj(items), nil
}

func (p *parser) parseDictionary() (Object, error) {
	d := NewDict()
	for {
		tok, err := p.lex.next()
		if err != nil {
			return Object{}, err
		}
		if tok.Type == TokenDictEnd {
			break
		}
		if tok.Type == TokenEOF {
			return Object{}, newParseError("unterminated dictionary", tok.Pos)
		}
		if tok.Type != TokenName {
			return Object{}, newParseError(fmt.Sprintf("expected dictionary key name, got %q", tok.Value), tok.Pos)
		}
		key := tok.Value
		val, err := p.parseValue()
		if err != nil {
			return Object{}, err
		}
		d.Set(key, val)
	}
	return DictObj(d), nil
}

// maybeReadStream checks whether a "stream" keyword directly follows a
// just-parsed dictionary and, if so, reads the raw (still-filtered)
// stream bytes using the dictionary's Length entry. A direct integer
// Length is used as-is; an indirect Length (common in real-world PDFs
// and a gap in the teacher's own checkForStream, which only handled
// dict.GetInt) is resolved by scanning forward for "endstream" instead,
// since indirect-object resolution isn't available mid-parse of a
// single object.
func (p *parser) maybeReadStream(dict *Dict) (*Object, error) {
	savedPos := p.lex.position
	savedCurrent := p.lex.current
	savedHasNext := p.lex.hasNext

	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenStreamStart {
		p.rewindTo(savedPos, savedCurrent, savedHasNext)
		return nil, nil
	}

	p.lex.skipBytesAfterKeyword()

	lengthObj, hasLength := dict.Get("Length")
	var data []byte
	if hasLength && lengthObj.Kind == KindInteger && lengthObj.Int >= 0 {
		data = p.lex.readRawBytes(lengthObj.Int)
		// Confirm "endstream" follows (allow intervening EOL); if it
		// doesn't, fall back to the endstream-scan below.
		if !p.consumeEndstream() {
			data = p.scanToEndstream(data)
		}
	} else {
		data = p.scanToEndstream(nil)
	}

	return &Object{Kind: KindStream, Dict: dict, Stream: data}, nil
}

// consumeEndstream skips optional EOL then expects "endstream".
func (p *parser) consumeEndstream() bool {
	savedPos := p.lex.position
	savedCurrent := p.lex.current
	savedHasNext := p.lex.hasNext

	for p.lex.hasNext && IsWhitespace(p.lex.current) {
		p.lex.advance()
	}
	tok, err := p.lex.next()
	if err == nil && tok.Type == TokenStreamEnd {
		return true
	}
	p.rewindTo(savedPos, savedCurrent, savedHasNext)
	return false
}

// scanToEndstream reads raw bytes up to (not including) the next
// "endstream" keyword, used when Length is absent, indirect, or wrong.
func (p *parser) scanToEndstream(already []byte) []byte {
	buf := already
	for p.lex.hasNext {
		if p.lex.current == 'e' && bytes.HasPrefix(p.remaining(), []byte("endstream")) {
			break
		}
		buf = append(buf, p.lex.current)
		p.lex.advance()
	}
	// consume the endstream keyword
	p.lex.next()
	// trailing EOL before "endstream" is part of stream padding, not data
	for len(buf) > 0 && (buf[len(buf)-1] == '\n' || buf[len(buf)-1] == '\r') {
		buf = buf[:len(buf)-1]
	}
	return buf
}

func (p *parser) remaining() []byte {
	if p.lex.position+1 >= int64(len(p.data)) {
		return nil
	}
	return p.data[p.lex.position:]
}
