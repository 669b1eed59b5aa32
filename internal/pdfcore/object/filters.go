package object

import (
	"bytes"
	"compress/flate"
	"compress/lzw"
	"fmt"
	"io"
)

// DecodeStream applies dict's Filter chain to the raw stream bytes.
// Grounded on internal/pdf/custom/filters.go's FlateDecoder/LZWDecoder
// (including the PNG/TIFF predictor postprocessing) — trimmed to two
// filters. The only stream this engine decodes is a cross-reference
// stream, conventionally FlateDecode'd; object streams are not decoded
// (see internal/pdfcore/xref). Filters this repo
// never needs to read the decoded bytes of (DCTDecode, CCITTFax, ...)
// are intentionally not carried over; stream content the engine doesn't
// interpret is round-tripped as opaque bytes by the Writer regardless.
func DecodeStream(dict *Dict, raw []byte) ([]byte, error) {
	filters := filterNames(dict)
	if len(filters) == 0 {
		return raw, nil
	}

	data := raw
	for i, name := range filters {
		params := decodeParamsAt(dict, i)
		var err error
		switch name {
		case "FlateDecode":
			data, err = decodeFlate(data, params)
		case "LZWDecode":
			data, err = decodeLZW(data, params)
		default:
			return nil, fmt.Errorf("unsupported filter for decode: %s", name)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return data, nil
}

func filterNames(dict *Dict) []string {
	v, ok := dict.Get("Filter")
	if !ok {
		return nil
	}
	switch v.Kind {
	case KindName:
		return []string{v.Name}
	case KindArray:
		var out []string
		for _, it := range v.Items {
			if it.Kind == KindName {
				out = append(out, it.Name)
			}
		}
		return out
	default:
		return nil
	}
}

func decodeParamsAt(dict *Dict, index int) *Dict {
	v, ok := dict.Get("DecodeParms")
	if !ok {
		return nil
	}
	switch v.Kind {
	case KindDictionary:
		if index == 0 {
			return v.Dict
		}
	case KindArray:
		if index < len(v.Items) && v.Items[index].Kind == KindDictionary {
			return v.Items[index].Dict
		}
	}
	return nil
}

func dictInt(d *Dict, key string, def int64) int64 {
	if d == nil {
		return def
	}
	v, ok := d.Get(key)
	if !ok || v.Kind != KindInteger {
		return def
	}
	return v.Int
}

func decodeFlate(data []byte, params *Dict) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	predictor := dictInt(params, "Predictor", 1)
	if predictor > 1 {
		return applyPredictor(decoded, params, predictor)
	}
	return decoded, nil
}

func decodeLZW(data []byte, params *Dict) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer r.Close()
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	predictor := dictInt(params, "Predictor", 1)
	if predictor > 1 {
		return applyPredictor(decoded, params, predictor)
	}
	return decoded, nil
}

func applyPredictor(data []byte, params *Dict, predictor int64) ([]byte, error) {
	columns := dictInt(params, "Columns", 1)
	bpc := dictInt(params, "BitsPerComponent", 8)
	colors := dictInt(params, "Colors", 1)

	if predictor == 2 {
		return applyTIFFPredictor(data, int(columns), int(bpc), int(colors))
	}
	if predictor >= 10 {
		return applyPNGPredictor(data, int(columns), int(bpc), int(colors))
	}
	return data, nil
}

func applyTIFFPredictor(data []byte, columns, bpc, colors int) ([]byte, error) {
	if bpc != 8 {
		return data, nil
	}
	bytesPerPixel := colors
	rowSize := columns * bytesPerPixel
	if rowSize == 0 || len(data)%rowSize != 0 {
		return data, nil
	}
	result := make([]byte, len(data))
	copy(result, data)
	for row := 0; row < len(data)/rowSize; row++ {
		start := row * rowSize
		for col := 1; col < columns; col++ {
			for c := 0; c < bytesPerPixel; c++ {
				idx := start + col*bytesPerPixel + c
				prev := start + (col-1)*bytesPerPixel + c
				result[idx] = byte(int(result[idx]) + int(result[prev]))
			}
		}
	}
	return result, nil
}

func applyPNGPredictor(data []byte, columns, bpc, colors int) ([]byte, error) {
	bytesPerPixel := (bpc*colors + 7) / 8
	rowSize := (columns*bpc*colors + 7) / 8
	totalRowSize := rowSize + 1
	if totalRowSize == 0 || len(data)%totalRowSize != 0 {
		return nil, fmt.Errorf("data length not a multiple of predictor row size")
	}
	numRows := len(data) / totalRowSize
	result := make([]byte, numRows*rowSize)

	for row := 0; row < numRows; row++ {
		srcStart := row * totalRowSize
		dstStart := row * rowSize
		tag := data[srcStart]
		rowData := data[srcStart+1 : srcStart+totalRowSize]
		copy(result[dstStart:], rowData)

		switch tag {
		case 0: // None
		case 1: // Sub
			for i := bytesPerPixel; i < rowSize; i++ {
				result[dstStart+i] = byte(int(result[dstStart+i]) + int(result[dstStart+i-bytesPerPixel]))
			}
		case 2: // Up
			if row > 0 {
				prevStart := (row - 1) * rowSize
				for i := 0; i < rowSize; i++ {
					result[dstStart+i] = byte(int(result[dstStart+i]) + int(result[prevStart+i]))
				}
			}
		case 3: // Average
			for i := 0; i < rowSize; i++ {
				var left, up int
				if i >= bytesPerPixel {
					left = int(result[dstStart+i-bytesPerPixel])
				}
				if row > 0 {
					up = int(result[(row-1)*rowSize+i])
				}
				result[dstStart+i] = byte(int(result[dstStart+i]) + (left+up)/2)
			}
		case 4: // Paeth
			for i := 0; i < rowSize; i++ {
				var left, up, upLeft int
				if i >= bytesPerPixel {
					left = int(result[dstStart+i-bytesPerPixel])
				}
				if row > 0 {
					up = int(result[(row-1)*rowSize+i])
					if i >= bytesPerPixel {
						upLeft = int(result[(row-1)*rowSize+i-bytesPerPixel])
					}
				}
				result[dstStart+i] = byte(int(result[dstStart+i]) + paeth(left, up, upLeft))
			}
		default:
			return nil, fmt.Errorf("unknown PNG predictor tag %d", tag)
		}
	}
	return result, nil
}

func paeth(a, b, c int) int {
	p := a + b - c
	pa, pb, pc := abs(p-a), abs(p-b), abs(p-c)
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
