package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by newUTF8Reader.
const (
	EncodingUTF8        = "UTF-8"
	EncodingUTF8BOM     = "UTF-8 (BOM)"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingUTF16BE     = "UTF-16BE"
	EncodingWindows1251 = "windows-1251"
	EncodingKOI8R       = "KOI8-R"
	EncodingISO88595    = "ISO-8859-5"
)

const peekSize = 4096

// minConfidence is the chardet score needed to pick a charset other than the
// Windows-1251 fallback.
const minConfidence = 60

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// newUTF8Reader detects the encoding of the input and returns a reader that
// decodes the content to UTF-8, along with the name of the detected encoding.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. valid UTF-8 is returned as-is
//  3. heuristic detection via chardet for Cyrillic single-byte charsets
//  4. fallback to Windows-1251, the usual charset of Russian bank exports
func newUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, EncodingUTF8BOM, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), EncodingUTF16LE, nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), EncodingUTF16BE, nil
	}

	if validUTF8Prefix(buf, len(buf) == peekSize) {
		return br, EncodingUTF8, nil
	}

	detector := chardet.NewTextDetector()
	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil && result.Confidence >= minConfidence {
		switch result.Charset {
		case "UTF-8":
			return br, EncodingUTF8, nil
		case "KOI8-R":
			return transform.NewReader(br, charmap.KOI8R.NewDecoder()), EncodingKOI8R, nil
		case "ISO-8859-5":
			return transform.NewReader(br, charmap.ISO8859_5.NewDecoder()), EncodingISO88595, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1251.NewDecoder()), EncodingWindows1251, nil
}

// validUTF8Prefix reports whether buf is valid UTF-8. When buf was cut at the
// peek limit, up to three trailing bytes of an incomplete rune are tolerated.
func validUTF8Prefix(buf []byte, truncated bool) bool {
	if utf8.Valid(buf) {
		return true
	}
	if !truncated {
		return false
	}
	for cut := 1; cut <= utf8.UTFMax-1 && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return true
		}
	}
	return false
}
