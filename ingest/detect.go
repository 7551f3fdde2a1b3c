package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Number of leading bytes used to recognize content.
const sniffLen = 512

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	}
	return "unknown"
}

type sourceKind int

const (
	kindNone sourceKind = iota
	kindCSS
	kindHTML
)

func (k sourceKind) String() string {
	switch k {
	case kindCSS:
		return "css"
	case kindHTML:
		return "html"
	}
	return "none"
}

var (
	typeCSS  = types.NewType("css", "text/css")
	typeHTML = types.NewType("html", "text/html")
)

func init() {
	filetype.AddMatcher(typeCSS, func(buf []byte) bool {
		buf = stripBOM(buf)
		return looksLikeText(buf) && !looksLikeMarkup(buf)
	})
	filetype.AddMatcher(typeHTML, func(buf []byte) bool {
		buf = stripBOM(buf)
		return looksLikeText(buf) && looksLikeMarkup(buf)
	})
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark. UTF-32 checks go first since UTF-32
// little endian mark starts with UTF-16 one.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// stripBOM returns sample as text would look like after decoding, it is only
// precise enough for content sniffing.
func stripBOM(buf []byte) []byte {
	enc := detectUTF(buf)
	if enc == encUnknown {
		return buf
	}
	out, _, err := transform.Bytes(decoder(enc), buf)
	if err != nil && len(out) == 0 {
		return buf
	}
	return out
}

// looksLikeText rejects binary content: NUL bytes or control characters
// other than whitespace.
func looksLikeText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	for _, b := range buf {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			return false
		}
	}
	return true
}

var markupSignatures = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<body"),
	[]byte("<style"),
	[]byte("<meta"),
	[]byte("<?xml"),
}

func looksLikeMarkup(buf []byte) bool {
	lower := bytes.ToLower(buf)
	for _, sig := range markupSignatures {
		if bytes.Contains(lower, sig) {
			return true
		}
	}
	return false
}

func kindByName(name string) sourceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css":
		return kindCSS
	case ".html", ".htm", ".xhtml":
		return kindHTML
	}
	return kindNone
}

// sniff decides on kind and encoding of the content when name suggests it
// could be a stylesheet source.
func sniff(name string, r io.Reader) (sourceKind, srcEncoding, error) {
	kind := kindByName(name)
	if kind == kindNone {
		return kindNone, encUnknown, nil
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return kindNone, encUnknown, err
	}
	buf = buf[:n]

	if n == 0 {
		// empty stylesheet is still a stylesheet
		return kind, encUnknown, nil
	}
	switch {
	case filetype.Is(buf, kind.String()):
	case kind == kindHTML && filetype.Is(buf, typeCSS.Extension):
		// markup signature may be further than the sniffed block
	default:
		return kindNone, encUnknown, nil
	}
	return kind, detectUTF(buf), nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

func isStyleFile(path string) (sourceKind, srcEncoding, error) {
	if kindByName(path) == kindNone {
		return kindNone, encUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return kindNone, encUnknown, err
	}
	defer f.Close()
	return sniff(path, f)
}

func isStyleInArchive(name string, f *zip.File) (sourceKind, srcEncoding, error) {
	if kindByName(name) == kindNone {
		return kindNone, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return kindNone, encUnknown, err
	}
	defer r.Close()
	return sniff(name, r)
}

func decoder(enc srcEncoding) transform.Transformer {
	switch enc {
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder()
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// selectReader returns reader producing UTF-8 with byte order mark removed.
// Sources without mark are returned as is, their encoding is decided later.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	if enc == encUnknown {
		return r
	}
	return transform.NewReader(r, decoder(enc))
}
