package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var charsetRulePrefix = []byte(`@charset "`)

// charsetRule returns label from "@charset" rule. Rule is only recognized
// when it opens the stylesheet in exactly this form: @charset "label";
func charsetRule(data []byte) string {
	if !bytes.HasPrefix(data, charsetRulePrefix) {
		return ""
	}
	rest := data[len(charsetRulePrefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 || end > 64 {
		return ""
	}
	return string(rest[:end])
}

// decodeText converts raw source into UTF-8 text and returns name of the
// character set it was decoded from. Sources with byte order mark were already
// converted by selectReader. Forced encoding wins over anything declared in
// the source itself.
func decodeText(data []byte, kind sourceKind, enc srcEncoding, forced encoding.Encoding) (string, string, error) {
	if enc != encUnknown {
		return string(data), "utf-8", nil
	}

	if forced != nil {
		name, err := ianaindex.IANA.Name(forced)
		if err != nil {
			name = "forced"
		}
		return decodeWith(data, forced, strings.ToLower(name))
	}

	if kind == kindHTML {
		e, name, _ := charset.DetermineEncoding(data, "text/html")
		if name == "windows-1252" && utf8.Valid(data) {
			// undeclared documents get legacy default, plain ASCII included
			return string(data), "utf-8", nil
		}
		return decodeWith(data, e, name)
	}

	if label := charsetRule(data); label != "" {
		if e, name := charset.Lookup(label); e != nil && !strings.HasPrefix(name, "utf-16") {
			return decodeWith(data, e, name)
		}
	}
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), "utf-8", nil
}

func decodeWith(data []byte, e encoding.Encoding, name string) (string, string, error) {
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", name, fmt.Errorf("unable to decode source from %s: %w", name, err)
	}
	return string(out), name, nil
}
