package ofx

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Header is the pre-body header block of an OFX document.
// SGML documents carry key:value lines, XML documents an <?OFX ...?> processing instruction.
type Header struct {
	Fields map[string]string
}

var piAttribute = regexp.MustCompile(`([A-Z]+)="([^"]*)"`)

// ParseHeader splits data into its header and the body starting at the OFX tag.
func ParseHeader(data []byte) (*Header, []byte, error) {
	idx := bytes.Index(data, []byte("<OFX>"))
	if idx == -1 {
		return nil, nil, errMissingOFX
	}
	h := &Header{Fields: make(map[string]string)}
	prefix := data[:idx]

	if pi := bytes.Index(prefix, []byte("<?OFX")); pi != -1 {
		for _, m := range piAttribute.FindAllSubmatch(prefix[pi:], -1) {
			h.Fields[string(m[1])] = string(m[2])
		}
		return h, data[idx:], nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(prefix))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		h.Fields[strings.ToUpper(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}
	return h, data[idx:], scanner.Err()
}

// Get returns the value of the named header field, or "" if absent.
func (h *Header) Get(key string) string {
	if h == nil {
		return ""
	}
	return h.Fields[strings.ToUpper(key)]
}

// Version returns the declared OFX version, "102" for example.
func (h *Header) Version() string {
	return h.Get("VERSION")
}

// charset returns the single byte charset declared by the header.
// Windows-1252 is assumed when the header is silent.
func (h *Header) charset() *charmap.Charmap {
	switch strings.ToUpper(h.Get("CHARSET")) {
	case "ISO-8859-1", "8859-1":
		return charmap.ISO8859_1
	default:
		return charmap.Windows1252
	}
}

// ToUTF8 converts body from the header's charset to UTF-8.
// Bodies that are already valid UTF-8, which includes plain US-ASCII, are returned as is.
func (h *Header) ToUTF8(body []byte) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}
	return h.charset().NewDecoder().Bytes(body)
}
