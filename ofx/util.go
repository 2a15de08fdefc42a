package ofx

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"

	"github.com/golang/glog"
)

var (
	// XML Escape sequences.
	// from https://golang.org/src/encoding/xml/xml.go:1840
	escQuot = []byte("&#34;") // shorter than "&quot;"
	escApos = []byte("&#39;") // shorter than "&apos;"
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escTab  = []byte("&#x9;")
	escNl   = []byte("&#xA;")
	escCr   = []byte("&#xD;")
	escFffd = []byte("\uFFFD") // Unicode replacement character
)

// Decide whether the given rune is in the XML Character Range, per
// the Char production of http://www.xml.com/axml/testaxml.htm,
// Section 2.2 Characters.
// Lifted from https://golang.org/src/encoding/xml/xml.go:1102
func isInCharacterRange(r rune) (inrange bool) {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// EscapeString returns properly escaped XML equivalent of the plain text data s.
// based on https://golang.org/src/encoding/xml/xml.go:1907
func EscapeString(s string) string {
	var (
		result bytes.Buffer
		esc    []byte
		last   = 0
	)
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		switch r {
		case '"':
			esc = escQuot
		case '\'':
			esc = escApos
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		case '\t':
			esc = escTab
		case '\n':
			esc = escNl
		case '\r':
			esc = escCr
		default:
			if !isInCharacterRange(r) || (r == 0xFFFD && width == 1) {
				esc = escFffd
				break
			}
			continue
		}
		result.WriteString(s[last : i-width])
		result.Write(esc)
		last = i
	}
	result.WriteString(s[last:])
	return result.String()
}

// WriteStartTag writes the opening tag for name to buff.
func WriteStartTag(buff *bytes.Buffer, name string) {
	buff.WriteByte('<')
	buff.WriteString(name)
	buff.WriteByte('>')
}

// WriteEndTag writes the closing tag for name to buff.
func WriteEndTag(buff *bytes.Buffer, name string) {
	buff.WriteString("</")
	buff.WriteString(name)
	buff.WriteByte('>')
}

// WriteElement writes a leaf element holding the escaped value to buff.
func WriteElement(buff *bytes.Buffer, name, value string) {
	WriteStartTag(buff, name)
	buff.WriteString(EscapeString(value))
	WriteEndTag(buff, name)
}

// writeStartTag writes the given start element to the given buffer.
// OFX aggregates carry no namespaces or attributes, only the local name is kept.
func writeStartTag(e *xml.StartElement, buff *bytes.Buffer) {
	glog.V(3).Infof("pushed: %s", e.Name.Local)
	WriteStartTag(buff, e.Name.Local)
}

// writeEndTag writes the closing tag for the given end element to the given buffer.
func writeEndTag(name xml.Name, buff *bytes.Buffer) {
	glog.V(3).Infof("popped: %s", name.Local)
	WriteEndTag(buff, name.Local)
}

// writeElement writes the starting and closing tags and already escaped data for the
// given element to the given buffer.
func writeElement(startTag *xml.StartElement, data string, buff *bytes.Buffer) {
	writeElementFromName(startTag.Name, data, buff)
}

// writeElementFromName writes the starting and closing tags and already escaped data for
// the given element name to the given buffer.
func writeElementFromName(name xml.Name, data string, buff *bytes.Buffer) {
	WriteStartTag(buff, name.Local)
	buff.WriteString(data)
	WriteEndTag(buff, name.Local)
}
