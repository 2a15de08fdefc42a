package ofx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
)

var errMissingOFX = errors.New("error - invalid file, OFX tag not found")

// Cleaner cleans the given data to return valid XML.
type Cleaner interface {
	CleanupXML(data []byte) (*bytes.Buffer, error)
}

type cleaner struct{}

// NewCleaner returns a Cleaner that closes the tags SGML documents leave open.
func NewCleaner() Cleaner {
	return cleaner{}
}

// CleanupXML returns cleaned XML from the given data.
func (c cleaner) CleanupXML(data []byte) (*bytes.Buffer, error) {
	var (
		xmlIndex    int               // Index for start of XML like data.
		tags        = NewStack()      // Open aggregates.
		lastData    string            // Holds the last parsed char data.
		lastElement *xml.StartElement // Last parsed element start tag.
		cleanXML    bytes.Buffer      // Buffer to hold cleaned XML.
	)
	// Detect the start of XML like data.
	if xmlIndex = bytes.Index(data, []byte("<OFX>")); xmlIndex == -1 {
		return nil, errMissingOFX
	}

	// Start a xml decoder on the context of source data that is XML like.
	decoder := xml.NewDecoder(bytes.NewReader(data[xmlIndex:]))

	// Read parsed XML tokens from the XML decoder and re-assemble them into another buffer,
	// while adding any missing starting or closing tags and trimming spaces/newlines.
	for {
		token, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		switch t := token.(type) {
		case xml.CharData:
			lastData = EscapeString(strings.TrimSpace(string([]byte(t))))
			glog.V(3).Infof("case chardata (%s)", lastData)
		case xml.StartElement:
			glog.V(3).Infof("case start element %s", t.Name.Local)
			// A start tag while data is pending means the previous element was never closed.
			if lastData != "" {
				if lastElement == nil {
					return nil, fmt.Errorf("error: charData(%s) missing start and end tags", lastData)
				}
				writeElement(lastElement, lastData, &cleanXML)
				lastData = ""
				lastElement = nil
			}
			// Aggregates are flushed and pushed on the stack, elements can't have nested tags.
			if IsAggregate(t.Name.Local) {
				tags.Push(&t)
				writeStartTag(&t, &cleanXML)
			} else {
				lastElement = &t
			}
			glog.V(3).Infof("Stack: %#v", tags.Dump())
		case xml.EndElement:
			glog.V(3).Infof("case end element %s", t.Name.Local)
			isAggregate := IsAggregate(t.Name.Local)
			// Pending data is closed by this tag if it is an element, or by the missing end tag
			// of lastElement if this is an aggregate.
			if lastData != "" {
				// We can not determine which of the two elements is missing a closing tag.
				if lastElement != nil && t.Name != lastElement.Name && !isAggregate {
					return nil, fmt.Errorf("error: charData(%s) has ambigious closing tags", lastData)
				}
				if lastElement == nil && isAggregate {
					return nil, fmt.Errorf("error: charData(%s) missing start and end tags", lastData)
				}
				if lastElement != nil {
					writeElement(lastElement, lastData, &cleanXML)
				} else {
					writeElementFromName(t.Name, lastData, &cleanXML)
				}
				lastData = ""
				lastElement = nil
			}

			if !isAggregate {
				break
			}
			if !tags.Contains(t.Name.Local) {
				glog.V(3).Infof("EndTag: dropping %s, never opened", t.Name.Local)
				break
			}
			// Close every open tag till the current closing tag is matched.
			for !tags.IsEmpty() {
				tag, _ := tags.Pop()
				writeEndTag(tag.Name, &cleanXML)
				if tag.Name.Local == t.Name.Local {
					break
				}
			}
			glog.V(3).Infof("Stack: %#v", tags.Dump())
		}
	}
	if !tags.IsEmpty() {
		return nil, fmt.Errorf("error - unexpected end of document, unclosed aggregates %v", tags.Dump())
	}
	return &cleanXML, nil
}
