package ofx

import (
	"bytes"
	"time"

	"github.com/golang/glog"
)

// Decoder turns raw OFX response bytes into a Response.
type Decoder struct {
	cleaner  Cleaner
	location *time.Location
}

// NewDecoder returns a Decoder that reads dates without an explicit offset as UTC.
func NewDecoder() *Decoder {
	return &Decoder{cleaner: NewCleaner(), location: time.UTC}
}

// NewDecoderInLocation returns a Decoder that reads dates without an explicit offset in loc.
func NewDecoderInLocation(loc *time.Location) *Decoder {
	return &Decoder{cleaner: NewCleaner(), location: loc}
}

// Decode parses data, header included, into a Response.
func (d *Decoder) Decode(data []byte) (*Response, error) {
	header, body, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	glog.V(3).Infof("header: %v", header.Fields)
	if body, err = header.ToUTF8(body); err != nil {
		return nil, err
	}
	document, err := NewDocumentFromXML(bytes.NewReader(body), d.cleaner)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("decoded OFX %s document with %d transactions", header.Version(), document.TransactionCount)
	return document.Flatten(d.location)
}
