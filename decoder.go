package ofxconnect

import "github.com/rockstardevs/ofxconnect/ofx"

// Decoder turns a raw response body into accounts and statements.
// ofx.Decoder is the default implementation.
type Decoder interface {
	Decode(data []byte) (*ofx.Response, error)
}
