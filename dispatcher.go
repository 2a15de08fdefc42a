package ofxconnect

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/golang/glog"
)

const (
	// MediaType is the content type of OFX requests and responses.
	MediaType = "application/x-ofx"
	// DefaultUserAgent is sent by HTTPDispatcher when none is configured.
	DefaultUserAgent = "ofxconnect"
)

// Reply is a raw HTTP response.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Dispatcher posts an assembled request document to url.
// Implementations return a TransportError for connection failures, timeouts and
// non-2xx statuses.
type Dispatcher interface {
	Dispatch(ctx context.Context, url string, document []byte) (*Reply, error)
}

// HTTPDispatcher is a Dispatcher over net/http. It never retries.
type HTTPDispatcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPDispatcher returns an HTTPDispatcher using client, http.DefaultClient if nil.
func NewHTTPDispatcher(client *http.Client, userAgent string) *HTTPDispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPDispatcher{client: client, userAgent: userAgent}
}

// Dispatch implements Dispatcher.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, url string, document []byte) (*Reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(document))
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", MediaType)
	req.Header.Set("Content-Type", MediaType)

	glog.V(2).Infof("POST %s (%d bytes)", url, len(document))
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	glog.V(2).Infof("POST %s: %s (%d bytes)", url, resp.Status, len(body))
	if !isSuccess(resp.StatusCode) {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("error - unexpected status %s", resp.Status)}
	}
	return &Reply{StatusCode: resp.StatusCode, Body: body}, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
