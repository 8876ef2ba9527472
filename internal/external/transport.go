package external

import (
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

// NewHTTPClient returns an *http.Client tuned for the weather service.
// The transport negotiates gzip and decompresses bodies transparently, so
// decoders always see plain JSON.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: gzhttp.Transport(base),
	}
}
