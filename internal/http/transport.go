package http

import (
	"crypto/tls"
	"net/http"
)

var DefaultTransport http.RoundTripper = http.DefaultTransport

// InsecureTransport skips verification of server certificates. Only for
// self-hosted deployments with self-signed certificates.
var InsecureTransport http.RoundTripper

func init() {
	clone := http.DefaultTransport.(*http.Transport).Clone()
	clone.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true,
	}
	InsecureTransport = clone
}
