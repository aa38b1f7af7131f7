package http

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultURL is the production origin of the Formulaic API.
const DefaultURL = "https://formulaic.app"

// ParseURL parses an API address. An address without a scheme is assumed to
// be https. Trailing slashes are removed from the path.
func ParseURL(address string) (*url.URL, error) {
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}
	u, err := url.ParseRequestURI(address)
	if err != nil || u.Host == "" {
		u, err = url.ParseRequestURI("https://" + address)
		if err != nil {
			return nil, fmt.Errorf("could not parse address: %w", err)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("address has no host: %s", address)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// SanitizeHostname returns the host[:port] portion of an address.
func SanitizeHostname(address string) (string, error) {
	u, err := ParseURL(address)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}

// JoinPath appends escaped path segments to base.
func JoinPath(base *url.URL, segments ...string) string {
	u := *base
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.RawPath = base.EscapedPath() + "/" + strings.Join(escaped, "/")
	u.Path = base.Path + "/" + strings.Join(segments, "/")
	return u.String()
}
