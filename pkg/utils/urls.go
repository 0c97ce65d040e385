package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// Hosts the downloader is known to handle. Other hosts are rejected up
// front instead of failing mid-download.
var supportedVideoHosts = []string{
	"instagram.com",
	"tiktok.com",
	"youtube.com",
	"youtu.be",
}

// IsInstagramURL reports whether the URL points at instagram.com.
// Instagram downloads get a browser-cookie fallback because the host
// frequently blocks anonymous requests.
func IsInstagramURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), "instagram.com")
}

// IsSupportedVideoURL reports whether the URL belongs to a host the
// downloader supports.
func IsSupportedVideoURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, h := range supportedVideoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// ValidateVideoURL checks that the string is an absolute http(s) URL on
// a supported host.
func ValidateVideoURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", urlStr)
	}
	if !IsSupportedVideoURL(urlStr) {
		return fmt.Errorf("unsupported video host: %s", u.Host)
	}
	return nil
}
