package models

import "fmt"

// InputError marks a request the caller can fix: bad URL, unsupported
// host, missing fields. Never retried.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// DownloadError means the remote host rejected or blocked the video
// download. Recoverable only by the caller.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("video download failed for %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractionError means the downloaded file was not a usable video
// (corrupt, zero duration, no decodable frames).
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("frame extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// VisionError means every frame failed to label: quota exhaustion, auth
// failure, or the vision capability is not configured at all.
type VisionError struct {
	Err error
}

func (e *VisionError) Error() string {
	return fmt.Sprintf("vision labeling failed: %v", e.Err)
}

func (e *VisionError) Unwrap() error { return e.Err }

// UpstreamError wraps a failure from any other external service that
// has no remaining fallback.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
