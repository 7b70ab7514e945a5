package bootstrap

import "fmt"

// DownloadError reports a failed attempt to fetch a tool.
type DownloadError struct {
	URL  string
	Path string
	Err  error
}

func (e *DownloadError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("download %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("download %s to %s: %v", e.URL, e.Path, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
