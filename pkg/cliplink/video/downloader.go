package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
	"github.com/himanishpuri/ClipLink/pkg/utils"
)

// Quality is capped so short clips download fast; the vision API does
// not benefit from anything above 720p.
const downloadFormat = "best[height<=720]/best"

// Browsers tried, in order, for the Instagram cookie fallback.
var cookieBrowsers = []string{"chrome", "firefox"}

type Downloader struct {
	log *logger.Logger
}

func NewDownloader(log *logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Downloader{log: log}
}

// Download fetches the video into destDir and returns the local file
// path. Instagram URLs are first attempted with browser cookies since
// the host frequently blocks anonymous requests.
func (d *Downloader) Download(ctx context.Context, videoURL, destDir string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 3*time.Minute)
		defer cancel()
	}

	if err := utils.MakeDir(destDir); err != nil {
		return "", &models.DownloadError{URL: videoURL, Err: err}
	}

	if utils.IsInstagramURL(videoURL) {
		for _, browser := range cookieBrowsers {
			path, err := d.runDownload(ctx, videoURL, destDir, browser)
			if err == nil {
				d.log.Infof("Downloaded with %s cookies: %s", browser, path)
				return path, nil
			}
			if ctx.Err() != nil {
				return "", &models.DownloadError{URL: videoURL, Err: ctx.Err()}
			}
			d.log.Warnf("Download with %s cookies failed: %v", browser, err)
			d.cleanupPartial(destDir)
		}
	}

	path, err := d.runDownload(ctx, videoURL, destDir, "")
	if err != nil {
		if ctx.Err() != nil {
			return "", &models.DownloadError{URL: videoURL, Err: ctx.Err()}
		}
		return "", &models.DownloadError{URL: videoURL, Err: err}
	}
	return path, nil
}

func (d *Downloader) runDownload(ctx context.Context, videoURL, destDir, cookieBrowser string) (string, error) {
	outputTemplate := filepath.Join(destDir, "clip.%(ext)s")

	dl := ytdlp.New().
		Format(downloadFormat).
		NoPlaylist().
		Quiet().
		Output(outputTemplate)

	if cookieBrowser != "" {
		dl = dl.CookiesFromBrowser(cookieBrowser)
	}

	if _, err := dl.Run(ctx, videoURL); err != nil {
		return "", fmt.Errorf("yt-dlp: %w", err)
	}

	path, err := findDownloadedFile(destDir)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil {
		d.log.Infof("Downloaded %s (%s)", filepath.Base(path), humanize.Bytes(uint64(info.Size())))
	}
	return path, nil
}

// cleanupPartial removes leftovers of a failed attempt so the next
// attempt's file lookup cannot pick up a truncated download.
func (d *Downloader) cleanupPartial(destDir string) {
	matches, err := filepath.Glob(filepath.Join(destDir, "clip.*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := utils.DeleteFile(m); err != nil {
			d.log.Warnf("Failed to remove partial download %s: %v", m, err)
		}
	}
}

// yt-dlp picks the container extension, so the downloaded file is
// located by prefix rather than exact name.
func findDownloadedFile(destDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(destDir, "clip.*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("downloaded video file not found in %s", destDir)
	}
	return matches[0], nil
}
