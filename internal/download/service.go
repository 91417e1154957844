package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"mapgallery/internal/config"
	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/log"
	"mapgallery/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Service downloads previews over HTTP.
type Service struct {
	client    *http.Client
	userAgent string
	manifest  string
}

// Option configures a Service.
type Option func(*Service)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Service) { s.userAgent = ua }
}

// WithManifest sets the manifest file name looked up in the source folder.
func WithManifest(name string) Option {
	return func(s *Service) { s.manifest = name }
}

// NewService creates a download service
func NewService(opts ...Option) *Service {
	s := &Service{
		client:   &http.Client{Timeout: 30 * time.Second},
		manifest: types.ManifestFileName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromConfig creates a download service from the download section.
func NewServiceFromConfig(cfg *config.Config) *Service {
	return NewService(
		WithClient(&http.Client{Timeout: cfg.Download.Timeout}),
		WithUserAgent(cfg.Download.UserAgent),
		WithManifest(cfg.Download.Manifest),
	)
}

// Download implements Downloader. Files already present in destFolder are
// skipped. The first failed preview aborts the run; previews saved before
// it are kept.
func (s *Service) Download(ctx context.Context, sourceFolder, destFolder string, progress func(string)) error {
	report := func(format string, args ...interface{}) {
		if progress != nil {
			progress(fmt.Sprintf(format, args...))
		}
	}

	runID := newRunID()
	logger := log.LogWithFields(
		log.F("run", runID),
		log.F("source", sourceFolder),
		log.F("dest", destFolder),
	)

	manifestPath := filepath.Join(sourceFolder, s.manifest)
	manifest, err := gallery.ReadManifest(manifestPath)
	if err != nil {
		return errors.NewDownloadError("cannot load manifest", manifestPath, err)
	}
	if manifest == nil {
		return errors.NewDownloadError("cannot load manifest", manifestPath,
			errors.NewConfigError("manifest not found", manifestPath, errors.ConfigNotFound, nil))
	}

	if err := os.MkdirAll(destFolder, 0o755); err != nil {
		return errors.NewDownloadError("cannot create destination folder", "",
			errors.NewFileError("mkdir failed", destFolder, errors.FileCreateFailed, err))
	}

	var jobs []types.ManifestMap
	for _, mm := range manifest.Maps {
		if mm.Preview == "" {
			continue
		}
		if mm.File == "" {
			mm.File = fileFromURL(mm.Preview)
		}
		mm.File = filepath.Base(mm.File)
		if mm.File == "." || mm.File == string(filepath.Separator) {
			logger.Warnf("Cannot derive a file name for %s", mm.Preview)
			continue
		}
		jobs = append(jobs, mm)
	}

	logger.Infof("Downloading %d previews", len(jobs))

	saved := 0
	for i, mm := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.NewDownloadError("download cancelled", "", err)
		}

		name := mm.Name
		if name == "" {
			name = gallery.DisplayName(mm.File)
		}
		target := filepath.Join(destFolder, mm.File)

		report("Downloading %d/%d: %s", i+1, len(jobs), name)
		if _, err := os.Stat(target); err == nil {
			report("Skipped %s (already downloaded)", name)
			continue
		}

		n, err := s.fetch(ctx, mm.Preview, target)
		if err != nil {
			logger.WithError(err).Error("Preview download failed")
			return err
		}
		saved++
		report("Saved %s (%s)", name, humanize.Bytes(uint64(n)))
	}

	if err := mergeManifest(destFolder, manifest); err != nil {
		logger.WithError(err).Warn("Could not update destination manifest")
	}

	report("Downloaded %d new images (%d total)", saved, len(jobs))
	logger.With(log.F("saved", saved), log.F("total", len(jobs))).Info("Download finished")
	return nil
}

// fetch stores the body of rawURL at target through a temp file so that a
// failed transfer never leaves a partial image behind.
func (s *Service) fetch(ctx context.Context, rawURL, target string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.NewDownloadError("invalid preview url", rawURL, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, errors.NewDownloadError("request failed", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, errors.NewDownloadError(fmt.Sprintf("unexpected status %d", resp.StatusCode), rawURL, nil)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".download-*")
	if err != nil {
		return 0, errors.NewDownloadError("cannot create file", rawURL,
			errors.NewFileError("temp file failed", target, errors.FileCreateFailed, err))
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return 0, errors.NewDownloadError("transfer failed", rawURL, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return 0, errors.NewDownloadError("cannot save file", rawURL,
			errors.NewFileError("rename failed", target, errors.FileCreateFailed, err))
	}
	return n, nil
}

// mergeManifest writes src's entries into the destination manifest,
// replacing entries for the same file and keeping the rest.
func mergeManifest(destFolder string, src *types.Manifest) error {
	dstPath := filepath.Join(destFolder, types.ManifestFileName)
	dst, err := gallery.ReadManifest(dstPath)
	if err != nil {
		log.LogWithError(err).Warn("Replacing unreadable destination manifest")
		dst = nil
	}
	if dst == nil {
		dst = &types.Manifest{}
	}

	index := make(map[string]int, len(dst.Maps))
	for i, mm := range dst.Maps {
		index[mm.File] = i
	}
	for _, mm := range src.Maps {
		if mm.File == "" {
			mm.File = fileFromURL(mm.Preview)
		}
		mm.File = filepath.Base(mm.File)
		if mm.File == "." {
			continue
		}
		if i, ok := index[mm.File]; ok {
			dst.Maps[i] = mm
			continue
		}
		index[mm.File] = len(dst.Maps)
		dst.Maps = append(dst.Maps, mm)
	}
	return gallery.WriteManifest(dstPath, dst)
}

// fileFromURL returns the unescaped last path element of a URL.
func fileFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
