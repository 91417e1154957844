package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mapgallery/internal/config"
	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/pkg/testutils"
	"mapgallery/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type previewServer struct {
	*httptest.Server
	hits      atomic.Int32
	userAgent atomic.Value
}

func newPreviewServer(t *testing.T) *previewServer {
	t.Helper()
	png := testutils.PNGBytes(t, 8, 8)
	ps := &previewServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.hits.Add(1)
		ps.userAgent.Store(r.UserAgent())
		if strings.HasPrefix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	t.Cleanup(ps.Close)
	return ps
}

func writeSourceManifest(t *testing.T, dir string, maps ...types.ManifestMap) {
	t.Helper()
	require.NoError(t, gallery.WriteManifest(filepath.Join(dir, types.ManifestFileName), &types.Manifest{Maps: maps}))
}

func collect(lines *[]string) func(string) {
	return func(s string) { *lines = append(*lines, s) }
}

func TestDownload(t *testing.T) {
	srv := newPreviewServer(t)
	src, dst := t.TempDir(), filepath.Join(t.TempDir(), "downloaded")

	writeSourceManifest(t, src,
		types.ManifestMap{File: "Isle_map_auto.png", Name: "Isle", Preview: srv.URL + "/isle.png",
			MapMeta: types.MapMeta{Expansion: types.ExpansionSoD}},
		types.ManifestMap{Preview: srv.URL + "/previews/Dragon%27s_Lair.png"},
		types.ManifestMap{File: "no_preview.png"},
	)

	var lines []string
	svc := NewService(WithUserAgent("mapgallery-test"))
	require.NoError(t, svc.Download(context.Background(), src, dst, collect(&lines)))

	assert.FileExists(t, filepath.Join(dst, "Isle_map_auto.png"))
	assert.FileExists(t, filepath.Join(dst, "Dragon's_Lair.png"))
	assert.NoFileExists(t, filepath.Join(dst, "no_preview.png"))
	assert.Equal(t, int32(2), srv.hits.Load())
	assert.Equal(t, "mapgallery-test", srv.userAgent.Load())

	require.Len(t, lines, 5)
	assert.Equal(t, "Downloading 1/2: Isle", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Saved Isle ("), lines[1])
	assert.Equal(t, "Downloading 2/2: Dragon's Lair", lines[2])
	assert.Equal(t, "Downloaded 2 new images (2 total)", lines[4])

	merged, err := gallery.ReadManifest(filepath.Join(dst, types.ManifestFileName))
	require.NoError(t, err)
	byFile := merged.ByFile()
	assert.Equal(t, types.ExpansionSoD, byFile["Isle_map_auto.png"].Expansion)
	assert.Contains(t, byFile, "Dragon's_Lair.png")

	leftovers, err := filepath.Glob(filepath.Join(dst, ".download-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDownloadSkipsExisting(t *testing.T) {
	srv := newPreviewServer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeSourceManifest(t, src, types.ManifestMap{File: "a.png", Preview: srv.URL + "/a.png"})
	testutils.CreatePNG(t, dst, "a.png", 2, 2)

	var lines []string
	require.NoError(t, NewService().Download(context.Background(), src, dst, collect(&lines)))
	assert.Equal(t, int32(0), srv.hits.Load())
	assert.Equal(t, []string{
		"Downloading 1/1: a",
		"Skipped a (already downloaded)",
		"Downloaded 0 new images (1 total)",
	}, lines)
}

func TestDownloadHTTPError(t *testing.T) {
	srv := newPreviewServer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeSourceManifest(t, src,
		types.ManifestMap{File: "a.png", Preview: srv.URL + "/a.png"},
		types.ManifestMap{File: "b.png", Preview: srv.URL + "/missing/b.png"},
	)

	err := NewService().Download(context.Background(), src, dst, nil)
	require.Error(t, err)
	assert.True(t, errors.IsDownloadError(err))
	assert.True(t, errors.IsKind(err, errors.DownloadFailed))
	assert.Contains(t, err.Error(), "unexpected status 404")

	assert.FileExists(t, filepath.Join(dst, "a.png"))
	assert.NoFileExists(t, filepath.Join(dst, "b.png"))
}

func TestDownloadMissingManifest(t *testing.T) {
	err := NewService().Download(context.Background(), t.TempDir(), t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.DownloadFailed))
	assert.True(t, errors.IsKind(err, errors.ConfigNotFound))
}

func TestDownloadCancelled(t *testing.T) {
	srv := newPreviewServer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeSourceManifest(t, src, types.ManifestMap{File: "a.png", Preview: srv.URL + "/a.png"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewService().Download(ctx, src, dst, nil)
	require.Error(t, err)
	assert.True(t, errors.IsDownloadError(err))
	assert.Equal(t, int32(0), srv.hits.Load())
}

func TestMergeManifestKeepsExisting(t *testing.T) {
	dst := t.TempDir()
	require.NoError(t, gallery.WriteManifest(filepath.Join(dst, types.ManifestFileName), &types.Manifest{
		Maps: []types.ManifestMap{{File: "old.png", Name: "Old"}, {File: "a.png", Name: "Stale"}},
	}))

	require.NoError(t, mergeManifest(dst, &types.Manifest{
		Maps: []types.ManifestMap{{File: "a.png", Name: "Fresh"}, {}},
	}))

	m, err := gallery.ReadManifest(filepath.Join(dst, types.ManifestFileName))
	require.NoError(t, err)
	require.Len(t, m.Maps, 2)
	assert.Equal(t, "Old", m.Maps[0].Name)
	assert.Equal(t, "Fresh", m.Maps[1].Name)
}

func TestNewServiceFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Download.Timeout = 3 * time.Second
	cfg.Download.UserAgent = "ua"
	cfg.Download.Manifest = "custom.yaml"

	svc := NewServiceFromConfig(cfg)
	assert.Equal(t, 3*time.Second, svc.client.Timeout)
	assert.Equal(t, "ua", svc.userAgent)
	assert.Equal(t, "custom.yaml", svc.manifest)
}

func TestFileFromURL(t *testing.T) {
	assert.Equal(t, "Some Map.png", fileFromURL("https://example.org/p/Some%20Map.png"))
	assert.Equal(t, ".", fileFromURL(""))
}
