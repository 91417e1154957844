package gallery

import (
	"os"
	"path/filepath"

	"mapgallery/internal/errors"
	"mapgallery/internal/log"
	"mapgallery/pkg/types"

	"gopkg.in/yaml.v3"
)

// ScanFolder lists the image entries of one folder in directory order.
// A missing or unreadable folder yields no entries and a non-nil warning;
// callers continue with their remaining folders.
func ScanFolder(folder string, m *Matcher) ([]types.ImageEntry, []error) {
	var warnings []error

	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		kind := errors.FolderUnreadable
		msg := "cannot read folder"
		if os.IsNotExist(err) {
			kind = errors.FolderNotFound
			msg = "folder not found"
		}
		return nil, []error{errors.NewFileError(msg, folder, kind, err)}
	}

	manifest, err := ReadManifest(filepath.Join(folder, types.ManifestFileName))
	if err != nil {
		warnings = append(warnings, err)
	}
	meta := manifest.ByFile()

	entries := make([]types.ImageEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		name := de.Name()
		if !m.Match(name) {
			continue
		}
		entry := types.ImageEntry{
			Path: filepath.Join(folder, name),
			Name: DisplayName(name),
		}
		if mm, ok := meta[name]; ok {
			entry.Meta = mm.MapMeta
			if mm.Name != "" {
				entry.Name = mm.Name
			}
		}
		entries = append(entries, entry)
	}

	log.LogWithFields(log.F("folder", folder), log.F("images", len(entries))).Debug("Scanned folder")
	return entries, warnings
}

// ReadManifest loads a maps.yaml file. A missing file is not an error and
// yields a nil manifest.
func ReadManifest(path string) (*types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewFileError("cannot read manifest", path, errors.FileNotFound, err)
	}

	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewConfigError("malformed manifest", path, errors.InvalidConfig, err)
	}
	return &m, nil
}

// WriteManifest stores m at path.
func WriteManifest(path string, m *types.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError("cannot write manifest", path, errors.FileCreateFailed, err)
	}
	return nil
}
