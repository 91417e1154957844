package types

// ManifestFileName is the per-folder metadata file read by the gallery and
// the downloader.
const ManifestFileName = "maps.yaml"

// Manifest lists the maps of a folder together with their preview source.
type Manifest struct {
	Maps []ManifestMap `yaml:"maps"`
}

// ManifestMap is a single map entry of a manifest.
type ManifestMap struct {
	File    string `yaml:"file"`              // Image file name inside the folder
	Name    string `yaml:"name,omitempty"`    // Display name override
	Preview string `yaml:"preview,omitempty"` // URL of the preview image
	MapMeta `yaml:",inline"`
}

// ByFile indexes the manifest by image file name.
func (m *Manifest) ByFile() map[string]ManifestMap {
	if m == nil {
		return map[string]ManifestMap{}
	}
	idx := make(map[string]ManifestMap, len(m.Maps))
	for _, mm := range m.Maps {
		if mm.File != "" {
			idx[mm.File] = mm
		}
	}
	return idx
}
