package gallery

import (
	"net/url"
	"path/filepath"
	"strings"
)

// MarkerToken is the suffix the map site appends to generated preview names.
const MarkerToken = " map auto"

// DisplayName derives a human readable map name from an image file name:
// the extension is dropped, underscores become spaces, the trailing marker
// token is stripped and URL escapes are decoded.
func DisplayName(file string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSuffix(strings.TrimRight(name, " "), MarkerToken)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return strings.TrimSpace(name)
}
