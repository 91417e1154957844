package download

import "context"

// Downloader fetches the previews described by sourceFolder into
// destFolder. progress receives human readable status lines and may be nil.
type Downloader interface {
	Download(ctx context.Context, sourceFolder, destFolder string, progress func(string)) error
}
