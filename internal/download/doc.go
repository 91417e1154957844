// Package download fetches map preview images listed in a source folder
// manifest into a destination folder, reporting progress as text.
package download
