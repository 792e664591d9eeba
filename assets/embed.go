// Package assets embeds the default word list so the server and the
// console driver work without any configured files.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed dictionary.txt
var FS embed.FS

// DictionaryName is the embedded word list's file name inside FS.
const DictionaryName = "dictionary.txt"

// OpenDictionary opens the embedded word list for reading.
func OpenDictionary() (fs.File, error) {
	return FS.Open(DictionaryName)
}
