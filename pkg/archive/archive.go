// Package archive packs artifact files into a zip for bulk download.
package archive

import (
	"archive/zip"
	"bytes"
)

// Entry is one file in the archive.
type Entry struct {
	Name string
	Data []byte
}

// Build assembles the entries into a zip archive in memory.
func Build(entries []Entry) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.Name)
		if err != nil {
			continue
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}
