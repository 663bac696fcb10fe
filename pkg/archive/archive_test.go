package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestBuildRoundTrip(t *testing.T) {
	blob := Build([]Entry{
		{Name: "01-a.png", Data: []byte("aaa")},
		{Name: "02-b.mp4", Data: []byte("bbb")},
	})
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("entries = %d, want 2", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "aaa" {
		t.Fatalf("entry data = %q", data)
	}
}

func TestBuildEmpty(t *testing.T) {
	blob := Build(nil)
	if _, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob))); err != nil {
		t.Fatalf("empty archive must still be readable: %v", err)
	}
}
