package session

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

type recordingStore struct {
	key  string
	data []byte
	err  error
}

func (r *recordingStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	r.key = key
	r.data = data
	return key, r.err
}

func TestExportWithoutArtifactFails(t *testing.T) {
	s := newTestSession(&fakeGateway{}, &fakeGate{})
	s.store = &recordingStore{}

	_, err := s.Export(context.Background())
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestExportWritesTimestampedName(t *testing.T) {
	store := &recordingStore{}
	s := newTestSession(&fakeGateway{}, &fakeGate{})
	s.store = store
	s.IngestFile("image/png", []byte("pixels"))

	key, err := s.Export(context.Background())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	// The test session pins the clock to unix 1700000000.
	if key != "studio-1700000000.png" {
		t.Fatalf("key = %q", key)
	}
	if string(store.data) != "pixels" {
		t.Fatalf("stored bytes = %q", store.data)
	}
}

func TestExportVideoUsesMP4Extension(t *testing.T) {
	store := &recordingStore{}
	s := newTestSession(&fakeGateway{}, &fakeGate{})
	s.store = store
	s.IngestFile("video/mp4", []byte("frames"))

	key, err := s.Export(context.Background())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if key != "studio-1700000000.mp4" {
		t.Fatalf("key = %q", key)
	}
}

func TestArchiveHistoryPacksGeneratedArtifacts(t *testing.T) {
	gw := &fakeGateway{generate: func(req genai.ImageRequest) (*genai.Payload, error) {
		return imagePayload(), nil
	}}
	s := newTestSession(gw, &fakeGate{})
	s.SetPrompt("one")
	if err := s.Dispatch(context.Background(), domain.ToolImageGenerate); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	s.SetPrompt("two")
	if err := s.Dispatch(context.Background(), domain.ToolImageGenerate); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	blob := s.ArchiveHistory()
	if len(blob) == 0 {
		t.Fatal("expected a non-empty archive")
	}
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive entries = %d, want 2", len(zr.File))
	}
	if !strings.HasPrefix(zr.File[0].Name, "01-") {
		t.Fatalf("first entry = %q, want newest-first numbering", zr.File[0].Name)
	}
}
