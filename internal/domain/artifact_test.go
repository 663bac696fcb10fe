package domain

import "testing"

func TestKindFromMIME(t *testing.T) {
	if got := KindFromMIME("image/png"); got != ArtifactKindImage {
		t.Fatalf("image/png = %q", got)
	}
	if got := KindFromMIME("video/mp4"); got != ArtifactKindVideo {
		t.Fatalf("video/mp4 = %q", got)
	}
}

func TestFileExt(t *testing.T) {
	if got := ArtifactKindImage.FileExt(); got != "png" {
		t.Fatalf("image ext = %q", got)
	}
	if got := ArtifactKindVideo.FileExt(); got != "mp4" {
		t.Fatalf("video ext = %q", got)
	}
}

func TestEditViewFor(t *testing.T) {
	if got := EditViewFor(ArtifactKindImage); got != ViewImageEdit {
		t.Fatalf("image edit view = %q", got)
	}
	if got := EditViewFor(ArtifactKindVideo); got != ViewVideoEdit {
		t.Fatalf("video edit view = %q", got)
	}
}

func TestToolRequiresCredential(t *testing.T) {
	if ToolImageGenerate.RequiresCredential() || ToolImageEdit.RequiresCredential() {
		t.Fatal("image tools are not privileged")
	}
	if !ToolVideoGenerate.RequiresCredential() || !ToolVideoEdit.RequiresCredential() {
		t.Fatal("video tools are privileged")
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	locator := EncodeDataURI("image/jpeg", []byte{0xFF, 0xD8, 0x01})
	mime, data, err := DecodeDataURI(locator)
	if err != nil {
		t.Fatalf("DecodeDataURI error: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("mime = %q", mime)
	}
	if len(data) != 3 || data[0] != 0xFF {
		t.Fatalf("data = %v", data)
	}
}

func TestDecodeDataURIRejectsOtherLocators(t *testing.T) {
	if _, _, err := DecodeDataURI("https://example.com/a.png"); err == nil {
		t.Fatal("expected error for non-data locator")
	}
	if _, _, err := DecodeDataURI("data:image/png;base64"); err == nil {
		t.Fatal("expected error for malformed data URI")
	}
}
