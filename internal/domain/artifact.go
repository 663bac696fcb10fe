package domain

import (
	"strings"
	"time"
)

// ArtifactKind enumerates the media types an artifact can hold.
type ArtifactKind string

const (
	ArtifactKindImage ArtifactKind = "image"
	ArtifactKindVideo ArtifactKind = "video"
)

// OriginUploaded is the origin-prompt sentinel for artifacts that entered the
// session via file drop rather than generation.
const OriginUploaded = "Uploaded file"

// Artifact is a produced or uploaded media item. Artifacts are immutable after
// creation and shared by reference between the current selection and history.
type Artifact struct {
	ID           string       `json:"id"`
	Kind         ArtifactKind `json:"kind"`
	Locator      string       `json:"locator"`
	OriginPrompt string       `json:"origin_prompt"`
	CreatedAt    time.Time    `json:"created_at"`
}

// KindFromMIME infers the artifact kind from a declared media type.
func KindFromMIME(mime string) ArtifactKind {
	if strings.HasPrefix(mime, "image/") {
		return ArtifactKindImage
	}
	return ArtifactKindVideo
}

// FileExt returns the canonical download extension for the kind.
func (k ArtifactKind) FileExt() string {
	if k == ArtifactKindVideo {
		return "mp4"
	}
	return "png"
}
