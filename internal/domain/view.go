package domain

// View identifies which workspace panel drives the request shape and defaults.
type View string

const (
	ViewImageGenerate View = "image-generate"
	ViewImageEdit     View = "image-edit"
	ViewVideoGenerate View = "video-generate"
	ViewVideoEdit     View = "video-edit"
	ViewHistory       View = "history"
)

// Tool enumerates the dispatchable generation tools.
type Tool string

const (
	ToolImageGenerate Tool = "image-generate"
	ToolImageEdit     Tool = "image-edit"
	ToolVideoGenerate Tool = "video-generate"
	ToolVideoEdit     Tool = "video-edit"
)

// RequiresCredential reports whether dispatching the tool is gated behind a
// selected credential. Only video tools are privileged.
func (t Tool) RequiresCredential() bool {
	return t == ToolVideoGenerate || t == ToolVideoEdit
}

// EditViewFor returns the edit view matching an artifact kind.
func EditViewFor(kind ArtifactKind) View {
	if kind == ArtifactKindVideo {
		return ViewVideoEdit
	}
	return ViewImageEdit
}
