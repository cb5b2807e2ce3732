package config

// PipelineOptions defines options for the full download-convert-upload pipeline
type PipelineOptions struct {
	Input        string // free text containing one or more source URLs
	OutputRoot   string // directory under which per-video artifact dirs are created
	DownloadDir  string
	Target       string // upload target name (see internal/platform)
	CompleterKey string // "gemini", "cerebras", or "none"
	DriverCmd    string // external automation helper; empty means dry-run driver
	BatchSize    int    // 0 means use the target's default
	TagSlots     int    // 0 means use the target's default
	TagCount     int
	ClipLength   int
	FrameRate    int
	TrimHead     int
	TrimTail     int
	Verbose      bool
}

// ConvertOptions defines options for converting a local video into artifacts
type ConvertOptions struct {
	InputPath  string
	OutputDir  string
	ClipLength int
	FrameRate  int
	TrimHead   int
	TrimTail   int
	Verbose    bool
}

// TagOptions defines options for standalone tag generation
type TagOptions struct {
	Title        string
	Description  string
	Hints        []string
	CompleterKey string
	TagCount     int
	Verbose      bool
}

const (
	// Clip extraction defaults
	DefaultClipLength = 3  // seconds per artifact
	DefaultFrameRate  = 15 // GIF frame rate
	GIFScaleWidth     = 480

	// Tagging defaults
	DefaultTagCount = 14

	// Artifact naming: artifact_<1-based index>.gif
	ArtifactNameFormat  = "artifact_%d.gif"
	ArtifactDirSuffix   = ".gifs"
	MaxArtifactDirTitle = 100

	// Download defaults
	DefaultDownloadDirName = "downloads"
)

// DefaultTags pads generated tag sets up to the target cardinality when the
// completion backend returns too few usable tags.
var DefaultTags = []string{
	"#gif", "#animation", "#funny", "#meme", "#trending", "#viral",
	"#entertainment", "#comedy", "#dance", "#viralvideo", "#fun", "#lol",
	"#popular", "#fyp",
}
