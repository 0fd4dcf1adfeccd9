package config

const (
	// EDL layout
	ManifestFile = "manifest.toml"
	SensorName   = "orbbec-femto-camera"
	MetadataFile = "metadata.json"
	VideosDir    = "videos"
	TsyncSuffix  = ".tsync"

	// MoSeq output layout
	OutVideoFile = "depth.avi"
	OutTsFile    = "depth_ts.txt"
	OutMetaFile  = "metadata.json"
	OutDirPerm   = 0o755
	OutFilePerm  = 0o644

	// acquisition
	ExpectedFPS       = 30
	DropWarnThreshold = 0.05
	// rescale factor when a series looks like ms instead of seconds
	DiffScale = 1000

	// ffmpeg transcode target
	EncCodec   = "ffv1"
	EncPixFmt  = "yuv420p"
	EncLevel   = "3"
	EncThreads = "4"
	EncSlices  = "24"
)

// VideoExtensions are the recognized depth recording containers,
// checked in sorted directory order.
var VideoExtensions = []string{".avi", ".mkv", ".mp4"}
