package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/edl"
	"github.com/edlkit/edl2moseq/internal/logger"
)

// EncodeStatus tells the caller what happened to a best-effort encode.
type EncodeStatus int

const (
	// EncodeSkipped - the encode was never attempted
	EncodeSkipped EncodeStatus = iota
	// EncodeFailed - attempted and failed, Err holds the reason
	EncodeFailed
	// EncodeOK - Path holds the re-encoded file
	EncodeOK
)

// EncodeResult is the outcome of one transcode attempt. Encoding is an
// enhancement, not a requirement, so failures live here instead of
// propagating to the conversion.
type EncodeResult struct {
	Status EncodeStatus
	Path   string
	Err    error
}

// Size is the spatial dimensions of a video stream.
type Size struct {
	Width  int
	Height int
}

// ProbeSize asks ffprobe for the dimensions of the first video stream.
func ProbeSize(ctx context.Context, path string) (Size, error) {
	log := logger.Log.WithField("scope", "video probe")

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "v:0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return Size{}, edl.ExternalTool(fmt.Sprintf("ffprobe %q", path), err)
	}
	log.Debugf("ffprobe output: %d bytes", len(out))

	return ParseProbeJSON(out)
}

// ParseProbeJSON extracts stream dimensions from raw ffprobe JSON.
// Exported so tests don't need an ffprobe binary.
func ParseProbeJSON(data []byte) (Size, error) {
	var raw struct {
		Streams []struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Size{}, edl.ExternalTool("parse ffprobe JSON", err)
	}
	for _, s := range raw.Streams {
		if s.Width > 0 && s.Height > 0 {
			return Size{Width: s.Width, Height: s.Height}, nil
		}
	}
	return Size{}, edl.ExternalTool("no video stream with dimensions found", nil)
}

// Encode transcodes input to the FFV1 target at dst. Any failure is
// logged and returned inside the result; the caller decides whether to
// fall back to a plain copy.
func Encode(ctx context.Context, input, dst string) EncodeResult {
	log := logger.Log.WithField("scope", "video encode")

	size, err := ProbeSize(ctx, input)
	if err != nil {
		log.Errorf("could not probe %s: %v", input, err)
		return EncodeResult{Status: EncodeFailed, Err: err}
	}
	log.Debugf("input is %dx%d", size.Width, size.Height)

	args := EncodeArgs(input, dst)
	log.Debugf("running ffmpeg %v", args)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			log.Error("ffmpeg not found, is it installed?")
		} else {
			log.Errorf("ffmpeg failed on %s: %v\n%s", input, err, stderr.String())
		}
		return EncodeResult{Status: EncodeFailed, Err: edl.ExternalTool("ffmpeg encode", err)}
	}

	return EncodeResult{Status: EncodeOK, Path: dst}
}

// EncodeArgs builds the fixed ffmpeg argument list for the lossless
// depth transcode target.
func EncodeArgs(input, dst string) []string {
	return []string{
		"-y",
		"-i", input,
		"-c:v", config.EncCodec,
		"-level", config.EncLevel,
		"-pix_fmt", config.EncPixFmt,
		"-threads", config.EncThreads,
		"-slices", config.EncSlices,
		"-slicecrc", "1",
		"-r", strconv.Itoa(config.ExpectedFPS),
		dst,
	}
}
