package core

import (
	"context"
	"path/filepath"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/edl"
	"github.com/edlkit/edl2moseq/internal/layout"
	"github.com/edlkit/edl2moseq/internal/logger"
	"github.com/edlkit/edl2moseq/internal/storage"
	"github.com/edlkit/edl2moseq/internal/tsync"
	"github.com/edlkit/edl2moseq/internal/video"
)

// Options tune a single conversion run.
type Options struct {
	// Transcode re-encodes the depth video to the FFV1 target instead
	// of copying it byte for byte. Best effort: when the encode fails
	// the converter falls back to a plain copy.
	Transcode bool
	// Progress shows a progress bar on the video copy.
	Progress bool
}

// Result reports where a conversion landed.
type Result struct {
	Dir    string
	Frames int
	Encode video.EncodeResult
}

// Convert reformats one EDL collection into the flat MoSeq layout:
// <root>/<Subject>_<Session>_<StartTime>/ with depth.avi, metadata.json
// and depth_ts.txt.
//
// Failures abort immediately with no rollback; files written before the
// failing step stay in place. Re-running on the same collection
// overwrites the previous output.
func Convert(ctx context.Context, root string, opts Options) (Result, error) {
	log := logger.Log.WithField("scope", "convert")
	var res Result

	class, err := edl.Classify(root)
	if err != nil {
		return res, err
	}
	if class != edl.Collection {
		return res, edl.Validation("expected %s, but got %s", edl.Collection, class)
	}

	paths, err := layout.ResolveCollection(root)
	if err != nil {
		return res, err
	}
	log.Debugf("resolved video=%s tsync=%s", paths.Video, paths.Tsync)

	timestamps, err := tsync.Decode(paths.Tsync)
	if err != nil {
		return res, err
	}
	if len(timestamps) == 0 {
		return res, edl.Validation("time-sync file %q contains no timestamps", paths.Tsync)
	}
	res.Frames = len(timestamps)

	md, err := readMetadata(paths.Metadata)
	if err != nil {
		return res, err
	}
	dirName, err := md.DirName()
	if err != nil {
		return res, err
	}

	moseqDir := filepath.Join(root, dirName)
	if err := storage.CreateDir(moseqDir); err != nil {
		return res, err
	}
	res.Dir = moseqDir

	videoDst := filepath.Join(moseqDir, config.OutVideoFile)
	res.Encode = video.EncodeResult{Status: video.EncodeSkipped}
	if opts.Transcode {
		res.Encode = video.Encode(ctx, paths.Video, videoDst)
	}
	if res.Encode.Status != video.EncodeOK {
		if res.Encode.Status == video.EncodeFailed {
			log.Warnf("transcode failed, copying the original video instead")
		}
		if err := storage.CopyFile(paths.Video, videoDst, opts.Progress); err != nil {
			return res, err
		}
	}

	metaDst := filepath.Join(moseqDir, config.OutMetaFile)
	if err := storage.CopyFile(paths.Metadata, metaDst, false); err != nil {
		return res, err
	}

	tsDst := filepath.Join(moseqDir, config.OutTsFile)
	if err := storage.WriteTimestamps(tsDst, timestamps); err != nil {
		return res, err
	}

	log.Infof("MoSeq directory created at %s", moseqDir)
	log.Infof("Video copied to %s", videoDst)
	log.Infof("Timestamps file copied to %s", tsDst)
	log.Infof("Metadata copied to %s", metaDst)

	return res, nil
}

// Inspect prints what a conversion of root would use, without writing
// anything.
func Inspect(root string) error {
	log := logger.Log

	class, err := edl.Classify(root)
	if err != nil {
		return err
	}
	log.Infof("EDL type: %s", class)
	if class != edl.Collection {
		return nil
	}

	paths, err := layout.ResolveCollection(root)
	if err != nil {
		return err
	}
	log.Infof("Metadata:  %s", paths.Metadata)
	log.Infof("Video:     %s", paths.Video)
	log.Infof("Time-sync: %s", paths.Tsync)

	timestamps, err := tsync.Decode(paths.Tsync)
	if err != nil {
		return err
	}
	log.Infof("Frames:    %d", len(timestamps))

	frac, err := tsync.DroppedFrameFraction(timestamps, config.ExpectedFPS, config.DiffScale)
	if err != nil {
		log.Infof("Dropped frames: n/a (%v)", err)
		return nil
	}
	log.Infof("Dropped frames: %.2f%%", frac*100)
	return nil
}
