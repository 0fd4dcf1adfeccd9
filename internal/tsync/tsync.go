package tsync

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/edl"
	"github.com/edlkit/edl2moseq/internal/logger"
)

// Time-sync logs come in two wire layouts, both little-endian and
// discriminated by the leading u32 magic. The filename suffix is only a
// convention; detection always reads the content.
//
// current: magic, u16 version, u16 flags, u32 count,
//          then count x (u64 local time, u64 device time in microseconds)
// legacy:  magic, then (u64 index, u64 microseconds) pairs until EOF
const (
	MagicCurrent uint32 = 0xC6BAF364
	MagicLegacy  uint32 = 0x4E595354 // "TSYN"
)

type Format int

const (
	FormatCurrent Format = iota
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "current"
}

// DetectFormat probes the first bytes of the file and reports which
// layout it holds.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, edl.NotFound("cannot open time-sync file %q", path)
	}
	defer f.Close()

	var magic uint32
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return 0, edl.Validation("%q is too short to be a time-sync file", path)
	}
	switch magic {
	case MagicCurrent:
		return FormatCurrent, nil
	case MagicLegacy:
		return FormatLegacy, nil
	}
	return 0, edl.Validation("%q is not a recognized time-sync file (magic 0x%08X)", path, magic)
}

// Decode reads a time-sync log and returns one timestamp per recorded
// frame, in milliseconds, in file order. Each on-disk entry carries the
// device time as an integer count of microseconds; values are divided by
// 1000 on the way out.
//
// When more than 5% of frames look dropped a warning is logged, but the
// full series is still returned. An empty series is not an error here;
// rejecting it is the caller's job.
func Decode(path string) ([]float64, error) {
	log := logger.Log.WithField("scope", "tsync")

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("detected %s time-sync format in %q", format, path)

	f, err := os.Open(path)
	if err != nil {
		return nil, edl.NotFound("cannot open time-sync file %q", path)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var pairs [][2]uint64
	switch format {
	case FormatCurrent:
		pairs, err = readCurrent(r)
	case FormatLegacy:
		pairs, err = readLegacy(r)
	}
	if err != nil {
		return nil, edl.ParseErr(fmt.Sprintf("error reading %s time-sync file %q", format, path), err)
	}

	timestamps := make([]float64, len(pairs))
	for i, p := range pairs {
		timestamps[i] = float64(p[1]) / 1000
	}

	frac, err := DroppedFrameFraction(timestamps, config.ExpectedFPS, config.DiffScale)
	if err != nil {
		// too few samples to estimate, nothing to warn about
		log.Debugf("skipping dropped-frame check: %v", err)
	} else if frac >= config.DropWarnThreshold {
		log.Warnf("more than %.0f%% of the video's frames are dropped (estimated %.1f%%)",
			config.DropWarnThreshold*100, frac*100)
	}

	return timestamps, nil
}

type currentHeader struct {
	Magic   uint32
	Version uint16
	Flags   uint16
	Count   uint32
}

// initial entry capacity, the header count is untrusted
const preallocEntries = 1 << 16

func readCurrent(r io.Reader) ([][2]uint64, error) {
	var hdr currentHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("truncated header: %w", err)
	}
	// a hostile count must fail on read, not on allocation
	n := hdr.Count
	if n > preallocEntries {
		n = preallocEntries
	}
	pairs := make([][2]uint64, 0, n)
	for i := uint32(0); i < hdr.Count; i++ {
		var p [2]uint64
		if err := binary.Read(r, binary.LittleEndian, &p); err != nil {
			return nil, fmt.Errorf("truncated at entry %d of %d: %w", i, hdr.Count, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func readLegacy(r io.Reader) ([][2]uint64, error) {
	// skip the magic, then pairs run to EOF
	if _, err := io.CopyN(io.Discard, r, 4); err != nil {
		return nil, err
	}
	var pairs [][2]uint64
	for {
		var p [2]uint64
		err := binary.Read(r, binary.LittleEndian, &p)
		if err == io.EOF {
			return pairs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("truncated at entry %d: %w", len(pairs), err)
		}
		pairs = append(pairs, p)
	}
}
