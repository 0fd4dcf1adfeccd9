package core

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edlkit/edl2moseq/internal/edl"
	"github.com/edlkit/edl2moseq/internal/tsync"
)

const testMetadata = `{"SubjectName":"M1","SessionName":"S1","StartTime":"2024-01-01T00:00:00"}`

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func tsyncData(t *testing.T, usecs []uint64) []byte {
	t.Helper()
	var buf bytes.Buffer
	hdr := struct {
		Magic   uint32
		Version uint16
		Flags   uint16
		Count   uint32
	}{Magic: tsync.MagicCurrent, Version: 1, Count: uint32(len(usecs))}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatal(err)
	}
	for i, us := range usecs {
		if err := binary.Write(&buf, binary.LittleEndian, [2]uint64{uint64(i), us}); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

// makeCollection builds a minimal valid EDL collection with the given
// tsync payload.
func makeCollection(t *testing.T, usecs []uint64) string {
	t.Helper()
	root := t.TempDir()
	write(t, filepath.Join(root, "manifest.toml"), []byte("type = \"collection\"\n"))
	write(t, filepath.Join(root, "orbbec-femto-camera", "metadata.json"), []byte(testMetadata))
	sensorDir := filepath.Join(root, "videos", "orbbec-femto-camera")
	write(t, filepath.Join(sensorDir, "cam.mp4"), []byte("fake depth video"))
	write(t, filepath.Join(sensorDir, "cam.tsync"), tsyncData(t, usecs))
	return root
}

func TestConvert(t *testing.T) {
	usecs := []uint64{33333, 66666, 99999}
	root := makeCollection(t, usecs)

	res, err := Convert(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Frames != len(usecs) {
		t.Errorf("got %d frames, want %d", res.Frames, len(usecs))
	}

	wantDir := filepath.Join(root, "M1_S1_2024-01-01T00:00:00")
	if res.Dir != wantDir {
		t.Errorf("got dir %q, want %q", res.Dir, wantDir)
	}

	entries, err := os.ReadDir(wantDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"depth.avi", "depth_ts.txt", "metadata.json"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("got files %v, want %v", names, want)
	}

	// video copied byte for byte
	videoData, err := os.ReadFile(filepath.Join(wantDir, "depth.avi"))
	if err != nil {
		t.Fatal(err)
	}
	if string(videoData) != "fake depth video" {
		t.Errorf("video content mangled: %q", videoData)
	}

	// metadata copied verbatim
	metaData, err := os.ReadFile(filepath.Join(wantDir, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(metaData) != testMetadata {
		t.Errorf("metadata content mangled: %q", metaData)
	}

	// one timestamp line per tsync entry
	tsData, err := os.ReadFile(filepath.Join(wantDir, "depth_ts.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(tsData), "\n"), "\n")
	if len(lines) != len(usecs) {
		t.Fatalf("got %d timestamp lines, want %d", len(lines), len(usecs))
	}
	if lines[0] != "33.333" {
		t.Errorf("got first timestamp %q, want 33.333", lines[0])
	}
}

func TestConvertIdempotent(t *testing.T) {
	root := makeCollection(t, []uint64{33333, 66666})

	first, err := Convert(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Convert(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Dir != second.Dir {
		t.Fatalf("runs disagree on dir: %q vs %q", first.Dir, second.Dir)
	}

	entries, err := os.ReadDir(second.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d files after second run, want 3", len(entries))
	}
}

func TestConvertRejectsNonCollection(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "manifest.toml"), []byte("type = \"dataset\"\n"))

	_, err := Convert(context.Background(), root, Options{})
	if !edl.IsKind(err, edl.KindValidation) {
		t.Errorf("got %v, want a validation error", err)
	}
}

func TestConvertEmptyTsync(t *testing.T) {
	root := makeCollection(t, nil)

	_, err := Convert(context.Background(), root, Options{})
	if !edl.IsKind(err, edl.KindValidation) {
		t.Fatalf("got %v, want a validation error", err)
	}

	// nothing may have been written
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "manifest.toml" && e.Name() != "orbbec-femto-camera" && e.Name() != "videos" {
			t.Errorf("unexpected entry %q created in root", e.Name())
		}
	}
}

func TestConvertMissingSensorDir(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "manifest.toml"), []byte("type = \"collection\"\n"))
	write(t, filepath.Join(root, "orbbec-femto-camera", "metadata.json"), []byte(testMetadata))

	_, err := Convert(context.Background(), root, Options{})
	if !edl.IsKind(err, edl.KindNotFound) {
		t.Fatalf("got %v, want a not-found error", err)
	}

	// fails before any destination directory exists
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != "orbbec-femto-camera" {
			t.Errorf("unexpected directory %q created in root", e.Name())
		}
	}
}

func TestConvertMissingMetadataField(t *testing.T) {
	root := makeCollection(t, []uint64{33333, 66666})
	write(t, filepath.Join(root, "orbbec-femto-camera", "metadata.json"),
		[]byte(`{"SubjectName":"M1","SessionName":"S1"}`))

	_, err := Convert(context.Background(), root, Options{})
	if !edl.IsKind(err, edl.KindValidation) {
		t.Errorf("got %v, want a validation error", err)
	}
}
