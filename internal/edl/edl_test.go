package edl

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "manifest.toml"), []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
		want     Classification
	}{
		{
			name:     "dataset",
			manifest: "type = \"dataset\"\n",
			want:     Dataset,
		},
		{
			name:     "group",
			manifest: "type = \"group\"\n",
			want:     Group,
		},
		{
			name:     "collection",
			manifest: "format_version = \"1\"\ntype = \"collection\"\n",
			want:     Collection,
		},
		{
			name:     "anything else is a generic unit",
			manifest: "type = \"device\"\n",
			want:     GenericUnit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tc.manifest)
			got, err := Classify(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	t.Run("not a directory", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "plain.txt")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Classify(file)
		if !IsKind(err, KindNotFound) {
			t.Errorf("got %v, want a not-found error", err)
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := Classify(t.TempDir())
		if !IsKind(err, KindNotFound) {
			t.Errorf("got %v, want a not-found error", err)
		}
	})

	t.Run("malformed manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "type = [broken\n")
		_, err := Classify(dir)
		if !IsKind(err, KindParse) {
			t.Errorf("got %v, want a parse error", err)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "format_version = \"1\"\n")
		_, err := Classify(dir)
		if !IsKind(err, KindValidation) {
			t.Errorf("got %v, want a validation error", err)
		}
	})

	t.Run("empty type", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "type = \"\"\n")
		_, err := Classify(dir)
		if !IsKind(err, KindValidation) {
			t.Errorf("got %v, want a validation error", err)
		}
	})
}
