package core

import (
	"encoding/json"
	"os"
	"strings"
	"unicode"

	"github.com/edlkit/edl2moseq/internal/edl"
)

// SessionMetadata is the slice of metadata.json the converter needs.
// The file itself is copied to the output verbatim; these fields only
// name the destination directory.
type SessionMetadata struct {
	SubjectName string `json:"SubjectName"`
	SessionName string `json:"SessionName"`
	StartTime   string `json:"StartTime"`
}

func readMetadata(path string) (SessionMetadata, error) {
	var md SessionMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return md, edl.NotFound("cannot read metadata file %q", path)
	}
	if err := json.Unmarshal(data, &md); err != nil {
		return md, edl.ParseErr("error parsing "+path, err)
	}

	for name, v := range map[string]string{
		"SubjectName": md.SubjectName,
		"SessionName": md.SessionName,
		"StartTime":   md.StartTime,
	} {
		if v == "" {
			return md, edl.Validation("metadata is missing required field %q", name)
		}
	}
	return md, nil
}

// DirName builds the MoSeq session directory name. Fields are sanitized
// so the result is always a single path element.
func (m SessionMetadata) DirName() (string, error) {
	fields := []struct {
		name, value string
	}{
		{"SubjectName", m.SubjectName},
		{"SessionName", m.SessionName},
		{"StartTime", m.StartTime},
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		s := sanitizeName(f.value)
		if s == "" {
			return "", edl.Validation("metadata field %q is empty after sanitizing", f.name)
		}
		parts[i] = s
	}
	return strings.Join(parts, "_"), nil
}

// sanitizeName strips non-printable characters and path separators from
// a metadata field.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case unicode.IsPrint(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
