package store

import (
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for an imported map file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Matches reports whether two fingerprints describe the same file contents.
// Modification times are compared to the microsecond, the precision DuckDB
// keeps for timestamps.
func (f FileFingerprint) Matches(o FileFingerprint) bool {
	return f.Path == o.Path && f.Size == o.Size &&
		f.ModTime.Truncate(time.Microsecond).Equal(o.ModTime.Truncate(time.Microsecond))
}
