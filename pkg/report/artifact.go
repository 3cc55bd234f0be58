package report

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/layout"
)

// Artifact is a finished report: the serialized PDF plus its page outline.
type Artifact struct {
	// ID is unique per render and appears in log records.
	ID string

	// Name is the suggested file name.
	Name string

	Data     []byte
	Document *layout.Document
}

// PageCount returns the number of pages in the report.
func (a *Artifact) PageCount() int {
	if a.Document == nil {
		return 0
	}
	return a.Document.PageCount()
}

// Checksum returns the hex SHA-256 of the PDF bytes.
func (a *Artifact) Checksum() string {
	sum := sha256.Sum256(a.Data)
	return hex.EncodeToString(sum[:])
}

// ShortChecksum returns the first 12 hex digits of Checksum.
func (a *Artifact) ShortChecksum() string {
	return a.Checksum()[:12]
}

// Save writes the report into dir under its Name and returns the path.
// The data goes to a temporary file first and is renamed into place, so a
// failed write never leaves a partial report behind.
func (a *Artifact) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, a.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", rerrors.OutputWriteFailed(dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(a.Name, filepath.Ext(a.Name))+"-*.tmp")
	if err != nil {
		return "", rerrors.OutputWriteFailed(path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		cleanup()
		return "", rerrors.OutputWriteFailed(path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return "", rerrors.OutputWriteFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", rerrors.OutputWriteFailed(path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return "", rerrors.OutputWriteFailed(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", rerrors.OutputWriteFailed(path, err)
	}
	return path, nil
}

// meetingFileName derives "<stem>_mujaz_report.pdf" from the recording name,
// where stem is everything before the first dot.
func meetingFileName(name string) string {
	stem := filepath.Base(strings.TrimSpace(name))
	stem, _, _ = strings.Cut(stem, ".")
	if stem == "" || stem == "/" {
		stem = "meeting-report"
	}
	return stem + "_mujaz_report.pdf"
}

// riskFileName returns "Risk_Assessment_<customer_id>.pdf".
func riskFileName(customerID string) string {
	id := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, customerID)
	if id == "" {
		id = "unknown"
	}
	return "Risk_Assessment_" + id + ".pdf"
}
