package registration

import (
	"fmt"
	"strings"
)

// FileSelection is the single candidate abstract file. Replacing it discards
// the previous selection.
type FileSelection struct {
	Name     string
	MimeType string
	Size     int64
	Content  []byte
}

// FileSource records how a file was chosen. Both sources are validated the same way.
type FileSource string

const (
	SourcePicker FileSource = "picker"
	SourceDrop   FileSource = "drop"
)

// FileRules constrains the abstract upload.
type FileRules struct {
	MimeType  string
	TypeLabel string // human name of the type, e.g. "PDF"
	MaxSizeMB int
}

// DefaultFileRules accepts PDF files up to 10 MiB.
func DefaultFileRules() FileRules {
	return FileRules{
		MimeType:  "application/pdf",
		TypeLabel: "PDF",
		MaxSizeMB: 10,
	}
}

// TypeLabelFor derives a display label from a MIME type: the upper-cased
// subtype, so "application/pdf" becomes "PDF".
func TypeLabelFor(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok || sub == "" {
		return strings.ToUpper(mimeType)
	}
	sub, _, _ = strings.Cut(sub, ";")
	return strings.ToUpper(strings.TrimSpace(sub))
}

// MaxBytes is the inclusive size limit in bytes.
func (r FileRules) MaxBytes() int64 {
	return int64(r.MaxSizeMB) * 1024 * 1024
}

// FileStyle is the presentation hint for the selected-file line.
type FileStyle string

const (
	FileStyleNone    FileStyle = ""
	FileStyleValid   FileStyle = "valid"
	FileStyleInvalid FileStyle = "invalid"
)

// MsgFileRequired is reported when no abstract has been selected.
const MsgFileRequired = "Abstract file is required"

// FileStatus is the outcome of checking the file slot.
type FileStatus struct {
	OK          bool
	Error       string
	DisplayText string
	Style       FileStyle
}

// CheckFile validates the current selection. A nil file is reported as
// missing without invalid styling.
func CheckFile(file *FileSelection, rules FileRules) FileStatus {
	switch {
	case file == nil:
		return FileStatus{Error: MsgFileRequired, Style: FileStyleNone}
	case file.MimeType != rules.MimeType:
		return FileStatus{
			Error: fmt.Sprintf("Please upload a %s file", rules.TypeLabel),
			Style: FileStyleInvalid,
		}
	case file.Size > rules.MaxBytes():
		return FileStatus{
			Error: fmt.Sprintf("File size must be less than %dMB", rules.MaxSizeMB),
			Style: FileStyleInvalid,
		}
	default:
		return FileStatus{
			OK:          true,
			DisplayText: "Selected file: " + file.Name,
			Style:       FileStyleValid,
		}
	}
}
