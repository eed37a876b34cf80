package eml2pdf

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/alnah/go-eml2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ExtractedAttachment records one attachment written to disk.
// Written once, never mutated; inline references in the resolved body
// point at Path.
type ExtractedAttachment struct {
	OriginalFilename  string
	SanitizedFilename string
	Path              string // absolute destination path
	ContentID         string // "" if the part had no Content-ID
	MIMEType          string
	Size              int
}

// ExtractAttachments writes every attachment part of msg under dir,
// creating it if needed. Filenames are sanitized and collisions resolved
// with numeric counters, so no attachment overwrites another within the
// same message. A failed write skips that attachment and records a
// warning; the rest are still written.
func ExtractAttachments(msg *ParsedMessage, dir string) ([]ExtractedAttachment, []string, error) {
	if len(msg.Attachments) == 0 {
		return nil, nil, nil
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, nil, fmt.Errorf("creating attachments directory: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving attachments directory: %w", err)
	}

	var extracted []ExtractedAttachment
	var warnings []string
	taken := make(map[string]struct{}, len(msg.Attachments))

	for i, part := range msg.Attachments {
		name := fileutil.SanitizeFilename(part.Filename)
		if name == "" {
			name = defaultAttachmentName(i+1, part.MIMEType)
		}
		name = fileutil.UniqueName(taken, name)
		taken[name] = struct{}{}

		destPath := filepath.Join(absDir, name)
		if err := os.WriteFile(destPath, part.Content, filePermissions); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to write attachment %q: %v", name, err))
			continue
		}

		extracted = append(extracted, ExtractedAttachment{
			OriginalFilename:  part.Filename,
			SanitizedFilename: name,
			Path:              destPath,
			ContentID:         part.ContentID,
			MIMEType:          part.MIMEType,
			Size:              len(part.Content),
		})
	}

	return extracted, warnings, nil
}

// defaultAttachmentName names an attachment that arrived without a usable
// filename, guessing an extension from its content type.
func defaultAttachmentName(index int, mimeType string) string {
	ext := ""
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("attachment-%d%s", index, ext)
}
