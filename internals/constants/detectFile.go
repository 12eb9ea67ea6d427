package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindUnknown = 0
	FileKindImage   = 1
	FileKindPDF     = 2
)

func DetectFileKindFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	case ".pdf":
		return FileKindPDF
	default:
		return FileKindUnknown
	}
}
