// Package internal holds the document traversal, table scanning and charset
// decoding used by the extractor.
package internal

const (
	builderInitialSize = 256 // Initial capacity for strings.Builder
	textSeparator      = ' ' // Joins text nodes in GetTextContent

	// Column layout of a download table row.
	colPlatform = 0
	colFileName = 1
	colFileSize = 2
	colChecksum = 3

	versionSegment = 2   // 0-based index of the version in a dash-split file name
	fileNameSep    = "-" // Separator used to split file names
)
