package internal

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Row scanning errors. The root package re-exports them.
var (
	ErrMissingCell     = errors.New("dlmeta: row is missing a required cell")
	ErrMissingButton   = errors.New("dlmeta: file name cell has no button")
	ErrInvalidFileName = errors.New("dlmeta: file name has too few dash-separated segments")
)

// RowFields holds the text read from the cells of a matching row.
type RowFields struct {
	Platform string
	FileName string
	FileSize string
	Checksum string
	Version  string
}

// FindDownloadTable returns the first table element carrying class, or nil.
func FindDownloadTable(doc *html.Node, class string) *html.Node {
	return FindElement(doc, func(n *html.Node) bool {
		return n.Data == "table" && HasClass(n, class)
	})
}

// DataRows returns the rows of table minus the leading header row. Rows come
// from the first tbody only when the markup declared one (see SourceHasTBody);
// otherwise every tr under the table counts, thead rows included.
func DataRows(table *html.Node, declaredTBody bool) []*html.Node {
	if table == nil {
		return nil
	}
	container := table
	if declaredTBody {
		if tbody := FindElementByTag(table, "tbody"); tbody != nil {
			container = tbody
		}
	}
	rows := FindAllByTag(container, "tr")
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// RowCells returns the td elements under row in document order.
func RowCells(row *html.Node) []*html.Node {
	return FindAllByTag(row, "td")
}

// PlatformLabel reads the platform label from the first cell.
func PlatformLabel(cells []*html.Node) (string, error) {
	cell, err := cellAt(cells, colPlatform)
	if err != nil {
		return "", err
	}
	return GetTextContent(cell), nil
}

// ParseRow reads the file name, size and checksum cells of a matching row
// and derives the version from the file name.
func ParseRow(cells []*html.Node) (RowFields, error) {
	platform, err := PlatformLabel(cells)
	if err != nil {
		return RowFields{}, err
	}

	nameCell, err := cellAt(cells, colFileName)
	if err != nil {
		return RowFields{}, err
	}
	button := FindElementByTag(nameCell, "button")
	if button == nil {
		return RowFields{}, ErrMissingButton
	}
	fileName := GetStrippedText(button)

	sizeCell, err := cellAt(cells, colFileSize)
	if err != nil {
		return RowFields{}, err
	}
	sumCell, err := cellAt(cells, colChecksum)
	if err != nil {
		return RowFields{}, err
	}

	version, err := VersionFromFileName(fileName)
	if err != nil {
		return RowFields{}, err
	}

	return RowFields{
		Platform: platform,
		FileName: fileName,
		FileSize: GetStrippedText(sizeCell),
		Checksum: GetStrippedText(sumCell),
		Version:  version,
	}, nil
}

// VersionFromFileName returns the third dash-separated segment of name,
// e.g. "1.2.3" for "app-suite-1.2.3-x86_64.deb".
func VersionFromFileName(name string) (string, error) {
	parts := strings.Split(name, fileNameSep)
	if len(parts) <= versionSegment {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return parts[versionSegment], nil
}

func cellAt(cells []*html.Node, idx int) (*html.Node, error) {
	if idx >= len(cells) {
		return nil, fmt.Errorf("%w: want column %d, row has %d", ErrMissingCell, idx, len(cells))
	}
	return cells[idx], nil
}
