// Package dlmeta extracts download metadata (platform, version, file size,
// checksum) from the download table of a saved HTML page.
package dlmeta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cybergodev/dlmeta/internal"
	"github.com/cybergodev/dlmeta/internal/logger"
	"golang.org/x/net/html"
)

// Default configuration values.
const (
	DefaultMaxInputSize = 50 * 1024 * 1024 // 50MB
	DefaultMaxDepth     = 0                // no limit beyond the parser's own 512-element cap
	DefaultPlatform     = "Linux"
	DefaultTableClass   = "download"
	DefaultCharset      = "utf-8"
	DefaultFile         = "studio.html"

	// CharsetAuto sniffs the charset from a BOM or <meta charset>.
	CharsetAuto = internal.CharsetAuto
)

// Record is the metadata read from one download table row.
type Record struct {
	Platform string `json:"platform" yaml:"platform"`
	Version  string `json:"version" yaml:"version"`
	FileSize string `json:"fsize" yaml:"fsize"`
	SHA256   string `json:"sha256" yaml:"sha256"`
}

// Config holds extractor configuration.
type Config struct {
	MaxInputSize int

	// MaxDepth rejects documents nested deeper than this; 0 disables the check.
	// html.Parse refuses more than 512 open elements regardless.
	MaxDepth int

	// Platform is matched case-sensitively as a substring of the first cell.
	Platform string

	// TableClass selects the table by class token.
	TableClass string

	// Charset is "utf-8", "auto" or any WHATWG encoding label.
	Charset string

	// SkipMalformedRows logs and skips matching rows that cannot be parsed
	// instead of failing the extraction.
	SkipMalformedRows bool
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MaxInputSize: DefaultMaxInputSize,
		MaxDepth:     DefaultMaxDepth,
		Platform:     DefaultPlatform,
		TableClass:   DefaultTableClass,
		Charset:      DefaultCharset,
	}
}

func validateConfig(c Config) error {
	switch {
	case c.MaxInputSize <= 0:
		return fmt.Errorf("%w: MaxInputSize must be positive", ErrInvalidConfig)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: MaxDepth cannot be negative", ErrInvalidConfig)
	case c.Platform == "":
		return fmt.Errorf("%w: Platform cannot be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.TableClass) == "" || strings.ContainsAny(c.TableClass, " \t\n"):
		return fmt.Errorf("%w: TableClass must be a single class name", ErrInvalidConfig)
	case !internal.IsKnownCharset(c.Charset):
		return fmt.Errorf("%w: unknown Charset %q", ErrInvalidConfig, c.Charset)
	}
	return nil
}

// Extractor reads download records from HTML documents. It holds no
// per-document state and may be reused.
type Extractor struct {
	config Config
}

// New creates an Extractor with the given configuration.
func New(config Config) (*Extractor, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return &Extractor{config: config}, nil
}

// NewWithDefaults creates an Extractor with default configuration.
func NewWithDefaults() *Extractor {
	e, _ := New(DefaultConfig())
	return e
}

// Config returns a copy of the extractor configuration.
func (e *Extractor) Config() Config {
	return e.config
}

// Extract scans htmlContent for the download table and returns the record of
// the last data row whose platform label contains the configured platform.
// A nil record with a nil error means no row matched or no table exists.
func (e *Extractor) Extract(htmlContent string) (*Record, error) {
	if len(htmlContent) > e.config.MaxInputSize {
		return nil, fmt.Errorf("%w: size=%d, max=%d", ErrInputTooLarge, len(htmlContent), e.config.MaxInputSize)
	}
	if strings.TrimSpace(htmlContent) == "" {
		return nil, nil
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHTML, err)
	}
	if e.config.MaxDepth > 0 && internal.ExceedsDepth(doc, e.config.MaxDepth) {
		return nil, ErrMaxDepthExceeded
	}
	return e.extractFromDocument(doc, htmlContent)
}

// ExtractBytes decodes data with the configured charset and extracts from it.
func (e *Extractor) ExtractBytes(data []byte) (*Record, error) {
	if len(data) > e.config.MaxInputSize {
		return nil, fmt.Errorf("%w: size=%d, max=%d", ErrInputTooLarge, len(data), e.config.MaxInputSize)
	}
	text, name, err := internal.DecodeToUTF8(data, e.config.Charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	logger.Logger().Debugw("decoded input", "charset", name, "bytes", len(data))
	return e.Extract(text)
}

// ExtractFromFile reads the HTML file at filePath and extracts from it.
func (e *Extractor) ExtractFromFile(filePath string) (*Record, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("read file %q: %w", filePath, err)
	}
	logger.Logger().Debugw("loaded input", "path", filePath, "bytes", len(data))
	return e.ExtractBytes(data)
}

func (e *Extractor) extractFromDocument(doc *html.Node, src string) (*Record, error) {
	log := logger.Logger()

	table := internal.FindDownloadTable(doc, e.config.TableClass)
	if table == nil {
		log.Debugw("download table not found", "class", e.config.TableClass)
		return nil, nil
	}

	declaredTBody := internal.SourceHasTBody(src, e.config.TableClass)
	rows := internal.DataRows(table, declaredTBody)
	log.Debugw("scanning download table", "rows", len(rows), "tbody", declaredTBody)

	var record *Record
	for i, row := range rows {
		cells := internal.RowCells(row)

		platform, err := internal.PlatformLabel(cells)
		if err != nil {
			if err := e.rowFailed(i, "", err); err != nil {
				return nil, err
			}
			continue
		}
		if !strings.Contains(platform, e.config.Platform) {
			continue
		}

		fields, err := internal.ParseRow(cells)
		if err != nil {
			if err := e.rowFailed(i, platform, err); err != nil {
				return nil, err
			}
			continue
		}

		if record != nil {
			log.Debugw("later row replaces earlier match", "row", i+1, "previous", record.Platform)
		}
		record = &Record{
			Platform: fields.Platform,
			Version:  fields.Version,
			FileSize: fields.FileSize,
			SHA256:   fields.Checksum,
		}
		log.Debugw("row matched", "row", i+1, "platform", fields.Platform, "file", fields.FileName)
	}
	return record, nil
}

// rowFailed returns the row error, or nil after logging it when malformed
// rows are skipped.
func (e *Extractor) rowFailed(idx int, platform string, err error) error {
	rowErr := &RowError{Row: idx + 1, Platform: platform, Err: err}
	if !e.config.SkipMalformedRows {
		return rowErr
	}
	logger.Logger().Warnw("skipping malformed row", "row", rowErr.Row, "error", err)
	return nil
}

// Extract extracts with the default configuration.
func Extract(htmlContent string) (*Record, error) {
	return NewWithDefaults().Extract(htmlContent)
}

// ExtractFromFile extracts from the file at filePath with the default configuration.
func ExtractFromFile(filePath string) (*Record, error) {
	return NewWithDefaults().ExtractFromFile(filePath)
}
