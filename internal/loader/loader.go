package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
	"github.com/barlowmj/OptoTransportAnalysis/internal/files"
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	resolver files.MetadataResolver
	logger   *slog.Logger
}

// WithMetadataPath supplies an explicit metadata file, overriding the
// same-stem sibling convention.
func WithMetadataPath(path string) Option {
	return func(o *options) { o.resolver = files.ExplicitResolver{Path: path} }
}

// WithMetadataResolver installs a custom path-resolution strategy.
func WithMetadataResolver(r files.MetadataResolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithLogger routes loader warnings to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load reads a measurement file and its metadata into a Record. The data file
// kind is determined strictly by extension: .db for sweep databases, .csv for
// flat tables.
func Load(dataPath string, opts ...Option) (*dataset.Record, error) {
	o := options{logger: slog.Default(), resolver: files.SiblingResolver{}}
	for _, opt := range opts {
		opt(&o)
	}

	rec := dataset.NewRecord(dataPath)

	switch ext := strings.ToLower(filepath.Ext(dataPath)); ext {
	case ".db":
		if err := loadDB(rec, dataPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dataPath, err)
		}
	case ".csv":
		if err := loadCSV(rec, dataPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dataPath, err)
		}
	default:
		return nil, errors.UnsupportedFormat(ext)
	}

	if err := loadMetadata(rec, o); err != nil {
		return nil, err
	}
	return rec, nil
}

// loadMetadata resolves and parses the metadata file. Absence is a warning,
// not an error; an unreadable or malformed file that was explicitly named or
// discovered still aborts the load.
func loadMetadata(rec *dataset.Record, o options) error {
	mdPath := o.resolver.Resolve(rec.SourcePath)
	if mdPath == "" {
		o.logger.Warn("no metadata file found",
			slog.String("data_path", rec.SourcePath))
		return nil
	}

	if ext := strings.ToLower(filepath.Ext(mdPath)); ext != ".json" {
		return errors.UnsupportedFormat(ext)
	}

	raw, err := os.ReadFile(mdPath)
	if err != nil {
		return errors.MissingFile(mdPath, err)
	}
	md := map[string]any{}
	if err := json.Unmarshal(raw, &md); err != nil {
		return fmt.Errorf("parsing metadata %s: %w", mdPath, err)
	}
	rec.Metadata = md
	rec.MetadataPath = mdPath
	return nil
}

// WriteMetadata writes a metadata map to the same-stem .json file next to the
// given data file. Useful when data arrives second-hand without its metadata
// recorded. Returns the path written.
func WriteMetadata(dataPath string, md map[string]any) (string, error) {
	stem := strings.TrimSuffix(dataPath, filepath.Ext(dataPath))
	path := stem + ".json"
	raw, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("writing metadata %s: %w", path, err)
	}
	return path, nil
}
