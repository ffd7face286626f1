package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		ChunkSize:    300,
		ChunkOverlap: 30,
	}
}

// parses a single document with the loader matching its extension
func LoadDocument(ctx context.Context, path string) ([]schema.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isSupported(ext) {
		return nil, fmt.Errorf("unsupported document type %q: %s", ext, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer f.Close()

	var docs []schema.Document

	switch ext {
	case ".pdf":
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
		}

		docs, err = documentloaders.NewPDF(f, info.Size()).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pdf %s: %w", path, err)
		}
	default:
		docs, err = documentloaders.NewText(f).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}

		if ext == ".md" {
			for i := range docs {
				docs[i] = withFrontmatter(docs[i])
			}
		}
	}

	for i := range docs {
		if docs[i].Metadata == nil {
			docs[i].Metadata = make(map[string]any)
		}

		docs[i].Metadata["file"] = filepath.Base(path)
	}

	return docs, nil
}

// loads a file, or every supported file below a directory, in lexical order
func LoadPath(ctx context.Context, path string) ([]schema.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	if !info.IsDir() {
		return LoadDocument(ctx, path)
	}

	var docs []schema.Document

	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isSupported(strings.ToLower(filepath.Ext(p))) {
			return nil
		}

		loaded, err := LoadDocument(ctx, p)
		if err != nil {
			return err
		}

		docs = append(docs, loaded...)

		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no supported documents found in %s", path)
	}

	return docs, nil
}

// splits documents recursively into segments tagged with their source
func Split(sourceName string, docs []schema.Document, opts SplitOptions) ([]Segment, error) {
	if opts.ChunkSize <= 0 {
		opts = DefaultSplitOptions()
	}

	if opts.ChunkOverlap >= opts.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", opts.ChunkOverlap, opts.ChunkSize)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(opts.ChunkSize),
		textsplitter.WithChunkOverlap(opts.ChunkOverlap),
	)

	var segments []Segment

	for _, doc := range docs {
		texts, err := splitter.SplitText(doc.PageContent)
		if err != nil {
			return nil, fmt.Errorf("failed to split document: %w", err)
		}

		for _, text := range texts {
			if strings.TrimSpace(text) == "" {
				continue
			}

			metadata := copyMetadata(doc.Metadata)
			metadata["source"] = sourceName
			metadata["index"] = len(segments)

			segments = append(segments, Segment{
				Text:     text,
				Metadata: metadata,
			})
		}
	}

	return segments, nil
}

// loads and splits a source in one step
func LoadSource(ctx context.Context, src Source, opts SplitOptions) ([]Segment, error) {
	docs, err := LoadPath(ctx, src.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("source %s: %w (set SOURCES_FILE to a JSON list of your own sources)", src.Name, err)
	}

	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}

	segments, err := Split(src.Name, docs, opts)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}

	return segments, nil
}
