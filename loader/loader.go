package loader

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/oaserrors"
)

// Loader loads specification documents through a registry of decoders keyed by
// file extension. It is safe for concurrent use.
type Loader struct {
	logger      logging.Logger
	maxFileSize int64

	mu       sync.RWMutex
	decoders map[string]Decoder
}

// New creates a Loader with the json and yaml decoders registered.
func New(opts ...Option) (*Loader, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}
	return &Loader{
		logger:      cfg.logger,
		maxFileSize: cfg.maxFileSize,
		decoders:    cfg.decoders,
	}, nil
}

// Load is a convenience wrapper around New and Loader.Load.
func Load(path string, opts ...Option) (*Document, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Register adds or replaces the decoder used for files with extension ext.
func (l *Loader) Register(ext string, d Decoder) error {
	if err := validateDecoder(ext, d); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decoders[ext] = d
	return nil
}

// Extensions returns the registered extensions in sorted order.
func (l *Loader) Extensions() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads the document at path, choosing the decoder from the text after the
// final '.' of path.
//
// Recoverable failures (empty path, missing file, unknown extension, malformed
// content) are reported through Document.Err with a nil error. A non-nil error
// means the file exists but could not be read.
func (l *Loader) Load(path string) (*Document, error) {
	if doc := l.precheck(path); doc != nil {
		return doc, nil
	}
	return l.loadWith(path, extension(path))
}

// LoadAs is like Load but uses the decoder registered for ext instead of the
// path's own extension.
func (l *Loader) LoadAs(path, ext string) (*Document, error) {
	if doc := l.precheck(path); doc != nil {
		return doc, nil
	}
	return l.loadWith(path, ext)
}

func (l *Loader) precheck(path string) *Document {
	if path == "" {
		return l.failed(path, &oaserrors.LoadError{Kind: oaserrors.KindEmptyPath})
	}
	if !isRegularFile(path) {
		return l.failed(path, &oaserrors.LoadError{Kind: oaserrors.KindNotFound, Path: path})
	}
	return nil
}

// Decode deserializes content that is already in memory, as if it had been
// read from a file called name and decoded by the decoder registered for ext.
// The size limit and the UTF-8 check apply as they do for files.
func (l *Loader) Decode(name, ext string, data []byte) (*Document, error) {
	dec, ok := l.decoder(ext)
	if !ok {
		return l.failed(name, &oaserrors.LoadError{Kind: oaserrors.KindInvalidExtension, Path: name}), nil
	}
	if l.maxFileSize > 0 && int64(len(data)) > l.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: l.maxFileSize, Actual: int64(len(data)), Message: name}
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("loader: %s is not valid UTF-8", name)
	}
	return l.decode(name, dec, data), nil
}

func (l *Loader) decoder(ext string) (Decoder, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	dec, ok := l.decoders[ext]
	return dec, ok
}

func (l *Loader) loadWith(path, ext string) (*Document, error) {
	dec, ok := l.decoder(ext)
	if !ok {
		return l.failed(path, &oaserrors.LoadError{Kind: oaserrors.KindInvalidExtension, Path: path}), nil
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	return l.decode(path, dec, data), nil
}

func (l *Loader) decode(path string, dec Decoder, data []byte) *Document {
	v, err := dec.Decode(data)
	if err != nil {
		doc := l.failed(path, &oaserrors.LoadError{Kind: oaserrors.KindMalformed, Path: path, Format: dec.Format, Cause: err})
		doc.Format = dec.Format
		doc.Size = int64(len(data))
		return doc
	}

	l.logger.Debug("loaded specification document", "path", path, "format", dec.Format, "size", len(data))
	return &Document{Path: path, Format: dec.Format, Size: int64(len(data)), Data: v}
}

func (l *Loader) failed(path string, err *oaserrors.LoadError) *Document {
	attrs := []any{"path", path, "kind", err.Kind.String()}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause.Error())
	}
	l.logger.Debug("specification document not loaded", attrs...)
	return &Document{Path: path, Err: err}
}

// readFile reads path in full. The handle is released on every return path.
func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var r io.Reader = f
	if l.maxFileSize > 0 {
		if fi, err := f.Stat(); err == nil && fi.Size() > l.maxFileSize {
			return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: l.maxFileSize, Actual: fi.Size(), Message: path}
		}
		// The file may grow between Stat and ReadAll.
		r = io.LimitReader(f, l.maxFileSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	if l.maxFileSize > 0 && int64(len(data)) > l.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: l.maxFileSize, Message: path}
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("loader: %s is not valid UTF-8", path)
	}
	return data, nil
}

// extension returns the text after the final '.', or the whole path when it
// has none.
func extension(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
