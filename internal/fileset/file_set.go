package fileset

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"

	"grammarsmith/source"
)

// FileSet owns every source buffer of a run and turns spans into line and
// column positions. A path may be added more than once; each Add gets a new
// FileID and lookups by path return the newest.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

// LoadOptions tweaks how Load prepares file content.
type LoadOptions struct {
	NFC bool // compose to Unicode Normalization Form C
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: map[string]FileID{}}
}

// NewFileSetWithBase is NewFileSet with relative paths computed against
// baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	s := NewFileSet()
	s.baseDir = baseDir
	return s
}

func (s *FileSet) SetBaseDir(dir string) { s.baseDir = dir }

// BaseDir returns the base directory, or the working directory when unset.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

func (s *FileSet) Len() int { return len(s.files) }

// Add stores already normalized content under path.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("fileset: too many files: %w", err))
	}
	id, path := FileID(n), normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		Lines:   source.NewLineIndexBytes(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	s.byPath[path] = id
	return id
}

// AddVirtual adds in-memory content (tests, generated input) as is.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Load reads path from disk and adds it after normalization: invalid UTF-8
// is rejected, a BOM is stripped, CRLF becomes LF and, with opts.NFC, the
// text is composed.
func (s *FileSet) Load(path string, opts LoadOptions) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the user
	if err != nil {
		return 0, err
	}
	return s.load(path, content, 0, opts)
}

// LoadReader is Load for input that has no file behind it, such as stdin.
func (s *FileSet) LoadReader(name string, r io.Reader, opts LoadOptions) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return s.load(name, content, FileVirtual, opts)
}

// normStep is one content rewrite of load and the flag it sets on change.
type normStep struct {
	apply func([]byte) ([]byte, bool)
	flag  FileFlags
}

func (s *FileSet) load(path string, content []byte, flags FileFlags, opts LoadOptions) (FileID, error) {
	if !utf8.Valid(content) {
		return 0, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	steps := []normStep{{removeBOM, FileHadBOM}, {normalizeCRLF, FileNormalizedCRLF}}
	if opts.NFC {
		steps = append(steps, normStep{normalizeNFC, FileNormalizedNFC})
	}
	for _, step := range steps {
		var changed bool
		if content, changed = step.apply(content); changed {
			flags |= step.flag
		}
	}
	return s.Add(path, content, flags), nil
}

func (s *FileSet) Get(id FileID) *File { return &s.files[id] }

// GetLatest returns the newest FileID added under path.
func (s *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := s.byPath[normalizePath(path)]
	return id, ok
}

func (s *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := s.GetLatest(path)
	if !ok {
		return nil, false
	}
	return &s.files[id], true
}

// Resolve converts both ends of span in file id to line and column.
func (s *FileSet) Resolve(id FileID, span source.Span) (start, end LineCol) {
	f := s.Get(id)
	return f.LineCol(span.Start), f.LineCol(span.End)
}

func (f *File) Text() string { return string(f.Content) }

// LineCol resolves pos to a 1-based line and byte column.
func (f *File) LineCol(pos source.BytePos) LineCol {
	line := f.Lines.Line(pos)
	start, _ := f.Lines.LineStart(line)
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("fileset: line %d: %w", line, err))
	}
	return LineCol{Line: l, Col: uint32(pos-start) + 1}
}

// GetLine returns the 1-based line without its newline, "" past the end.
func (f *File) GetLine(lineNum uint32) string {
	start, ok := f.Lines.LineStart(int(lineNum))
	if !ok {
		return ""
	}
	end, _ := f.Lines.LineEnd(int(lineNum))
	return string(f.Content[start:end])
}

// FormatPath renders Path for diagnostics. mode is one of absolute,
// relative, basename or auto; auto keeps relative and short paths and cuts
// long absolute ones to the base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := relativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
