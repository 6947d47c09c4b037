package driver

import (
	"io"
	"os"

	"grammarsmith/internal/fileset"
	"grammarsmith/internal/observ"
)

// DefaultExtension is the file suffix CheckDir looks for.
const DefaultExtension = ".calc"

// Options configures driver runs.
type Options struct {
	MaxDiagnostics int  // per file; 0 = unlimited
	NFC            bool // normalize input to NFC on load
	Eval           bool // CheckDir also evaluates files without syntax errors
	Jobs           int  // CheckDir workers; <= 0 = GOMAXPROCS
	Extension      string
	Timer          *observ.Timer // optional, collects per-pass timings
	Cache          *DiskCache    // optional, CheckDir only
}

func (o Options) loadOptions() fileset.LoadOptions {
	return fileset.LoadOptions{NFC: o.NFC}
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// Open loads path into a new FileSet. "-" reads standard input.
func Open(path string, opts Options) (*fileset.FileSet, fileset.FileID, error) {
	if path == "-" {
		return OpenReader("<stdin>", os.Stdin, opts)
	}
	fs := fileset.NewFileSet()
	id, err := fs.Load(path, opts.loadOptions())
	if err != nil {
		return nil, 0, err
	}
	return fs, id, nil
}

// OpenReader loads content from r under name into a new FileSet.
func OpenReader(name string, r io.Reader, opts Options) (*fileset.FileSet, fileset.FileID, error) {
	fs := fileset.NewFileSet()
	id, err := fs.LoadReader(name, r, opts.loadOptions())
	if err != nil {
		return nil, 0, err
	}
	return fs, id, nil
}
