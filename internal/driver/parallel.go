package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"grammarsmith/internal/diag"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/trace"
	"grammarsmith/source"
)

// CheckResult содержит результат проверки одного файла
type CheckResult struct {
	Path       string         // путь к файлу
	FileID     fileset.FileID // ID файла в FileSet; пустой виртуальный файл, если LoadErr != nil
	LoadErr    error
	Bag        *diag.Bag
	Tokens     int
	Statements int
	Cached     bool
	Elapsed    time.Duration
}

// Summary aggregates a directory check.
type Summary struct {
	Files    int
	Failed   int // files with at least one error
	Errors   int
	Warnings int
	Cached   int
}

// Summarize counts diagnostics of results.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Cached {
			s.Cached++
		}
		if r.Bag == nil {
			continue
		}
		if r.Bag.HasErrors() {
			s.Failed++
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			}
		}
	}
	return s
}

// MergeBags collects every diagnostic of results into one sorted bag.
func MergeBags(results []CheckResult) *diag.Bag {
	all := diag.NewBag(0)
	for _, r := range results {
		if r.Bag != nil {
			all.Merge(r.Bag)
		}
	}
	all.Sort()
	all.Dedup()
	return all
}

// ListFiles возвращает отсортированный список файлов с расширением ext в dir
func ListFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir lexes, parses and optionally evaluates every matching file under
// dir in parallel. Files are loaded up front so the FileSet is only read by
// the workers. Results keep the order of ListFiles.
func CheckDir(ctx context.Context, dir string, opts Options, sink ProgressSink) (*fileset.FileSet, []CheckResult, error) {
	files, err := ListFiles(dir, opts.extension())
	if err != nil {
		return nil, nil, err
	}

	fileSet := fileset.NewFileSetWithBase(dir)
	results := make([]CheckResult, len(files))
	if len(files) == 0 {
		return fileSet, results, nil
	}

	for i, path := range files {
		results[i].Path = path
		id, err := fileSet.Load(path, opts.loadOptions())
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			results[i].LoadErr = err
			results[i].FileID = fileSet.AddVirtual(path, nil)
			continue
		}
		results[i].FileID = id
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален, мьютекс не нужен
			return checkOne(gctx, fileSet, &results[i], opts, sink)
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func checkOne(ctx context.Context, fileSet *fileset.FileSet, res *CheckResult, opts Options, sink ProgressSink) error {
	started := time.Now()
	res.Bag = diag.NewBag(opts.MaxDiagnostics)

	if res.LoadErr != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + res.LoadErr.Error(),
			File:     res.FileID,
			Primary:  source.Span{},
		})
		emit(sink, Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: res.LoadErr})
		return nil
	}

	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file:"+res.Path)
	defer func() {
		res.Elapsed = time.Since(started)
		span.End(fmt.Sprintf("%d diagnostics", res.Bag.Len()))
		status := StatusDone
		if res.Bag.HasErrors() {
			status = StatusError
		}
		stage := StageParse
		if opts.Eval {
			stage = StageEval
		}
		emit(sink, Event{File: res.Path, Stage: stage, Status: status, Elapsed: res.Elapsed})
	}()

	file := fileSet.Get(res.FileID)
	key := CacheKey(file.Hash, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			for _, d := range payload.Diags {
				d.File = res.FileID
				res.Bag.Add(d)
			}
			res.Tokens, res.Statements, res.Cached = payload.Tokens, payload.Statements, true
			return nil
		}
	}

	emit(sink, Event{File: res.Path, Stage: StageLex, Status: StatusWorking})
	tr, err := Tokenize(ctx, fileSet, res.FileID, opts)
	if err != nil {
		return err
	}
	emit(sink, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	pr, err := parseTokens(ctx, tr, res.FileID, opts)
	if err != nil {
		return err
	}
	if opts.Eval {
		emit(sink, Event{File: res.Path, Stage: StageEval, Status: StatusWorking})
		if _, err := evalProgram(ctx, pr, res.FileID, opts); err != nil {
			return err
		}
	}

	res.Bag = pr.Bag
	res.Tokens = len(pr.Tokens)
	res.Statements = len(pr.Program.Stmts)

	if opts.Cache != nil {
		diags := make([]diag.Diagnostic, 0, res.Bag.Len())
		for _, d := range res.Bag.Items() {
			d.File = 0
			diags = append(diags, d)
		}
		// кэш необязателен: ошибка записи не валит проверку
		_ = opts.Cache.Put(key, &DiskPayload{
			Path:        res.Path,
			ContentHash: file.Hash,
			Tokens:      res.Tokens,
			Statements:  res.Statements,
			Diags:       diags,
		})
	}
	return nil
}
