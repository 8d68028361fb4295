package formatter

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/log"
	"github.com/siyuan-infoblox/py-imports-group/pkg/std"
	"github.com/siyuan-infoblox/py-imports-group/pkg/utils"
)

type FormatterConfig struct {
	Fs            afero.Fs   // filesystem to read and write, the OS one when nil
	Logger        log.Logger // progress and diagnostics, discarded when nil
	Out           io.Writer  // dry-run diffs, stdout when nil; share a log.Lock writer with Logger
	PackagePrefix string     // dotted prefix of internal packages
	SourceRoot    string     // absolute root package names are computed from
	Header        []string   // comment lines written at the top of every file
	FutureImports []string   // pragma lines written after the header
	StdLibs       std.Set    // known standard library root modules
	Extensions    []string   // file extensions processed when walking directories
	Jobs          int        // files processed concurrently
	KeepGoing     bool       // keep processing after a file fails
	DryRun        bool       // print a diff instead of writing
}

// formatter handles the import grouping logic
type formatter struct {
	config FormatterConfig
}

// New creates a new formatter from config, filling in defaults
func New(config FormatterConfig) *formatter {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	if config.Logger == nil {
		config.Logger = log.NewNopLogger()
	}
	if config.Out == nil {
		config.Out = log.Lock(os.Stdout)
	}
	if config.Jobs < 1 {
		config.Jobs = 1
	}
	return &formatter{config: config}
}

// classifyImport determines which group an import belongs to
func (g *formatter) classifyImport(imp Import) ImportGroup {
	if g.config.StdLibs.Contains(imp.Module) {
		return StdGroup
	}
	if imp.Internal {
		return InternalGroup
	}
	return ThirdPartyGroup
}

// render writes the header, the future pragma, the three import groups and
// the body. Every non-empty block is followed by one blank line.
func (g *formatter) render(sf *SourceFile) []byte {
	blocks := [][]string{
		g.config.Header,
		g.config.FutureImports,
		importLines(sf.Std),
		importLines(sf.Third),
		importLines(sf.Inner),
		sf.Body,
	}

	var buf bytes.Buffer
	for _, block := range blocks {
		for _, line := range block {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		if len(block) > 0 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func importLines(imports []Import) []string {
	lines := make([]string, 0, len(imports))
	for _, imp := range imports {
		lines = append(lines, imp.String())
	}
	return lines
}

// Format rewrites content as if it were the file at path. The result is nil
// when the file holds nothing but header comments.
func (g *formatter) Format(path string, content []byte) ([]byte, error) {
	sf, err := g.parse(path, g.packageOf(path), content)
	if err != nil {
		if goerrors.Is(err, errors.ErrNoContent) {
			return nil, nil
		}
		return nil, err
	}
	return g.render(sf), nil
}

func (g *formatter) packageOf(path string) string {
	if g.config.SourceRoot == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	return utils.PackageName(g.config.SourceRoot, abs)
}

// ProcessFile rewrites a single file in place
func (g *formatter) ProcessFile(path string) error {
	logger := g.config.Logger
	logger.Infof(errors.InfoMsgProcessing, path)

	src, err := afero.ReadFile(g.config.Fs, path)
	if err != nil {
		return errors.New(errors.FileNotReadable, path, 0, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err))
	}

	output, err := g.Format(path, src)
	if err != nil {
		return err
	}
	if output == nil {
		logger.Infof(errors.InfoMsgSkippedNoCode, path)
		return nil
	}

	if g.config.DryRun {
		return g.printDiff(path, src, output)
	}
	if bytes.Equal(src, output) {
		logger.Debugf("%s is already normalized", path)
		return nil
	}
	if err := utils.AtomicWriteFile(g.config.Fs, path, output); err != nil {
		return errors.New(errors.FileNotWritable, path, 0, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err))
	}
	return nil
}

func (g *formatter) printDiff(path string, before, after []byte) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToRenderDiff, err)
	}
	if diff == "" {
		return nil
	}

	_, err = io.WriteString(g.config.Out, diff)
	return err
}

// ProcessFiles processes the given files, up to Jobs at a time. Without
// KeepGoing the first failure stops files that have not started yet.
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	var (
		processed atomic.Int64
		mu        sync.Mutex
		failures  error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(min(g.config.Jobs, max(len(filePaths), 1)))

	for _, filePath := range filePaths {
		filePath := filePath
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}

			if err := g.ProcessFile(filePath); err != nil {
				if !g.config.KeepGoing {
					return err
				}
				g.config.Logger.Errorf(errors.InfoMsgErrorProcessing, filePath, err)
				mu.Lock()
				failures = multierr.Append(failures, err)
				mu.Unlock()
				return nil
			}
			processed.Add(1)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	errorCount := len(multierr.Errors(failures))
	summary := color.GreenString(errors.InfoMsgProcessedCount, processed.Load())
	if errorCount > 0 {
		summary += color.RedString(errors.InfoMsgErrorCount, errorCount)
	}
	g.config.Logger.Info(summary)

	if errorCount > 0 {
		return fmt.Errorf("%s: %w", fmt.Sprintf(errors.ErrMsgFilesFailedToProcess, errorCount), failures)
	}
	return nil
}

// ProcessPath processes a file or, recursively, a directory
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	files, err := utils.FindSourceFiles(g.config.Fs, path, g.config.Extensions)
	if err != nil {
		return errors.New(errors.FileNotReadable, path, 0, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err))
	}
	if isDir, _ := utils.IsDirectory(g.config.Fs, path); isDir {
		g.config.Logger.Debugf("found %d files under %s (extensions: %s)", len(files), path, strings.Join(g.config.Extensions, ","))
	}
	return g.ProcessFiles(ctx, files)
}
