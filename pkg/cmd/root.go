package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/siyuan-infoblox/py-imports-group/pkg/config"
	"github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/py-imports-group/pkg/log"
	"github.com/siyuan-infoblox/py-imports-group/pkg/std"
	"github.com/siyuan-infoblox/py-imports-group/pkg/utils"
	"github.com/siyuan-infoblox/py-imports-group/pkg/version"
)

const (
	UseDescription   = "pig [flags] PATH"
	ShortDescription = "Python imports grouper - rewrite Python import blocks into sorted groups"
	LongDescription  = `pig rewrites the leading import block of Python source files.

Every file gets a canonical header comment and from __future__ block,
followed by its imports in three sorted groups:
1. Python standard library
2. Third-party packages
3. Internal packages (under --package-prefix, rendered without the prefix)

The rest of the file is kept as is. Relative imports are made absolute
using the package computed from the file's position under the source root.

PATH can be either a single file or a directory. A directory is walked
recursively and every file in it is rewritten, unless --ext narrows the
selection. Settings are read from the nearest pyimports.toml above PATH;
flags take precedence.`
)

// options holds the flag values of one command instance
type options struct {
	configPath    string
	packagePrefix string
	sourceRoot    string
	extensions    []string
	jobs          int
	keepGoing     bool
	dryRun        bool
	verbose       bool
	showVersion   bool
}

// NewRootCommand builds the root command working on fs
func NewRootCommand(fs afero.Fs) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		Args:         opts.validateArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, fs, args)
		},
	}
	opts.bindFlags(cmd.PersistentFlags())
	return cmd
}

func (o *options) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "Path to a "+config.FileName+" file (default: nearest one above PATH)")
	flags.StringVar(&o.packagePrefix, "package-prefix", config.DefaultPackagePrefix, "Dotted prefix of internal packages (e.g., twitter.pants)")
	flags.StringVar(&o.sourceRoot, "source-root", "", "Directory package names are computed from (default: nearest src/python or src above PATH)")
	flags.StringSliceVar(&o.extensions, "ext", []string{}, "Comma-separated file extensions to process when walking directories (e.g., .py)")
	flags.IntVarP(&o.jobs, "jobs", "j", 1, "Number of files processed concurrently")
	flags.BoolVar(&o.keepGoing, "keep-going", false, "Process every file and report all failures instead of stopping at the first")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Print a unified diff instead of modifying files")
	flags.BoolVar(&o.verbose, "verbose", false, "Print debug messages")
	flags.BoolVarP(&o.showVersion, "version", "v", false, "Show version information")
}

func (o *options) validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if o.showVersion {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func (o *options) run(cmd *cobra.Command, fs afero.Fs, args []string) error {
	// Handle version flag
	if o.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}
	if o.jobs < 1 {
		return fmt.Errorf(errors.ErrMsgInvalidJobs)
	}

	out := log.Lock(cmd.OutOrStdout())
	logger := log.NewCliLogger(out, cmd.ErrOrStderr(), o.verbose)
	defer func() { _ = logger.Sync() }()

	path := args[0]
	cfg, err := o.loadConfig(cmd.Flags(), fs, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}
	if cfg.Path != "" {
		logger.Debugf(errors.InfoMsgUsingConfig, cfg.Path)
	}

	sourceRoot, err := resolveSourceRoot(cfg.SourceRoot, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolveRoot, err)
	}
	logger.Debugf(errors.InfoMsgSourceRoot, sourceRoot)

	g := formatter.New(formatter.FormatterConfig{
		Fs:            fs,
		Logger:        logger,
		Out:           out,
		PackagePrefix: cfg.PackagePrefix,
		SourceRoot:    sourceRoot,
		Header:        cfg.Header,
		FutureImports: cfg.FutureImports,
		StdLibs:       std.NewSet(cfg.ExtraStdLibs...),
		Extensions:    cfg.Extensions,
		Jobs:          o.jobs,
		KeepGoing:     o.keepGoing,
		DryRun:        o.dryRun,
	})
	return g.ProcessPath(cmd.Context(), path)
}

// loadConfig reads the config file and lays the explicitly set flags on top
func (o *options) loadConfig(flags *pflag.FlagSet, fs afero.Fs, path string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(fs, o.configPath)
	} else {
		cfg, err = config.Discover(fs, path)
	}
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("package-prefix") {
		cfg.PackagePrefix = o.packagePrefix
	}
	if flags.Changed("source-root") {
		cfg.SourceRoot = o.sourceRoot
	}
	if flags.Changed("ext") {
		cfg.Extensions = o.extensions
	}
	return cfg, cfg.Validate()
}

// resolveSourceRoot returns the configured root made absolute, else the one
// inferred from path, else the working directory.
func resolveSourceRoot(configured, path string) (string, error) {
	if configured != "" {
		return filepath.Abs(configured)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if root := utils.InferSourceRoot(absPath); root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errors.ErrMsgFailedToGetWorkingDir, err)
	}
	return wd, nil
}

// Execute runs the root command on the OS filesystem
func Execute() error {
	return NewRootCommand(afero.NewOsFs()).Execute()
}
