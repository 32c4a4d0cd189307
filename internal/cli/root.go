// Package cli implements the apprun command line: it assembles the layered
// application settings of a directory and prints the source order or the
// merged result.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-apprun/internal/config"
	"github.com/MKhiriev/go-apprun/internal/logger"
	"github.com/MKhiriev/go-apprun/models"
)

const defaultAppName = "apprun"

// options holds the persistent flags shared by every subcommand.
type options struct {
	dir           string
	appName       string
	envPrefixes   []string
	sensitive     string
	files         []string
	requiredFiles []string
	noParent      bool
	noDeployed    bool
	verbose       bool
}

// NewRootCommand returns the apprun command tree.
func NewRootCommand(build models.AppBuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "apprun",
		Short:         "Inspect layered application settings",
		Long:          "apprun merges environment variables, appsettings files of a directory and its parent, a sensitive file and extra files, and prints the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			l := logger.NewBootstrap(cmd.ErrOrStderr(), opts.appName)
			if !opts.verbose {
				l.Logger = l.Level(zerolog.WarnLevel)
			}
			cmd.SetContext(l.WithContext(cmd.Context()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.dir, "dir", "d", "", "working directory (default: current directory)")
	pf.StringVar(&opts.appName, "app-name", defaultAppName, "application name used as logger context")
	pf.StringArrayVarP(&opts.envPrefixes, "env-prefix", "e", nil, "environment variable prefix to include (repeatable)")
	pf.StringVarP(&opts.sensitive, "sensitive", "s", "", "sensitive settings file (must exist)")
	pf.StringArrayVarP(&opts.files, "file", "f", nil, "optional extra settings file (repeatable)")
	pf.StringArrayVar(&opts.requiredFiles, "required-file", nil, "required extra settings file (repeatable)")
	pf.BoolVar(&opts.noParent, "no-parent", false, "skip appsettings.json of the parent directory")
	pf.BoolVar(&opts.noDeployed, "no-deployed", false, "skip appsettings.json of the working directory")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log every source decision")

	root.AddCommand(newSourcesCommand(opts))
	root.AddCommand(newShowCommand(opts))
	root.AddCommand(newVersionCommand(build))

	return root
}

// registry creates and configures a source registry from the flags.
// Required extra files are checked immediately.
func (o *options) registry(cmd *cobra.Command) (*config.SourceRegistry, error) {
	reg, err := config.NewSourceRegistry(
		config.WithWorkingDirectory(o.dir),
		config.WithLogger(logger.FromContext(cmd.Context())),
	)
	if err != nil {
		return nil, err
	}

	reg.SetUseParentSettings(!o.noParent)
	reg.SetUseDeployedFolderSettings(!o.noDeployed)
	for _, prefix := range o.envPrefixes {
		reg.AddEnvironmentVariablePrefix(prefix)
	}
	if o.sensitive != "" {
		reg.EnableSensitiveSource(o.sensitive)
	}
	for _, f := range o.requiredFiles {
		if err := reg.AddSettingFile(f, true); err != nil {
			return nil, err
		}
	}
	for _, f := range o.files {
		if err := reg.AddSettingFile(f, false); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// load builds the registry described by the flags into a fresh store.
func (o *options) load(cmd *cobra.Command) (*config.KoanfStore, config.Report, error) {
	reg, err := o.registry(cmd)
	if err != nil {
		return nil, nil, err
	}

	store := config.NewKoanfStore()
	report, err := config.Load(reg, store)
	if err != nil {
		return nil, report, err
	}

	return store, report, nil
}

func newVersionCommand(build models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", build.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", build.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", build.BuildCommit())
		},
	}
}
