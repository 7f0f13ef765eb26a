// Command bicepbump rewrites the version pinned inside Bicep templates.
//
//	bicepbump 1.4.0 ./infrastructure
//	bicepbump --dry-run 1.4.0 ./infrastructure
//
// The tool walks the directory, collects the *.bicep files and rewrites
// the metadata version assignments and the versioned module registry
// references. With --dry-run it prints a unified diff of the would-be
// changes instead of touching the files.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/bicepver"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/fsx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/logx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func main() {
	var (
		dryRun  bool
		verbose bool
	)
	root := &cobra.Command{
		Use:   "bicepbump VERSION [DIR]",
		Short: "Rewrites the version pinned inside Bicep templates",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			dir := "."
			if len(args) >= 2 {
				dir = args[1]
			}
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			if err := bump(os.Stdout, os.Stderr, args[0], dir, dryRun); err != nil {
				log.WithError(err).Fatal("cannot rewrite the templates")
			}
		},
	}
	root.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff of the changes without applying them")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose log output")
	log.Log = &log.Logger{Level: log.InfoLevel, Handler: logx.NewHandlerWithDefaultSettings()}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// bump rewrites all the Bicep templates under dir to pin the given version.
// In dry run mode it prints unified diffs to stdout instead of modifying
// the files. Progress while rewriting goes to progressW.
func bump(stdout, progressW io.Writer, version, dir string, dryRun bool) error {
	if !bicepver.IsValidVersion(version) {
		return fmt.Errorf("%w: %s", bicepver.ErrInvalidVersion, version)
	}
	files, err := bicepver.ListBicepFiles(dir)
	if err != nil {
		return err
	}
	if len(files) <= 0 {
		log.Warnf("no bicep files inside %s", dir)
		return nil
	}
	if dryRun {
		return preview(stdout, files, version)
	}
	return rewriteAll(progressW, files, version)
}

// preview prints a unified diff of the changes we would apply.
func preview(stdout io.Writer, files []string, version string) error {
	changedFiles := 0
	for _, file := range files {
		data, err := fsx.ReadFile(file)
		if err != nil {
			return err
		}
		out, changes := bicepver.Rewrite(data, version)
		if changes <= 0 {
			log.Debugf("%s: already up to date", file)
			continue
		}
		changedFiles++
		edits := myers.ComputeEdits(span.URIFromPath(file), string(data), string(out))
		fmt.Fprint(stdout, gotextdiff.ToUnified(file, file+".new", string(data), edits))
	}
	log.Infof("would update %d of %d files", changedFiles, len(files))
	return nil
}

// rewriteAll applies the rewrite to each file showing a progress bar.
func rewriteAll(progressW io.Writer, files []string, version string) error {
	bar := progressbar.NewOptions64(
		int64(len(files)),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(progressW, "\n")
		}),
		progressbar.OptionSetWriter(progressW),
	)
	changedFiles, totalChanges := 0, 0
	for _, file := range files {
		bar.Add(1)
		changes, err := bicepver.RewriteFile(file, version)
		if err != nil {
			return err
		}
		if changes > 0 {
			changedFiles++
			totalChanges += changes
		}
	}
	log.Infof("updated %d of %d files (%d changes)", changedFiles, len(files), totalChanges)
	return nil
}
