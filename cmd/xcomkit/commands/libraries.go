package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcomkit/internal/discovery"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

var (
	librariesAll  bool
	librariesJSON bool
)

func init() {
	librariesCmd.Flags().BoolVarP(&librariesAll, "all", "a", false,
		"show every candidate, including missing ones")
	librariesCmd.Flags().BoolVar(&librariesJSON, "json", false,
		"output as JSON")
	rootCmd.AddCommand(librariesCmd)
}

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List the Steam library folders detection searches",
	Long: `List the steamapps/common folders guess-paths searches, in search order.

By default only existing folders are shown. Use --all to include candidates
that do not exist.`,
	Example: `  xcomkit libraries
  xcomkit libraries --all --json

  See Also: xcomkit guess-paths`,
	Args: cobra.NoArgs,
	RunE: runLibraries,
}

type libraryEntry struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func runLibraries(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	s, _, err := a.scanner()
	if err != nil {
		return err
	}

	candidates, err := s.Candidates(cmd.Context())
	if err != nil {
		return errors.NewSystemError(err, "Try: xcomkit config set discovery.volume_source native")
	}

	existing := make(map[string]bool)
	for _, root := range discovery.FilterDirs(appFs, candidates) {
		existing[root] = true
	}

	entries := make([]libraryEntry, 0, len(candidates))
	for _, c := range candidates {
		if !librariesAll && !existing[c] {
			continue
		}
		entries = append(entries, libraryEntry{Path: c, Exists: existing[c]})
	}

	return writeLibraries(cmd.OutOrStdout(), entries)
}

func writeLibraries(w io.Writer, entries []libraryEntry) error {
	if librariesJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding JSON")
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No Steam libraries found.")
		return nil
	}
	for _, e := range entries {
		mark := "✓"
		if !e.Exists {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, e.Path)
	}
	return nil
}
