package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/editor"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

var (
	configScope    string
	configGetScope string
	configFormat   string
)

func init() {
	for _, c := range []*cobra.Command{configSetCmd, configUnsetCmd, configEditCmd} {
		c.Flags().StringVar(&configScope, "scope", "global",
			"settings scope: global, workspace")
	}
	configGetCmd.Flags().StringVar(&configGetScope, "scope", "",
		"read a single scope (global, workspace) instead of the effective value")
	configListCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml",
		"output format: yaml, json, toml")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage xcomkit settings",
	Long: `Manage settings stored in the global settings file and the workspace
.xcomkit.yaml.

Keys:
  xcom.highlander.gameroot    game install path
  xcom.highlander.sdkroot     SDK install path
  discovery.volume_source     drive enumeration: wmic, native, none
  discovery.extra_libraries   extra Steam library roots (comma-separated)
  version                     settings format version

Without a subcommand, lists the effective settings.`,
	Example: `  xcomkit config
  xcomkit config get xcom.highlander.sdkroot
  xcomkit config set xcom.highlander.sdkroot "D:\SteamLibrary\steamapps\common\XCOM 2 War of the Chosen SDK"
  xcomkit config set --scope workspace discovery.volume_source native

See Also: xcomkit doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a settings value",
	Long: `Print the effective value of a key. Environment variables
(XCOMKIT_<KEY with dots as underscores>) override the workspace file, which
overrides the global file. List values are printed one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Long: `Set a value in the global (default) or workspace settings file.

discovery.extra_libraries takes a comma-separated list.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a settings value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective settings",
	Long:  `List the merged settings (defaults, global, workspace, environment).`,
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open a settings file in $EDITOR",
	Long: `Open the global (default) or workspace settings file in your editor.

Uses $EDITOR, then $VISUAL, then nano, then vi.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func requireKey(key string) error {
	if config.ValidKey(key) {
		return nil
	}
	err := errors.Wrapf(errors.ErrUnknownKey, "%q", key)
	return errors.NewUserError(err, "valid keys: "+strings.Join(config.Keys(), ", "))
}

func parseScopeFlag() (config.Scope, error) {
	scope, err := config.ParseScope(configScope)
	if err != nil {
		return 0, errors.NewUserError(err, "use --scope global or --scope workspace")
	}
	return scope, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := requireKey(key); err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if configGetScope != "" {
		scope, err := config.ParseScope(configGetScope)
		if err != nil {
			return errors.NewUserError(err, "use --scope global or --scope workspace")
		}
		val, ok := a.store.GetScoped(key, scope)
		if !ok {
			fmt.Fprintln(w, "not set")
			return nil
		}
		fmt.Fprintln(w, val)
		return nil
	}

	settings, err := a.store.Settings()
	if err != nil {
		return errors.NewConfigError(err)
	}

	val, ok := lookupNested(settings, strings.Split(key, "."))
	if !ok {
		fmt.Fprintln(w, "not set")
		return nil
	}
	switch v := val.(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if err := requireKey(key); err != nil {
		return err
	}
	scope, err := parseScopeFlag()
	if err != nil {
		return err
	}

	value, err := config.ParseValue(key, raw)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if err := a.store.SetValue(key, value, scope); err != nil {
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v (%s)\n", key, value, scope)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := requireKey(key); err != nil {
		return err
	}
	scope, err := parseScopeFlag()
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if err := a.store.Unset(key, scope); err != nil {
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unset %s (%s)\n", key, scope)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	cfg, err := a.store.Config()
	if err != nil {
		return errors.NewConfigError(err)
	}

	return writeConfig(cmd.OutOrStdout(), cfg, configFormat)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(cfg), "encoding JSON")
	case "toml":
		return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "encoding TOML")
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "use yaml, json or toml")
	}
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return errors.NewUserError(err, "")
	}
	opts := settingsOptions(env)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "global:    %s%s\n", opts.GlobalPath, existsSuffix(opts.GlobalPath))
	fmt.Fprintf(w, "workspace: %s%s\n", opts.WorkspacePath, existsSuffix(opts.WorkspacePath))
	return nil
}

func existsSuffix(path string) string {
	if _, err := os.Stat(path); err != nil {
		return " (not created)"
	}
	return ""
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	scope, err := parseScopeFlag()
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	path := a.store.Path(scope)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create the file so the editor opens something valid.
		if err := a.store.SetValue(config.VersionKey, config.CurrentVersion, scope); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	return editor.OpenText(path, cmd.OutOrStdout())
}

// lookupNested walks a settings map by key path.
func lookupNested(m map[string]any, path []string) (any, bool) {
	var cur any = m
	for _, p := range path {
		next, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = next[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
