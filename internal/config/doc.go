// Package config provides the xcomkit settings store.
//
// Settings live in two YAML files, one per [Scope]:
//
//   - global: <XDG config home>/xcomkit/settings.yaml (or $XCOMKIT_CONFIG_DIR)
//   - workspace: ./.xcomkit.yaml
//
// Reads consult environment variables first (XCOMKIT_ plus the key with
// dots replaced by underscores, e.g. XCOMKIT_XCOM_HIGHLANDER_SDKROOT), then
// the workspace file, then the global file. Writes go to exactly one scope
// and replace the file atomically.
//
// # File Format
//
//	version: 1
//	discovery:
//	  volume_source: wmic
//	  extra_libraries:
//	    - E:\Games\SteamLibrary
//	xcom:
//	  highlander:
//	    gameroot: D:\SteamLibrary\steamapps\common\XCOM 2\XCom2-WarOfTheChosen
//	    sdkroot: D:\SteamLibrary\steamapps\common\XCOM 2 War of the Chosen SDK
//
// # Usage
//
//	store, err := config.Open(config.Options{
//	    GlobalPath:    paths.GlobalSettingsPath(""),
//	    WorkspacePath: paths.WorkspaceSettingsPath(""),
//	})
//	sdk := store.Get(config.SDKRootKey)
//	err = store.Set(config.GameRootKey, found, config.ScopeGlobal)
package config
