// Package paths resolves the on-disk locations xcomkit reads and writes.
//
// The user settings directory follows the XDG Base Directory Specification
// through github.com/adrg/xdg:
//
//	| OS      | Global settings file                                   |
//	|---------|--------------------------------------------------------|
//	| Linux   | ~/.config/xcomkit/settings.yaml                        |
//	| macOS   | ~/Library/Application Support/xcomkit/settings.yaml    |
//	| Windows | %LOCALAPPDATA%\xcomkit\settings.yaml                   |
//
// Workspace settings live in a dot file inside the working directory and
// override global values key by key.
package paths
