package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SettingsPermissionCheck validates settings file and directory permissions.
type SettingsPermissionCheck struct {
	PermissionFixer
	paths []string
}

var (
	_ Check = (*SettingsPermissionCheck)(nil)
	_ Fixer = (*SettingsPermissionCheck)(nil)
)

// NewSettingsPermissionCheck checks each settings file in paths and its
// parent directory. Empty entries are ignored.
func NewSettingsPermissionCheck(paths ...string) *SettingsPermissionCheck {
	return &SettingsPermissionCheck{paths: paths}
}

// Name returns the unique identifier for this check.
func (c *SettingsPermissionCheck) Name() string {
	return "settings-permissions"
}

// Category returns the grouping for this check.
func (c *SettingsPermissionCheck) Category() string {
	return "settings"
}

// Run executes the permission check.
func (c *SettingsPermissionCheck) Run(_ context.Context) *CheckResult {
	var issues []pathIssue
	var checked int

	for _, path := range c.paths {
		if path == "" {
			continue
		}
		issues = append(issues, c.checkDirectory(filepath.Dir(path))...)
		issues = append(issues, c.checkFile(path)...)
		checked++
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
}

func (c *SettingsPermissionCheck) checkFile(path string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Not written yet.
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}
	}

	if info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Type:     "file",
			Problem:  "expected file but found directory",
			Severity: SeverityError,
		}}
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	if info.Mode().Perm()&0o002 != 0 {
		return []pathIssue{{
			Path:        path,
			Type:        "file",
			Problem:     "file is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %04o %s", secureFilePerm, path),
		}}
	}
	return nil
}

func (c *SettingsPermissionCheck) checkDirectory(path string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}

	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Type:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue
	if !isDirectoryWritable(path) {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "directory",
			Problem:     "directory is not writable; detected paths cannot be saved",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+w " + path,
		})
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "directory",
			Problem:     "directory is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %04o %s", secureDirPerm, path),
		})
	}
	return issues
}

func isDirectoryWritable(path string) bool {
	f, err := os.CreateTemp(path, ".xcomkit-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func (c *SettingsPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d settings paths have valid permissions", checked),
		}
	}

	status := SeverityWarning
	fixable := false
	issueDetails := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			status = SeverityError
		}
		if issue.Fixable {
			fixable = true
		}
		m := map[string]any{
			"path":     issue.Path,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			m["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			m["fix_hint"] = issue.FixHint
		}
		issueDetails = append(issueDetails, m)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  fmt.Sprintf("%d permission issue(s) found", len(issues)),
		Details: map[string]any{
			"checked_paths": checked,
			"issue_count":   len(issues),
			"issues":        issueDetails,
		},
		Fixable: fixable,
	}
	if fixable {
		result.FixHint = "Run: xcomkit doctor --fix"
	}
	return result
}

func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%s (%s)", mode.Perm().String(), formatOctal(mode.Perm()))
}

func formatOctal(perm os.FileMode) string {
	return fmt.Sprintf("%04o", perm)
}
