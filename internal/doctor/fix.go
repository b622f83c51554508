package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Fixer is implemented by checks that can repair what they detect. Both
// methods must be called after Run.
type Fixer interface {
	// CanFix reports whether the last run found fixable issues.
	CanFix() bool

	// Fix repairs the fixable issues from the last run.
	Fix() []FixResult
}

// FixResult describes one attempted repair.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// secureFilePerm is the target permission for settings files (rw-------).
const secureFilePerm os.FileMode = 0o600

// secureDirPerm is the target permission for settings directories (rwx------).
const secureDirPerm os.FileMode = 0o700

// PermissionFixer tightens settings file and directory modes.
type PermissionFixer struct {
	issues []pathIssue
	chmod  func(string, os.FileMode) error
}

// CanFix reports whether any issue is fixable.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	n := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}

// Fix applies chmod to every fixable issue.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if issue.Fixable {
			results = append(results, f.fixIssue(issue))
		}
	}
	return results
}

func (f *PermissionFixer) fixIssue(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	var perm os.FileMode
	switch issue.Type {
	case "file":
		perm = secureFilePerm
	case "directory":
		perm = secureDirPerm
	default:
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	chmod := f.chmod
	if chmod == nil {
		chmod = os.Chmod
	}
	if err := chmod(issue.Path, perm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o", perm)
		result.Error = errors.Wrapf(err, "chmod %04o %s", perm, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", perm)
	return result
}

func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}
