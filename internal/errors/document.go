// Package errors provides error types for lazymvn.
// This file contains pom document errors.
package errors

import "fmt"

// Document-related error constructors.

// PomNotFound creates an error when no pom.xml could be located.
func PomNotFound(startDir string) *AppError {
	return &AppError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("no pom.xml found in %s or any parent directory", startDir),
		Details: map[string]string{
			"directory": startDir,
		},
		Suggestion: "Run lazymvn from inside a Maven project, or pass the file explicitly with --file.",
	}
}

// DocumentUnreadable creates an error for a pom file that cannot be read.
func DocumentUnreadable(path string, cause error) *AppError {
	return &AppError{
		Kind:    ErrDocument,
		Message: fmt.Sprintf("cannot read %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
	}
}

// DocumentMalformed creates an error for a pom file that is not well-formed XML.
func DocumentMalformed(path string, cause error) *AppError {
	return &AppError{
		Kind:    ErrDocument,
		Message: fmt.Sprintf("%s is not well-formed XML", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Fix the XML syntax (for example with 'mvn validate') and start lazymvn again.",
	}
}

// MissingDependencies creates an error for a pom without a dependencies section.
func MissingDependencies(path string) *AppError {
	return &AppError{
		Kind:    ErrDocument,
		Message: fmt.Sprintf("%s has no <dependencies> section", path),
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Add an empty <dependencies></dependencies> element under <project>.",
	}
}

// PersistFailed creates an error for a failed rewrite of the pom file.
// The in-memory edit is still applied, so the user can retry.
func PersistFailed(path string, cause error) *AppError {
	return &AppError{
		Kind:    ErrPersist,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Your changes are still loaded. Check permissions and free disk space, then save again.",
	}
}
