// Package dotdir resolves the .strand/ configuration directory.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirName is the name of the strand directory.
const dirName = ".strand"

// Target returns the absolute path to the .strand/ directory, creating it if
// necessary. Order of precedence:
//  1. Provided override
//  2. Local ./.strand/ dir
//  3. Home ~/.strand/ dir
func Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating strand directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// localDirExists checks whether a .strand/ directory exists in the current
// working directory.
func localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
