package system

import (
	"fmt"
	"os/exec"

	"github.com/spf13/afero"
)

// AppFs is the filesystem used for every file read and write.
// Tests swap it for an in-memory filesystem.
var AppFs afero.Fs = afero.NewOsFs()

// pythonCandidates are tried in order when no interpreter is configured.
var pythonCandidates = []string{"python3", "python"}

var lookPath = exec.LookPath

// FindPython returns the path of the first Python interpreter found on PATH.
func FindPython() (string, error) {
	for _, name := range pythonCandidates {
		path, err := lookPath(name)
		if err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found on PATH (tried %v); use --python to set one", pythonCandidates)
}

// ResolvePython picks the interpreter: an explicit choice wins, otherwise PATH is searched.
func ResolvePython(explicit ...string) (string, error) {
	for _, p := range explicit {
		if p != "" {
			return p, nil
		}
	}
	return FindPython()
}
