package test

import (
	"fmt"

	"setupdeps/pkg/model"
)

// PipInstall returns the command line the installer runs for one requirement.
func PipInstall(python, requirement string) string {
	return fmt.Sprintf("%s -m pip install %s", python, requirement)
}

// SampleManifest returns a small manifest with a pinned and an unpinned dependency.
func SampleManifest() *model.Manifest {
	return &model.Manifest{
		Python:  "python3",
		PipArgs: []string{"--disable-pip-version-check"},
		Dependencies: []model.Dependency{
			{Name: "requests", Version: "2.31.0"},
			{Name: "PyInDesign"},
		},
	}
}

// SampleManifestYAML returns SampleManifest in its YAML form.
func SampleManifestYAML() string {
	return `python: python3
pip-args:
  - --disable-pip-version-check
dependencies:
  - name: requests
    version: "2.31.0"
  - name: PyInDesign
`
}

// InvalidManifestYAML returns YAML with fields the manifest does not know.
func InvalidManifestYAML() string {
	return `dependencies:
  - name: requests
    extras: [socks]
`
}

// LargeManifest returns a manifest with n generated dependencies.
func LargeManifest(n int) *model.Manifest {
	m := &model.Manifest{}
	for i := 0; i < n; i++ {
		m.Dependencies = append(m.Dependencies, model.Dependency{Name: fmt.Sprintf("package%d", i)})
	}
	return m
}
