package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"setupdeps/pkg/log"
	"setupdeps/pkg/model"
	"setupdeps/pkg/system"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadManifest returns the manifest stored in filename, or the built-in
// default list when filename is empty.
func LoadManifest(filename string, logger log.Logger) (*model.Manifest, error) {
	if filename == "" {
		logger.Debug("No manifest given, using built-in dependency list", "dependencies", model.DefaultDependencies)
		return model.DefaultManifest(), nil
	}

	m, err := loadManifestFile(filename)
	if err != nil {
		return nil, err
	}

	if len(m.Includes) > 0 {
		m, err = processIncludes(m, filename, logger)
		if err != nil {
			return nil, err
		}
	}

	if errs := m.Validate(); len(errs) > 0 {
		return nil, errs
	}

	logger.Debug("Loaded manifest", "path", filename, "dependencies", m.Names())
	return &m, nil
}

// processIncludes loads included manifests recursively and merges them
// underneath the including manifest.
func processIncludes(m model.Manifest, baseFile string, logger log.Logger) (model.Manifest, error) {
	visited := make(map[string]bool) // For cycle detection
	return processIncludesRecursive(m, baseFile, visited, logger)
}

func processIncludesRecursive(m model.Manifest, baseFile string, visited map[string]bool, logger log.Logger) (model.Manifest, error) {
	result := &model.Manifest{}

	absBase, err := filepath.Abs(baseFile)
	if err != nil {
		return model.Manifest{}, fmt.Errorf("failed to resolve absolute path for %s: %w", baseFile, err)
	}
	if visited[absBase] {
		return model.Manifest{}, fmt.Errorf("circular include detected: %s", baseFile)
	}
	visited[absBase] = true
	defer delete(visited, absBase)

	for _, includePath := range m.Includes {
		resolvedPath := resolveIncludePath(baseFile, includePath)

		included, err := loadManifestFile(resolvedPath)
		if err != nil {
			return model.Manifest{}, fmt.Errorf("failed to load include '%s': %w", includePath, err)
		}

		if len(included.Includes) > 0 {
			included, err = processIncludesRecursive(included, resolvedPath, visited, logger)
			if err != nil {
				return model.Manifest{}, err
			}
		}

		result = mergeManifests(result, &included, logger)
	}

	// The including file has the highest priority
	result = mergeManifests(result, &m, logger)

	return *result, nil
}

// loadManifestFile reads and validates a single file. Each file is validated
// on its own before any merging, so duplicates inside one file are reported
// even when includes would otherwise fold them together.
func loadManifestFile(filename string) (model.Manifest, error) {
	data, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		return model.Manifest{}, err
	}

	var m model.Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Manifest{}, nil
		}
		return model.Manifest{}, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if errs := m.Validate(); len(errs) > 0 {
		return model.Manifest{}, errs
	}

	return m, nil
}

func resolveIncludePath(baseFile, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(filepath.Dir(baseFile), includePath)
}

// mergeManifests layers override on top of base:
// - Dependencies: base order kept, a redefined package is replaced in place, new ones appended
// - Python: override wins when set
// - PipArgs: override wins when set
func mergeManifests(base, override *model.Manifest, logger log.Logger) *model.Manifest {
	result := &model.Manifest{
		Python:  base.Python,
		PipArgs: base.PipArgs,
	}
	if override.Python != "" {
		if base.Python != "" && base.Python != override.Python {
			logger.Warn("Python interpreter overridden", "was", base.Python, "now", override.Python)
		}
		result.Python = override.Python
	}
	if len(override.PipArgs) > 0 {
		result.PipArgs = override.PipArgs
	}

	result.Dependencies = mergeDependencies(base.Dependencies, override.Dependencies, logger)

	// Includes are not carried over, they have been processed
	return result
}

func mergeDependencies(base, override []model.Dependency, logger log.Logger) []model.Dependency {
	index := make(map[string]int)
	result := []model.Dependency{}

	for _, dep := range base {
		index[model.NormalizeName(dep.Name)] = len(result)
		result = append(result, dep)
	}

	for _, dep := range override {
		key := model.NormalizeName(dep.Name)
		if i, exists := index[key]; exists {
			if result[i] != dep {
				logger.Warn("Dependency overridden", "package", dep.Name, "was", result[i].Requirement(), "now", dep.Requirement())
			}
			result[i] = dep
			continue
		}
		index[key] = len(result)
		result = append(result, dep)
	}

	return result
}
