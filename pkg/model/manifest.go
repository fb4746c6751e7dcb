package model

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultDependencies is the package list installed when no manifest is given.
// Order matters: packages are installed in this sequence.
var DefaultDependencies = []string{
	"requests",   // HTTP client for the analysis API
	"PyInDesign", // InDesign scripting bridge
}

// pep440Version matches the public version scheme pip accepts:
// [v][N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local], case-insensitive.
var pep440Version = regexp.MustCompile(`(?i)^v?(?:[0-9]+!)?[0-9]+(?:\.[0-9]+)*` +
	`(?:[-_.]?(?:a|b|c|rc|alpha|beta|pre|preview)[-_.]?[0-9]*)?` +
	`(?:-[0-9]+|[-_.]?(?:post|rev|r)[-_.]?[0-9]*)?` +
	`(?:[-_.]?dev[-_.]?[0-9]*)?` +
	`(?:\+[a-z0-9]+(?:[-_.][a-z0-9]+)*)?$`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("manifest validation failed:\n")
	for _, e := range es {
		sb.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
	}
	return sb.String()
}

// Manifest is the ordered list of packages to install and how to install them.
type Manifest struct {
	Includes     []string     `yaml:"includes,omitempty"`
	Python       string       `yaml:"python,omitempty"`
	PipArgs      []string     `yaml:"pip-args,omitempty"`
	Dependencies []Dependency `yaml:"dependencies"`
}

// Dependency is a single package handed to pip.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"` // exact pin, optional
}

// DefaultManifest returns a fresh manifest holding DefaultDependencies.
func DefaultManifest() *Manifest {
	deps := make([]Dependency, 0, len(DefaultDependencies))
	for _, name := range DefaultDependencies {
		deps = append(deps, Dependency{Name: name})
	}
	return &Manifest{Dependencies: deps}
}

// Requirement renders the dependency as a pip requirement specifier.
func (d Dependency) Requirement() string {
	if d.Version == "" {
		return d.Name
	}
	return fmt.Sprintf("%s==%s", d.Name, d.Version)
}

// Names returns the dependency names in install order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		names = append(names, d.Name)
	}
	return names
}

// Validate checks every field. An empty dependency list is valid.
func (m *Manifest) Validate() ValidationErrors {
	var errs ValidationErrors

	for i, include := range m.Includes {
		if strings.TrimSpace(include) == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("includes[%d]", i), Message: "include path cannot be empty"})
		}
	}

	if m.Python != "" && strings.TrimSpace(m.Python) != m.Python {
		errs = append(errs, ValidationError{Field: "python", Message: "interpreter cannot have leading or trailing whitespace"})
	}

	for i, arg := range m.PipArgs {
		if !strings.HasPrefix(arg, "-") {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("pip-args[%d]", i), Message: fmt.Sprintf("'%s' is not an option (must start with '-')", arg)})
		}
	}

	seen := make(map[string]int)
	for i, dep := range m.Dependencies {
		field := fmt.Sprintf("dependencies[%d]", i)
		if strings.TrimSpace(dep.Name) == "" {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "package name cannot be empty"})
			continue
		}
		if !IsValidPackageName(dep.Name) {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "package name contains invalid characters (only letters, digits, '.', '-' and '_' allowed, starting and ending with a letter or digit)"})
		}
		if dep.Version != "" && !IsValidVersion(dep.Version) {
			errs = append(errs, ValidationError{Field: field + ".version", Message: fmt.Sprintf("invalid version '%s' (expected a PEP 440 version such as 2.31.0, 4.2rc1 or 1!2.0)", dep.Version)})
		}
		key := NormalizeName(dep.Name)
		if j, ok := seen[key]; ok {
			errs = append(errs, ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate of dependencies[%d]", j)})
		} else {
			seen[key] = i
		}
	}

	return errs
}

// IsValidPackageName reports whether name is a valid Python distribution name.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			continue
		}
		if i == 0 || i == len(name)-1 {
			return false
		}
		if r != '.' && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// IsValidVersion reports whether v is a PEP 440 version usable in an exact pin.
func IsValidVersion(v string) bool {
	return pep440Version.MatchString(v)
}

// NormalizeName folds case and separators the way pip compares names:
// "Zope_Interface" and "zope.interface" both become "zope-interface".
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}
