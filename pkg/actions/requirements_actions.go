package actions

import (
	"fmt"
	"os"
	"strings"

	"setupdeps/pkg/log"
	"setupdeps/pkg/model"
	"setupdeps/pkg/system"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
)

// RenderRequirements renders a manifest as a pip requirements file.
func RenderRequirements(m *model.Manifest) string {
	var sb strings.Builder
	for _, dep := range m.Dependencies {
		sb.WriteString(dep.Requirement())
		sb.WriteString("\n")
	}
	return sb.String()
}

// RequirementsWriteAction writes a requirements file, replacing any existing one.
type RequirementsWriteAction struct {
	Path    string
	Content string

	origContent string
	exists      bool
}

// NewRequirementsWriteAction prepares a write of content to path and records
// what is currently there so the change can be shown before it happens.
func NewRequirementsWriteAction(path, content string) (*RequirementsWriteAction, error) {
	a := &RequirementsWriteAction{Path: path, Content: content}
	existing, err := afero.ReadFile(system.AppFs, path)
	switch {
	case err == nil:
		a.exists = true
		a.origContent = string(existing)
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return a, nil
}

// Changed reports whether applying the action would modify the file.
func (a *RequirementsWriteAction) Changed() bool {
	return !a.exists || a.origContent != a.Content
}

func (a *RequirementsWriteAction) Description() string {
	if a.exists {
		return fmt.Sprintf("Update requirements file %s", a.Path)
	}
	return fmt.Sprintf("Create requirements file %s", a.Path)
}

func (a *RequirementsWriteAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if !a.Changed() {
		logger.Info("Requirements file already up to date", "path", a.Path)
		return nil
	}
	logger.Info("Writing requirements file", "path", a.Path)
	return afero.WriteFile(system.AppFs, a.Path, []byte(a.Content), 0644)
}

func (a *RequirementsWriteAction) ExecutionDetails() []string {
	if !a.exists {
		return []string{fmt.Sprintf("create file: %s", a.Path)}
	}
	if !a.Changed() {
		return []string{fmt.Sprintf("unchanged: %s", a.Path)}
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a.origContent, a.Content, false)
	return []string{
		fmt.Sprintf("update file: %s", a.Path),
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}
}
