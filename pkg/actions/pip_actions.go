package actions

import (
	"fmt"
	"strings"

	"setupdeps/pkg/log"
	"setupdeps/pkg/model"
	"setupdeps/pkg/system"
)

// PipInstallAction installs one package with "<python> -m pip install".
type PipInstallAction struct {
	Python     string
	PipArgs    []string
	Dependency model.Dependency
}

func (a *PipInstallAction) Description() string {
	return fmt.Sprintf("Install package %s", a.Dependency.Requirement())
}

func (a *PipInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if strings.TrimSpace(a.Dependency.Name) == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if strings.TrimSpace(a.Python) == "" {
		return fmt.Errorf("python interpreter cannot be empty")
	}
	logger.Info("Installing package", "package", a.Dependency.Name, "requirement", a.Dependency.Requirement())
	_, err := runner.Run(a.Python, a.Args()...)
	return err
}

// Args returns the interpreter arguments, e.g. ["-m", "pip", "install", "requests"].
func (a *PipInstallAction) Args() []string {
	args := make([]string, 0, 4+len(a.PipArgs))
	args = append(args, "-m", "pip", "install")
	args = append(args, a.PipArgs...)
	return append(args, a.Dependency.Requirement())
}

func (a *PipInstallAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("run: %s %s", a.Python, strings.Join(a.Args(), " "))}
}
