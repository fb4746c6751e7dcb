// Package installer runs pip once per dependency, in order, and reports
// completion when every install succeeded.
package installer

import (
	"fmt"
	"io"

	"setupdeps/pkg/actions"
	"setupdeps/pkg/log"
	"setupdeps/pkg/model"
	"setupdeps/pkg/system"

	"github.com/google/uuid"
)

// CompletionMessage is printed once every dependency has been installed.
const CompletionMessage = "All dependencies have been successfully installed."

// InstallError reports which package failed to install.
type InstallError struct {
	Package string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Package, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Installer applies install plans sequentially.
type Installer struct {
	runner system.CommandRunner
	logger log.Logger
	out    io.Writer
	python string
}

// New returns an Installer that runs commands through runner and prints the
// completion message to out. python is the interpreter pip is invoked with.
func New(runner system.CommandRunner, logger log.Logger, out io.Writer, python string) *Installer {
	return &Installer{
		runner: runner,
		logger: logger,
		out:    out,
		python: python,
	}
}

// Plan builds one install action per dependency, in manifest order.
func (i *Installer) Plan(m *model.Manifest) []actions.Action {
	plan := make([]actions.Action, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		plan = append(plan, &actions.PipInstallAction{
			Python:     i.python,
			PipArgs:    m.PipArgs,
			Dependency: dep,
		})
	}
	return plan
}

// Execute applies the plan in order. The first failure stops the run: later
// actions are not attempted, earlier ones are left in place, and no
// completion message is printed.
func (i *Installer) Execute(plan []actions.Action) error {
	logger := i.logger.With("run", uuid.NewString())
	logger.Info("Starting dependency installation", "count", len(plan), "python", i.python)

	for n, action := range plan {
		logger.Info(fmt.Sprintf("=> %s", action.Description()), "step", n+1)
		if err := action.Apply(i.runner, logger); err != nil {
			logger.Error("Installation failed", "action", action.Description(), "error", err)
			return &InstallError{Package: packageOf(action), Err: err}
		}
	}

	logger.Info("Install complete.")
	_, err := fmt.Fprintln(i.out, CompletionMessage)
	return err
}

// Install plans and executes the manifest.
func (i *Installer) Install(m *model.Manifest) error {
	return i.Execute(i.Plan(m))
}

func packageOf(action actions.Action) string {
	if a, ok := action.(*actions.PipInstallAction); ok {
		return a.Dependency.Name
	}
	return action.Description()
}
