package installer

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"setupdeps/pkg/actions"
	"setupdeps/pkg/log"
	"setupdeps/pkg/model"
	"setupdeps/pkg/system"
	"setupdeps/pkg/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInstallerTest(t *testing.T) (*Installer, *test.MockCommandRunner, *test.MockLogger, *bytes.Buffer) {
	runner := test.NewMockCommandRunner()
	logger := test.NewMockLogger(slog.LevelDebug)
	out := &bytes.Buffer{}
	return New(runner, logger, out, "python3"), runner, logger, out
}

func TestInstall_DefaultList(t *testing.T) {
	inst, runner, _, out := setupInstallerTest(t)

	err := inst.Install(model.DefaultManifest())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"python3 -m pip install requests",
		"python3 -m pip install PyInDesign",
	}, runner.Commands)
	assert.Equal(t, CompletionMessage+"\n", out.String())
}

func TestInstall_CompletionPrintedOnceAfterAllInstalls(t *testing.T) {
	inst, runner, _, out := setupInstallerTest(t)

	err := inst.Install(model.DefaultManifest())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out.String(), CompletionMessage))
	assert.True(t, strings.HasSuffix(out.String(), CompletionMessage+"\n"))
	assert.Len(t, runner.Commands, 2)
}

func TestInstall_FirstFailureStopsRun(t *testing.T) {
	inst, runner, logger, out := setupInstallerTest(t)
	cause := errors.New("exit status 1")
	runner.SetError(test.PipInstall("python3", "requests"), cause)

	err := inst.Install(model.DefaultManifest())
	require.Error(t, err)

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, "requests", installErr.Package)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "install requests: exit status 1")

	assert.Equal(t, []string{"python3 -m pip install requests"}, runner.Commands)
	test.AssertCommandNotExecuted(t, runner, test.PipInstall("python3", "PyInDesign"))
	assert.Empty(t, out.String())
	test.AssertLogContains(t, logger, "Installation failed")
}

func TestInstall_SecondFailureKeepsFirst(t *testing.T) {
	inst, runner, _, out := setupInstallerTest(t)
	runner.SetError(test.PipInstall("python3", "PyInDesign"), errors.New("exit status 1"))

	err := inst.Install(model.DefaultManifest())
	assert.EqualError(t, err, "install PyInDesign: exit status 1")

	assert.Len(t, runner.Commands, 2)
	assert.Empty(t, out.String())
}

func TestInstall_EmptyList(t *testing.T) {
	inst, runner, _, out := setupInstallerTest(t)

	err := inst.Install(&model.Manifest{})
	require.NoError(t, err)

	assert.Empty(t, runner.Commands)
	assert.Equal(t, CompletionMessage+"\n", out.String())
}

func TestInstall_UsesPipArgsAndPins(t *testing.T) {
	inst, runner, _, _ := setupInstallerTest(t)

	err := inst.Install(test.SampleManifest())
	require.NoError(t, err)
	test.AssertCommandExecuted(t, runner, "python3 -m pip install --disable-pip-version-check requests==2.31.0")

	assert.Equal(t, []string{
		"python3 -m pip install --disable-pip-version-check requests==2.31.0",
		"python3 -m pip install --disable-pip-version-check PyInDesign",
	}, runner.Commands)
}

func TestInstall_LargeListInOrder(t *testing.T) {
	inst, runner, _, _ := setupInstallerTest(t)
	m := test.LargeManifest(50)

	require.NoError(t, inst.Install(m))

	require.Len(t, runner.Commands, 50)
	for n, dep := range m.Dependencies {
		assert.Equal(t, test.PipInstall("python3", dep.Name), runner.Commands[n])
	}
}

func TestExecute_LogsCarryRunID(t *testing.T) {
	inst, _, logger, _ := setupInstallerTest(t)

	require.NoError(t, inst.Install(model.DefaultManifest()))

	require.NotEmpty(t, logger.Messages)
	for _, msg := range logger.Messages {
		assert.Contains(t, msg, "run=")
	}
}

func TestPlan(t *testing.T) {
	inst, runner, _, _ := setupInstallerTest(t)

	plan := inst.Plan(model.DefaultManifest())

	require.Len(t, plan, 2)
	assert.Equal(t, "Install package requests", plan[0].Description())
	assert.Equal(t, []string{"run: python3 -m pip install PyInDesign"}, plan[1].ExecutionDetails())
	assert.Empty(t, runner.Commands)
}

func TestExecute_NonPipActionFailure(t *testing.T) {
	inst, _, _, out := setupInstallerTest(t)

	err := inst.Execute([]actions.Action{&failingAction{}})
	assert.EqualError(t, err, "install Fail on purpose: boom")
	assert.Empty(t, out.String())
}

type failingAction struct{}

func (failingAction) Description() string { return "Fail on purpose" }

func (failingAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	return errors.New("boom")
}

func (failingAction) ExecutionDetails() []string { return nil }

func BenchmarkInstall(b *testing.B) {
	runner := test.NewMockCommandRunner()
	logger := test.NewMockLogger(slog.LevelError)
	m := test.LargeManifest(100)
	inst := New(runner, logger, &bytes.Buffer{}, "python3")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		runner.Reset()
		if err := inst.Install(m); err != nil {
			b.Fatal(err)
		}
	}
}
