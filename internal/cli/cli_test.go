package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/portal/pkg/entities"
	"github.com/mesh-intelligence/portal/pkg/types"
)

const (
	seededOrderID = "9a8b7c6d-1e2f-4a3b-8c9d-0e1f2a3b4c5d"
	seededAnnID   = "6f1c0d2a-5b8e-4c3d-9a7f-1e2d3c4b5a61"
)

// workspace holds the directories one test runs the CLI against.
type workspace struct {
	configDir string
	dataDir   string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	for _, env := range []string{"PORTAL_BACKEND", "PORTAL_BASE_URL", "PORTAL_TOKEN", "PORTAL_LOG_LEVEL", "PORTAL_TIMEOUT"} {
		t.Setenv(env, "")
	}
	root := t.TempDir()
	return workspace{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the root command and returns its stdout.
func (w workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", w.configDir, "--data-dir", w.dataDir}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func (w workspace) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := w.run(t, args...)
	require.NoError(t, err, "portal %s", strings.Join(args, " "))
	return out
}

func TestVersionCommand(t *testing.T) {
	w := newWorkspace(t)
	out := w.mustRun(t, "version")
	assert.Contains(t, out, "portal v")
	assert.Contains(t, out, modulePath)
}

func TestInitWritesConfigAndSeeds(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "init")
	assert.Contains(t, out, "Portal initialized")

	data, err := os.ReadFile(filepath.Join(w.configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendSim, cfg.Backend)
	assert.Equal(t, w.dataDir, cfg.DataDir)
	assert.Equal(t, "30s", cfg.Timeout)

	for _, f := range []string{"objects.jsonl", "templates.jsonl", "enums.jsonl", "projections.jsonl"} {
		assert.FileExists(t, filepath.Join(w.dataDir, f))
	}

	// A second init leaves the existing config alone.
	require.NoError(t, os.WriteFile(filepath.Join(w.configDir, "config.yaml"), []byte("backend: sim\nlog_level: error\n"), 0o600))
	w.mustRun(t, "init")
	data, err = os.ReadFile(filepath.Join(w.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "backend: sim\nlog_level: error\n", string(data))
}

func TestTypesCommand(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "types")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "PurchaseOrder")

	out = w.mustRun(t, "--json", "types")
	assert.Equal(t, entities.IncidentClassID.String(),
		gjson.Get(out, `#(name=="Incident").class_id`).String())
}

func TestQueryCommand(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "--json", "query", "PurchaseOrder", "--where", "PurchaseOrderNumber=Testing123")
	require.Equal(t, int64(1), gjson.Get(out, "#").Int())
	assert.Equal(t, seededOrderID, gjson.Get(out, "0.BaseId").String())

	out = w.mustRun(t, "query", "user", "--where", "UserName=asmith", "--where", "UserName=bjones", "--or")
	assert.Contains(t, out, "Ann Smith")
	assert.Contains(t, out, "Bob Jones")

	out = w.mustRun(t, "query", "User", "--where", "UserName~zz%")
	assert.Equal(t, "No objects found\n", out)

	out = w.mustRun(t, "--json", "query", "User", "--where", "UserName=nobody")
	assert.Equal(t, "[]\n", out)
}

func TestQueryCommandUserErrors(t *testing.T) {
	w := newWorkspace(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"query", "Spaceship", "--where", "A=1"}},
		{"missing where", []string{"query", "User"}},
		{"bad condition", []string{"query", "User", "--where", "UserName"}},
		{"missing type", []string{"query"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, ExitCode(err))
		})
	}
}

func TestEnumsCommand(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "enums", entities.ObjectStatusListID.String())
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Pending Delete")
	assert.NotContains(t, out, types.FormatD(types.EmptyGUID))

	out = w.mustRun(t, "--json", "enums", entities.IncidentStatusListID.String(), "--flatten")
	assert.Equal(t, int64(4), gjson.Get(out, "#").Int())

	_, err := w.run(t, "enums", "not-a-guid")
	assert.Equal(t, exitUserError, ExitCode(err))
}

func TestCreateCommand(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "create", "Incident",
		"--template", entities.IncidentTemplateID.String(),
		"--created-by", seededAnnID,
		"--set", "Title=VPN down",
		"--set", "Description=Cannot connect=at all")
	require.True(t, strings.HasPrefix(out, "Created Incident "), out)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Created Incident "))
	assert.True(t, types.IsGUID(id))

	out = w.mustRun(t, "--json", "query", "Incident", "--where", "Title=VPN down")
	require.Equal(t, int64(1), gjson.Get(out, "#").Int())
	assert.Equal(t, id, gjson.Get(out, "0.BaseId").String())
	assert.Equal(t, "Cannot connect=at all", gjson.Get(out, "0.Description").String())
}

func TestCreateCommandUserErrors(t *testing.T) {
	w := newWorkspace(t)
	tmpl := entities.IncidentTemplateID.String()

	tests := []struct {
		name string
		args []string
	}{
		{"bad template", []string{"create", "Incident", "--template", "x", "--created-by", seededAnnID, "--set", "Title=a"}},
		{"bad creator", []string{"create", "Incident", "--template", tmpl, "--created-by", "x", "--set", "Title=a"}},
		{"bad assignment", []string{"create", "Incident", "--template", tmpl, "--created-by", seededAnnID, "--set", "Title"}},
		{"missing set", []string{"create", "Incident", "--template", tmpl, "--created-by", seededAnnID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, ExitCode(err))
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	t.Run("pending delete keeps the object", func(t *testing.T) {
		w := newWorkspace(t)
		out := w.mustRun(t, "delete", "PurchaseOrder", seededOrderID, "--pending")
		assert.Contains(t, out, "marked Pending Delete")

		out = w.mustRun(t, "--json", "query", "PurchaseOrder", "--where", "BaseId="+seededOrderID)
		assert.Equal(t, entities.StatusPendingDelete.ID.String(), gjson.Get(out, "0.ObjectStatus.Id").String())
	})

	t.Run("delete purges the object", func(t *testing.T) {
		w := newWorkspace(t)
		out := w.mustRun(t, "delete", "PurchaseOrder", "{"+strings.ToUpper(seededOrderID)+"}")
		assert.Contains(t, out, "marked Deleted")

		out = w.mustRun(t, "--json", "query", "PurchaseOrder", "--where", "BaseId="+seededOrderID)
		assert.Equal(t, "[]\n", out)

		_, err := w.run(t, "delete", "PurchaseOrder", seededOrderID)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Equal(t, exitUserError, ExitCode(err))
	})
}

func TestHTTPBackendWithoutBaseURL(t *testing.T) {
	w := newWorkspace(t)
	t.Setenv("PORTAL_BACKEND", types.BackendHTTP)

	_, err := w.run(t, "query", "User", "--where", "UserName=asmith")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBaseURLEmpty)
	assert.Equal(t, exitUserError, ExitCode(err))
}

func TestInvalidLogLevel(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.run(t, "--log-level", "loud", "types")
	assert.Equal(t, exitUserError, ExitCode(err))
}

func TestLoadConfig(t *testing.T) {
	newWorkspace(t)

	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := loadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, types.BackendSim, cfg.Backend)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Zero(t, cfg.Timeout)
	})

	t.Run("file values with env override", func(t *testing.T) {
		dir := t.TempDir()
		body := "backend: http\nbase_url: https://portal.example.com\ntoken: abc\ntimeout: 5s\ndata_dir: /srv/portal\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
		t.Setenv("PORTAL_BASE_URL", "https://other.example.com")

		cfg, err := loadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, types.BackendHTTP, cfg.Backend)
		assert.Equal(t, "https://other.example.com", cfg.BaseURL)
		assert.Equal(t, "abc", cfg.Token)
		assert.Equal(t, "/srv/portal", cfg.DataDir)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [\n"), 0o600))
		_, err := loadConfig(dir)
		assert.Error(t, err)
	})
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"Title=a", " Note =x=y", "Empty="})
	require.NoError(t, err)
	assert.Equal(t, []assignment{{"Title", "a"}, {"Note", "x=y"}, {"Empty", ""}}, got)

	_, err = parseAssignments([]string{"=v"})
	assert.ErrorIs(t, err, errBadAssignment)
	_, err = parseAssignments([]string{"novalue"})
	assert.ErrorIs(t, err, errBadAssignment)
}

func TestExitCodeClassification(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitSuccess},
		{classify(fmt.Errorf("x: %w", types.ErrNotFound)), exitUserError},
		{classify(&types.APIError{StatusCode: 200, Message: "rejected"}), exitUserError},
		{classify(errors.New("connection refused")), exitSysError},
		{classify(exitError(exitSysError, types.ErrReadOnly)), exitSysError},
		{errors.New("unknown flag"), exitUserError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}
