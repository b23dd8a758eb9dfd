package cmdutil

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/config"
	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

func TestOutputFlags_AddTo(t *testing.T) {
	var f OutputFlags
	cmd := &cobra.Command{Use: "test"}
	f.AddTo(cmd)

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "table", flag.DefValue)

	f.Format = "json"
	got, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, got)
}

func TestRequestFlags_ParseHeaders(t *testing.T) {
	f := RequestFlags{Headers: []string{"X-A: 1", "Accept:application/json"}}
	got, err := f.ParseHeaders()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-A": "1", "Accept": "application/json"}, got)

	f.Headers = []string{"broken"}
	_, err = f.ParseHeaders()
	assert.Error(t, err)
}

func TestShellOptions(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{Config: &config.Config{
		ModulesDir: "/srv/modules",
		APIBaseURL: "http://api",
		TokenFile:  "/run/token",
		Query:      config.QueryConfig{StaleTime: "10s"},
	}}

	opts, err := ShellOptions(gc)
	require.NoError(t, err)
	assert.Equal(t, "/srv/modules", opts.ModulesDir)
	assert.Equal(t, "http://api", opts.DefaultAPIBase)
	assert.Equal(t, "/run/token", opts.TokenFile)
	assert.Equal(t, 10*time.Second, opts.StaleTime)

	gc.Config.Query.StaleTime = "later"
	_, err = ShellOptions(gc)
	assert.Error(t, err)
}

func TestHostAddr(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{Config: &config.Config{Server: config.ServerConfig{Addr: ":9000"}}}
	assert.Equal(t, ":1", HostAddr(gc, ":1"))
	assert.Equal(t, ":9000", HostAddr(gc, ""))
	assert.Equal(t, config.DefaultServerAddr, HostAddr(&cmdtypes.GlobalConfig{}, ""))
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, output.FormatJSON, map[string]int{"a": 1}, nil))
	assert.JSONEq(t, `{"a":1}`, buf.String())

	buf.Reset()
	require.NoError(t, Emit(&buf, output.FormatTable, nil, func() *output.Table {
		return output.NewTable("NAME").Row("billing")
	}))
	assert.Contains(t, buf.String(), "billing")

	buf.Reset()
	require.NoError(t, Emit(&buf, output.FormatTable, nil, func() *output.Table {
		return output.NewTable("NAME")
	}))
	assert.Contains(t, buf.String(), "(none)")
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"n=3", "ok=true", `s="quoted"`, "plain=hello world", "obj={\"a\":1}"})
	require.NoError(t, err)
	assert.Equal(t, float64(3), got["n"])
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "quoted", got["s"])
	assert.Equal(t, "hello world", got["plain"])
	assert.Equal(t, map[string]any{"a": float64(1)}, got["obj"])

	_, err = ParseAssignments([]string{"=x"})
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestHostClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/state/a":
			_, _ = w.Write([]byte(`{"n":1}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/state/a":
			_, _ = w.Write([]byte(`{"n":2}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/state/a":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"module \"x\" is not loaded","code":"NOT_FOUND"}`))
		}
	}))
	t.Cleanup(srv.Close)

	c := NewHostClient(strings.TrimPrefix(srv.URL, "http://"), nil)
	ctx := context.Background()

	got, err := c.State(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["n"])

	got, err = c.MergeState(ctx, "a", map[string]any{"n": 2})
	require.NoError(t, err)
	assert.Equal(t, float64(2), got["n"])

	require.NoError(t, c.ResetState(ctx, "a"))

	_, err = c.State(ctx, "x")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.Contains(t, err.Error(), "not loaded")
}

func TestHostClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHostClient(addr, nil).State(context.Background(), "")
	assert.ErrorIs(t, err, oerrors.ErrConnectivity)
}

func TestExitFor(t *testing.T) {
	assert.NoError(t, cmdtypes.ExitFor(nil, false))

	err := cmdtypes.ExitFor(oerrors.Wrap(oerrors.ErrNotFound, "gone"), true)
	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cmdtypes.ExitNotFound, exitErr.Code)
	assert.True(t, exitErr.Printed)
}

func TestPrintError_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		PrintError("failed", oerrors.NewValidationError("bad", "/x", "moduleName", "fix it"))
		PrintError("failed", assert.AnError)
	})
}
