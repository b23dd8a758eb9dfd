package shell

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/mfe/internal/alert"
	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/pagemeta"
	"github.com/opmodel/mfe/internal/query"
	"github.com/opmodel/mfe/internal/store"
	"github.com/opmodel/mfe/internal/testutil"
)

func isolated(dir string) Options {
	return Options{
		ModulesDir: dir,
		StaleTime:  time.Minute,
		Store:      store.New(),
		Alerts:     alert.NewStore(),
		Pages:      pagemeta.New(nil),
	}
}

func TestNew_DiscoversModules(t *testing.T) {
	dir := testutil.ModulesDir(t,
		testutil.Module{Name: "billing", PageName: "Billing", PageTitle: "Invoices"},
		testutil.Module{Name: "users"},
	)

	s, err := New(isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "users"}, s.Registry().Names())

	m, err := s.Module("billing")
	require.NoError(t, err)
	assert.Equal(t, "Billing", m.PageName())
	assert.Equal(t, "Invoices", m.PageTitle())
	assert.Equal(t, "billing", m.Name())
}

func TestNew_InvalidDescriptorFails(t *testing.T) {
	dir := testutil.ModulesDir(t, testutil.Module{Name: "Bad Name"})

	_, err := New(isolated(dir))
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestNew_NoModulesDir(t *testing.T) {
	s, err := New(isolated(""))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Registry().Len())
}

func TestModule_Unknown(t *testing.T) {
	s, err := New(isolated(testutil.ModulesDir(t)))
	require.NoError(t, err)

	_, err = s.Module("nope")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestModule_ScopesStateAndLinks(t *testing.T) {
	dir := testutil.ModulesDir(t, testutil.Module{Name: "a"}, testutil.Module{Name: "b"})
	s, err := New(isolated(dir))
	require.NoError(t, err)

	a, _ := s.Module("a")
	b, _ := s.Module("b")

	a.State().SetState(map[string]any{"n": 1})
	assert.Equal(t, 1, a.State().State()["n"])
	assert.Empty(t, b.State().State())

	_, ok := s.Store().Get("a")
	assert.True(t, ok)

	assert.Equal(t, "/a/x", a.Href("x"))
	assert.Equal(t, "/b/x", b.Href("/x"))
	el := a.Link("/p", map[string]string{"class": "nav"})
	assert.Equal(t, "/a/p", el.Href)
	assert.Equal(t, "nav", el.Props["class"])
}

func TestModule_QueryUsesModuleBase(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/a/items", r.URL.Path)
		_, _ = w.Write([]byte(`[1,2]`))
	}))
	t.Cleanup(srv.Close)

	dir := testutil.ModulesDir(t, testutil.Module{Name: "a", APIBaseURL: srv.URL + "/api/a/"})
	s, err := New(isolated(dir))
	require.NoError(t, err)
	m, _ := s.Module("a")

	res := m.Query(context.Background(), "items", "/items")
	require.NoError(t, res.Err)
	var got []int
	require.NoError(t, res.Decode(&got))
	assert.Equal(t, []int{1, 2}, got)

	res = m.Query(context.Background(), "items", "/items")
	assert.True(t, res.FromCache)
	assert.Equal(t, int32(1), hits.Load())

	_, ok := s.Cache().Get(CacheKey("a", "items"))
	assert.True(t, ok)
}

func TestModule_QueryAlertOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	dir := testutil.ModulesDir(t, testutil.Module{Name: "a", APIBaseURL: srv.URL})
	s, err := New(isolated(dir))
	require.NoError(t, err)
	m, _ := s.Module("a")

	res := m.Query(context.Background(), "", "/x", WithAlertOnError("Load failed"))
	require.Error(t, res.Err)

	cur := s.Alerts().Current()
	assert.True(t, cur.Show)
	assert.Equal(t, alert.ColorDanger, cur.Color)
	assert.Equal(t, "Load failed", cur.Title)
}

func TestModule_QueryWithoutAlertLeavesAlertIdle(t *testing.T) {
	dir := testutil.ModulesDir(t, testutil.Module{Name: "a"})
	s, err := New(isolated(dir))
	require.NoError(t, err)
	m, _ := s.Module("a")

	res := m.Query(context.Background(), "k", "/x")
	assert.True(t, errors.Is(res.Err, query.ErrNoBaseURL))
	assert.False(t, s.Alerts().Current().Show)
}

func TestModule_QueryOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	s, err := New(Options{
		ModulesDir:     testutil.ModulesDir(t, testutil.Module{Name: "a"}),
		DefaultAPIBase: srv.URL,
		Store:          store.New(),
		Alerts:         alert.NewStore(),
		Pages:          pagemeta.New(nil),
	})
	require.NoError(t, err)
	m, _ := s.Module("a")

	res := m.Query(context.Background(), "", "/x",
		WithMethod(http.MethodPost),
		WithBody(map[string]int{"a": 1}),
		WithHeader("X-Test", "yes"),
		WithAuthToken(query.StaticToken("abc")),
	)
	require.NoError(t, res.Err)
}

func TestModule_PersistedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer persisted", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("persisted\n"), 0o600))

	opts := isolated(testutil.ModulesDir(t, testutil.Module{Name: "a", APIBaseURL: srv.URL}))
	opts.TokenFile = tokenFile
	s, err := New(opts)
	require.NoError(t, err)
	m, _ := s.Module("a")

	require.NoError(t, m.Query(context.Background(), "", "/x").Err)
}

func TestReload_KeepsPageOverridesAndResetsRemovedState(t *testing.T) {
	dir := testutil.ModulesDir(t,
		testutil.Module{Name: "a", PageName: "A"},
		testutil.Module{Name: "b", PageName: "B"},
	)
	opts := isolated(dir)
	s, err := New(opts)
	require.NoError(t, err)

	a, _ := s.Module("a")
	b, _ := s.Module("b")
	a.SetPageName("Renamed")
	a.State().SetState(map[string]any{"x": 1})
	b.State().SetState(map[string]any{"y": 2})

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "b")))
	testutil.WriteModule(t, dir, testutil.Module{Name: "c", PageName: "C"})
	require.NoError(t, s.Reload())

	assert.Equal(t, []string{"a", "c"}, s.Registry().Names())
	assert.Same(t, opts.Pages, s.Pages())
	assert.Equal(t, "Renamed", s.Pages().PageName("a"))
	assert.Equal(t, "C", s.Pages().PageName("c"))

	_, ok := s.Store().Get("b")
	assert.False(t, ok)
	_, ok = s.Store().Get("a")
	assert.True(t, ok)
}

func TestReload_ErrorKeepsPreviousModules(t *testing.T) {
	dir := testutil.ModulesDir(t, testutil.Module{Name: "a"})
	s, err := New(isolated(dir))
	require.NoError(t, err)

	testutil.WriteModule(t, dir, testutil.Module{Dir: "dup", Name: "a"})
	require.Error(t, s.Reload())
	assert.Equal(t, []string{"a"}, s.Registry().Names())
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := testutil.ModulesDir(t, testutil.Module{Name: "a"})
	s, err := New(isolated(dir))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register, then write once so the debounce can fire.
	time.Sleep(100 * time.Millisecond)
	testutil.WriteModule(t, dir, testutil.Module{Name: "b"})

	require.Eventually(t, func() bool {
		return s.Registry().Len() == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_RequiresDir(t *testing.T) {
	s, err := New(isolated(""))
	require.NoError(t, err)
	assert.Error(t, s.Watch(context.Background()))
}
