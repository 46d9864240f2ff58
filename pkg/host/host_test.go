package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/navstack-dev/navstack/pkg/nav"
	"github.com/navstack-dev/navstack/pkg/routeinfo"
	"github.com/navstack-dev/navstack/pkg/snapshot"
)

func pageBuilder(route string, content any) nav.PageBuilder {
	return nav.BuilderFunc{
		Route: route,
		Build: func(ctx context.Context, dest nav.Destination) (any, error) {
			return content, nil
		},
	}
}

func newTestHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	builders := []nav.PageBuilder{
		pageBuilder("/home", "home"),
		pageBuilder("/profile", "profile"),
		pageBuilder("/settings", "settings"),
	}
	delegate, err := nav.New(context.Background(), nav.NewDestination("/home", nil), builders)
	require.NoError(t, err)
	return New(delegate, opts...)
}

func hostPaths(h *Host) []string {
	pages := h.Pages()
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.Name
	}
	return paths
}

func TestHostNavigateAndClose(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()

	pending, err := h.NavigateTo(ctx, "/profile", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"/home", "/profile"}, hostPaths(h))
	require.True(t, h.CanClose())

	require.NoError(t, h.Close(ctx, "picked"))
	require.Equal(t, []string{"/home"}, hostPaths(h))

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	result, err := pending.Wait(waitCtx)
	require.NoError(t, err)
	require.Equal(t, "picked", result)
}

func TestHostSetNewRouteFromRouteInformation(t *testing.T) {
	h := newTestHost(t)

	err := h.SetNewRoute(context.Background(), routeinfo.RouteInformation{
		Location: "/profile?tab=posts",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/home", "/profile"}, hostPaths(h))

	top := h.Pages()[1]
	args, ok := top.Destination.Arguments.(map[string]string)
	require.True(t, ok)
	require.Equal(t, "posts", args["tab"])
}

func TestHostSetNewRouteRejectsBadLocation(t *testing.T) {
	h := newTestHost(t)
	err := h.SetNewRoute(context.Background(), routeinfo.RouteInformation{Location: "/a\\b"})
	require.Error(t, err)
	require.Equal(t, []string{"/home"}, hostPaths(h))
}

// vetoingContent refuses platform pops.
type vetoingContent struct{ accept bool }

func (v vetoingContent) AcceptPop() bool { return v.accept }

func TestHostPlatformPopVeto(t *testing.T) {
	builders := []nav.PageBuilder{
		pageBuilder("/home", "home"),
		pageBuilder("/form", vetoingContent{accept: false}),
	}
	delegate, err := nav.New(context.Background(), nav.NewDestination("/home", nil), builders)
	require.NoError(t, err)
	h := New(delegate)

	_, err = h.NavigateTo(context.Background(), "/form", nil)
	require.NoError(t, err)

	require.False(t, h.OnPlatformPop(context.Background(), "/form", nil),
		"vetoing page must not be popped")
	require.Equal(t, []string{"/home", "/form"}, hostPaths(h))
}

func TestHostPlatformPopAccepted(t *testing.T) {
	h := newTestHost(t)
	pending, err := h.NavigateTo(context.Background(), "/profile", nil)
	require.NoError(t, err)

	require.True(t, h.OnPlatformPop(context.Background(), "/profile", "done"))
	require.Equal(t, []string{"/home"}, hostPaths(h))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := pending.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, "done", result)
}

func TestHostPlatformPopUnknownPage(t *testing.T) {
	h := newTestHost(t)
	require.False(t, h.OnPlatformPop(context.Background(), "/nope", nil))
}

func TestHostSnapshotPersistAndRestore(t *testing.T) {
	store := snapshot.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	h := newTestHost(t, WithSnapshotStore(store, "shell", 0))
	_, err := h.NavigateTo(ctx, "/profile", nil)
	require.NoError(t, err)
	_, err = h.NavigateTo(ctx, "/settings", nil)
	require.NoError(t, err)

	// A fresh host over a fresh delegate restores the persisted stack.
	restored := newTestHost(t, WithSnapshotStore(store, "shell", 0))
	require.NoError(t, restored.Restore(ctx))
	require.Equal(t, []string{"/home", "/profile", "/settings"}, hostPaths(restored))
}

func TestHostRestoreWithoutSnapshotIsNoop(t *testing.T) {
	store := snapshot.NewMemoryStore()
	defer store.Close()

	h := newTestHost(t, WithSnapshotStore(store, "empty", 0))
	require.NoError(t, h.Restore(context.Background()))
	require.Equal(t, []string{"/home"}, hostPaths(h))
}

func TestHostInterceptorOrderAndOpInfo(t *testing.T) {
	var order []string
	outer := InterceptorFunc(func(op *OpInfo, next func() error) error {
		order = append(order, "outer:"+op.Name)
		return next()
	})
	inner := InterceptorFunc(func(op *OpInfo, next func() error) error {
		order = append(order, "inner:"+op.Path)
		return next()
	})

	h := newTestHost(t, WithInterceptors(outer, inner))
	_, err := h.NavigateTo(context.Background(), "/profile", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"outer:navigate_to", "inner:/profile"}, order)
}

func TestHostInterceptorCanFailOperation(t *testing.T) {
	denied := errors.New("denied")
	guard := InterceptorFunc(func(op *OpInfo, next func() error) error {
		if op.Name == "navigate_to" {
			return denied
		}
		return next()
	})

	h := newTestHost(t, WithInterceptors(guard))
	_, err := h.NavigateTo(context.Background(), "/profile", nil)
	require.ErrorIs(t, err, denied)
	require.Equal(t, []string{"/home"}, hostPaths(h))
}

func TestHostReset(t *testing.T) {
	h := newTestHost(t)
	pending, err := h.NavigateTo(context.Background(), "/profile", nil)
	require.NoError(t, err)

	login := pageBuilder("/login", "login")
	require.NoError(t, h.Reset(context.Background(), "/login", []nav.PageBuilder{login}, nil))
	require.Equal(t, []string{"/login"}, hostPaths(h))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = pending.Wait(ctx)
	require.ErrorIs(t, err, nav.ErrAbandoned)
}
