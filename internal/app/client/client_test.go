package client

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vidshare/internal/app/client/config"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
	"vidshare/internal/testing/fakeapi"
)

func newTestApp(t *testing.T, srv *fakeapi.Server, token string) *App {
	t.Helper()

	store := &MemoryTokenStore{}
	require.NoError(t, store.Save(token))

	app, err := NewWithDeps(&config.Config{APIURL: srv.URL}, slog.Default(), NewSession(store, slog.Default()), NewMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNew_UsesConfigPaths(t *testing.T) {
	dir := t.TempDir()
	srv := fakeapi.New(t)

	cfg := &config.Config{
		APIURL:    srv.URL,
		TokenPath: filepath.Join(dir, "token"),
		CachePath: filepath.Join(dir, "cache.db"),
	}

	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.IsAuthenticated())
	assert.ErrorIs(t, app.RequireAuth(), ErrNotAuthenticated)
	_, ok := app.storage.(*SQLiteStorage)
	assert.True(t, ok)
	assert.Same(t, cfg, app.Config())
}

func TestApp_LoginAndListUpdatesCache(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("alice", "a@x.io", "pw")
	srv.AddVideo(video.Video{Title: "one", Uploader: "alice"}, []byte("1"))
	srv.AddVideo(video.Video{Title: "two", Uploader: "alice"}, []byte("2"))

	app := newTestApp(t, srv, "")
	ctx := context.Background()

	resp, err := app.Login(ctx, user.LoginRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, app.Session().SetToken(resp.AccessToken))
	require.NoError(t, app.RequireAuth())

	fixed := time.UnixMilli(1_700_000_000_000)
	app.now = func() time.Time { return fixed }

	videos, err := app.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	cached, at, err := app.CachedVideos()
	require.NoError(t, err)
	assert.Equal(t, videos, cached)
	assert.True(t, fixed.Equal(at))
}

func TestApp_FailedListKeepsCache(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("bob", "b@x.io", "pw")
	token := srv.IssueToken("b@x.io")
	srv.AddVideo(video.Video{Title: "kept"}, []byte("k"))

	app := newTestApp(t, srv, token)
	ctx := context.Background()

	_, err := app.ListVideos(ctx)
	require.NoError(t, err)

	srv.Respond("GET", "/api/videos", 500, "text/plain", "boom")
	_, err = app.ListVideos(ctx)
	require.Error(t, err)

	cached, _, err := app.CachedVideos()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "kept", cached[0].Title)
}

func TestApp_FindVideoAndDownload(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("c", "c@x.io", "pw")
	token := srv.IssueToken("c@x.io")
	v := srv.AddVideo(video.Video{Title: "clip"}, []byte("payload"))

	app := newTestApp(t, srv, token)
	ctx := context.Background()

	found, err := app.FindVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "clip", found.Title)

	_, err = app.FindVideo(ctx, "nope")
	assert.ErrorIs(t, err, video.ErrNotFound)

	var buf bytes.Buffer
	_, err = app.Download(ctx, found.FilePath, &buf)
	require.NoError(t, err)
	assert.Equal(t, "payload", buf.String())
	assert.Equal(t, srv.URL+"/uploads/"+found.FilePath, app.MediaURL(found.FilePath))
}

func TestApp_CheckConnection(t *testing.T) {
	srv := fakeapi.New(t)
	app := newTestApp(t, srv, "")

	// 401 без токена: сервер доступен
	assert.NoError(t, app.CheckConnection(context.Background()))

	srv.Close()
	err := app.CheckConnection(context.Background())
	assert.True(t, IsTransport(err))
}
