package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vidshare/internal/app/client"
	"vidshare/internal/app/client/config"
	"vidshare/internal/app/client/view"
	"vidshare/internal/domain/video"
	"vidshare/internal/testing/fakeapi"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestModel(t *testing.T, srv *fakeapi.Server, token string) (*Model, *client.Session) {
	t.Helper()

	store := &client.MemoryTokenStore{}
	require.NoError(t, store.Save(token))
	session := client.NewSession(store, discard)

	app, err := client.NewWithDeps(&config.Config{APIURL: srv.URL}, discard, session, client.NewMemoryStorage())
	require.NoError(t, err)

	m := NewModel(context.Background(), app, session, discard, view.WithScheduler(func(_ time.Duration, f func()) func() bool {
		f()
		return func() bool { return false }
	}))
	return m, session
}

// drive выполняет cmd и передает собственные сообщения интерфейса в Update
func drive(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				drive(m, c)
			}
			return
		case changedMsg, refreshedMsg, submittedMsg, uploadedMsg, viewedMsg, deletedMsg:
			_, cmd = m.Update(msg)
		default:
			return
		}
	}
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		drive(m, cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestModel_LoginFlow(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("alice", "a@x.io", "pw")
	srv.AddVideo(video.Video{Title: "Cats", Uploader: "alice"}, []byte("x"))

	m, session := newTestModel(t, srv, "")
	assert.Equal(t, LoginState, m.state())
	assert.Contains(t, m.View(), "Вход")

	m.loginInputs[0].SetValue("a@x.io")
	m.loginInputs[1].SetValue("wrong")
	press(m, enter)

	assert.Equal(t, LoginState, m.state())
	assert.Contains(t, m.View(), view.MsgLoginFailed)

	m.loginInputs[1].SetValue("pw")
	press(m, enter)

	assert.True(t, session.Authenticated())
	assert.Equal(t, VideosState, m.state())
	assert.Empty(t, m.loginInputs[0].Value())
	require.Len(t, m.videoList.Items(), 1)
	assert.Equal(t, "Cats", m.videoList.Items()[0].(videoItem).video.Title)
}

func TestModel_SwitchToRegisterAndBack(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, RegisterState, m.state())

	m.registerInputs[0].SetValue("bob")
	m.registerInputs[1].SetValue("b@x.io")
	m.registerInputs[2].SetValue("pw")
	m.registerInputs[3].SetValue("other")
	press(m, enter)
	assert.Contains(t, m.View(), view.MsgPasswordMismatch)

	m.registerInputs[3].SetValue("pw")
	press(m, enter)

	// планировщик в тесте срабатывает сразу
	assert.Equal(t, LoginState, m.state())
	assert.Empty(t, m.registerInputs[0].Value())
}

func TestModel_FocusCycles(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "")

	assert.True(t, m.loginInputs[0].Focused())
	press(m, tab)
	assert.True(t, m.loginInputs[1].Focused())
	press(m, tab)
	assert.True(t, m.loginInputs[0].Focused())
}

func TestModel_PlayRecordsView(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("c", "c@x.io", "pw")
	token := srv.IssueToken("c@x.io")
	v := srv.AddVideo(video.Video{Title: "Clip"}, []byte("x"))

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())

	press(m, runes("p"))

	assert.Equal(t, srv.URL+"/uploads/"+v.FilePath, m.nowPlaying)
	assert.Equal(t, 1, srv.Videos()[0].Views)
	assert.Equal(t, 1, srv.CallCount("POST", "/api/videos/"+v.ID+"/view"))
	// список обновлен после просмотра
	assert.Equal(t, 2, srv.CallCount("GET", "/api/videos"))
}

func TestModel_DeleteWithConfirmation(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("d", "d@x.io", "pw")
	token := srv.IssueToken("d@x.io")
	srv.AddVideo(video.Video{Title: "Doomed"}, []byte("x"))

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())

	press(m, runes("d"))
	assert.Equal(t, ConfirmState, m.state())
	assert.Contains(t, m.View(), view.MsgConfirmDelete)

	press(m, runes("n"))
	assert.Equal(t, VideosState, m.state())
	assert.Len(t, srv.Videos(), 1)

	press(m, runes("d"), runes("y"))
	assert.Equal(t, VideosState, m.state())
	assert.Empty(t, srv.Videos())
	assert.Equal(t, view.MsgNoVideos, m.views.Videos.Placeholder())
}

func TestModel_DeleteFailureShowsAlert(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("e", "e@x.io", "pw")
	token := srv.IssueToken("e@x.io")
	v := srv.AddVideo(video.Video{Title: "Stuck"}, []byte("x"))
	srv.Respond("DELETE", "/api/videos/"+v.ID, 500, "application/json", `{"error":"Failed to delete video","details":"disk busy"}`)

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())

	press(m, runes("d"), runes("y"))

	assert.Equal(t, "Удаление не удалось: disk busy", m.alert)
	assert.Contains(t, m.View(), "disk busy")
}

func TestModel_UploadFlow(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("f", "f@x.io", "pw")
	token := srv.IssueToken("f@x.io")

	path := filepath.Join(t.TempDir(), "movie.mp4")
	require.NoError(t, os.WriteFile(path, []byte("mp4"), 0600))

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())

	press(m, runes("u"))
	assert.Equal(t, UploadState, m.state())
	assert.True(t, m.uploadInputs[0].Focused())

	m.uploadInputs[0].SetValue("Movie")
	m.uploadInputs[1].SetValue(path)
	press(m, enter)

	assert.Equal(t, VideosState, m.state())
	require.Len(t, srv.Uploads(), 1)
	assert.Equal(t, "video/mp4", srv.Uploads()[0].ContentType)
	require.Len(t, m.videoList.Items(), 1)
	assert.Empty(t, m.uploadInputs[0].Value())
}

func TestModel_LogoutReturnsToLogin(t *testing.T) {
	srv := fakeapi.New(t)
	m, session := newTestModel(t, srv, "token")

	assert.Equal(t, VideosState, m.state())
	press(m, runes("L"))

	assert.Equal(t, LoginState, m.state())
	assert.False(t, session.Authenticated())
	assert.True(t, m.loginInputs[0].Focused())
}

func TestModel_QuitKeys(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "token")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// в форме q вводится как текст
	m2, _ := newTestModel(t, srv, "")
	_, cmd = m2.Update(runes("q"))
	drive(m2, cmd)
	assert.Equal(t, "q", m2.loginInputs[0].Value())
}

func TestModel_ListFailureStaysSilent(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("g", "g@x.io", "pw")
	token := srv.IssueToken("g@x.io")
	v := srv.AddVideo(video.Video{Title: "Kept"}, []byte("x"))

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())
	require.Len(t, m.videoList.Items(), 1)

	// список и просмотр падают: на экране прежний список без ошибок
	srv.Respond("GET", "/api/videos", 500, "text/plain", "boom")
	srv.Respond("POST", "/api/videos/"+v.ID+"/view", 500, "text/plain", "boom")
	press(m, runes("r"), runes("p"))

	out := m.View()
	assert.Len(t, m.videoList.Items(), 1)
	assert.NotContains(t, out, "Ошибка")
	assert.NotContains(t, out, "boom")
}

func TestModel_ListTransportFailureShowsPlaceholder(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "token")
	srv.Close()

	drive(m, m.refresh())

	out := m.View()
	assert.Contains(t, out, view.MsgNoVideos)
	assert.NotContains(t, out, "Ошибка")
	assert.NotContains(t, out, "transport error")
}

func TestModel_UploadUnsupportedTypeBlocksSubmit(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("h", "h@x.io", "pw")
	token := srv.IssueToken("h@x.io")

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0600))

	m, _ := newTestModel(t, srv, token)
	drive(m, m.refresh())

	press(m, runes("u"))
	assert.Contains(t, m.View(), "Разрешены: video/mp4")
	assert.NotContains(t, m.View(), "отправить")

	m.uploadInputs[0].SetValue("Notes")
	press(m, tab)
	m.uploadInputs[1].SetValue(path)
	press(m, tab)

	up := m.views.Videos.Upload()
	require.NotNil(t, up.File())
	assert.False(t, up.CanSubmit())
	assert.Contains(t, m.View(), view.MsgUploadUnsupported)
	assert.NotContains(t, m.View(), "отправить")

	press(m, tab, enter)
	assert.Equal(t, UploadState, m.state())
	assert.Empty(t, srv.Uploads())
}

func TestModel_UploadMissingFileShown(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "token")

	press(m, runes("u"))
	m.uploadInputs[0].SetValue("Ghost")
	m.uploadInputs[1].SetValue(filepath.Join(t.TempDir(), "missing.mp4"))
	press(m, enter)

	assert.Equal(t, UploadState, m.state())
	assert.Contains(t, m.View(), "missing.mp4")
	assert.Empty(t, srv.Uploads())
}

func TestModel_UploadBackResetsForm(t *testing.T) {
	srv := fakeapi.New(t)
	m, _ := newTestModel(t, srv, "token")

	path := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(path, []byte("webm"), 0600))

	press(m, runes("u"))
	m.uploadInputs[0].SetValue("Clip")
	press(m, tab)
	m.uploadInputs[1].SetValue(path)
	press(m, tab)

	up := m.views.Videos.Upload()
	require.NotNil(t, up.File())
	assert.True(t, up.CanSubmit())
	assert.Contains(t, m.View(), "отправить")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, VideosState, m.state())
	assert.Nil(t, up.File())
	assert.Empty(t, up.Title())
	assert.Empty(t, m.uploadInputs[0].Value())
	assert.Empty(t, m.uploadInputs[1].Value())
}

func TestModel_LoadingUntilFirstFetch(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddAccount("i", "i@x.io", "pw")
	m, _ := newTestModel(t, srv, srv.IssueToken("i@x.io"))

	assert.True(t, m.views.Videos.Loading())
	assert.Contains(t, m.View(), view.MsgLoading)

	drive(m, m.refresh())
	assert.False(t, m.views.Videos.Loading())
	assert.Contains(t, m.View(), view.MsgNoVideos)
}
