package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/exp/slog"

	"vidshare/internal/app/client/view"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

// ViewState текущий экран интерфейса
type ViewState int

const (
	LoginState ViewState = iota
	RegisterState
	VideosState
	UploadState
	ConfirmState
)

// uploadFileField индекс поля пути в форме загрузки
const uploadFileField = 1

// Views модели представления, которые отрисовывает интерфейс
type Views struct {
	Gate     *view.Gate
	Login    *view.LoginView
	Register *view.RegisterView
	Videos   *view.ListView
}

// Model состояние интерфейса
type Model struct {
	ctx     context.Context
	views   Views
	answers *answerBox
	alerts  *alertBox

	loginInputs    []textinput.Model
	registerInputs []textinput.Model
	uploadInputs   []textinput.Model
	focus          int
	lastState      ViewState

	videoList     list.Model
	pendingDelete *video.Video
	deleting      bool
	alert         string
	nowPlaying    string

	// fileErr ошибка чтения выбранного для загрузки файла
	fileErr error

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel собирает Gate и представления поверх api и session.
// Подтверждение удаления и предупреждения рисует сам интерфейс.
func NewModel(ctx context.Context, api view.API, session view.Session, log *slog.Logger, opts ...view.Option) *Model {
	m := &Model{
		ctx:     ctx,
		answers: &answerBox{},
		alerts:  &alertBox{},
		help:    help.New(),
		keys:    newKeyMap(),
	}

	opts = append(opts, view.WithConfirmer(m.answers), view.WithAlerter(m.alerts))

	gate := view.NewGate(session, log)
	m.views = Views{
		Gate:     gate,
		Login:    view.NewLoginView(api, gate, session, log),
		Register: view.NewRegisterView(api, gate, log, opts...),
		Videos:   view.NewListView(api, gate, log, opts...),
	}

	m.loginInputs = []textinput.Model{
		newInput("email", false),
		newInput("пароль", true),
	}
	m.registerInputs = []textinput.Model{
		newInput("имя пользователя", false),
		newInput("email", false),
		newInput("пароль", true),
		newInput("повторите пароль", true),
	}
	m.uploadInputs = []textinput.Model{
		newInput("название", false),
		newInput("путь к файлу", false),
	}

	m.videoList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.videoList.Title = "Видео"
	m.videoList.SetShowHelp(false)

	m.lastState = m.state()
	m.focusInputs()
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// Init загружает список, если вход уже выполнен
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.views.Gate.Screen() == view.ScreenVideos {
		cmds = append(cmds, m.refresh())
	}
	return tea.Batch(cmds...)
}

// Update обрабатывает входящие сообщения
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.videoList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case changedMsg:
		m.syncFocus()
		return m, m.syncVideos()

	case refreshedMsg:
		return m, m.syncVideos()

	case submittedMsg:
		if msg.err != nil {
			return m, nil
		}
		switch msg.screen {
		case view.ScreenLogin:
			clearInputs(m.loginInputs)
		case view.ScreenRegister:
			form := m.views.Register.Form()
			for i, value := range []string{form.Username, form.Email, form.Password, form.ConfirmPassword} {
				m.registerInputs[i].SetValue(value)
			}
		}
		m.syncFocus()
		if m.views.Gate.Screen() == view.ScreenVideos {
			return m, m.refresh()
		}
		return m, nil

	case uploadedMsg:
		if msg.err == nil {
			clearInputs(m.uploadInputs)
		}
		m.syncFocus()
		return m, m.syncVideos()

	case viewedMsg:
		m.nowPlaying = msg.url
		return m, m.syncVideos()

	case deletedMsg:
		m.pendingDelete = nil
		m.deleting = false
		m.alert = m.alerts.take()
		m.syncFocus()
		return m, m.syncVideos()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}

		var cmd tea.Cmd
		switch m.state() {
		case LoginState:
			cmd = m.handleFormKeys(msg, m.submitLogin)
		case RegisterState:
			cmd = m.handleFormKeys(msg, m.submitRegister)
		case UploadState:
			cmd = m.handleUploadKeys(msg)
		case ConfirmState:
			cmd = m.handleConfirmKeys(msg)
		default:
			cmd = m.handleVideoKeys(msg)
		}
		m.syncFocus()
		return m, cmd
	}

	return m, m.updateInputs(msg)
}

// View отрисовывает текущий экран
func (m *Model) View() string {
	switch m.state() {
	case LoginState:
		return m.renderForm("Вход", []string{"Email", "Пароль"}, m.loginInputs,
			m.views.Login.Status(), m.views.Login.Submitting(),
			[]key.Binding{m.keys.next, m.keys.submit, m.keys.switchForm, m.keys.forceQuit})
	case RegisterState:
		return m.renderForm("Регистрация", []string{"Имя пользователя", "Email", "Пароль", "Повторите пароль"}, m.registerInputs,
			m.views.Register.Status(), m.views.Register.Submitting(),
			[]key.Binding{m.keys.next, m.keys.submit, m.keys.switchForm, m.keys.forceQuit})
	case UploadState:
		return m.renderUpload()
	case ConfirmState:
		return m.renderConfirm()
	default:
		return m.renderVideos()
	}
}

func (m *Model) state() ViewState {
	switch m.views.Gate.Screen() {
	case view.ScreenRegister:
		return RegisterState
	case view.ScreenVideos:
		switch {
		case m.pendingDelete != nil:
			return ConfirmState
		case m.views.Videos.ShowingUpload():
			return UploadState
		default:
			return VideosState
		}
	default:
		return LoginState
	}
}

func (m *Model) inputs() []textinput.Model {
	switch m.state() {
	case LoginState:
		return m.loginInputs
	case RegisterState:
		return m.registerInputs
	case UploadState:
		return m.uploadInputs
	default:
		return nil
	}
}

// syncFocus при смене экрана переводит фокус на первое поле
func (m *Model) syncFocus() {
	if s := m.state(); s != m.lastState {
		m.lastState = s
		m.focus = 0
		m.focusInputs()
	}
}

func (m *Model) focusInputs() {
	ins := m.inputs()
	for i := range ins {
		if i == m.focus {
			ins[i].Focus()
		} else {
			ins[i].Blur()
		}
	}
}

func (m *Model) moveFocus(delta int) {
	ins := m.inputs()
	if len(ins) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(ins)) % len(ins)
	m.focusInputs()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	ins := m.inputs()
	cmds := make([]tea.Cmd, len(ins))
	for i := range ins {
		ins[i], cmds[i] = ins[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func clearInputs(ins []textinput.Model) {
	for i := range ins {
		ins[i].SetValue("")
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.next):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.prev):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, m.keys.submit):
		return submit()
	case key.Matches(msg, m.keys.switchForm):
		if m.state() == LoginState {
			m.views.Gate.ShowRegister()
		} else {
			m.views.Gate.ShowLogin()
		}
		return nil
	}
	return m.updateInputs(msg)
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.back) {
		m.views.Videos.Upload().Reset()
		clearInputs(m.uploadInputs)
		m.fileErr = nil
		m.views.Videos.ToggleUpload()
		return nil
	}

	// файл выбирается, когда фокус уходит с поля пути
	leavingFile := m.focus == uploadFileField &&
		(key.Matches(msg, m.keys.next) || key.Matches(msg, m.keys.prev))
	cmd := m.handleFormKeys(msg, m.submitUpload)
	if leavingFile {
		m.selectUploadFile()
	}
	return cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	if m.deleting {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.yes):
		id := m.pendingDelete.ID
		m.deleting = true
		m.answers.set(true)
		return func() tea.Msg {
			deleted, err := m.views.Videos.Delete(m.ctx, id)
			return deletedMsg{deleted: deleted, err: err}
		}
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.pendingDelete = nil
	}
	return nil
}

func (m *Model) handleVideoKeys(msg tea.KeyMsg) tea.Cmd {
	if m.videoList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.videoList, cmd = m.videoList.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.upload):
		m.views.Videos.ToggleUpload()
		return nil
	case key.Matches(msg, m.keys.play):
		if v := m.selected(); v != nil {
			return m.play(*v)
		}
		return nil
	case key.Matches(msg, m.keys.remove):
		if v := m.selected(); v != nil {
			m.pendingDelete = v
			m.alert = ""
		}
		return nil
	case key.Matches(msg, m.keys.refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.logout):
		_ = m.views.Videos.Logout()
		m.nowPlaying = ""
		return nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return cmd
}

func (m *Model) selected() *video.Video {
	item, ok := m.videoList.SelectedItem().(videoItem)
	if !ok {
		return nil
	}
	v := item.video
	return &v
}

func (m *Model) syncVideos() tea.Cmd {
	return m.videoList.SetItems(videoItems(m.views.Videos.Videos()))
}

func (m *Model) submitLogin() tea.Cmd {
	m.views.Login.SetCredentials(user.Credentials{
		Email:    strings.TrimSpace(m.loginInputs[0].Value()),
		Password: m.loginInputs[1].Value(),
	})
	return func() tea.Msg {
		return submittedMsg{screen: view.ScreenLogin, err: m.views.Login.Submit(m.ctx)}
	}
}

func (m *Model) submitRegister() tea.Cmd {
	m.views.Register.SetForm(user.RegisterForm{
		Username:        strings.TrimSpace(m.registerInputs[0].Value()),
		Email:           strings.TrimSpace(m.registerInputs[1].Value()),
		Password:        m.registerInputs[2].Value(),
		ConfirmPassword: m.registerInputs[3].Value(),
	})
	return func() tea.Msg {
		return submittedMsg{screen: view.ScreenRegister, err: m.views.Register.Submit(m.ctx)}
	}
}

// selectUploadFile передает форме файл из поля пути. Файл
// неразрешенного типа форма запоминает и показывает ошибку сама.
func (m *Model) selectUploadFile() {
	up := m.views.Videos.Upload()
	path := strings.TrimSpace(m.uploadInputs[uploadFileField].Value())

	m.fileErr = nil
	if path == "" {
		_ = up.SetFile(nil)
		return
	}

	f, err := video.NewUploadFile(path)
	if err != nil {
		_ = up.SetFile(nil)
		m.fileErr = err
		return
	}
	_ = up.SetFile(f)
}

func (m *Model) submitUpload() tea.Cmd {
	up := m.views.Videos.Upload()
	up.SetTitle(strings.TrimSpace(m.uploadInputs[0].Value()))
	m.selectUploadFile()

	if m.fileErr != nil {
		return nil
	}
	// ошибка формы уже показана
	if !up.CanSubmit() && !up.Status().Empty() {
		return nil
	}

	return func() tea.Msg {
		return uploadedMsg{err: up.Submit(m.ctx)}
	}
}

// refresh перезапрашивает список. Ошибка только в логе: пользователь
// видит прежний список.
func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		_ = m.views.Videos.Refresh(m.ctx)
		return refreshedMsg{}
	}
}

func (m *Model) play(v video.Video) tea.Cmd {
	url := m.views.Videos.MediaURL(v)
	return func() tea.Msg {
		_ = m.views.Videos.RecordView(m.ctx, v.ID)
		return viewedMsg{url: url}
	}
}

func (m *Model) renderForm(title string, labels []string, ins []textinput.Model, status view.Status, busy bool, helpKeys []key.Binding) string {
	var b strings.Builder
	b.WriteString(styles.heading.Render(title))
	b.WriteString("\n")

	for i := range ins {
		fmt.Fprintf(&b, "%s\n%s\n\n", labels[i], ins[i].View())
	}

	switch {
	case busy:
		b.WriteString(styles.pending.Render("Отправка..."))
		b.WriteString("\n")
	case status.Error:
		b.WriteString(styles.failure.Render(status.Message))
		b.WriteString("\n")
	case !status.Empty():
		b.WriteString(styles.ok.Render(status.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderUpload() string {
	up := m.views.Videos.Upload()

	// подсказка enter скрыта, пока форму нельзя отправить
	submit := m.keys.submit
	submit.SetEnabled(up.CanSubmit())

	form := m.renderForm("Загрузка видео", []string{"Название", "Файл"}, m.uploadInputs,
		up.Status(), up.Uploading(),
		[]key.Binding{m.keys.next, submit, m.keys.back, m.keys.forceQuit})

	var b strings.Builder
	if m.fileErr != nil {
		b.WriteString(styles.failure.Render(m.fileErr.Error()))
		b.WriteString("\n")
	}
	if up.Strict() {
		b.WriteString(styles.hint.Render(allowedTypesHint()))
		b.WriteString("\n")
	}
	return b.String() + form
}

func allowedTypesHint() string {
	names := make([]string, len(video.AllowedMediaTypes))
	for i, t := range video.AllowedMediaTypes {
		names[i] = t.String()
	}
	return "Разрешены: " + strings.Join(names, ", ")
}

func (m *Model) renderVideos() string {
	var b strings.Builder

	if placeholder := m.views.Videos.Placeholder(); placeholder != "" {
		b.WriteString(styles.heading.Render("Видео"))
		b.WriteString("\n")
		if m.views.Videos.Loading() {
			placeholder = styles.pending.Render(placeholder)
		}
		b.WriteString(placeholder)
		b.WriteString("\n")
	} else {
		b.WriteString(m.videoList.View())
		b.WriteString("\n")
	}

	if m.nowPlaying != "" {
		b.WriteString(styles.ok.Render("▶ " + m.nowPlaying))
		b.WriteString("\n")
	}
	if m.alert != "" {
		b.WriteString(styles.failure.Render(m.alert))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.play, m.keys.upload, m.keys.remove, m.keys.refresh, m.keys.logout, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderConfirm() string {
	title := styles.heading.Render(view.MsgConfirmDelete)
	info := fmt.Sprintf("\n%s (%s)\n", m.pendingDelete.Title, m.pendingDelete.ID)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

// answerBox ответ с экрана подтверждения для следующего вызова Confirm
type answerBox struct {
	mu     sync.Mutex
	answer bool
}

func (a *answerBox) set(answer bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.answer = answer
}

func (a *answerBox) Confirm(string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	answer := a.answer
	a.answer = false
	return answer
}

// alertBox хранит последнее предупреждение до отрисовки
type alertBox struct {
	mu      sync.Mutex
	message string
}

func (a *alertBox) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.message = message
}

func (a *alertBox) take() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg := a.message
	a.message = ""
	return msg
}
