// Package fakeapi поддельный REST API сервиса видео внутри процесса.
// Используется тестами клиента, представлений и CLI.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

// Call запрос, который получил сервер
type Call struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// Upload разобранное multipart-тело POST /api/videos
type Upload struct {
	Title       string
	FileName    string
	ContentType string
	Data        []byte
}

type account struct {
	Username string
	Email    string
	Password string
}

// Server обслуживает API на httptest.Server
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]account
	tokens    map[string]string
	videos    []video.Video
	files     map[string][]byte
	calls     []Call
	uploads   []Upload
	overrides map[string]http.HandlerFunc
	nextID    int
}

// New запускает сервер; он закрывается по окончании теста
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts:  make(map[string]account),
		tokens:    make(map[string]string),
		files:     make(map[string][]byte),
		overrides: make(map[string]http.HandlerFunc),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.override)

	r.Post("/api/register", s.register)
	r.Post("/api/login", s.login)
	r.Get("/uploads/{file}", s.media)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/api/videos", s.listVideos)
		r.Post("/api/videos", s.createVideo)
		r.Post("/api/videos/{id}/view", s.incrementViews)
		r.Delete("/api/videos/{id}", s.deleteVideo)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

// AddAccount регистрирует пользователя напрямую
func (s *Server) AddAccount(username, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{Username: username, Email: email, Password: password}
}

// IssueToken выдает действующий токен для учетной записи с email
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(email)
}

func (s *Server) issueLocked(email string) string {
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.tokens[token] = email
	return token
}

// AddVideo сохраняет запись видео и его содержимое
func (s *Server) AddVideo(v video.Video, data []byte) video.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		s.nextID++
		v.ID = fmt.Sprintf("vid%d", s.nextID)
	}
	if v.FilePath == "" {
		v.FilePath = v.ID + ".mp4"
	}
	s.videos = append(s.videos, v)
	s.files[v.FilePath] = data
	return v
}

// Videos копия сохраненных записей
func (s *Server) Videos() []video.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]video.Video, len(s.videos))
	copy(out, s.videos)
	return out
}

// Calls все полученные запросы
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount число запросов с методом method и путем path
func (s *Server) CallCount(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Uploads разобранные тела загрузок
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Override подменяет обработчик для точных метода и пути
func (s *Server) Override(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = h
}

// Respond подменяет ответ фиксированными статусом и телом
func (s *Server) Respond(method, path string, status int, contentType, body string) {
	s.Override(method, path, func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			h(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")

		s.mu.Lock()
		_, valid := s.tokens[token]
		s.mu.Unlock()

		if !ok || !valid {
			http.Error(w, "Missing or invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request data", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		http.Error(w, "Email already registered", http.StatusBadRequest)
		return
	}
	s.accounts[req.Email] = account{Username: req.Username, Email: req.Email, Password: req.Password}
	s.nextID++

	writeJSON(w, http.StatusOK, user.RegisterResponse{
		ID:       fmt.Sprintf("user%d", s.nextID),
		Username: req.Username,
		Email:    req.Email,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[req.Email]
	if !ok || acc.Password != req.Password {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, user.LoginResponse{AccessToken: s.issueLocked(req.Email)})
}

func (s *Server) listVideos(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Videos())
}

func (s *Server) createVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No video file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	up := Upload{
		Title:       r.FormValue("title"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	s.uploads = append(s.uploads, up)
	uploader := s.accounts[s.tokens[token]].Username
	s.mu.Unlock()
	if uploader == "" {
		uploader = "Unknown"
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("vid%d", s.nextID)
	s.mu.Unlock()

	v := s.AddVideo(video.Video{
		ID:       id,
		Title:    up.Title,
		Uploader: uploader,
		FilePath: id + filepath.Ext(up.FileName),
	}, data)

	writeJSON(w, http.StatusOK, video.UploadResponse{ID: v.ID, Title: v.Title, FilePath: v.FilePath})
}

func (s *Server) incrementViews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i].Views++
			writeJSON(w, http.StatusOK, map[string]string{"message": "View count updated"})
			return
		}
	}
	http.Error(w, "Video not found", http.StatusNotFound)
}

func (s *Server) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.videos {
		if s.videos[i].ID == id {
			delete(s.files, s.videos[i].FilePath)
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Video deleted successfully", "video_id": id})
			return
		}
	}
	http.Error(w, "Video not found", http.StatusNotFound)
}

func (s *Server) media(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")

	s.mu.Lock()
	data, ok := s.files[name]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
