package view

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"vidshare/internal/app/client"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*user.RegisterResponse)
	return resp, args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*user.LoginResponse)
	return resp, args.Error(1)
}

func (m *MockAPI) ListVideos(ctx context.Context) ([]video.Video, error) {
	args := m.Called(ctx)
	videos, _ := args.Get(0).([]video.Video)
	return videos, args.Error(1)
}

func (m *MockAPI) UploadVideo(ctx context.Context, req video.UploadRequest) (*video.UploadResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*video.UploadResponse)
	return resp, args.Error(1)
}

func (m *MockAPI) RecordView(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) DeleteVideo(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) MediaURL(filePath string) string {
	return "http://api.test/uploads/" + filePath
}

func newSession(token string) *client.Session {
	store := &client.MemoryTokenStore{}
	_ = store.Save(token)
	return clientSession(store)
}

func clientSession(store client.TokenStore) *client.Session {
	return client.NewSession(store, discard)
}

func apiError(status int, json bool, message, details, text string) *client.APIError {
	return &client.APIError{
		StatusCode: status,
		StatusText: http.StatusText(status),
		JSON:       json,
		Message:    message,
		Details:    details,
		Text:       text,
	}
}

// manualScheduler запоминает отложенные вызовы до явного Fire
type manualScheduler struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
}

func (s *manualScheduler) Schedule(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	idx := len(s.pending)
	s.pending = append(s.pending, f)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		stopped := s.pending[idx] != nil
		s.pending[idx] = nil
		return stopped
	}
}

func (s *manualScheduler) Fire() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range pending {
		if f != nil {
			f()
		}
	}
}
