package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/peerloop/peerloop/internal/config"
	"go.uber.org/zap"
)

// VideoService исходящие вызовы сервиса видео-сессий. Один запрос без ретраев:
// неудача возвращается вызывающему как есть, состояние не меняется.
type VideoService struct {
	cfg      *config.Config
	client   *http.Client
	logger   *zap.Logger
	validate *validator.Validate
}

func NewVideoService(cfg *config.Config, logger *zap.Logger) *VideoService {
	return &VideoService{
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
		validate: validator.New(),
	}
}

// JoinRequest запрос на подключение к видео-сессии курса
type JoinRequest struct {
	CourseID   int    `json:"courseId" validate:"required,gt=0"`
	CourseName string `json:"courseName"`
	UserName   string `json:"userName" validate:"required"`
}

// JoinResponse ответ сервиса видео-сессий
type JoinResponse struct {
	Success bool   `json:"success"`
	JoinURL string `json:"joinUrl"`
	Error   string `json:"error,omitempty"`
}

// Join получает ссылку на подключение к видео-сессии. Если настроен hosted
// endpoint, делается один POST к нему; иначе ссылка строится локально через
// подписанный BBB API. Ошибка видна вызывающему, операция не повторяется.
func (s *VideoService) Join(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate join request: %w", err)
	}

	if s.cfg.VideoAPIURL != "" {
		return s.joinHosted(ctx, req)
	}
	if s.cfg.BBBURL != "" && s.cfg.BBBSecret != "" {
		return s.joinBBB(ctx, req)
	}

	return nil, fmt.Errorf("video service is not configured")
}

// joinBBB создаёт конференцию напрямую в BBB и возвращает ссылку подключения
func (s *VideoService) joinBBB(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	id := meetingID(req.CourseID)
	name := req.CourseName
	if name == "" {
		name = "Course Session"
	}

	createURL := buildCreateMeetingURL(s.cfg.BBBURL, s.cfg.BBBSecret, id, name)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, createURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build create meeting request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error("BBB create meeting failed", zap.Error(err))
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("create meeting: %s", resp.Status)
	}

	joinURL := buildJoinMeetingURL(s.cfg.BBBURL, s.cfg.BBBSecret, id, req.UserName)
	s.logger.Info("BBB meeting ready", zap.Int("course_id", req.CourseID))
	return &JoinResponse{Success: true, JoinURL: joinURL}, nil
}

func (s *VideoService) joinHosted(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal join request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.VideoAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build join request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.cfg.VideoAPIToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.cfg.VideoAPIToken)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error("Video join call failed", zap.Error(err))
		return nil, fmt.Errorf("join session: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read join response: %w", err)
	}

	var joinResp JoinResponse
	if err := json.Unmarshal(raw, &joinResp); err != nil {
		return nil, fmt.Errorf("decode join response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !joinResp.Success {
		message := joinResp.Error
		if message == "" {
			message = resp.Status
		}
		s.logger.Error("Video join rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error", message),
		)
		return nil, fmt.Errorf("join session: %s", message)
	}

	s.logger.Info("Video session join URL issued", zap.Int("course_id", req.CourseID))
	return &joinResp, nil
}

func meetingID(courseID int) string {
	return fmt.Sprintf("peerloop-course-%d", courseID)
}
