package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

var ErrInvalidSession = errors.New("invalid or expired session")

type Service struct {
	gateway ports.BackendGateway
	store   ports.SessionStore
	secret  []byte
	ttl     time.Duration
	log     *zap.Logger
}

func NewService(gateway ports.BackendGateway, store ports.SessionStore, secret string, ttl time.Duration, log *zap.Logger) ports.SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		gateway: gateway,
		store:   store,
		secret:  []byte(secret),
		ttl:     ttl,
		log:     log,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (string, *domain.Session, error) {
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	auth, err := s.gateway.Signup(ctx, req)
	if err != nil {
		telemetry.LoginsTotal.WithLabelValues("signup", "failure").Inc()
		return "", nil, err
	}

	sess := &domain.Session{
		ID:    uuid.NewString(),
		Token: auth.AccessToken,
		Customer: domain.CustomerProfile{
			Email:         req.Email,
			CompanyName:   req.CompanyName,
			Industry:      req.Industry,
			EmployeeCount: req.EmployeeCount,
			Timezone:      req.Timezone,
		},
		CreatedAt: time.Now(),
	}
	s.store.Put(sess)

	token, err := s.signToken(sess)
	if err != nil {
		s.store.Delete(sess.ID)
		return "", nil, err
	}

	telemetry.LoginsTotal.WithLabelValues("signup", "success").Inc()
	s.log.Info("Customer signed up", zap.String("email", req.Email), zap.String("session_id", sess.ID))
	return token, sess, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	auth, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		telemetry.LoginsTotal.WithLabelValues("login", "failure").Inc()
		return "", nil, err
	}

	sess := &domain.Session{
		ID:    uuid.NewString(),
		Token: auth.AccessToken,
		Customer: domain.CustomerProfile{
			Email: email,
			// The login response carries no profile; the company name is a
			// placeholder until the backend exposes a profile read.
			CompanyName: "Your Company",
		},
		CreatedAt: time.Now(),
	}
	s.store.Put(sess)

	token, err := s.signToken(sess)
	if err != nil {
		s.store.Delete(sess.ID)
		return "", nil, err
	}

	telemetry.LoginsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info("Customer logged in", zap.String("email", email), zap.String("session_id", sess.ID))
	return token, sess, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) {
	s.store.Delete(sessionID)
	s.log.Info("Session destroyed", zap.String("session_id", sessionID))
}

func (s *Service) Validate(ctx context.Context, sessionToken string) (*domain.Session, error) {
	token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return nil, ErrInvalidSession
	}

	sess, ok := s.store.Get(sid)
	if !ok {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

func (s *Service) UpdateProfile(ctx context.Context, sessionID, timezone, language string) (*domain.Session, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return nil, ErrInvalidSession
	}

	if timezone != "" {
		sess.Customer.Timezone = timezone
	}
	if language != "" {
		sess.Customer.Language = language
	}
	s.store.Put(sess)
	return sess, nil
}

func (s *Service) signToken(sess *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
