package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"dream_match/internal/config"
)

// Service — аутентификация администратора для защищённых эндпоинтов
// (аналитика, метрики). Один админский аккаунт из конфигурации,
// JWT HS256 с настроенным TTL.
type Service struct {
	log *slog.Logger
	cfg config.AuthConfig
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

func New(log *slog.Logger, cfg config.AuthConfig) *Service {
	return &Service{log: log, cfg: cfg}
}

// Login проверяет логин и bcrypt-хэш пароля и выдаёт JWT.
func (s *Service) Login(username, password string) (string, error) {
	const op = "admin.Service.Login"

	if username != s.cfg.AdminUser || s.cfg.AdminPasswordHash == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed admin login attempt", slog.String("username", username))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(s.cfg.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// VerifyToken проверяет подпись и срок действия JWT.
func (s *Service) VerifyToken(tokenString string) error {
	const op = "admin.Service.VerifyToken"

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return nil
}
