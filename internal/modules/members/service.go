package members

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Member{}, err
	}

	now := time.Now()
	m := Member{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return Member{}, ErrEmailTaken
		}
		return Member{}, err
	}
	return m, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (Member, error) {
	var m Member
	err := s.db.WithContext(ctx).
		First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Member{}, ErrInvalidCredentials
	}
	if err != nil {
		return Member{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return Member{}, ErrInvalidCredentials
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (Member, error) {
	var m Member
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return m, err
}

type UpdateProfileInput struct {
	Name  string
	Phone string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) error {
	return s.db.WithContext(ctx).Model(&Member{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       strings.TrimSpace(in.Name),
			"phone":      strings.TrimSpace(in.Phone),
			"updated_at": time.Now(),
		}).Error
}
