package services

import (
	"errors"

	"github.com/booay/pizza-shop-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrUserExists is returned when creating a user with a taken email.
var ErrUserExists = errors.New("user_already_exists")

// UserService manages operator accounts for the admin surface
type UserService interface {
	// CreateUser creates a new user; the email must be unused
	CreateUser(user *models.User) error
	// GetUserByEmail retrieves a user by email
	GetUserByEmail(email string) (*models.User, error)
	// GetUserByID retrieves a user by its ID
	GetUserByID(id uint) (*models.User, error)
	// EnsureAdmin creates the seeded admin account if no user has its email yet
	EnsureAdmin(email, password string) error
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserExists
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) EnsureAdmin(email, password string) error {
	if _, err := s.GetUserByEmail(email); err == nil {
		return nil
	}
	admin := &models.User{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     "admin",
	}
	if err := admin.HashPassword(); err != nil {
		return err
	}
	if err := s.CreateUser(admin); err != nil {
		return err
	}
	log.WithField("email", email).Info("Seeded admin account")
	return nil
}
