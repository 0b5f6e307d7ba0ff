package services

import (
	"fmt"
	"time"

	"github.com/wecare-app/wecare/internal/models"
	"github.com/wecare-app/wecare/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const bootstrapPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
const bootstrapPasswordLength = 20

type SetupUserRepository interface {
	CountUsers() (int64, error)
	Create(user *models.User) error
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

func (service *SetupService) RequiresInitialSetup() (bool, error) {
	usersCount, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return usersCount == 0, nil
}

// BootstrapAdmin provisions the first admin account with a random one-time
// password. The cleartext password is returned exactly once so the operator
// can log it; only the hash is stored.
func (service *SetupService) BootstrapAdmin(email string) (models.User, string, error) {
	normalized := NormalizeAuthEmail(email)
	if normalized == "" {
		return models.User{}, "", ErrAuthCredentialsInvalid
	}

	password, err := security.RandomString(bootstrapPasswordLength, bootstrapPasswordAlphabet)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate bootstrap password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash bootstrap password: %w", err)
	}

	admin := models.User{
		Email:        normalized,
		PasswordHash: string(passwordHash),
		DisplayName:  "Administrator",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.Create(&admin); err != nil {
		return models.User{}, "", err
	}
	return admin, password, nil
}
