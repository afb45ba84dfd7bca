package usecase

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"interview-navigator/internal/auth"
	"interview-navigator/internal/model"
	"interview-navigator/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
)

type AuthUsecase struct {
	userRepo repository.UserRepository
}

func NewAuthUsecase(userRepo repository.UserRepository) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo}
}

// Register creates an account and issues its first token.
func (uc *AuthUsecase) Register(username, email, password string) (*model.User, string, error) {
	if _, err := uc.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if _, err := uc.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. Inactive accounts are
// rejected even with a valid password.
func (uc *AuthUsecase) Login(username, password string) (*model.User, string, error) {
	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the user together with their CV list.
func (uc *AuthUsecase) Profile(userID uint) (*model.User, error) {
	return uc.userRepo.FindByIDWithCVs(userID)
}
