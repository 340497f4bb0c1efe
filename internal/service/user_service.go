// Package service contains the application's business logic.
package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// UserService provides account and profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Register validates the signup input and creates the account with a
// bcrypt-hashed password. The storage unique indexes are the final
// arbiter on email and username collisions.
func (s *UserService) Register(ctx context.Context, input SignupInput) (*models.User, error) {
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("a user with this email already exists")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("a user with this username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  string(hashed),
		Role:      models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email and password. Lookup and comparison
// failures collapse into the same error so the response does not leak
// which of the two was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("invalid email or password")
	}
	return user, nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError("current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// GetProfile returns a user's profile as seen by the viewer.
// IsSubscribed is false when the viewer is anonymous.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscribed := false
	if viewerID != 0 && viewerID != userID {
		subscribed, err = s.followRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	view := models.NewUserView(user, subscribed)
	return &view, nil
}

// ListUsers returns a page of user profiles as seen by the viewer.
func (s *UserService) ListUsers(ctx context.Context, viewerID uint, limit, offset int) ([]models.UserView, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	following := map[uint]struct{}{}
	if viewerID != 0 {
		following, err = s.followRepo.AuthorIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		_, subscribed := following[users[i].ID]
		views = append(views, models.NewUserView(&users[i], subscribed))
	}
	return views, nil
}
