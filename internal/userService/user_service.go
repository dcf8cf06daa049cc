package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/auth"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// UserService defines the business logic for accounts and credentials
type UserService struct {
	store  storage.Store
	tokens *auth.TokenManager
}

// NewUserService creates a new UserService instance
func NewUserService(store storage.Store, tokens *auth.TokenManager) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
	}
}

// RegisterInput carries the registration payload
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Phone           string
}

// Register validates the input, hashes the password and stores the account
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	fields := map[string]string{}
	if in.Password != in.PasswordConfirm {
		fields["password"] = "Password fields didn't match"
	}
	if len(in.Password) < MinPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	if _, err := s.store.Users().GetByUsername(in.Username); err == nil {
		fields["username"] = "A user with that username already exists"
	}
	if _, err := s.store.Users().GetByEmail(in.Email); err == nil {
		fields["email"] = "A user with that email already exists"
	}
	if len(fields) > 0 {
		return nil, &auctionerrors.ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	account := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}
	if err := s.store.Users().Create(account); err != nil {
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}
	return account, nil
}

// Login verifies the credentials and issues an access/refresh token pair
func (s *UserService) Login(username, password string) (*auth.TokenPair, *models.User, error) {
	account, err := s.store.Users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("service: login %q: %w", username, auctionerrors.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("service: failed to load user %q: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, nil, fmt.Errorf("service: login %q: %w", username, auctionerrors.ErrInvalidCredentials)
	}

	pair, err := s.tokens.IssuePair(account)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to issue tokens: %w", err)
	}
	return pair, account, nil
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", fmt.Errorf("service: refresh: %w", err)
	}

	revoked, err := s.store.Tokens().IsRevoked(claims.ID)
	if err != nil {
		return "", fmt.Errorf("service: failed to check token: %w", err)
	}
	if revoked {
		return "", fmt.Errorf("service: refresh: %w", auctionerrors.ErrTokenRevoked)
	}

	account, err := s.store.Users().GetByID(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("service: failed to load user %d: %w", claims.UserID, err)
	}

	access, err := s.tokens.IssueAccess(account)
	if err != nil {
		return "", fmt.Errorf("service: failed to issue access token: %w", err)
	}
	return access, nil
}

// Logout revokes the presented refresh token until its natural expiry
func (s *UserService) Logout(refreshToken string) error {
	claims, err := s.tokens.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return fmt.Errorf("service: logout: %w", err)
	}
	if err := s.store.Tokens().Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("service: failed to revoke token: %w", err)
	}
	return nil
}

// Profile returns the caller's own account
func (s *UserService) Profile(userID uint) (*models.User, error) {
	account, err := s.store.Users().GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load user %d: %w", userID, err)
	}
	return account, nil
}

// ProfileUpdateInput carries the updatable profile fields. Nil keeps the
// current value.
type ProfileUpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
}

// UpdateProfile mutates the caller's own profile fields
func (s *UserService) UpdateProfile(userID uint, in ProfileUpdateInput) (*models.User, error) {
	account, err := s.store.Users().GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load user %d: %w", userID, err)
	}

	if in.Email != nil && *in.Email != account.Email {
		if existing, err := s.store.Users().GetByEmail(*in.Email); err == nil && existing.ID != userID {
			return nil, auctionerrors.NewValidationError("email", "A user with that email already exists")
		}
		account.Email = *in.Email
	}
	if in.FirstName != nil {
		account.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		account.LastName = *in.LastName
	}
	if in.Phone != nil {
		account.Phone = *in.Phone
	}
	if in.Bio != nil {
		account.Bio = *in.Bio
	}

	if err := s.store.Users().Update(account); err != nil {
		return nil, fmt.Errorf("service: failed to update user %d: %w", userID, err)
	}
	return account, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword, newPasswordConfirm string) error {
	account, err := s.store.Users().GetByID(userID)
	if err != nil {
		return fmt.Errorf("service: failed to load user %d: %w", userID, err)
	}

	fields := map[string]string{}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		fields["old_password"] = "Old password is not correct"
	}
	if newPassword != newPasswordConfirm {
		fields["new_password"] = "Password fields didn't match"
	}
	if len(newPassword) < MinPasswordLength {
		fields["new_password"] = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	if len(fields) > 0 {
		return &auctionerrors.ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service: failed to hash password: %w", err)
	}
	account.PasswordHash = string(hash)

	if err := s.store.Users().Update(account); err != nil {
		return fmt.Errorf("service: failed to update user %d: %w", userID, err)
	}
	return nil
}
