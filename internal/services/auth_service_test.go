package services_test

import (
	"testing"
	"time"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
	"bookshelf/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, "test_jwt_secret", time.Hour, bcrypt.MinCost)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Successful registration stores a bcrypt hash, never the plaintext.
	var created *models.User
	mockRepo.On("GetByUsername", "alice").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = 1
	}).Return(nil).Once()

	user, err := authService.Register("alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("wrongpassword")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil).Once()
	_, err = authService.Register("alice", "password123")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// The existence check passes but the insert loses the race at the
	// unique index; the conflict must still surface as ErrUsernameTaken.
	mockRepo.On("GetByUsername", "bob").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

	_, err := authService.Register("bob", "password123")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: string(hash),
	}

	// Successful login issues a token carrying the caller's identity.
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	token, loggedIn, err := authService.Login("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.Username, loggedIn.Username)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.EqualValues(t, 7, claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.NotEmpty(t, claims["jti"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	_, _, err = authService.Login("alice", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown username yields the same error as a wrong password.
	mockRepo.On("GetByUsername", "mallory").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.Login("mallory", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	secret := []byte("test_jwt_secret")

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uint(3),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString(secret)

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, claims["user_id"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired token
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uint(3),
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expired.SignedString(secret)
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	// Token signed with a different secret
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uint(3),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreign.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.Error(t, err)
}
