package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/infrastructure/security"
	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
	"github.com/foodml/recipelab/test/testutils"
)

// UserServiceTestSuite provides a test suite for the user service
type UserServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockUserRepository
	auth    *security.AuthService
	service inbound.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	cfg := &config.Config{}
	cfg.App.Name = "recipelab-test"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.Auth.BCryptCost = 4

	suite.repo = new(testutils.MockUserRepository)
	suite.auth = security.NewAuthService(cfg, zap.NewNop(), nil)
	suite.service = NewService(suite.repo, suite.auth, zap.NewNop())
}

func (suite *UserServiceTestSuite) TestRegister() {
	suite.Run("NewEmail_ShouldCreateAndIssueToken", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil)
		suite.repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		// Act
		result, err := suite.service.Register(context.Background(), inbound.RegisterCommand{
			Email:    "Cook@Example.com",
			Password: "sup3rsecret",
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "cook@example.com", result.User.Email)
		assert.NotEmpty(suite.T(), result.Token)
		assert.True(suite.T(), suite.auth.CheckPassword("sup3rsecret", result.User.PasswordHash))
		suite.repo.AssertExpectations(suite.T())
	})

	suite.Run("DuplicateEmail_ShouldConflict", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		// Act
		result, err := suite.service.Register(context.Background(), inbound.RegisterCommand{
			Email:    "taken@example.com",
			Password: "sup3rsecret",
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
	})

	suite.Run("ShortPassword_ShouldFailValidation", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.service.Register(context.Background(), inbound.RegisterCommand{
			Email:    "cook@example.com",
			Password: "short",
		})

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		suite.repo.AssertNotCalled(suite.T(), "Create")
	})
}

func (suite *UserServiceTestSuite) TestLogin() {
	suite.Run("CorrectPassword_ShouldReturnToken", func() {
		// Arrange
		suite.SetupTest()
		hash, err := suite.auth.HashPassword("sup3rsecret")
		require.NoError(suite.T(), err)
		u, err := user.New("cook@example.com", hash)
		require.NoError(suite.T(), err)
		suite.repo.On("FindByEmail", mock.Anything, "cook@example.com").Return(u, nil)

		// Act
		result, err := suite.service.Login(context.Background(), "cook@example.com", "sup3rsecret")

		// Assert
		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), result.Token)

		claims, err := suite.auth.ValidateToken(context.Background(), result.Token)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), u.ID.String(), claims.UserID)
	})

	suite.Run("WrongPassword_ShouldReturnInvalidCredentials", func() {
		// Arrange
		suite.SetupTest()
		hash, err := suite.auth.HashPassword("sup3rsecret")
		require.NoError(suite.T(), err)
		u, err := user.New("cook@example.com", hash)
		require.NoError(suite.T(), err)
		suite.repo.On("FindByEmail", mock.Anything, "cook@example.com").Return(u, nil)

		// Act
		result, err := suite.service.Login(context.Background(), "cook@example.com", "wrong")

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})

	suite.Run("UnknownEmail_ShouldReturnInvalidCredentials", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, apperrors.NewUserNotFoundError("ghost@example.com"))

		// Act
		_, err := suite.service.Login(context.Background(), "ghost@example.com", "whatever")

		// Assert
		// Unknown users and wrong passwords are indistinguishable to
		// the caller.
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
