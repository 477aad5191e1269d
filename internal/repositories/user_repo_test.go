package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"feastly/internal/common"
	"feastly/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate_DefaultsRole() {
	user := &models.User{
		ID:           suite.userID,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
	}

	suite.mock.ExpectQuery(`INSERT INTO users \(id, name, email, password, role\)`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, models.RoleCustomer).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleCustomer, user.Role)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateEmail() {
	user := &models.User{
		ID:           suite.userID,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleCustomer,
	}

	suite.mock.ExpectQuery(`INSERT INTO users \(id, name, email, password, role\)`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", TableName: "users"})

	err := suite.repo.Create(suite.context, user)
	assert.Error(suite.T(), err)

	var cve *common.ConstraintViolationError
	assert.True(suite.T(), errors.As(err, &cve))
	assert.Equal(suite.T(), "users_email_key", cve.Constraint)
}

func (suite *UserRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
		WithArgs(suite.userID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.userID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Success() {
	email := "ana@example.com"

	suite.mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}).
			AddRow(suite.userID, "Ana", email, "$2a$10$hash", models.RoleCustomer, time.Now().UTC()))

	result, err := suite.repo.GetByEmail(suite.context, email)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, result.ID)
	assert.Equal(suite.T(), email, result.Email)
}

func (suite *UserRepoTestSuite) TestGetByEmail_AbsenceIsNotAnError() {
	suite.mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByEmail(suite.context, "nobody@example.com")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), result)
}
