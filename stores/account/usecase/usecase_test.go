package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	mAccount "github.com/cardbay/goapi/domain/account/mocks"
	mMailer "github.com/cardbay/goapi/service/mailer/mocks"
)

type accountTestSuite struct {
	suite.Suite

	repo   *mAccount.Repo
	mailer *mMailer.Client
	uc     account.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(accountTestSuite))
}

func (s *accountTestSuite) SetupTest() {
	s.repo = &mAccount.Repo{}
	s.mailer = &mMailer.Client{}
	s.uc = New(&AccountUseCaseCfg{
		Repo:   s.repo,
		Mailer: s.mailer,
	})
}

func (s *accountTestSuite) TestCreate() {
	c := bCtx.Background()

	s.repo.On("FindOneByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(acc *account.Account) bool {
		return acc.Email == "alice@example.com" &&
			acc.CanTrade &&
			acc.PasswordHash != "" && acc.PasswordHash != "hunter22"
	})).Return(nil)
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	acc, err := s.uc.Create(c, &account.CreatePayload{
		Email:     "alice@example.com",
		Password:  "hunter22",
		FirstName: "Alice",
	})
	s.Require().NoError(err)
	s.NotEmpty(acc.UserId)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("hunter22")))
	s.repo.AssertExpectations(s.T())
	s.mailer.AssertExpectations(s.T())
}

func (s *accountTestSuite) TestCreateDuplicateEmail() {
	c := bCtx.Background()

	s.repo.On("FindOneByEmail", mock.Anything, "alice@example.com").
		Return(&account.Account{Email: "alice@example.com"}, nil)

	_, err := s.uc.Create(c, &account.CreatePayload{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	s.Require().ErrorIs(err, domain.ErrConflict)
	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *accountTestSuite) TestCreateSurvivesMailerFailure() {
	c := bCtx.Background()

	s.repo.On("FindOneByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(domain.ErrInternalServerError)

	_, err := s.uc.Create(c, &account.CreatePayload{
		Email:    "bob@example.com",
		Password: "hunter22",
	})
	s.Require().NoError(err)
}

func (s *accountTestSuite) TestValidateCredentials() {
	c := bCtx.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	s.Require().NoError(err)
	stored := &account.Account{
		UserId:       domain.UserId("user-1"),
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	s.repo.On("FindOneByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
	s.repo.On("FindOneByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	acc, err := s.uc.ValidateCredentials(c, "alice@example.com", "hunter22")
	s.Require().NoError(err)
	s.Equal(stored.UserId, acc.UserId)

	_, err = s.uc.ValidateCredentials(c, "alice@example.com", "wrong")
	s.Require().ErrorIs(err, domain.ErrUnauthorized)

	// unknown account and bad password are indistinguishable
	_, err = s.uc.ValidateCredentials(c, "nobody@example.com", "hunter22")
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *accountTestSuite) TestGetSimpleBatch() {
	c := bCtx.Background()
	alice := &account.Account{UserId: domain.UserId("alice"), Alias: "alice"}
	bob := &account.Account{UserId: domain.UserId("bob"), Alias: "bob"}

	s.repo.On("FindOne", mock.Anything, alice.UserId).Return(alice, nil)
	s.repo.On("FindOne", mock.Anything, bob.UserId).Return(bob, nil)
	s.repo.On("FindOne", mock.Anything, domain.UserId("ghost")).Return(nil, domain.ErrNotFound)

	res, err := s.uc.GetSimpleBatch(c, []domain.UserId{alice.UserId, bob.UserId, "ghost"})
	s.Require().NoError(err)
	// missing accounts are skipped, not errors
	s.Len(res, 2)
	s.Equal("alice", res[alice.UserId].Alias)
	s.Equal("bob", res[bob.UserId].Alias)
}

func (s *accountTestSuite) TestGetSimpleBatchEmpty() {
	c := bCtx.Background()

	res, err := s.uc.GetSimpleBatch(c, nil)
	s.Require().NoError(err)
	s.Empty(res)
	s.repo.AssertNotCalled(s.T(), "FindOne", mock.Anything, mock.Anything)
}
