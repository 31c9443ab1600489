package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	"github.com/cardbay/goapi/service/mailer"
)

const batchConcurrency = 10

type AccountUseCaseCfg struct {
	Repo   account.Repo
	Mailer mailer.Client
}

type impl struct {
	repo   account.Repo
	mailer mailer.Client
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.Usecase {
	return &impl{
		repo:   cfg.Repo,
		mailer: cfg.Mailer,
	}
}

func (im *impl) Create(c ctx.Ctx, payload *account.CreatePayload) (*account.Account, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"email": payload.Email,
	})

	if _, err := im.repo.FindOneByEmail(c, payload.Email); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.WithField("err", err).Error("bcrypt.GenerateFromPassword failed")
		return nil, err
	}

	now := time.Now()
	acc := &account.Account{
		UserId:       domain.UserId(uuid.NewString()),
		Email:        payload.Email,
		PasswordHash: string(hash),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Alias:        payload.Alias,
		CanTrade:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := im.repo.Insert(c, acc); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}

	im.sendWelcomeMail(c, acc)

	return acc, nil
}

// sendWelcomeMail is best effort. Losing the mail must not fail signup.
func (im *impl) sendWelcomeMail(c ctx.Ctx, acc *account.Account) {
	if im.mailer == nil {
		return
	}
	if err := im.mailer.Send(c, &mailer.Mail{
		To:       acc.Email,
		Subject:  "Welcome to CardBay",
		Template: "welcome",
		Vars:     map[string]string{"firstName": acc.FirstName},
	}); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"userId": acc.UserId,
		}).Warn("mailer.Send failed")
	}
}

func (im *impl) Get(c ctx.Ctx, userId domain.UserId) (*account.Account, error) {
	acc, err := im.repo.FindOne(c, userId)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"userId": userId,
				"err":    err,
			}).Error("repo.FindOne failed")
		}
		return nil, err
	}
	return acc, nil
}

func (im *impl) GetByEmail(c ctx.Ctx, email string) (*account.Account, error) {
	return im.repo.FindOneByEmail(c, email)
}

func (im *impl) GetSimple(c ctx.Ctx, userId domain.UserId) (*account.SimpleAccount, error) {
	acc, err := im.Get(c, userId)
	if err != nil {
		return nil, err
	}
	return acc.ToSimpleAccount(), nil
}

// GetSimpleBatch loads public projections for many users at once. Missing
// accounts are skipped rather than failing the whole batch.
func (im *impl) GetSimpleBatch(c ctx.Ctx, userIds []domain.UserId) (map[domain.UserId]*account.SimpleAccount, error) {
	if len(userIds) == 0 {
		return map[domain.UserId]*account.SimpleAccount{}, nil
	}

	b := goroutines.NewBatch(batchConcurrency, goroutines.WithBatchSize(len(userIds)))
	defer b.Close()
	for i := 0; i < len(userIds); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			acc, err := im.repo.FindOne(c, userIds[idx])
			if err == domain.ErrNotFound {
				return nil, nil
			} else if err != nil {
				return nil, err
			}
			return acc.ToSimpleAccount(), nil
		})
	}
	b.QueueComplete()

	res := map[domain.UserId]*account.SimpleAccount{}
	for ret := range b.Results() {
		if err := ret.Error(); err != nil {
			c.WithField("err", err).Error("get simple account error result")
			continue
		}
		if ret.Value() == nil {
			continue
		}
		sa := ret.Value().(*account.SimpleAccount)
		res[sa.UserId.ToLower()] = sa
	}
	return res, nil
}

func (im *impl) Update(c ctx.Ctx, userId domain.UserId, updater *account.Updater) (*account.Account, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"userId": userId,
	})
	now := time.Now()
	updater.UpdatedAt = &now
	if err := im.repo.Update(c, userId, updater); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}
	return im.Get(c, userId)
}

func (im *impl) ValidateCredentials(c ctx.Ctx, email, password string) (*account.Account, error) {
	acc, err := im.repo.FindOneByEmail(c, email)
	if err == domain.ErrNotFound {
		// same error as a bad password so probes can't tell accounts apart
		return nil, domain.ErrUnauthorized
	} else if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return acc, nil
}
