package account

import (
	"time"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
)

// Account is a user's account stored in database. PasswordHash never leaves
// the repository layer in any projection.
type Account struct {
	UserId       domain.UserId `json:"userId" bson:"userId"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"passwordHash"`
	FirstName    string        `json:"firstName" bson:"firstName"`
	LastName     string        `json:"lastName" bson:"lastName"`
	Alias        string        `json:"alias" bson:"alias"`
	IsVerified   bool          `json:"isVerified" bson:"isVerified"`
	CanTrade     bool          `json:"canTrade" bson:"canTrade"`
	IsAdmin      bool          `json:"isAdmin" bson:"isAdmin"`
	IsBanned     bool          `json:"isBanned" bson:"isBanned"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// SimpleAccount is the public projection used when embedding seller or
// bidder identity into other read models.
type SimpleAccount struct {
	UserId    domain.UserId `json:"userId" bson:"userId"`
	FirstName string        `json:"firstName" bson:"firstName"`
	LastName  string        `json:"lastName" bson:"lastName"`
	Alias     string        `json:"alias" bson:"alias"`
}

func (a *Account) ToSimpleAccount() *SimpleAccount {
	return &SimpleAccount{
		UserId:    a.UserId,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Alias:     a.Alias,
	}
}

func (a *Account) ToIdentity() *domain.Identity {
	return &domain.Identity{
		UserId:     a.UserId,
		IsVerified: a.IsVerified,
		CanTrade:   a.CanTrade && !a.IsBanned,
		IsAdmin:    a.IsAdmin,
	}
}

type Updater struct {
	FirstName *string `json:"firstName" bson:"firstName,omitempty"`
	LastName  *string `json:"lastName" bson:"lastName,omitempty"`
	Alias     *string `json:"alias" bson:"alias,omitempty"`
	UpdatedAt *time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Insert(ctx ctx.Ctx, account *Account) error
	FindOne(ctx ctx.Ctx, userId domain.UserId) (*Account, error)
	FindOneByEmail(ctx ctx.Ctx, email string) (*Account, error)
	Update(ctx ctx.Ctx, userId domain.UserId, updater *Updater) error
}

type CreatePayload struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Alias     string `json:"alias"`
}

type Usecase interface {
	Create(ctx ctx.Ctx, payload *CreatePayload) (*Account, error)
	Get(ctx ctx.Ctx, userId domain.UserId) (*Account, error)
	GetByEmail(ctx ctx.Ctx, email string) (*Account, error)
	GetSimple(ctx ctx.Ctx, userId domain.UserId) (*SimpleAccount, error)
	GetSimpleBatch(ctx ctx.Ctx, userIds []domain.UserId) (map[domain.UserId]*SimpleAccount, error)
	Update(ctx ctx.Ctx, userId domain.UserId, updater *Updater) (*Account, error)
	ValidateCredentials(ctx ctx.Ctx, email, password string) (*Account, error)
}
