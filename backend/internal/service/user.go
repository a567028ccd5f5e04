package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/errors"
	"github.com/itchan-dev/kindboard/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

// to mock service in tests
type UserService interface {
	Create(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	Get(ctx context.Context, username domain.Username) (domain.User, error)
	Login(ctx context.Context, username domain.Username, password domain.Password) (string, error)
}

type UserValidator interface {
	Username(username string) error
	Password(password string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type User struct {
	storage   storage.Storage
	validator UserValidator
	jwt       Jwt
	hashCost  int
}

func NewUser(storage storage.Storage, validator UserValidator, jwt Jwt) *User {
	return &User{storage: storage, validator: validator, jwt: jwt, hashCost: bcrypt.DefaultCost}
}

// Create stores a new user. Usernames are unique; the password is kept only as a bcrypt hash.
func (u *User) Create(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	if err := u.validator.Username(data.Username); err != nil {
		return domain.User{}, err
	}
	if err := u.validator.Password(data.Password); err != nil {
		return domain.User{}, err
	}
	authority := data.Authority
	if authority == "" {
		authority = domain.AuthorityUser
	}
	if !authority.Valid() {
		return domain.User{}, errors.InvalidArgument(fmt.Sprintf("Unknown authority %q", authority))
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), u.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var user domain.User
	err = u.storage.WithTx(ctx, func(tx storage.Tx) error {
		user, err = tx.SaveUser(domain.User{Username: data.Username, PassHash: string(passHash), Authority: authority})
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	logger.FromContext(ctx).Info("user created", "user_id", user.Id, "authority", user.Authority)
	return user, nil
}

func (u *User) Get(ctx context.Context, username domain.Username) (domain.User, error) {
	var user domain.User
	err := u.storage.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		user, err = tx.UserByUsername(username)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login returns a signed token. Unknown user and bad password look the same to the caller.
func (u *User) Login(ctx context.Context, username domain.Username, password domain.Password) (string, error) {
	user, err := u.Get(ctx, username)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return "", errors.ErrWrongPassword
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		logger.FromContext(ctx).Debug("failed login", "user_id", user.Id)
		return "", errors.ErrWrongPassword
	}

	return u.jwt.NewToken(user)
}
