package http

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/user"
)

// AuthHandler registration, login and session operations
type AuthHandler struct {
	JWTUtil        *auth.JWTUtil
	Conn           driver.ITransactionalDB
	UserRepository user.Repository
	KVStore        driver.KeyValueDB
	UserUseCase    user.UseCase
	Validator      validate.Validator
	MaximumRetry   int
}

func NewAuthHandler(
	JWTUtil *auth.JWTUtil,
	Conn driver.ITransactionalDB,
	UserRepository user.Repository,
	KVStore driver.KeyValueDB,
	UserUseCase user.UseCase,
	MaximumRetry int,
	Validator validate.Validator,
) *AuthHandler {
	return &AuthHandler{
		JWTUtil:        JWTUtil,
		Conn:           Conn,
		UserRepository: UserRepository,
		KVStore:        KVStore,
		UserUseCase:    UserUseCase,
		MaximumRetry:   MaximumRetry,
		Validator:      Validator,
	}
}

type credentialPost struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type sessionData struct {
	Token string      `json:"token"`
	User  *user.Model `json:"user"`
}

// HandleRegister create an account and sign the first session token
func (ah *AuthHandler) HandleRegister(c echo.Context) (err error) {
	post := new(credentialPost)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind user entity")
	}
	if fields := ah.Validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}

	taken, err := ah.UserUseCase.Exists(c.Request().Context(), post.Username, post.Email)
	if err != nil {
		return err
	}
	if taken {
		return respondError(c, http.StatusConflict, user.ErrDuplicatedUser.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(post.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account := &user.Model{
		Username: post.Username,
		Email:    post.Email,
		Password: string(hashed),
	}
	if _, err = ah.UserUseCase.SignUp(c.Request().Context(), account); err != nil {
		if errors.Is(err, user.ErrDuplicatedUser) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		return err
	}

	tokenStr, err := ah.JWTUtil.GenerateTokenStr(account.ID, account.Email, account.Username)
	if err != nil {
		return err
	}
	ah.JWTUtil.SetResponseToken(c, tokenStr)
	return respondCreated(c, sessionData{Token: tokenStr, User: account})
}

type loginPost struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verify credentials with a retry lockout. The retry
// counter lives on the account row, read and bumped inside one
// repeatable-read transaction.
func (ah *AuthHandler) HandleLogin(c echo.Context) (err error) {
	ju := ah.JWTUtil
	post := new(loginPost)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind user entity")
	}
	credential := post.Username
	if credential == "" {
		credential = post.Email
	}

	ctx := c.Request().Context()
	tx, err := ah.Conn.BeginTx(ctx, &driver.TxOptions{
		Isolation: sql.LevelRepeatableRead,
	})
	if err != nil {
		return err
	}
	defer tx.Commit(ctx)
	repo := ah.UserRepository.WithConn(tx)

	account, err := repo.FindByCredential(ctx, credential)
	if err != nil {
		return err
	}
	if account == nil {
		return respondError(c, http.StatusUnauthorized, user.ErrNoSuchUser.Error())
	}
	if account.LoginRetry >= ah.MaximumRetry {
		return respondError(c, http.StatusForbidden, user.ErrTooManyRetry.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(post.Password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			account.LoginRetry++
			if err = repo.UpdateUser(ctx, account); err != nil {
				return err
			}
			return respondError(c, http.StatusUnauthorized, user.ErrNoSuchUser.Error())
		}
		return err
	}

	account.LoginRetry = 0
	if err = repo.UpdateUser(ctx, account); err != nil {
		return err
	}

	tokenStr, err := ju.GenerateTokenStr(account.ID, account.Email, account.Username)
	if err != nil {
		return err
	}
	ju.SetResponseToken(c, tokenStr)
	return respondOK(c, sessionData{Token: tokenStr, User: account})
}

// HandleCurrentUser return the account behind the presented token
func (ah *AuthHandler) HandleCurrentUser(c echo.Context) (err error) {
	claims := ah.JWTUtil.GetContextToken(c)
	account, err := ah.UserUseCase.Get(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	if account == nil {
		return respondNotFound(c, "User not found")
	}
	return respondOK(c, account)
}

// HandleSignOut blacklist the token for whatever lifetime it has left
func (ah *AuthHandler) HandleSignOut(c echo.Context) (err error) {
	ju := ah.JWTUtil

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return respondOK(c, nil)
	}
	token, err := ju.Validate(tokenStr)
	if err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}
	if err = ah.KVStore.SetEX(tokenStr, "", token.TimeRemaining()); err != nil {
		return err
	}
	return respondOK(c, nil)
}
