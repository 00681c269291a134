package service

import (
	"log"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	"tasknest/apperr"
	"tasknest/authz"
	"tasknest/models"
	"tasknest/store"
)

// UserService manages registration, credentials and profile lifecycle
type UserService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewUserService(st *store.Store, logger *log.Logger) *UserService {
	return &UserService{Store: st, Logger: logger}
}

// RegisterInput carries the registration fields
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates a user account with a hashed password and a
// zero-valued dashboard stats row. A taken email is a conflict.
func (us *UserService) Register(in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperr.Validation("email")
	}
	if in.Password == "" {
		return nil, apperr.Validation("password")
	}
	if err := checkmail.ValidateFormat(in.Email); err != nil {
		return nil, apperr.Validationf("email", "invalid email address")
	}

	if _, err := us.Store.GetUserByEmail(in.Email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := us.Store.CreateUserWithStats(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves the user for an email/password pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (us *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := us.Store.GetUserByEmail(email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthenticated()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthenticated()
	}
	if !user.IsActive {
		return nil, apperr.Unauthenticated()
	}
	return user, nil
}

// GetProfile loads a user with teams, notifications and dashboard stats
func (us *UserService) GetProfile(userID uint) (*models.User, error) {
	return us.Store.GetUserProfile(userID)
}

// UpdateUserInput carries optional profile updates
type UpdateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUser changes a user's profile; users may only update themselves
func (us *UserService) UpdateUser(actor *models.User, targetID uint, in UpdateUserInput) (*models.User, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	target, err := us.Store.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, authz.ActionUpdateUser, authz.Target{User: target}); err != nil {
		return nil, err
	}

	if in.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		target.PasswordHash = string(hashedPassword)
	}
	if in.Name != "" {
		target.Name = in.Name
	}
	if in.Email != "" && in.Email != target.Email {
		if err := checkmail.ValidateFormat(in.Email); err != nil {
			return nil, apperr.Validationf("email", "invalid email address")
		}
		if _, err := us.Store.GetUserByEmail(in.Email); err == nil {
			return nil, apperr.Conflict("email already registered")
		} else if !apperr.IsNotFound(err) {
			return nil, err
		}
		target.Email = in.Email
	}

	if err := us.Store.UpdateUser(target); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteUser removes an account. A user may delete themselves; an admin
// of any team the target belongs to may delete them as well.
func (us *UserService) DeleteUser(actor *models.User, targetID uint) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}
	target, err := us.Store.GetUserByID(targetID)
	if err != nil {
		return err
	}

	targetMemberships, err := us.Store.ListUserMemberships(targetID)
	if err != nil {
		return err
	}
	targetTeamIDs := make([]uint, 0, len(targetMemberships))
	for _, m := range targetMemberships {
		targetTeamIDs = append(targetTeamIDs, m.TeamID)
	}
	_, adminTeamIDs, err := actorTeamIDs(us.Store, actor.ID)
	if err != nil {
		return err
	}

	if err := authz.CanAct(actor, authz.ActionDeleteUser, authz.Target{
		User:              target,
		TargetTeamIDs:     targetTeamIDs,
		ActorAdminTeamIDs: adminTeamIDs,
	}); err != nil {
		return err
	}
	return us.Store.DeleteUser(targetID)
}
