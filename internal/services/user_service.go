package services

import (
	"context"
	"errors"

	"feedbox/internal/models"
	"feedbox/internal/repositories"
	"feedbox/internal/schemas"

	"go.uber.org/zap"
)

// UserService handles user accounts and the admin seed.
type UserService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store repositories.Store, log *zap.Logger) *UserService {
	return &UserService{
		store: store,
		log:   log,
	}
}

// CreateUser registers a user with the default role.
func (s *UserService) CreateUser(ctx context.Context, in schemas.UserCreate) (*models.User, error) {
	if err := schemas.Validate(in); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     models.RoleUser,
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := checkUnique(ctx, tx, 0, user.Username, user.Email); err != nil {
			return err
		}
		return duplicate(tx.Users().Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user created", zap.Uint("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// ListUsers returns every user ordered by ID.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		users, err = tx.Users().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserPartial applies only the fields present in patch.
func (s *UserService) UpdateUserPartial(ctx context.Context, id uint, patch schemas.UserUpdate) (*models.User, error) {
	if err := schemas.Validate(patch); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		patch.Apply(user)
		if err := checkUnique(ctx, tx, user.ID, user.Username, user.Email); err != nil {
			return err
		}
		return duplicate(tx.Users().Update(ctx, user))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user on behalf of an admin requester. Users that still
// own feedback are kept and ErrUserHasFeedback is returned.
func (s *UserService) DeleteUser(ctx context.Context, requesterEmail string, id uint) error {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := authorizeAdmin(ctx, tx, requesterEmail); err != nil {
			return err
		}
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		n, err := tx.Users().CountFeedbacks(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrUserHasFeedback
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("user deleted", zap.Uint("id", id), zap.String("by", requesterEmail))
	return nil
}

// EnsureAdmin creates the admin account unless a user with email already
// exists. It is run once at startup.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email string) (*models.User, error) {
	var admin *models.User
	created := false
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		existing, err := tx.Users().GetByEmail(ctx, email)
		if err == nil {
			admin = existing
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		admin = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleAdmin,
		}
		if err := checkUnique(ctx, tx, 0, username, email); err != nil {
			return err
		}
		created = true
		return duplicate(tx.Users().Create(ctx, admin))
	})
	if err != nil {
		return nil, err
	}

	switch {
	case created:
		s.log.Info("admin user created", zap.String("username", admin.Username), zap.String("email", admin.Email))
	case !admin.IsAdmin():
		s.log.Warn("configured admin email belongs to a non-admin user", zap.String("email", admin.Email))
	default:
		s.log.Info("admin user already exists", zap.String("username", admin.Username))
	}
	return admin, nil
}

// checkUnique rejects a username or email already held by a user other than self.
func checkUnique(ctx context.Context, tx repositories.Store, self uint, username, email string) error {
	if u, err := tx.Users().GetByUsername(ctx, username); err == nil && u.ID != self {
		return ErrUsernameTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if u, err := tx.Users().GetByEmail(ctx, email); err == nil && u.ID != self {
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

// duplicate turns a constraint violation that slipped past checkUnique, such
// as a concurrent insert, into ErrDuplicateUser.
func duplicate(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return ErrDuplicateUser
	}
	return err
}
