package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Murmur/internal/core/users"
	"Murmur/internal/core/visibility"

	"gorm.io/gorm"
)

type postgresUserRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *gorm.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// NewAccountLookup exposes accounts to the visibility predicate
func NewAccountLookup(db *gorm.DB) visibility.AccountLookup {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) error {
	row := &userRow{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		IsPublic:  user.IsPublic,
		CreatedAt: user.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			if violatedColumn(err, "email") {
				return users.ErrEmailTaken
			}
			return users.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *postgresUserRepo) getBy(ctx context.Context, cond string, arg string) (*users.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&row).Error
	if isNotFound(err) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toDomain(), nil
}

// AccountByID returns only the visibility-relevant slice of the account
func (r *postgresUserRepo) AccountByID(ctx context.Context, id string) (*visibility.Account, error) {
	user, err := r.GetByID(ctx, id)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, visibility.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &visibility.Account{ID: user.ID, IsPublic: user.IsPublic}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByUsername matches usernames containing term, case-insensitively
func (r *postgresUserRepo) SearchByUsername(ctx context.Context, term string, page users.Page) ([]*users.User, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	var rows []userRow
	err := r.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Order("username ASC").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return toUsers(rows), nil
}

// Recommendations returns friends-of-follows the viewer does not follow yet
func (r *postgresUserRepo) Recommendations(ctx context.Context, viewerID string, page users.Page) ([]*users.User, error) {
	secondDegree := r.db.Table("follows AS f1").
		Select("f2.followed_id").
		Joins("JOIN follows AS f2 ON f2.follower_id = f1.followed_id").
		Where("f1.follower_id = ? AND f1.deleted_at IS NULL AND f2.deleted_at IS NULL", viewerID)
	alreadyFollowed := r.db.Table("follows").
		Select("followed_id").
		Where("follower_id = ? AND deleted_at IS NULL", viewerID)

	var rows []userRow
	err := r.db.WithContext(ctx).
		Where("id IN (?)", secondDegree).
		Where("id NOT IN (?)", alreadyFollowed).
		Where("id <> ?", viewerID).
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return toUsers(rows), nil
}

func (r *postgresUserRepo) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	res := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Update("is_public", isPublic)
	if res.Error != nil {
		return fmt.Errorf("failed to update visibility: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

// Delete removes the account; the schema cascades to its posts, follows, reactions and messages
func (r *postgresUserRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

func toUsers(rows []userRow) []*users.User {
	out := make([]*users.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
