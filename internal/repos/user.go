package repos

import (
    "context"
    "errors"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/parley-org/parley-backend/internal/logger"
    "github.com/parley-org/parley-backend/internal/types"
)

type UserRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
    GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error)
    UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
}

type userRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
    repoLog := baseLog.With("repo", "UserRepo")
    return &userRepo{db: db, log: repoLog}
}

// ----------------------------------------------------------------
// CREATE
// ----------------------------------------------------------------

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
    ur.log.Info("Starting Create Users now...")

    // 1) Check transaction
    transaction := tx
    if transaction == nil {
        transaction = ur.db
        ur.log.Debug("Transaction is nil, using ur.db instead")
    }

    // 2) Check if empty
    if len(users) == 0 {
        ur.log.Debug("Users array is empty, returning empty slice", "count", 0)
        return []*types.User{}, nil
    }
    ur.log.Debug("Users array has items", "count", len(users))

    // 3) Create
    if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            ur.log.Warn("Unique constraint hit while creating users", "error", err)
            return nil, ErrDuplicateEntry
        }
        ur.log.Error("Failed to create users", "error", err)
        return nil, err
    }
    ur.log.Info("Successfully created users", "count", len(users))
    return users, nil
}

// ----------------------------------------------------------------
// READ
// ----------------------------------------------------------------

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
    ur.log.Info("Starting GetByIDs for Users now...")

    transaction := tx
    if transaction == nil {
        transaction = ur.db
        ur.log.Debug("Transaction is nil, using ur.db")
    }

    var results []*types.User
    if len(userIDs) == 0 {
        ur.log.Debug("No userIDs provided, returning empty slice")
        return results, nil
    }
    ur.log.Debug("UserIDs provided", "count", len(userIDs), "userIDs", userIDs)

    if err := transaction.WithContext(ctx).
        Where("id IN ?", userIDs).
        Find(&results).Error; err != nil {
        ur.log.Error("Failed to fetch users by IDs", "error", err)
        return nil, err
    }
    ur.log.Info("Successfully fetched users by IDs", "count", len(results))
    return results, nil
}

func (ur *userRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error) {
    ur.log.Info("Starting GetByUsernames for Users now...")

    transaction := tx
    if transaction == nil {
        transaction = ur.db
        ur.log.Debug("Transaction is nil, using ur.db")
    }

    var results []*types.User
    if len(usernames) == 0 {
        ur.log.Debug("No usernames provided, returning empty slice")
        return results, nil
    }
    ur.log.Debug("Usernames provided", "count", len(usernames), "usernames", usernames)

    if err := transaction.WithContext(ctx).
        Where("username IN ?", usernames).
        Find(&results).Error; err != nil {
        ur.log.Error("Failed to fetch users by usernames", "error", err)
        return nil, err
    }
    ur.log.Info("Successfully fetched users by usernames", "count", len(results))
    return results, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
    ur.log.Info("Starting UsernameExists now...", "username", username)

    transaction := tx
    if transaction == nil {
        transaction = ur.db
        ur.log.Debug("Transaction is nil, using ur.db")
    }

    var count int64
    if err := transaction.WithContext(ctx).
        Model(&types.User{}).
        Where("username = ?", username).
        Count(&count).Error; err != nil {
        ur.log.Error("Failed to count users by username", "error", err)
        return false, err
    }
    exists := count > 0
    ur.log.Info("UsernameExists check complete", "username", username, "exists", exists)
    return exists, nil
}
