package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, whatsApp string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role db_models.Role) error
	CountByRole(ctx context.Context, role db_models.Role) (int64, error)
	List(ctx context.Context, search string, page, pageSize int) ([]db_models.Account, int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {

	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", strings.ToLower(email)).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, whatsApp string) error {
	return a.update(ctx, id, map[string]interface{}{"full_name": fullName, "whatsapp": whatsApp})
}

func (a *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.update(ctx, id, map[string]interface{}{"password_hash": passwordHash})
}

func (a *accountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role db_models.Role) error {
	return a.update(ctx, id, map[string]interface{}{"role": role})
}

func (a *accountRepository) update(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	res := a.db.WithContext(ctx).Model(&db_models.Account{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (a *accountRepository) CountByRole(ctx context.Context, role db_models.Role) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&db_models.Account{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (a *accountRepository) List(ctx context.Context, search string, page, pageSize int) ([]db_models.Account, int64, error) {
	q := a.db.WithContext(ctx).Model(&db_models.Account{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", likePattern(search), likePattern(search))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []db_models.Account
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}
