package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/config"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	mem "storefront/pkg/memcache"
	"storefront/pkg/utils"
)

const (
	otpLength = 6
	otpTTL    = 15 * time.Minute
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, request request_models.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	SeedAdmin(ctx context.Context) error

	ListUsers(ctx context.Context, search string, page, pageSize int) (*utils.PagedData, error)
	SetRole(ctx context.Context, actorID, accountID uuid.UUID, role db_models.Role) (*response_models.AccountResponse, error)
	// CurrentRole reads the stored role, which may differ from a token's claim.
	CurrentRole(ctx context.Context, accountID uuid.UUID) (string, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	subRepo     repositories.SubscriptionRepository
	jwt         *utils.JWTManager
	resetCodes  mem.ResetCodeStore
	mail        IMailService
	cfg         *config.Config
	log         *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	subRepo repositories.SubscriptionRepository,
	jwt *utils.JWTManager,
	resetCodes mem.ResetCodeStore,
	mail IMailService,
	cfg *config.Config,
	log *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		subRepo:     subRepo,
		jwt:         jwt,
		resetCodes:  resetCodes,
		mail:        mail,
		cfg:         cfg,
		log:         log.Named("accounts"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {

	email := normalizeEmail(request.Email)
	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	newAccount := &db_models.Account{
		FullName:     strings.TrimSpace(request.FullName),
		Email:        email,
		WhatsApp:     strings.TrimSpace(request.WhatsApp),
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.ErrDatabaseError
	}

	a.log.Info("account registered", zap.String("account_id", newAccount.ID.String()))
	resp := toAccountResponse(newAccount)
	return &resp, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	sub, err := a.subRepo.FindCurrent(ctx, account.ID, time.Now().Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AccountLoginResponse{
		Token:                 token,
		ExpiresAt:             time.Now().Add(a.jwt.TTL()).UTC(),
		HasActiveSubscription: sub != nil,
		Account:               toAccountResponse(account),
	}, nil
}

func (a *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	err := a.accountRepo.UpdateProfile(ctx, accountID, strings.TrimSpace(request.FullName), strings.TrimSpace(request.WhatsApp))
	if errors.Is(err, repositories.ErrConditionFailed) {
		return nil, utils.ErrAccountNotFound
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return a.GetProfile(ctx, accountID)
}

func (a *AccountService) ChangePassword(ctx context.Context, accountID uuid.UUID, request request_models.ChangePasswordRequest) error {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err := a.accountRepo.UpdatePassword(ctx, accountID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ForgotPassword never reveals whether the email is registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	// A live code is re-sent as is so repeated requests keep its attempt count.
	otp, live := a.resetCodes.Peek(email)
	if !live {
		otp, err = utils.GenerateOtpCode(otpLength)
		if err != nil {
			return err
		}
		a.resetCodes.Set(email, otp, otpTTL)
	}

	if err := a.mail.SendMailToResetPassword(email, otp); err != nil {
		a.log.Error("send reset code", zap.String("account_id", account.ID.String()), zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := normalizeEmail(request.Email)
	if !a.resetCodes.Consume(email, request.Otp) {
		return utils.ErrInvalidOtp
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrInvalidOtp
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err := a.accountRepo.UpdatePassword(ctx, account.ID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	a.log.Info("password reset", zap.String("account_id", account.ID.String()))
	return nil
}

// SeedAdmin creates ADMIN_EMAIL as an admin when no admin exists yet.
func (a *AccountService) SeedAdmin(ctx context.Context) error {
	if a.cfg.AdminEmail == "" || a.cfg.AdminPassword == "" {
		return nil
	}

	n, err := a.accountRepo.CountByRole(ctx, db_models.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	existing, err := a.accountRepo.FindByEmail(ctx, a.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		a.log.Info("promoting existing account to admin", zap.String("account_id", existing.ID.String()))
		return a.accountRepo.UpdateRole(ctx, existing.ID, db_models.RoleAdmin)
	}

	hashed, err := utils.HashPassword(a.cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &db_models.Account{
		FullName:     "Administrator",
		Email:        a.cfg.AdminEmail,
		PasswordHash: hashed,
		Role:         db_models.RoleAdmin,
	}
	if err := a.accountRepo.Insert(ctx, admin); err != nil {
		return err
	}
	a.log.Info("admin account seeded", zap.String("account_id", admin.ID.String()))
	return nil
}

func (a *AccountService) ListUsers(ctx context.Context, search string, page, pageSize int) (*utils.PagedData, error) {
	accounts, total, err := a.accountRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResponse(&accounts[i]))
	}
	return &utils.PagedData{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (a *AccountService) CurrentRole(ctx context.Context, accountID uuid.UUID) (string, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrAccountNotFound
	}
	return string(account.Role), nil
}

func (a *AccountService) SetRole(ctx context.Context, actorID, accountID uuid.UUID, role db_models.Role) (*response_models.AccountResponse, error) {
	if role != db_models.RoleUser && role != db_models.RoleAdmin {
		return nil, utils.ErrInvalidInput
	}
	if actorID == accountID {
		return nil, utils.ErrCannotDemoteSelf
	}

	err := a.accountRepo.UpdateRole(ctx, accountID, role)
	if errors.Is(err, repositories.ErrConditionFailed) {
		return nil, utils.ErrAccountNotFound
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	a.log.Info("role changed", zap.String("account_id", accountID.String()), zap.String("role", string(role)), zap.String("by", actorID.String()))
	return a.GetProfile(ctx, accountID)
}
