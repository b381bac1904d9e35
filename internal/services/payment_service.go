package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type PaymentService interface {
	// SubmitPayment attaches a proof of payment to a pending order.
	SubmitPayment(ctx context.Context, accountID, orderID uuid.UUID, form request_models.SubmitPaymentForm, screenshot []byte) (*response_models.PaymentResponse, error)
}

type paymentService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	methodRepo  repositories.PaymentMethodRepository
	storage     StorageService
	mail        IMailService
	log         *zap.Logger
}

func NewPaymentService(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	methodRepo repositories.PaymentMethodRepository,
	storage StorageService,
	mail IMailService,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		storage:     storage,
		mail:        mail,
		log:         log.Named("payments"),
	}
}

func (p *paymentService) SubmitPayment(ctx context.Context, accountID, orderID uuid.UUID, form request_models.SubmitPaymentForm, screenshot []byte) (*response_models.PaymentResponse, error) {
	transactionID := strings.TrimSpace(form.TransactionID)
	if transactionID == "" {
		return nil, utils.ErrInvalidInput
	}
	methodID, err := uuid.Parse(form.PaymentMethodID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	order, err := p.orderRepo.FindById(ctx, orderID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if order == nil || order.AccountID != accountID {
		return nil, utils.ErrOrderNotFound
	}
	if order.Status != dbm.OrderPending {
		return nil, utils.ErrOrderNotPayable
	}
	for _, existing := range order.Payments {
		if existing.Status == dbm.PaymentPending {
			return nil, utils.ErrPaymentAlreadySubmitted
		}
	}

	method, err := p.methodRepo.FindById(ctx, methodID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if method == nil || !method.IsActive {
		return nil, utils.ErrPaymentMethodNotFound
	}

	obj, err := p.storage.UploadImage(ctx, FolderPaymentProofs, screenshot)
	if err != nil {
		return nil, err
	}

	payment := &dbm.Payment{
		OrderID:         order.ID,
		PaymentMethodID: method.ID,
		TransactionID:   transactionID,
		ScreenshotKey:   obj.Key,
		ScreenshotURL:   obj.URL,
		Status:          dbm.PaymentPending,
	}
	if err := p.paymentRepo.CreateForOrder(ctx, payment); err != nil {
		if delErr := p.storage.Delete(ctx, obj.Key); delErr != nil {
			p.log.Warn("cleanup payment proof", zap.String("key", obj.Key), zap.Error(delErr))
		}
		switch {
		case errors.Is(err, repositories.ErrConditionFailed):
			return nil, utils.ErrOrderNotPayable
		case errors.Is(err, repositories.ErrPendingPaymentExists):
			return nil, utils.ErrPaymentAlreadySubmitted
		case errors.Is(err, repositories.ErrTransactionIDTaken):
			return nil, utils.ErrDuplicateTransaction
		}
		return nil, utils.ErrDatabaseError
	}
	payment.PaymentMethod = *method

	p.log.Info("payment submitted",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_id", payment.ID.String()),
	)

	err = p.mail.SendPaymentSubmitted(PaymentNotice{
		OrderID:       order.ID.String(),
		CustomerEmail: order.Account.Email,
		PlanName:      order.Plan.Name,
		Amount:        utils.FormatMinor(order.TotalAmountMinor, order.Currency),
		Method:        method.MethodName,
		TransactionID: transactionID,
		ScreenshotURL: obj.URL,
	})
	if err != nil {
		p.log.Warn("payment notification failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	resp := toPaymentResponse(payment)
	return &resp, nil
}
