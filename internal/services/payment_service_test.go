package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/models/request_models"
	"storefront/pkg/utils"
)

func TestSubmitPaymentStoresProof(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	id := f.createOrder(t, "")

	p, err := f.paySvc.SubmitPayment(ctx, f.customer.ID, id, request_models.SubmitPaymentForm{
		PaymentMethodID: f.method.ID.String(),
		TransactionID:   "  8N7A6D5C  ",
	}, pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "8N7A6D5C", p.TransactionID)
	assert.Equal(t, "bKash", p.PaymentMethodName)
	assert.True(t, strings.HasPrefix(p.ScreenshotURL, "http://api.test/assets/payment_proofs/"))

	key := f.store.payments[0].ScreenshotKey
	data, contentType, err := f.storage.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", contentType)

	require.Len(t, f.mail.payments, 1)
	assert.Equal(t, "20.00 USD", f.mail.payments[0].Amount)
	assert.Equal(t, "jane@example.com", f.mail.payments[0].CustomerEmail)
}

func TestSubmitPaymentGuards(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	id := f.createOrder(t, "")
	form := request_models.SubmitPaymentForm{PaymentMethodID: f.method.ID.String(), TransactionID: "TXN-1"}

	_, err := f.paySvc.SubmitPayment(ctx, uuid.New(), id, form, pngBytes)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)

	_, err = f.paySvc.SubmitPayment(ctx, f.customer.ID, id, request_models.SubmitPaymentForm{PaymentMethodID: uuid.NewString(), TransactionID: "TXN-1"}, pngBytes)
	assert.ErrorIs(t, err, utils.ErrPaymentMethodNotFound)

	_, err = f.paySvc.SubmitPayment(ctx, f.customer.ID, id, form, []byte("%PDF-1.7 not an image"))
	assert.ErrorIs(t, err, utils.ErrUnsupportedFile)

	f.submit(t, id, "TXN-1")
	_, err = f.paySvc.SubmitPayment(ctx, f.customer.ID, id, request_models.SubmitPaymentForm{PaymentMethodID: f.method.ID.String(), TransactionID: "TXN-2"}, pngBytes)
	assert.ErrorIs(t, err, utils.ErrPaymentAlreadySubmitted)

	_, err = f.orderSvc.CancelOrder(ctx, f.customer.ID, id)
	require.NoError(t, err)
	_, err = f.paySvc.SubmitPayment(ctx, f.customer.ID, id, form, pngBytes)
	assert.ErrorIs(t, err, utils.ErrOrderNotPayable)
}

func TestSubmitPaymentDuplicateTransactionCleansUp(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	first := f.createOrder(t, "")
	second := f.createOrder(t, "")
	f.submit(t, first, "TXN-1")

	_, err := f.paySvc.SubmitPayment(ctx, f.customer.ID, second, request_models.SubmitPaymentForm{
		PaymentMethodID: f.method.ID.String(),
		TransactionID:   "TXN-1",
	}, pngBytes)
	assert.ErrorIs(t, err, utils.ErrDuplicateTransaction)
	require.Len(t, f.store.payments, 1)

	objects, err := f.storage.fs.List(ctx, f.storage.baseURL+"/"+FolderPaymentProofs)
	require.NoError(t, err)
	files := 0
	for _, o := range objects {
		if !o.IsDir() {
			files++
		}
	}
	assert.Equal(t, 1, files)
}
