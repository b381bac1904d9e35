package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
}

type stubOrderService struct {
	services.OrderServiceInterface

	created    request_models.CreateOrderRequest
	createdBy  uuid.UUID
	filter     request_models.OrderFilter
	statusReq  request_models.UpdateOrderStatusRequest
	updateErr  error
	listCalled bool
	readVia    string
}

func (s *stubOrderService) GetOrder(_ context.Context, _, orderID uuid.UUID) (*response_models.OrderResponse, error) {
	s.readVia = "owner"
	return &response_models.OrderResponse{ID: orderID}, nil
}

func (s *stubOrderService) GetOrderDetails(_ context.Context, orderID uuid.UUID) (*response_models.OrderResponse, error) {
	s.readVia = "admin"
	return &response_models.OrderResponse{ID: orderID}, nil
}

func (s *stubOrderService) CreateOrder(_ context.Context, accountID uuid.UUID, req request_models.CreateOrderRequest) (*response_models.OrderResponse, error) {
	s.createdBy = accountID
	s.created = req
	return &response_models.OrderResponse{ID: uuid.New(), Status: "pending"}, nil
}

func (s *stubOrderService) ListOrders(_ context.Context, filter request_models.OrderFilter) (*utils.PagedData, error) {
	s.listCalled = true
	s.filter = filter
	return &utils.PagedData{}, nil
}

func (s *stubOrderService) UpdateOrderStatus(_ context.Context, _, _ uuid.UUID, req request_models.UpdateOrderStatusRequest) (*response_models.OrderResponse, error) {
	s.statusReq = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &response_models.OrderResponse{Status: req.Status}, nil
}

type stubPaymentService struct {
	form       request_models.SubmitPaymentForm
	screenshot []byte
}

func (s *stubPaymentService) SubmitPayment(_ context.Context, _, orderID uuid.UUID, form request_models.SubmitPaymentForm, screenshot []byte) (*response_models.PaymentResponse, error) {
	s.form = form
	s.screenshot = screenshot
	return &response_models.PaymentResponse{ID: uuid.New(), OrderID: orderID, Status: "pending"}, nil
}

type stubStorage struct {
	services.StorageService
	max     int64
	objects map[string][]byte
}

func (s *stubStorage) MaxUploadBytes() int64 { return s.max }

func (s *stubStorage) Open(_ context.Context, key string) ([]byte, string, error) {
	data, ok := s.objects[strings.TrimPrefix(key, "/")]
	if !ok {
		return nil, "", utils.ErrAssetNotFound
	}
	return data, "image/png", nil
}

type stubDashboard struct {
	rng response_models.TimeRange
}

func (s *stubDashboard) BuildDashboard(_ context.Context, rng response_models.TimeRange) (*response_models.DashboardReport, error) {
	s.rng = rng
	return &response_models.DashboardReport{Range: rng}, nil
}

func (s *stubDashboard) BuildUserDashboard(context.Context, uuid.UUID) (*response_models.UserDashboard, error) {
	return &response_models.UserDashboard{}, nil
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// asUser stands in for the JWT middleware.
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextUserID, id.String())
		c.Next()
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateOrderRequiresUser(t *testing.T) {
	ctrl := NewOrderController(&stubOrderService{})
	r := gin.New()
	r.POST("/orders", ctrl.CreateOrder)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	svc := &stubOrderService{}
	userID := uuid.New()
	r := gin.New()
	r.POST("/orders", asUser(userID), NewOrderController(svc).CreateOrder)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"plan_id":"not-a-uuid"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	planID := uuid.New()
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"plan_id":"`+planID.String()+`","coupon_code":"SAVE10"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, svc.createdBy)
	assert.Equal(t, planID.String(), svc.created.PlanID)
	assert.Equal(t, "SAVE10", svc.created.CouponCode)
}

func TestGetOrderLetsAdminsReadAnyOrder(t *testing.T) {
	svc := &stubOrderService{}
	ctrl := NewOrderController(svc)
	target := "/orders/" + uuid.NewString()

	r := gin.New()
	r.GET("/orders/:id", asUser(uuid.New()), ctrl.GetOrder)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner", svc.readVia)

	admin := gin.New()
	admin.GET("/orders/:id", asUser(uuid.New()), func(c *gin.Context) {
		c.Set(utils.ContextRole, "admin")
	}, ctrl.GetOrder)
	rec = httptest.NewRecorder()
	admin.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", svc.readVia)
}

func TestAdminListOrdersValidatesQuery(t *testing.T) {
	svc := &stubOrderService{}
	r := gin.New()
	r.GET("/admin/orders", NewOrderController(svc).AdminListOrders)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=shipped", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?pageSize=1000", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.listCalled)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending&search=+alice+&page=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, request_models.OrderFilter{Status: "pending", Search: "alice", Page: 3, PageSize: 20}, svc.filter)
}

func TestUpdateStatus(t *testing.T) {
	svc := &stubOrderService{}
	r := gin.New()
	r.PATCH("/admin/orders/:id/status", asUser(uuid.New()), NewOrderController(svc).UpdateStatus)
	target := "/admin/orders/" + uuid.NewString() + "/status"

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"status":"shipped"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/orders/abc/status", strings.NewReader(`{"status":"approved"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"status":"completed","note":"paid"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paid", svc.statusReq.Note)

	svc.updateErr = utils.ErrInvalidStatusTransition
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"status":"pending"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "error", decode(t, rec).Status)
}

func paymentForm(t *testing.T, fields map[string]string, screenshot []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if screenshot != nil {
		part, err := w.CreateFormFile("screenshot", "proof.png")
		require.NoError(t, err)
		_, err = part.Write(screenshot)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSubmitPayment(t *testing.T) {
	svc := &stubPaymentService{}
	ctrl := NewPaymentController(svc, &stubStorage{max: 64})
	r := gin.New()
	r.POST("/orders/:id/payments", asUser(uuid.New()), ctrl.SubmitPayment)
	target := "/orders/" + uuid.NewString() + "/payments"
	methodID := uuid.NewString()

	send := func(fields map[string]string, screenshot []byte) *httptest.ResponseRecorder {
		body, contentType := paymentForm(t, fields, screenshot)
		req := httptest.NewRequest(http.MethodPost, target, body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := send(map[string]string{"transaction_id": "TX1"}, []byte("png"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(map[string]string{"payment_method_id": methodID, "transaction_id": "TX1"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(map[string]string{"payment_method_id": methodID, "transaction_id": "TX1"}, bytes.Repeat([]byte{1}, 65))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = send(map[string]string{"payment_method_id": methodID, "transaction_id": "TX1"}, []byte("image-bytes"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "TX1", svc.form.TransactionID)
	assert.Equal(t, methodID, svc.form.PaymentMethodID)
	assert.Equal(t, []byte("image-bytes"), svc.screenshot)
}

func TestGetDashboardParsesRange(t *testing.T) {
	svc := &stubDashboard{}
	r := gin.New()
	r.GET("/admin/dashboard", NewDashboardController(svc).GetDashboard)

	for _, q := range []string{
		"interval=hour",
		"tz=Mars/Olympus",
		"last_days=7&start=2026-10-01T00:00:00Z",
		"last_days=-3",
		"start=yesterday",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/admin/dashboard?start=2026-10-01T00:00:00Z&end=2026-10-19T00:00:00Z&interval=week&tz=Asia/Dhaka", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), svc.rng.Start)
	assert.Equal(t, "week", svc.rng.Interval)
	assert.Equal(t, "Asia/Dhaka", svc.rng.Timezone)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard?last_days=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.WithinDuration(t, svc.rng.End.AddDate(0, 0, -7), svc.rng.Start, time.Second)
}

func TestServeAsset(t *testing.T) {
	storage := &stubStorage{objects: map[string][]byte{"plan_images/a.png": []byte("png")}}
	r := gin.New()
	r.GET("/assets/*key", NewAssetController(storage).ServeAsset)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/plan_images/a.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "png", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/plan_images/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	var pingErr error
	r := gin.New()
	r.GET("/health", NewHealthController(pingFunc(func(context.Context) error { return pingErr })).Health)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	pingErr = errors.New("connection refused")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
