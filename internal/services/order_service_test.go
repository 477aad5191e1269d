package services

import (
	"context"
	"errors"
	"testing"

	"feastly/internal/common"
	"feastly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockOrderRepository) AggregateByRestaurant(ctx context.Context) ([]*models.RestaurantStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RestaurantStats), args.Error(1)
}

type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockOrderRepository
	service      OrderServiceInterface
	customerID   uuid.UUID
	restaurantID uuid.UUID
	context      context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockOrderRepository{}
	suite.service = NewOrderService(suite.mockRepo)
	suite.customerID = uuid.New()
	suite.restaurantID = uuid.New()
	suite.context = context.Background()

	suite.mockRepo.Test(suite.T())
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	items := []OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 2, Price: 10.00},
		{MenuItemID: uuid.New(), Quantity: 1, Price: 5.00},
	}

	suite.mockRepo.On("Create", suite.context, mock.AnythingOfType("*models.Order")).
		Return(&models.Order{ID: uuid.New()}, nil).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*models.Order)
			assert.Equal(suite.T(), suite.customerID, order.CustomerID)
			assert.Equal(suite.T(), suite.restaurantID, order.RestaurantID)
			assert.Equal(suite.T(), models.OrderStatusPlaced, order.Status)
			assert.Equal(suite.T(), models.PaymentStatusPaid, order.PaymentStatus)
			assert.Len(suite.T(), order.Items, 2)
			assert.Equal(suite.T(), int64(2500), common.NumericCents(order.TotalPrice))
		})

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 25.00, models.PaymentStatusPaid, items)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_TotalMismatch() {
	items := []OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 2, Price: 10.00},
	}

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 25.00, models.PaymentStatusPaid, items)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)

	var ve *common.ValidationError
	assert.True(suite.T(), errors.As(err, &ve))
	assert.Equal(suite.T(), "total_price", ve.Field)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_FloatTotalsCompareByCents() {
	// 0.1+0.2 style inputs must not trip the verification.
	items := []OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 1, Price: 0.10},
		{MenuItemID: uuid.New(), Quantity: 1, Price: 0.20},
	}

	suite.mockRepo.On("Create", suite.context, mock.AnythingOfType("*models.Order")).
		Return(&models.Order{ID: uuid.New()}, nil)

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 0.30, models.PaymentStatusUnpaid, items)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_EmptyItemsZeroTotal() {
	suite.mockRepo.On("Create", suite.context, mock.AnythingOfType("*models.Order")).
		Return(&models.Order{ID: uuid.New()}, nil)

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 0, "", nil)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ZeroQuantity() {
	items := []OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 0, Price: 10.00},
	}

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 0, models.PaymentStatusUnpaid, items)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)

	var ve *common.ValidationError
	assert.True(suite.T(), errors.As(err, &ve))
	assert.Equal(suite.T(), "items[0].quantity", ve.Field)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NegativePrice() {
	items := []OrderItemInput{
		{MenuItemID: uuid.New(), Quantity: 1, Price: -1.00},
	}

	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, -1.00, models.PaymentStatusUnpaid, items)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NilCustomer() {
	order, err := suite.service.CreateOrder(suite.context, uuid.Nil, suite.restaurantID, 0, "", nil)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)

	var ve *common.ValidationError
	assert.True(suite.T(), errors.As(err, &ve))
	assert.Equal(suite.T(), "customer_id", ve.Field)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InvalidPaymentStatus() {
	order, err := suite.service.CreateOrder(suite.context, suite.customerID, suite.restaurantID, 0, "Pending", nil)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)

	var ve *common.ValidationError
	assert.True(suite.T(), errors.As(err, &ve))
	assert.Equal(suite.T(), "payment_status", ve.Field)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_Success() {
	orderID := uuid.New()
	suite.mockRepo.On("UpdateStatus", suite.context, orderID, models.OrderStatusDelivered).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusDelivered}, nil)

	order, err := suite.service.UpdateOrderStatus(suite.context, orderID, models.OrderStatusDelivered)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusDelivered, order.Status)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvalidStatus() {
	order, err := suite.service.UpdateOrderStatus(suite.context, uuid.New(), "shipped")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)

	var ve *common.ValidationError
	assert.True(suite.T(), errors.As(err, &ve))
	assert.Equal(suite.T(), "status", ve.Field)
}

func (suite *OrderServiceTestSuite) TestGetOrder_PassesThrough() {
	orderID := uuid.New()
	suite.mockRepo.On("GetByID", suite.context, orderID).Return(nil, common.ErrNotFound)

	order, err := suite.service.GetOrder(suite.context, orderID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestListCustomerOrders_PassesThrough() {
	expected := []*models.Order{{ID: uuid.New()}, {ID: uuid.New()}}
	suite.mockRepo.On("ListByCustomer", suite.context, suite.customerID).Return(expected, nil)

	orders, err := suite.service.ListCustomerOrders(suite.context, suite.customerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, orders)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_PassesThrough() {
	orderID := uuid.New()
	suite.mockRepo.On("Delete", suite.context, orderID).Return(orderID, nil)

	deletedID, err := suite.service.DeleteOrder(suite.context, orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), orderID, deletedID)
}
