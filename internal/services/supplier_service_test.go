package services

import (
	"context"
	"errors"
	"testing"

	"schedulerapi/internal/caching"
	"schedulerapi/internal/common"
	"schedulerapi/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SupplierServiceTestSuite struct {
	suite.Suite
	mockSupplierRepo *MockSupplierRepository
	mockCache        *MockCacheService
	service          SupplierService
	userID           uuid.UUID
}

func (suite *SupplierServiceTestSuite) SetupTest() {
	suite.mockSupplierRepo = &MockSupplierRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewSupplierService(suite.mockSupplierRepo, suite.mockCache)
	suite.userID = uuid.New()
}

func (suite *SupplierServiceTestSuite) TearDownTest() {
	suite.mockSupplierRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestSupplierServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierServiceTestSuite))
}

func (suite *SupplierServiceTestSuite) TestCreate_Success() {
	supplier := &models.Supplier{
		Name:         "Bob's Garage",
		BusinessName: "Bob's Garage LLC",
	}

	suite.mockSupplierRepo.On("Create", mock.Anything, supplier).Return(nil).Once()

	err := suite.service.Create(context.Background(), suite.userID, supplier)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, supplier.UserID)
	assert.NotEqual(suite.T(), uuid.Nil, supplier.ID)
}

func (suite *SupplierServiceTestSuite) TestCreate_OwnerOverridesClientValue() {
	supplier := &models.Supplier{
		Name:   "Bob's Garage",
		UserID: uuid.New(), // client-supplied owner must be discarded
	}

	suite.mockSupplierRepo.On("Create", mock.Anything, supplier).Return(nil).Once()

	err := suite.service.Create(context.Background(), suite.userID, supplier)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, supplier.UserID)
}

func (suite *SupplierServiceTestSuite) TestCreate_NameRequired() {
	err := suite.service.Create(context.Background(), suite.userID, &models.Supplier{})

	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *SupplierServiceTestSuite) TestGetByID_CacheMissFallsToRepo() {
	supplier := &models.Supplier{
		ID:     uuid.New(),
		UserID: suite.userID,
		Name:   "Bob's Garage",
	}

	suite.mockCache.On("GetSupplier", mock.Anything, suite.userID, supplier.ID).Return(nil, caching.ErrCacheMiss).Once()
	suite.mockSupplierRepo.On("GetByID", mock.Anything, suite.userID, supplier.ID).Return(supplier, nil).Once()
	suite.mockCache.On("SetSupplier", mock.Anything, supplier, supplierCacheTTL).Return(nil).Once()

	got, err := suite.service.GetByID(context.Background(), suite.userID, supplier.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), supplier, got)
}

func (suite *SupplierServiceTestSuite) TestGetByID_CacheHitSkipsRepo() {
	supplier := &models.Supplier{
		ID:     uuid.New(),
		UserID: suite.userID,
		Name:   "Bob's Garage",
	}

	suite.mockCache.On("GetSupplier", mock.Anything, suite.userID, supplier.ID).Return(supplier, nil).Once()

	got, err := suite.service.GetByID(context.Background(), suite.userID, supplier.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), supplier, got)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *SupplierServiceTestSuite) TestGetByID_NotOwnedIsNotFound() {
	id := uuid.New()
	suite.mockCache.On("GetSupplier", mock.Anything, suite.userID, id).Return(nil, caching.ErrCacheMiss).Once()
	suite.mockSupplierRepo.On("GetByID", mock.Anything, suite.userID, id).Return(nil, common.ErrNotFound).Once()

	_, err := suite.service.GetByID(context.Background(), suite.userID, id)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *SupplierServiceTestSuite) TestGetByID_CacheErrorIsNonFatal() {
	supplier := &models.Supplier{
		ID:     uuid.New(),
		UserID: suite.userID,
		Name:   "Bob's Garage",
	}

	suite.mockCache.On("GetSupplier", mock.Anything, suite.userID, supplier.ID).Return(nil, errors.New("redis down")).Once()
	suite.mockSupplierRepo.On("GetByID", mock.Anything, suite.userID, supplier.ID).Return(supplier, nil).Once()
	suite.mockCache.On("SetSupplier", mock.Anything, supplier, supplierCacheTTL).Return(errors.New("redis down")).Once()

	got, err := suite.service.GetByID(context.Background(), suite.userID, supplier.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), supplier, got)
}

func (suite *SupplierServiceTestSuite) TestUpdate_InvalidatesCache() {
	supplier := &models.Supplier{
		ID:   uuid.New(),
		Name: "Renamed Garage",
	}

	suite.mockSupplierRepo.On("Update", mock.Anything, supplier).Return(nil).Once()
	suite.mockCache.On("DeleteSupplier", mock.Anything, suite.userID, supplier.ID).Return(nil).Once()

	err := suite.service.Update(context.Background(), suite.userID, supplier)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, supplier.UserID)
}

func (suite *SupplierServiceTestSuite) TestUpdate_NotOwnedIsNotFound() {
	supplier := &models.Supplier{
		ID:   uuid.New(),
		Name: "Renamed Garage",
	}

	suite.mockSupplierRepo.On("Update", mock.Anything, supplier).Return(common.ErrNotFound).Once()

	err := suite.service.Update(context.Background(), suite.userID, supplier)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "DeleteSupplier")
}

func (suite *SupplierServiceTestSuite) TestDelete_InvalidatesCache() {
	id := uuid.New()

	suite.mockSupplierRepo.On("Delete", mock.Anything, suite.userID, id).Return(nil).Once()
	suite.mockCache.On("DeleteSupplier", mock.Anything, suite.userID, id).Return(nil).Once()

	err := suite.service.Delete(context.Background(), suite.userID, id)

	assert.NoError(suite.T(), err)
}

func (suite *SupplierServiceTestSuite) TestList() {
	expected := []*models.Supplier{
		{ID: uuid.New(), UserID: suite.userID, Name: "Garage 1"},
		{ID: uuid.New(), UserID: suite.userID, Name: "Garage 2"},
	}

	suite.mockSupplierRepo.On("List", mock.Anything, suite.userID).Return(expected, nil).Once()

	suppliers, err := suite.service.List(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, suppliers)
}

func (suite *SupplierServiceTestSuite) TestAttachImage() {
	supplier := &models.Supplier{
		ID:     uuid.New(),
		UserID: suite.userID,
		Name:   "Bob's Garage",
	}

	suite.mockSupplierRepo.On("GetByID", mock.Anything, suite.userID, supplier.ID).Return(supplier, nil).Once()
	suite.mockSupplierRepo.On("Update", mock.Anything, supplier).Return(nil).Once()
	suite.mockCache.On("DeleteSupplier", mock.Anything, suite.userID, supplier.ID).Return(nil).Once()

	got, err := suite.service.AttachImage(context.Background(), suite.userID, supplier.ID, "abc/photo.png")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "abc/photo.png", got.Image)
}

func (suite *SupplierServiceTestSuite) TestAttachImage_NotOwned() {
	id := uuid.New()
	suite.mockSupplierRepo.On("GetByID", mock.Anything, suite.userID, id).Return(nil, common.ErrNotFound).Once()

	_, err := suite.service.AttachImage(context.Background(), suite.userID, id, "abc/photo.png")

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
