package maprepo_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/maprepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// testMap bundles a built map aggregate with the ids of its nodes so tests
// can address individual levels of the hierarchy.
type testMap struct {
	warehouseMap *warehousemap.Map
	zoneID       kernel.UUID
	aisleID      kernel.UUID
	rackID       kernel.UUID
	binID        kernel.UUID
}

// WarehouseMapRepositoryIntegrationTestSuite provides integration tests for
// WarehouseMapRepository using PostgreSQL containers, covering the whole
// hierarchy round-trip and the soft-delete cascade on removed nodes.
type WarehouseMapRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *maprepo.GormWarehouseMapRepository
	tracker    *MockAggregateTracker
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&maprepo.MapDTO{},
		&maprepo.ZoneDTO{},
		&maprepo.AisleDTO{},
		&maprepo.RackDTO{},
		&maprepo.BinDTO{},
	))
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE map_bins, map_racks, map_aisles, map_zones, warehouse_maps").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = maprepo.NewGormWarehouseMapRepository(suite.db, suite.tracker)
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestAdd_FullHierarchy_Persists() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", built.warehouseMap.ID(), built.warehouseMap).Once()

	err := suite.repository.Add(ctx, built.warehouseMap)
	suite.Require().NoError(err)

	suite.assertCount(&maprepo.MapDTO{}, 1)
	suite.assertCount(&maprepo.ZoneDTO{}, 1)
	suite.assertCount(&maprepo.AisleDTO{}, 1)
	suite.assertCount(&maprepo.RackDTO{}, 1)
	suite.assertCount(&maprepo.BinDTO{}, 2)

	// The root row carries the tenant tag.
	var row maprepo.MapDTO
	suite.Require().NoError(suite.db.First(&row, "id = ?", built.warehouseMap.ID().String()).Error)
	suite.Equal(built.warehouseMap.CompanyID().String(), row.CompanyID.String())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestGet_ExistingMap_RestoresHierarchy() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	original := built.warehouseMap
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.CompanyID(), retrieved.CompanyID())
	suite.Equal(original.WarehouseID(), retrieved.WarehouseID())
	suite.Equal(original.Name(), retrieved.Name())
	suite.Equal(original.IsActive(), retrieved.IsActive())

	suite.Require().Len(retrieved.Zones(), 1)
	zone := retrieved.Zones()[0]
	suite.Equal(built.zoneID, zone.ID())
	suite.Require().Len(zone.Aisles(), 1)
	suite.Require().Len(zone.Aisles()[0].Racks(), 1)
	suite.Require().Len(zone.Aisles()[0].Racks()[0].Bins(), 2)

	// Bin locations survive the round trip
	location, err := retrieved.BinLocation(built.binID)
	suite.Require().NoError(err)
	suite.Equal(kernel.Coordinate(10), location.X())
	suite.Equal(kernel.Coordinate(4), location.Y())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestGet_NonExistentMap_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestGetActiveByWarehouse_ReturnsOnlyActiveMap() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	active := suite.buildTestMap(warehouseID)
	inactive := suite.buildTestMap(warehouseID)
	inactive.warehouseMap.Deactivate()

	suite.tracker.On("TrackAggregate", active.warehouseMap.ID(), active.warehouseMap).Once()
	suite.tracker.On("TrackAggregate", inactive.warehouseMap.ID(), inactive.warehouseMap).Once()
	suite.Require().NoError(suite.repository.Add(ctx, active.warehouseMap))
	suite.Require().NoError(suite.repository.Add(ctx, inactive.warehouseMap))

	retrieved, err := suite.repository.GetActiveByWarehouse(ctx, warehouseID)
	suite.Require().NoError(err)
	suite.Equal(active.warehouseMap.ID(), retrieved.ID())
	suite.True(retrieved.IsActive())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestGetActiveByWarehouse_NoActiveMap_ReturnsNotFoundError() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	inactive := suite.buildTestMap(warehouseID)
	inactive.warehouseMap.Deactivate()
	suite.tracker.On("TrackAggregate", inactive.warehouseMap.ID(), inactive.warehouseMap).Once()
	suite.Require().NoError(suite.repository.Add(ctx, inactive.warehouseMap))

	retrieved, err := suite.repository.GetActiveByWarehouse(ctx, warehouseID)

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestUpdate_Rename_Persists() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	warehouseMap := built.warehouseMap
	suite.tracker.On("TrackAggregate", warehouseMap.ID(), warehouseMap).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, warehouseMap))

	suite.Require().NoError(warehouseMap.Rename("Floor 1 rev B"))
	suite.Require().NoError(suite.repository.Update(ctx, warehouseMap))

	retrieved, err := suite.repository.Get(ctx, warehouseMap.ID())
	suite.Require().NoError(err)
	suite.Equal("Floor 1 rev B", retrieved.Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestUpdate_RemovedBin_IsSoftDeleted() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	warehouseMap := built.warehouseMap
	suite.tracker.On("TrackAggregate", warehouseMap.ID(), warehouseMap).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, warehouseMap))

	suite.Require().NoError(warehouseMap.RemoveBin(built.binID))
	suite.Require().NoError(suite.repository.Update(ctx, warehouseMap))

	retrieved, err := suite.repository.Get(ctx, warehouseMap.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.Bins(), 1, "Removed bin should not load anymore")

	// The row survives as soft-deleted
	suite.assertCount(&maprepo.BinDTO{}, 1)
	var total int64
	suite.Require().NoError(
		suite.db.Unscoped().Model(&maprepo.BinDTO{}).Count(&total).Error)
	suite.Equal(int64(2), total)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestUpdate_RemovedZone_CascadesToSubtree() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	warehouseMap := built.warehouseMap
	suite.tracker.On("TrackAggregate", warehouseMap.ID(), warehouseMap).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, warehouseMap))

	suite.Require().NoError(warehouseMap.RemoveZone(built.zoneID))
	suite.Require().NoError(suite.repository.Update(ctx, warehouseMap))

	retrieved, err := suite.repository.Get(ctx, warehouseMap.ID())
	suite.Require().NoError(err)
	suite.Empty(retrieved.Zones())

	// Everything beneath the zone is swept
	suite.assertCount(&maprepo.ZoneDTO{}, 0)
	suite.assertCount(&maprepo.AisleDTO{}, 0)
	suite.assertCount(&maprepo.RackDTO{}, 0)
	suite.assertCount(&maprepo.BinDTO{}, 0)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestUpdate_AddedBin_Persists() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	warehouseMap := built.warehouseMap
	suite.tracker.On("TrackAggregate", warehouseMap.ID(), warehouseMap).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, warehouseMap))

	location, err := kernel.NewLocation(14, 4)
	suite.Require().NoError(err)
	newBinID := kernel.NewUUID()
	suite.Require().NoError(
		warehouseMap.AddBin(built.rackID, newBinID, "Bin 3", "A1-R1-B3", location, nil, 3))
	suite.Require().NoError(suite.repository.Update(ctx, warehouseMap))

	retrieved, err := suite.repository.Get(ctx, warehouseMap.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.Bins(), 3)

	binLocation, err := retrieved.BinLocation(newBinID)
	suite.Require().NoError(err)
	suite.Equal(kernel.Coordinate(14), binLocation.X())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestDelete_RemovesMapWithSubtree() {
	ctx := context.Background()

	built := suite.buildTestMap(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", built.warehouseMap.ID(), built.warehouseMap).Once()
	suite.Require().NoError(suite.repository.Add(ctx, built.warehouseMap))

	err := suite.repository.Delete(ctx, built.warehouseMap.ID())
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, built.warehouseMap.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.assertCount(&maprepo.MapDTO{}, 0)
	suite.assertCount(&maprepo.ZoneDTO{}, 0)
	suite.assertCount(&maprepo.AisleDTO{}, 0)
	suite.assertCount(&maprepo.RackDTO{}, 0)
	suite.assertCount(&maprepo.BinDTO{}, 0)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WarehouseMapRepositoryIntegrationTestSuite) TestDelete_NonExistentMap_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// buildTestMap creates an active map with one zone, one aisle, one rack
// and two bins.
func (suite *WarehouseMapRepositoryIntegrationTestSuite) buildTestMap(warehouseID kernel.UUID) testMap {
	warehouseMap, err := warehousemap.NewMap(kernel.NewUUID(), kernel.NewUUID(), warehouseID, "Floor 1")
	suite.Require().NoError(err)
	warehouseMap.Activate()

	zoneID := kernel.NewUUID()
	suite.Require().NoError(warehouseMap.AddZone(zoneID, "Ambient", "AMB", 1))

	aisleID := kernel.NewUUID()
	suite.Require().NoError(warehouseMap.AddAisle(zoneID, aisleID, "Aisle 1", "A1", 1))

	rackID := kernel.NewUUID()
	suite.Require().NoError(warehouseMap.AddRack(aisleID, rackID, "Rack 1", "A1-R1", 1))

	binID := kernel.NewUUID()
	location1, err := kernel.NewLocation(10, 4)
	suite.Require().NoError(err)
	suite.Require().NoError(
		warehouseMap.AddBin(rackID, binID, "Bin 1", "A1-R1-B1", location1, nil, 1))

	location2, err := kernel.NewLocation(12, 4)
	suite.Require().NoError(err)
	storageBinID := kernel.NewUUID()
	suite.Require().NoError(
		warehouseMap.AddBin(rackID, kernel.NewUUID(), "Bin 2", "A1-R1-B2", location2, &storageBinID, 2))

	return testMap{
		warehouseMap: warehouseMap,
		zoneID:       zoneID,
		aisleID:      aisleID,
		rackID:       rackID,
		binID:        binID,
	}
}

// assertCount verifies the number of visible rows for a model.
func (suite *WarehouseMapRepositoryIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestWarehouseMapRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WarehouseMapRepositoryIntegrationTestSuite))
}
