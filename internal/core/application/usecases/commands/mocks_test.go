package commands_test

import (
	"context"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the handler tests in this package.

type MockWorkTaskRepository struct {
	mock.Mock
}

func (m *MockWorkTaskRepository) Add(ctx context.Context, task *worktask.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockWorkTaskRepository) Update(ctx context.Context, task *worktask.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockWorkTaskRepository) Get(ctx context.Context, id kernel.UUID) (*worktask.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worktask.Task), args.Error(1)
}

func (m *MockWorkTaskRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*worktask.Task, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worktask.Task), args.Error(1)
}

func (m *MockWorkTaskRepository) GetAllPending(
	ctx context.Context, warehouseID kernel.UUID,
) ([]*worktask.Task, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worktask.Task), args.Error(1)
}

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Add(ctx context.Context, a agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetAllAvailable(
	ctx context.Context, warehouseID kernel.UUID,
) ([]agent.Agent, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) ApplyPosition(
	ctx context.Context, agentID kernel.UUID, position kernel.Location, reportedAt time.Time,
) (bool, error) {
	args := m.Called(ctx, agentID, position, reportedAt)
	return args.Bool(0), args.Error(1)
}

type MockWarehouseMapRepository struct {
	mock.Mock
}

func (m *MockWarehouseMapRepository) Add(ctx context.Context, aggregate *warehousemap.Map) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWarehouseMapRepository) Update(ctx context.Context, aggregate *warehousemap.Map) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWarehouseMapRepository) Get(ctx context.Context, id kernel.UUID) (*warehousemap.Map, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousemap.Map), args.Error(1)
}

func (m *MockWarehouseMapRepository) GetActiveByWarehouse(
	ctx context.Context, warehouseID kernel.UUID,
) (*warehousemap.Map, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousemap.Map), args.Error(1)
}

func (m *MockWarehouseMapRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInventoryReader struct {
	mock.Mock
}

func (m *MockInventoryReader) FindBinWithStock(
	ctx context.Context, warehouseID kernel.UUID, productID kernel.UUID, quantity int,
) (*kernel.UUID, error) {
	args := m.Called(ctx, warehouseID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.UUID), args.Error(1)
}

func (m *MockInventoryReader) BinCapacities(
	ctx context.Context, warehouseID kernel.UUID,
) ([]services.BinCapacity, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.BinCapacity), args.Error(1)
}

type MockOperationsBroadcast struct {
	mock.Mock
}

func (m *MockOperationsBroadcast) Notify(
	ctx context.Context,
	eventName string,
	companyID kernel.UUID,
	entityID kernel.UUID,
	entityType string,
	payload any,
) error {
	args := m.Called(ctx, eventName, companyID, entityID, entityType, payload)
	return args.Error(0)
}

type MockCompletionListener struct {
	mock.Mock
}

func (m *MockCompletionListener) TaskCompleted(
	ctx context.Context, taskID kernel.UUID, agentID kernel.UUID,
) error {
	args := m.Called(ctx, taskID, agentID)
	return args.Error(0)
}

// MockUoW implements every unit of work interface in this package so each
// test can reuse it behind the factory the handler under test expects.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) WorkTaskRepository() ports.WorkTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkTaskRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

func (m *MockUoW) WarehouseMapRepository() ports.WarehouseMapRepository {
	args := m.Called()
	return args.Get(0).(ports.WarehouseMapRepository)
}

type MockWorkTaskUoWFactory struct {
	mock.Mock
}

func (m *MockWorkTaskUoWFactory) Create() commands.WorkTaskUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkTaskUoW)
}

type MockAgentUoWFactory struct {
	mock.Mock
}

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockPlanningUoWFactory struct {
	mock.Mock
}

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
