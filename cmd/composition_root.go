package cmd

import (
	"log/slog"

	"warehouse/internal/adapters/out/inventoryhttp"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/redisbroadcast"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/keylock"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use case handlers. Handlers that must be
// shared across callers (the telemetry handler with its drop counter, the
// keyed mutex serializing assignment passes) are built once here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	broadcast  *redisbroadcast.RedisOperationsBroadcast
	inventory  *inventoryhttp.Client
	locks      *keylock.KeyedMutex
	logger     *slog.Logger

	reportPositionHandler *commands.ReportPositionCommandHandler
}

// NewCompositionRoot builds the object graph from the opened infrastructure
// connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	broadcast, err := redisbroadcast.NewRedisOperationsBroadcast(redisClient)
	if err != nil {
		return CompositionRoot{}, err
	}

	inventory, err := inventoryhttp.NewClient(config.InventoryBaseURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		broadcast:  broadcast,
		inventory:  inventory,
		locks:      keylock.NewKeyedMutex(),
		logger:     logger,
	}

	agentUoWFactory := FuncAgentUoWFactory(func() commands.AgentUoW {
		return root.uowFactory.Create()
	})
	root.reportPositionHandler = commands.NewReportPositionCommandHandler(agentUoWFactory)

	return root, nil
}

func (c *CompositionRoot) CreatePlanTasksCommandHandler() commands.PlanTasksCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanTasksCommandHandler(f, c.inventory, services.NewNearestAvailableBinPolicy(), c.broadcast)
}

func (c *CompositionRoot) CreateAssignTasksCommandHandler() commands.AssignTasksCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignTasksCommandHandler(f, c.locks, c.broadcast)
}

func (c *CompositionRoot) CreateStartTaskCommandHandler() commands.StartTaskCommandHandler {
	var f commands.WorkTaskUoWFactory = FuncWorkTaskUoWFactory(func() commands.WorkTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTaskCommandHandler(f, c.broadcast)
}

func (c *CompositionRoot) CreateCompleteTaskCommandHandler() commands.CompleteTaskCommandHandler {
	var f commands.WorkTaskUoWFactory = FuncWorkTaskUoWFactory(func() commands.WorkTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteTaskCommandHandler(f, c.inventory, c.broadcast)
}

func (c *CompositionRoot) CreateCancelTaskCommandHandler() commands.CancelTaskCommandHandler {
	var f commands.WorkTaskUoWFactory = FuncWorkTaskUoWFactory(func() commands.WorkTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelTaskCommandHandler(f, c.broadcast)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAgentAvailabilityCommandHandler(f)
}

// CreateReportPositionCommandHandler returns the shared telemetry handler.
// A single instance keeps the stale-report counter coherent.
func (c *CompositionRoot) CreateReportPositionCommandHandler() *commands.ReportPositionCommandHandler {
	return c.reportPositionHandler
}

func (c *CompositionRoot) CreateGetActiveTasksQueryHandler() queries.GetActiveTasksQueryHandler {
	return queries.NewGetActiveTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePrioritizeTasksQueryHandler() queries.PrioritizeTasksQueryHandler {
	return queries.NewPrioritizeTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePlanRouteQueryHandler() queries.PlanRouteQueryHandler {
	return queries.NewPlanRouteQueryHandler(c.gormDB, services.NewNearestNeighborRouter())
}

func (c *CompositionRoot) CreateGetPendingWarehousesQueryHandler() queries.GetPendingWarehousesQueryHandler {
	return queries.NewGetPendingWarehousesQueryHandler(c.gormDB)
}

// Logger returns the root logger for components that need one.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

type FuncWorkTaskUoWFactory func() commands.WorkTaskUoW

func (f FuncWorkTaskUoWFactory) Create() commands.WorkTaskUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
