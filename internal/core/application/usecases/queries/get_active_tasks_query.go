// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrGetActiveTasksQueryIsNotConstructed = errors.New(
	"GetActiveTasksQuery must be created via NewGetActiveTasksQuery constructor",
)

// GetActiveTasksQuery retrieves a company's tasks that still need work:
// everything Pending, Assigned or InProgress. Terminal and soft-deleted
// tasks are excluded.
//
// Example:
//
//	query, err := NewGetActiveTasksQuery(companyID)
//	if err != nil {
//	    return err
//	}
//	tasks, err := handler.Handle(ctx, query)
type GetActiveTasksQuery struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveTasksQuery creates a query for one company's active tasks.
func NewGetActiveTasksQuery(companyID kernel.UUID) (GetActiveTasksQuery, error) {
	query := GetActiveTasksQuery{guard: guard.NewConstructorGuard()}
	if err := query.setCompanyID(companyID); err != nil {
		return GetActiveTasksQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTasksQueryIsNotConstructed)
}

// CompanyID returns the tenant whose tasks are listed.
func (q GetActiveTasksQuery) CompanyID() kernel.UUID { return q.companyID }

func (q *GetActiveTasksQuery) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	q.companyID = id
	return nil
}

// GetActiveTasksQueryResponse is one active task in the read model.
type GetActiveTasksQueryResponse struct {
	ID              kernel.UUID
	WarehouseID     kernel.UUID
	Type            string
	Status          string
	Priority        int
	ProductID       kernel.UUID
	Quantity        int
	AssignedAgentID *kernel.UUID
	CreatedAt       time.Time
}
