package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordErrorResponse(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, errorResponse(ctx, err))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func Test_ErrorResponse_ObjectNotFound_Returns404(t *testing.T) {
	code, body := recordErrorResponse(t, errs.NewObjectNotFoundError("task", "abc"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Contains(t, body.Message, "task")
}

func Test_ErrorResponse_ConcurrencyConflict_Returns409(t *testing.T) {
	code, body := recordErrorResponse(t, fmt.Errorf("update task: %w", ports.ErrConcurrencyConflict))

	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body.Message, "retry")
}

func Test_ErrorResponse_InvalidTransition_Returns409WithDetail(t *testing.T) {
	err := worktask.NewInvalidTransitionError(worktask.Completed, worktask.InProgress)

	code, body := recordErrorResponse(t, err)

	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body.Message, "Completed")
	assert.Contains(t, body.Message, "InProgress")
}

func Test_ErrorResponse_AgentMismatch_Returns409(t *testing.T) {
	code, body := recordErrorResponse(t, commands.ErrAgentMismatch)

	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body.Message, "not assigned to the reporting agent")
}

func Test_ErrorResponse_ValidationFailure_Returns400(t *testing.T) {
	code, _ := recordErrorResponse(t, errs.NewValueIsRequiredError("priority"))

	assert.Equal(t, http.StatusBadRequest, code)
}

func Test_ErrorResponse_UnknownError_Returns500(t *testing.T) {
	code, body := recordErrorResponse(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body.Message)
}
