package handlers

import (
	"github.com/dimitrije/flowdesk-api/internal/middleware"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/dimitrije/flowdesk-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AppConnectionHandler struct {
	connectionService AppConnectionServiceInterface
}

func NewAppConnectionHandler(connectionService AppConnectionServiceInterface) *AppConnectionHandler {
	return &AppConnectionHandler{connectionService: connectionService}
}

func (h *AppConnectionHandler) Upsert(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpsertAppConnectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.ProjectID != nil && *req.ProjectID != principal.ProjectID {
		c.Forbidden("project does not match the current session")
		return
	}

	conn, err := h.connectionService.Upsert(c.Request.Context(), services.UpsertConnectionParams{
		ProjectID:  principal.ProjectID,
		AppName:    req.AppName,
		Name:       req.Name,
		Type:       models.AppConnectionType(req.Value.Type),
		SecretText: req.Value.SecretText,
	})
	if err != nil {
		respondError(c, err, "failed to save connection")
		return
	}

	_ = c.JSON(201, toAppConnectionResponse(conn))
}

func (h *AppConnectionHandler) List(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	conns, err := h.connectionService.List(c.Request.Context(), principal.ProjectID)
	if err != nil {
		respondError(c, err, "failed to list connections")
		return
	}

	response := dto.AppConnectionListResponse{Data: make([]dto.AppConnectionResponse, len(conns))}
	for i := range conns {
		response.Data[i] = toAppConnectionResponse(&conns[i])
	}

	_ = c.JSON(200, response)
}

func toAppConnectionResponse(c *models.AppConnection) dto.AppConnectionResponse {
	return dto.AppConnectionResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		AppName:   c.AppName,
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
