package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dimitrije/flowdesk-api/internal/middleware"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/dimitrije/flowdesk-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
)

// Every accept failure gets this exact response so callers cannot tell
// unknown, used and expired tokens apart.
const invitationDeniedMessage = "invalid or expired invitation"

type ProjectMemberHandler struct {
	memberService ProjectMemberServiceInterface
	userService   UserServiceInterface
	featureGate   FeatureGateInterface
	log           logrus.FieldLogger
}

func NewProjectMemberHandler(memberService ProjectMemberServiceInterface, userService UserServiceInterface, featureGate FeatureGateInterface, log logrus.FieldLogger) *ProjectMemberHandler {
	return &ProjectMemberHandler{
		memberService: memberService,
		userService:   userService,
		featureGate:   featureGate,
		log:           log,
	}
}

func (h *ProjectMemberHandler) List(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > services.MaxPageLimit {
			c.BadRequest(services.ErrInvalidLimit.Message)
			return
		}
		limit = n
	}

	page, err := h.memberService.List(c.Request.Context(), principal.ProjectID, c.QueryParam("cursor"), limit)
	if err != nil {
		respondError(c, err, "failed to list project members")
		return
	}

	response := dto.ProjectMemberPageResponse{
		Data: make([]dto.ProjectMemberResponse, len(page.Data)),
		Next: page.Next,
	}
	for i := range page.Data {
		response.Data[i] = toProjectMemberResponse(&page.Data[i])
	}

	_ = c.JSON(200, response)
}

func (h *ProjectMemberHandler) Add(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.AddProjectMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		c.BadRequest("email is required")
		return
	}
	if _, err := services.NormalizeEmail(req.Email); err != nil {
		c.BadRequest("invalid email")
		return
	}
	role := models.MemberRole(req.Role)
	if !role.Valid() {
		c.BadRequest("role must be one of ADMIN, EDITOR, OPERATOR, VIEWER")
		return
	}
	status := models.MemberStatus(req.Status)
	if !status.Valid() {
		c.BadRequest("status must be PENDING or ACTIVE")
		return
	}

	ctx := c.Request.Context()

	if status == models.MemberStatusActive {
		if err := h.featureGate.AssertEmbeddingEnabled(ctx, principal); err != nil {
			respondError(c, err, "failed to check platform")
			return
		}
	}

	member, err := h.memberService.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:      req.Email,
		Role:       role,
		Status:     status,
		ProjectID:  principal.ProjectID,
		PlatformID: principal.PlatformID,
	})
	if err != nil {
		if errors.Is(err, services.ErrDelivery) {
			h.log.WithError(err).WithField("project_id", principal.ProjectID).Error("invitation delivery failed")
		}
		respondError(c, err, "failed to add project member")
		return
	}

	_ = c.JSON(201, toProjectMemberResponse(member))
}

// Accept is public. The token is the only credential.
func (h *ProjectMemberHandler) Accept(c *drift.Context) {
	var req dto.AcceptInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := c.Request.Context()

	member, err := h.memberService.Accept(ctx, req.Token)
	if err != nil {
		h.log.WithError(err).Warn("invitation accept rejected")
		c.Unauthorized(invitationDeniedMessage)
		return
	}

	registered := false
	user, err := h.userService.GetByPlatformAndEmail(ctx, member.PlatformID, member.Email)
	switch {
	case err == nil:
		registered = user != nil
	case errors.Is(err, services.ErrUserNotFound):
	default:
		h.log.WithError(err).WithField("member_id", member.ID).Error("registered user lookup failed")
	}

	_ = c.JSON(200, dto.AcceptInvitationResponse{Registered: registered})
}

func (h *ProjectMemberHandler) Delete(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), principal.ProjectID, memberID); err != nil {
		respondError(c, err, "failed to delete project member")
		return
	}

	noContent(c)
}

func (h *ProjectMemberHandler) DeleteByUserExternalID(c *drift.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Unauthorized("not authenticated")
		return
	}

	if _, err := principal.RequirePlatform(); err != nil {
		respondError(c, err, "failed to delete project member")
		return
	}

	externalID := c.QueryParam("userExternalId")
	if externalID == "" {
		c.BadRequest("userExternalId is required")
		return
	}

	ctx := c.Request.Context()

	if err := h.featureGate.AssertPlatformOwner(ctx, principal); err != nil {
		respondError(c, err, "failed to check platform")
		return
	}

	err := h.memberService.DeleteByUserExternalID(ctx, services.DeleteByExternalIDParams{
		UserExternalID: externalID,
		PlatformID:     principal.PlatformID,
		ProjectID:      principal.ProjectID,
	})
	if err != nil {
		respondError(c, err, "failed to delete project member")
		return
	}

	noContent(c)
}

func toProjectMemberResponse(m *models.ProjectMember) dto.ProjectMemberResponse {
	return dto.ProjectMemberResponse{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		PlatformID: m.PlatformID,
		Email:      m.Email,
		Role:       string(m.Role),
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
