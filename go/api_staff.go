package restaurantserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	staffhttpmapper "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/http/mapper"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// StaffAPI exposes staff administration.
type StaffAPI struct {
	service staffports.Service
}

// NewStaffAPI creates a StaffAPI backed by the provided service.
func NewStaffAPI(service staffports.Service) StaffAPI {
	return StaffAPI{service: service}
}

// Get /api/v1/staff
// Lists members, optionally filtered by q on name, email or position.
func (api *StaffAPI) ListStaff(c *gin.Context) {
	members, err := api.service.ListMembers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffhttpmapper.FromDomainMembers(members))
}

// Post /api/v1/staff
func (api *StaffAPI) CreateStaff(c *gin.Context) {
	var payload staffhttpmapper.MemberInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := staffhttpmapper.ToNewMember(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	member, err := api.service.CreateMember(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staffhttpmapper.FromDomainMember(member))
}

// Get /api/v1/staff/:staffId
func (api *StaffAPI) GetStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "staffId")
	if !ok {
		return
	}
	member, err := api.service.GetMember(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffhttpmapper.FromDomainMember(member))
}

// Put /api/v1/staff/:staffId
// Applies a partial update; omitted fields stay as they are.
func (api *StaffAPI) UpdateStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "staffId")
	if !ok {
		return
	}
	var payload staffhttpmapper.MemberPatch
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch, err := staffhttpmapper.ToDomainPatch(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	member, err := api.service.UpdateMember(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffhttpmapper.FromDomainMember(member))
}

// Delete /api/v1/staff/:staffId
// Admins cannot delete their own account.
func (api *StaffAPI) DeleteStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "staffId")
	if !ok {
		return
	}
	if caller, _ := identity.FromContext(c.Request.Context()); caller.ID == id {
		respondProblem(c, apierrors.ErrConflict.WithDetail("cannot delete the signed-in account"))
		return
	}
	if err := api.service.DeleteMember(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AuthAPI exposes sign-in and sign-out.
type AuthAPI struct {
	service staffports.Service
}

// NewAuthAPI creates an AuthAPI backed by the staff service.
func NewAuthAPI(service staffports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/v1/auth/login
func (api *AuthAPI) Login(c *gin.Context) {
	var payload staffhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffhttpmapper.FromToken(token))
}

// Post /api/v1/auth/logout
// Revokes the presented token. Logging out twice is not an error.
func (api *AuthAPI) Logout(c *gin.Context) {
	token, _ := bearerToken(c)
	if token == "" {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("bearer token required"))
		return
	}
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/v1/auth/me
func (api *AuthAPI) Me(c *gin.Context) {
	id, _ := identity.FromContext(c.Request.Context())
	c.JSON(http.StatusOK, staffhttpmapper.FromIdentity(id))
}
