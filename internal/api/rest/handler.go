package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-infusion/internal/api/middleware"
	"github.com/feral-file/ff-infusion/internal/api/shared/dto"
	"github.com/feral-file/ff-infusion/internal/api/shared/executor"
	"github.com/feral-file/ff-infusion/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// CreateRealm creates a realm owned by the caller's chosen admins
	// POST /api/v1/realms
	CreateRealm(c *gin.Context)

	// ModifyRealm adds and removes members of the realm's sets
	// PATCH /api/v1/realms/:id
	ModifyRealm(c *gin.Context)

	// GetRealm returns the realm configuration
	// GET /api/v1/realms/:id
	GetRealm(c *gin.Context)

	// ListMembers lists a membership set: admin, infuser, collection or proxy
	// GET /api/v1/realms/:id/members/:role
	ListMembers(c *gin.Context)

	// GET /api/v1/realms/:id/admins/:address
	IsAdmin(c *gin.Context)

	// GET /api/v1/realms/:id/infusers/:address
	IsInfuser(c *gin.Context)

	// GET /api/v1/realms/:id/collections/:address
	IsCollection(c *gin.Context)

	// GET /api/v1/realms/:id/proxies/:address
	IsInfusionProxy(c *gin.Context)

	// PUT /api/v1/realms/:id/proxies/:address
	AllowInfusionProxy(c *gin.Context)

	// DELETE /api/v1/realms/:id/proxies/:address
	DenyInfusionProxy(c *gin.Context)

	// GetTokenData returns the balance and the amount claimable now
	// GET /api/v1/realms/:id/tokens/:collection/:token_id
	GetTokenData(c *gin.Context)

	// POST /api/v1/infusions
	Infuse(c *gin.Context)

	// POST /api/v1/infusions/batch
	BatchInfuse(c *gin.Context)

	// POST /api/v1/claims
	Claim(c *gin.Context)

	// POST /api/v1/claims/batch
	BatchClaim(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

func (h *handler) CreateRealm(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateRealmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CreateRealm(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create realm")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) ModifyRealm(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}

	var req dto.ModifyRealmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.executor.ModifyRealm(c.Request.Context(), caller, realmID, req); err != nil {
		respondError(c, err, "Failed to modify realm")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) GetRealm(c *gin.Context) {
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}

	response, err := h.executor.GetRealm(c.Request.Context(), realmID)
	if err != nil {
		respondError(c, err, "Failed to get realm")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ListMembers(c *gin.Context) {
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}
	role := domain.Role(c.Param("role"))
	if !role.Valid() {
		respondBadRequest(c, "Invalid role", string(role))
		return
	}

	response, err := h.executor.ListMembers(c.Request.Context(), realmID, role)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) IsAdmin(c *gin.Context) {
	h.membership(c, domain.RoleAdmin)
}

func (h *handler) IsInfuser(c *gin.Context) {
	h.membership(c, domain.RoleInfuser)
}

func (h *handler) IsCollection(c *gin.Context) {
	h.membership(c, domain.RoleCollection)
}

func (h *handler) IsInfusionProxy(c *gin.Context) {
	h.membership(c, domain.RoleProxy)
}

func (h *handler) membership(c *gin.Context, role domain.Role) {
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}
	address, ok := addressParam(c, "address")
	if !ok {
		return
	}

	response, err := h.executor.GetMembership(c.Request.Context(), realmID, role, address)
	if err != nil {
		respondError(c, err, "Failed to check membership")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) AllowInfusionProxy(c *gin.Context) {
	h.setProxy(c, true)
}

func (h *handler) DenyInfusionProxy(c *gin.Context) {
	h.setProxy(c, false)
}

func (h *handler) setProxy(c *gin.Context, allowed bool) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}
	proxy, ok := addressParam(c, "address")
	if !ok {
		return
	}

	if err := h.executor.SetInfusionProxy(c.Request.Context(), caller, realmID, proxy, allowed); err != nil {
		respondError(c, err, "Failed to update infusion proxy")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) GetTokenData(c *gin.Context) {
	realmID, ok := realmIDParam(c)
	if !ok {
		return
	}
	collection, ok := addressParam(c, "collection")
	if !ok {
		return
	}
	tokenID, err := domain.ParseTokenID(c.Param("token_id"))
	if err != nil {
		respondBadRequest(c, "Invalid token id", err.Error())
		return
	}

	response, err := h.executor.GetTokenData(c.Request.Context(), domain.NewTokenKey(realmID, collection, tokenID))
	if err != nil {
		respondError(c, err, "Failed to get token data")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) Infuse(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.InfuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.Infuse(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to infuse")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) BatchInfuse(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.BatchInfuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.BatchInfuse(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to batch infuse")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) Claim(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.Claim(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to claim")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) BatchClaim(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.BatchClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.BatchClaim(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to batch claim")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-infusion-api",
	})
}

// caller returns the authenticated caller, responding 401 when there is none
func (h *handler) caller(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return common.Address{}, false
	}
	return caller, true
}

func realmIDParam(c *gin.Context) (uint64, bool) {
	realmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || realmID == 0 {
		respondBadRequest(c, "Invalid realm id", c.Param("id"))
		return 0, false
	}
	return realmID, true
}

func addressParam(c *gin.Context, name string) (common.Address, bool) {
	address, err := domain.ParseAddress(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", name), err.Error())
		return common.Address{}, false
	}
	return address, true
}
