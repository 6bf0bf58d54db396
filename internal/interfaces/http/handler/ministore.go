package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	storefrontapp "github.com/tinymillion/backend/internal/application/storefront"
)

// legacyListLimit is the store count of the legacy directory when no limit is given
const legacyListLimit = 8

// MiniStoreHandler serves the admin store management endpoints, the public
// store directory and the legacy compatibility routes
type MiniStoreHandler struct {
	BaseHandler
	stores *storefrontapp.StoreService
}

// NewMiniStoreHandler creates a new MiniStoreHandler
func NewMiniStoreHandler(stores *storefrontapp.StoreService) *MiniStoreHandler {
	return &MiniStoreHandler{stores: stores}
}

// CreateStoreRequest opens a store with its sub-admin
// @Description Store and sub-admin account
type CreateStoreRequest struct {
	DisplayName string `json:"displayName" example:"Asha's Picks"`
	Slug        string `json:"slug" example:"asha"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	BannerURL   string `json:"bannerUrl,omitempty"`
	Email       string `json:"email" example:"asha@example.com"`
	Password    string `json:"password" example:"s3cretpass"`
}

// UpdateStoreRequest holds optional store changes
// @Description Store profile changes
type UpdateStoreRequest struct {
	Slug        *string `json:"slug"`
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	BannerURL   *string `json:"bannerUrl"`
}

// legacyStoreResponse is the store document with its sub-admin inlined
type legacyStoreResponse struct {
	storefrontapp.StoreResponse
	SubAdmin storefrontapp.SubAdminResponse `json:"subAdmin"`
}

// Create godoc
// @ID           createMiniStore
// @Summary      Open a mini store with its sub-admin
// @Tags         ministore-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateStoreRequest true "Store"
// @Success      201 {object} DataResponse[storefrontapp.CreateStoreResult]
// @Failure      400 {object} ErrorResponse
// @Router       /api/ministores/admin/create [post]
func (h *MiniStoreHandler) Create(c *gin.Context) {
	var req CreateStoreRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.stores.CreateStore(c.Request.Context(), storefrontapp.CreateStoreRequest{
		DisplayName: req.DisplayName,
		Slug:        req.Slug,
		Bio:         req.Bio,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Mini store and sub-admin created successfully", gin.H{
		"store":    result.Store,
		"subAdmin": result.SubAdmin,
	}, "store", "subAdmin")
}

// List godoc
// @ID           listMiniStores
// @Summary      Page through every store
// @Tags         ministore-admin
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        limit query int false "Page size" default(20)
// @Param        search query string false "Name or slug"
// @Param        isActive query bool false "Active filter"
// @Success      200 {object} DataResponse[storefrontapp.StoreListResponse]
// @Router       /api/ministores/admin/all [get]
func (h *MiniStoreHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	req := storefrontapp.ListStoresRequest{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := strings.TrimSpace(c.Query("isActive")); raw != "" {
		active := raw == "true"
		req.IsActive = &active
	}

	result, err := h.stores.ListStores(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"stores": result.Stores, "pagination": result.Pagination}, "stores", "pagination")
}

// Get godoc
// @ID           getMiniStore
// @Summary      Store with its curated products
// @Tags         ministore-admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} DataResponse[storefrontapp.StoreResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/admin/{id} [get]
func (h *MiniStoreHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	store, err := h.stores.GetStore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"store": store}, "store")
}

// Update godoc
// @ID           updateMiniStore
// @Summary      Change a store's profile or slug
// @Tags         ministore-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Param        request body UpdateStoreRequest true "Changes"
// @Success      200 {object} DataResponse[storefrontapp.StoreResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/admin/{id} [put]
func (h *MiniStoreHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}
	var req UpdateStoreRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	store, err := h.stores.UpdateStore(c.Request.Context(), id, storefrontapp.UpdateStoreRequest{
		Slug:        req.Slug,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Store updated successfully", gin.H{"store": store}, "store")
}

// Delete godoc
// @ID           deleteMiniStore
// @Summary      Delete a store and its sub-admin
// @Tags         ministore-admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/admin/{id} [delete]
func (h *MiniStoreHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	if err := h.stores.DeleteStore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Store and associated user deleted successfully", nil)
}

// Toggle godoc
// @ID           toggleMiniStore
// @Summary      Flip a store between active and inactive
// @Tags         ministore-admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/admin/{id}/toggle [patch]
func (h *MiniStoreHandler) Toggle(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	active, err := h.stores.ToggleStore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Store deactivated successfully"
	if active {
		message = "Store activated successfully"
	}
	h.Success(c, message, gin.H{"isActive": active}, "isActive")
}

// Activity godoc
// @ID           getMiniStoreActivity
// @Summary      Recent products and orders of a store
// @Tags         ministore-admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} DataResponse[storefrontapp.ActivityResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/admin/{id}/activity [get]
func (h *MiniStoreHandler) Activity(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	activity, err := h.stores.Activity(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{
		"totalProducts":  activity.TotalProducts,
		"totalOrders":    activity.TotalOrders,
		"lastLogin":      activity.LastLogin,
		"recentActivity": activity.RecentActivity,
	})
}

// PublicList godoc
// @ID           listPublicMiniStores
// @Summary      Store directory
// @Description  Returns a bare array. With all set, inactive stores are included and the list is not capped.
// @Tags         ministore-public
// @Produce      json
// @Param        limit query int false "Store count" default(8)
// @Param        all query string false "Every store"
// @Success      200 {array} storefrontapp.PublicStoreSummary
// @Router       /api/ministores [get]
func (h *MiniStoreHandler) PublicList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	stores, err := h.stores.PublicList(c.Request.Context(), limit, c.Query("all") != "")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// PublicStore godoc
// @ID           getPublicMiniStore
// @Summary      Public store page
// @Description  Returns the store document with its active products. Reserved slugs answer "Not a mini store".
// @Tags         ministore-public
// @Produce      json
// @Param        slug path string true "Store slug"
// @Param        productLimit query int false "Product cap (max 60)"
// @Success      200 {object} storefrontapp.PublicStoreResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/store/{slug} [get]
func (h *MiniStoreHandler) PublicStore(c *gin.Context) {
	productLimit, _ := strconv.Atoi(c.Query("productLimit"))

	store, err := h.stores.PublicBySlug(c.Request.Context(), c.Param("slug"), productLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// LegacyCreate godoc
// @ID           createMiniStoreLegacy
// @Summary      Open a store (older payload)
// @Description  The slug is derived from the display name when missing.
// @Tags         ministore-legacy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateStoreRequest true "Store"
// @Success      201 {object} storefrontapp.StoreResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/ministores [post]
func (h *MiniStoreHandler) LegacyCreate(c *gin.Context) {
	var req CreateStoreRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.stores.CreateLegacy(c.Request.Context(), storefrontapp.LegacyCreateRequest{
		DisplayName: req.DisplayName,
		Slug:        req.Slug,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		BannerURL:   req.BannerURL,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, legacyStoreResponse{StoreResponse: result.Store, SubAdmin: result.SubAdmin})
}

// LegacyToggle godoc
// @ID           toggleMiniStoreLegacy
// @Summary      Flip a store's active flag (older route)
// @Tags         ministore-legacy
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/{id}/toggle [patch]
func (h *MiniStoreHandler) LegacyToggle(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	active, err := h.stores.ToggleStore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isActive": active})
}

// LegacyDelete godoc
// @ID           deleteMiniStoreLegacy
// @Summary      Delete a store, keeping its sub-admin account
// @Tags         ministore-legacy
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Store id"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/ministores/{id} [delete]
func (h *MiniStoreHandler) LegacyDelete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Store not found")
	if !ok {
		return
	}

	if err := h.stores.DeleteLegacy(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Deleted", nil)
}

// LegacyDirectory godoc
// @ID           getMiniStoreDirectoryLegacy
// @Summary      Store directory or a single store (older route)
// @Description  With slug, returns that active store and its products. Otherwise lists stores; all is truthy unless 0/false/no/off.
// @Tags         ministore-legacy
// @Produce      json
// @Param        slug query string false "Store slug"
// @Param        limit query int false "Store count" default(8)
// @Param        all query string false "Every store"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/mini-store [get]
func (h *MiniStoreHandler) LegacyDirectory(c *gin.Context) {
	if slug := strings.TrimSpace(c.Query("slug")); slug != "" {
		store, err := h.stores.LegacyStore(c.Request.Context(), slug)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, "Mini store fetched", gin.H{"store": store}, "store")
		return
	}

	all := truthy(c.Query("all"))
	limit := legacyListLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}
	stores, err := h.stores.PublicList(c.Request.Context(), limit, all)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Mini stores fetched", gin.H{"stores": stores}, "stores")
}

// truthy treats any non-empty value other than 0/false/no/off as set
func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
