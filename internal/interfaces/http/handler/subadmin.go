package handler

import (
	"github.com/gin-gonic/gin"
	storefrontapp "github.com/tinymillion/backend/internal/application/storefront"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/storefront"
)

// SubAdminHandler serves the endpoints a sub-admin uses to run their own store
type SubAdminHandler struct {
	BaseHandler
	subadmins *storefrontapp.SubAdminService
}

// NewSubAdminHandler creates a new SubAdminHandler
func NewSubAdminHandler(subadmins *storefrontapp.SubAdminService) *SubAdminHandler {
	return &SubAdminHandler{subadmins: subadmins}
}

// StoreProfileRequest holds optional profile changes of the caller's store
// @Description Store profile changes
type StoreProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	BannerURL   *string `json:"bannerUrl"`
}

// Login godoc
// @ID           loginSubAdmin
// @Summary      Sub-admin login
// @Tags         subadmin
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Credentials"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/subadmin/auth/login [post]
func (h *SubAdminHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.subadmins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Login successful", gin.H{"token": result.Token, "user": result.User}, "token", "user")
}

// MyStore godoc
// @ID           getMyStore
// @Summary      The caller's store with its products
// @Tags         subadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DataResponse[storefrontapp.StoreResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/subadmin/mystore [get]
func (h *SubAdminHandler) MyStore(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}

	store, err := h.subadmins.MyStore(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Store fetched", gin.H{"store": store}, "store")
}

// UpdateMyStore godoc
// @ID           updateMyStore
// @Summary      Change the caller's store profile
// @Tags         subadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StoreProfileRequest true "Changes"
// @Success      200 {object} DataResponse[storefrontapp.StoreResponse]
// @Router       /api/subadmin/mystore [put]
func (h *SubAdminHandler) UpdateMyStore(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}
	var req StoreProfileRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	store, err := h.subadmins.UpdateMyStore(c.Request.Context(), storeID, storefront.ProfilePatch{
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

// MyProducts godoc
// @ID           listMyProducts
// @Summary      Products curated by the caller's store
// @Tags         subadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Router       /api/subadmin/mystore/products [get]
func (h *SubAdminHandler) MyProducts(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}

	products, err := h.subadmins.MyProducts(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Products fetched", gin.H{"products": products}, "products")
}

// AddProduct godoc
// @ID           addProductToMyStore
// @Summary      Curate an existing catalog product
// @Tags         subadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProductIDRequest true "Product id"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/subadmin/mystore/products [post]
func (h *SubAdminHandler) AddProduct(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}
	var req ProductIDRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	store, err := h.subadmins.AddProductToStore(c.Request.Context(), storeID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product added to store successfully", gin.H{"store": store})
}

// RemoveProduct godoc
// @ID           removeProductFromMyStore
// @Summary      Drop a product from the caller's store
// @Description  The catalog product is kept.
// @Tags         subadmin
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "Product id"
// @Success      200 {object} SuccessResponse
// @Router       /api/ministores/subadmin/mystore/products/{productId} [delete]
func (h *SubAdminHandler) RemoveProduct(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}

	store, err := h.subadmins.RemoveProductFromStore(c.Request.Context(), storeID, c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product removed from store successfully", gin.H{"store": store})
}

// CreateProduct godoc
// @ID           createMyStoreProduct
// @Summary      Create a catalog product inside the caller's store
// @Tags         subadmin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Name"
// @Param        description formData string true "Description"
// @Param        price formData number true "Price"
// @Param        category formData string true "Category"
// @Param        subCategory formData string true "Sub-category"
// @Param        sizes formData string false "Sizes"
// @Param        stock formData int false "Stock"
// @Param        image1 formData file false "Image"
// @Success      201 {object} DataResponse[storefrontapp.StoreProductResult]
// @Failure      400 {object} ErrorResponse
// @Router       /api/subadmin/mystore/products/create [post]
func (h *SubAdminHandler) CreateProduct(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}
	form, err := readProductForm(c)
	if err != nil {
		h.invalidBody(c, err)
		return
	}
	uploads, closeUploads, err := form.Uploads()
	if err != nil {
		h.invalidBody(c, err)
		return
	}
	defer closeUploads()

	result, err := h.subadmins.CreateProduct(c.Request.Context(), storeID, storefrontapp.CreateStoreProductRequest{
		Name:        form.String("name"),
		Description: form.String("description"),
		Price:       catalog.ParsePrice(form.String("price")),
		Category:    form.String("category"),
		SubCategory: form.String("subCategory"),
		Sizes:       form.Sizes("sizes"),
		Images:      form.Images(),
		Stock:       form.Int("stock"),
		Bestseller:  catalog.ToBool(form.String("bestseller")),
	}, uploads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product created and added to store", gin.H{
		"product": result.Product,
		"store":   result.Store,
	}, "product", "store")
}

// UpdateProduct godoc
// @ID           updateMyStoreProduct
// @Summary      Edit a product of the caller's store
// @Description  Only fields that are sent change. Uploaded images are appended.
// @Tags         subadmin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "Product id"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/subadmin/mystore/products/{productId} [put]
func (h *SubAdminHandler) UpdateProduct(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}
	form, err := readProductForm(c)
	if err != nil {
		h.invalidBody(c, err)
		return
	}
	uploads, closeUploads, err := form.Uploads()
	if err != nil {
		h.invalidBody(c, err)
		return
	}
	defer closeUploads()

	product, err := h.subadmins.UpdateMyProduct(c.Request.Context(), storeID, c.Param("productId"), productPatch(form), uploads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product updated", gin.H{"product": product}, "product")
}

// DeleteProduct godoc
// @ID           deleteMyStoreProduct
// @Summary      Remove a product from the caller's store
// @Description  The catalog product is deleted too when no other store curates it.
// @Tags         subadmin
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "Product id"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/subadmin/mystore/products/{productId} [delete]
func (h *SubAdminHandler) DeleteProduct(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}

	deleted, err := h.subadmins.DeleteMyProduct(c.Request.Context(), storeID, c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if deleted {
		h.Success(c, "Product removed from store and deleted from catalog", nil)
		return
	}
	h.Success(c, "Product removed from your store", nil)
}

// MyOrders godoc
// @ID           listMyStoreOrders
// @Summary      Orders containing the caller's products
// @Tags         subadmin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Order status"
// @Param        search query string false "Order id, customer name or email"
// @Success      200 {object} DataResponse[storefrontapp.StoreOrdersResponse]
// @Router       /api/subadmin/mystore/orders [get]
func (h *SubAdminHandler) MyOrders(c *gin.Context) {
	storeID, ok := h.currentStoreID(c)
	if !ok {
		return
	}

	result, err := h.subadmins.MyOrders(c.Request.Context(), storeID, storefrontapp.MyOrdersRequest{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Orders fetched", gin.H{"count": result.Count, "orders": result.Orders}, "count", "orders")
}

// productPatch collects the editable fields that were sent
func productPatch(form *productForm) catalog.ProductPatch {
	var patch catalog.ProductPatch
	if form.Has("name") {
		v := form.String("name")
		patch.Name = &v
	}
	if form.Has("description") {
		v := form.String("description")
		patch.Description = &v
	}
	if form.Has("price") {
		v := catalog.ParsePrice(form.String("price"))
		patch.Price = &v
	}
	if form.Has("images") || form.Has("image") {
		v := form.Images()
		patch.Images = &v
	}
	if form.Has("category") {
		v := form.String("category")
		patch.Category = &v
	}
	if form.Has("subCategory") {
		v := form.String("subCategory")
		patch.SubCategory = &v
	}
	if form.Has("sizes") {
		v := form.Sizes("sizes")
		patch.Sizes = &v
	}
	if form.Has("stock") {
		v := form.Int("stock")
		patch.Stock = &v
	}
	if form.Has("bestseller") {
		v := catalog.ToBool(form.String("bestseller"))
		patch.Bestseller = &v
	}
	if form.Has("isActive") {
		v := catalog.ToBool(form.String("isActive"))
		patch.IsActive = &v
	}
	return patch
}
