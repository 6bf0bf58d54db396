package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	"github.com/tinymillion/backend/internal/domain/catalog"
)

// ProductHandler serves the shared product catalog
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// ProductIDRequest names a product in a POST body
// @Description Product reference
type ProductIDRequest struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"productId,omitempty"`
}

// Add godoc
// @ID           addProduct
// @Summary      Add a catalog product
// @Description  Accepts multipart/form-data with up to four files (image1..image4) or a JSON body with image URLs.
// @Tags         product
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Name"
// @Param        description formData string true "Description"
// @Param        price formData number true "Price"
// @Param        category formData string true "Category"
// @Param        subCategory formData string true "Sub-category"
// @Param        sizes formData string false "Sizes as a JSON array or comma list"
// @Param        bestseller formData string false "true/1/yes/on"
// @Param        image1 formData file false "Image"
// @Success      201 {object} DataResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/product/add [post]
func (h *ProductHandler) Add(c *gin.Context) {
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

	product, err := h.products.AddProduct(c.Request.Context(), catalogapp.AddProductRequest{
		Name:        form.String("name"),
		Description: form.String("description"),
		Price:       catalog.ParsePrice(form.String("price")),
		Category:    form.String("category"),
		SubCategory: form.String("subCategory"),
		Sizes:       form.Sizes("sizes", "size"),
		Images:      form.Images(),
		Bestseller:  catalog.ParseBool(form.String("bestseller")),
	}, uploads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product added", gin.H{"product": product}, "product")
}

// List godoc
// @ID           listProducts
// @Summary      List catalog products, newest first
// @Tags         product
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        limit query int false "Page size (max 100)" default(30)
// @Param        all query string false "Return every product"
// @Success      200 {object} DataResponse[catalogapp.ProductListResponse]
// @Router       /api/product/list [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.products.ListProducts(c.Request.Context(), catalogapp.ListProductsRequest{
		Page:  page,
		Limit: limit,
		All:   catalog.ParseBool(c.Query("all")),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Products fetched", gin.H{
		"products":   result.Products,
		"pagination": result.Pagination,
	}, "products", "pagination")
}

// Remove godoc
// @ID           removeProduct
// @Summary      Delete a catalog product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProductIDRequest true "Product id"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/product/remove [post]
func (h *ProductHandler) Remove(c *gin.Context) {
	var req ProductIDRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	id, err := h.products.RemoveProduct(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product removed", gin.H{"id": id})
}

// Single godoc
// @ID           getProduct
// @Summary      Fetch one product
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        request body ProductIDRequest true "Product id"
// @Success      200 {object} DataResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/product/single [post]
func (h *ProductHandler) Single(c *gin.Context) {
	var req ProductIDRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	product, err := h.products.SingleProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product fetched", gin.H{"product": product}, "product")
}

// Trending godoc
// @ID           listTrendingProducts
// @Summary      Active bestsellers, newest first
// @Tags         product
// @Produce      json
// @Success      200 {object} DataResponse[[]catalogapp.ProductResponse]
// @Router       /api/product/trending [get]
func (h *ProductHandler) Trending(c *gin.Context) {
	products, err := h.products.Trending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Trending products fetched", gin.H{"products": products}, "products")
}
