package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const csvContentType = "text/csv; charset=utf-8"

// CatalogAdminController dispatches the admin surface bulk actions over
// categories and pizzas.
type CatalogAdminController interface {
	// ListCategories renders the category list view with aggregates
	ListCategories(c *gin.Context)
	// DuplicateCategories copies the selected categories
	DuplicateCategories(c *gin.Context)
	// MergeCategories merges the selected categories into the first one
	MergeCategories(c *gin.Context)
	// ExportCategories downloads the selected categories as CSV
	ExportCategories(c *gin.Context)
	// ListPizzas renders the pizza list view
	ListPizzas(c *gin.Context)
	// SetStockToZero zeroes the stock of the selected pizzas
	SetStockToZero(c *gin.Context)
	// IncreasePrices raises selected base prices by 10%
	IncreasePrices(c *gin.Context)
	// DecreasePrices lowers selected base prices by 10%
	DecreasePrices(c *gin.Context)
	// ApplyDiscount sets a 10% discount on the selected pizzas
	ApplyDiscount(c *gin.Context)
	// RemoveDiscount clears the discount on the selected pizzas
	RemoveDiscount(c *gin.Context)
	// ExportPizzas downloads the selected pizzas as CSV
	ExportPizzas(c *gin.Context)
	// UploadPizzaImage attaches an uploaded image to a pizza
	UploadPizzaImage(c *gin.Context)
}

type catalogAdminController struct {
	catalog      services.CatalogAdminService
	categories   services.CategoryService
	pizzas       services.PizzaService
	mediaRoot    string
	mediaBaseURL string
}

// NewCatalogAdminController creates a new instance of CatalogAdminController.
// mediaRoot is the directory uploaded images are written to.
func NewCatalogAdminController(
	catalog services.CatalogAdminService,
	categories services.CategoryService,
	pizzas services.PizzaService,
	mediaRoot, mediaBaseURL string,
) CatalogAdminController {
	return &catalogAdminController{
		catalog:      catalog,
		categories:   categories,
		pizzas:       pizzas,
		mediaRoot:    mediaRoot,
		mediaBaseURL: mediaBaseURL,
	}
}

func bindBulk(ctx *gin.Context) (BulkRequest, bool) {
	var req BulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return BulkRequest{}, false
	}
	return req, true
}

func sendCSV(ctx *gin.Context, filename string, body []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, csvContentType, body)
}

// ListCategories godoc
// @Summary List categories for the admin surface
// @Description Category list view with pizza_count, total_stock and total_value aggregates, 20 per page
// @Tags admin
// @Produce json
// @Param search query string false "Filter by category name"
// @Param page query int false "Page number (20 per page)"
// @Success 200 {array} models.CategoryStats
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /admin/categories [get]
func (c *catalogAdminController) ListCategories(ctx *gin.Context) {
	stats, err := c.categories.GetCategoryStats(ctx.Query("search"), queryPage(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// DuplicateCategories godoc
// @Summary Duplicate the selected categories
// @Description Creates a copy of each selected category (name + " (копия)"), without its pizzas
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected category IDs"
// @Success 200 {object} map[string]int
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/categories/actions/duplicate [post]
func (c *catalogAdminController) DuplicateCategories(ctx *gin.Context) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	created, err := c.catalog.DuplicateCategories(req.IDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"created": created})
}

// MergeCategories godoc
// @Summary Merge the selected categories
// @Description Reassigns pizzas of all-but-first selected categories to the first and deletes the rest; requires at least 2 selected
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected category IDs, target first"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/categories/actions/merge [post]
func (c *catalogAdminController) MergeCategories(ctx *gin.Context) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	target, merged, err := c.catalog.MergeCategories(req.IDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"target": target, "merged": merged})
}

// ExportCategories godoc
// @Summary Export the selected categories as CSV
// @Tags admin
// @Accept json
// @Produce text/csv
// @Param selection body BulkRequest true "Selected category IDs"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/categories/export [post]
func (c *catalogAdminController) ExportCategories(ctx *gin.Context) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if _, err := c.catalog.ExportCategoriesCSV(req.IDs, &buf); err != nil {
		respondServiceError(ctx, err)
		return
	}
	sendCSV(ctx, "categories_export.csv", buf.Bytes())
}

// ListPizzas godoc
// @Summary List pizzas for the admin surface
// @Description Pizza list view with availability and final price, 20 per page
// @Tags admin
// @Produce json
// @Param category query int false "Filter by category ID"
// @Param search query string false "Filter by name or description"
// @Param in_stock query bool false "Filter by availability"
// @Param discounted query bool false "Filter by active discount"
// @Param page query int false "Page number (20 per page)"
// @Success 200 {array} models.PizzaResponse
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas [get]
func (c *catalogAdminController) ListPizzas(ctx *gin.Context) {
	filter := pizzaQueryFilter(ctx)
	filter.Page = queryPage(ctx)
	pizzas, err := c.pizzas.GetAllPizzas(filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	rows := make([]gin.H, 0, len(pizzas))
	for _, pizza := range pizzas {
		row := gin.H{
			"pizza":        models.NewPizzaResponse(pizza, c.mediaBaseURL),
			"is_available": pizza.IsAvailable(),
			"final_price":  pizza.FinalPrice(),
		}
		rows = append(rows, row)
	}
	ctx.JSON(http.StatusOK, rows)
}

func (c *catalogAdminController) runPizzaBulk(ctx *gin.Context, run func([]uint) (int64, error), message string) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	updated, err := run(req.IDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": updated, "message": message})
}

// SetStockToZero godoc
// @Summary Zero the stock of the selected pizzas
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/actions/set-stock-zero [post]
func (c *catalogAdminController) SetStockToZero(ctx *gin.Context) {
	c.runPizzaBulk(ctx, c.catalog.SetStockToZero, "stock set to 0")
}

// IncreasePrices godoc
// @Summary Raise selected base prices by 10%
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/actions/increase-price [post]
func (c *catalogAdminController) IncreasePrices(ctx *gin.Context) {
	c.runPizzaBulk(ctx, func(ids []uint) (int64, error) {
		n, err := c.catalog.IncreasePrices(ids)
		return int64(n), err
	}, "prices increased by 10%")
}

// DecreasePrices godoc
// @Summary Lower selected base prices by 10%
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/actions/decrease-price [post]
func (c *catalogAdminController) DecreasePrices(ctx *gin.Context) {
	c.runPizzaBulk(ctx, func(ids []uint) (int64, error) {
		n, err := c.catalog.DecreasePrices(ids)
		return int64(n), err
	}, "prices decreased by 10%")
}

// ApplyDiscount godoc
// @Summary Apply a 10% discount to the selected pizzas
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/actions/apply-discount [post]
func (c *catalogAdminController) ApplyDiscount(ctx *gin.Context) {
	c.runPizzaBulk(ctx, c.catalog.ApplyDiscount, "10% discount applied")
}

// RemoveDiscount godoc
// @Summary Remove the discount from the selected pizzas
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/actions/remove-discount [post]
func (c *catalogAdminController) RemoveDiscount(ctx *gin.Context) {
	c.runPizzaBulk(ctx, c.catalog.RemoveDiscount, "discount removed")
}

// ExportPizzas godoc
// @Summary Export the selected pizzas as CSV
// @Description One row per selected pizza in selection order, final price included
// @Tags admin
// @Accept json
// @Produce text/csv
// @Param selection body BulkRequest true "Selected pizza IDs"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/export [post]
func (c *catalogAdminController) ExportPizzas(ctx *gin.Context) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if _, err := c.catalog.ExportPizzasCSV(req.IDs, &buf); err != nil {
		respondServiceError(ctx, err)
		return
	}
	sendCSV(ctx, "pizzas_export.csv", buf.Bytes())
}

// UploadPizzaImage godoc
// @Summary Attach an image to a pizza
// @Description Stores the uploaded file under the media root with a generated name
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Pizza ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/pizzas/{id}/image [post]
func (c *catalogAdminController) UploadPizzaImage(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrBadRequest, "image file is required"))
		return
	}
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	relativePath := filepath.Join("pizzas", filename)
	if err := ctx.SaveUploadedFile(file, filepath.Join(c.mediaRoot, relativePath)); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "failed to store image"))
		return
	}
	pizza, err := c.pizzas.AttachImage(id, relativePath)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewPizzaResponse(pizza, c.mediaBaseURL))
}
