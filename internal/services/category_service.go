package services

import (
	"errors"

	"github.com/booay/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// ListPageSize is how many rows admin list views show per page.
const ListPageSize = 20

// Sentinel errors shared by the store services.
var (
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrPizzaNotFound    = errors.New("pizza_not_found")
	ErrOrderNotFound    = errors.New("order_not_found")
)

// paginate applies admin list pagination. page < 1 disables it.
func paginate(page int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			return db
		}
		return db.Offset((page - 1) * ListPageSize).Limit(ListPageSize)
	}
}

// CategoryService provides durable storage for categories
type CategoryService interface {
	// GetAllCategories retrieves categories ordered by name, optionally
	// filtered by a name search and paginated
	GetAllCategories(search string, page int) ([]models.Category, error)
	// GetCategoryStats retrieves the admin list view rows with read-time
	// aggregates over each category's pizzas
	GetCategoryStats(search string, page int) ([]models.CategoryStats, error)
	// GetCategoryByID retrieves a category by its ID
	GetCategoryByID(id uint) (models.Category, error)
	// CreateCategory creates a new category
	CreateCategory(category models.Category) (models.Category, error)
	// UpdateCategory updates an existing category
	UpdateCategory(category models.Category) (models.Category, error)
	// DeleteCategory deletes a category and cascades to its pizzas
	DeleteCategory(id uint) error
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) GetAllCategories(search string, page int) ([]models.Category, error) {
	var categories []models.Category
	query := s.db.Order("name ASC").Scopes(paginate(page))
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategoryStats(search string, page int) ([]models.CategoryStats, error) {
	var stats []models.CategoryStats
	query := s.db.Model(&models.Category{}).
		Select("categories.id, categories.name, " +
			"COUNT(pizzas.id) AS pizza_count, " +
			"COALESCE(SUM(pizzas.stock), 0) AS total_stock, " +
			"COALESCE(SUM(pizzas.base_price), 0) AS total_value").
		Joins("LEFT JOIN pizzas ON pizzas.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scopes(paginate(page))
	if search != "" {
		query = query.Where("categories.name LIKE ?", "%"+search+"%")
	}
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *categoryService) GetCategoryByID(id uint) (models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(category models.Category) (models.Category, error) {
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(category models.Category) (models.Category, error) {
	if _, err := s.GetCategoryByID(category.ID); err != nil {
		return models.Category{}, err
	}
	if err := s.db.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category and all of its pizzas in one
// transaction, so the cascade invariant holds on every driver.
func (s *categoryService) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Pizza{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
