package services

import (
	"errors"

	"github.com/booay/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// PizzaFilter narrows pizza list queries. Zero values mean "no filter".
type PizzaFilter struct {
	CategoryID uint
	Search     string
	InStock    *bool
	Discounted *bool
	Page       int
}

// PizzaService provides durable storage for pizzas
type PizzaService interface {
	// GetAllPizzas retrieves pizzas ordered by name with their category
	// resolved, applying the given filter
	GetAllPizzas(filter PizzaFilter) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id uint) (models.Pizza, error)
	// CreatePizza creates a new pizza; the referenced category must exist
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza updates an existing pizza; the referenced category must exist
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(id uint) error
	// AttachImage stores the image path for a pizza
	AttachImage(id uint, path string) (models.Pizza, error)
}

type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(filter PizzaFilter) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	query := s.db.Preload("Category").Order("name ASC").Scopes(paginate(filter.Page))
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			query = query.Where("stock > 0")
		} else {
			query = query.Where("stock = 0")
		}
	}
	if filter.Discounted != nil {
		if *filter.Discounted {
			query = query.Where("discount > 0")
		} else {
			query = query.Where("discount = 0")
		}
	}
	if err := query.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.Preload("Category").First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, ErrPizzaNotFound
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

// checkCategoryExists enforces the referential invariant before any write.
func (s *pizzaService) checkCategoryExists(id uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := s.checkCategoryExists(pizza.CategoryID); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return s.GetPizzaByID(pizza.ID)
}

func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	existing, err := s.GetPizzaByID(pizza.ID)
	if err != nil {
		return models.Pizza{}, err
	}
	if err := s.checkCategoryExists(pizza.CategoryID); err != nil {
		return models.Pizza{}, err
	}
	// The image is managed through AttachImage, not regular updates.
	pizza.Image = existing.Image
	pizza.Category = nil
	if err := s.db.Save(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return s.GetPizzaByID(pizza.ID)
}

func (s *pizzaService) DeletePizza(id uint) error {
	result := s.db.Delete(&models.Pizza{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPizzaNotFound
	}
	return nil
}

func (s *pizzaService) AttachImage(id uint, path string) (models.Pizza, error) {
	if _, err := s.GetPizzaByID(id); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Model(&models.Pizza{}).Where("id = ?", id).Update("image", path).Error; err != nil {
		return models.Pizza{}, err
	}
	return s.GetPizzaByID(id)
}
