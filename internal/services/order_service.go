package services

import (
	"errors"

	"github.com/booay/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// OrderFilter narrows order list queries. Zero values mean "no filter".
type OrderFilter struct {
	Status   string
	Delivery string
	Search   string
	Page     int
}

// OrderService provides durable storage for orders
type OrderService interface {
	// GetAllOrders retrieves orders, newest first, applying the given filter
	GetAllOrders(filter OrderFilter) ([]models.Order, error)
	// GetOrderByID retrieves an order by its ID
	GetOrderByID(id uint) (models.Order, error)
	// CreateOrder creates a new order; created_at is set by the store
	CreateOrder(order models.Order) (models.Order, error)
	// UpdateOrder updates an existing order, leaving created_at untouched
	UpdateOrder(order models.Order) (models.Order, error)
	// DeleteOrder deletes an order by its ID
	DeleteOrder(id uint) error
}

type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) GetAllOrders(filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Order("created_at DESC").Scopes(paginate(filter.Page))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Delivery != "" {
		query = query.Where("delivery = ?", filter.Delivery)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_name LIKE ? OR address LIKE ? OR comment LIKE ?",
			pattern, pattern, pattern)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) CreateOrder(order models.Order) (models.Order, error) {
	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateOrder writes every mutable column. created_at is immutable after
// creation, so it is never part of the update set.
func (s *orderService) UpdateOrder(order models.Order) (models.Order, error) {
	if _, err := s.GetOrderByID(order.ID); err != nil {
		return models.Order{}, err
	}
	err := s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("customer_name", "address", "delivery", "comment", "total", "items", "status").
		Updates(&order).Error
	if err != nil {
		return models.Order{}, err
	}
	return s.GetOrderByID(order.ID)
}

func (s *orderService) DeleteOrder(id uint) error {
	result := s.db.Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
