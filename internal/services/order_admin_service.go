package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/booay/pizza-shop-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderCSVHeader is the export header for order CSV files.
var OrderCSVHeader = []string{"ID", "Клиент", "Итого", "Тип доставки", "Статус", "Дата создания", "Пиццы"}

// OrderAdminService implements the bulk operations the admin surface
// dispatches over a selected set of orders. Status transitions are applied
// unconditionally: any selected order can move to any status (administrator
// override), the documented lifecycle is not a guard.
type OrderAdminService interface {
	// MarkAsExpress switches the delivery type of every selected order to express
	MarkAsExpress(ids []uint) (int64, error)
	// MarkAsShipped sets the status of every selected order to Shipped
	MarkAsShipped(ids []uint) (int64, error)
	// MarkAsDelivered sets the status of every selected order to Delivered
	MarkAsDelivered(ids []uint) (int64, error)
	// CancelOrders sets the status of every selected order to Cancelled
	CancelOrders(ids []uint) (int64, error)
	// ExportOrdersCSV streams the selected orders as UTF-8 CSV, one row per
	// selected record in selection order, items field verbatim. Returns the
	// row count.
	ExportOrdersCSV(ids []uint, w io.Writer) (int, error)
}

type orderAdminService struct {
	db *gorm.DB
}

// NewOrderAdminService creates a new instance of OrderAdminService
func NewOrderAdminService(db *gorm.DB) OrderAdminService {
	return &orderAdminService{db: db}
}

// ordersInSelectionOrder loads the selected orders preserving the order of
// ids. Any missing id aborts with ErrOrderNotFound.
func ordersInSelectionOrder(tx *gorm.DB, ids []uint) ([]models.Order, error) {
	var orders []models.Order
	if err := tx.Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	ordered := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id]
		if !ok {
			return nil, ErrOrderNotFound
		}
		ordered = append(ordered, o)
	}
	return ordered, nil
}

// bulkUpdateOrders applies a uniform column update to the selection in one
// transaction, verifying every id first so exactly the selected rows change.
func (s *orderAdminService) bulkUpdateOrders(ids []uint, column string, value string) (int64, error) {
	var updated int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := ordersInSelectionOrder(tx, ids); err != nil {
			return err
		}
		result := tx.Model(&models.Order{}).Where("id IN ?", ids).Update(column, value)
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{"column": column, "value": value, "updated": updated}).
		Info("Bulk order update applied")
	return updated, nil
}

func (s *orderAdminService) MarkAsExpress(ids []uint) (int64, error) {
	return s.bulkUpdateOrders(ids, "delivery", models.DeliveryExpress)
}

func (s *orderAdminService) MarkAsShipped(ids []uint) (int64, error) {
	return s.bulkUpdateOrders(ids, "status", models.StatusShipped)
}

func (s *orderAdminService) MarkAsDelivered(ids []uint) (int64, error) {
	return s.bulkUpdateOrders(ids, "status", models.StatusDelivered)
}

func (s *orderAdminService) CancelOrders(ids []uint) (int64, error) {
	return s.bulkUpdateOrders(ids, "status", models.StatusCancelled)
}

func (s *orderAdminService) ExportOrdersCSV(ids []uint, w io.Writer) (int, error) {
	orders, err := ordersInSelectionOrder(s.db, ids)
	if err != nil {
		return 0, err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(OrderCSVHeader); err != nil {
		return 0, err
	}
	for _, order := range orders {
		record := []string{
			strconv.FormatUint(uint64(order.ID), 10),
			order.CustomerName,
			order.Total.StringFixed(2),
			order.Delivery,
			order.Status,
			order.CreatedAt.Format(time.RFC3339),
			order.Items,
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	return len(orders), writer.Error()
}
