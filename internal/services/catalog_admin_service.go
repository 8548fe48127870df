package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrMergePrecondition is returned when a merge selects fewer than two
// categories. Zero records are mutated in that case.
var ErrMergePrecondition = errors.New("select at least 2 categories to merge")

// DuplicateSuffix is appended to the name of every duplicated category.
const DuplicateSuffix = " (копия)"

// PizzaCSVHeader is the export header for pizza CSV files.
var PizzaCSVHeader = []string{"ID", "Название", "Категория", "Базовая цена", "Запас", "Скидка", "Итоговая цена"}

// CategoryCSVHeader is the export header for category CSV files.
var CategoryCSVHeader = []string{"ID", "Название", "Количество пицц", "Общий запас", "Общая стоимость"}

var (
	priceIncreaseFactor = decimal.NewFromFloat(1.10)
	priceDecreaseFactor = decimal.NewFromFloat(0.90)
)

// discountStep is the fixed percentage applied by the discount bulk action.
const discountStep = 10

// CatalogAdminService implements the bulk operations the admin surface
// dispatches over a selected set of categories or pizzas. Every mutating
// operation runs in a single transaction: all selected records are updated
// or none are.
type CatalogAdminService interface {
	// DuplicateCategories creates a copy of each selected category under a
	// new identity, without duplicating its pizzas. Returns how many copies
	// were created.
	DuplicateCategories(ids []uint) (int, error)
	// MergeCategories reassigns the pizzas of all-but-first selected
	// categories to the first one and deletes the emptied categories.
	// Returns the surviving category and how many were merged into it.
	MergeCategories(ids []uint) (models.Category, int, error)
	// SetStockToZero zeroes the stock of every selected pizza
	SetStockToZero(ids []uint) (int64, error)
	// IncreasePrices scales each selected base price by 1.10
	IncreasePrices(ids []uint) (int, error)
	// DecreasePrices scales each selected base price by 0.90
	DecreasePrices(ids []uint) (int, error)
	// ApplyDiscount sets a fixed 10% discount on every selected pizza
	ApplyDiscount(ids []uint) (int64, error)
	// RemoveDiscount clears the discount on every selected pizza
	RemoveDiscount(ids []uint) (int64, error)
	// ExportPizzasCSV streams the selected pizzas as UTF-8 CSV, one row per
	// selected record in selection order. Returns the row count.
	ExportPizzasCSV(ids []uint, w io.Writer) (int, error)
	// ExportCategoriesCSV streams the selected categories with their
	// read-time aggregates as UTF-8 CSV. Returns the row count.
	ExportCategoriesCSV(ids []uint, w io.Writer) (int, error)
}

type catalogAdminService struct {
	db *gorm.DB
}

// NewCatalogAdminService creates a new instance of CatalogAdminService
func NewCatalogAdminService(db *gorm.DB) CatalogAdminService {
	return &catalogAdminService{db: db}
}

// categoriesInSelectionOrder loads the selected categories preserving the
// order of ids. Any missing id aborts with ErrCategoryNotFound.
func categoriesInSelectionOrder(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	ordered := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, ErrCategoryNotFound
		}
		ordered = append(ordered, c)
	}
	return ordered, nil
}

// pizzasInSelectionOrder loads the selected pizzas with their categories,
// preserving the order of ids. Any missing id aborts with ErrPizzaNotFound.
func pizzasInSelectionOrder(tx *gorm.DB, ids []uint) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := tx.Preload("Category").Where("id IN ?", ids).Find(&pizzas).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Pizza, len(pizzas))
	for _, p := range pizzas {
		byID[p.ID] = p
	}
	ordered := make([]models.Pizza, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, ErrPizzaNotFound
		}
		ordered = append(ordered, p)
	}
	return ordered, nil
}

func (s *catalogAdminService) DuplicateCategories(ids []uint) (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories, err := categoriesInSelectionOrder(tx, ids)
		if err != nil {
			return err
		}
		for _, category := range categories {
			duplicate := models.Category{Name: category.Name + DuplicateSuffix}
			if err := tx.Create(&duplicate).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithField("created", created).Info("Duplicated categories")
	return created, nil
}

// dedupeIDs removes repeated ids keeping the first occurrence in place.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func (s *catalogAdminService) MergeCategories(ids []uint) (models.Category, int, error) {
	// A repeated id must not count towards the precondition: a selection of
	// the same category twice would otherwise merge the target into itself
	// and delete it.
	ids = dedupeIDs(ids)
	if len(ids) < 2 {
		return models.Category{}, 0, ErrMergePrecondition
	}
	var target models.Category
	merged := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories, err := categoriesInSelectionOrder(tx, ids)
		if err != nil {
			return err
		}
		target = categories[0]
		otherIDs := make([]uint, 0, len(categories)-1)
		for _, c := range categories[1:] {
			otherIDs = append(otherIDs, c.ID)
		}
		if err := tx.Model(&models.Pizza{}).
			Where("category_id IN ?", otherIDs).
			Update("category_id", target.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", otherIDs).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		merged = len(otherIDs)
		return nil
	})
	if err != nil {
		return models.Category{}, 0, err
	}
	log.WithFields(log.Fields{"target": target.Name, "merged": merged}).Info("Merged categories")
	return target, merged, nil
}

// bulkUpdatePizzas applies a uniform column update to the selection,
// verifying every id first so the action mutates all records or none.
func (s *catalogAdminService) bulkUpdatePizzas(ids []uint, values map[string]interface{}) (int64, error) {
	var updated int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := pizzasInSelectionOrder(tx, ids); err != nil {
			return err
		}
		result := tx.Model(&models.Pizza{}).Where("id IN ?", ids).Updates(values)
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *catalogAdminService) SetStockToZero(ids []uint) (int64, error) {
	return s.bulkUpdatePizzas(ids, map[string]interface{}{"stock": 0})
}

func (s *catalogAdminService) ApplyDiscount(ids []uint) (int64, error) {
	return s.bulkUpdatePizzas(ids, map[string]interface{}{"discount": discountStep})
}

func (s *catalogAdminService) RemoveDiscount(ids []uint) (int64, error) {
	return s.bulkUpdatePizzas(ids, map[string]interface{}{"discount": 0})
}

// scalePrices multiplies each selected base price by factor, rounding to the
// declared storage precision. Note increase followed by decrease does not
// restore the original price (1.10 * 0.90 != 1.0).
func (s *catalogAdminService) scalePrices(ids []uint, factor decimal.Decimal) (int, error) {
	scaled := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pizzas, err := pizzasInSelectionOrder(tx, ids)
		if err != nil {
			return err
		}
		for _, pizza := range pizzas {
			newPrice := pizza.BasePrice.Mul(factor).Round(2)
			if err := tx.Model(&models.Pizza{}).
				Where("id = ?", pizza.ID).
				Update("base_price", newPrice).Error; err != nil {
				return err
			}
			scaled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return scaled, nil
}

func (s *catalogAdminService) IncreasePrices(ids []uint) (int, error) {
	return s.scalePrices(ids, priceIncreaseFactor)
}

func (s *catalogAdminService) DecreasePrices(ids []uint) (int, error) {
	return s.scalePrices(ids, priceDecreaseFactor)
}

func (s *catalogAdminService) ExportPizzasCSV(ids []uint, w io.Writer) (int, error) {
	pizzas, err := pizzasInSelectionOrder(s.db, ids)
	if err != nil {
		return 0, err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(PizzaCSVHeader); err != nil {
		return 0, err
	}
	for _, pizza := range pizzas {
		categoryName := ""
		if pizza.Category != nil {
			categoryName = pizza.Category.Name
		}
		record := []string{
			strconv.FormatUint(uint64(pizza.ID), 10),
			pizza.Name,
			categoryName,
			pizza.BasePrice.StringFixed(2),
			strconv.Itoa(pizza.Stock),
			strconv.Itoa(pizza.Discount),
			pizza.FinalPrice().StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	return len(pizzas), writer.Error()
}

func (s *catalogAdminService) ExportCategoriesCSV(ids []uint, w io.Writer) (int, error) {
	categories, err := categoriesInSelectionOrder(s.db, ids)
	if err != nil {
		return 0, err
	}
	var stats []models.CategoryStats
	err = s.db.Model(&models.Category{}).
		Select("categories.id, categories.name, " +
			"COUNT(pizzas.id) AS pizza_count, " +
			"COALESCE(SUM(pizzas.stock), 0) AS total_stock, " +
			"COALESCE(SUM(pizzas.base_price), 0) AS total_value").
		Joins("LEFT JOIN pizzas ON pizzas.category_id = categories.id").
		Where("categories.id IN ?", ids).
		Group("categories.id, categories.name").
		Scan(&stats).Error
	if err != nil {
		return 0, err
	}
	byID := make(map[uint]models.CategoryStats, len(stats))
	for _, row := range stats {
		byID[row.ID] = row
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(CategoryCSVHeader); err != nil {
		return 0, err
	}
	for _, category := range categories {
		row := byID[category.ID]
		record := []string{
			strconv.FormatUint(uint64(category.ID), 10),
			category.Name,
			strconv.FormatInt(row.PizzaCount, 10),
			strconv.FormatInt(row.TotalStock, 10),
			row.TotalValue.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	return len(categories), writer.Error()
}
