package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/skch/foodcourt/internal/models"
)

var (
	ErrValidation  = errors.New("validation")  // 400
	ErrNotFound    = errors.New("not found")   // 404
	ErrConflict    = errors.New("conflict")    // 409
	ErrUnavailable = errors.New("unavailable") // 400, names the menu item id
)

const guestName = "Guest"

type Service struct {
	DB *gorm.DB
}

type OrderLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type PlaceOrderRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Lines   []OrderLine `json:"items"`
}

// EnsureCustomer upserts by phone. A repeat call only touches the address,
// and only when the new one is non-empty and different.
func (s *Service) EnsureCustomer(tx *gorm.DB, name, phone, address string) (*models.Customer, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone required", ErrValidation)
	}

	var customer models.Customer
	err := tx.Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		if address != "" && address != customer.Address {
			customer.Address = address
			if err := tx.Save(&customer).Error; err != nil {
				return nil, err
			}
		}
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = guestName
	}
	customer = models.Customer{Name: name, Phone: phone, Address: address}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateOrder assembles a PLACED order for the customer. Every line freezes
// the menu item's current price as its unit price; the total is the exact
// decimal sum of quantity x unit price, set once.
func (s *Service) CreateOrder(tx *gorm.DB, customer *models.Customer, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0 for menu item %d", ErrValidation, l.MenuItemID)
		}
	}

	order := models.Order{
		CustomerID:  customer.ID,
		Status:      models.StatusPlaced,
		TotalAmount: decimal.Zero,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		var item models.MenuItem
		if err := tx.First(&item, l.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d not found or unavailable", ErrUnavailable, l.MenuItemID)
			}
			return nil, err
		}
		if !item.Available {
			return nil, fmt.Errorf("%w: menu item %d not found or unavailable", ErrUnavailable, l.MenuItemID)
		}

		oi := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: item.ID,
			Quantity:   uint(l.Quantity),
			UnitPrice:  item.Price,
		}
		if err := tx.Create(&oi).Error; err != nil {
			return nil, err
		}
		order.Items = append(order.Items, oi)
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	order.TotalAmount = total
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("total_amount", total).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceOrder runs ensure-customer and order assembly in a single transaction:
// either both rows land or neither does.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	var order *models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.EnsureCustomer(tx, req.Name, req.Phone, req.Address)
		if err != nil {
			return err
		}
		order, err = s.CreateOrder(tx, customer, req.Lines)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus overwrites the order status. The new value must belong to the
// defined status set; transitions between members are not checked.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return order, nil
}
