package ledger

import (
	"context"
	"errors"
	"strings"

	"ledger-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CurrencyInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	IsActive *bool  `json:"is_active"`
}

type ProductInput struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Barcode       *string         `json:"barcode" validate:"omitempty,max=255"`
	Description   string          `json:"description"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	CurrencyID    uint            `json:"currency_id" validate:"required"`
	OpeningStock  int64           `json:"opening_stock" validate:"gte=0"`
	MinStockAlert *int64          `json:"min_stock_alert" validate:"omitempty,gte=0"`
	IsActive      *bool           `json:"is_active"`
}

type ProductFilter struct {
	Search     string
	LowStock   bool
	OutOfStock bool
	ActiveOnly bool
}

type PartyInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"max=50"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	Address  string `json:"address" validate:"max=255"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"is_active"`
}

// referenced counts rows in model matching where, tombstoned rows included.
func referenced(tx *gorm.DB, model any, where string, id uint) (bool, error) {
	var n int64
	if err := tx.Unscoped().Model(model).Where(where, id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ---- currencies ----

func (s *Service) ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error) {
	dbq := s.query(ctx).Model(&models.Currency{})
	if activeOnly {
		dbq = dbq.Where("is_active = ?", true)
	}
	var out []models.Currency
	if err := dbq.Order("name asc").Find(&out).Error; err != nil {
		return nil, classify("list currencies", err)
	}
	return out, nil
}

func (s *Service) GetCurrency(ctx context.Context, id uint) (*models.Currency, error) {
	var c models.Currency
	if err := s.query(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("currency", id)
		}
		return nil, classify("get currency", err)
	}
	return &c, nil
}

func (s *Service) CreateCurrency(ctx context.Context, in CurrencyInput) (*models.Currency, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := models.Currency{Name: in.Name, IsActive: active}
	err := s.transaction(ctx, "create currency", func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		// Create drops zero values for columns with a default and reads the
		// default back, so the requested flag is written from the local.
		if err := tx.Model(&c).Update("is_active", active).Error; err != nil {
			return err
		}
		c.IsActive = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) UpdateCurrency(ctx context.Context, id uint, in CurrencyInput) (*models.Currency, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return nil, err
	}

	var c models.Currency
	err := s.transaction(ctx, "update currency", func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("currency", id)
			}
			return err
		}
		c.Name = in.Name
		if in.IsActive != nil {
			c.IsActive = *in.IsActive
		}
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCurrency removes a currency nothing refers to.
func (s *Service) DeleteCurrency(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete currency", func(tx *gorm.DB) error {
		var c models.Currency
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("currency", id)
			}
			return err
		}
		for _, ref := range []struct {
			model any
			what  string
		}{
			{&models.Product{}, "products"},
			{&models.OrderItem{}, "order items"},
			{&models.Payment{}, "payments"},
		} {
			used, err := referenced(tx, ref.model, "currency_id = ?", id)
			if err != nil {
				return err
			}
			if used {
				return conflict("currency %s is used by %s", c.Name, ref.what)
			}
		}
		return tx.Delete(&c).Error
	})
}

// ---- products ----

func checkProduct(in ProductInput) error {
	if in.BuyPrice.IsNegative() {
		return invalid("buy_price", "must not be negative")
	}
	if in.SellPrice.IsNegative() {
		return invalid("sell_price", "must not be negative")
	}
	if err := checkMoney("buy_price", in.BuyPrice); err != nil {
		return err
	}
	return checkMoney("sell_price", in.SellPrice)
}

func normalizeBarcode(b *string) *string {
	if b == nil {
		return nil
	}
	v := strings.TrimSpace(*b)
	if v == "" {
		return nil
	}
	return &v
}

func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	dbq := s.query(ctx).Model(&models.Product{}).Preload("Currency")

	if f.Search != "" {
		like := "%" + f.Search + "%"
		dbq = dbq.Where("name LIKE ? OR barcode LIKE ?", like, like)
	}
	if f.LowStock {
		dbq = dbq.Where("stock_quantity <= min_stock_alert")
	}
	if f.OutOfStock {
		dbq = dbq.Where("stock_quantity <= 0")
	}
	if f.ActiveOnly {
		dbq = dbq.Where("is_active = ?", true)
	}

	var out []models.Product
	if err := dbq.Order("name asc").Find(&out).Error; err != nil {
		return nil, classify("list products", err)
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.query(ctx).Preload("Currency").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product", id)
		}
		return nil, classify("get product", err)
	}
	return &p, nil
}

// CreateProduct registers a product. Its stock starts at the opening stock and
// from then on moves only through order items.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = normalizeBarcode(in.Barcode)
	if err := s.check(in); err != nil {
		return nil, err
	}
	if err := checkProduct(in); err != nil {
		return nil, err
	}

	minAlert, active := int64(5), true
	if in.MinStockAlert != nil {
		minAlert = *in.MinStockAlert
	}
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := models.Product{
		Name:          in.Name,
		Barcode:       in.Barcode,
		Description:   in.Description,
		BuyPrice:      in.BuyPrice,
		SellPrice:     in.SellPrice,
		CurrencyID:    in.CurrencyID,
		OpeningStock:  in.OpeningStock,
		StockQuantity: in.OpeningStock,
		MinStockAlert: minAlert,
		IsActive:      active,
	}

	err := s.transaction(ctx, "create product", func(tx *gorm.DB) error {
		if err := checkExists(tx, &models.Currency{}, "currency", map[uint]struct{}{in.CurrencyID: {}}); err != nil {
			return err
		}
		if err := tx.Omit("Currency").Create(&p).Error; err != nil {
			return err
		}
		return tx.Model(&p).Updates(map[string]any{
			"min_stock_alert": minAlert,
			"is_active":       active,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

// UpdateProduct edits the catalog fields. Stock is never written here.
func (s *Service) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = normalizeBarcode(in.Barcode)
	if err := s.check(in); err != nil {
		return nil, err
	}
	if err := checkProduct(in); err != nil {
		return nil, err
	}

	err := s.transaction(ctx, "update product", func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("product", id)
			}
			return err
		}
		if err := checkExists(tx, &models.Currency{}, "currency", map[uint]struct{}{in.CurrencyID: {}}); err != nil {
			return err
		}

		changes := map[string]any{
			"name":        in.Name,
			"barcode":     in.Barcode,
			"description": in.Description,
			"buy_price":   in.BuyPrice,
			"sell_price":  in.SellPrice,
			"currency_id": in.CurrencyID,
		}
		if in.MinStockAlert != nil {
			changes["min_stock_alert"] = *in.MinStockAlert
		}
		if in.IsActive != nil {
			changes["is_active"] = *in.IsActive
		}
		return tx.Model(&models.Product{}).Where("id = ?", id).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product that no order item, live or tombstoned, refers to.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete product", func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("product", id)
			}
			return err
		}
		used, err := referenced(tx, &models.OrderItem{}, "product_id = ?", id)
		if err != nil {
			return err
		}
		if used {
			return conflict("product %s has order history", p.Name)
		}
		return tx.Delete(&p).Error
	})
}

// ---- parties ----

func (s *Service) ListParties(ctx context.Context, kind models.PartyKind, search string) ([]models.Party, error) {
	dbq := s.query(ctx).Model(&models.Party{}).Where("kind = ?", kind)
	if search != "" {
		like := "%" + search + "%"
		dbq = dbq.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	var out []models.Party
	if err := dbq.Order("name asc").Find(&out).Error; err != nil {
		return nil, classify("list parties", err)
	}
	return out, nil
}

func (s *Service) GetParty(ctx context.Context, kind models.PartyKind, id uint) (*models.Party, error) {
	var p models.Party
	if err := s.query(ctx).First(&p, "id = ? AND kind = ?", id, kind).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(string(kind), id)
		}
		return nil, classify("get party", err)
	}
	return &p, nil
}

func (s *Service) CreateParty(ctx context.Context, kind models.PartyKind, in PartyInput) (*models.Party, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := models.Party{
		Kind:     kind,
		Name:     in.Name,
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.TrimSpace(in.Email),
		Address:  in.Address,
		Notes:    in.Notes,
		IsActive: active,
	}
	err := s.transaction(ctx, "create party", func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Update("is_active", active).Error; err != nil {
			return err
		}
		p.IsActive = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) UpdateParty(ctx context.Context, kind models.PartyKind, id uint, in PartyInput) (*models.Party, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return nil, err
	}

	var p models.Party
	err := s.transaction(ctx, "update party", func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ? AND kind = ?", id, kind).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(string(kind), id)
			}
			return err
		}
		p.Name = in.Name
		p.Phone = strings.TrimSpace(in.Phone)
		p.Email = strings.TrimSpace(in.Email)
		p.Address = in.Address
		p.Notes = in.Notes
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteParty removes a party with no orders or payments, tombstoned ones included.
func (s *Service) DeleteParty(ctx context.Context, kind models.PartyKind, id uint) error {
	return s.transaction(ctx, "delete party", func(tx *gorm.DB) error {
		var p models.Party
		if err := tx.First(&p, "id = ? AND kind = ?", id, kind).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(string(kind), id)
			}
			return err
		}
		for _, model := range []any{&models.Order{}, &models.Payment{}} {
			used, err := referenced(tx, model, "party_id = ?", id)
			if err != nil {
				return err
			}
			if used {
				return conflict("%s %s has order or payment history", kind, p.Name)
			}
		}
		return tx.Delete(&p).Error
	})
}
