// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/customer"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/domain/order"
	"github.com/your-org/commerce-api/internal/domain/product"
	"github.com/your-org/commerce-api/internal/domain/recommendation"
	"github.com/your-org/commerce-api/internal/domain/whatsapp"
	"github.com/your-org/commerce-api/internal/pkg/pricing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db      *gorm.DB
	pricing *pricing.Calculator
	logger  *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, calc *pricing.Calculator, logger *logrus.Logger) *Migration {
	return &Migration{
		db:      db,
		pricing: calc,
		logger:  logger,
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		// Catalog
		&product.Category{},
		&product.Product{},

		// Customers and orders
		&customer.Customer{},
		&order.Order{},
		&order.OrderItem{},

		// Stock ledger
		&inventory.Movement{},

		// Recommendations
		&recommendation.CustomerInteraction{},
		&recommendation.Recommendation{},

		// Message intake
		&whatsapp.Message{},
		&whatsapp.PurchaseRequest{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the indexes gorm tags cannot express
func (m *Migration) CreateIndexes() error {
	m.logger.Info("Creating additional database indexes")

	indexes := []string{
		// Catalog
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_low_stock ON products(stock_quantity) WHERE is_active = TRUE",
		"CREATE INDEX IF NOT EXISTS idx_products_tags ON products USING GIN (tags)",
		"CREATE INDEX IF NOT EXISTS idx_categories_parent_active ON categories(parent_id, is_active)",

		// Orders
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Inventory ledger
		"CREATE INDEX IF NOT EXISTS idx_movements_type_created ON inventory_movements(movement_type, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_movements_reference ON inventory_movements(reference_type, reference_id)",

		// Recommendations
		"CREATE INDEX IF NOT EXISTS idx_interactions_customer_type ON customer_interactions(customer_id, interaction_type)",
		"CREATE INDEX IF NOT EXISTS idx_recommendations_customer_score ON recommendations(customer_id, score DESC)",

		// Message intake
		"CREATE INDEX IF NOT EXISTS idx_whatsapp_messages_customer_created ON whatsapp_messages(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_requests_status ON purchase_requests(status, created_at DESC)",
	}

	successCount := 0
	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failCount++
			continue
		}
		successCount++
	}

	m.logger.WithFields(logrus.Fields{
		"created": successCount,
		"failed":  failCount,
	}).Info("Database indexes created")
	return nil
}

// SeedInitialData inserts a small development catalog
func (m *Migration) SeedInitialData() error {
	m.logger.Info("Seeding initial data")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m.logger.Info("Initial data seeded")
	return nil
}

type seedCategory struct {
	name        string
	description string
	parent      string
}

// seedCategories creates a two-level category tree
func (m *Migration) seedCategories() error {
	categories := []seedCategory{
		{name: "Alimentos", description: "Productos de despensa"},
		{name: "Bebidas", description: "Bebidas frias y calientes"},
		{name: "Combos", description: "Paquetes de productos"},
		{name: "Cafe", description: "Cafe en grano y molido", parent: "Bebidas"},
		{name: "Granos", description: "Arroz, frijoles y legumbres", parent: "Alimentos"},
		{name: "Panaderia", description: "Pan y reposteria", parent: "Alimentos"},
	}

	ids := make(map[string]uint)
	for _, sc := range categories {
		var existing product.Category
		if err := m.db.Where("name = ?", sc.name).First(&existing).Error; err == nil {
			ids[sc.name] = existing.ID
			m.logger.Debugf("Category already exists: %s", sc.name)
			continue
		}

		description := sc.description
		category := product.Category{
			Name:        sc.name,
			Description: &description,
			IsActive:    true,
		}
		if sc.parent != "" {
			parentID, ok := ids[sc.parent]
			if !ok {
				return fmt.Errorf("parent category %q not seeded", sc.parent)
			}
			category.ParentID = &parentID
		}

		if err := m.db.Create(&category).Error; err != nil {
			return err
		}
		ids[sc.name] = category.ID
		m.logger.Debugf("Created category: %s", sc.name)
	}

	return nil
}

type seedProduct struct {
	sku        string
	name       string
	category   string
	basePrice  string
	stock      int
	minStock   int
	isCombo    bool
	tags       []string
	dimensions string
}

// seedProducts adds a handful of products once the catalog is empty
func (m *Migration) seedProducts() error {
	var productCount int64
	if err := m.db.Model(&product.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		m.logger.Debug("Products already exist, skipping seed")
		return nil
	}

	products := []seedProduct{
		{sku: "CAF-001", name: "Cafe molido 500g", category: "Cafe", basePrice: "120.00", stock: 40, minStock: 10, tags: []string{"cafe", "molido"}, dimensions: `{"length":20,"width":10,"height":6}`},
		{sku: "CAF-002", name: "Cafe en grano 1kg", category: "Cafe", basePrice: "210.00", stock: 15, minStock: 5, tags: []string{"cafe", "grano"}},
		{sku: "GRA-001", name: "Arroz blanco 1kg", category: "Granos", basePrice: "32.50", stock: 100, minStock: 20, tags: []string{"arroz"}},
		{sku: "GRA-002", name: "Frijol negro 1kg", category: "Granos", basePrice: "38.90", stock: 4, minStock: 10, tags: []string{"frijol"}},
		{sku: "PAN-001", name: "Pan de caja", category: "Panaderia", basePrice: "45.00", stock: 25, minStock: 5, tags: []string{"pan"}},
		{sku: "CMB-001", name: "Canasta desayuno", category: "Combos", basePrice: "350.00", stock: 8, minStock: 2, isCombo: true, tags: []string{"cafe", "pan", "combo"}},
	}

	for _, sp := range products {
		var category product.Category
		if err := m.db.Where("name = ?", sp.category).First(&category).Error; err != nil {
			return fmt.Errorf("category %q not found: %w", sp.category, err)
		}

		base, err := decimal.NewFromString(sp.basePrice)
		if err != nil {
			return err
		}

		sku := sp.sku
		p := product.Product{
			Name:          sp.name,
			CategoryID:    category.ID,
			BasePrice:     base,
			FinalPrice:    m.pricing.FinalPrice(base),
			PlatformFee:   m.pricing.Rate(),
			SKU:           &sku,
			StockQuantity: sp.stock,
			MinStockLevel: sp.minStock,
			IsActive:      true,
			IsCombo:       sp.isCombo,
			Images:        datatypes.JSONSlice[string]{},
			Tags:          pq.StringArray(sp.tags),
		}
		if sp.dimensions != "" {
			p.Dimensions = datatypes.JSON(sp.dimensions)
		}

		if err := m.db.Create(&p).Error; err != nil {
			m.logger.WithError(err).Warnf("Failed to create product %s", sp.sku)
			continue
		}
		m.logger.Debugf("Created product: %s", sp.name)
	}

	return nil
}

// GetTableInfo logs the row count of every public table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			m.logger.WithError(err).Warnf("Failed to count %s", table)
			continue
		}
		totalRecords += count
		m.logger.WithFields(logrus.Fields{
			"table":   table,
			"records": count,
		}).Debug("Table info")
	}

	m.logger.WithFields(logrus.Fields{
		"tables":  len(tables),
		"records": totalRecords,
	}).Info("Database tables")

	return nil
}
