package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

const DefaultDBFile = "cliplink.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Product struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)"`
	Title       string  `gorm:"index:idx_product_title" json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `gorm:"type:varchar(8)" json:"currency"`
	ImageURL    string  `json:"image_url"`
	ProductURL  string  `json:"product_url"`
	Tags        string  `gorm:"index:idx_product_tags" json:"tags"`
	CreatedAt   time.Time
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("CLIPLINK_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Product{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	client := &DBClient{DB: db, db: sqlDB}
	if err := client.seedIfEmpty(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}

	return client, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *DBClient) AddProduct(p models.ProductCandidate) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	row := Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		ProductURL:  p.ProductURL,
		Tags:        strings.Join(p.Tags, ","),
	}
	if err := c.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("creating product: %w", err)
	}
	return row.ID, nil
}

// SearchProducts ranks catalog rows by how many query tokens appear in
// the title, description or tags. Rows matching nothing are dropped.
func (c *DBClient) SearchProducts(query string, limit int) ([]models.ProductCandidate, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	if limit < 1 {
		limit = 1
	}

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []models.ProductCandidate{}, nil
	}

	var rows []Product
	if err := c.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	type scored struct {
		product Product
		hits    int
	}

	var matches []scored
	for _, row := range rows {
		haystack := strings.ToLower(row.Title + " " + row.Description + " " + row.Tags)
		hits := 0
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{product: row, hits: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].hits > matches[j].hits
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]models.ProductCandidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, toCandidate(m.product))
	}
	return out, nil
}

func (c *DBClient) ListProducts() ([]models.ProductCandidate, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Product
	if err := c.DB.Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	out := make([]models.ProductCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCandidate(row))
	}
	return out, nil
}

func (c *DBClient) CountProducts() (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}

	var count int64
	if err := c.DB.Model(&Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

func toCandidate(row Product) models.ProductCandidate {
	var tags []string
	if row.Tags != "" {
		tags = strings.Split(row.Tags, ",")
	}
	return models.ProductCandidate{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		Currency:    row.Currency,
		ImageURL:    row.ImageURL,
		ProductURL:  row.ProductURL,
		Source:      "catalog",
		Tags:        tags,
	}
}

// seedIfEmpty loads the starter catalog on first run so offline
// deployments have something to search.
func (c *DBClient) seedIfEmpty() error {
	count, err := c.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range starterCatalog {
		if _, err := c.AddProduct(p); err != nil {
			return err
		}
	}
	return nil
}

var starterCatalog = []models.ProductCandidate{
	{
		Title:       "Nike Air Max 270 Sneakers",
		Description: "Lifestyle running shoes with visible air cushioning",
		Price:       150, Currency: "USD",
		ProductURL: "https://www.nike.com/t/air-max-270",
		Tags:       []string{"nike", "shoes", "footwear", "sneaker"},
	},
	{
		Title:       "Adidas Ultraboost Running Shoes",
		Description: "Responsive running shoes with knit upper",
		Price:       180, Currency: "USD",
		ProductURL: "https://www.adidas.com/us/ultraboost",
		Tags:       []string{"adidas", "shoes", "footwear", "running"},
	},
	{
		Title:       "Zara Oversized Blazer",
		Description: "Relaxed fit blazer in wool blend",
		Price:       89.9, Currency: "USD",
		ProductURL: "https://www.zara.com/us/en/oversized-blazer",
		Tags:       []string{"zara", "blazer", "jacket", "clothing"},
	},
	{
		Title:       "Uniqlo Airism Cotton T-Shirt",
		Description: "Breathable crew neck t-shirt",
		Price:       14.9, Currency: "USD",
		ProductURL: "https://www.uniqlo.com/us/en/airism-tshirt",
		Tags:       []string{"uniqlo", "tshirt", "shirt", "clothing"},
	},
	{
		Title:       "Levi's 501 Original Jeans",
		Description: "Straight leg jeans in rigid denim",
		Price:       69.5, Currency: "USD",
		ProductURL: "https://www.levi.com/US/en_US/501-original",
		Tags:       []string{"levi's", "jeans", "denim", "clothing"},
	},
	{
		Title:       "Apple AirPods Pro",
		Description: "Wireless earbuds with active noise cancellation",
		Price:       249, Currency: "USD",
		ProductURL: "https://www.apple.com/airpods-pro/",
		Tags:       []string{"apple", "earbuds", "headphones", "electronics"},
	},
	{
		Title:       "Samsung Galaxy Watch 6",
		Description: "Smartwatch with health tracking",
		Price:       299, Currency: "USD",
		ProductURL: "https://www.samsung.com/us/watches/galaxy-watch6/",
		Tags:       []string{"samsung", "watch", "smartwatch", "electronics"},
	},
	{
		Title:       "IKEA POANG Armchair",
		Description: "Bentwood armchair with cushion",
		Price:       129, Currency: "USD",
		ProductURL: "https://www.ikea.com/us/en/p/poaeng-armchair",
		Tags:       []string{"ikea", "chair", "armchair", "furniture"},
	},
}
