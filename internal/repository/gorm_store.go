package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"industrial-catalog/internal/models"
)

// productRow es la fila SQL de un producto. Seq autoincremental conserva el orden de inserción;
// las colecciones y estructuras anidadas se guardan como JSON.
type productRow struct {
	Seq               uint                  `gorm:"primaryKey;autoIncrement"`
	ID                string                `gorm:"size:36;uniqueIndex;not null"`
	Name              string                `gorm:"not null"`
	Category          string                `gorm:"index;not null"`
	Brand             string                `gorm:"index;not null"`
	Description       *string
	ImageURL          *string
	Code              *string
	Specifications    models.Specifications `gorm:"serializer:json"`
	Dimensions        *models.Dimensions    `gorm:"serializer:json"`
	Materials         []string              `gorm:"serializer:json"`
	Certifications    []string              `gorm:"serializer:json"`
	Applications      []string              `gorm:"serializer:json"`
	Features          []string              `gorm:"serializer:json"`
	Warranty          *string
	InstallationGuide *string
	DataSheetURL      *string
	Model             *string
	Series            *string
	Availability      string
	PriceCents        *int64
	Currency          string `gorm:"size:3"`
	PricingModel      string
	MinOrderQuantity  int
}

func (productRow) TableName() string { return "products" }

func newProductRow(p models.Product) productRow {
	return productRow{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Brand:             p.Brand,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		Code:              p.Code,
		Specifications:    p.Specifications,
		Dimensions:        p.Dimensions,
		Materials:         p.Materials,
		Certifications:    p.Certifications,
		Applications:      p.Applications,
		Features:          p.Features,
		Warranty:          p.Warranty,
		InstallationGuide: p.InstallationGuide,
		DataSheetURL:      p.DataSheetURL,
		Model:             p.Model,
		Series:            p.Series,
		Availability:      p.Availability,
		PriceCents:        p.PriceCents,
		Currency:          p.Currency,
		PricingModel:      p.PricingModel,
		MinOrderQuantity:  p.MinOrderQuantity,
	}
}

func (r productRow) toModel() models.Product {
	p := models.Product{
		ID:                r.ID,
		Name:              r.Name,
		Category:          r.Category,
		Brand:             r.Brand,
		Description:       r.Description,
		ImageURL:          r.ImageURL,
		Code:              r.Code,
		Specifications:    r.Specifications,
		Dimensions:        r.Dimensions,
		Materials:         r.Materials,
		Certifications:    r.Certifications,
		Applications:      r.Applications,
		Features:          r.Features,
		Warranty:          r.Warranty,
		InstallationGuide: r.InstallationGuide,
		DataSheetURL:      r.DataSheetURL,
		Model:             r.Model,
		Series:            r.Series,
		Availability:      r.Availability,
		PriceCents:        r.PriceCents,
		Currency:          r.Currency,
		PricingModel:      r.PricingModel,
		MinOrderQuantity:  r.MinOrderQuantity,
	}
	if p.Specifications == nil {
		p.Specifications = models.Specifications{}
	}
	return p
}

type quoteRow struct {
	Seq             uint               `gorm:"primaryKey;autoIncrement"`
	ID              string             `gorm:"size:36;uniqueIndex;not null"`
	Name            string             `gorm:"not null"`
	Email           string             `gorm:"not null"`
	Company         *string
	Phone           string             `gorm:"not null"`
	Products        []models.QuoteItem `gorm:"serializer:json"`
	CustomerMessage *string
	Status          string    `gorm:"not null"`
	CreatedAt       time.Time `gorm:"index"`
}

func (quoteRow) TableName() string { return "quotes" }

type contactRow struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"size:36;uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Subject   string `gorm:"not null"`
	Message   string `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (contactRow) TableName() string { return "contacts" }

type userRow struct {
	ID       string `gorm:"primaryKey;size:36"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

// GormStore guarda el catálogo en Postgres o SQLite
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// AutoMigrate crea o actualiza las tablas
func (s *GormStore) AutoMigrate() error {
	return errors.Wrap(
		s.db.AutoMigrate(&productRow{}, &quoteRow{}, &contactRow{}, &userRow{}),
		"migrating tables",
	)
}

// --- Productos ---

func (s *GormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var row productRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "finding product")
	}
	p := row.toModel()
	return &p, nil
}

func (s *GormStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.findProducts(s.db.WithContext(ctx))
}

func (s *GormStore) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&productRow{}).Count(&total).Error
	return total, errors.Wrap(err, "counting products")
}

func (s *GormStore) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product := models.NewProduct(uuid.NewString(), in)
	row := newProductRow(product)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(err, "inserting product")
	}
	return &product, nil
}

// SearchProducts filtra en Go para tener el mismo plegado de mayúsculas Unicode
// en Postgres y SQLite (LIKE de SQLite solo ignora mayúsculas ASCII).
func (s *GormStore) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	all, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0)
	for _, p := range all {
		if p.MatchesQuery(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *GormStore) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.findProducts(s.db.WithContext(ctx).Where("category = ?", category))
}

func (s *GormStore) GetProductsByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	return s.findProducts(s.db.WithContext(ctx).Where("brand = ?", brand))
}

func (s *GormStore) findProducts(tx *gorm.DB) ([]models.Product, error) {
	var rows []productRow
	if err := tx.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "finding products")
	}
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}

// --- Cotizaciones ---

func (s *GormStore) CreateQuote(ctx context.Context, in models.QuoteInput) (*models.Quote, error) {
	quote := models.NewQuote(uuid.NewString(), in, s.now().UTC().Truncate(time.Microsecond))
	row := quoteRow{
		ID:              quote.ID,
		Name:            quote.Name,
		Email:           quote.Email,
		Company:         quote.Company,
		Phone:           quote.Phone,
		Products:        quote.Products,
		CustomerMessage: quote.CustomerMessage,
		Status:          quote.Status,
		CreatedAt:       quote.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(err, "inserting quote")
	}
	return &quote, nil
}

func (s *GormStore) GetQuotes(ctx context.Context) ([]models.Quote, error) {
	var rows []quoteRow
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "finding quotes")
	}
	quotes := make([]models.Quote, 0, len(rows))
	for _, r := range rows {
		quotes = append(quotes, models.Quote{
			ID:              r.ID,
			Name:            r.Name,
			Email:           r.Email,
			Company:         r.Company,
			Phone:           r.Phone,
			Products:        r.Products,
			CustomerMessage: r.CustomerMessage,
			Status:          r.Status,
			CreatedAt:       r.CreatedAt,
		})
	}
	return quotes, nil
}

// --- Contactos ---

func (s *GormStore) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	contact := models.NewContact(uuid.NewString(), in, s.now().UTC().Truncate(time.Microsecond))
	row := contactRow{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(err, "inserting contact")
	}
	return &contact, nil
}

func (s *GormStore) GetContacts(ctx context.Context) ([]models.Contact, error) {
	var rows []contactRow
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "finding contacts")
	}
	contacts := make([]models.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, models.Contact{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Subject:   r.Subject,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		})
	}
	return contacts, nil
}

// --- Usuarios ---

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(s.db.WithContext(ctx).Where("username = ?", username))
}

func (s *GormStore) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := models.NewUser(uuid.NewString(), in)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	row := userRow(user)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, errors.Wrap(err, "inserting user")
	}
	return &user, nil
}

func (s *GormStore) findUser(tx *gorm.DB) (*models.User, error) {
	var row userRow
	if err := tx.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "finding user")
	}
	user := models.User(row)
	return &user, nil
}

// isUniqueViolation reconoce el error de clave duplicada de Postgres y SQLite.
// Los drivers no traducen a gorm.ErrDuplicatedKey sin TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
