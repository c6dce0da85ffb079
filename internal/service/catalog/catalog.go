package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/skch/foodcourt/internal/logging"
	"github.com/skch/foodcourt/internal/models"
	"github.com/skch/foodcourt/internal/service/search"
)

var (
	ErrConflict   = errors.New("conflict")   // duplicate menu name
	ErrUnresolved = errors.New("unresolved") // free-text name matched nothing
)

type Service struct {
	DB    *gorm.DB
	ES    *elasticsearch.Client
	Index string
}

// ListAvailable returns available items ordered by name.
func (s *Service) ListAvailable(ctx context.Context, offset, limit int) (int64, []models.MenuItem, error) {
	db := s.DB.WithContext(ctx)
	q := db.Model(&models.MenuItem{}).Where("available = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.MenuItem
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// Create adds a menu item and mirrors it into the search index. The index
// write is best effort; the row is the source of truth.
func (s *Service) Create(ctx context.Context, item *models.MenuItem) error {
	db := s.DB.WithContext(ctx)

	var existing models.MenuItem
	err := db.Where("name = ?", item.Name).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: menu item %q already exists", ErrConflict, item.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(item).Error; err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.IndexItem(ctx, s.ES, s.Index, item); err != nil {
			logging.FromContext(ctx).Warn("menu index write failed", "item_id", item.ID, "error", err)
		}
	}
	return nil
}

// ResolveByName matches a free-text token against available item names by
// case-insensitive substring containment and returns the first hit in name
// order. Deliberately linear: it tolerates casual phrasing without fuzzy
// scoring.
func (s *Service) ResolveByName(ctx context.Context, token string) (*models.MenuItem, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, fmt.Errorf("%w: empty item name", ErrUnresolved)
	}

	var items []models.MenuItem
	if err := s.DB.WithContext(ctx).
		Where("available = ?", true).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].Name), token) {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolved, token)
}
