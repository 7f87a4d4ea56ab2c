package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var (
	ErrNotFound = errors.New("record not found")

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type (
	// Repository is the create/get/search/update/delete set shared by every
	// persisted entity. Filters and field maps are keyed by column name.
	Repository[T any] interface {
		Create(ctx context.Context, entity *T) error
		GetOne(ctx context.Context, filter map[string]any) (*T, error)
		GetPaginatedSearch(ctx context.Context, query string, page, perPage int) (Page[T], error)
		Update(ctx context.Context, entity *T, fields map[string]any) error
		Delete(ctx context.Context, entity *T) error
	}

	// Descriptor tells the repository which columns a free-text query is
	// matched against and how pages are ordered.
	Descriptor struct {
		SearchFields []string
		OrderBy      string
	}

	Page[T any] struct {
		Items      []T
		Page       int
		PerPage    int
		Total      int64
		TotalPages int
	}

	repository[T any] struct {
		db         *gorm.DB
		descriptor Descriptor
	}
)

func NewRepository[T any](db *gorm.DB, descriptor Descriptor) Repository[T] {
	if descriptor.OrderBy == "" {
		descriptor.OrderBy = "id asc"
	}
	return &repository[T]{db: db, descriptor: descriptor}
}

func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *repository[T]) GetOne(ctx context.Context, filter map[string]any) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(filter).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repository[T]) GetPaginatedSearch(ctx context.Context, query string, page, perPage int) (Page[T], error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	tx := r.db.WithContext(ctx).Model(new(T))
	if query = strings.TrimSpace(query); query != "" && len(r.descriptor.SearchFields) > 0 {
		// % and _ in the query match literally.
		pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		conditions := make([]string, 0, len(r.descriptor.SearchFields))
		args := make([]any, 0, len(r.descriptor.SearchFields))
		for _, field := range r.descriptor.SearchFields {
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, field))
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(conditions, " OR "), args...)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
	// Past the last page; also keeps (page-1)*perPage below total.
	if page > totalPages {
		return result, nil
	}

	if err := tx.
		Order(r.descriptor.OrderBy).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&result.Items).Error; err != nil {
		return Page[T]{}, err
	}
	return result, nil
}

func (r *repository[T]) Update(ctx context.Context, entity *T, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(entity).Updates(fields).Error
}

func (r *repository[T]) Delete(ctx context.Context, entity *T) error {
	res := r.db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
