package implementation

import (
	"context"
	"errors"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/mapper"
	"alkulous-relay/internal/model"
	"alkulous-relay/internal/repository/contract"
	"alkulous-relay/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type ApiKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApiKeyMapper
}

func NewApiKeyRepository(db *gorm.DB) contract.ApiKeyRepository {
	return &ApiKeyRepositoryImpl{
		db:     db,
		mapper: mapper.NewApiKeyMapper(),
	}
}

func (r *ApiKeyRepositoryImpl) Create(ctx context.Context, key *entity.ApiKey) error {
	m := r.mapper.ToModel(key)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return contract.ErrDuplicateKey
		}
		return err
	}
	*key = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApiKeyRepositoryImpl) FindAll(ctx context.Context) ([]*entity.ApiKey, error) {
	var models []*model.ApiKey
	query := specification.ApplyAll(r.db.WithContext(ctx), specification.OrderBy{Field: "id", Desc: true})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ApiKey, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ApiKeyRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.ApiKey, error) {
	return r.findOne(ctx, specification.ByKey{Key: key})
}

func (r *ApiKeyRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.ApiKey, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *ApiKeyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ApiKey{}, id).Error
}

func (r *ApiKeyRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.ApiKey, error) {
	var m model.ApiKey
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
