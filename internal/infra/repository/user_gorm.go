package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}
