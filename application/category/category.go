package category

import (
	"context"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
	categoryrepo "github.com/placemarkhq/placemark/repository/category"
	txrepo "github.com/placemarkhq/placemark/repository/tx"
	userrepo "github.com/placemarkhq/placemark/repository/user"
	"github.com/placemarkhq/placemark/utils/errors"
	"github.com/placemarkhq/placemark/utils/logger"
	"go.uber.org/zap"
)

type CategoryApp interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.CategoryDTO, error)
	Get(ctx context.Context, id uint64) (*model.CategoryDTO, error)
	List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.CategoryDTO], error)
	Delete(ctx context.Context, id uint64) error
}

type categoryAppImpl struct {
	txRepo       txrepo.TxRepository
	categoryRepo categoryrepo.CategoryRepository
	userRepo     userrepo.UserRepository
}

func NewCategoryApp(txRepo txrepo.TxRepository, categoryRepo categoryrepo.CategoryRepository, userRepo userrepo.UserRepository) CategoryApp {
	return &categoryAppImpl{txRepo: txRepo, categoryRepo: categoryRepo, userRepo: userRepo}
}

// Create inserts a category after verifying its owner resolves. A missing
// owner is a business error tagged "User", distinct from a missing field.
func (s *categoryAppImpl) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.CategoryDTO, error) {
	owner, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.CreatedBy})
	if err != nil {
		logger.Error("[CreateCategory] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if owner == nil {
		return nil, errors.SetBusinessError(constant.ErrEntityNotFound, constant.EntityUser)
	}

	id, err := s.categoryRepo.Create(ctx, req)
	if err != nil {
		logger.Error("[CreateCategory] err categoryRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	dto, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[CreateCategory] err categoryRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return dto, nil
}

func (s *categoryAppImpl) Get(ctx context.Context, id uint64) (*model.CategoryDTO, error) {
	dto, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetCategory] err categoryRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return dto, nil
}

func (s *categoryAppImpl) List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.CategoryDTO], error) {
	res, err := s.categoryRepo.List(ctx, req)
	if err != nil {
		logger.Error("[ListCategories] err categoryRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}

// Delete refuses to remove a category that still has placemarks; it never
// cascades. Deleting a missing id is a no-op.
func (s *categoryAppImpl) Delete(ctx context.Context, id uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeleteCategory] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	dependents, err := s.categoryRepo.CountPlaceMarksTx(ctx, tx, id)
	if err != nil {
		logger.Error("[DeleteCategory] count placemarks", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if dependents > 0 {
		return errors.SetBusinessError(constant.ErrEntityInUse, constant.EntityPlaceMark)
	}

	if err := s.categoryRepo.DeleteTx(ctx, tx, id); err != nil {
		logger.Error("[DeleteCategory] delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeleteCategory] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}
