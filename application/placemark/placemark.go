package placemark

import (
	"context"
	"time"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
	categoryrepo "github.com/placemarkhq/placemark/repository/category"
	placemarkrepo "github.com/placemarkhq/placemark/repository/placemark"
	userrepo "github.com/placemarkhq/placemark/repository/user"
	"github.com/placemarkhq/placemark/thirdparty/rabbitmq"
	"github.com/placemarkhq/placemark/utils/errors"
	"github.com/placemarkhq/placemark/utils/logger"
	"go.uber.org/zap"
)

type PlaceMarkApp interface {
	Create(ctx context.Context, req *model.CreatePlaceMarkRequest) (*model.PlaceMarkDTO, error)
	Get(ctx context.Context, id uint64) (*model.PlaceMarkDTO, error)
	List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.PlaceMarkDTO], error)
	ListByCategory(ctx context.Context, req model.ListRequest, categoryID uint64) (*model.PaginatedResponse[model.PlaceMarkDTO], error)
	Delete(ctx context.Context, id uint64, deletedBy uint64) error
}

type placemarkAppImpl struct {
	placemarkRepo placemarkrepo.PlaceMarkRepository
	categoryRepo  categoryrepo.CategoryRepository
	userRepo      userrepo.UserRepository
	publisher     *rabbitmq.Publisher
}

func NewPlaceMarkApp(placemarkRepo placemarkrepo.PlaceMarkRepository, categoryRepo categoryrepo.CategoryRepository, userRepo userrepo.UserRepository, publisher *rabbitmq.Publisher) PlaceMarkApp {
	return &placemarkAppImpl{
		placemarkRepo: placemarkRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		publisher:     publisher,
	}
}

// Create inserts a placemark after verifying both referenced owners
// resolve. The business error names the entity that failed to resolve so
// the caller can map it back to a field.
func (s *placemarkAppImpl) Create(ctx context.Context, req *model.CreatePlaceMarkRequest) (*model.PlaceMarkDTO, error) {
	exists, err := s.categoryRepo.Exists(ctx, req.CategoryID)
	if err != nil {
		logger.Error("[CreatePlaceMark] err categoryRepo.Exists", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !exists {
		return nil, errors.SetBusinessError(constant.ErrEntityNotFound, constant.EntityCategory)
	}

	owner, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.CreatedBy})
	if err != nil {
		logger.Error("[CreatePlaceMark] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if owner == nil {
		return nil, errors.SetBusinessError(constant.ErrEntityNotFound, constant.EntityUser)
	}

	id, err := s.placemarkRepo.Create(ctx, req)
	if err != nil {
		logger.Error("[CreatePlaceMark] err placemarkRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	dto, err := s.placemarkRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[CreatePlaceMark] err placemarkRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish("placemark.created", id, req.CreatedBy)
	return dto, nil
}

func (s *placemarkAppImpl) Get(ctx context.Context, id uint64) (*model.PlaceMarkDTO, error) {
	dto, err := s.placemarkRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetPlaceMark] err placemarkRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return dto, nil
}

func (s *placemarkAppImpl) List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.PlaceMarkDTO], error) {
	res, err := s.placemarkRepo.List(ctx, req)
	if err != nil {
		logger.Error("[ListPlaceMarks] err placemarkRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}

func (s *placemarkAppImpl) ListByCategory(ctx context.Context, req model.ListRequest, categoryID uint64) (*model.PaginatedResponse[model.PlaceMarkDTO], error) {
	res, err := s.placemarkRepo.ListByCategory(ctx, req, categoryID)
	if err != nil {
		logger.Error("[ListPlaceMarks] err placemarkRepo.ListByCategory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}

// Delete is idempotent: removing a missing id is a no-op.
func (s *placemarkAppImpl) Delete(ctx context.Context, id uint64, deletedBy uint64) error {
	if err := s.placemarkRepo.DeleteByID(ctx, id); err != nil {
		logger.Error("[DeletePlaceMark] err placemarkRepo.DeleteByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.publish("placemark.deleted", id, deletedBy)
	return nil
}

func (s *placemarkAppImpl) publish(event string, id, userID uint64) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.ActivityMessage{
		Event:      event,
		Entity:     constant.EntityPlaceMark,
		EntityID:   id,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishActivity(msg); err != nil {
		logger.Error("[PlaceMark] publish activity", zap.String("event", event), zap.String("error", err.Error()))
	}
}
