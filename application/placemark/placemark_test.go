package placemark_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	appplacemark "github.com/placemarkhq/placemark/application/placemark"
	"github.com/placemarkhq/placemark/constant"
	categorymocks "github.com/placemarkhq/placemark/mocks/repository/category"
	placemarkmocks "github.com/placemarkhq/placemark/mocks/repository/placemark"
	usermocks "github.com/placemarkhq/placemark/mocks/repository/user"
	"github.com/placemarkhq/placemark/model"
	cerr "github.com/placemarkhq/placemark/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestPlaceMarkApp_Create(t *testing.T) {
	type fields struct {
		placemarkRepo *placemarkmocks.PlaceMarkRepository
		categoryRepo  *categorymocks.CategoryRepository
		userRepo      *usermocks.UserRepository
	}
	type args struct {
		ctx context.Context
		req *model.CreatePlaceMarkRequest
	}
	tests := []struct {
		name       string
		fields     fields
		args       args
		mockCall   func(f fields)
		want       *model.PlaceMarkDTO
		wantErr    bool
		errCode    constant.ErrorType
		wantEntity string
	}{
		{
			name: "success: create placemark",
			fields: fields{
				placemarkRepo: placemarkmocks.NewPlaceMarkRepository(t),
				categoryRepo:  categorymocks.NewCategoryRepository(t),
				userRepo:      usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePlaceMarkRequest{
					Designation: "Moe's Tavern",
					Latitude:    44.46,
					Longitude:   -72.01,
					CategoryID:  5,
					CreatedBy:   1,
				},
			},
			mockCall: func(f fields) {
				f.categoryRepo.
					On("Exists", mock.Anything, uint64(5)).
					Return(true, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1}, nil).
					Once()

				f.placemarkRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.CreatePlaceMarkRequest")).
					Return(uint64(9), nil).
					Once()

				f.placemarkRepo.
					On("GetByID", mock.Anything, uint64(9)).
					Return(&model.PlaceMarkDTO{
						ID:          9,
						Designation: "Moe's Tavern",
						Latitude:    44.46,
						Longitude:   -72.01,
						Category:    model.Lookup{ID: 5, Designation: "Hideouts"},
						CreatedBy:   model.Lookup{ID: 1, Designation: "Homer Simpson"},
					}, nil).
					Once()
			},
			want: &model.PlaceMarkDTO{
				ID:          9,
				Designation: "Moe's Tavern",
				Latitude:    44.46,
				Longitude:   -72.01,
				Category:    model.Lookup{ID: 5, Designation: "Hideouts"},
				CreatedBy:   model.Lookup{ID: 1, Designation: "Homer Simpson"},
			},
			wantErr: false,
		},
		{
			name: "error: category does not resolve",
			fields: fields{
				placemarkRepo: placemarkmocks.NewPlaceMarkRepository(t),
				categoryRepo:  categorymocks.NewCategoryRepository(t),
				userRepo:      usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePlaceMarkRequest{
					Designation: "Moe's Tavern",
					CategoryID:  404,
					CreatedBy:   1,
				},
			},
			mockCall: func(f fields) {
				f.categoryRepo.
					On("Exists", mock.Anything, uint64(404)).
					Return(false, nil).
					Once()
			},
			want:       nil,
			wantErr:    true,
			errCode:    constant.ErrEntityNotFound,
			wantEntity: constant.EntityCategory,
		},
		{
			name: "error: owner does not resolve",
			fields: fields{
				placemarkRepo: placemarkmocks.NewPlaceMarkRepository(t),
				categoryRepo:  categorymocks.NewCategoryRepository(t),
				userRepo:      usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePlaceMarkRequest{
					Designation: "Moe's Tavern",
					CategoryID:  5,
					CreatedBy:   404,
				},
			},
			mockCall: func(f fields) {
				f.categoryRepo.
					On("Exists", mock.Anything, uint64(5)).
					Return(true, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 404}).
					Return(nil, nil).
					Once()
			},
			want:       nil,
			wantErr:    true,
			errCode:    constant.ErrEntityNotFound,
			wantEntity: constant.EntityUser,
		},
		{
			name: "error: repository Create returns error",
			fields: fields{
				placemarkRepo: placemarkmocks.NewPlaceMarkRepository(t),
				categoryRepo:  categorymocks.NewCategoryRepository(t),
				userRepo:      usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePlaceMarkRequest{
					Designation: "Moe's Tavern",
					CategoryID:  5,
					CreatedBy:   1,
				},
			},
			mockCall: func(f fields) {
				f.categoryRepo.
					On("Exists", mock.Anything, uint64(5)).
					Return(true, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1}, nil).
					Once()

				f.placemarkRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.CreatePlaceMarkRequest")).
					Return(uint64(0), errors.New("insert failed")).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appplacemark.NewPlaceMarkApp(tt.fields.placemarkRepo, tt.fields.categoryRepo, tt.fields.userRepo, nil)

			got, err := app.Create(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if tt.wantEntity != "" {
					var be cerr.BusinessError
					if !errors.As(err, &be) {
						t.Fatalf("error type = %T, want BusinessError", err)
					}
					if be.Entity != tt.wantEntity {
						t.Fatalf("entity = %s, want %s", be.Entity, tt.wantEntity)
					}
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Create() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlaceMarkApp_Delete(t *testing.T) {
	t.Run("deleting a missing id is a no-op", func(t *testing.T) {
		placemarkRepo := placemarkmocks.NewPlaceMarkRepository(t)
		app := appplacemark.NewPlaceMarkApp(placemarkRepo, categorymocks.NewCategoryRepository(t), usermocks.NewUserRepository(t), nil)

		placemarkRepo.
			On("DeleteByID", mock.Anything, uint64(404)).
			Return(nil).
			Once()

		if err := app.Delete(context.Background(), 404, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	})

	t.Run("repository failure surfaces as internal error", func(t *testing.T) {
		placemarkRepo := placemarkmocks.NewPlaceMarkRepository(t)
		app := appplacemark.NewPlaceMarkApp(placemarkRepo, categorymocks.NewCategoryRepository(t), usermocks.NewUserRepository(t), nil)

		placemarkRepo.
			On("DeleteByID", mock.Anything, uint64(9)).
			Return(errors.New("delete failed")).
			Once()

		err := app.Delete(context.Background(), 9, 1)
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInternal] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInternal])
		}
	})
}

func TestPlaceMarkApp_ListByCategory(t *testing.T) {
	placemarkRepo := placemarkmocks.NewPlaceMarkRepository(t)
	app := appplacemark.NewPlaceMarkApp(placemarkRepo, categorymocks.NewCategoryRepository(t), usermocks.NewUserRepository(t), nil)

	want := &model.PaginatedResponse[model.PlaceMarkDTO]{
		Total: 1,
		Data:  []model.PlaceMarkDTO{{ID: 9, Designation: "Moe's Tavern"}},
	}
	placemarkRepo.
		On("ListByCategory", mock.Anything, model.ListRequest{Take: 10}, uint64(5)).
		Return(want, nil).
		Once()

	got, err := app.ListByCategory(context.Background(), model.ListRequest{Take: 10}, 5)
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListByCategory() = %+v, want %+v", got, want)
	}
}
