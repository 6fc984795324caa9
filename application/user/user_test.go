package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	appuser "github.com/placemarkhq/placemark/application/user"
	"github.com/placemarkhq/placemark/cmd/config"
	"github.com/placemarkhq/placemark/constant"
	redismocks "github.com/placemarkhq/placemark/mocks/repository/redis"
	txmocks "github.com/placemarkhq/placemark/mocks/repository/tx"
	usermocks "github.com/placemarkhq/placemark/mocks/repository/user"
	"github.com/placemarkhq/placemark/model"
	cerr "github.com/placemarkhq/placemark/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-jwt-signing",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Signup(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	type fields struct {
		config    *config.Config
		txRepo    *txmocks.TxRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		req *model.SignupRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.UserDTO
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: signup lowercases the email",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SignupRequest{
					FirstName: "Homer",
					LastName:  "Simpson",
					Email:     "Homer@Simpson.COM",
					Password:  "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.FirstName == "Homer" &&
							ent.LastName == "Simpson" &&
							ent.Email == "homer@simpson.com" &&
							ent.PasswordHash != "" &&
							ent.PasswordHash != "secret123"
					})).
					Return(&model.UserEntity{
						ID:           1,
						FirstName:    "Homer",
						LastName:     "Simpson",
						Email:        "homer@simpson.com",
						PasswordHash: "hashed_password",
						CreatedAt:    createdAt,
					}, nil).
					Once()
			},
			want: &model.UserDTO{
				ID:        1,
				FirstName: "Homer",
				LastName:  "Simpson",
				Email:     "homer@simpson.com",
				CreatedAt: createdAt,
			},
			wantErr: false,
		},
		{
			name: "error: email already exists",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SignupRequest{
					FirstName: "Homer",
					LastName:  "Simpson",
					Email:     "homer@simpson.com",
					Password:  "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(&model.UserEntity{ID: 1, Email: "homer@simpson.com"}, nil).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrEmailExists,
		},
		{
			name: "error: repository Get returns error",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SignupRequest{
					FirstName: "Homer",
					LastName:  "Simpson",
					Email:     "homer@simpson.com",
					Password:  "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(nil, errors.New("db error")).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: repository Create returns error",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SignupRequest{
					FirstName: "Homer",
					LastName:  "Simpson",
					Email:     "homer@simpson.com",
					Password:  "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, errors.New("create failed")).
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
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Signup(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Signup() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Signup() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Authenticate(t *testing.T) {
	type fields struct {
		config    *config.Config
		txRepo    *txmocks.TxRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		req *model.AuthRequest
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		wantSuccess bool
		wantUser    *model.Principal
		wantErr     bool
		errCode     constant.ErrorType
	}{
		{
			name: "success: valid credentials",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.AuthRequest{
					Email:    "Homer@Simpson.com",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(&model.UserEntity{
						ID:           1,
						FirstName:    "Homer",
						LastName:     "Simpson",
						Email:        "homer@simpson.com",
						Admin:        true,
						PasswordHash: string(hashedPassword),
					}, nil).
					Once()

				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(nil).
					Once()
			},
			wantSuccess: true,
			wantUser:    &model.Principal{ID: 1, Email: "homer@simpson.com", Admin: true},
			wantErr:     false,
		},
		{
			name: "success false: unknown email",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.AuthRequest{
					Email:    "nobody@simpson.com",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "nobody@simpson.com"}).
					Return(nil, nil).
					Once()
			},
			wantSuccess: false,
			wantErr:     false,
		},
		{
			name: "success false: wrong password",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.AuthRequest{
					Email:    "homer@simpson.com",
					Password: "wrongpassword",
				},
			},
			mockCall: func(f fields) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Email:        "homer@simpson.com",
						PasswordHash: string(hashedPassword),
					}, nil).
					Once()
			},
			wantSuccess: false,
			wantErr:     false,
		},
		{
			name: "error: repository Get returns error",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.AuthRequest{
					Email:    "homer@simpson.com",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(nil, errors.New("db error")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: SetSession returns error",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.AuthRequest{
					Email:    "homer@simpson.com",
					Password: "secret123",
				},
			},
			mockCall: func(f fields) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Email:        "homer@simpson.com",
						PasswordHash: string(hashedPassword),
					}, nil).
					Once()

				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(errors.New("redis error")).
					Once()
			},
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
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Authenticate(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Success != tt.wantSuccess {
				t.Fatalf("Authenticate() success = %v, want %v", got.Success, tt.wantSuccess)
			}
			if !tt.wantSuccess {
				if got.Token != "" || got.User != nil {
					t.Fatalf("Authenticate() failed result should carry no token or user, got %+v", got)
				}
				return
			}
			if !reflect.DeepEqual(got.User, tt.wantUser) {
				t.Fatalf("Authenticate() user = %+v, want %+v", got.User, tt.wantUser)
			}
			if got.Token == "" {
				t.Fatal("Authenticate() token should not be empty")
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	type fields struct {
		config    *config.Config
		txRepo    *txmocks.TxRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}

	newFields := func() fields {
		return fields{
			config:    testConfig(),
			txRepo:    txmocks.NewTxRepository(t),
			userRepo:  usermocks.NewUserRepository(t),
			redisRepo: redismocks.NewRedisRepository(t),
		}
	}

	// issueToken runs a real Authenticate to obtain a signed token whose jti
	// the redis mock has seen.
	issueToken := func(f fields, app appuser.UserApp) string {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
			Return(&model.UserEntity{
				ID:           1,
				Email:        "homer@simpson.com",
				PasswordHash: string(hashedPassword),
			}, nil).
			Once()
		f.redisRepo.
			On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
			Return(nil).
			Once()

		resp, err := app.Authenticate(context.Background(), &model.AuthRequest{
			Email:    "homer@simpson.com",
			Password: "secret123",
		})
		if err != nil || !resp.Success {
			t.Fatalf("issueToken: Authenticate() = %+v, %v", resp, err)
		}
		return resp.Token
	}

	t.Run("success: fresh principal comes from the store", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)
		token := issueToken(f, app)

		f.redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(1), nil).
			Once()
		// admin was granted after the token was issued
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: 1}).
			Return(&model.UserEntity{ID: 1, Email: "homer@simpson.com", Admin: true}, nil).
			Once()

		principal, err := app.ValidateToken(context.Background(), token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		want := &model.Principal{ID: 1, Email: "homer@simpson.com", Admin: true}
		if !reflect.DeepEqual(principal, want) {
			t.Fatalf("ValidateToken() = %+v, want %+v", principal, want)
		}
	})

	t.Run("error: malformed token", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)

		if _, err := app.ValidateToken(context.Background(), "invalid.token.string"); err == nil {
			t.Fatal("ValidateToken() expected error for malformed token")
		}
	})

	t.Run("error: token signed with another secret", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)
		token := issueToken(f, app)

		otherCfg := testConfig()
		otherCfg.Auth.JWTSecret = "a-different-secret"
		otherApp := appuser.NewUserApp(otherCfg, f.txRepo, f.userRepo, f.redisRepo)

		if _, err := otherApp.ValidateToken(context.Background(), token); err == nil {
			t.Fatal("ValidateToken() expected error for wrong signature")
		}
	})

	t.Run("error: revoked session", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)
		token := issueToken(f, app)

		f.redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(0), errors.New("session not found")).
			Once()

		if _, err := app.ValidateToken(context.Background(), token); err == nil {
			t.Fatal("ValidateToken() expected error for revoked session")
		}
	})

	t.Run("error: session belongs to another user", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)
		token := issueToken(f, app)

		f.redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(99), nil).
			Once()

		if _, err := app.ValidateToken(context.Background(), token); err == nil {
			t.Fatal("ValidateToken() expected error for session mismatch")
		}
	})

	t.Run("error: user no longer exists", func(t *testing.T) {
		f := newFields()
		app := appuser.NewUserApp(f.config, f.txRepo, f.userRepo, f.redisRepo)
		token := issueToken(f, app)

		f.redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(1), nil).
			Once()
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: 1}).
			Return(nil, nil).
			Once()

		if _, err := app.ValidateToken(context.Background(), token); err == nil {
			t.Fatal("ValidateToken() expected error for deleted user")
		}
	})
}

func TestUserApp_Logout(t *testing.T) {
	t.Run("drops the session of a valid token", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)
		app := appuser.NewUserApp(testConfig(), txmocks.NewTxRepository(t), userRepo, redisRepo)

		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
		userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "homer@simpson.com"}).
			Return(&model.UserEntity{ID: 1, Email: "homer@simpson.com", PasswordHash: string(hashedPassword)}, nil).
			Once()
		redisRepo.
			On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
			Return(nil).
			Once()

		resp, err := app.Authenticate(context.Background(), &model.AuthRequest{
			Email:    "homer@simpson.com",
			Password: "secret123",
		})
		if err != nil || !resp.Success {
			t.Fatalf("Authenticate() = %+v, %v", resp, err)
		}

		redisRepo.
			On("DeleteSession", mock.Anything, mock.AnythingOfType("string")).
			Return(nil).
			Once()

		if err := app.Logout(context.Background(), resp.Token); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	})

	t.Run("garbage token is a no-op", func(t *testing.T) {
		app := appuser.NewUserApp(testConfig(), txmocks.NewTxRepository(t), usermocks.NewUserRepository(t), redismocks.NewRedisRepository(t))

		if err := app.Logout(context.Background(), "not-a-token"); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	})
}

func TestUserApp_DeleteUser(t *testing.T) {
	type fields struct {
		config    *config.Config
		txRepo    *txmocks.TxRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		id  uint64
	}
	tests := []struct {
		name       string
		fields     fields
		args       args
		mockCall   func(f fields)
		wantErr    bool
		errCode    constant.ErrorType
		wantEntity string
	}{
		{
			name: "success: unowned user is removed and sessions revoked",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{ctx: context.Background(), id: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("CountOwnedTx", mock.Anything, mock.Anything, uint64(7)).
					Return(int64(0), int64(0), nil).
					Once()
				f.userRepo.On("DeleteTx", mock.Anything, mock.Anything, uint64(7)).Return(nil).Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
				f.redisRepo.On("DeleteUserSessions", mock.Anything, uint64(7)).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: session revocation failure does not fail the delete",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{ctx: context.Background(), id: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("CountOwnedTx", mock.Anything, mock.Anything, uint64(7)).
					Return(int64(0), int64(0), nil).
					Once()
				f.userRepo.On("DeleteTx", mock.Anything, mock.Anything, uint64(7)).Return(nil).Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
				f.redisRepo.
					On("DeleteUserSessions", mock.Anything, uint64(7)).
					Return(errors.New("redis down")).
					Once()
			},
			wantErr: false,
		},
		{
			name: "error: user still owns categories",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{ctx: context.Background(), id: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("CountOwnedTx", mock.Anything, mock.Anything, uint64(7)).
					Return(int64(2), int64(0), nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr:    true,
			errCode:    constant.ErrEntityInUse,
			wantEntity: constant.EntityCategory,
		},
		{
			name: "error: user still owns placemarks",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{ctx: context.Background(), id: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("CountOwnedTx", mock.Anything, mock.Anything, uint64(7)).
					Return(int64(0), int64(3), nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr:    true,
			errCode:    constant.ErrEntityInUse,
			wantEntity: constant.EntityPlaceMark,
		},
		{
			name: "error: delete fails and rolls back",
			fields: fields{
				config:    testConfig(),
				txRepo:    txmocks.NewTxRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{ctx: context.Background(), id: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("CountOwnedTx", mock.Anything, mock.Anything, uint64(7)).
					Return(int64(0), int64(0), nil).
					Once()
				f.userRepo.
					On("DeleteTx", mock.Anything, mock.Anything, uint64(7)).
					Return(errors.New("delete failed")).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
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
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.redisRepo)

			err := app.DeleteUser(tt.args.ctx, tt.args.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

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
		})
	}
}
