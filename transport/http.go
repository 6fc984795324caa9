package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/placemarkhq/placemark/application/category"
	"github.com/placemarkhq/placemark/application/placemark"
	"github.com/placemarkhq/placemark/application/user"
	"github.com/placemarkhq/placemark/cmd/config"
	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
	utilsContext "github.com/placemarkhq/placemark/utils/context"
	"github.com/placemarkhq/placemark/utils/errors"
	validatorx "github.com/placemarkhq/placemark/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	cfg          *config.Config
	UserApp      user.UserApp
	CategoryApp  category.CategoryApp
	PlaceMarkApp placemark.PlaceMarkApp
	forms        *Forms
}

type authMode int

const (
	authNone authMode = iota
	authBearer
	authCookie
)

// route is one entry of the explicit registration table. No reflection,
// no annotations: every endpoint the server exposes is listed here.
type route struct {
	method  string
	path    string
	auth    authMode
	handler http.HandlerFunc
}

func NewTransport(cfg *config.Config, userApp user.UserApp, categoryApp category.CategoryApp, placemarkApp placemark.PlaceMarkApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		cfg:          cfg,
		UserApp:      userApp,
		CategoryApp:  categoryApp,
		PlaceMarkApp: placemarkApp,
		forms:        NewForms(categoryApp),
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	for _, rt := range rh.routes() {
		handler := rt.handler
		switch rt.auth {
		case authBearer:
			handler = requireBearer(userApp, handler)
		case authCookie:
			handler = requireSession(cfg, userApp, handler)
		}
		router.HandleFunc(rt.path, handler).Methods(rt.method)
	}

	router.Use(LoggingMiddleware())

	return router
}

func (s *RestHandler) routes() []route {
	return []route{
		// JSON API
		{http.MethodPost, "/api/users", authNone, s.CreateUser},
		{http.MethodPost, "/api/users/authenticate", authNone, s.Authenticate},
		{http.MethodGet, "/api/users", authBearer, s.ListUsers},
		{http.MethodGet, "/api/users/{id}", authBearer, s.GetUser},
		{http.MethodDelete, "/api/users/{id}", authBearer, s.DeleteUser},
		{http.MethodPost, "/api/categories", authBearer, s.CreateCategory},
		{http.MethodGet, "/api/categories", authBearer, s.ListCategories},
		{http.MethodGet, "/api/categories/{id}", authBearer, s.GetCategory},
		{http.MethodDelete, "/api/categories/{id}", authBearer, s.DeleteCategory},
		{http.MethodGet, "/api/categories/{id}/placemarks", authBearer, s.ListCategoryPlaceMarks},
		{http.MethodPost, "/api/placemarks", authBearer, s.CreatePlaceMark},
		{http.MethodGet, "/api/placemarks", authBearer, s.ListPlaceMarks},
		{http.MethodGet, "/api/placemarks/{id}", authBearer, s.GetPlaceMark},
		{http.MethodDelete, "/api/placemarks/{id}", authBearer, s.DeletePlaceMark},

		// HTML
		{http.MethodGet, "/", authNone, s.Index},
		{http.MethodGet, "/signup", authNone, s.SignupPage},
		{http.MethodPost, "/signup", authNone, s.SignupSubmit},
		{http.MethodGet, "/login", authNone, s.LoginPage},
		{http.MethodPost, "/login", authNone, s.LoginSubmit},
		{http.MethodGet, "/logout", authNone, s.Logout},
		{http.MethodGet, "/dashboard", authCookie, s.Dashboard},
		{http.MethodPost, "/dashboard/category", authCookie, s.AddCategory},
		{http.MethodPost, "/dashboard/category/{id}/delete", authCookie, s.RemoveCategory},
		{http.MethodGet, "/category/{id}", authCookie, s.CategoryPage},
		{http.MethodPost, "/category/{id}/placemark", authCookie, s.AddPlaceMark},
		{http.MethodPost, "/placemark/{id}/delete", authCookie, s.RemovePlaceMark},
	}
}

// CreateUser handler
// @Summary Create user
// @Description Create a new user account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Signup Request"
// @Success 200 {object} model.UserDTO
// @Failure 400 {object} errors.CustomError
// @Router /api/users [post]
func (s *RestHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Signup(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Authenticate handler
// @Summary Authenticate
// @Description Check credentials and receive a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.AuthRequest true "Auth Request"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} errors.CustomError
// @Router /api/users/authenticate [post]
func (s *RestHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Authenticate(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	if !res.Success {
		writeError(w, errors.SetCustomError(constant.ErrInvalidCredentials))
		return
	}

	writeSuccess(w, res)
}

// ListUsers handler
// @Summary List users
// @Tags Users
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param take query int false "Window size (1..100, default 25)"
// @Success 200 {object} model.PaginatedResponse[model.UserDTO]
// @Security BearerAuth
// @Router /api/users [get]
func (s *RestHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.ListUsers(r.Context(), parseListRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetUser handler
// @Summary Get user by id
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} model.UserDTO
// @Failure 404 {object} errors.CustomError
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (s *RestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	dto, err := s.UserApp.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if dto == nil {
		writeNotFound(w)
		return
	}
	writeSuccess(w, dto)
}

// DeleteUser handler
// @Summary Delete user
// @Description Delete a user; refused while the user still owns categories or placemarks
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} apiResponse
// @Failure 400 {object} errors.BusinessError
// @Security BearerAuth
// @Router /api/users/{id} [delete]
func (s *RestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeSuccess(w, nil)
		return
	}

	if err := s.UserApp.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CreateCategory handler
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body model.CreateCategoryRequest true "Category"
// @Success 200 {object} model.CategoryDTO
// @Failure 400 {object} errors.BusinessError
// @Security BearerAuth
// @Router /api/categories [post]
func (s *RestHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	req.CreatedBy = principal.ID

	res, err := s.CategoryApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListCategories handler
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param take query int false "Window size (1..100, default 25)"
// @Success 200 {object} model.PaginatedResponse[model.CategoryDTO]
// @Security BearerAuth
// @Router /api/categories [get]
func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := s.CategoryApp.List(r.Context(), parseListRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetCategory handler
// @Summary Get category by id
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} model.CategoryDTO
// @Failure 404 {object} errors.CustomError
// @Security BearerAuth
// @Router /api/categories/{id} [get]
func (s *RestHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	dto, err := s.CategoryApp.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if dto == nil {
		writeNotFound(w)
		return
	}
	writeSuccess(w, dto)
}

// DeleteCategory handler
// @Summary Delete category
// @Description Delete a category; refused while placemarks still reference it
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} apiResponse
// @Failure 400 {object} errors.BusinessError
// @Security BearerAuth
// @Router /api/categories/{id} [delete]
func (s *RestHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeSuccess(w, nil)
		return
	}

	if err := s.CategoryApp.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ListCategoryPlaceMarks handler
// @Summary List placemarks of one category
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} model.PaginatedResponse[model.PlaceMarkDTO]
// @Security BearerAuth
// @Router /api/categories/{id}/placemarks [get]
func (s *RestHandler) ListCategoryPlaceMarks(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	res, err := s.PlaceMarkApp.ListByCategory(r.Context(), parseListRequest(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreatePlaceMark handler
// @Summary Create placemark
// @Tags PlaceMarks
// @Accept json
// @Produce json
// @Param request body model.CreatePlaceMarkRequest true "PlaceMark"
// @Success 200 {object} model.PlaceMarkDTO
// @Failure 400 {object} errors.BusinessError
// @Security BearerAuth
// @Router /api/placemarks [post]
func (s *RestHandler) CreatePlaceMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreatePlaceMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	req.CreatedBy = principal.ID

	res, err := s.PlaceMarkApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListPlaceMarks handler
// @Summary List placemarks
// @Tags PlaceMarks
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param take query int false "Window size (1..100, default 25)"
// @Success 200 {object} model.PaginatedResponse[model.PlaceMarkDTO]
// @Security BearerAuth
// @Router /api/placemarks [get]
func (s *RestHandler) ListPlaceMarks(w http.ResponseWriter, r *http.Request) {
	res, err := s.PlaceMarkApp.List(r.Context(), parseListRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetPlaceMark handler
// @Summary Get placemark by id
// @Tags PlaceMarks
// @Produce json
// @Param id path int true "PlaceMark id"
// @Success 200 {object} model.PlaceMarkDTO
// @Failure 404 {object} errors.CustomError
// @Security BearerAuth
// @Router /api/placemarks/{id} [get]
func (s *RestHandler) GetPlaceMark(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	dto, err := s.PlaceMarkApp.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if dto == nil {
		writeNotFound(w)
		return
	}
	writeSuccess(w, dto)
}

// DeletePlaceMark handler
// @Summary Delete placemark
// @Tags PlaceMarks
// @Produce json
// @Param id path int true "PlaceMark id"
// @Success 200 {object} apiResponse
// @Security BearerAuth
// @Router /api/placemarks/{id} [delete]
func (s *RestHandler) DeletePlaceMark(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeSuccess(w, nil)
		return
	}

	principal, _ := utilsContext.GetPrincipal(r.Context())
	var deletedBy uint64
	if principal != nil {
		deletedBy = principal.ID
	}

	if err := s.PlaceMarkApp.Delete(r.Context(), id, deletedBy); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// parseID extracts the {id} path variable. A malformed id is reported as
// "not ok", never as a server failure.
func parseID(r *http.Request) (uint64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func parseListRequest(r *http.Request) model.ListRequest {
	var req model.ListRequest
	q := r.URL.Query()
	if v, err := strconv.ParseUint(q.Get("skip"), 10, 64); err == nil {
		req.Skip = v
	}
	if v, err := strconv.ParseUint(q.Get("take"), 10, 64); err == nil {
		req.Take = v
	}
	return req
}
