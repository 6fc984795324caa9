package transport

import (
	"embed"
	stderrors "errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/core/form"
	"github.com/placemarkhq/placemark/model"
	utilsContext "github.com/placemarkhq/placemark/utils/context"
	"github.com/placemarkhq/placemark/utils/errors"
	"github.com/placemarkhq/placemark/utils/logger"
	"go.uber.org/zap"
)

//go:embed views/*.html
var viewsFS embed.FS

var views = template.Must(template.ParseFS(viewsFS, "views/*.html"))

// namedField pairs a field with its name so templates can iterate in the
// definition's declared order.
type namedField struct {
	Name  string
	Field *model.FormField
}

type pageData struct {
	Title      string
	Principal  *model.Principal
	Message    string
	FormAction string
	FormMethod string
	FormFields []namedField

	Category   *model.CategoryDTO
	Categories *model.PaginatedResponse[model.CategoryDTO]
	PlaceMarks *model.PaginatedResponse[model.PlaceMarkDTO]
	Skip       uint64
	Take       uint64
}

func (s *RestHandler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("[render] template", zap.String("view", name), zap.String("error", err.Error()))
	}
}

func orderedFields(def *form.Definition, f *model.Form) []namedField {
	out := make([]namedField, 0, len(def.Order))
	for _, name := range def.Order {
		if field, ok := f.Fields[name]; ok {
			out = append(out, namedField{Name: name, Field: field})
		}
	}
	return out
}

// formValues flattens a submitted POST form into the value map the schema
// validates. Absent inputs stay absent, they are not empty strings.
func formValues(r *http.Request) map[string]any {
	_ = r.ParseForm()
	values := make(map[string]any, len(r.PostForm))
	for name, vs := range r.PostForm {
		if len(vs) > 0 {
			values[name] = vs[0]
		}
	}
	return values
}

func (s *RestHandler) Index(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", pageData{Title: "Placemark"})
}

func (s *RestHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	f, err := s.forms.Signup.Empty(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "signup.html", pageData{
		Title:      "Sign up",
		FormAction: s.forms.Signup.Action,
		FormMethod: s.forms.Signup.Method,
		FormFields: orderedFields(s.forms.Signup, f),
	})
}

func (s *RestHandler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := formValues(r)

	if verrs := s.forms.SignupSchema.Validate(values); len(verrs) > 0 {
		s.renderSignup(w, r, values, verrs.ByProperty())
		return
	}

	req := &model.SignupRequest{
		FirstName: stringField(values, "firstName"),
		LastName:  stringField(values, "lastName"),
		Email:     stringField(values, "email"),
		Password:  stringField(values, "password"),
	}
	if _, err := s.UserApp.Signup(ctx, req); err != nil {
		s.renderSignup(w, r, values, map[string][]string{"email": {err.Error()}})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *RestHandler) renderSignup(w http.ResponseWriter, r *http.Request, values map[string]any, errsByField map[string][]string) {
	f, err := s.forms.Signup.Bind(r.Context(), values, errsByField, false)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "signup.html", pageData{
		Title:      "Sign up",
		FormAction: s.forms.Signup.Action,
		FormMethod: s.forms.Signup.Method,
		FormFields: orderedFields(s.forms.Signup, f),
	})
}

func (s *RestHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	f, err := s.forms.Login.Empty(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "login.html", pageData{
		Title:      "Log in",
		FormAction: s.forms.Login.Action,
		FormMethod: s.forms.Login.Method,
		FormFields: orderedFields(s.forms.Login, f),
	})
}

func (s *RestHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := formValues(r)

	if verrs := s.forms.LoginSchema.Validate(values); len(verrs) > 0 {
		s.renderLogin(w, r, values, verrs.ByProperty())
		return
	}

	res, err := s.UserApp.Authenticate(ctx, &model.AuthRequest{
		Email:    stringField(values, "email"),
		Password: stringField(values, "password"),
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !res.Success {
		msg := constant.ErrorTypeMessage[constant.ErrInvalidCredentials]
		s.renderLogin(w, r, values, map[string][]string{"email": {msg}})
		return
	}

	setSessionCookie(w, s.cfg, res.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *RestHandler) renderLogin(w http.ResponseWriter, r *http.Request, values map[string]any, errsByField map[string][]string) {
	f, err := s.forms.Login.Bind(r.Context(), values, errsByField, false)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "login.html", pageData{
		Title:      "Log in",
		FormAction: s.forms.Login.Action,
		FormMethod: s.forms.Login.Method,
		FormFields: orderedFields(s.forms.Login, f),
	})
}

func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.Auth.CookieName); err == nil && cookie.Value != "" {
		_ = s.UserApp.Logout(r.Context(), cookie.Value)
	}
	clearSessionCookie(w, s.cfg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *RestHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := utilsContext.GetPrincipal(ctx)

	listReq := parseListRequest(r).Normalize()
	categories, err := s.CategoryApp.List(ctx, listReq)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	f, err := s.forms.Category.Empty(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "dashboard.html", pageData{
		Title:      "Dashboard",
		Principal:  principal,
		Message:    r.URL.Query().Get("err"),
		FormAction: s.forms.Category.Action,
		FormMethod: s.forms.Category.Method,
		FormFields: orderedFields(s.forms.Category, f),
		Categories: categories,
		Skip:       listReq.Skip,
		Take:       listReq.Take,
	})
}

func (s *RestHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := utilsContext.GetPrincipal(ctx)
	values := formValues(r)

	if verrs := s.forms.CategorySchema.Validate(values); len(verrs) > 0 {
		http.Redirect(w, r, "/dashboard?err="+url.QueryEscape(verrs[0].Property+" "+verrs[0].Message), http.StatusSeeOther)
		return
	}

	req := &model.CreateCategoryRequest{
		Designation: stringField(values, "designation"),
		CreatedBy:   principal.ID,
	}
	if _, err := s.CategoryApp.Create(ctx, req); err != nil {
		http.Redirect(w, r, "/dashboard?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *RestHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if ok {
		if err := s.CategoryApp.Delete(r.Context(), id); err != nil {
			http.Redirect(w, r, "/dashboard?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *RestHandler) CategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := utilsContext.GetPrincipal(ctx)

	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	categoryDTO, err := s.CategoryApp.Get(ctx, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if categoryDTO == nil {
		http.NotFound(w, r)
		return
	}

	listReq := parseListRequest(r).Normalize()
	placemarks, err := s.PlaceMarkApp.ListByCategory(ctx, listReq, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	f, err := s.forms.PlaceMark.Empty(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "category.html", pageData{
		Title:      categoryDTO.Designation,
		Principal:  principal,
		Message:    r.URL.Query().Get("err"),
		FormAction: "/category/" + strconv.FormatUint(id, 10) + "/placemark",
		FormMethod: s.forms.PlaceMark.Method,
		FormFields: orderedFields(s.forms.PlaceMark, f),
		Category:   categoryDTO,
		PlaceMarks: placemarks,
		Skip:       listReq.Skip,
		Take:       listReq.Take,
	})
}

func (s *RestHandler) AddPlaceMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := utilsContext.GetPrincipal(ctx)

	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := "/category/" + strconv.FormatUint(id, 10)

	values := formValues(r)
	values["category"] = strconv.FormatUint(id, 10)

	verrs := s.forms.PlaceMarkSchema.Validate(values)

	// Second phase for the loader-backed select: resolve the current
	// options and re-check membership.
	if loader := s.forms.PlaceMark.Fields["category"].LoadOptions; loader != nil {
		options, err := loader(ctx)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if fe := s.forms.PlaceMarkSchema.CheckMembership("category", values["category"], options); fe != nil {
			verrs = append(verrs, *fe)
		}
	}
	if len(verrs) > 0 {
		http.Redirect(w, r, back+"?err="+url.QueryEscape(verrs[0].Property+" "+verrs[0].Message), http.StatusSeeOther)
		return
	}

	latitude, _ := strconv.ParseFloat(stringField(values, "latitude"), 64)
	longitude, _ := strconv.ParseFloat(stringField(values, "longitude"), 64)

	req := &model.CreatePlaceMarkRequest{
		Designation: stringField(values, "designation"),
		Description: stringField(values, "description"),
		Latitude:    latitude,
		Longitude:   longitude,
		CategoryID:  id,
		CreatedBy:   principal.ID,
	}
	if _, err := s.PlaceMarkApp.Create(ctx, req); err != nil {
		var be errors.BusinessError
		if stderrors.As(err, &be) {
			http.Redirect(w, r, back+"?err="+url.QueryEscape(be.Error()), http.StatusSeeOther)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *RestHandler) RemovePlaceMark(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	back := r.Header.Get("Referer")
	if back == "" {
		back = "/dashboard"
	}
	if ok {
		principal, _ := utilsContext.GetPrincipal(r.Context())
		var deletedBy uint64
		if principal != nil {
			deletedBy = principal.ID
		}
		if err := s.PlaceMarkApp.Delete(r.Context(), id, deletedBy); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func stringField(values map[string]any, name string) string {
	if v, ok := values[name].(string); ok {
		return v
	}
	return ""
}
