package registration

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bissquit/signup-service/internal/pkg/httputil"
	"github.com/bissquit/signup-service/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Handler handles HTTP requests for the registration module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new registration handler.
func NewHandler(service *Service) *Handler {
	v := validator.New()
	// required alone accepts whitespace-only strings.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Handler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes registers registration routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.Register)
	})
}

// PhoneRequest is a phone entry in the registration request body.
type PhoneRequest struct {
	Number      string `json:"number" validate:"required,notblank"`
	CityCode    string `json:"citycode" validate:"required,notblank"`
	CountryCode string `json:"countrycode" validate:"required,notblank"`
}

// RegisterRequest represents the registration request body. Presence and
// non-blankness of fields are checked here, field by field; format rules
// and uniqueness belong to the service.
type RegisterRequest struct {
	Name     string         `json:"name" validate:"required,notblank"`
	Email    string         `json:"email" validate:"required,notblank"`
	Password string         `json:"password" validate:"required,notblank"`
	Phones   []PhoneRequest `json:"phones" validate:"required,min=1,dive"`
}

var registerErrorMappings = []httputil.ErrorMapping{
	{Error: ErrInvalidEmail, Status: http.StatusBadRequest},
	{Error: ErrInvalidPassword, Status: http.StatusBadRequest},
	{Error: ErrEmailExists, Status: http.StatusConflict},
}

// Register handles POST /users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), toRegisterInput(req))
	if err != nil {
		metrics.RecordRegistration(registrationOutcome(err))
		httputil.HandleError(r.Context(), w, err, registerErrorMappings)
		return
	}

	metrics.RecordRegistration(metrics.OutcomeCreated)
	httputil.Success(w, http.StatusCreated, user)
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return metrics.OutcomeInvalidEmail
	case errors.Is(err, ErrInvalidPassword):
		return metrics.OutcomeInvalidPassword
	case errors.Is(err, ErrEmailExists):
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeError
	}
}

func toRegisterInput(req RegisterRequest) RegisterInput {
	phones := make([]PhoneInput, 0, len(req.Phones))
	for _, p := range req.Phones {
		phones = append(phones, PhoneInput{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	return RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phones,
	}
}
