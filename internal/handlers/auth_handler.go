package handlers

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/services"
	"github.com/gramseva/portal/internal/storage"
	"github.com/gramseva/portal/internal/utils"
)

type AuthHandler struct {
	auth     *services.AuthService
	store    storage.Store
	janitor  *utils.Janitor
	validate *validator.Validate
}

func NewAuthHandler(auth *services.AuthService, store storage.Store, janitor *utils.Janitor) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		store:    store,
		janitor:  janitor,
		validate: validator.New(),
	}
}

type registerForm struct {
	Name        string `validate:"required"`
	VillageName string `validate:"required"`
	Mobile      string `validate:"required"`
	Email       string `validate:"required,email"`
	Gender      string `validate:"required,oneof=Male Female Other"`
	Age         string `validate:"required"`
	Password    string `validate:"required,min=6"`
	AadhaarNo   string
}

func readRegisterForm(c *fiber.Ctx) registerForm {
	return registerForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		VillageName: c.FormValue("villageName"),
		Mobile:      strings.TrimSpace(c.FormValue("mobile")),
		Email:       c.FormValue("email"),
		Gender:      c.FormValue("gender"),
		Age:         c.FormValue("age"),
		Password:    c.FormValue("password"),
		AadhaarNo:   strings.TrimSpace(c.FormValue("aadhaarNo")),
	}
}

// RegisterSarpanch handles POST /api/auth/register/sarpanch (multipart).
// The profile photo is mandatory and is deleted again if anything after the
// upload fails, so no orphaned files remain.
func (h *AuthHandler) RegisterSarpanch(c *fiber.Ctx) error {
	return h.register(c, true)
}

// RegisterPeople handles POST /api/auth/register/people (multipart).
func (h *AuthHandler) RegisterPeople(c *fiber.Ctx) error {
	return h.register(c, false)
}

func (h *AuthHandler) register(c *fiber.Ctx, sarpanch bool) error {
	form := readRegisterForm(c)
	if err := h.validate.Struct(form); err != nil {
		return fail(c, validationError(err))
	}
	if !sarpanch && form.AadhaarNo == "" {
		return fail(c, apperr.InvalidInput("Field 'AadhaarNo' is required"))
	}

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	if err != nil {
		return fail(c, apperr.InvalidInput("Age must be a number"))
	}

	photo, err := c.FormFile("profilePhoto")
	if err != nil {
		return fail(c, apperr.InvalidInput("Profile photo is required"))
	}
	photoPath, err := h.store.Save(c.Context(), storage.KindProfile, photo)
	if err != nil {
		return fail(c, err)
	}

	in := services.RegisterInput{
		Name:        form.Name,
		VillageName: form.VillageName,
		Mobile:      form.Mobile,
		Email:       form.Email,
		Gender:      form.Gender,
		Age:         age,
		Password:    form.Password,
		AadhaarNo:   form.AadhaarNo,
		PhotoPath:   photoPath,
	}

	var (
		user  interface{}
		token string
	)
	if sarpanch {
		user, token, err = h.auth.RegisterSarpanch(c.Context(), in)
	} else {
		user, token, err = h.auth.RegisterPeople(c.Context(), in)
	}
	if err != nil {
		// The photo was accepted before the failure; compensate.
		h.janitor.Discard(photoPath)
		return fail(c, err)
	}

	return ok(c, fiber.StatusCreated, fiber.Map{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, validationError(err))
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"token": token, "user": user})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fail(c, apperr.Unauthenticated("Not authorized, no token"))
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword handles PUT /api/profile/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fail(c, apperr.Unauthenticated("Not authorized, no token"))
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, validationError(err))
	}

	if err := h.auth.ChangePassword(c.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"message": "Password changed successfully"})
}
