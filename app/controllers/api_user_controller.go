package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
	"github.com/conduitapp/conduit/internal/pkg/token"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
	"github.com/conduitapp/conduit/internal/pkg/viewmodel"
)

type registerRequest struct {
	User struct {
		Username string `json:"username" validate:"required,min=3,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	} `json:"user"`
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

// HandleRegister creates a new user account and returns it with a token.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	user, err := models.CreateUser(req.User.Username, req.User.Email, req.User.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if err := repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "conflict", apperrors.ErrDuplicateUser.Error())
		}
		log.Printf("failed to create user: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create user")
	}

	jwt, err := token.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("failed to issue token for user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": viewmodel.NewUser(user, jwt)})
}

// HandleLogin authenticates a user by email and password. An unknown
// email and a wrong password produce the same response, so the endpoint
// cannot be used to enumerate accounts.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.User.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized", apperrors.ErrInvalidCredentials.Error())
		}
		log.Printf("login lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Login failed")
	}
	if !user.CheckPassword(req.User.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", apperrors.ErrInvalidCredentials.Error())
	}

	jwt, err := token.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("failed to issue token for user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return c.JSON(fiber.Map{"user": viewmodel.NewUser(user, jwt)})
}

// HandleGetCurrentUser returns the authenticated user with a fresh token.
func HandleGetCurrentUser(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	jwt, err := token.Issue(user.ID, user.Username)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return c.JSON(fiber.Map{"user": viewmodel.NewUser(user, jwt)})
}

// HandleUpdateCurrentUser applies a partial update to the authenticated user.
func HandleUpdateCurrentUser(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	if req.User.Username != nil {
		user.Username = *req.User.Username
	}
	if req.User.Email != nil {
		user.Email = *req.User.Email
	}
	if req.User.Bio != nil {
		user.Bio = *req.User.Bio
	}
	if req.User.Image != nil {
		user.Image = *req.User.Image
	}
	if req.User.Password != nil {
		if err := user.SetPassword(*req.User.Password); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update password")
		}
	}

	if err := user.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "conflict", apperrors.ErrDuplicateUser.Error())
		}
		log.Printf("failed to update user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update user")
	}

	jwt, err := token.Issue(user.ID, user.Username)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return c.JSON(fiber.Map{"user": viewmodel.NewUser(user, jwt)})
}
