package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
	"github.com/conduitapp/conduit/internal/pkg/policy"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
	"github.com/conduitapp/conduit/internal/pkg/viewmodel"
)

// HandleGetProfile returns a user's public profile. A logged-in viewer
// gets a personalized following flag; anonymous viewers always see false.
func HandleGetProfile(c *fiber.Ctx) error {
	viewerID := usercontext.GetUserID(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	target, err := repo.GetByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Profile not found")
		}
		log.Printf("profile lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
	}

	following := false
	if viewerID != 0 {
		following, err = repo.IsFollowing(viewerID, target.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
		}
	}

	return c.JSON(fiber.Map{"profile": viewmodel.NewProfile(target, following)})
}

// HandleFollowUser creates a follow edge from the actor to the target.
// Following an already-followed user is a no-op.
func HandleFollowUser(c *fiber.Ctx) error {
	actorID := usercontext.GetUserID(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	target, err := repo.GetByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
	}

	if !policy.CanFollow(actorID, target.ID) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", apperrors.ErrSelfFollow.Error())
	}

	if err := repo.Follow(actorID, target.ID); err != nil {
		log.Printf("failed to follow user %d -> %d: %v", actorID, target.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to follow user")
	}

	return c.JSON(fiber.Map{"profile": viewmodel.NewProfile(target, true)})
}

// HandleUnfollowUser removes the follow edge; removing a missing edge
// is a no-op.
func HandleUnfollowUser(c *fiber.Ctx) error {
	actorID := usercontext.GetUserID(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	target, err := repo.GetByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load profile")
	}

	if err := repo.Unfollow(actorID, target.ID); err != nil {
		log.Printf("failed to unfollow user %d -> %d: %v", actorID, target.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to unfollow user")
	}

	return c.JSON(fiber.Map{"profile": viewmodel.NewProfile(target, false)})
}
