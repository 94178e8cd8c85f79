package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/cache"
)

// HandleGetTags returns all known tag names. The list is served from
// the Redis cache when warm; any cache failure falls through to the
// datastore, which stays authoritative.
func HandleGetTags(c *fiber.Ctx) error {
	if tags, err := cache.GetTagList(); err == nil {
		return c.JSON(fiber.Map{"tags": tags})
	}

	tags, err := repository.GetGlobalFactory().GetTagRepository().ListNames()
	if err != nil {
		log.Printf("failed to list tags: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list tags")
	}
	if tags == nil {
		tags = []string{}
	}

	if err := cache.SetTagList(tags); err != nil {
		log.Printf("failed to cache tag list: %v", err)
	}

	return c.JSON(fiber.Map{"tags": tags})
}
