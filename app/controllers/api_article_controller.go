package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
	"github.com/conduitapp/conduit/internal/pkg/cache"
	"github.com/conduitapp/conduit/internal/pkg/policy"
	"github.com/conduitapp/conduit/internal/pkg/slug"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
)

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title" validate:"required,min=1,max=255"`
		Description string   `json:"description" validate:"max=255"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList" validate:"dive,min=1,max=100"`
	} `json:"article"`
}

type updateArticleRequest struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article"`
}

// HandleListArticles returns the filtered, paginated global article
// list, newest first, with the pre-pagination total.
func HandleListArticles(c *fiber.Ctx) error {
	viewerID := usercontext.GetUserID(c)

	filter := repository.ArticleFilter{
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Tag:         c.Query("tag"),
		Limit:       c.QueryInt("limit", 20),
		Offset:      c.QueryInt("offset", 0),
	}

	return listArticles(c, filter, viewerID)
}

// HandleFeed lists articles authored by users the actor follows.
func HandleFeed(c *fiber.Ctx) error {
	viewerID := usercontext.GetUserID(c)

	filter := repository.ArticleFilter{
		FollowedBy: viewerID,
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}

	return listArticles(c, filter, viewerID)
}

func listArticles(c *fiber.Ctx, filter repository.ArticleFilter, viewerID uint) error {
	repo := repository.GetGlobalFactory().GetArticleRepository()

	articles, total, err := repo.List(filter)
	if err != nil {
		log.Printf("article listing failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list articles")
	}

	views, err := articleViews(articles, viewerID)
	if err != nil {
		log.Printf("failed to compose article views: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list articles")
	}

	return c.JSON(fiber.Map{"articles": views, "articlesCount": total})
}

// HandleGetArticle returns a single article by slug.
func HandleGetArticle(c *fiber.Ctx) error {
	viewerID := usercontext.GetUserID(c)

	repo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := repo.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	view, err := articleView(article, viewerID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	return c.JSON(fiber.Map{"article": view})
}

// HandleCreateArticle creates an article for the authenticated actor.
func HandleCreateArticle(c *fiber.Ctx) error {
	actor := usercontext.GetUserContext(c)

	var req createArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	article := &models.Article{
		Slug:        slug.Generate(req.Article.Title),
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		UserID:      actor.UserID,
	}

	repo := repository.GetGlobalFactory().GetArticleRepository()
	if err := repo.Create(article, req.Article.TagList); err != nil {
		log.Printf("failed to create article: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create article")
	}
	if len(req.Article.TagList) > 0 {
		cache.InvalidateTagList()
	}

	created, err := repo.GetBySlug(article.Slug)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}
	view, err := articleView(created, actor.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"article": view})
}

// HandleUpdateArticle applies a partial update. A title change always
// regenerates the slug with a fresh random suffix.
func HandleUpdateArticle(c *fiber.Ctx) error {
	actor := usercontext.GetUserContext(c)

	var req updateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}

	repo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := repo.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	if !policy.CanUpdateArticle(actor.UserID, article) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", apperrors.ErrNotAuthor.Error())
	}

	if req.Article.Title != nil {
		article.Title = *req.Article.Title
		article.Slug = slug.Generate(article.Title)
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.Body != nil {
		article.Body = *req.Article.Body
	}

	// scalar fields and the tag set commit together or not at all
	if req.Article.TagList != nil {
		if err := repo.UpdateWithTags(article, *req.Article.TagList); err != nil {
			log.Printf("failed to update article %d: %v", article.ID, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update article")
		}
		cache.InvalidateTagList()
	} else if err := repo.Update(article); err != nil {
		log.Printf("failed to update article %d: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update article")
	}

	view, err := articleView(article, actor.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	return c.JSON(fiber.Map{"article": view})
}

// HandleDeleteArticle deletes an article after the ownership check and,
// when enabled, the retention policy. Failure leaves storage untouched.
func HandleDeleteArticle(c *fiber.Ctx) error {
	actor := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := repo.GetBySlugWithRelations(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	retention := policy.NewRetentionPolicyFromEnv()
	tagCounts := map[uint]int64{}
	if retention.Enabled && len(article.Tags) > 0 {
		tagIDs := make([]uint, 0, len(article.Tags))
		for _, t := range article.Tags {
			tagIDs = append(tagIDs, t.ID)
		}
		tagCounts, err = repo.TagArticleCounts(tagIDs)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
		}
	}

	if err := retention.AuthorizeDelete(actor.UserID, article, tagCounts, time.Now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotAuthor):
			return jsonError(c, fiber.StatusForbidden, "forbidden", err.Error())
		case errors.Is(err, apperrors.ErrRetentionPolicy):
			return jsonError(c, fiber.StatusForbidden, "retention_policy", err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete article")
		}
	}

	if err := repo.Delete(article.ID); err != nil {
		log.Printf("failed to delete article %d: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete article")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleFavoriteArticle marks the article as favorited by the actor.
// Favoriting twice yields the same state as favoriting once.
func HandleFavoriteArticle(c *fiber.Ctx) error {
	return setFavorite(c, true)
}

// HandleUnfavoriteArticle removes the actor's favorite mark.
func HandleUnfavoriteArticle(c *fiber.Ctx) error {
	return setFavorite(c, false)
}

func setFavorite(c *fiber.Ctx, favorite bool) error {
	actor := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := repo.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	if favorite {
		err = repo.Favorite(article.ID, actor.UserID)
	} else {
		err = repo.Unfavorite(article.ID, actor.UserID)
	}
	if err != nil {
		log.Printf("failed to toggle favorite on article %d: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update favorite")
	}

	view, err := articleView(article, actor.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	return c.JSON(fiber.Map{"article": view})
}
