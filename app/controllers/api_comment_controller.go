package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/apperrors"
	"github.com/conduitapp/conduit/internal/pkg/policy"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
	"github.com/conduitapp/conduit/internal/pkg/viewmodel"
)

type createCommentRequest struct {
	Comment struct {
		Body string `json:"body" validate:"required,min=1"`
	} `json:"comment"`
}

// HandleListComments returns an article's comments in insertion order.
func HandleListComments(c *fiber.Ctx) error {
	viewerID := usercontext.GetUserID(c)

	articles := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articles.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	comments, err := repository.GetGlobalFactory().GetCommentRepository().ListByArticle(article.ID)
	if err != nil {
		log.Printf("failed to list comments for article %d: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list comments")
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.UserID)
	}
	followingSet, err := repository.GetGlobalFactory().GetUserRepository().FollowingSet(viewerID, authorIDs)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list comments")
	}

	views := make([]viewmodel.Comment, 0, len(comments))
	for i := range comments {
		comment := &comments[i]
		author := viewmodel.NewProfile(&comment.Author, followingSet[comment.UserID])
		views = append(views, viewmodel.NewComment(comment, author))
	}

	return c.JSON(fiber.Map{"comments": views})
}

// HandleCreateComment attaches a new comment to an article.
func HandleCreateComment(c *fiber.Ctx) error {
	actor := usercontext.GetUserContext(c)

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	articles := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articles.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	comment := &models.Comment{
		UserID:    actor.UserID,
		ArticleID: article.ID,
		Body:      req.Comment.Body,
	}

	commentRepo := repository.GetGlobalFactory().GetCommentRepository()
	if err := commentRepo.Create(comment); err != nil {
		log.Printf("failed to create comment on article %d: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create comment")
	}

	created, err := commentRepo.GetByID(comment.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load comment")
	}

	author := viewmodel.NewProfile(&created.Author, false)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": viewmodel.NewComment(created, author)})
}

// HandleDeleteComment removes a comment. Only the comment author may;
// owning the article grants no override.
func HandleDeleteComment(c *fiber.Ctx) error {
	actor := usercontext.GetUserContext(c)

	commentID, err := c.ParamsInt("id")
	if err != nil || commentID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid comment id")
	}

	articles := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articles.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Article not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load article")
	}

	commentRepo := repository.GetGlobalFactory().GetCommentRepository()
	comment, err := commentRepo.GetByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Comment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load comment")
	}
	if comment.ArticleID != article.ID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Comment not found")
	}

	if !policy.CanDeleteComment(actor.UserID, comment) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", apperrors.ErrNotAuthor.Error())
	}

	if err := commentRepo.Delete(comment.ID); err != nil {
		log.Printf("failed to delete comment %d: %v", comment.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete comment")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
