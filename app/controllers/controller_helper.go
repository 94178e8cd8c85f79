package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/conduitapp/conduit/app/models"
	"github.com/conduitapp/conduit/app/repository"
	"github.com/conduitapp/conduit/internal/pkg/viewmodel"
)

var validate = validator.New()

// jsonError writes the shared error envelope used by all API handlers.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// authorProfile resolves the viewer -> author follow edge and composes
// the author's profile view. Anonymous viewers never follow anyone.
func authorProfile(author *models.User, viewerID uint) (viewmodel.Profile, error) {
	following := false
	if viewerID != 0 && viewerID != author.ID {
		var err error
		following, err = repository.GetGlobalFactory().GetUserRepository().IsFollowing(viewerID, author.ID)
		if err != nil {
			return viewmodel.Profile{}, err
		}
	}
	return viewmodel.NewProfile(author, following), nil
}

// articleView composes a single article response view. The article must
// carry a preloaded Author.
func articleView(article *models.Article, viewerID uint) (viewmodel.Article, error) {
	articles := repository.GetGlobalFactory().GetArticleRepository()

	tagNames, err := articles.TagNames([]uint{article.ID})
	if err != nil {
		return viewmodel.Article{}, err
	}

	favorited := false
	if viewerID != 0 {
		favorited, err = articles.IsFavorited(article.ID, viewerID)
		if err != nil {
			return viewmodel.Article{}, err
		}
	}

	counts, err := articles.FavoritesCounts([]uint{article.ID})
	if err != nil {
		return viewmodel.Article{}, err
	}

	author, err := authorProfile(&article.Author, viewerID)
	if err != nil {
		return viewmodel.Article{}, err
	}

	return viewmodel.NewArticle(article, tagNames[article.ID], favorited, counts[article.ID], author), nil
}

// articleViews composes listing views with batched relation lookups so
// a page of articles costs a fixed number of queries.
func articleViews(articleList []models.Article, viewerID uint) ([]viewmodel.Article, error) {
	views := make([]viewmodel.Article, 0, len(articleList))
	if len(articleList) == 0 {
		return views, nil
	}

	articles := repository.GetGlobalFactory().GetArticleRepository()
	users := repository.GetGlobalFactory().GetUserRepository()

	articleIDs := make([]uint, 0, len(articleList))
	authorIDs := make([]uint, 0, len(articleList))
	for _, a := range articleList {
		articleIDs = append(articleIDs, a.ID)
		authorIDs = append(authorIDs, a.UserID)
	}

	tagNames, err := articles.TagNames(articleIDs)
	if err != nil {
		return nil, err
	}
	favoritedSet, err := articles.FavoritedSet(viewerID, articleIDs)
	if err != nil {
		return nil, err
	}
	counts, err := articles.FavoritesCounts(articleIDs)
	if err != nil {
		return nil, err
	}
	followingSet, err := users.FollowingSet(viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range articleList {
		a := &articleList[i]
		author := viewmodel.NewProfile(&a.Author, followingSet[a.UserID])
		views = append(views, viewmodel.NewArticle(a, tagNames[a.ID], favoritedSet[a.ID], counts[a.ID], author))
	}
	return views, nil
}
