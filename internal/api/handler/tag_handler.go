package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

type TagHandler struct {
	tags ports.TagService
}

func NewTagHandler(tags ports.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns the caller's tags, newest name first.
//
// @Summary      List own tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   tagResponse
// @Failure      401  {object}  errorResponse
// @Router       /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	tags, err := h.tags.ListTags(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTagResponses(tags))
}

// Create adds a tag owned by the caller.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTagRequest  true  "Tag"
// @Success      201   {object}  tagResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.tags.CreateTag(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tagResponse{ID: tag.ID, Name: tag.Name})
}
