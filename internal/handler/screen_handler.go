package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/model"
	"vscreens/internal/service"
)

// ScreenHandler handles screen endpoints. Every route requires a credential.
type ScreenHandler struct {
	screenService service.ScreenService
}

// NewScreenHandler creates a new screen handler.
func NewScreenHandler(screenService service.ScreenService) *ScreenHandler {
	return &ScreenHandler{screenService: screenService}
}

// TokenRequest is the credential envelope shared by every protected request.
type TokenRequest struct {
	Token string `json:"token"`
}

// CreateScreenRequest represents a screen creation request.
type CreateScreenRequest struct {
	TokenRequest
	Name    string `json:"name" validate:"required"`
	Content string `json:"content"`
}

// ScreenIDRequest addresses a single screen.
type ScreenIDRequest struct {
	TokenRequest
	ScreenID uint `json:"screen_id" validate:"required"`
}

// UpdateScreenRequest represents a partial screen update. Absent fields are left unchanged.
type UpdateScreenRequest struct {
	TokenRequest
	ScreenID uint    `json:"screen_id" validate:"required"`
	Name     *string `json:"name"`
	Content  *string `json:"content"`
}

// UpdateContentRequest replaces the content of a screen.
type UpdateContentRequest struct {
	TokenRequest
	ScreenID uint    `json:"screen_id" validate:"required"`
	Content  *string `json:"content"`
}

// ContentResponse carries a screen's content.
type ContentResponse struct {
	Content string `json:"content"`
}

// ClearResponse reports how many screens were deleted.
type ClearResponse struct {
	Msg     string `json:"msg"`
	Deleted int64  `json:"deleted"`
}

// List godoc
// @Summary List the caller's screens
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body TokenRequest true "Credential"
// @Success 200 {array} model.ScreenSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /screens [post]
func (h *ScreenHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	screens, err := h.screenService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, screens)
}

// Create godoc
// @Summary Create a screen
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body CreateScreenRequest true "Screen"
// @Success 201 {object} model.Screen
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /screens/create [post]
func (h *ScreenHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreateScreenRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen name is required")
	}

	screen, err := h.screenService.Create(c.Request().Context(), userID, req.Name, req.Content)
	if err != nil {
		if err == apperrors.ErrValidation {
			return badRequest("Screen name is required")
		}
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, screen)
}

// Get godoc
// @Summary Get a screen
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body ScreenIDRequest true "Screen id"
// @Success 200 {object} model.Screen
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /screens/get [post]
func (h *ScreenHandler) Get(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ScreenIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen ID is required")
	}

	screen, err := h.screenService.Get(c.Request().Context(), req.ScreenID, userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, screen)
}

// Update godoc
// @Summary Update a screen's name and/or content
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body UpdateScreenRequest true "Fields to change"
// @Success 200 {object} model.Screen
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /screens/update [post]
func (h *ScreenHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateScreenRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen ID is required")
	}

	patch := model.ScreenPatch{
		Name:    model.FromPtr(req.Name),
		Content: model.FromPtr(req.Content),
	}
	if patch.IsEmpty() {
		return badRequest("Name or content is required")
	}

	screen, err := h.screenService.Update(c.Request().Context(), req.ScreenID, userID, patch)
	if err != nil {
		if err == apperrors.ErrValidation {
			return badRequest("Screen name must not be empty")
		}
		return respondError(err)
	}
	return c.JSON(http.StatusOK, screen)
}

// Delete godoc
// @Summary Delete a screen
// @Description Succeeds whether or not the screen exists.
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body ScreenIDRequest true "Screen id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /screens/delete [post]
func (h *ScreenHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ScreenIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen ID is required")
	}

	if err := h.screenService.Delete(c.Request().Context(), req.ScreenID, userID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "Screen deleted"})
}

// GetContent godoc
// @Summary Get a screen's content
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body ScreenIDRequest true "Screen id"
// @Success 200 {object} ContentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /screens/content/get [post]
func (h *ScreenHandler) GetContent(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ScreenIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen ID is required")
	}

	content, err := h.screenService.GetContent(c.Request().Context(), req.ScreenID, userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ContentResponse{Content: content})
}

// UpdateContent godoc
// @Summary Replace a screen's content
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body UpdateContentRequest true "New content"
// @Success 200 {object} model.Screen
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /screens/content/update [post]
func (h *ScreenHandler) UpdateContent(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateContentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Screen ID is required")
	}
	if req.Content == nil {
		return badRequest("Content is required")
	}

	screen, err := h.screenService.UpdateContent(c.Request().Context(), req.ScreenID, userID, *req.Content)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, screen)
}

// Clear godoc
// @Summary Delete all of the caller's screens
// @Tags screens
// @Accept json
// @Produce json
// @Description The credential is read from the JSON body field "token"; "Authorization: Bearer <token>" is accepted as a fallback.
// @Security BearerAuth
// @Param request body TokenRequest true "Credential"
// @Success 200 {object} ClearResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /screens/clear [post]
func (h *ScreenHandler) Clear(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	n, err := h.screenService.Clear(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Msg:  "No screens to clear",
			Kind: apperrors.KindNotFound,
		})
	}
	return c.JSON(http.StatusOK, ClearResponse{Msg: "Screens cleared", Deleted: n})
}
