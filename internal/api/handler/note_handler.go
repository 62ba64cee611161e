package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/canvasnotes/notes-api/internal/api/metrics"
	"github.com/canvasnotes/notes-api/internal/core/domain"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations. Every route sits
// behind the Auth middleware, so handlers only deal with verified user ids.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /api/notes.
//
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteListResponse(notes))
}

// Create handles POST /api/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note fields; position/size are optional {x,y}/{width,height} objects"
// @Success      201   {object}  createNoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No data provided")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrTitleRequired
	}

	note, err := h.service.Create(c.Request().Context(), ports.CreateNoteInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Position: positionFromRequest(req.Position),
		Size:     sizeFromRequest(req.Size),
	})
	if err != nil {
		return err
	}

	metrics.NotesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createNoteResponse{
		Message: "Note created",
		ID:      note.ID,
		Note:    toNoteResponse(note),
	})
}

// Update handles PUT /api/notes/:id.
//
// @Summary      Replace a note's fields
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Fields to replace; absent fields keep their stored value"
// @Success      200   {object}  updateNoteResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	noteID, err := notePathID(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No data provided")
	}

	note, err := h.service.Update(c.Request().Context(), ports.UpdateNoteInput{
		UserID:   userID,
		NoteID:   noteID,
		Title:    req.Title,
		Content:  req.Content,
		Position: positionFromRequest(req.Position),
		Size:     sizeFromRequest(req.Size),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateNoteResponse{
		Message: "Note updated",
		Note:    toNoteResponse(note),
	})
}

// Patch handles PATCH /api/notes/:id — layout-only updates.
//
// @Summary      Move or resize a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Note id"
// @Param        body  body      patchNoteRequest  true  "position and/or size"
// @Success      200   {object}  patchNoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [patch]
func (h *NoteHandler) Patch(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	noteID, err := notePathID(c)
	if err != nil {
		return err
	}

	var req patchNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No data provided")
	}

	note, err := h.service.Patch(c.Request().Context(), ports.PatchNoteInput{
		UserID:   userID,
		NoteID:   noteID,
		Position: positionFromRequest(req.Position),
		Size:     sizeFromRequest(req.Size),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patchNoteResponse{
		Message:  "Note updated",
		Position: note.Position,
		Size:     note.Size,
	})
}

// Delete handles DELETE /api/notes/:id.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	noteID, err := notePathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, noteID); err != nil {
		return err
	}

	metrics.NotesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Note deleted"})
}

// notePathID parses the :id segment. A non-numeric id can never exist, so it
// reports not-found rather than a bind error.
func notePathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNoteNotFound
	}
	return id, nil
}
