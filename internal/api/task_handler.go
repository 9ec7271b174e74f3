package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/VernoB/TodoTask/internal/api/shared"
	"github.com/VernoB/TodoTask/internal/domain"
	"github.com/VernoB/TodoTask/internal/platform/filestore"
	"github.com/VernoB/TodoTask/internal/platform/logger"
	"github.com/VernoB/TodoTask/internal/redact"
	"github.com/VernoB/TodoTask/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskStore      store.TaskStore
	imageStore     filestore.ImageStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	imageStore filestore.ImageStore,
	maxUploadBytes int64,
	log *slog.Logger,
) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskStore:      taskStore,
		imageStore:     imageStore,
		maxUploadBytes: maxUploadBytes,
		logger:         log.With(slog.String("component", "task_handler")),
	}
}

// imageFromForm pulls the "image" file part out of an already-parsed
// multipart form. A missing part or a content type other than png/jpg/jpeg
// both report false; callers treat them identically.
func imageFromForm(r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, nil, false
	}

	if !filestore.IsAcceptedImageType(header.Header.Get("Content-Type")) {
		_ = file.Close()
		return nil, nil, false
	}

	return file, header, true
}

// Create handles POST /task/add. Requests are multipart: form fields title
// and content plus a mandatory image part.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, ok := imageFromForm(r)
	if !ok {
		// Unsupported types are dropped at upload time, so a filtered
		// image and a missing image are the same condition here.
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "No image provided.")
		return
	}
	defer func() { _ = file.Close() }()

	imagePath, err := h.imageStore.Save(
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		if errors.Is(err, filestore.ErrUnsupportedType) {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "No image provided.")
			return
		}
		log.Error("failed to store image", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to store image")
		return
	}

	task, err := domain.NewTask(
		r.FormValue("title"),
		r.FormValue("content"),
		imagePath,
		userID,
	)
	if err != nil {
		h.removeImage(r, imagePath)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		h.removeImage(r, imagePath)
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
}

// Get handles GET /task/{id}. Tasks owned by other users look exactly like
// missing tasks.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForAuthor(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// ListCompleted handles GET /tasks/completed. Supports limit and skip query
// parameters; an empty result is a 200 with an empty list.
func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := parseQueryInt(r, "limit", store.DefaultCompletedLimit)
	skip := parseQueryInt(r, "skip", store.DefaultCompletedSkip)

	tasks, err := h.taskStore.ListCompleted(r.Context(), limit, skip)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list completed tasks")
		return
	}

	if tasks == nil {
		tasks = []*domain.TaskWithAuthor{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// MarkAllCompleted handles PUT /tasks/completed. The bulk update only runs
// when the body carries all_done set to exactly true; anything else is a
// pass-through no-op.
func (h *TaskHandler) MarkAllCompleted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req MarkAllCompletedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if !req.AllDone {
		shared.RespondWithJSON(w, r, http.StatusOK, MarkAllCompletedResponse{
			Message: "Nothing to do",
			Updated: 0,
		})
		return
	}

	updated, err := h.taskStore.MarkAllCompleted(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark tasks completed")
		return
	}

	if updated == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, "no task mark completed")
		return
	}

	log.Info("tasks marked completed",
		slog.String("user_id", userID.String()),
		slog.Int64("updated", updated))

	shared.RespondWithJSON(w, r, http.StatusOK, MarkAllCompletedResponse{
		Message: "Tasks marked completed",
		Updated: updated,
	})
}

// Update handles PUT /task/{taskId}. Accepts a multipart form with title,
// content, completed and an optional replacement image; a JSON body works
// when no image is being replaced. The previous image file is removed only
// after the row update succeeds.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskId", h.logger)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForAuthor(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	title, content, completed, newImagePath, ok := h.parseUpdateRequest(w, r, task)
	if !ok {
		return
	}

	if err := task.Update(title, content, completed); err != nil {
		h.removeImage(r, newImagePath)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	oldImagePath := ""
	if newImagePath != "" && newImagePath != task.ImageURL {
		oldImagePath, err = task.ReplaceImage(newImagePath)
		if err != nil {
			h.removeImage(r, newImagePath)
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
			return
		}
	}

	if err := h.taskStore.Update(r.Context(), task, userID); err != nil {
		h.removeImage(r, newImagePath)
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	// The row now points at the new file, so the old one is unreferenced.
	if oldImagePath != "" && oldImagePath != task.ImageURL {
		h.removeImage(r, oldImagePath)
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Delete handles DELETE /task/{taskId}. A missing task is a 404; a task
// owned by someone else is a 403. The stored image is removed along with
// the row.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskId", h.logger)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	if task.AuthorID != userID {
		shared.RespondWithError(
			w,
			r,
			http.StatusForbidden,
			"You do not have permission to delete this task",
		)
		return
	}

	h.removeImage(r, task.ImageURL)

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Task deleted successfully",
	})
}

// parseUpdateRequest extracts the update fields from either a multipart form
// (optionally carrying a replacement image, which it stores) or a JSON body.
// On failure it writes the error response and returns ok=false.
func (h *TaskHandler) parseUpdateRequest(
	w http.ResponseWriter,
	r *http.Request,
	task *domain.Task,
) (title, content string, completed bool, newImagePath string, ok bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
			return "", "", false, "", false
		}

		title = r.FormValue("title")
		content = r.FormValue("content")
		completed = task.Completed
		if v := r.FormValue("completed"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid completed value")
				return "", "", false, "", false
			}
			completed = parsed
		}

		if file, header, found := imageFromForm(r); found {
			defer func() { _ = file.Close() }()

			path, err := h.imageStore.Save(
				header.Filename,
				header.Header.Get("Content-Type"),
				file,
			)
			if err != nil {
				log.Error("failed to store image", slog.String("error", redact.Error(err)))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Failed to store image",
				)
				return "", "", false, "", false
			}
			newImagePath = path
		}

		return title, content, completed, newImagePath, true
	}

	// Completed is a pointer so an omitted field keeps the stored value,
	// matching the multipart branch.
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Completed *bool  `json:"completed"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return "", "", false, "", false
	}

	completed = task.Completed
	if req.Completed != nil {
		completed = *req.Completed
	}

	return req.Title, req.Content, completed, "", true
}

// removeImage best-effort deletes a stored image file. Missing paths and
// already-removed files are ignored; other failures are logged and the
// request proceeds.
func (h *TaskHandler) removeImage(r *http.Request, path string) {
	if path == "" {
		return
	}

	if err := h.imageStore.Remove(path); err != nil && !errors.Is(err, filestore.ErrNotFound) {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Warn("failed to remove stored image",
			slog.String("path", redact.String(path)),
			slog.String("error", redact.Error(err)))
	}
}

// parseQueryInt reads a non-negative integer query parameter, falling back
// to def when missing or malformed.
func parseQueryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
