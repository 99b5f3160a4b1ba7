// handlers_convert.go - Upload and conversion job handlers
package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// ConvertHandlerImpl implements the ConvertHandler interface
type ConvertHandlerImpl struct {
	store      storage.Store
	jobs       JobManager
	extensions []string
	layout     bool
}

// NewConvertHandler creates a new convert handler. layout is the default
// layout mode when a request does not choose one.
func NewConvertHandler(store storage.Store, jobs JobManager, extensions []string, layout bool) ConvertHandler {
	if len(extensions) == 0 {
		extensions = batch.DefaultExtensions
	}
	return &ConvertHandlerImpl{
		store:      store,
		jobs:       jobs,
		extensions: extensions,
		layout:     layout,
	}
}

// HandleConvert stores the uploaded display files from the multipart field
// "files" and starts a conversion job. The optional "layout" field enables
// the panel layout pass.
func (h *ConvertHandlerImpl) HandleConvert(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("expected multipart form", err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return NewValidationError("files")
	}

	layout := h.layout
	if v := c.FormValue("layout"); v != "" {
		layout, err = strconv.ParseBool(v)
		if err != nil {
			return NewValidationError("layout")
		}
	}

	for _, fh := range files {
		if !batch.HasExtension(fh.Filename, h.extensions) {
			return NewUnsupportedFileError(fh.Filename)
		}
	}

	inputs := make([]batch.Input, 0, len(files))
	for _, fh := range files {
		in, err := h.saveUpload(fh)
		if err != nil {
			for _, saved := range inputs {
				_ = h.store.Delete(saved.FileID)
			}
			return NewInternalError("failed to store upload", err)
		}
		inputs = append(inputs, in)
	}

	job := h.jobs.StartJob(inputs, layout)
	return c.JSON(http.StatusAccepted, job)
}

func (h *ConvertHandlerImpl) saveUpload(fh *multipart.FileHeader) (batch.Input, error) {
	src, err := fh.Open()
	if err != nil {
		return batch.Input{}, err
	}
	defer src.Close()

	info, err := h.store.Save(fh.Filename, src)
	if err != nil {
		return batch.Input{}, err
	}
	path, err := h.store.GetFilePath(info.ID)
	if err != nil {
		_ = h.store.Delete(info.ID)
		return batch.Input{}, err
	}
	return batch.Input{FileID: info.ID, Name: info.Name, Path: path}, nil
}

// HandleJobStatus returns the current job snapshot
func (h *ConvertHandlerImpl) HandleJobStatus(c echo.Context) error {
	id := c.Param("jobId")
	job, ok := h.jobs.GetJob(id)
	if !ok {
		return NewNotFoundError("job", id)
	}
	return c.JSON(http.StatusOK, job)
}

// HandleDownload streams a converted EDL file belonging to the job
func (h *ConvertHandlerImpl) HandleDownload(c echo.Context) error {
	jobID := c.Param("jobId")
	fileID := c.Param("fileId")

	job, ok := h.jobs.GetJob(jobID)
	if !ok {
		return NewNotFoundError("job", jobID)
	}
	if !jobOwnsOutput(job, fileID) {
		return NewNotFoundError("file", fileID)
	}

	info, err := h.store.Get(fileID)
	if err != nil {
		return NewNotFoundError("file", fileID)
	}
	rc, err := h.store.Open(fileID)
	if err != nil {
		return NewInternalError("failed to open file", err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", info.Name))
	c.Response().Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), rc)
	return err
}

func jobOwnsOutput(job models.ConversionJob, fileID string) bool {
	for _, r := range job.Reports {
		if r.OutputID != "" && r.OutputID == fileID {
			return true
		}
	}
	return false
}

// HandleReportMsgpack returns the job snapshot encoded as MessagePack
func (h *ConvertHandlerImpl) HandleReportMsgpack(c echo.Context) error {
	id := c.Param("jobId")
	job, ok := h.jobs.GetJob(id)
	if !ok {
		return NewNotFoundError("job", id)
	}

	data, err := msgpack.Marshal(&job)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}
