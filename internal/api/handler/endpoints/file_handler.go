package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/internal/api/storage"
	"api/pkg"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type fileHandler struct {
	fileService *service.FileService
	config      api.AppConfig
	logger      zerolog.Logger
}

func newFileHandler(store *storage.ObjectStore) *fileHandler {
	return &fileHandler{
		fileService: service.NewFileService(store),
		config:      api.GetConfig(),
		logger:      api.Logger,
	}
}

func FileHandler(router *graceful.Graceful, store *storage.ObjectStore) {
	h := newFileHandler(store)

	jobs := router.Group("/api/v1/jobs")
	jobs.Use(middleware.AuthMiddleware(h.config))
	{
		jobs.GET("/:id/files", h.listForJob)
		jobs.POST("/:id/files", h.upload)
	}

	files := router.Group("/api/v1/files")
	files.Use(middleware.AuthMiddleware(h.config))
	{
		files.GET("/:id", h.getByID)
		files.GET("/:id/download", h.download)
		files.PATCH("/:id", h.update)
		files.DELETE("/:id", h.delete)

		files.GET("/:id/versions", h.listVersions)
		files.POST("/:id/versions", h.addVersion)
		files.GET("/:id/versions/:number/download", h.downloadVersion)
	}
}

func (slf *fileHandler) listForJob(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	files, err := slf.fileService.ListForJob(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobFileResponses(files))
}

func readUpload(fh *multipart.FileHeader) (service.UploadInput, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadInput{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.UploadInput{}, err
	}

	return service.UploadInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// upload accepts a multipart batch under the "files" field. Files are
// attempted independently; one failure never rolls back the others, and the
// response reports each file on its own.
func (slf *fileHandler) upload(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}
	jobID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Multipart form required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "At least one file is required"})
		return
	}

	isPresentation := c.PostForm("isPresentation") == "true"

	results := make([]response.UploadResult, 0, len(headers))
	failed := 0

	for _, fh := range headers {
		in, err := readUpload(fh)
		if err != nil {
			slf.logger.Error().Err(err).Str("fileName", fh.Filename).Msg("Error reading upload")
			results = append(results, response.UploadResult{FileName: fh.Filename, Error: err.Error()})
			failed++
			continue
		}
		in.IsPresentation = isPresentation

		file, err := slf.fileService.Upload(c.Request.Context(), caller, jobID, in)
		if err != nil {
			slf.logger.Error().Err(err).Str("fileName", fh.Filename).Msg("Error uploading file")
			results = append(results, response.UploadResult{FileName: fh.Filename, Error: err.Error()})
			failed++
			continue
		}

		resp := mapper.ToJobFileResponse(*file)
		results = append(results, response.UploadResult{FileName: fh.Filename, File: &resp})
	}

	status := http.StatusCreated
	if failed == len(headers) {
		status = http.StatusBadRequest
	} else if failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, results)
}

func (slf *fileHandler) getByID(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	file, err := slf.fileService.GetByID(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobFileResponse(*file))
}

func (slf *fileHandler) download(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	file, data, err := slf.fileService.Download(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.FileType, data)
}

func (slf *fileHandler) update(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateFile
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	file, err := slf.fileService.SetPresentation(caller, c.Param("id"), *updateDTO.IsPresentation)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobFileResponse(*file))
}

func (slf *fileHandler) delete(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	if err := slf.fileService.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

func (slf *fileHandler) listVersions(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	versions, err := slf.fileService.ListVersions(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToFileVersionResponses(versions))
}

// addVersion uploads a new version blob under the "file" field, with an
// optional "changelog" form value.
func (slf *fileHandler) addVersion(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "File is required"})
		return
	}

	in, err := readUpload(fh)
	if err != nil {
		slf.logger.Error().Err(err).Str("fileName", fh.Filename).Msg("Error reading version upload")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	version, err := slf.fileService.AddVersion(c.Request.Context(), caller, c.Param("id"), in, c.PostForm("changelog"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToFileVersionResponse(*version))
}

func (slf *fileHandler) downloadVersion(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid version number"})
		return
	}

	version, data, err := slf.fileService.DownloadVersion(c.Request.Context(), caller, c.Param("id"), number)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="v`+strconv.Itoa(version.VersionNumber)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}
