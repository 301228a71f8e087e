package handlers

import (
	"errors"
	"net/http"

	"collegeadmin/internal/apiclient"
	"collegeadmin/internal/logger"
	"collegeadmin/internal/render"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"
	"collegeadmin/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// APIHandler отдаёт небольшой JSON API дашборда для скриптов и фронтенд-виджетов.
type APIHandler struct {
	sections *services.SectionService
	uploads  *upload.Service
}

func NewAPIHandler(sections *services.SectionService, uploads *upload.Service) *APIHandler {
	return &APIHandler{sections: sections, uploads: uploads}
}

func apiStatus(err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// SectionLayout godoc
// @Summary Раскладка секции
// @Description Блоки секции в порядке показа: PDF, карусель, изображения, контент, затем медиа after_content
// @Tags sections
// @Security CookieAuth
// @Produce json
// @Param collegeId path string true "ID колледжа"
// @Param tabId path string true "ID вкладки или хайлайта"
// @Param sectionId path string true "ID секции"
// @Success 200 {object} helpers.Response{data=render.Layout}
// @Failure 401 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/colleges/{collegeId}/tabs/{tabId}/sections/{sectionId}/layout [get]
func (h *APIHandler) SectionLayout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := services.SectionRef{CollegeID: vars["collegeId"], ParentID: vars["tabId"], SectionID: vars["sectionId"]}

	sec, err := h.sections.Get(r.Context(), ref)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("API: секция не загружена", zap.String("section_id", ref.SectionID), zap.Error(err))
		helpers.Error(w, apiStatus(err), apiclient.ErrorMessage(err))
		return
	}
	helpers.JSON(w, http.StatusOK, render.Section(sec, render.Markdown(sec.Content)))
}

// Upload godoc
// @Summary Загрузка файла
// @Description Проверяет тип и размер файла и загружает его в хранилище CMS. Возвращает URL.
// @Tags upload
// @Security CookieAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param kind formData string false "image | video | pdf | any"
// @Success 201 {object} helpers.Response{data=string}
// @Failure 400 {object} helpers.Response
// @Failure 413 {object} helpers.Response
// @Failure 502 {object} helpers.Response
// @Router /api/upload [post]
func (h *APIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.Limits().Max()+(1<<20))
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		helpers.Error(w, http.StatusRequestEntityTooLarge, "file is too large or form is invalid")
		return
	}

	kind := upload.ParseKind(r.FormValue("kind"))
	files, err := formFiles(r, "file", h.uploads.Limits().For(kind))
	if len(files) == 0 {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			helpers.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		case err != nil:
			helpers.Error(w, http.StatusBadRequest, err.Error())
		default:
			helpers.Error(w, http.StatusBadRequest, "file is required")
		}
		return
	}

	url, err := h.uploads.Upload(r.Context(), files[0], kind)
	switch {
	case errors.Is(err, upload.ErrEmptyFile), errors.Is(err, upload.ErrUnsupportedType):
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, upload.ErrTooLarge):
		helpers.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		helpers.Error(w, http.StatusBadGateway, apiclient.ErrorMessage(err))
		return
	}
	helpers.JSON(w, http.StatusCreated, url)
}
