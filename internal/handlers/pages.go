package handlers

import (
	"net/http"

	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
)

// PageHandler обслуживает статические страницы публичного сайта (about, contact ...).
type PageHandler struct {
	pages   *services.PageService
	uploads *upload.Service
	view    *View
}

func NewPageHandler(pages *services.PageService, uploads *upload.Service, view *View) *PageHandler {
	return &PageHandler{pages: pages, uploads: uploads, view: view}
}

func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.pages.List(r.Context())
	if err != nil {
		h.view.fail(w, r, "pages", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "pages", Page{Title: "Pages", Data: list})
}

type pagePage struct {
	Page    *models.Page
	Form    models.PageInput
	Editing bool
}

func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	p, err := h.pages.Get(r.Context(), mux.Vars(r)["pageId"])
	if err != nil {
		h.view.fail(w, r, "page", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "page", Page{
		Title: p.Page,
		Data: pagePage{
			Page:    p,
			Form:    models.PageInput{Content: p.Content, CarouselImages: p.CarouselImages, VideoURL: p.VideoURL},
			Editing: isEditing(r),
		},
	})
}

// Update сохраняет контент, карусель и видео. Загруженный видеофайл
// заменяет ссылку из текстового поля.
func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["pageId"]
	base := "/pages/" + id

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, base+"?edit=1")
		return
	}
	in := models.PageInput{
		Content:        r.FormValue("content"),
		CarouselImages: formList(r, "current_carousel_images", "remove_carousel_images"),
		VideoURL:       formValue(r, "video_url"),
	}
	in.CarouselImages = append(in.CarouselImages, h.view.uploadField(w, r, h.uploads, "carousel_images", upload.KindImage)...)
	if url := h.view.uploadOne(w, r, h.uploads, "video", upload.KindVideo); url != "" {
		in.VideoURL = url
	}

	if err := h.pages.UpdateContent(r.Context(), id, in); err != nil {
		h.view.failure(w, r, "Could not update page", err)
		p, getErr := h.pages.Get(r.Context(), id)
		if getErr != nil {
			h.view.fail(w, r, "page", getErr)
			return
		}
		h.view.render(w, r, http.StatusUnprocessableEntity, "page", Page{
			Title: p.Page,
			Data:  pagePage{Page: p, Form: in, Editing: true},
		})
		return
	}
	h.view.success(w, r, "Page updated successfully")
	redirect(w, r, base)
}
