package handlers

import (
	"context"
	"net/http"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CollegeHandler struct {
	colleges *services.CollegeService
	tabs     *services.TabService
	uploads  *upload.Service
	view     *View
}

func NewCollegeHandler(colleges *services.CollegeService, tabs *services.TabService, uploads *upload.Service, view *View) *CollegeHandler {
	return &CollegeHandler{colleges: colleges, tabs: tabs, uploads: uploads, view: view}
}

// scope подгружает колледж для подменю. Ошибка не мешает странице.
func scope(ctx context.Context, colleges *services.CollegeService, id string) *models.College {
	c, err := colleges.Get(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("Не удалось загрузить колледж для меню", zap.String("college_id", id), zap.Error(err))
		return nil
	}
	return c
}

func (h *CollegeHandler) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/colleges")
}

func (h *CollegeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.colleges.List(r.Context())
	if err != nil {
		h.view.fail(w, r, "colleges", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "colleges", Page{Title: "Colleges", Data: list})
}

func (h *CollegeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, "/colleges")
		return
	}

	in := models.CollegeInput{
		Name:           formValue(r, "name"),
		Description:    formValue(r, "description"),
		Logo:           h.view.uploadOne(w, r, h.uploads, "logo", upload.KindImage),
		BannerImage:    h.view.uploadOne(w, r, h.uploads, "banner_image", upload.KindImage),
		CarouselImages: h.view.uploadField(w, r, h.uploads, "carousel_images", upload.KindImage),
	}

	created, err := h.colleges.Create(r.Context(), in)
	if err != nil {
		h.view.failure(w, r, "Could not create college", err)
		redirect(w, r, "/colleges")
		return
	}

	h.view.success(w, r, "College created successfully")
	if created != nil && created.ID != "" {
		redirect(w, r, "/colleges/"+created.ID)
		return
	}
	redirect(w, r, "/colleges")
}

type collegePage struct {
	College *models.College
	Form    models.CollegeInput
	Tabs    []models.Tab
	Editing bool
}

func (h *CollegeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["collegeId"]
	c, err := h.colleges.Get(r.Context(), id)
	if err != nil {
		h.view.fail(w, r, "college", err)
		return
	}
	tabs, err := h.tabs.ListByCollege(r.Context(), id)
	if err != nil {
		h.view.fail(w, r, "tabs", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "college", Page{
		Title:   c.Name,
		College: c,
		Data: collegePage{
			College: c,
			Form:    collegeForm(c),
			Tabs:    tabs,
			Editing: isEditing(r),
		},
	})
}

func collegeForm(c *models.College) models.CollegeInput {
	return models.CollegeInput{
		Name:           c.Name,
		Description:    c.Description,
		Logo:           c.Logo,
		BannerImage:    c.BannerImage,
		CarouselImages: append([]string(nil), c.CarouselImages...),
	}
}

// Update сохраняет форму колледжа. Новые файлы логотипа и баннера заменяют
// старые, файлы карусели добавляются в конец. При ошибке форма остаётся
// открытой с введёнными значениями.
func (h *CollegeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["collegeId"]
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, "/colleges/"+id+"?edit=1")
		return
	}

	in := models.CollegeInput{
		Name:           formValue(r, "name"),
		Description:    formValue(r, "description"),
		Logo:           formValue(r, "current_logo"),
		BannerImage:    formValue(r, "current_banner_image"),
		CarouselImages: formList(r, "current_carousel_images", "remove_carousel_images"),
	}
	if url := h.view.uploadOne(w, r, h.uploads, "logo", upload.KindImage); url != "" {
		in.Logo = url
	}
	if url := h.view.uploadOne(w, r, h.uploads, "banner_image", upload.KindImage); url != "" {
		in.BannerImage = url
	}
	in.CarouselImages = append(in.CarouselImages, h.view.uploadField(w, r, h.uploads, "carousel_images", upload.KindImage)...)

	if err := h.colleges.Update(r.Context(), id, in); err != nil {
		h.view.failure(w, r, "Could not update college", err)
		c, getErr := h.colleges.Get(r.Context(), id)
		if getErr != nil {
			h.view.fail(w, r, "college", getErr)
			return
		}
		tabs, _ := h.tabs.ListByCollege(r.Context(), id)
		h.view.render(w, r, http.StatusUnprocessableEntity, "college", Page{
			Title:   c.Name,
			College: c,
			Data:    collegePage{College: c, Form: in, Tabs: tabs, Editing: true},
		})
		return
	}

	h.view.success(w, r, "College updated successfully")
	redirect(w, r, "/colleges/"+id)
}
