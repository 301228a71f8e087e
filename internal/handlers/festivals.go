package handlers

import (
	"net/http"

	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
)

type FestivalHandler struct {
	colleges  *services.CollegeService
	festivals *services.FestivalService
	uploads   *upload.Service
	view      *View
}

func NewFestivalHandler(colleges *services.CollegeService, festivals *services.FestivalService, uploads *upload.Service, view *View) *FestivalHandler {
	return &FestivalHandler{colleges: colleges, festivals: festivals, uploads: uploads, view: view}
}

type festivalsPage struct {
	CollegeID string
	Festivals []models.Festival
}

func (h *FestivalHandler) List(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	list, err := h.festivals.List(r.Context(), collegeID)
	if err != nil {
		h.view.fail(w, r, "festivals", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "festivals", Page{
		Title:   "Festivals",
		College: scope(r.Context(), h.colleges, collegeID),
		Data:    festivalsPage{CollegeID: collegeID, Festivals: list},
	})
}

// festivalInput читает форму: новый баннер заменяет старый, новые
// изображения галереи добавляются в конец.
func (h *FestivalHandler) festivalInput(w http.ResponseWriter, r *http.Request, collegeID string) models.FestivalInput {
	in := models.FestivalInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Content:     r.FormValue("content"),
		BannerImage: formValue(r, "current_banner_image"),
		Images:      formList(r, "current_images", "remove_images"),
		CollegeID:   collegeID,
		Date:        formValue(r, "date"),
		Time:        formValue(r, "time"),
	}
	if url := h.view.uploadOne(w, r, h.uploads, "banner_image", upload.KindImage); url != "" {
		in.BannerImage = url
	}
	in.Images = append(in.Images, h.view.uploadField(w, r, h.uploads, "images", upload.KindImage)...)
	return in
}

func (h *FestivalHandler) Create(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	back := "/colleges/" + collegeID + "/festivals"
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, back)
		return
	}
	if err := h.festivals.Create(r.Context(), h.festivalInput(w, r, collegeID)); err != nil {
		h.view.failure(w, r, "Could not create festival", err)
	} else {
		h.view.success(w, r, "Festival created successfully")
	}
	redirect(w, r, back)
}

type festivalPage struct {
	CollegeID string
	Festival  *models.Festival
	Form      models.FestivalInput
	Editing   bool
}

func (h *FestivalHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, festivalID := vars["collegeId"], vars["festivalId"]
	f, err := h.festivals.Get(r.Context(), collegeID, festivalID)
	if err != nil {
		h.view.fail(w, r, "festival", err)
		return
	}
	h.render(w, r, http.StatusOK, festivalPage{
		CollegeID: collegeID,
		Festival:  f,
		Form: models.FestivalInput{
			Name:        f.Name,
			Description: f.Description,
			Content:     f.Content,
			BannerImage: f.BannerImage,
			Images:      f.Images,
			CollegeID:   collegeID,
			Date:        f.Date,
			Time:        f.Time,
		},
		Editing: isEditing(r),
	})
}

func (h *FestivalHandler) render(w http.ResponseWriter, r *http.Request, status int, p festivalPage) {
	h.view.render(w, r, status, "festival", Page{
		Title:   p.Festival.Name,
		College: scope(r.Context(), h.colleges, p.CollegeID),
		Data:    p,
	})
}

func (h *FestivalHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, festivalID := vars["collegeId"], vars["festivalId"]
	base := "/colleges/" + collegeID + "/festivals/" + festivalID

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, base+"?edit=1")
		return
	}
	in := h.festivalInput(w, r, collegeID)
	if err := h.festivals.Update(r.Context(), festivalID, in); err != nil {
		h.view.failure(w, r, "Could not update festival", err)
		f, getErr := h.festivals.Get(r.Context(), collegeID, festivalID)
		if getErr != nil {
			h.view.fail(w, r, "festival", getErr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, festivalPage{CollegeID: collegeID, Festival: f, Form: in, Editing: true})
		return
	}
	h.view.success(w, r, "Festival updated successfully")
	redirect(w, r, base)
}

func (h *FestivalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, festivalID := vars["collegeId"], vars["festivalId"]
	if err := h.festivals.Delete(r.Context(), collegeID, festivalID); err != nil {
		h.view.failure(w, r, "Could not delete festival", err)
		redirect(w, r, "/colleges/"+collegeID+"/festivals/"+festivalID)
		return
	}
	h.view.success(w, r, "Festival deleted")
	redirect(w, r, "/colleges/"+collegeID+"/festivals")
}
