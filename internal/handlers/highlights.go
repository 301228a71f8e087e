package handlers

import (
	"net/http"

	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
)

type HighlightHandler struct {
	colleges   *services.CollegeService
	highlights *services.HighlightService
	uploads    *upload.Service
	view       *View
}

func NewHighlightHandler(colleges *services.CollegeService, highlights *services.HighlightService, uploads *upload.Service, view *View) *HighlightHandler {
	return &HighlightHandler{colleges: colleges, highlights: highlights, uploads: uploads, view: view}
}

type highlightsPage struct {
	CollegeID  string
	Highlights []models.Highlight
}

func (h *HighlightHandler) List(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	list, err := h.highlights.List(r.Context(), collegeID)
	if err != nil {
		h.view.fail(w, r, "highlights", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "highlights", Page{
		Title:   "Highlights",
		College: scope(r.Context(), h.colleges, collegeID),
		Data:    highlightsPage{CollegeID: collegeID, Highlights: list},
	})
}

func (h *HighlightHandler) highlightInput(w http.ResponseWriter, r *http.Request, collegeID string) models.HighlightInput {
	in := models.HighlightInput{
		Title:          formValue(r, "title"),
		Description:    formValue(r, "description"),
		BannerImage:    formValue(r, "current_banner_image"),
		CarouselImages: formList(r, "current_carousel_images", "remove_carousel_images"),
		CollegeID:      collegeID,
	}
	if url := h.view.uploadOne(w, r, h.uploads, "banner_image", upload.KindImage); url != "" {
		in.BannerImage = url
	}
	in.CarouselImages = append(in.CarouselImages, h.view.uploadField(w, r, h.uploads, "carousel_images", upload.KindImage)...)
	return in
}

func (h *HighlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	back := "/colleges/" + collegeID + "/highlights"
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, back)
		return
	}
	if err := h.highlights.Create(r.Context(), h.highlightInput(w, r, collegeID)); err != nil {
		h.view.failure(w, r, "Could not create highlight", err)
	} else {
		h.view.success(w, r, "Highlight created successfully")
	}
	redirect(w, r, back)
}

type highlightPage struct {
	CollegeID string
	Highlight *models.Highlight
	Form      models.HighlightInput
	Editing   bool
}

func (h *HighlightHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, highlightID := vars["collegeId"], vars["highlightId"]
	hl, err := h.highlights.Get(r.Context(), collegeID, highlightID)
	if err != nil {
		h.view.fail(w, r, "highlight", err)
		return
	}
	h.render(w, r, http.StatusOK, highlightPage{
		CollegeID: collegeID,
		Highlight: hl,
		Form: models.HighlightInput{
			Title:          hl.Title,
			Description:    hl.Description,
			BannerImage:    hl.BannerImage,
			CarouselImages: hl.CarouselImages,
			CollegeID:      collegeID,
		},
		Editing: isEditing(r),
	})
}

func (h *HighlightHandler) render(w http.ResponseWriter, r *http.Request, status int, p highlightPage) {
	h.view.render(w, r, status, "highlight", Page{
		Title:   p.Highlight.Title,
		College: scope(r.Context(), h.colleges, p.CollegeID),
		Data:    p,
	})
}

func (h *HighlightHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, highlightID := vars["collegeId"], vars["highlightId"]
	base := "/colleges/" + collegeID + "/highlights/" + highlightID

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, base+"?edit=1")
		return
	}
	in := h.highlightInput(w, r, collegeID)
	if err := h.highlights.Update(r.Context(), highlightID, in); err != nil {
		h.view.failure(w, r, "Could not update highlight", err)
		hl, getErr := h.highlights.Get(r.Context(), collegeID, highlightID)
		if getErr != nil {
			h.view.fail(w, r, "highlight", getErr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, highlightPage{CollegeID: collegeID, Highlight: hl, Form: in, Editing: true})
		return
	}
	h.view.success(w, r, "Highlight updated successfully")
	redirect(w, r, base)
}

func (h *HighlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, highlightID := vars["collegeId"], vars["highlightId"]
	if err := h.highlights.Delete(r.Context(), collegeID, highlightID); err != nil {
		h.view.failure(w, r, "Could not delete highlight", err)
		redirect(w, r, "/colleges/"+collegeID+"/highlights/"+highlightID)
		return
	}
	h.view.success(w, r, "Highlight deleted")
	redirect(w, r, "/colleges/"+collegeID+"/highlights")
}

// CreateSection создаёт единственную секцию хайлайта и открывает её редактор.
func (h *HighlightHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, highlightID := vars["collegeId"], vars["highlightId"]
	base := "/colleges/" + collegeID + "/highlights/" + highlightID

	hl, err := h.highlights.Get(r.Context(), collegeID, highlightID)
	if err != nil {
		h.view.failure(w, r, "Could not load highlight", err)
		redirect(w, r, base)
		return
	}
	if hl.Section.ID != "" {
		redirect(w, r, base+"/sections/"+hl.Section.ID)
		return
	}

	sec, err := h.highlights.AddSection(r.Context(), collegeID, highlightID, hl.Title)
	if err != nil {
		h.view.failure(w, r, "Could not create section", err)
		redirect(w, r, base)
		return
	}
	h.view.success(w, r, "Section created successfully. You can now edit its content.")
	if sec != nil && sec.ID != "" {
		redirect(w, r, base+"/sections/"+sec.ID)
		return
	}
	redirect(w, r, base)
}
