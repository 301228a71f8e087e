package handlers

import (
	"net/http"

	"collegeadmin/internal/models"
	"collegeadmin/internal/services"

	"github.com/gorilla/mux"
)

type TabHandler struct {
	colleges *services.CollegeService
	tabs     *services.TabService
	sections *services.SectionService
	view     *View
}

func NewTabHandler(colleges *services.CollegeService, tabs *services.TabService, sections *services.SectionService, view *View) *TabHandler {
	return &TabHandler{colleges: colleges, tabs: tabs, sections: sections, view: view}
}

func tabInput(r *http.Request) models.TabInput {
	return models.TabInput{
		Name:        formValue(r, "name"),
		Key:         formValue(r, "key"),
		Description: formValue(r, "description"),
		IsCourses:   r.FormValue("is_courses") == "on",
	}
}

func (h *TabHandler) Add(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, "/colleges/"+collegeID)
		return
	}
	if err := h.tabs.Add(r.Context(), collegeID, tabInput(r)); err != nil {
		h.view.failure(w, r, "Could not add tab", err)
	} else {
		h.view.success(w, r, "Tab added successfully")
	}
	redirect(w, r, "/colleges/"+collegeID)
}

type tabPage struct {
	CollegeID string
	Tab       *models.Tab
	Form      models.TabInput
	Sections  []models.Section
	Editing   bool
}

func (h *TabHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, tabID := vars["collegeId"], vars["tabId"]

	tab, err := h.tabs.Get(r.Context(), collegeID, tabID)
	if err != nil {
		h.view.fail(w, r, "tab", err)
		return
	}
	sections, err := h.sections.ListByTab(r.Context(), tabID)
	if err != nil {
		h.view.fail(w, r, "sections", err)
		return
	}
	h.render(w, r, http.StatusOK, tabPage{
		CollegeID: collegeID,
		Tab:       tab,
		Form:      models.TabInput{Name: tab.Name, Key: tab.Key, Description: tab.Description, IsCourses: tab.IsCourses},
		Sections:  sections,
		Editing:   isEditing(r),
	})
}

func (h *TabHandler) render(w http.ResponseWriter, r *http.Request, status int, p tabPage) {
	h.view.render(w, r, status, "tab", Page{
		Title:   p.Tab.Name,
		College: scope(r.Context(), h.colleges, p.CollegeID),
		Data:    p,
	})
}

func (h *TabHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, tabID := vars["collegeId"], vars["tabId"]
	base := "/colleges/" + collegeID + "/tabs/" + tabID

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, base+"?edit=1")
		return
	}
	in := tabInput(r)
	if err := h.tabs.Update(r.Context(), tabID, in); err != nil {
		h.view.failure(w, r, "Could not update tab", err)
		tab, getErr := h.tabs.Get(r.Context(), collegeID, tabID)
		if getErr != nil {
			h.view.fail(w, r, "tab", getErr)
			return
		}
		sections, _ := h.sections.ListByTab(r.Context(), tabID)
		h.render(w, r, http.StatusUnprocessableEntity, tabPage{
			CollegeID: collegeID, Tab: tab, Form: in, Sections: sections, Editing: true,
		})
		return
	}
	h.view.success(w, r, "Tab updated successfully")
	redirect(w, r, base)
}

func (h *TabHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, tabID := vars["collegeId"], vars["tabId"]
	if err := h.tabs.Delete(r.Context(), collegeID, tabID); err != nil {
		h.view.failure(w, r, "Could not delete tab", err)
		redirect(w, r, "/colleges/"+collegeID+"/tabs/"+tabID)
		return
	}
	h.view.success(w, r, "Tab deleted")
	redirect(w, r, "/colleges/"+collegeID)
}
