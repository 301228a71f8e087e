package handlers

import (
	"net/http"

	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
	"go.uber.org/multierr"
)

type NoticeHandler struct {
	colleges *services.CollegeService
	notices  *services.NoticeService
	uploads  *upload.Service
	view     *View
}

func NewNoticeHandler(colleges *services.CollegeService, notices *services.NoticeService, uploads *upload.Service, view *View) *NoticeHandler {
	return &NoticeHandler{colleges: colleges, notices: notices, uploads: uploads, view: view}
}

type noticesPage struct {
	CollegeID string
	Notices   []models.Notice
}

func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	list, err := h.notices.List(r.Context(), collegeID)
	if err != nil {
		h.view.fail(w, r, "notices", err)
		return
	}
	h.view.render(w, r, http.StatusOK, "notices", Page{
		Title:   "Notices",
		College: scope(r.Context(), h.colleges, collegeID),
		Data:    noticesPage{CollegeID: collegeID, Notices: list},
	})
}

// noticeInput читает форму. Оставленные вложения идут первыми, новые
// файлы добавляются за ними с номерами по порядку.
func (h *NoticeHandler) noticeInput(w http.ResponseWriter, r *http.Request, collegeID string) models.NoticeInput {
	in := models.NoticeInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Date:        formValue(r, "date"),
		Link:        formValue(r, "link"),
		CollegeID:   collegeID,
	}

	drop := make(map[string]bool)
	for _, u := range r.Form["remove_attachment"] {
		drop[u] = true
	}
	names := r.Form["attachment_name"]
	for i, u := range r.Form["attachment_url"] {
		if u == "" || drop[u] {
			continue
		}
		var name string
		if i < len(names) {
			name = names[i]
		}
		in.Attachments = append(in.Attachments, models.Attachment{Name: name, URL: u})
	}

	files, failed := formFiles(r, "attachments", h.uploads.Limits().For(upload.KindAny))
	for _, f := range files {
		url, err := h.uploads.Upload(r.Context(), f, upload.KindAny)
		if err != nil {
			failed = multierr.Append(failed, err)
			continue
		}
		in.Attachments = append(in.Attachments, models.Attachment{Name: f.Name, URL: url})
	}
	h.view.uploadFailures(w, r, failed)

	for i := range in.Attachments {
		in.Attachments[i].ID = i + 1
	}
	if in.Attachments == nil {
		in.Attachments = []models.Attachment{}
	}
	return in
}

func (h *NoticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	collegeID := mux.Vars(r)["collegeId"]
	back := "/colleges/" + collegeID + "/notices"
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, back)
		return
	}
	if err := h.notices.Add(r.Context(), h.noticeInput(w, r, collegeID)); err != nil {
		h.view.failure(w, r, "Could not create notice", err)
	} else {
		h.view.success(w, r, "Notice created successfully")
	}
	redirect(w, r, back)
}

type noticePage struct {
	CollegeID string
	Notice    *models.Notice
	Form      models.NoticeInput
	Editing   bool
}

func (h *NoticeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, noticeID := vars["collegeId"], vars["noticeId"]
	n, err := h.notices.Get(r.Context(), collegeID, noticeID)
	if err != nil {
		h.view.fail(w, r, "notice", err)
		return
	}
	h.render(w, r, http.StatusOK, noticePage{
		CollegeID: collegeID,
		Notice:    n,
		Form: models.NoticeInput{
			Title:       n.Title,
			Description: n.Description,
			Date:        n.Date,
			Link:        n.Link,
			Attachments: n.Attachments,
			CollegeID:   collegeID,
		},
		Editing: isEditing(r),
	})
}

func (h *NoticeHandler) render(w http.ResponseWriter, r *http.Request, status int, p noticePage) {
	h.view.render(w, r, status, "notice", Page{
		Title:   p.Notice.Title,
		College: scope(r.Context(), h.colleges, p.CollegeID),
		Data:    p,
	})
}

func (h *NoticeHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, noticeID := vars["collegeId"], vars["noticeId"]
	base := "/colleges/" + collegeID + "/notices/" + noticeID

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, base+"?edit=1")
		return
	}
	in := h.noticeInput(w, r, collegeID)
	if err := h.notices.Update(r.Context(), noticeID, in); err != nil {
		h.view.failure(w, r, "Could not update notice", err)
		n, getErr := h.notices.Get(r.Context(), collegeID, noticeID)
		if getErr != nil {
			h.view.fail(w, r, "notice", getErr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, noticePage{CollegeID: collegeID, Notice: n, Form: in, Editing: true})
		return
	}
	h.view.success(w, r, "Notice updated successfully")
	redirect(w, r, base)
}

func (h *NoticeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, noticeID := vars["collegeId"], vars["noticeId"]
	if err := h.notices.Delete(r.Context(), collegeID, noticeID); err != nil {
		h.view.failure(w, r, "Could not delete notice", err)
		redirect(w, r, "/colleges/"+collegeID+"/notices/"+noticeID)
		return
	}
	h.view.success(w, r, "Notice deleted")
	redirect(w, r, "/colleges/"+collegeID+"/notices")
}
