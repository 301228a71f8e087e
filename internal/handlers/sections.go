package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"collegeadmin/internal/editor"
	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/reqctx"
	"collegeadmin/internal/render"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type SectionHandler struct {
	colleges *services.CollegeService
	sections *services.SectionService
	drafts   *editor.Store
	uploads  *upload.Service
	view     *View
}

func NewSectionHandler(colleges *services.CollegeService, sections *services.SectionService, drafts *editor.Store, uploads *upload.Service, view *View) *SectionHandler {
	return &SectionHandler{colleges: colleges, sections: sections, drafts: drafts, uploads: uploads, view: view}
}

// sectionRoute — адрес секции и её родителя. Секции хайлайта живут под
// тем же API, что и секции вкладки, отличается только страница дашборда.
type sectionRoute struct {
	ref    services.SectionRef
	parent string // URL страницы вкладки или хайлайта
}

func (s sectionRoute) url() string {
	return s.parent + "/sections/" + s.ref.SectionID
}

func routeOf(r *http.Request) sectionRoute {
	vars := mux.Vars(r)
	ref := services.SectionRef{CollegeID: vars["collegeId"], SectionID: vars["sectionId"]}
	parent := "/colleges/" + ref.CollegeID
	if id, ok := vars["highlightId"]; ok {
		ref.ParentID = id
		parent += "/highlights/" + id
	} else {
		ref.ParentID = vars["tabId"]
		parent += "/tabs/" + ref.ParentID
	}
	return sectionRoute{ref: ref, parent: parent}
}

func sessionKey(r *http.Request) string {
	if sid, ok := reqctx.GetSessionID(r.Context()); ok {
		return sid
	}
	if u, ok := reqctx.GetUser(r.Context()); ok {
		return "user:" + u.ID
	}
	return "anonymous"
}

func (h *SectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collegeID, tabID := vars["collegeId"], vars["tabId"]
	back := "/colleges/" + collegeID + "/tabs/" + tabID

	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, back)
		return
	}
	if err := h.sections.Add(r.Context(), collegeID, tabID, formValue(r, "name")); err != nil {
		h.view.failure(w, r, "Could not add section", err)
	} else {
		h.view.success(w, r, "Section added successfully")
	}
	redirect(w, r, back)
}

type sectionPage struct {
	URL         string
	Back        string
	State       editor.State
	Editing     bool
	Preview     template.HTML
	HasPDF      bool
	PDFPosition models.MediaPosition
	Limits      upload.Limits
}

// Editor рисует секцию: в режиме просмотра превью, в режиме
// редактирования форму черновика с живым превью.
func (h *SectionHandler) Editor(w http.ResponseWriter, r *http.Request) {
	rt := routeOf(r)
	e, err := h.drafts.Open(r.Context(), sessionKey(r), rt.ref)
	if err != nil {
		h.view.fail(w, r, "section", err)
		return
	}

	st := e.Snapshot()
	preview, err := render.Preview(st.Section)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка превью секции", zap.String("section_id", rt.ref.SectionID), zap.Error(err))
	}

	h.view.render(w, r, http.StatusOK, "section", Page{
		Title:   st.Form.Name,
		College: scope(r.Context(), h.colleges, rt.ref.CollegeID),
		Data: sectionPage{
			URL:         rt.url(),
			Back:        rt.parent,
			State:       st,
			Editing:     st.Mode == editor.ModeEditing,
			Preview:     preview,
			HasPDF:      st.Form.HasMedia.Has(models.MediaPDF),
			PDFPosition: st.Form.MediaPosition.At(models.MediaPDF),
			Limits:      h.uploads.Limits(),
		},
	})
}

// Apply обрабатывает кнопки формы редактора. Поля черновика (название,
// контент, подписи) синхронизируются при каждой отправке, затем
// выполняется нажатая кнопка.
func (h *SectionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	rt := routeOf(r)
	ctx := r.Context()
	defer redirect(w, r, rt.url())

	e, err := h.drafts.Open(ctx, sessionKey(r), rt.ref)
	if err != nil {
		h.view.failure(w, r, "Could not load section", err)
		return
	}
	if err := parseForm(r); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		return
	}

	op := r.FormValue("op")
	switch op {
	case "edit":
		e.Edit()
		return
	case "cancel":
		e.Cancel()
		return
	}

	if err := e.Dispatch(syncActions(r)...); err != nil {
		h.view.failure(w, r, "Section is not editable", err)
		return
	}

	switch op {
	case "save":
		switch err := e.Save(ctx); {
		case errors.Is(err, editor.ErrNothingToSave):
			h.view.failure(w, r, "No changes to save", nil)
		case err != nil:
			h.view.failure(w, r, "Could not update section", err)
		default:
			h.view.success(w, r, "Section updated successfully")
		}
	case "upload_images":
		h.uploadInto(w, r, "images", upload.KindImage, e.UploadImages)
	case "upload_pdfs":
		h.uploadInto(w, r, "pdfs", upload.KindPDF, e.UploadPDFs)
	default:
		if a, ok := actionFor(op); ok {
			if err := e.Dispatch(a); err != nil {
				h.view.failure(w, r, "Section is not editable", err)
			}
		}
	}
}

func (h *SectionHandler) uploadInto(w http.ResponseWriter, r *http.Request, field string, kind upload.Kind, fn func(ctx context.Context, files []upload.File) error) {
	files, skipped := formFiles(r, field, h.uploads.Limits().For(kind))
	if len(files) == 0 {
		if skipped != nil {
			h.view.uploadFailures(w, r, skipped)
		} else {
			h.view.failure(w, r, "No files selected", nil)
		}
		return
	}
	h.view.uploadFailures(w, r, multierr.Append(skipped, fn(r.Context(), files)))
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rt := routeOf(r)
	if err := h.sections.Delete(r.Context(), rt.ref); err != nil {
		h.view.failure(w, r, "Could not delete section", err)
		redirect(w, r, rt.url())
		return
	}
	h.drafts.Close(sessionKey(r), rt.ref)
	h.view.success(w, r, "Section deleted")
	redirect(w, r, rt.parent)
}

// syncActions переносит текстовые поля формы в черновик.
func syncActions(r *http.Request) []editor.Action {
	var out []editor.Action
	if _, ok := r.Form["name"]; ok {
		out = append(out, editor.SetName{Name: r.FormValue("name")})
	}
	if _, ok := r.Form["content"]; ok {
		out = append(out, editor.SetContent{Content: r.FormValue("content")})
	}
	if _, ok := r.Form["heading_present"]; ok {
		out = append(out, editor.SetHideHeading{Hide: r.FormValue("hide_heading") == "on"})
	}
	for i, d := range r.Form["image_description"] {
		out = append(out, editor.SetImageDescription{Index: i, Description: d})
	}
	names, descs := r.Form["pdf_name"], r.Form["pdf_description"]
	for i := range names {
		var d string
		if i < len(descs) {
			d = descs[i]
		}
		out = append(out, editor.UpdatePDF{Index: i, Name: names[i], Description: d})
	}
	return out
}

// actionFor переводит значение кнопки в действие редактора.
// Кнопки удаления элемента несут индекс: "remove_image:2".
func actionFor(op string) (editor.Action, bool) {
	name, arg, _ := strings.Cut(op, ":")
	switch name {
	case "horizontal":
		return editor.ChooseHorizontal{}, true
	case "vertical":
		return editor.ChooseVertical{}, true
	case "images_before":
		return editor.SetImagePosition{Position: models.PositionBefore}, true
	case "images_after":
		return editor.SetImagePosition{Position: models.PositionAfter}, true
	case "remove_images":
		return editor.RemoveAllImages{}, true
	case "pdfs_before":
		return editor.SetPDFPosition{Position: models.PositionBefore}, true
	case "pdfs_after":
		return editor.SetPDFPosition{Position: models.PositionAfter}, true
	case "remove_pdfs":
		return editor.RemoveAllPDFs{}, true
	case "remove_image", "remove_pdf":
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 {
			return nil, false
		}
		if name == "remove_image" {
			return editor.RemoveImage{Index: i}, true
		}
		return editor.RemovePDF{Index: i}, true
	}
	return nil, false
}
