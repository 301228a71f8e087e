package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"collegeadmin/internal/apiclient"
	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/reqctx"
	"collegeadmin/internal/render"
	"collegeadmin/internal/session"
	"collegeadmin/internal/upload"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"login", "signup", "error",
	"colleges", "college", "tab", "section",
	"notices", "notice", "festivals", "festival", "highlights", "highlight",
	"pages", "page",
}

var funcs = template.FuncMap{
	"markdown": render.Markdown,
	"inc":      func(i int) int { return i + 1 },
	"join":     strings.Join,
	"mb":       func(n int64) int64 { return n >> 20 },
}

// View рисует страницы дашборда в общем layout: боковое меню, тосты,
// текущий пользователь.
type View struct {
	tmpl     map[string]*template.Template
	sessions *session.Manager
}

func NewView(sm *session.Manager) (*View, error) {
	v := &View{tmpl: make(map[string]*template.Template, len(pages)), sessions: sm}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.tmpl[name] = t
	}
	return v, nil
}

// Page — данные layout; Data — данные конкретной страницы.
type Page struct {
	Title   string
	User    *models.User
	Toasts  []session.Toast
	College *models.College
	Data    any
}

func (v *View) render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	t, ok := v.tmpl[name]
	if !ok {
		logger.WithCtx(r.Context()).Error("Шаблон не найден", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if p.User == nil {
		p.User, _ = reqctx.GetUser(r.Context())
	}
	p.Toasts = append(p.Toasts, v.sessions.Toasts(w, r)...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка рендера шаблона", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail рисует страницу ошибки загрузки данных.
func (v *View) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	status := http.StatusBadGateway
	switch {
	case apiclient.IsNotFound(err):
		status = http.StatusNotFound
	case apiclient.IsUnauthorized(err):
		status = http.StatusUnauthorized
	}
	logger.WithCtx(r.Context()).Warn("Не удалось загрузить данные", zap.String("what", what), zap.Error(err))
	v.render(w, r, status, "error", Page{
		Title: "Error",
		Data:  fmt.Sprintf("Could not load %s: %s", what, apiclient.ErrorMessage(err)),
	})
}

func (v *View) success(w http.ResponseWriter, r *http.Request, msg string) {
	v.toast(w, r, session.ToastSuccess, msg)
}

func (v *View) toast(w http.ResponseWriter, r *http.Request, kind session.ToastKind, msg string) {
	if err := v.sessions.AddToast(w, r, kind, msg); err != nil {
		logger.WithCtx(r.Context()).Error("Тост не сохранён в сессии",
			zap.String("kind", string(kind)),
			zap.String("message", msg),
			zap.Error(err),
		)
	}
}

// failure ставит тост об ошибке мутации. Текст бэкенда показывается, если он есть.
func (v *View) failure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.WithCtx(r.Context()).Warn(msg, zap.Error(err))
	if err != nil {
		msg += ": " + apiclient.ErrorMessage(err)
	}
	v.toast(w, r, session.ToastError, msg)
}

// uploadFailures сводит ошибки отдельных файлов в один тост.
func (v *View) uploadFailures(w http.ResponseWriter, r *http.Request, err error) {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	logger.WithCtx(r.Context()).Warn("Файлы не загружены", zap.Strings("errors", msgs))
	v.toast(w, r, session.ToastError, "Upload failed: "+strings.Join(msgs, "; "))
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// memoryLimit: сколько multipart-формы держать в памяти, остальное уходит во временные файлы.
const memoryLimit = 32 << 20

// parseForm разбирает и обычные, и multipart-формы.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(memoryLimit); err != nil {
			return err
		}
		return nil
	}
	return r.ParseForm()
}

// formFiles читает файлы поля формы целиком. Пустые поля (файл не выбран)
// пропускаются. Файл больше limit или нечитаемый файл не попадает в
// результат, его ошибка добавляется в multierr, остальные файлы читаются.
func formFiles(r *http.Request, field string, limit int64) ([]upload.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var (
		out  []upload.File
		errs error
	)
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		if limit > 0 && fh.Size > limit {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", fh.Filename, upload.ErrTooLarge))
			continue
		}
		data, err := readFile(fh)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", fh.Filename, err))
			continue
		}
		out = append(out, upload.File{Name: fh.Filename, Data: data})
	}
	return out, errs
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// uploadField загружает все файлы поля по очереди. Возвращает URL
// успешных; ошибки отдельных файлов уходят тостами.
func (v *View) uploadField(w http.ResponseWriter, r *http.Request, up *upload.Service, field string, kind upload.Kind) []string {
	files, skipped := formFiles(r, field, up.Limits().For(kind))
	if len(files) == 0 {
		v.uploadFailures(w, r, skipped)
		return nil
	}
	urls, err := up.UploadAll(r.Context(), files, kind)
	v.uploadFailures(w, r, multierr.Append(skipped, err))
	return urls
}

// uploadOne делает то же для поля с одним файлом; "" если файла нет или он не загрузился.
func (v *View) uploadOne(w http.ResponseWriter, r *http.Request, up *upload.Service, field string, kind upload.Kind) string {
	urls := v.uploadField(w, r, up, field, kind)
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// formList собирает список из повторяющегося скрытого поля field в
// исходном порядке, пропуская значения, отмеченные в remove.
func formList(r *http.Request, field, remove string) []string {
	drop := make(map[string]bool)
	for _, u := range r.Form[remove] {
		drop[u] = true
	}
	out := make([]string, 0, len(r.Form[field]))
	for _, u := range r.Form[field] {
		if u = strings.TrimSpace(u); u != "" && !drop[u] {
			out = append(out, u)
		}
	}
	return out
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func isEditing(r *http.Request) bool {
	return r.URL.Query().Get("edit") == "1"
}
