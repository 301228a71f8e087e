package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"collegeadmin/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cmsContent — вкладки, объявления, фестивали, хайлайты и страницы fakeCMS.
// Обработчики вызываются под fakeCMS.mu. reject заставляет бэкенд отклонять
// все мутации контента с этим текстом.
type cmsContent struct {
	cms    *fakeCMS
	router *mux.Router
	reject string
	nextID int

	tabs       map[string]models.Tab
	sections   map[string][]models.Section
	notices    map[string]models.Notice
	festivals  map[string]models.Festival
	highlights map[string]models.Highlight
	pages      map[string]models.Page
	created    map[string]int
}

func newCMSContent(f *fakeCMS) *cmsContent {
	c := &cmsContent{
		cms:        f,
		tabs:       map[string]models.Tab{"t1": {ID: "t1", Name: "Admissions", Key: "admissions"}},
		sections:   map[string][]models.Section{"t1": {{ID: "s1", Name: "About"}}},
		notices:    map[string]models.Notice{"n1": {ID: "n1", Title: "Exam schedule", Date: "2024-05-01"}},
		festivals:  map[string]models.Festival{"f1": {ID: "f1", Name: "Spring Fest"}},
		highlights: map[string]models.Highlight{"h1": {ID: "h1", Title: "Sports Day"}},
		pages:      map[string]models.Page{"about": {ID: "about", Page: "About", Content: "Old text"}},
		created:    map[string]int{},
		nextID:     1,
	}

	r := mux.NewRouter()
	r.HandleFunc("/cms/colleges/{c}/tabs", c.listTabs).Methods("GET")
	r.HandleFunc("/cms/colleges/{c}/tabs", c.addTab).Methods("POST")
	r.HandleFunc("/cms/colleges/{c}/tabs/{id}", c.getTab).Methods("GET")
	r.HandleFunc("/cms/colleges/tabs/{id}", c.updateTab).Methods("PATCH")
	r.HandleFunc("/cms/colleges/{c}/tabs/{id}", c.deleteTab).Methods("DELETE")
	r.HandleFunc("/cms/colleges/tabs/{id}/sections", c.listSections).Methods("GET")
	r.HandleFunc("/cms/colleges/{c}/tabs/{id}/sections/{sid}", c.getSection).Methods("GET")

	r.HandleFunc("/cms/colleges/{c}/notices", c.listNotices).Methods("GET")
	r.HandleFunc("/cms/colleges/{c}/notices", c.addNotice).Methods("POST")
	r.HandleFunc("/cms/colleges/{c}/notices/{id}", c.getNotice).Methods("GET")
	r.HandleFunc("/cms/colleges/notices/{id}", c.updateNotice).Methods("PATCH")

	r.HandleFunc("/cms/colleges/{c}/festivals", c.listFestivals).Methods("GET")
	r.HandleFunc("/cms/colleges/{c}/festivals", c.addFestival).Methods("POST")
	r.HandleFunc("/cms/colleges/{c}/festivals/{id}", c.getFestival).Methods("GET")
	r.HandleFunc("/cms/colleges/festivals/{id}", c.updateFestival).Methods("PATCH")
	r.HandleFunc("/cms/colleges/{c}/festivals/{id}", c.deleteFestival).Methods("DELETE")

	r.HandleFunc("/cms/colleges/{c}/highlights", c.listHighlights).Methods("GET")
	r.HandleFunc("/cms/colleges/{c}/highlights", c.addHighlight).Methods("POST")
	r.HandleFunc("/cms/colleges/{c}/highlights/{id}", c.getHighlight).Methods("GET")
	r.HandleFunc("/cms/colleges/highlights/{id}", c.updateHighlight).Methods("PATCH")
	r.HandleFunc("/cms/colleges/{c}/highlights/{id}/sections", c.addHighlightSection).Methods("POST")

	r.HandleFunc("/cms/contents/pages", c.listPages).Methods("GET")
	r.HandleFunc("/cms/contents/pages/{id}", c.getPage).Methods("GET")
	r.HandleFunc("/cms/contents/pages/{id}", c.updatePage).Methods("PATCH")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, http.StatusNotFound, nil, "not found: "+r.Method+" "+r.URL.Path)
	})
	c.router = r
	return c
}

func (c *cmsContent) id(prefix string) string {
	c.nextID++
	return prefix + strconv.Itoa(c.nextID)
}

// decode читает тело мутации; false, если ответ уже отправлен.
func (c *cmsContent) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if c.reject != "" {
		c.cms.reply(w, http.StatusBadRequest, nil, c.reject)
		return false
	}
	if v == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		c.cms.reply(w, http.StatusBadRequest, nil, err.Error())
		return false
	}
	return true
}

func (c *cmsContent) ok(w http.ResponseWriter, data any) {
	c.cms.reply(w, http.StatusOK, data, "ok")
}

func (c *cmsContent) missing(w http.ResponseWriter) {
	c.cms.reply(w, http.StatusNotFound, nil, "not found")
}

// Tabs

func (c *cmsContent) listTabs(w http.ResponseWriter, _ *http.Request) {
	out := []models.Tab{}
	for _, t := range c.tabs {
		out = append(out, t)
	}
	c.ok(w, out)
}

func (c *cmsContent) getTab(w http.ResponseWriter, r *http.Request) {
	t, ok := c.tabs[mux.Vars(r)["id"]]
	if !ok {
		c.missing(w)
		return
	}
	c.ok(w, t)
}

func (c *cmsContent) addTab(w http.ResponseWriter, r *http.Request) {
	var in models.TabInput
	if !c.decode(w, r, &in) {
		return
	}
	id := c.id("t")
	c.tabs[id] = models.Tab{ID: id, Name: in.Name, Key: in.Key, Description: in.Description, IsCourses: in.IsCourses}
	c.ok(w, nil)
}

func (c *cmsContent) updateTab(w http.ResponseWriter, r *http.Request) {
	var in models.TabInput
	if !c.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	t := c.tabs[id]
	t.Name, t.Key, t.Description, t.IsCourses = in.Name, in.Key, in.Description, in.IsCourses
	c.tabs[id] = t
	c.ok(w, nil)
}

func (c *cmsContent) deleteTab(w http.ResponseWriter, r *http.Request) {
	if !c.decode(w, r, nil) {
		return
	}
	delete(c.tabs, mux.Vars(r)["id"])
	c.ok(w, nil)
}

func (c *cmsContent) listSections(w http.ResponseWriter, r *http.Request) {
	out := append([]models.Section{}, c.sections[mux.Vars(r)["id"]]...)
	c.ok(w, out)
}

func (c *cmsContent) getSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	for _, s := range c.sections[vars["id"]] {
		if s.ID == vars["sid"] {
			c.ok(w, s)
			return
		}
	}
	c.missing(w)
}

// Notices

func (c *cmsContent) listNotices(w http.ResponseWriter, _ *http.Request) {
	out := []models.Notice{}
	for _, n := range c.notices {
		out = append(out, n)
	}
	c.ok(w, out)
}

func (c *cmsContent) getNotice(w http.ResponseWriter, r *http.Request) {
	n, ok := c.notices[mux.Vars(r)["id"]]
	if !ok {
		c.missing(w)
		return
	}
	c.ok(w, n)
}

func (c *cmsContent) addNotice(w http.ResponseWriter, r *http.Request) {
	var in models.NoticeInput
	if !c.decode(w, r, &in) {
		return
	}
	id := c.id("n")
	c.notices[id] = models.Notice{ID: id, Title: in.Title, Description: in.Description, Date: in.Date, Link: in.Link, Attachments: in.Attachments}
	c.ok(w, nil)
}

func (c *cmsContent) updateNotice(w http.ResponseWriter, r *http.Request) {
	var in models.NoticeInput
	if !c.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	c.notices[id] = models.Notice{ID: id, Title: in.Title, Description: in.Description, Date: in.Date, Link: in.Link, Attachments: in.Attachments}
	c.ok(w, nil)
}

// Festivals

func (c *cmsContent) listFestivals(w http.ResponseWriter, _ *http.Request) {
	out := []models.Festival{}
	for _, f := range c.festivals {
		out = append(out, f)
	}
	c.ok(w, out)
}

func (c *cmsContent) getFestival(w http.ResponseWriter, r *http.Request) {
	f, ok := c.festivals[mux.Vars(r)["id"]]
	if !ok {
		c.missing(w)
		return
	}
	c.ok(w, f)
}

func festivalFrom(id string, in models.FestivalInput) models.Festival {
	return models.Festival{
		ID: id, Name: in.Name, Description: in.Description, Content: in.Content,
		BannerImage: in.BannerImage, Images: in.Images, Date: in.Date, Time: in.Time,
	}
}

func (c *cmsContent) addFestival(w http.ResponseWriter, r *http.Request) {
	var in models.FestivalInput
	if !c.decode(w, r, &in) {
		return
	}
	id := c.id("f")
	c.festivals[id] = festivalFrom(id, in)
	c.ok(w, nil)
}

func (c *cmsContent) updateFestival(w http.ResponseWriter, r *http.Request) {
	var in models.FestivalInput
	if !c.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	c.festivals[id] = festivalFrom(id, in)
	c.ok(w, nil)
}

func (c *cmsContent) deleteFestival(w http.ResponseWriter, r *http.Request) {
	if !c.decode(w, r, nil) {
		return
	}
	delete(c.festivals, mux.Vars(r)["id"])
	c.ok(w, nil)
}

// Highlights

func (c *cmsContent) listHighlights(w http.ResponseWriter, _ *http.Request) {
	out := []models.Highlight{}
	for _, h := range c.highlights {
		out = append(out, h)
	}
	c.ok(w, out)
}

func (c *cmsContent) getHighlight(w http.ResponseWriter, r *http.Request) {
	h, ok := c.highlights[mux.Vars(r)["id"]]
	if !ok {
		c.missing(w)
		return
	}
	c.ok(w, h)
}

func (c *cmsContent) addHighlight(w http.ResponseWriter, r *http.Request) {
	var in models.HighlightInput
	if !c.decode(w, r, &in) {
		return
	}
	id := c.id("h")
	c.highlights[id] = models.Highlight{ID: id, Title: in.Title, Description: in.Description, BannerImage: in.BannerImage, CarouselImages: in.CarouselImages}
	c.ok(w, nil)
}

func (c *cmsContent) updateHighlight(w http.ResponseWriter, r *http.Request) {
	var in models.HighlightInput
	if !c.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	h := c.highlights[id]
	h.Title, h.Description, h.BannerImage, h.CarouselImages = in.Title, in.Description, in.BannerImage, in.CarouselImages
	c.highlights[id] = h
	c.ok(w, nil)
}

func (c *cmsContent) addHighlightSection(w http.ResponseWriter, r *http.Request) {
	var in models.CreateSectionRequest
	if !c.decode(w, r, &in) {
		return
	}
	hid := mux.Vars(r)["id"]
	h, ok := c.highlights[hid]
	if !ok {
		c.missing(w)
		return
	}
	sec := models.Section{ID: c.id("hs"), Name: in.Name}
	c.sections[hid] = append(c.sections[hid], sec)
	h.Section = models.Ref{ID: sec.ID}
	c.highlights[hid] = h
	c.created["highlight_section"]++
	c.ok(w, sec)
}

// Pages

func (c *cmsContent) listPages(w http.ResponseWriter, _ *http.Request) {
	out := []models.Page{}
	for _, p := range c.pages {
		out = append(out, p)
	}
	c.ok(w, out)
}

func (c *cmsContent) getPage(w http.ResponseWriter, r *http.Request) {
	p, ok := c.pages[mux.Vars(r)["id"]]
	if !ok {
		c.missing(w)
		return
	}
	c.ok(w, p)
}

func (c *cmsContent) updatePage(w http.ResponseWriter, r *http.Request) {
	var in models.PageInput
	if !c.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	p := c.pages[id]
	p.Content, p.CarouselImages, p.VideoURL = in.Content, in.CarouselImages, in.VideoURL
	c.pages[id] = p
	c.ok(w, nil)
}

func (f *fakeCMS) rejectContent(msg string) {
	f.mu.Lock()
	f.content.reject = msg
	f.mu.Unlock()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// multipartFiles собирает форму с полями и несколькими файлами в одном поле.
func multipartFiles(t *testing.T, fields url.Values, field string, files map[string][]byte, order ...string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	for _, name := range order {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func postMultipart(t *testing.T, hc *http.Client, u string, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	resp, err := hc.Post(u, contentType, body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestTabFlow(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	tabURL := srv.URL + "/colleges/c1/tabs/t1"

	resp := post(t, hc, srv.URL+"/colleges/c1/tabs", url.Values{"name": {"Hostel"}, "key": {"hostel"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1", resp.Header.Get("Location"))
	_, page := get(t, hc, srv.URL+"/colleges/c1")
	assert.Contains(t, page, "Tab added successfully")
	assert.Contains(t, page, "Hostel")

	_, page = get(t, hc, tabURL+"?edit=1")
	assert.Contains(t, page, `id="key"`)

	cms.rejectContent("Tab key already exists")
	resp = post(t, hc, tabURL, url.Values{"name": {"Admissions 2025"}, "key": {"admissions"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Could not update tab: Tab key already exists")
	assert.Contains(t, body, `value="Admissions 2025"`)
	assert.Contains(t, body, `id="key"`, "при ошибке форма остаётся открытой")

	cms.rejectContent("")
	resp = post(t, hc, tabURL, url.Values{"name": {"Admissions 2025"}, "key": {"admissions"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1/tabs/t1", resp.Header.Get("Location"))
	_, page = get(t, hc, tabURL)
	assert.Contains(t, page, "Tab updated successfully")
	assert.Contains(t, page, "<h1>Admissions 2025</h1>")
	assert.NotContains(t, page, `id="key"`, "после успеха форма закрыта")
	assert.Contains(t, page, "About", "секции вкладки")

	resp = post(t, hc, tabURL+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1", resp.Header.Get("Location"))
	_, page = get(t, hc, srv.URL+"/colleges/c1")
	assert.Contains(t, page, "Tab deleted")
	assert.NotContains(t, page, "Admissions 2025")
}

func TestNoticeFlow(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	listURL := srv.URL + "/colleges/c1/notices"
	noticeURL := listURL + "/n1"

	resp := post(t, hc, listURL, url.Values{"title": {"Holiday"}, "date": {"2024-08-15"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1/notices", resp.Header.Get("Location"))
	_, page := get(t, hc, listURL)
	assert.Contains(t, page, "Notice created successfully")
	assert.Contains(t, page, "Holiday")
	assert.Contains(t, page, "Exam schedule")

	cms.rejectContent("Date is invalid")
	resp = post(t, hc, noticeURL, url.Values{"title": {"Exam schedule (revised)"}, "date": {"2024-05-02"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Could not update notice: Date is invalid")
	assert.Contains(t, body, `value="Exam schedule (revised)"`)

	cms.rejectContent("")
	buf, ct := multipartFiles(t,
		url.Values{"title": {"Exam schedule (revised)"}, "date": {"2024-05-02"}},
		"attachments", map[string][]byte{"rules.pdf": []byte("%PDF-1.4\n%rules\n")}, "rules.pdf")
	resp = postMultipart(t, hc, noticeURL, buf, ct)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1/notices/n1", resp.Header.Get("Location"))

	_, page = get(t, hc, noticeURL)
	assert.Contains(t, page, "Notice updated successfully")
	assert.Contains(t, page, "Exam schedule (revised)")
	assert.Contains(t, page, "https://cdn/rules.pdf")
	assert.NotContains(t, page, `name="attachment_url"`, "после успеха форма закрыта")

	cms.mu.Lock()
	n := cms.content.notices["n1"]
	cms.mu.Unlock()
	require.Len(t, n.Attachments, 1)
	assert.Equal(t, models.Attachment{ID: 1, Name: "rules.pdf", URL: "https://cdn/rules.pdf"}, n.Attachments[0])
}

func TestFestivalFlow(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	listURL := srv.URL + "/colleges/c1/festivals"
	festivalURL := listURL + "/f1"

	resp := post(t, hc, listURL, url.Values{"name": {"Winter Carnival"}, "date": {"2024-12-20"}, "time": {"18:00"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, page := get(t, hc, listURL)
	assert.Contains(t, page, "Festival created successfully")
	assert.Contains(t, page, "Winter Carnival")

	cms.rejectContent("Festival name is taken")
	resp = post(t, hc, festivalURL, url.Values{"name": {"Spring Fest 2025"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Could not update festival: Festival name is taken")
	assert.Contains(t, body, `name="current_banner_image"`)

	cms.rejectContent("")
	buf, ct := multipartFiles(t,
		url.Values{"name": {"Spring Fest 2025"}, "current_images": {"https://cdn/old.png"}},
		"images", map[string][]byte{"stage.png": pngHeader}, "stage.png")
	resp = postMultipart(t, hc, festivalURL, buf, ct)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1/festivals/f1", resp.Header.Get("Location"))

	_, page = get(t, hc, festivalURL)
	assert.Contains(t, page, "Festival updated successfully")
	assert.Contains(t, page, "<h1>Spring Fest 2025</h1>")
	assert.NotContains(t, page, `name="current_banner_image"`)

	cms.mu.Lock()
	images := cms.content.festivals["f1"].Images
	cms.mu.Unlock()
	assert.Equal(t, []string{"https://cdn/old.png", "https://cdn/stage.png"}, images)

	resp = post(t, hc, festivalURL+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/colleges/c1/festivals", resp.Header.Get("Location"))
	_, page = get(t, hc, listURL)
	assert.Contains(t, page, "Festival deleted")
	assert.NotContains(t, page, "Spring Fest 2025")
}

func TestHighlightFlow(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	listURL := srv.URL + "/colleges/c1/highlights"
	highlightURL := listURL + "/h1"

	resp := post(t, hc, listURL, url.Values{"title": {"Convocation"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, page := get(t, hc, listURL)
	assert.Contains(t, page, "Highlight created successfully")
	assert.Contains(t, page, "Convocation")

	cms.rejectContent("Title is too long")
	resp = post(t, hc, highlightURL, url.Values{"title": {"Sports Day 2025"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Could not update highlight: Title is too long")
	assert.Contains(t, body, `value="Sports Day 2025"`)

	cms.rejectContent("")
	resp = post(t, hc, highlightURL, url.Values{"title": {"Sports Day 2025"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, page = get(t, hc, highlightURL)
	assert.Contains(t, page, "Highlight updated successfully")
	assert.Contains(t, page, "<h1>Sports Day 2025</h1>")
	assert.NotContains(t, page, `name="current_banner_image"`)

	resp = post(t, hc, highlightURL+"/section", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	sectionPath := resp.Header.Get("Location")
	require.Regexp(t, `^/colleges/c1/highlights/h1/sections/hs\d+$`, sectionPath)

	resp, page = get(t, hc, srv.URL+sectionPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "Section created successfully")
	assert.Contains(t, page, "Sports Day 2025 Section")

	// у хайлайта уже есть секция: повторное создание ведёт в неё
	resp = post(t, hc, highlightURL+"/section", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, sectionPath, resp.Header.Get("Location"))
	cms.mu.Lock()
	assert.Equal(t, 1, cms.content.created["highlight_section"])
	cms.mu.Unlock()
}

func TestPageFlow(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	pageURL := srv.URL + "/pages/about"

	_, page := get(t, hc, srv.URL+"/pages")
	assert.Contains(t, page, "About")

	cms.rejectContent("Video URL is invalid")
	resp := post(t, hc, pageURL, url.Values{"content": {"New text"}, "video_url": {"https://video/x.mp4"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Could not update page: Video URL is invalid")
	assert.Contains(t, body, `id="video_url"`)
	assert.Contains(t, body, "New text")

	cms.rejectContent("")
	resp = post(t, hc, pageURL, url.Values{"content": {"New text"}, "video_url": {"https://video/x.mp4"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/pages/about", resp.Header.Get("Location"))

	_, page = get(t, hc, pageURL)
	assert.Contains(t, page, "Page updated successfully")
	assert.Contains(t, page, "New text")
	assert.Contains(t, page, "https://video/x.mp4")
	assert.NotContains(t, page, `id="video_url"`)
}

func TestSectionUpload_OversizedFileDoesNotBlockBatch(t *testing.T) {
	cms := newFakeCMS(t)
	srv, hc := dashboard(t, cms)
	login(t, srv, hc)
	sectionURL := srv.URL + "/colleges/c1/tabs/t1/sections/s1"

	post(t, hc, sectionURL, url.Values{"op": {"edit"}})

	big := append(append([]byte{}, pngHeader...), make([]byte, 6<<20)...)
	buf, ct := multipartFiles(t, url.Values{"op": {"upload_images"}}, "images",
		map[string][]byte{"big.png": big, "a.png": pngHeader, "b.png": pngHeader},
		"big.png", "a.png", "b.png")
	resp := postMultipart(t, hc, sectionURL, buf, ct)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, []string{"a.png", "b.png"}, cms.uploads())

	_, page := get(t, hc, sectionURL)
	assert.Contains(t, page, "big.png: file is too large")
	assert.Contains(t, page, "https://cdn/a.png")
	assert.Contains(t, page, "https://cdn/b.png")

	resp = post(t, hc, sectionURL, url.Values{"op": {"save"}, "name": {"About"}, "content": {"Welcome"}, "heading_present": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	patches := cms.sectionPatches()
	require.Len(t, patches, 1)
	require.Len(t, patches[0].Images, 2)
	assert.Equal(t, "https://cdn/a.png", patches[0].Images[0].URL)
	assert.Equal(t, "https://cdn/b.png", patches[0].Images[1].URL)
}
