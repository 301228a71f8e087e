package apiclient

import (
	"context"
	"net/http"

	"collegeadmin/internal/models"
)

// Notices

func (c *Client) ListNotices(ctx context.Context, collegeID string) ([]models.Notice, error) {
	var out []models.Notice
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/"+seg(collegeID)+"/notices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNotice(ctx context.Context, collegeID, noticeID string) (*models.Notice, error) {
	var out models.Notice
	path := collegesPrefix + "/" + seg(collegeID) + "/notices/" + seg(noticeID)
	if err := call(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddNotice(ctx context.Context, in models.NoticeInput) error {
	return call[struct{}](ctx, c, http.MethodPost, collegesPrefix+"/"+seg(in.CollegeID)+"/notices", in, nil)
}

func (c *Client) UpdateNotice(ctx context.Context, noticeID string, in models.NoticeInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, collegesPrefix+"/notices/"+seg(noticeID), in, nil)
}

func (c *Client) DeleteNotice(ctx context.Context, collegeID, noticeID string) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/notices/" + seg(noticeID)
	return call[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
}

// Festivals

func (c *Client) ListFestivals(ctx context.Context, collegeID string) ([]models.Festival, error) {
	var out []models.Festival
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/"+seg(collegeID)+"/festivals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFestival(ctx context.Context, collegeID, festivalID string) (*models.Festival, error) {
	var out models.Festival
	path := collegesPrefix + "/" + seg(collegeID) + "/festivals/" + seg(festivalID)
	if err := call(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFestival(ctx context.Context, in models.FestivalInput) error {
	return call[struct{}](ctx, c, http.MethodPost, collegesPrefix+"/"+seg(in.CollegeID)+"/festivals", in, nil)
}

func (c *Client) UpdateFestival(ctx context.Context, festivalID string, in models.FestivalInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, collegesPrefix+"/festivals/"+seg(festivalID), in, nil)
}

func (c *Client) DeleteFestival(ctx context.Context, collegeID, festivalID string) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/festivals/" + seg(festivalID)
	return call[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
}

// Highlights

func (c *Client) ListHighlights(ctx context.Context, collegeID string) ([]models.Highlight, error) {
	var out []models.Highlight
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/"+seg(collegeID)+"/highlights", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHighlight(ctx context.Context, collegeID, highlightID string) (*models.Highlight, error) {
	var out models.Highlight
	path := collegesPrefix + "/" + seg(collegeID) + "/highlights/" + seg(highlightID)
	if err := call(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateHighlight(ctx context.Context, in models.HighlightInput) error {
	return call[struct{}](ctx, c, http.MethodPost, collegesPrefix+"/"+seg(in.CollegeID)+"/highlights", in, nil)
}

func (c *Client) UpdateHighlight(ctx context.Context, highlightID string, in models.HighlightInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, collegesPrefix+"/highlights/"+seg(highlightID), in, nil)
}

func (c *Client) DeleteHighlight(ctx context.Context, collegeID, highlightID string) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/highlights/" + seg(highlightID)
	return call[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
}

// AddHighlightSection создаёт секцию, принадлежащую хайлайту.
// Бэкенд возвращает созданную секцию, её id сохраняется в хайлайте.
func (c *Client) AddHighlightSection(ctx context.Context, collegeID, highlightID string, in models.CreateSectionRequest) (*models.Section, error) {
	var out models.Section
	path := collegesPrefix + "/" + seg(collegeID) + "/highlights/" + seg(highlightID) + "/sections"
	if err := call(ctx, c, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pages (/cms/contents)

func (c *Client) ListPages(ctx context.Context) ([]models.Page, error) {
	var out []models.Page
	if err := call(ctx, c, http.MethodGet, contentsPrefix+"/pages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPage(ctx context.Context, id string) (*models.Page, error) {
	var out models.Page
	if err := call(ctx, c, http.MethodGet, contentsPrefix+"/pages/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePageContent(ctx context.Context, id string, in models.PageInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, contentsPrefix+"/pages/"+seg(id), in, nil)
}

// Auth

func (c *Client) Login(ctx context.Context, in models.LoginRequest) (*models.User, error) {
	var out models.User
	if err := call(ctx, c, http.MethodPost, authPrefix+"/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignUp(ctx context.Context, in models.SignUpRequest) error {
	return call[struct{}](ctx, c, http.MethodPost, authPrefix+"/signup", in, nil)
}
