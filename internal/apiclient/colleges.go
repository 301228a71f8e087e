package apiclient

import (
	"context"
	"net/http"

	"collegeadmin/internal/models"
)

// Colleges

func (c *Client) ListColleges(ctx context.Context) ([]models.College, error) {
	var out []models.College
	if err := call(ctx, c, http.MethodGet, collegesPrefix, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCollege(ctx context.Context, id string) (*models.College, error) {
	var out models.College
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCollege(ctx context.Context, in models.CollegeInput) (*models.College, error) {
	var out models.College
	if err := call(ctx, c, http.MethodPost, collegesPrefix, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCollege(ctx context.Context, id string, in models.CollegeInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, collegesPrefix+"/"+seg(id), in, nil)
}

// Tabs

func (c *Client) ListTabs(ctx context.Context, collegeID string) ([]models.Tab, error) {
	var out []models.Tab
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/"+seg(collegeID)+"/tabs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTab(ctx context.Context, collegeID, tabID string) (*models.Tab, error) {
	var out models.Tab
	path := collegesPrefix + "/" + seg(collegeID) + "/tabs/" + seg(tabID)
	if err := call(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddTab(ctx context.Context, collegeID string, in models.TabInput) error {
	return call[struct{}](ctx, c, http.MethodPost, collegesPrefix+"/"+seg(collegeID)+"/tabs", in, nil)
}

// UpdateTab шлёт PATCH /tabs/{tabId}, без id колледжа.
func (c *Client) UpdateTab(ctx context.Context, tabID string, in models.TabInput) error {
	return call[struct{}](ctx, c, http.MethodPatch, collegesPrefix+"/tabs/"+seg(tabID), in, nil)
}

func (c *Client) DeleteTab(ctx context.Context, collegeID, tabID string) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/tabs/" + seg(tabID)
	return call[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
}

// Sections

func (c *Client) ListSections(ctx context.Context, tabID string) ([]models.Section, error) {
	var out []models.Section
	if err := call(ctx, c, http.MethodGet, collegesPrefix+"/tabs/"+seg(tabID)+"/sections", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSection(ctx context.Context, collegeID, tabID, sectionID string) (*models.Section, error) {
	var out models.Section
	path := collegesPrefix + "/" + seg(collegeID) + "/tabs/" + seg(tabID) + "/sections/" + seg(sectionID)
	if err := call(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddSection(ctx context.Context, collegeID, tabID string, in models.CreateSectionRequest) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/tabs/" + seg(tabID) + "/sections"
	return call[struct{}](ctx, c, http.MethodPost, path, in, nil)
}

func (c *Client) UpdateSection(ctx context.Context, collegeID, sectionID string, in models.SectionUpdate) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/sections/" + seg(sectionID)
	return call[struct{}](ctx, c, http.MethodPatch, path, in, nil)
}

func (c *Client) DeleteSection(ctx context.Context, collegeID, tabID, sectionID string) error {
	path := collegesPrefix + "/" + seg(collegeID) + "/tabs/" + seg(tabID) + "/sections/" + seg(sectionID)
	return call[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
}
