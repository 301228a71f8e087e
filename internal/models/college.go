package models

import "time"

type College struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Logo           string    `json:"logo"`
	BannerImage    string    `json:"banner_image"`
	CarouselImages []string  `json:"carousel_images"`
	Notices        []Ref     `json:"notices"`
	Results        []Ref     `json:"results"`
	Tabs           []Ref     `json:"tabs"`
	PaymentID      string    `json:"payment_id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// swagger:model CollegeInput
type CollegeInput struct {
	Name           string   `json:"name"            example:"St. Xavier's College"`
	Description    string   `json:"description"     example:"Autonomous college"`
	Logo           string   `json:"logo,omitempty"`
	BannerImage    string   `json:"banner_image,omitempty"`
	CarouselImages []string `json:"carousel_images"`
}

type Tab struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Sections    []Ref    `json:"sections"`
	IsCourses   bool     `json:"is_courses"`
	Courses     []string `json:"courses"`
}

type TabInput struct {
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description"`
	IsCourses   bool   `json:"is_courses"`
}
