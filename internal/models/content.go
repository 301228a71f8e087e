package models

import "time"

// Attachment — файл объявления. id — порядковый номер в списке.
type Attachment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Notice struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        string       `json:"date"`
	Attachments []Attachment `json:"attachments"`
	Link        string       `json:"link"`
	College     Ref          `json:"college"`
}

type NoticeInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        string       `json:"date"`
	Attachments []Attachment `json:"attachments"`
	Link        string       `json:"link"`
	CollegeID   string       `json:"college_id"`
}

type Festival struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	BannerImage string   `json:"banner_image"`
	Images      []string `json:"images"`
	College     Ref      `json:"college_id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
}

type FestivalInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	BannerImage string   `json:"banner_image"`
	Images      []string `json:"images"`
	CollegeID   string   `json:"college_id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
}

type Highlight struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	BannerImage    string   `json:"banner_image"`
	CarouselImages []string `json:"carousel_images"`
	College        Ref      `json:"college"`
	Section        Ref      `json:"section"`
}

type HighlightInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	BannerImage    string   `json:"banner_image"`
	CarouselImages []string `json:"carousel_images"`
	CollegeID      string   `json:"college_id"`
}

// Page — статическая страница публичного сайта (/cms/contents).
type Page struct {
	ID             string    `json:"_id"`
	Page           string    `json:"page"`
	Content        string    `json:"content"`
	CarouselImages []string  `json:"carousel_images"`
	VideoURL       string    `json:"video_url"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type PageInput struct {
	Content        string   `json:"content"`
	CarouselImages []string `json:"carousel_images"`
	VideoURL       string   `json:"video_url"`
}
