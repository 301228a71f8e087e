package models

import (
	"encoding/json"
	"strings"
)

// Response — общий конверт ответов CMS-бэкенда.
type Response[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
	Success bool   `json:"success"`
}

// Ref — ссылка на родительскую сущность. Бэкенд отдаёт её либо строкой id,
// либо populate-объектом; в запросах всегда пишется id.
type Ref struct {
	ID   string
	Name string
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*r = Ref{}
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = Ref{ID: id}
		return nil
	}
	var obj struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Name = obj.Name
	if r.Name == "" {
		r.Name = obj.Title
	}
	return nil
}
