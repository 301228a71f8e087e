package models

// User — запись, которую бэкенд возвращает при логине. Хранится в сессии целиком.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"admin@college.edu"`
	Password string `json:"password" example:"secret"`
}

// swagger:model SignUpRequest
type SignUpRequest struct {
	Name     string `json:"name"     example:"Admin"`
	Email    string `json:"email"    example:"admin@college.edu"`
	Password string `json:"password" example:"secret"`
	Role     string `json:"role"     example:"admin"`
}
