package routes

import (
	"net/http"

	"collegeadmin/internal/handlers"
	"collegeadmin/internal/middleware"
	"collegeadmin/internal/session"
	"collegeadmin/internal/utils/helpers"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	sm *session.Manager,
	onExpire func(sessionID string),
	adminRoles []string,
	authHandler *handlers.AuthHandler,
	collegeH *handlers.CollegeHandler,
	tabH *handlers.TabHandler,
	sectionH *handlers.SectionHandler,
	noticeH *handlers.NoticeHandler,
	festivalH *handlers.FestivalHandler,
	highlightH *handlers.HighlightHandler,
	pageH *handlers.PageHandler,
	apiH *handlers.APIHandler,
) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.JSON(w, http.StatusOK, "ok")
	}).Methods("GET")

	// --- Публичные маршруты ---
	auth := router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/signup", authHandler.SignUpPage).Methods("GET")
	auth.HandleFunc("/signup", authHandler.SignUp).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// --- Только для вошедших ---
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireUser(sm, onExpire), middleware.AnyRole(adminRoles...))

	protected.HandleFunc("/", collegeH.Home).Methods("GET")
	protected.HandleFunc("/colleges", collegeH.List).Methods("GET")
	protected.HandleFunc("/colleges", collegeH.Create).Methods("POST")
	protected.HandleFunc("/colleges/{collegeId}", collegeH.Detail).Methods("GET")
	protected.HandleFunc("/colleges/{collegeId}", collegeH.Update).Methods("POST")

	college := protected.PathPrefix("/colleges/{collegeId}").Subrouter()

	college.HandleFunc("/tabs", tabH.Add).Methods("POST")
	college.HandleFunc("/tabs/{tabId}", tabH.Detail).Methods("GET")
	college.HandleFunc("/tabs/{tabId}", tabH.Update).Methods("POST")
	college.HandleFunc("/tabs/{tabId}/delete", tabH.Delete).Methods("POST")

	college.HandleFunc("/tabs/{tabId}/sections", sectionH.Add).Methods("POST")
	college.HandleFunc("/tabs/{tabId}/sections/{sectionId}", sectionH.Editor).Methods("GET")
	college.HandleFunc("/tabs/{tabId}/sections/{sectionId}", sectionH.Apply).Methods("POST")
	college.HandleFunc("/tabs/{tabId}/sections/{sectionId}/delete", sectionH.Delete).Methods("POST")

	college.HandleFunc("/notices", noticeH.List).Methods("GET")
	college.HandleFunc("/notices", noticeH.Create).Methods("POST")
	college.HandleFunc("/notices/{noticeId}", noticeH.Detail).Methods("GET")
	college.HandleFunc("/notices/{noticeId}", noticeH.Update).Methods("POST")
	college.HandleFunc("/notices/{noticeId}/delete", noticeH.Delete).Methods("POST")

	college.HandleFunc("/festivals", festivalH.List).Methods("GET")
	college.HandleFunc("/festivals", festivalH.Create).Methods("POST")
	college.HandleFunc("/festivals/{festivalId}", festivalH.Detail).Methods("GET")
	college.HandleFunc("/festivals/{festivalId}", festivalH.Update).Methods("POST")
	college.HandleFunc("/festivals/{festivalId}/delete", festivalH.Delete).Methods("POST")

	college.HandleFunc("/highlights", highlightH.List).Methods("GET")
	college.HandleFunc("/highlights", highlightH.Create).Methods("POST")
	college.HandleFunc("/highlights/{highlightId}", highlightH.Detail).Methods("GET")
	college.HandleFunc("/highlights/{highlightId}", highlightH.Update).Methods("POST")
	college.HandleFunc("/highlights/{highlightId}/delete", highlightH.Delete).Methods("POST")
	college.HandleFunc("/highlights/{highlightId}/section", highlightH.CreateSection).Methods("POST")
	college.HandleFunc("/highlights/{highlightId}/sections/{sectionId}", sectionH.Editor).Methods("GET")
	college.HandleFunc("/highlights/{highlightId}/sections/{sectionId}", sectionH.Apply).Methods("POST")
	college.HandleFunc("/highlights/{highlightId}/sections/{sectionId}/delete", sectionH.Delete).Methods("POST")

	protected.HandleFunc("/pages", pageH.List).Methods("GET")
	protected.HandleFunc("/pages/{pageId}", pageH.Detail).Methods("GET")
	protected.HandleFunc("/pages/{pageId}", pageH.Update).Methods("POST")

	// --- JSON API ---
	api := protected.PathPrefix("/api").Subrouter()
	api.HandleFunc("/colleges/{collegeId}/tabs/{tabId}/sections/{sectionId}/layout", apiH.SectionLayout).Methods("GET")
	api.HandleFunc("/upload", apiH.Upload).Methods("POST")
}
