package web

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"sync"

	"guest_list_services/src/app"
	m "guest_list_services/src/models"

	"github.com/gorilla/mux"
)

//go:embed templates/index.html
var templateFS embed.FS

// Server renders a GuestListApp as a single HTML page and turns form posts into app operations.
type Server struct {
	guestApp *app.GuestListApp
	page     *template.Template

	mu         sync.Mutex
	lastResult app.Result
}

type pageData struct {
	Loading      bool
	Error        string
	FirstName    string
	LastName     string
	Entries      []app.Entry
	Attending    []m.Guest
	NotAttending []m.Guest
}

func NewServer(guestApp *app.GuestListApp) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{guestApp: guestApp, page: page}, nil
}

func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.GETPage).Methods(http.MethodGet)
	router.HandleFunc("/healthz", GETHealth).Methods(http.MethodGet)
	router.HandleFunc("/guests", s.POSTNewGuest).Methods(http.MethodPost)
	router.HandleFunc("/guests/{id}/toggle", s.POSTToggleAttending).Methods(http.MethodPost)
	router.HandleFunc("/guests/{id}/remove", s.POSTRemoveGuest).Methods(http.MethodPost)
	router.HandleFunc("/reload", s.POSTReload).Methods(http.MethodPost)
	return router
}

func GETHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func (s *Server) GETPage(w http.ResponseWriter, r *http.Request) {
	entries := s.guestApp.Entries()
	guests := make([]m.Guest, 0, len(entries))
	for _, entry := range entries {
		guests = append(guests, entry.Guest)
	}
	attending, notAttending := m.PartitionByAttendance(guests)

	data := pageData{
		Loading:      s.guestApp.Loading(),
		Error:        s.takeError(),
		FirstName:    s.guestApp.FirstName(),
		LastName:     s.guestApp.LastName(),
		Entries:      entries,
		Attending:    attending,
		NotAttending: notAttending,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		log.Printf("Error executing page template: %v", err)
	}
}

// POSTNewGuest takes both drafts from the form; pressing Enter in the
// last-name field submits the same form as the Add Guest button.
func (s *Server) POSTNewGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	s.finish(w, r, s.guestApp.SubmitGuest(r.Context(), r.FormValue("firstName"), r.FormValue("lastName")))
}

func (s *Server) POSTToggleAttending(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.guestApp.ToggleAttending(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) POSTRemoveGuest(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.guestApp.RemoveGuest(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) POSTReload(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.guestApp.LoadGuestList(r.Context()))
}

// Start runs the initial load for the page.
func (s *Server) Start(ctx context.Context) {
	s.remember(s.guestApp.Start(ctx))
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request, result app.Result) {
	s.remember(result)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) remember(result app.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = result
}

// takeError returns the message of the last failed operation once.
func (s *Server) takeError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.lastResult
	s.lastResult = app.Result{}
	if result.OK() {
		return ""
	}
	return "Could not " + result.Op + ". Please try again."
}
