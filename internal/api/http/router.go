package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint onto a gorilla router. Authentication is
// enforced per route: sync and renting need a session, fleet management
// needs an admin session.
func NewRouter(
	auth *AuthHandler,
	vehicles *VehicleHandler,
	rentals *RentalHandler,
	sync *SyncHandler,
	session *SessionMiddleware,
	uploadDir string,
) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)

	api.HandleFunc("/data/sync", session.RequireSession(sync.Sync)).Methods(http.MethodGet)

	rentRoutes := api.PathPrefix("/rent").Subrouter()
	rentRoutes.HandleFunc("/create", session.RequireSession(rentals.Create)).Methods(http.MethodPost)
	rentRoutes.HandleFunc("/return", session.RequireAdmin(rentals.Return)).Methods(http.MethodPost)

	api.HandleFunc("/vehicle/manage", session.RequireAdmin(vehicles.Manage)).Methods(http.MethodPost)
	api.HandleFunc("/vehicle/delete", session.RequireAdmin(vehicles.Delete)).Methods(http.MethodPost)

	r.PathPrefix("/static/uploads/").Handler(
		http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(uploadDir))))

	return r
}
