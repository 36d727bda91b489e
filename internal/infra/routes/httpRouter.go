package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"multimodal-server/internal/domain/dto"
	"multimodal-server/internal/infra/handlers"
)

type Routes struct {
	Mux             *mux.Router
	UploadHandler   *handlers.UploadHandlers
	MetadataHandler *handlers.UserMetadataHandlers
	ServerInfo      dto.ServerInfo
	UploadFS        http.FileSystem
}

func NewRoutes(mux *mux.Router, uploadHandler *handlers.UploadHandlers, metadataHandler *handlers.UserMetadataHandlers, serverInfo dto.ServerInfo, uploadFS http.FileSystem) *Routes {
	return &Routes{mux, uploadHandler, metadataHandler, serverInfo, uploadFS}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/api/upload", r.UploadHandler.Upload).Methods(http.MethodPost)
	r.Mux.HandleFunc("/api/user", r.MetadataHandler.SaveMetadata).Methods(http.MethodPost)

	r.Mux.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(r.UploadFS)),
	).Methods(http.MethodGet)

	r.Mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(r.ServerInfo)
	}).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)

	r.Mux.NotFoundHandler = http.HandlerFunc(notFound)
	r.Mux.MethodNotAllowedHandler = http.HandlerFunc(notFound)
}

// notFound answers every unmatched route with the JSON body the API
// contract promises.
func notFound(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(dto.NotFoundResponse{
		Error:  "Endpoint not found",
		Path:   req.URL.Path,
		Method: req.Method,
	})
}
