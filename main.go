package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Nwakakukaks/mont/config"
	"github.com/Nwakakukaks/mont/controllers"
	"github.com/Nwakakukaks/mont/handoff"
	"github.com/Nwakakukaks/mont/store"
	"github.com/Nwakakukaks/mont/uploads"
)

// spaHandler implements the http.Handler interface, so we can use it
// to respond to HTTP requests. The path to the static directory and
// path to the index file within that static directory are used to
// serve the SPA in the given static directory.
type spaHandler struct {
	staticPath string
	indexPath  string
}

// ServeHTTP inspects the URL path to locate a file within the static dir
// on the SPA handler. If a file is found, it will be served. If not, the
// file located at the index path on the SPA handler will be served. This
// is suitable behavior for serving an SPA (single page application).
func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// get the absolute path to prevent directory traversal
	path, err := filepath.Abs(r.URL.Path)
	if err != nil {
		// if we failed to get the absolute path respond with a 400 bad request
		// and stop
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// prepend the path with the path to the static directory
	path = filepath.Join(h.staticPath, path)

	// check whether a file exists at the given path
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		// file does not exist, serve index.html
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	} else if err != nil {
		// if we got an error (that wasn't that the file doesn't exist) stating the
		// file, return a 500 internal server error and stop
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// otherwise, use http.FileServer to serve the static dir
	http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
}

func main() {
	// Load configuration
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error reading configuration: ", err)
	}

	// Logging options
	customFormatter := new(log.TextFormatter)
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)

	// Connect stores
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.Dial(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	// The handoff slot sits in Redis when available so sessions survive a
	// node change; otherwise it stays in process memory.
	var slot handoff.Slot
	if cfg.RedisAddr != "" {
		slot = handoff.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("Using Redis handoff slot at ", cfg.RedisAddr)
	} else {
		slot = handoff.NewMemory()
	}

	controllers.Use(controllers.Deps{
		Store:        db,
		Slot:         slot,
		Uploader:     uploads.NewCloudinary(cfg.CloudinaryCloud, cfg.CloudinaryPreset),
		JWTKey:       []byte(cfg.JWTKey),
		OAuthURL:     cfg.OAuthURL,
		OAuthProfile: cfg.OAuthProfile,
		AuthToken:    cfg.AuthToken,
	})

	// Create new router
	router := mux.NewRouter()

	log.Info("Started server on port ", cfg.Port)

	// Handle API calls
	router.HandleFunc("/api/form", controllers.SaveForm).Methods("POST")
	router.HandleFunc("/api/forms", controllers.GetAllForms).Methods("GET")
	router.HandleFunc("/api/form/{id}", controllers.SaveForm).Methods("PUT")
	router.HandleFunc("/api/form/{id}", controllers.GetForm).Methods("GET")
	router.HandleFunc("/api/form/{id}", controllers.DeleteForm).Methods("DELETE")
	router.HandleFunc("/api/onboarding-form", controllers.SaveOnboardingForm).Methods("POST")
	router.HandleFunc("/api/onboarding-form/{id}", controllers.SaveOnboardingForm).Methods("PUT")
	router.HandleFunc("/api/onboarding-forms", controllers.GetOnboardingForms).Methods("GET")
	router.HandleFunc("/api/form/{formid}/controls", controllers.GetFormControls).Methods("GET")
	router.HandleFunc("/api/response/{formid}", controllers.CreateResponse).Methods("POST")
	router.HandleFunc("/api/responses/{formid}", controllers.GetResponses).Methods("GET")
	router.HandleFunc("/api/upload", controllers.Upload).Methods("POST")
	router.HandleFunc("/api/handoff", controllers.CreateHandoff).Methods("POST")
	router.HandleFunc("/api/editor/state", controllers.GetEditorState).Methods("GET")

	// Handle auth API calls
	router.HandleFunc("/api/login", controllers.Login).Methods("POST", "GET")
	router.HandleFunc("/api/logout", controllers.Logout).Methods("GET")

	// Handle SPA
	spa := spaHandler{staticPath: cfg.StaticPath, indexPath: "index.html"}
	router.PathPrefix("/").Handler(spa)

	// Start listening
	err = http.ListenAndServe(":"+cfg.Port, router)
	if err != nil {
		log.Error(err)
	}
}
