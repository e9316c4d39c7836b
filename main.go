package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"chow/ai"
	"chow/api"
	"chow/app"
	"chow/filters"
	"chow/home"
	"chow/places"
)

var EnvFlag = flag.String("env", "dev", "Set the environment")
var ServeFlag = flag.Bool("serve", false, "Run the server")
var AddressFlag = flag.String("address", ":8080", "Address for server")

func main() {
	flag.Parse()

	if !*ServeFlag {
		fmt.Println("--serve not set")
		return
	}

	// local overrides; absence is fine in production
	if err := godotenv.Load(); err == nil {
		app.Log("main", "Loaded .env")
	}

	// construct the API clients
	places.DefaultClient = places.NewClient(os.Getenv("GOOGLE_PLACES_API_KEY"))
	var models []string
	for _, m := range strings.Split(os.Getenv("GEMINI_MODELS"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	ai.DefaultClient = ai.NewClient(os.Getenv("GEMINI_API_KEY"), models)

	if !places.DefaultClient.Ready() {
		app.Log("main", "GOOGLE_PLACES_API_KEY not set, place search disabled")
	}
	if !ai.DefaultClient.Ready() {
		app.Log("main", "GEMINI_API_KEY not set, AI features disabled")
	}

	// render the api markdown
	apiDoc := app.Render([]byte(api.Markdown()))
	apiHTML := app.RenderHTML("en", "API", "API documentation", string(apiDoc))

	// warm the local index from cached search results
	places.Load()

	// serve the finder
	http.HandleFunc("/", home.Handler)

	// filter state changes
	http.HandleFunc("/filters", filters.Handler)

	// place search
	http.HandleFunc("/search", places.SearchHandler)

	// place details
	http.HandleFunc("/place", places.DetailHandler)

	// share QR code
	http.HandleFunc("/place/qr", places.QRHandler)

	// review summary
	http.HandleFunc("/summary", ai.SummaryHandler)

	// restaurant recommendations
	http.HandleFunc("/recommend", ai.RecommendHandler)

	// operational status
	http.HandleFunc("/status", app.StatusHandler)

	// api docs
	http.Handle("/api", app.ServeHTML(apiHTML))

	// static assets
	http.Handle("/chow.css", app.Serve())
	http.Handle("/chow.js", app.Serve())

	var handler http.Handler = http.DefaultServeMux
	if *EnvFlag == "dev" {
		handler = cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Accept"},
			AllowCredentials: true,
		}).Handler(handler)
	}

	fmt.Println("Starting server on", *AddressFlag)

	if err := http.ListenAndServe(*AddressFlag, handler); err != nil {
		fmt.Printf("Server error: %v\n", err)
	}
}
