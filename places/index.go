package places

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/asim/quadtree"
	_ "modernc.org/sqlite"

	"chow/app"
	"chow/catalog"
)

// The local index keeps every place the provider has ever returned, in an
// in-memory quadtree for geo queries and a SQLite FTS5 table for keyword
// queries. It serves as the offline fallback when the provider is down.

var (
	qtree *quadtree.QuadTree

	placesDB    *sql.DB
	placesDBMu  sync.Mutex
	placesDBOne sync.Once
)

// geohash base32 alphabet
const ghChars = "0123456789bcdefghjkmnpqrstuvwxyz"

// encodeGeohash encodes lat/lng into a geohash string of the given precision.
func encodeGeohash(lat, lng float64, precision int) string {
	minLat, maxLat := -90.0, 90.0
	minLng, maxLng := -180.0, 180.0
	result := make([]byte, precision)
	bits := 0
	hashVal := 0
	isEven := true

	for i := 0; i < precision; {
		if isEven {
			mid := (minLng + maxLng) / 2
			if lng >= mid {
				hashVal = (hashVal << 1) | 1
				minLng = mid
			} else {
				hashVal <<= 1
				maxLng = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				hashVal = (hashVal << 1) | 1
				minLat = mid
			} else {
				hashVal <<= 1
				maxLat = mid
			}
		}
		isEven = !isEven
		bits++
		if bits == 5 {
			result[i] = ghChars[hashVal]
			i++
			bits = 0
			hashVal = 0
		}
	}
	return string(result)
}

// initIndex creates the global quadtree covering the whole world.
func initIndex() {
	center := quadtree.NewPoint(0, 0, nil)
	half := quadtree.NewPoint(90, 180, nil)
	boundary := quadtree.NewAABB(center, half)

	mutex.Lock()
	qtree = quadtree.New(boundary, 0, nil)
	mutex.Unlock()

	app.IndexStatsFunc = indexStats
}

// insertIndex adds places to the quadtree and the SQLite FTS index.
func insertIndex(places []*Place) {
	if len(places) == 0 {
		return
	}
	mutex.Lock()
	if qtree != nil {
		for _, p := range places {
			qtree.Insert(quadtree.NewPoint(p.Lat, p.Lng, p))
		}
	}
	mutex.Unlock()
	indexPlaces(places)
}

// queryLocal queries the in-memory quadtree for places within radiusM metres.
// Returns nil if the quadtree is not yet initialised.
func queryLocal(lat, lng float64, radiusM int) []*Place {
	mutex.RLock()
	defer mutex.RUnlock()

	if qtree == nil {
		return nil
	}

	center := quadtree.NewPoint(lat, lng, nil)
	half := center.HalfPoint(float64(radiusM))
	boundary := quadtree.NewAABB(center, half)

	points := qtree.Search(boundary)

	results := make([]*Place, 0, len(points))
	for _, pt := range points {
		if p, ok := pt.Data().(*Place); ok {
			dist := haversine(lat, lng, p.Lat, p.Lng)
			if dist > float64(radiusM) {
				continue // bounding box is approximate; filter to actual radius
			}
			pCopy := *p
			pCopy.Distance = dist
			results = append(results, &pCopy)
		}
	}
	sortByDistance(results)
	return results
}

// searchLocal looks up previously indexed places for a city, preferring the
// keyword index, falling back to a pure geo query. Results outside the
// city's geometry are discarded the same way provider results are.
func searchLocal(query string, city *catalog.City, radiusM int) []*Place {
	var results []*Place
	if strings.TrimSpace(query) != "" {
		if fts, err := searchPlacesFTS(query, city.Lat, city.Lng, radiusM); err == nil {
			results = fts
		} else {
			app.Log("places", "FTS query failed: %v", err)
		}
	}
	if len(results) == 0 {
		results = queryLocal(city.Lat, city.Lng, radiusM)
	}
	if city.Bounds != nil {
		kept := results[:0]
		for _, p := range results {
			if city.Bounds.Contains(p.Lat, p.Lng) {
				kept = append(kept, p)
			}
		}
		results = kept
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// dataDir returns the root directory for on-disk state.
func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return os.ExpandEnv("$HOME/.chow")
}

// initPlacesDB opens (or creates) the dedicated places SQLite database.
func initPlacesDB() error {
	var initErr error
	placesDBOne.Do(func() {
		dbPath := filepath.Join(dataDir(), "data", "places.db")
		os.MkdirAll(filepath.Dir(dbPath), 0700)

		var err error
		placesDB, err = sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000")
		if err != nil {
			initErr = fmt.Errorf("places db open: %w", err)
			return
		}
		placesDB.SetMaxOpenConns(4)
		placesDB.SetMaxIdleConns(4)

		_, err = placesDB.Exec(`
			CREATE TABLE IF NOT EXISTS places (
				place_id   TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				address    TEXT,
				lat        REAL NOT NULL,
				lng        REAL NOT NULL,
				geohash    TEXT,
				rating     REAL,
				ratings    INTEGER,
				price      INTEGER,
				types      TEXT,
				indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_places_lat     ON places(lat);
			CREATE INDEX IF NOT EXISTS idx_places_lng     ON places(lng);
			CREATE INDEX IF NOT EXISTS idx_places_geohash ON places(geohash);

			CREATE VIRTUAL TABLE IF NOT EXISTS places_fts USING fts5(
				place_id UNINDEXED,
				name,
				address,
				types,
				tokenize='unicode61 remove_diacritics 1'
			);
		`)
		if err != nil {
			initErr = fmt.Errorf("places db schema: %w", err)
			return
		}
	})
	return initErr
}

// getPlacesDB returns the shared places database, initialising it if needed.
func getPlacesDB() (*sql.DB, error) {
	if err := initPlacesDB(); err != nil {
		return nil, err
	}
	return placesDB, nil
}

// indexPlaces batch-upserts places into the SQLite places table and FTS index.
func indexPlaces(places []*Place) {
	if len(places) == 0 {
		return
	}
	db, err := getPlacesDB()
	if err != nil {
		app.Log("places", "indexPlaces: DB error: %v", err)
		return
	}

	placesDBMu.Lock()
	defer placesDBMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		app.Log("places", "indexPlaces: begin tx: %v", err)
		return
	}

	mainStmt, err := tx.Prepare(`
		INSERT INTO places (place_id, name, address, lat, lng, geohash, rating, ratings, price, types)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(place_id) DO UPDATE SET
			name=excluded.name, address=excluded.address,
			lat=excluded.lat, lng=excluded.lng, geohash=excluded.geohash,
			rating=excluded.rating, ratings=excluded.ratings, price=excluded.price,
			types=excluded.types, indexed_at=CURRENT_TIMESTAMP
	`)
	if err != nil {
		tx.Rollback()
		app.Log("places", "indexPlaces: prepare: %v", err)
		return
	}
	defer mainStmt.Close()

	ftsDelStmt, err := tx.Prepare(`DELETE FROM places_fts WHERE place_id = ?`)
	if err != nil {
		tx.Rollback()
		app.Log("places", "indexPlaces: prepare fts del: %v", err)
		return
	}
	defer ftsDelStmt.Close()

	ftsInsStmt, err := tx.Prepare(`INSERT INTO places_fts (place_id, name, address, types) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		app.Log("places", "indexPlaces: prepare fts ins: %v", err)
		return
	}
	defer ftsInsStmt.Close()

	for _, p := range places {
		gh := encodeGeohash(p.Lat, p.Lng, 6)
		types := strings.Join(p.Types, " ")
		if _, err := mainStmt.Exec(p.PlaceID, p.Name, p.Address, p.Lat, p.Lng, gh,
			p.Rating, p.UserRatingsTotal, p.PriceLevel, types); err != nil {
			app.Log("places", "indexPlaces: insert %s: %v", p.PlaceID, err)
			continue
		}
		ftsDelStmt.Exec(p.PlaceID)
		if _, err := ftsInsStmt.Exec(p.PlaceID, p.Name, p.Address, types); err != nil {
			app.Log("places", "indexPlaces: fts insert %s: %v", p.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		app.Log("places", "indexPlaces: commit: %v", err)
	}
}

// sanitizeFTSQuery converts a raw query into a safe FTS5 MATCH expression.
// Each word is treated as a quoted literal prefix match.
func sanitizeFTSQuery(q string) string {
	q = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '(', ')', '*', '+', '^', '-', '~', ':', '.':
			return ' '
		}
		return r
	}, q)
	words := strings.Fields(q)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = `"` + strings.ToLower(w) + `"*`
	}
	return strings.Join(words, " ")
}

// searchPlacesFTS searches the local SQLite index using FTS5 with a
// bounding-box geo pre-filter, then an exact haversine distance check.
func searchPlacesFTS(query string, refLat, refLng float64, radiusM int) ([]*Place, error) {
	db, err := getPlacesDB()
	if err != nil {
		return nil, err
	}

	ftsQ := sanitizeFTSQuery(query)
	if ftsQ == "" {
		return nil, nil
	}

	latDelta := float64(radiusM) / 111000.0
	lngDelta := float64(radiusM) / (111000.0 * math.Cos(refLat*math.Pi/180))

	const limit = 200
	rows, err := db.Query(`
		SELECT p.place_id, p.name, p.address, p.lat, p.lng, p.rating, p.ratings, p.price, p.types
		FROM places p
		WHERE p.lat BETWEEN ? AND ?
		  AND p.lng BETWEEN ? AND ?
		  AND p.place_id IN (SELECT place_id FROM places_fts WHERE places_fts MATCH ?)
		LIMIT ?`,
		refLat-latDelta, refLat+latDelta,
		refLng-lngDelta, refLng+lngDelta,
		ftsQ, limit)
	if err != nil {
		return nil, fmt.Errorf("places FTS query: %w", err)
	}
	defer rows.Close()

	var result []*Place
	for rows.Next() {
		p := &Place{}
		var types string
		if err := rows.Scan(&p.PlaceID, &p.Name, &p.Address, &p.Lat, &p.Lng,
			&p.Rating, &p.UserRatingsTotal, &p.PriceLevel, &types); err != nil {
			continue
		}
		if types != "" {
			p.Types = strings.Fields(types)
		}
		dist := haversine(refLat, refLng, p.Lat, p.Lng)
		if dist > float64(radiusM) {
			continue // outside actual radius (bounding box is an approximation)
		}
		p.Distance = dist
		result = append(result, p)
	}

	sortByDistance(result)
	return result, nil
}

// indexStats reports the number of indexed places and cached search queries
// for the status page.
func indexStats() (indexed int, cached int) {
	db, err := getPlacesDB()
	if err != nil {
		return 0, 0
	}
	db.QueryRow(`SELECT COUNT(*) FROM places`).Scan(&indexed)
	if DefaultClient != nil {
		cached = DefaultClient.cache.ItemCount()
	}
	return indexed, cached
}
