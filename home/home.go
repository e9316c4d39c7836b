// Package home renders the restaurant finder: the single page tying together
// the filter sidebar, the map, the result list and the detail panel. All
// dynamic behaviour goes through the JSON endpoints; this package only ships
// the shell and its inline script.
package home

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"chow/app"
	"chow/catalog"
	"chow/filters"
)

// uiStrings are the localized labels of the finder page.
type uiStrings struct {
	Tagline       string `json:"tagline"`
	SearchHint    string `json:"searchHint"`
	SearchButton  string `json:"searchButton"`
	Filters       string `json:"filters"`
	Country       string `json:"country"`
	City          string `json:"city"`
	District      string `json:"district"`
	Cuisine       string `json:"cuisine"`
	ManualArea    string `json:"manualArea"`
	ManualAreaPh  string `json:"manualAreaPh"`
	MinRating     string `json:"minRating"`
	AnyRating     string `json:"anyRating"`
	Price         string `json:"price"`
	AnyPrice      string `json:"anyPrice"`
	OpenNow       string `json:"openNow"`
	Wheelchair    string `json:"wheelchair"`
	ChildFriendly string `json:"childFriendly"`
	PetFriendly   string `json:"petFriendly"`
	Clear         string `json:"clear"`
	Recommend     string `json:"recommend"`
	Results       string `json:"results"`
	NoResults     string `json:"noResults"`
	StaleNotice   string `json:"staleNotice"`
	Loading       string `json:"loading"`
	Reviews       string `json:"reviews"`
	Summary       string `json:"summary"`
	Highlights    string `json:"highlights"`
	Disadvantages string `json:"disadvantages"`
	PopularDishes string `json:"popularDishes"`
	Website       string `json:"website"`
	Directions    string `json:"directions"`
	Share         string `json:"share"`
	Sources       string `json:"sources"`
	NetworkError  string `json:"networkError"`
}

var labels = map[catalog.Lang]uiStrings{
	catalog.Zh: {
		Tagline:       "搵食",
		SearchHint:    "搜尋餐廳、菜式…",
		SearchButton:  "搜尋",
		Filters:       "篩選",
		Country:       "國家/地區",
		City:          "城市",
		District:      "地區",
		Cuisine:       "菜式",
		ManualArea:    "自訂地點",
		ManualAreaPh:  "輸入街道或地標",
		MinRating:     "最低評分",
		AnyRating:     "不限",
		Price:         "價位",
		AnyPrice:      "不限",
		OpenNow:       "營業中",
		Wheelchair:    "輪椅通道",
		ChildFriendly: "適合小朋友",
		PetFriendly:   "可帶寵物",
		Clear:         "重設篩選",
		Recommend:     "AI 推薦",
		Results:       "搜尋結果",
		NoResults:     "搵唔到結果，試下改吓篩選條件",
		StaleNotice:   "位置已更改，請重新搜尋",
		Loading:       "載入中…",
		Reviews:       "則評論",
		Summary:       "評論摘要",
		Highlights:    "好評",
		Disadvantages: "差評",
		PopularDishes: "招牌菜",
		Website:       "網站",
		Directions:    "地圖路線",
		Share:         "分享",
		Sources:       "資料來源",
		NetworkError:  "網絡錯誤，請稍後再試",
	},
	catalog.En: {
		Tagline:       "Find somewhere to eat",
		SearchHint:    "Search restaurants, dishes…",
		SearchButton:  "Search",
		Filters:       "Filters",
		Country:       "Country",
		City:          "City",
		District:      "District",
		Cuisine:       "Cuisine",
		ManualArea:    "Custom area",
		ManualAreaPh:  "Enter a street or landmark",
		MinRating:     "Minimum rating",
		AnyRating:     "Any",
		Price:         "Price",
		AnyPrice:      "Any",
		OpenNow:       "Open now",
		Wheelchair:    "Wheelchair accessible",
		ChildFriendly: "Child friendly",
		PetFriendly:   "Pet friendly",
		Clear:         "Clear filters",
		Recommend:     "AI picks",
		Results:       "Results",
		NoResults:     "No results. Try widening your filters.",
		StaleNotice:   "Location changed. Search again to refresh results.",
		Loading:       "Loading…",
		Reviews:       "reviews",
		Summary:       "Review summary",
		Highlights:    "Highlights",
		Disadvantages: "Drawbacks",
		PopularDishes: "Popular dishes",
		Website:       "Website",
		Directions:    "Directions",
		Share:         "Share",
		Sources:       "Sources",
		NetworkError:  "Network error. Please try again.",
	},
	catalog.Ja: {
		Tagline:       "お店を探す",
		SearchHint:    "レストランや料理を検索…",
		SearchButton:  "検索",
		Filters:       "絞り込み",
		Country:       "国・地域",
		City:          "都市",
		District:      "エリア",
		Cuisine:       "料理",
		ManualArea:    "カスタムエリア",
		ManualAreaPh:  "通りやランドマークを入力",
		MinRating:     "最低評価",
		AnyRating:     "指定なし",
		Price:         "価格帯",
		AnyPrice:      "指定なし",
		OpenNow:       "営業中",
		Wheelchair:    "車椅子対応",
		ChildFriendly: "子供連れ歓迎",
		PetFriendly:   "ペット可",
		Clear:         "リセット",
		Recommend:     "AIのおすすめ",
		Results:       "検索結果",
		NoResults:     "結果が見つかりません。条件を広げてみてください",
		StaleNotice:   "場所が変更されました。もう一度検索してください",
		Loading:       "読み込み中…",
		Reviews:       "件のレビュー",
		Summary:       "レビュー要約",
		Highlights:    "良い点",
		Disadvantages: "気になる点",
		PopularDishes: "人気メニュー",
		Website:       "ウェブサイト",
		Directions:    "経路",
		Share:         "共有",
		Sources:       "出典",
		NetworkError:  "ネットワークエラーです。もう一度お試しください",
	},
}

// strs returns the labels for lang, falling back to English.
func strs(lang catalog.Lang) uiStrings {
	if s, ok := labels[lang]; ok {
		return s
	}
	return labels[catalog.En]
}

// bootstrap is the catalog snapshot embedded in the page for the client
// script. Labels are pre-localized server side.
type bootstrap struct {
	Countries []option       `json:"countries"`
	Cities    []cityOption   `json:"cities"`
	Districts []scopedOption `json:"districts"`
	Cuisines  []option       `json:"cuisines"`
	AllOption option         `json:"allOption"`
	Defaults  filters.State  `json:"defaults"`
	Lang      string         `json:"lang"`
	Strings   uiStrings      `json:"strings"`
}

type option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type cityOption struct {
	ID        string  `json:"id"`
	CountryID string  `json:"countryId"`
	Label     string  `json:"label"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type scopedOption struct {
	ID     string `json:"id"`
	CityID string `json:"cityId"`
	Label  string `json:"label"`
}

func buildBootstrap(lang catalog.Lang) bootstrap {
	b := bootstrap{
		AllOption: option{ID: catalog.AllDistricts, Label: catalog.Localize(catalog.AllDistrictsSentinel(), lang)},
		Defaults:  filters.Default(),
		Lang:      string(lang),
		Strings:   strs(lang),
	}
	for _, c := range catalog.Countries() {
		b.Countries = append(b.Countries, option{ID: c.ID, Label: catalog.Localize(c.Item, lang)})
		for _, city := range catalog.CitiesByCountry(c.ID) {
			b.Cities = append(b.Cities, cityOption{
				ID: city.ID, CountryID: c.ID,
				Label: catalog.Localize(city.Item, lang),
				Lat:   city.Lat, Lng: city.Lng,
			})
			for _, d := range catalog.DistrictsByCity(city.ID) {
				b.Districts = append(b.Districts, scopedOption{
					ID: d.ID, CityID: city.ID, Label: catalog.Localize(d.Item, lang),
				})
			}
		}
	}
	for _, cu := range catalog.Cuisines() {
		b.Cuisines = append(b.Cuisines, option{ID: cu.ID, Label: catalog.Localize(cu.Item, lang)})
	}
	return b
}

// sidebar renders the filter controls for the initial page load. The client
// script keeps them in sync with the reducer from then on.
func sidebar(lang catalog.Lang) string {
	s := strs(lang)
	st := filters.Default()

	var countries, cuisines [][2]string
	for _, c := range catalog.Countries() {
		countries = append(countries, [2]string{c.ID, catalog.Localize(c.Item, lang)})
	}
	for _, cu := range catalog.Cuisines() {
		cuisines = append(cuisines, [2]string{cu.ID, catalog.Localize(cu.Item, lang)})
	}
	var cities [][2]string
	for _, c := range catalog.CitiesByCountry(st.Country) {
		cities = append(cities, [2]string{c.ID, catalog.Localize(c.Item, lang)})
	}
	districts := [][2]string{{catalog.AllDistricts, catalog.Localize(catalog.AllDistrictsSentinel(), lang)}}
	for _, d := range catalog.DistrictsByCity(st.City) {
		districts = append(districts, [2]string{d.ID, catalog.Localize(d.Item, lang)})
	}
	ratings := [][2]string{
		{"0", s.AnyRating}, {"3", "3.0+"}, {"3.5", "3.5+"}, {"4", "4.0+"}, {"4.5", "4.5+"},
	}
	prices := [][2]string{
		{"0", s.AnyPrice}, {"1", "$"}, {"2", "$$"}, {"3", "$$$"}, {"4", "$$$$"},
	}

	var b strings.Builder
	b.WriteString(`<div id="sheet-handle"></div>`)
	b.WriteString(`<h3>` + s.Filters + `</h3>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-country", s.Country, countries, st.Country) + `</div>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-city", s.City, cities, st.City) + `</div>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-district", s.District, districts, st.District) + `</div>`)
	b.WriteString(`<div class="filter-group"><label class="filter-label" for="f-area">` + s.ManualArea + `</label>`)
	b.WriteString(`<input type="text" id="f-area" autocomplete="off" placeholder="` + s.ManualAreaPh + `"></div>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-cuisine", s.Cuisine, cuisines, st.Cuisine) + `</div>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-rating", s.MinRating, ratings, "0") + `</div>`)
	b.WriteString(`<div class="filter-group">` + app.Select("f-price", s.Price, prices, "0") + `</div>`)
	b.WriteString(`<div class="filter-group">`)
	b.WriteString(app.Toggle("f-open", s.OpenNow, false))
	b.WriteString(app.Toggle("f-wheelchair", s.Wheelchair, false))
	b.WriteString(app.Toggle("f-child", s.ChildFriendly, false))
	b.WriteString(app.Toggle("f-pet", s.PetFriendly, false))
	b.WriteString(`</div>`)
	b.WriteString(`<button id="clear-filters" class="secondary">` + s.Clear + `</button>`)
	b.WriteString(`<button id="recommend" class="secondary">` + s.Recommend + `</button>`)
	return b.String()
}

// Page renders the full finder page for one language.
func Page(lang catalog.Lang) string {
	s := strs(lang)
	boot, _ := json.Marshal(buildBootstrap(lang))

	var b strings.Builder
	b.WriteString(`<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>`)
	b.WriteString(`<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>`)

	b.WriteString(`<div class="finder">`)
	b.WriteString(`<div id="sidebar" class="sidebar card">` + sidebar(lang) + `</div>`)

	b.WriteString(`<div id="centre">`)
	b.WriteString(`<div id="tagline">` + s.Tagline + `</div>`)
	b.WriteString(app.SearchBar("search-form", s.SearchHint, s.SearchButton))
	b.WriteString(`<div id="stale-notice" class="notice" style="display:none">` + s.StaleNotice + `</div>`)
	b.WriteString(`<div id="error-banner" style="display:none"></div>`)
	b.WriteString(`<div id="map"></div>`)
	b.WriteString(`<div id="results"><h3>` + s.Results + `</h3><div id="result-list" class="card-list"></div></div>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div id="detail" class="detail-panel results-pane card"><div id="detail-body"></div></div>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div id="loading-overlay" style="display:none"><div class="spinner"></div><span>` + s.Loading + `</span></div>`)

	b.WriteString(`<script>var BOOT = ` + string(boot) + `;</script>`)
	b.WriteString(`<script>` + finderScript + `</script>`)
	return b.String()
}

// Handler serves the finder page. GET /
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.NotFound(w, r)
		return
	}
	lang := catalog.ParseLang(r.URL.Query().Get("lang"))
	s := strs(lang)

	if app.WantsJSON(r) {
		app.RespondJSON(w, map[string]interface{}{"defaults": filters.Default()})
		return
	}
	fmt.Fprint(w, app.RenderHTML(string(lang), "Chow", s.Tagline, Page(lang)))
}
