package places

import "chow/catalog"

// Messages are the user-facing strings this package can surface.
type Messages struct {
	SearchError string
	NotReady    string
	NoKey       string
	Empty       string
}

var messages = map[catalog.Lang]Messages{
	catalog.Zh: {
		SearchError: "搜尋發生錯誤",
		NotReady:    "地圖服務未準備好",
		NoKey:       "未設定地圖服務金鑰，搜尋功能暫停使用",
		Empty:       "未搵到相關地點",
	},
	catalog.En: {
		SearchError: "Search error",
		NotReady:    "Map service not ready",
		NoKey:       "Map service key not configured; search is unavailable",
		Empty:       "No relevant places found",
	},
	catalog.Ja: {
		SearchError: "検索エラーが発生しました",
		NotReady:    "マップサービスの準備ができていません",
		NoKey:       "マップサービスのキーが未設定のため検索できません",
		Empty:       "該当する場所が見つかりませんでした",
	},
}

// Message returns the localized message set for a language.
func Message(lang catalog.Lang) Messages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[catalog.En]
}
