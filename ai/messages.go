package ai

import "chow/catalog"

// Messages are the user-facing error strings for AI features.
type Messages struct {
	SummaryError   string
	RecommendError string
	NoKey          string
}

var messages = map[catalog.Lang]Messages{
	catalog.Zh: {
		SummaryError:   "無法獲取評論摘要，請稍後再試",
		RecommendError: "無法獲取推薦，請稍後再試",
		NoKey:          "AI 功能未設定，請聯絡管理員",
	},
	catalog.En: {
		SummaryError:   "Could not fetch the review summary. Please try again later.",
		RecommendError: "Could not fetch recommendations. Please try again later.",
		NoKey:          "AI features are not configured. Please contact the administrator.",
	},
	catalog.Ja: {
		SummaryError:   "レビュー要約を取得できませんでした。後でもう一度お試しください",
		RecommendError: "おすすめを取得できませんでした。後でもう一度お試しください",
		NoKey:          "AI機能が設定されていません。管理者にお問い合わせください",
	},
}

// Message returns the strings for lang, falling back to English.
func Message(lang catalog.Lang) Messages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[catalog.En]
}
