package i18n

var ja = map[string]string{
	"stream_started_title":   "配信開始",
	"stream_started_message": "%s が配信を開始しました: %s",
	"streamer_found_title":   "配信者が見つかりました",
	"streamer_found_message": "%s が見つかりました。配信が始まると通知します。",
	"button_watch":           "配信を見る",
	"button_ok":              "OK",

	"prompt_streamer":   "配信者のユーザー名を入力してください:",
	"prompt_format":     "通知の形式を選んでください:",
	"prompt_hint":       "enter: 決定  esc: 終了",
	"format_hint":       "↑/↓: 選択  enter: 決定  esc: 終了",
	"err_empty_login":   "ユーザー名を入力してください。",
	"err_invalid_login": "ユーザー名は英数字とアンダースコアのみ使えます。",
	"err_not_found":     "配信者 %q が見つかりません。別の名前を入力してください。",
	"err_lookup_failed": "配信者を確認できませんでした: %v",
	"format_dialog":     "ダイアログ (配信を見る / OK ボタン)",
	"format_notify":     "通知 (デスクトップバナー)",
	"looking_up":        "%s を検索しています...",

	"watching":       "%s を監視中",
	"quit_hint":      "[q] で終了します。",
	"status_live":    "配信中",
	"status_offline": "オフライン",
	"status_unknown": "確認中...",
	"last_check":     "最終確認: %s",
	"live_title":     "タイトル: %s",
	"live_game":      "カテゴリー: %s",
	"live_viewers":   "視聴者数: %d",
	"warn_failures":  "%d 回連続で %s エラー、再試行中",
	"last_error":     "直近のエラー: %s",
	"notified_at":    "%s に通知しました",
}
