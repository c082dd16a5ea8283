package models

type Preset struct {
	Name        string
	Description string
	Apply       func(ts *StrategySettings)
}

var Presets = map[string]Preset{
	"classic": {
		Name:        "🟡 Классический",
		Description: "EMA-базлайн 20/10, дефолт продакшена",
		Apply: func(ts *StrategySettings) {
			ts.UseEMA = true
			ts.Window = 20
			ts.Span = 10
		},
	},
	"swing": {
		Name:        "🟢 Свинг",
		Description: "Медленные окна на SMA, меньше сделок",
		Apply: func(ts *StrategySettings) {
			ts.UseEMA = false
			ts.Window = 40
			ts.Span = 20
		},
	},
	"scalp": {
		Name:        "🔴 Скальп",
		Description: "Короткие окна, чувствителен к шуму",
		Apply: func(ts *StrategySettings) {
			ts.UseEMA = true
			ts.Window = 10
			ts.Span = 5
		},
	},
}
