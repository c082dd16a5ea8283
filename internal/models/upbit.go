package models

// Account — баланс одной валюты на Upbit.
type Account struct {
	Currency    string
	Balance     float64
	Locked      float64
	AvgBuyPrice float64
}

func (a Account) Total() float64 { return a.Balance + a.Locked }

// OrderResult — ответ биржи на размещение маркет-ордера.
// CreatedAt оставляем строкой, как отдаёт биржа.
type OrderResult struct {
	UUID      string
	Market    string
	Side      string // bid / ask
	OrdType   string // price / market
	Price     float64
	Volume    float64
	State     string
	CreatedAt string
}
