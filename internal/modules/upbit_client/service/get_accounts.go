package service

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	"yingyang_bot/pkg/logger"
)

// GetAccounts возвращает все балансы аккаунта.
func (c *Client) GetAccounts(ctx context.Context) ([]models.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/accounts", nil)
	if err != nil {
		return nil, errors.Wrap(err, "GetAccounts build request")
	}
	token, err := c.authToken(nil)
	if err != nil {
		return nil, errors.Wrap(err, "GetAccounts auth")
	}
	req.Header.Set("Authorization", token)

	data, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "GetAccounts")
	}

	var rows []accountRow
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "GetAccounts decode")
	}

	out := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Account{
			Currency:    r.Currency,
			Balance:     parseF(r.Balance),
			Locked:      parseF(r.Locked),
			AvgBuyPrice: parseF(r.AvgBuyPrice),
		})
	}
	return out, nil
}

// Balance — доступный остаток по валюте, 0 если её нет в аккаунте.
func (c *Client) Balance(ctx context.Context, currency string) (float64, error) {
	accounts, err := c.GetAccounts(ctx)
	if err != nil {
		return 0, err
	}
	for _, a := range accounts {
		if a.Currency == currency {
			return a.Balance, nil
		}
	}
	return 0, nil
}

// CurrentPosition: long если по базовой валюте рынка есть ненулевой
// остаток, иначе neutral. Ошибку баланса не поднимаем наверх, считаем
// позицию нейтральной и торгуем дальше.
func (c *Client) CurrentPosition(ctx context.Context, market string) models.Position {
	base := helper.BaseCurrency(market)
	balance, err := c.Balance(ctx, base)
	if err != nil {
		logger.Warn("[UPBIT] position check failed for %s: %v, assuming neutral", market, err)
		return models.PositionNeutral
	}
	if balance > 0 {
		return models.PositionLong
	}
	return models.PositionNeutral
}
