package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"yingyang_bot/internal/models"
)

// BuyMarket — рыночная покупка на amount котируемой валюты (KRW):
// ord_type=price, объём биржа считает сама по текущей цене.
func (c *Client) BuyMarket(ctx context.Context, market string, amount float64) (*models.OrderResult, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("side", "bid")
	params.Set("ord_type", "price")
	params.Set("price", strconv.FormatFloat(amount, 'f', -1, 64))

	res, err := c.placeOrder(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "BuyMarket")
	}
	return res, nil
}

// SellMarket — рыночная продажа volume базовой валюты целиком:
// ord_type=market, side=ask.
func (c *Client) SellMarket(ctx context.Context, market string, volume float64) (*models.OrderResult, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("side", "ask")
	params.Set("ord_type", "market")
	params.Set("volume", strconv.FormatFloat(volume, 'f', -1, 64))

	res, err := c.placeOrder(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "SellMarket")
	}
	return res, nil
}

// placeOrder шлёт форму urlencoded; тот же Encode() уходит в
// query_hash токена, иначе подпись не сойдётся.
func (c *Client) placeOrder(ctx context.Context, params url.Values) (*models.OrderResult, error) {
	body := params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/orders", strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	token, err := c.authToken(params)
	if err != nil {
		return nil, errors.Wrap(err, "auth")
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var row orderRow
	if err := sonic.Unmarshal(data, &row); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return &models.OrderResult{
		UUID:      row.UUID,
		Market:    row.Market,
		Side:      row.Side,
		OrdType:   row.OrdType,
		Price:     parseF(row.Price),
		Volume:    parseF(row.Volume),
		State:     row.State,
		CreatedAt: row.CreatedAt,
	}, nil
}
