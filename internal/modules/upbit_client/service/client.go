package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"yingyang_bot/internal/modules/config"
)

// ErrDataUnavailable — биржа недоступна или отдала пусто. Раннер по
// нему прерывает цикл и шлёт алерт, не ретраит.
var ErrDataUnavailable = errors.New("market data unavailable")

type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
	secretKey string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Upbit.RestURL,
		accessKey: cfg.Upbit.AccessKey,
		secretKey: cfg.Upbit.SecretKey,
	}
}

// authToken — JWT для приватных ручек: access_key + одноразовый nonce,
// при непустых параметрах ещё SHA512-хэш их urlencoded-формы.
func (c *Client) authToken(query url.Values) (string, error) {
	claims := jwt.MapClaims{
		"access_key": c.accessKey,
		"nonce":      uuid.NewString(),
	}
	if len(query) > 0 {
		sum := sha512.Sum512([]byte(query.Encode()))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secretKey))
	if err != nil {
		return "", errors.Wrap(err, "sign jwt")
	}
	return "Bearer " + token, nil
}

// do выполняет запрос и возвращает тело; ошибки биржи приходят как
// {"error":{"name","message"}} — разворачиваем в текст.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		if name, msg, ok := parseAPIError(data); ok {
			return nil, fmt.Errorf("upbit %s: %s (http %d)", name, msg, resp.StatusCode)
		}
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
