package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/radieske/bet-league-poc/internal/league/bet"
)

// Client fala com a loja de linhas (Apps Script remoto ou sheet-simulator).
// O protocolo é stateless: toda ação vai como query string com credenciais e
// a resposta é um envelope {success, data?, user?, error?}.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type Credentials struct {
	Username string
	Password string
}

// UserInfo é a identidade retornada pelo login da loja.
type UserInfo struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	User    *UserInfo       `json:"user,omitempty"`
}

func (c *Client) do(ctx context.Context, params url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet store http %d", res.StatusCode)
	}
	var out envelope
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "unknown sheet store error"
		}
		return nil, fmt.Errorf("sheet store: %s", out.Error)
	}
	return &out, nil
}

func (c *Client) params(action string, creds Credentials) url.Values {
	v := url.Values{}
	v.Set("action", action)
	v.Set("username", creds.Username)
	v.Set("password", creds.Password)
	return v
}

// Login valida credenciais e resolve a identidade (inclusive isAdmin).
func (c *Client) Login(ctx context.Context, creds Credentials) (UserInfo, error) {
	res, err := c.do(ctx, c.params("login", creds))
	if err != nil {
		return UserInfo{}, err
	}
	if res.User == nil {
		return UserInfo{}, fmt.Errorf("sheet store: login without user payload")
	}
	return *res.User, nil
}

// FetchRows busca as linhas cruas; a construção do snapshot é do caller.
func (c *Client) FetchRows(ctx context.Context, creds Credentials) ([]bet.Row, error) {
	res, err := c.do(ctx, c.params("getBets", creds))
	if err != nil {
		return nil, err
	}
	var rows []bet.Row
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

// FetchUsers lista os membros conhecidos da liga (para dropdowns).
func (c *Client) FetchUsers(ctx context.Context, creds Credentials) ([]string, error) {
	res, err := c.do(ctx, c.params("getUsers", creds))
	if err != nil {
		return nil, err
	}
	var users []string
	if err := json.Unmarshal(res.Data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// AddBet cria a aposta em estado "Pending confirmation"; better1 é sempre o
// dono das credenciais, imposto pelo serviço antes de chamar.
func (c *Client) AddBet(ctx context.Context, creds Credentials, better1, better2, better1Bet, better2Bet string, better1Reward, better2Reward float64) error {
	v := c.params("addBet", creds)
	v.Set("better1", better1)
	v.Set("better2", better2)
	v.Set("better1Bet", better1Bet)
	v.Set("better2Bet", better2Bet)
	v.Set("better1Reward", strconv.FormatFloat(better1Reward, 'f', -1, 64))
	v.Set("better2Reward", strconv.FormatFloat(better2Reward, 'f', -1, 64))
	_, err := c.do(ctx, v)
	return err
}

// ConfirmBet aceita ou recusa uma proposta ("confirm" | "decline").
func (c *Client) ConfirmBet(ctx context.Context, creds Credentials, betID, action string) error {
	v := c.params("confirmBet", creds)
	v.Set("rowId", betID)
	v.Set("confirmAction", action)
	_, err := c.do(ctx, v)
	return err
}

// UpdateBet propõe ou atesta o vencedor. A loja é a autoridade: a primeira
// proposta que chegar vence a corrida; a segunda chamada do mesmo lado falha.
func (c *Client) UpdateBet(ctx context.Context, creds Credentials, betID string, winner bet.Side) error {
	v := c.params("updateBet", creds)
	v.Set("rowId", betID)
	v.Set("winner", string(winner))
	_, err := c.do(ctx, v)
	return err
}

// MarkPaid propõe ou atesta a liquidação do pagamento.
func (c *Client) MarkPaid(ctx context.Context, creds Credentials, betID string) error {
	v := c.params("markPaid", creds)
	v.Set("rowId", betID)
	_, err := c.do(ctx, v)
	return err
}
