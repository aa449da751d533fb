package dto

// Credenciais acompanham toda requisição: a loja de linhas é stateless e
// exige autenticação por chamada, então o serviço só repassa.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateBetRequest struct {
	Credentials
	Better2       string  `json:"better2"`
	Better1Bet    string  `json:"better1Bet"`
	Better2Bet    string  `json:"better2Bet"`
	Better1Reward float64 `json:"better1Reward"`
	Better2Reward float64 `json:"better2Reward"`
}

type ConfirmBetRequest struct {
	Credentials
	Action string `json:"action"` // "confirm" | "decline"
}

type DeclareWinnerRequest struct {
	Credentials
	Winner string `json:"winner"` // "better1" | "better2"
}

type MarkPaidRequest struct {
	Credentials
}
