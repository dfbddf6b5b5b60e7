package domain

const (
	TransactionKindBuy  = "buy"
	TransactionKindSell = "sell"
)
