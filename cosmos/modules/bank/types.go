package bank

// Coin is a chain amount in the smallest unit of its denomination, e.g. {"denom": "uatom", "amount": "1000000"}.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// GasPrice is the minimum fee per unit of gas accepted for a denomination.
type GasPrice struct {
	Denom string `json:"denom"`
	Price string `json:"price"`
}
