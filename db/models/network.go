package models

type Network struct {
	ID                     uint   `gorm:"primaryKey"`
	NetworkID              string `gorm:"uniqueIndex"` // e.g. cosmos-hub-mainnet
	Title                  string // e.g. Cosmos Hub
	StakingDenom           string
	AddressPrefix          string
	ValidatorAddressPrefix string
	Enabled                bool
}
