package reducers

import (
	"encoding/json"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/tx"
)

func BlockReducer(networkID string, block tx.Block, transactions []json.RawMessage, data map[string]any) Block {
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		config.Log.Warnf("Could not encode extra data of block %s. Err: %v", block.BlockMeta.Header.Height, err)
		encoded = []byte("{}")
	}
	if transactions == nil {
		transactions = []json.RawMessage{}
	}

	return Block{
		ID:              block.BlockMeta.BlockID.Hash,
		NetworkID:       networkID,
		Height:          block.BlockMeta.Header.Height,
		ChainID:         block.BlockMeta.Header.ChainID,
		Hash:            block.BlockMeta.BlockID.Hash,
		Time:            block.BlockMeta.Header.Time,
		Transactions:    transactions,
		ProposerAddress: block.BlockMeta.Header.ProposerAddress,
		Data:            string(encoded),
	}
}
