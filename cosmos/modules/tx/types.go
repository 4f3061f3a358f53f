package tx

type BlockID struct {
	Hash string `json:"hash"`
}

type Header struct {
	ChainID         string `json:"chain_id"`
	Height          string `json:"height"`
	Time            string `json:"time"`
	ProposerAddress string `json:"proposer_address"`
}

type BlockMeta struct {
	BlockID BlockID `json:"block_id"`
	Header  Header  `json:"header"`
}

type Block struct {
	BlockMeta BlockMeta `json:"block_meta"`
}

type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Transaction is the subset of a legacy tx response needed to find the accounts it touched.
// Failed transactions are not tagged, leaving Tags nil.
type Transaction struct {
	Hash   string `json:"txhash"`
	Height string `json:"height"`
	Tags   []Tag  `json:"tags"`
}
