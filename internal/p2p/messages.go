package p2p

import (
	"encoding/json"
	"fmt"

	"github.com/arejula27/jab-go/internal/types"
)

// SharedTopic is the literal topic name every node subscribes to.
const SharedTopic = "jab"

// MsgType tags the wire envelope's variant.
type MsgType string

const (
	MsgRequestBlock            MsgType = "REQUEST_BLOCK"
	MsgBlock                   MsgType = "BLOCK"
	MsgRegisterMiners          MsgType = "REGISTER_MINERS"
	MsgRequestRegisteredMiners MsgType = "REQUEST_REGISTERED_MINERS"
	MsgTransaction             MsgType = "TRANSACTION"
	MsgTransactionResult       MsgType = "TRANSACTION_RESULT"
	MsgWalletDetails           MsgType = "WALLET_DETAILS"
	MsgWalletDetailsResult     MsgType = "WALLET_DETAILS_RESULT"

	// MsgInvalidPayload is never sent over the wire; readLoop synthesizes it
	// locally when a peer's payload fails to decode, so the event loop sees
	// the failure through the same Inbox channel as any other message
	// instead of it being swallowed inside the pubsub layer.
	MsgInvalidPayload MsgType = "INVALID_PAYLOAD"
)

// TransactionErrorCode is the wire-level rejection code for a submitted
// transaction.
type TransactionErrorCode string

const (
	ErrInputWalletNotFound  TransactionErrorCode = "INPUT_WALLET_NOT_FOUND"
	ErrOutputWalletNotFound TransactionErrorCode = "OUTPUT_WALLET_NOT_FOUND"
	ErrInsufficientBalance  TransactionErrorCode = "INSUFFICIENT_BALANCE"
	ErrInvalidSignature     TransactionErrorCode = "INVALID_SIGNATURE"
	ErrBlockchainError      TransactionErrorCode = "BLOCKCHAIN_ERROR"
)

// WalletErrorCode is the wire-level rejection code for a wallet query.
type WalletErrorCode string

const (
	ErrWalletNotFound        WalletErrorCode = "WALLET_NOT_FOUND"
	ErrWalletBlockchainError WalletErrorCode = "BLOCKCHAIN_ERROR"
)

// RequestBlockPayload asks for the block at Index.
type RequestBlockPayload struct {
	Index uint64 `json:"index"`
}

// BlockPayload carries a full block, broadcast on the shared topic.
type BlockPayload struct {
	Block types.Block `json:"block"`
}

// RegisterMinersPayload announces one or more miner ids to the roster.
type RegisterMinersPayload struct {
	Miners []string `json:"miners"`
}

// RequestRegisteredMinersPayload asks peers to publish their roster.
type RequestRegisteredMinersPayload struct{}

// TransactionPayload is a signed transaction request submitted by a client.
type TransactionPayload struct {
	PeerID       string       `json:"peer_id"`
	InputAddr    string       `json:"input_addr"`
	OutputAddr   string       `json:"output_addr"`
	Amount       types.Amount `json:"amount"`
	Fee          types.Amount `json:"fee"`
	SignatureHex string       `json:"signature_hex"`
	PubKeyHex    string       `json:"pubkey_hex"`
}

// TransactionResultPayload reports the outcome of a TransactionPayload back
// to its originating peer.
type TransactionResultPayload struct {
	OK          bool                 `json:"ok"`
	ErrorCode   TransactionErrorCode `json:"error_code,omitempty"`
	Description string               `json:"description,omitempty"`
}

// WalletDetailsPayload asks for the balance and history of Address.
type WalletDetailsPayload struct {
	PeerID  string `json:"peer_id"`
	Address string `json:"address"`
}

// WalletDetailsResultPayload reports the outcome of a WalletDetailsPayload.
type WalletDetailsResultPayload struct {
	OK           bool                `json:"ok"`
	ErrorCode    WalletErrorCode     `json:"error_code,omitempty"`
	Address      string              `json:"address,omitempty"`
	Balance      types.Amount        `json:"balance,omitempty"`
	Transactions []types.Transaction `json:"transactions,omitempty"`
}

// InvalidPayloadPayload carries the peer and reason behind a decode failure
// that readLoop turned into an Inbox event instead of dropping silently.
type InvalidPayloadPayload struct {
	PeerID string `json:"peer_id"`
	Reason string `json:"reason"`
}

// Msg is the tagged-union envelope exchanged over both the shared and
// per-peer topics. Exactly one payload field is populated, matching Type.
type Msg struct {
	Type MsgType `json:"type"`

	RequestBlock            *RequestBlockPayload            `json:"request_block,omitempty"`
	Block                   *BlockPayload                   `json:"block,omitempty"`
	RegisterMiners          *RegisterMinersPayload          `json:"register_miners,omitempty"`
	RequestRegisteredMiners *RequestRegisteredMinersPayload `json:"request_registered_miners,omitempty"`
	Transaction             *TransactionPayload             `json:"transaction,omitempty"`
	TransactionResult       *TransactionResultPayload       `json:"transaction_result,omitempty"`
	WalletDetails           *WalletDetailsPayload           `json:"wallet_details,omitempty"`
	WalletDetailsResult     *WalletDetailsResultPayload     `json:"wallet_details_result,omitempty"`
	InvalidPayload          *InvalidPayloadPayload          `json:"invalid_payload,omitempty"`
}

// Encode serializes msg as UTF-8 JSON.
func Encode(msg *Msg) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode parses a UTF-8 JSON payload into a Msg, validating that the
// declared Type carries the matching payload field.
func Decode(data []byte) (*Msg, error) {
	var msg Msg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("p2p: invalid payload: %w", err)
	}
	if err := msg.validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *Msg) validate() error {
	switch m.Type {
	case MsgRequestBlock:
		if m.RequestBlock == nil {
			return fmt.Errorf("p2p: invalid payload: REQUEST_BLOCK missing payload")
		}
	case MsgBlock:
		if m.Block == nil {
			return fmt.Errorf("p2p: invalid payload: BLOCK missing payload")
		}
	case MsgRegisterMiners:
		if m.RegisterMiners == nil {
			return fmt.Errorf("p2p: invalid payload: REGISTER_MINERS missing payload")
		}
	case MsgRequestRegisteredMiners:
		// payload is optional/empty
	case MsgTransaction:
		if m.Transaction == nil {
			return fmt.Errorf("p2p: invalid payload: TRANSACTION missing payload")
		}
	case MsgTransactionResult:
		if m.TransactionResult == nil {
			return fmt.Errorf("p2p: invalid payload: TRANSACTION_RESULT missing payload")
		}
	case MsgWalletDetails:
		if m.WalletDetails == nil {
			return fmt.Errorf("p2p: invalid payload: WALLET_DETAILS missing payload")
		}
	case MsgWalletDetailsResult:
		if m.WalletDetailsResult == nil {
			return fmt.Errorf("p2p: invalid payload: WALLET_DETAILS_RESULT missing payload")
		}
	default:
		return fmt.Errorf("p2p: invalid payload: unknown type %q", m.Type)
	}
	return nil
}
