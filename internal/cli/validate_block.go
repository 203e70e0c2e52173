package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/chainengine"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/merkle"
	"github.com/auricchain/auricd/internal/tx"
)

// BlockFixture is the JSON shape a validate-block run consumes: a
// starting account set, a target height, and the RLP-encoded signed
// transactions to apply against it.
type BlockFixture struct {
	Height       uint64             `json:"height"`
	Accounts     []AccountFixture   `json:"accounts"`
	Transactions []TxFixtureEntry   `json:"transactions"`
}

// AccountFixture seeds one account in the pre-state snapshot.
type AccountFixture struct {
	PublicKey string `json:"public_key"` // hex, 32 bytes
	Balance   uint64 `json:"balance"`
	Nonce     uint64 `json:"nonce"`
}

// TxFixtureEntry is a single RLP-encoded signed transaction, hex-encoded.
type TxFixtureEntry struct {
	RLP string `json:"rlp"`
}

var (
	filterInvalid bool
)

var validateBlockCmd = &cobra.Command{
	Use:   "validate-block [fixture.json]",
	Short: "Apply a block fixture's transactions against a fresh chain-state snapshot",
	Long: `validate-block loads a JSON fixture describing a starting account
set and a list of RLP-encoded signed transactions, then runs them through
the chain-state engine exactly as a block proposer or validator would.

By default it applies the whole block and aborts on the first rejected
transaction, matching ApplyBlock. With --filter-invalid it instead drops
rejected transactions and reports the surviving subsequence, matching
FilterValid.

Example:
    auricd validate-block ./fixtures/block_12.json
    auricd validate-block ./fixtures/block_12.json --filter-invalid`,
	Args: cobra.ExactArgs(1),
	Run:  runValidateBlock,
}

func init() {
	rootCmd.AddCommand(validateBlockCmd)

	validateBlockCmd.Flags().BoolVar(&filterInvalid, "filter-invalid", false, "skip invalid transactions instead of aborting the block")
}

func runValidateBlock(cmd *cobra.Command, args []string) {
	fixturePath := args[0]
	startTime := time.Now()

	fmt.Println("================================================================================")
	fmt.Println("                         Block Validation Run")
	fmt.Println("================================================================================")
	fmt.Printf("Fixture:    %s\n", fixturePath)
	fmt.Printf("Started at: %s\n", startTime.Format(time.RFC3339))
	fmt.Println()

	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read fixture: %v\n", err)
		os.Exit(1)
	}

	var fixture BlockFixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse fixture: %v\n", err)
		os.Exit(1)
	}

	state := chainstate.Genesis()
	for _, a := range fixture.Accounts {
		key, err := keyFromHex(a.PublicKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad account public key %q: %v\n", a.PublicKey, err)
			os.Exit(1)
		}
		state = state.PutAccount(key, chainstate.Account{Balance: a.Balance, Nonce: a.Nonce})
	}

	txs := make([]tx.SignedTx, 0, len(fixture.Transactions))
	for i, entry := range fixture.Transactions {
		data, err := hex.DecodeString(entry.RLP)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tx %d: bad hex: %v\n", i, err)
			os.Exit(1)
		}
		stx, err := tx.DecodeRLP(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tx %d: decode failed: %v\n", i, err)
			os.Exit(1)
		}
		txs = append(txs, stx)
	}

	fmt.Println("--- Fixture Summary ---")
	fmt.Printf("Pre-state accounts: %d\n", len(fixture.Accounts))
	fmt.Printf("Target height:      %d\n", fixture.Height)
	fmt.Printf("Transactions:       %d\n", len(txs))
	fmt.Println()

	signer := signerFromConfig()
	engine := chainengine.New(signer)

	fmt.Println("--- Execution ---")
	if filterInvalid {
		survivors, newState := engine.FilterValid(state, fixture.Height, txs)
		fmt.Printf("Applied %d of %d transactions (%d rejected)\n", len(survivors), len(txs), len(txs)-len(survivors))
		reportResult(newState, startTime)
		return
	}

	newState, err := engine.ApplyBlock(state, fixture.Height, txs)
	if err != nil {
		fmt.Printf("Block rejected: %v\n", err)
		reportResult(state, startTime)
		os.Exit(1)
	}
	fmt.Printf("Applied all %d transactions\n", len(txs))
	reportResult(newState, startTime)
}

func reportResult(state chainstate.Snapshot, startTime time.Time) {
	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                               RESULTS")
	fmt.Println("================================================================================")
	fmt.Printf("Accounts root hash: %s\n", hex.EncodeToString(rootHashSlice(state)))
	fmt.Printf("Duration:           %v\n", time.Since(startTime))
}

func rootHashSlice(state chainstate.Snapshot) []byte {
	root := state.RootHash()
	return root[:]
}

func keyFromHex(s string) (merkle.Key, error) {
	var key merkle.Key
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, err
	}
	if len(raw) != merkle.KeySize {
		return key, fmt.Errorf("expected %d bytes, got %d", merkle.KeySize, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// signerFromConfig builds the Signer matching whichever signature_scheme
// the loaded config names, falling back to ed25519 when no config was
// loaded (e.g. running outside Execute's cobra.OnInitialize hook).
func signerFromConfig() *chaincrypto.Signer {
	scheme := chaincrypto.SchemeEd25519
	maxSigSize := 16384
	if loadedConfig != nil {
		maxSigSize = loadedConfig.SignMaxSize
		if loadedConfig.SignatureScheme == "secp256k1" {
			scheme = chaincrypto.SchemeSecp256k1
		}
	}
	provider, err := chaincrypto.ProviderFor(scheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown signature scheme: %v\n", err)
		os.Exit(1)
	}
	return chaincrypto.NewSigner(provider, maxSigSize)
}
