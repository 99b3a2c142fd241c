package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/typetology/internal/config"
	"github.com/altuslabsxyz/typetology/internal/output"
	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/client"
	"github.com/altuslabsxyz/typetology/pkg/contract"
)

var (
	sendEndpoint string
	sendKey      string
	sendPayer    string
	sendGasPrice string
	sendGasLimit string
	sendTimeout  time.Duration
	sendJSON     bool
)

// NewSendCmd creates the send command.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <abi-file> <function> [args...]",
		Short: "Build, sign and submit one contract invocation",
		Long: `Build, sign and submit an invocation of one contract function, the same
way a generated binding's Send does.

Arguments are converted by parameter kind: Boolean takes true/false, Integer
a decimal number, IntArray a comma-separated list, ByteArray 0x-prefixed hex
or plain text, String any text.

The endpoint scheme selects the client:
  ws://, wss://                  WebSocket
  http(s)://host/api...          REST
  other http(s)://               JSON-RPC

The private key is read from --key or ` + config.EnvPrivateKey + `.

Examples:
  typetology send abi/store.json Put mykey 42 --key $KEY
  typetology send abi/store.json Put 0x6b6579 7 --endpoint ws://localhost:20335 --key $KEY`,
		Args: cobra.MinimumNArgs(2),
		RunE: runSend,
	}

	cmd.Flags().StringVar(&sendEndpoint, "endpoint", config.DefaultEndpoint, "Node endpoint")
	cmd.Flags().StringVar(&sendKey, "key", "", "Hex private key used to sign")
	cmd.Flags().StringVar(&sendPayer, "payer", "", "Payer address (base58)")
	cmd.Flags().StringVar(&sendGasPrice, "gas-price", config.DefaultGasPrice, "Gas price")
	cmd.Flags().StringVar(&sendGasLimit, "gas-limit", config.DefaultGasLimit, "Gas limit")
	cmd.Flags().DurationVar(&sendTimeout, "timeout", client.DefaultTimeout, "Request timeout")
	cmd.Flags().BoolVar(&sendJSON, "json", false, "Print the node response as JSON")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg := effective
	path, function := args[0], args[1]

	key, _ := config.ApplyEnvString(cmd, "key", sendKey, os.Getenv(config.EnvPrivateKey), config.SourceFlag)
	if key == "" {
		return fmt.Errorf("private key is required (use --key or %s)", config.EnvPrivateKey)
	}

	iface, err := abi.ParseFile(path)
	if err != nil {
		return err
	}

	// Unknown functions keep their raw arguments so the runtime reports the lookup failure
	callArgs := make([]interface{}, len(args)-2)
	for i, a := range args[2:] {
		callArgs[i] = a
	}
	if fn, ok := iface.Function(function); ok {
		callArgs, err = parseArgs(fn, args[2:])
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout)
	defer cancel()

	rtLogger := runtimeLogger(cmd, cfg)
	cli, err := client.Dial(ctx, cfg.Endpoint.Value,
		client.WithTimeout(sendTimeout),
		client.WithLogger(rtLogger),
	)
	if err != nil {
		return err
	}
	defer client.Close(cli)

	c, err := contract.New(cli, iface, contract.WithLogger(rtLogger))
	if err != nil {
		return err
	}

	var payer contract.AddressRef
	if cfg.Payer.Value != "" {
		payer = contract.Base58Address(cfg.Payer.Value)
	}

	logger.Debug("Sending %s to %s via %s", function, c.CodeHash(), cfg.Endpoint.Value)
	spinner := newSendSpinner(cmd, cfg)
	spinner.Start(fmt.Sprintf("Submitting %s to %s", function, cfg.Endpoint.Value))
	resp, err := contract.NewDeferredTx(c, function, callArgs...).Send(ctx, contract.TxParams{
		Payer:      payer,
		PrivateKey: contract.PrivateKeyHex(key),
		GasPrice:   cfg.GasPrice.Value,
		GasLimit:   cfg.GasLimit.Value,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := printResponse(cmd, resp); err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("node rejected transaction (error code: %d, msg: %s)", resp.Error, resp.Desc)
	}
	logger.Success("Submitted %s", function)
	return nil
}

// newSendSpinner animates on an interactive stderr; elsewhere it draws
// nothing.
func newSendSpinner(cmd *cobra.Command, cfg *config.EffectiveConfig) *output.StatusSpinner {
	errOut := cmd.ErrOrStderr()
	if errOut != os.Stderr || !output.IsTerminal(os.Stderr) || cfg.Verbose.Value {
		return output.NewStatusSpinner(io.Discard)
	}
	return output.NewStatusSpinner(errOut)
}

func printResponse(cmd *cobra.Command, resp *contract.Response) error {
	out := cmd.OutOrStdout()
	if sendJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	result := string(resp.Result)
	if result == "" {
		result = "(none)"
	}
	output.KeyValue(out, [][2]string{
		{"Action", resp.Action},
		{"Error", fmt.Sprintf("%d", resp.Error)},
		{"Desc", resp.Desc},
		{"Result", result},
	})
	return nil
}
