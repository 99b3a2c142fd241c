package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// parseArgs converts command-line strings into values accepted by the
// contract runtime for each parameter kind:
//   - Boolean: true/false/1/0
//   - Integer: base-10 int64
//   - IntegerArray: comma-separated int64 values, empty for none
//   - ByteArray: 0x-prefixed hex for raw bytes, anything else as text
//   - String: as given
//   - other kinds: JSON when it parses, else the string
//
// Arity is not checked here; the runtime reports mismatches.
func parseArgs(fn *abi.Function, raw []string) ([]interface{}, error) {
	args := make([]interface{}, len(raw))
	for i, s := range raw {
		if i >= len(fn.Parameters) {
			args[i] = s
			continue
		}
		p := fn.Parameters[i]
		v, err := parseArg(p.Type, s)
		if err != nil {
			return nil, fmt.Errorf("argument #%d (%s %s): %w", i, p.Name, p.Type, err)
		}
		args[i] = v
	}
	return args, nil
}

func parseArg(kind abi.ParameterKind, s string) (interface{}, error) {
	switch kind.Class() {
	case abi.ClassBoolean:
		return strconv.ParseBool(s)
	case abi.ClassInteger:
		return strconv.ParseInt(s, 10, 64)
	case abi.ClassIntegerArray:
		if strings.TrimSpace(s) == "" {
			return []int64{}, nil
		}
		parts := strings.Split(s, ",")
		out := make([]int64, len(parts))
		for i, part := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case abi.ClassByteArray:
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			b, err := hex.DecodeString(s[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid hex: %w", err)
			}
			return contract.RawBytes(b), nil
		}
		return contract.ByteString(s), nil
	case abi.ClassString:
		return s, nil
	default:
		var v interface{}
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v, nil
		}
		return s, nil
	}
}
