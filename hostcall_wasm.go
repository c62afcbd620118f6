//go:build wasm

package sqlreplay

import wapc "github.com/wapc/wapc-guest-tinygo"

func defaultHostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	return wapc.HostCall(namespace, capability, function, payload)
}
