//go:build !wasm

package sqlreplay

func defaultHostCall(string, string, string, []byte) ([]byte, error) {
	return nil, nil
}
