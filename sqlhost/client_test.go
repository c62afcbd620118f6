package sqlhost

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/sql"
	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/cursor"
	"github.com/tarmac-project/sqlreplay/registry"
)

var errHostStatus = errors.New("host returned an error status")

// guestQuery performs a query the way a Tarmac function's sql client does:
// marshal, host call, unmarshal, then check the status.
func guestQuery(hostCall sqlreplay.HostCall, q string) ([]string, []byte, error) {
	b, err := (&proto.SQLQuery{Query: []byte(q)}).MarshalVT()
	if err != nil {
		return nil, nil, err
	}

	out, err := hostCall(sqlreplay.DefaultNamespace, capabilityName, fnQuery, b)
	if err != nil {
		return nil, nil, err
	}

	var resp proto.SQLQueryResponse
	if err := resp.UnmarshalVT(out); err != nil {
		return nil, nil, err
	}
	if err := checkStatus(resp.GetStatus()); err != nil {
		return nil, nil, err
	}
	return resp.GetColumns(), resp.GetData(), nil
}

func checkStatus(status *sdkproto.Status) error {
	if status == nil {
		return fmt.Errorf("%w: missing status", errHostStatus)
	}
	if status.GetCode() != hostStatusOK {
		return fmt.Errorf("%w: host status %d: %s", errHostStatus, status.GetCode(), status.GetStatus())
	}
	return nil
}

func TestGuestRoundTrip(t *testing.T) {
	t.Parallel()

	conn := cursor.NewConnector(cursor.ConnectorConfig{})
	h, err := New(Config{Connector: conn})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	q := "SELECT sku, qty FROM stock"
	if _, err := conn.Registry().On(q).Return(registry.Rows{{"sku": "a-1", "qty": 4}}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cols, data, err := guestQuery(h.HostCall, q)
	if err != nil {
		t.Fatalf("guestQuery returned error: %v", err)
	}
	if len(cols) != 2 || cols[0] != "qty" || cols[1] != "sku" {
		t.Fatalf("unexpected columns %v", cols)
	}

	var stock []struct {
		SKU string `json:"sku"`
		Qty int    `json:"qty"`
	}
	if err := json.Unmarshal(data, &stock); err != nil {
		t.Fatalf("unable to decode data: %v", err)
	}
	if len(stock) != 1 || stock[0].SKU != "a-1" || stock[0].Qty != 4 {
		t.Fatalf("unexpected data %+v", stock)
	}

	if _, _, err := guestQuery(h.HostCall, ""); !errors.Is(err, errHostStatus) {
		t.Fatalf("expected a host status error for an empty query, got %v", err)
	}
}
