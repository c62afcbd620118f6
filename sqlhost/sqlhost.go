package sqlhost

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/sql"
	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/cursor"
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/registry"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	capabilityName = "sql"
	fnExec         = "exec"
	fnQuery        = "query"

	hostStatusOK       = int32(200)
	hostStatusBadInput = int32(400)
	hostStatusError    = int32(500)
)

var (
	// ErrUnexpectedNamespace is returned when a call targets another namespace.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when a call targets another capability.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned for functions the sql capability does not provide.
	ErrUnexpectedFunction = errors.New("unexpected function")
)

// Config controls construction of a Host.
type Config struct {
	// SDKConfig provides the namespace the host answers for.
	SDKConfig sqlreplay.RuntimeConfig

	// Connector supplies the cursors that replay each call. Required.
	Connector *cursor.Connector

	// Logger receives one entry per served call.
	Logger logging.Client
}

// Host answers Tarmac sql capability host calls from a replay connector.
type Host struct {
	runtime sqlreplay.RuntimeConfig
	conn    *cursor.Connector
	log     logging.Client
}

// New creates a Host.
func New(cfg Config) (*Host, error) {
	if cfg.Connector == nil {
		return nil, sqlreplay.ErrMissingConfig
	}

	return &Host{
		runtime: cfg.SDKConfig.WithDefaults(),
		conn:    cfg.Connector,
		log:     logging.OrDefault(cfg.Logger, "sqlhost"),
	}, nil
}

// HostCall has the waPC host function signature and can be handed to any
// component that accepts one, such as the Tarmac sql client.
func (h *Host) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	if namespace != h.runtime.Namespace {
		return nil, fmt.Errorf("%w: expected namespace %s, got %s", ErrUnexpectedNamespace, h.runtime.Namespace, namespace)
	}
	if capability != capabilityName {
		return nil, fmt.Errorf("%w: expected capability %s, got %s", ErrUnexpectedCapability, capabilityName, capability)
	}

	switch function {
	case fnQuery:
		return h.query(payload)
	case fnExec:
		return h.exec(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFunction, function)
	}
}

func (h *Host) query(payload []byte) ([]byte, error) {
	var req proto.SQLQuery
	if err := req.UnmarshalVT(payload); err != nil {
		h.log.Warn(fmt.Sprintf("unable to decode query request: %s", err))
		return (&proto.SQLQueryResponse{Status: status(hostStatusBadInput, "unable to decode request")}).MarshalVT()
	}

	q := string(req.GetQuery())
	if q == "" {
		return (&proto.SQLQueryResponse{Status: status(hostStatusBadInput, sqlreplay.ErrInvalidQuery.Error())}).MarshalVT()
	}

	rows := h.replay(q)
	data, err := EncodeRows(rows)
	if err != nil {
		h.log.Error(fmt.Sprintf("unable to encode response for %q: %s", q, err))
		return (&proto.SQLQueryResponse{Status: status(hostStatusError, "unable to encode response")}).MarshalVT()
	}

	h.log.Debug(fmt.Sprintf("served %d rows for %q", len(rows), q))
	return (&proto.SQLQueryResponse{
		Status:  status(hostStatusOK, "OK"),
		Columns: rows.Columns(),
		Data:    data,
	}).MarshalVT()
}

func (h *Host) exec(payload []byte) ([]byte, error) {
	var req proto.SQLExec
	if err := req.UnmarshalVT(payload); err != nil {
		h.log.Warn(fmt.Sprintf("unable to decode exec request: %s", err))
		return (&proto.SQLExecResponse{Status: status(hostStatusBadInput, "unable to decode request")}).MarshalVT()
	}

	q := string(req.GetQuery())
	if q == "" {
		return (&proto.SQLExecResponse{Status: status(hostStatusBadInput, sqlreplay.ErrInvalidQuery.Error())}).MarshalVT()
	}

	rows := h.replay(q)
	h.log.Debug(fmt.Sprintf("executed %q, %d rows affected", q, len(rows)))
	return (&proto.SQLExecResponse{
		Status:       status(hostStatusOK, "OK"),
		RowsAffected: int64(len(rows)),
	}).MarshalVT()
}

func (h *Host) replay(q string) registry.Rows {
	cur := h.conn.Cursor()
	cur.Execute(q)
	return registry.AsRows(cur.FetchAll())
}

func status(code int32, msg string) *sdkproto.Status {
	return &sdkproto.Status{Code: code, Status: msg}
}

// EncodeRows renders rows as a JSON array of objects. Decimals are rendered as
// strings to keep their precision and times use RFC 3339.
func EncodeRows(rows registry.Rows) ([]byte, error) {
	items := make([]any, 0, len(rows))
	for _, r := range rows {
		items = append(items, plain(r))
	}

	list, err := structpb.NewList(items)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(list)
}

// plain converts values into the shapes structpb understands.
func plain(v any) any {
	switch t := v.(type) {
	case registry.Record:
		return plain(map[string]any(t))
	case registry.Rows:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = plain(r)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = plain(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = plain(x)
		}
		return out
	case decimal.Decimal:
		return t.String()
	case *decimal.Decimal:
		if t == nil {
			return nil
		}
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}
