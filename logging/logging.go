package logging

import (
	"fmt"

	"github.com/tarmac-project/sqlreplay"
)

const capabilityName = "logging"

// Level orders log entries by severity. The zero value forwards everything.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelFunctions = map[Level]string{
	LevelTrace: "Trace",
	LevelDebug: "Debug",
	LevelInfo:  "Info",
	LevelWarn:  "Warn",
	LevelError: "Error",
}

// String returns the host function name used for the level.
func (l Level) String() string {
	if fn, ok := levelFunctions[l]; ok {
		return fn
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Client exposes convenience helpers for sending log entries to the host runtime.
type Client interface {
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Trace(message string)

	// With returns a Client that prefixes entries with the given component name.
	With(component string) Client
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sqlreplay.RuntimeConfig

	// HostCall overrides the host function used for logging operations.
	HostCall sqlreplay.HostCall

	// Component, when set, prefixes every message as "[component] message".
	Component string

	// Level drops entries below it before they reach the host.
	Level Level
}

// client implements Client using the configured host call entrypoint.
type client struct {
	runtime   sqlreplay.RuntimeConfig
	hostCall  sqlreplay.HostCall
	component string
	level     Level
}

// New creates a Client that emits logs through the configured host capability.
func New(cfg Config) (Client, error) {
	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = sqlreplay.DefaultHostCall()
	}

	return &client{
		runtime:   cfg.SDKConfig.WithDefaults(),
		hostCall:  hostCall,
		component: cfg.Component,
		level:     cfg.Level,
	}, nil
}

// OrDefault returns c, or a Client built from an empty Config when c is nil.
func OrDefault(c Client, component string) Client {
	if c == nil {
		c, _ = New(Config{})
	}
	return c.With(component)
}

func (c *client) Info(message string)  { c.log(LevelInfo, message) }
func (c *client) Warn(message string)  { c.log(LevelWarn, message) }
func (c *client) Error(message string) { c.log(LevelError, message) }
func (c *client) Debug(message string) { c.log(LevelDebug, message) }
func (c *client) Trace(message string) { c.log(LevelTrace, message) }

func (c *client) With(component string) Client {
	clone := *c
	switch {
	case component == "":
	case clone.component == "":
		clone.component = component
	default:
		clone.component = clone.component + "." + component
	}
	return &clone
}

func (c *client) log(level Level, message string) {
	if level < c.level {
		return
	}
	if c.component != "" {
		message = "[" + c.component + "] " + message
	}
	_, _ = c.hostCall(c.runtime.Namespace, capabilityName, level.String(), []byte(message))
}
