// Package log writes one JSON object per event through the standard logger,
// so whatever sink main installs with log.SetOutput receives it.
package log

import (
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
)

const tsLayout = "2006-01-02T15:04:05.000Z07:00"

var service atomic.Value // string

// SetService tags every later event with the emitting binary (web, lambda, catalogctl).
func SetService(name string) { service.Store(name) }

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	Svc       string         `json:"svc,omitempty"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Action    string         `json:"action,omitempty"`
	Security  bool           `json:"security,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func newEntry(level string, c *fiber.Ctx, action string) entry {
	e := entry{TS: time.Now().UTC().Format(tsLayout), Level: level, Action: action}
	e.Svc, _ = service.Load().(string)
	// c is nil outside a request: CLI, lambda, background loads.
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	return e
}

func emit(e entry) {
	b, err := json.Marshal(e)
	if err != nil {
		// unencodable field value; keep the event, drop the fields
		e.Fields = map[string]any{"fields_err": err.Error()}
		b, _ = json.Marshal(e)
	}
	log.Println(string(b))
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := newEntry(level, c, action)
	e.Fields = fields
	if err != nil {
		e.Err = err.Error()
	}
	emit(e)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Timed is Info with latency measured from start.
func Timed(c *fiber.Ctx, action string, start time.Time, fields map[string]any) {
	e := newEntry("info", c, action)
	e.LatencyMs = time.Since(start).Milliseconds()
	e.Fields = fields
	emit(e)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Warn(c *fiber.Ctx, action string, fields map[string]any) { write("warn", c, action, nil, fields) }

// Security is a warn flagged for alerting.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	e := newEntry("warn", c, action)
	e.Security = true
	e.Fields = fields
	emit(e)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
