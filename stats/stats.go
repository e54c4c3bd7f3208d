// Package stats collects command, event and request counts and submits them to InfluxDB.
// A nil *Client is valid and discards everything.
package stats

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// Client is an InfluxDB client
type Client struct {
	client influxdb2.Client
	write  api.WriteAPI
	log    *zap.SugaredLogger

	mu       sync.Mutex
	queries  uint32
	commands map[string]uint32
	events   map[string]uint32
	requests map[string]uint32
}

// New creates a new client. If url is empty, nil is returned.
func New(url, token, organization, bucket string, log *zap.SugaredLogger) *Client {
	if url == "" {
		return nil
	}

	c := &Client{
		log:      log,
		commands: make(map[string]uint32),
		events:   make(map[string]uint32),
		requests: make(map[string]uint32),
	}

	c.client = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20))
	c.write = c.client.WriteAPI(organization, bucket)

	go func() {
		for err := range c.write.Errors() {
			log.Errorf("writing to influxdb: %v", err)
		}
	}()

	return c
}

// EventHandler handles Arikawa events
func (c *Client) EventHandler(ev interface{}) {
	c.RegisterEvent(reflect.ValueOf(ev).Elem().Type().Name())
}

// RegisterEvent registers an event name. Separate from EventHandler so listeners can count their own events.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.events[name]++
	c.mu.Unlock()
}

// IncQuery increments the query count by one
func (c *Client) IncQuery() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.queries++
	c.mu.Unlock()
}

// IncCommand increments the count for a command by one
func (c *Client) IncCommand(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.commands[name]++
	c.mu.Unlock()
}

// IncRequest increments the count for a Discord REST request by one
func (c *Client) IncRequest(method, path string, status int) {
	if c == nil {
		return
	}

	name := fmt.Sprintf("%v %dxx", EndpointMetricsName(method, path), status/100)

	c.mu.Lock()
	c.requests[name]++
	c.mu.Unlock()
}

// Submit writes all counters to InfluxDB and resets them.
func (c *Client) Submit() {
	if c == nil {
		return
	}

	c.log.Debug("Submitting metrics to InfluxDB")

	var cmds, totalEvents uint32

	c.mu.Lock()
	queries := c.queries
	c.queries = 0

	commands := make(map[string]interface{}, len(c.commands))
	for k, v := range c.commands {
		cmds += v
		commands[k] = v
	}
	events := make(map[string]interface{}, len(c.events))
	for k, v := range c.events {
		totalEvents += v
		events[k] = v
	}
	requests := make(map[string]interface{}, len(c.requests))
	for k, v := range c.requests {
		requests[k] = v
	}
	c.commands = make(map[string]uint32)
	c.events = make(map[string]uint32)
	c.requests = make(map[string]uint32)
	c.mu.Unlock()

	now := time.Now()
	if len(events) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("events", nil, events, now))
	}
	if len(commands) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("commands", nil, commands, now))
	}
	if len(requests) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("requests", nil, requests, now))
	}

	data := map[string]interface{}{
		"queries":    queries,
		"events":     totalEvents,
		"commands":   cmds,
		"goroutines": runtime.NumGoroutine(),
	}

	sys, err := System()
	if err != nil {
		c.log.Errorf("getting system stats: %v", err)
	} else {
		data["alloc"] = sys.Alloc
		data["sys"] = sys.Sys
		data["total_sys"] = sys.UsedMemory
		data["total_sys_percent"] = sys.UsedMemoryPercent
		for i, d := range sys.CPU {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	c.write.WritePoint(influxdb2.NewPoint("statistics", nil, data, now))
}

// Close flushes pending writes and closes the client.
func (c *Client) Close() {
	if c == nil {
		return
	}

	c.write.Flush()
	c.client.Close()
}

// SystemStats are memory and CPU statistics for the process and the host.
type SystemStats struct {
	Alloc      uint64
	Sys        uint64
	Goroutines int

	UsedMemory        uint64
	TotalMemory       uint64
	UsedMemoryPercent float64

	CPU []float64
}

// System returns current system statistics. CPU usage is sampled over one second.
func System() (s SystemStats, err error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s.Alloc = ms.Alloc
	s.Sys = ms.Sys
	s.Goroutines = runtime.NumGoroutine()

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		return s, err
	}
	s.UsedMemory = sysMem.Used
	s.TotalMemory = sysMem.Total
	s.UsedMemoryPercent = sysMem.UsedPercent

	s.CPU, err = cpu.Percent(time.Second, false)
	return s, err
}
