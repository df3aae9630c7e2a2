// Package node owns the node's runtime context: the configuration store,
// command table, module registry and power scheduler, plus the cooperative
// main cycle that drives them.
package node

import (
	"context"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/services/command"
	"sensornode-go/services/config"
	"sensornode-go/services/gateway"
	"sensornode-go/services/modules"
	"sensornode-go/services/modules/core"
	"sensornode-go/services/power"
	"sensornode-go/storage"
	"sensornode-go/x/logx"
)

const (
	SketchName    = "sensornode"
	SketchVersion = "2.0"
)

// Gateway is the radio link as the node uses it at boot.
type Gateway interface {
	gateway.Gateway
	PresentNode(name, version string) error
}

// Input yields inbound command bytes without blocking.
type Input interface {
	Drain(fn func(b []byte)) int
}

// Resetter restarts the node.
type Resetter interface {
	Reset()
}

// Options carries the platform collaborators. Zero values select the
// defaults noted on each field.
type Options struct {
	Block     storage.Block
	PoolStart int64 // default storage.DefaultPoolStart
	PoolSize  int64 // 0: to the end of Block

	// Defaults replaces the compiled-in record defaults (profile or seed).
	Defaults *config.Record

	Sensors   core.Platform
	Gateway   Gateway
	Sleeper   power.Sleeper
	Clock     power.Clock     // default power.SystemClock
	Indicator power.Indicator // optional
	Input     Input           // optional
	Resetter  Resetter        // optional

	Log *logx.Logger // default logx.Discard()

	// Pace overrides the gateway pause after each report; nil keeps
	// gateway.Pace.
	Pace *time.Duration
}

type Node struct {
	store *config.Store
	cmds  *command.Dispatcher
	reg   *modules.Registry
	sched *power.Scheduler
	rep   *gateway.Reporter
	gw    Gateway

	clock   power.Clock
	ind     power.Indicator
	in      Input
	reset   Resetter
	log     *logx.Logger
	lines   *command.LineBuffer
	started time.Time

	sleepReq bool
	Updates  uint32
	Invalid  uint32
}

// New boots the node: configuration, logging level, commands, gateway
// presentation, modules, then the status indicator. A storage failure
// leaves the defaults in effect; only command table overflow panics.
func New(ctx context.Context, opt Options) (*Node, error) {
	log := opt.Log
	if log == nil {
		log = logx.Discard()
	}
	clock := opt.Clock
	if clock == nil {
		clock = power.SystemClock
	}
	if opt.Gateway == nil || opt.Block == nil {
		return nil, errcode.New(errcode.InvalidParams, "node.new", "gateway and storage block are required")
	}
	start := opt.PoolStart
	if start == 0 {
		start = storage.DefaultPoolStart
	}

	n := &Node{
		gw:      opt.Gateway,
		clock:   clock,
		ind:     opt.Indicator,
		in:      opt.Input,
		reset:   opt.Resetter,
		log:     log,
		cmds:    command.New(),
		started: clock.Now(),
	}

	n.store = config.NewStore(log)
	if opt.Defaults != nil {
		n.store.SetDefaults(*opt.Defaults)
	}
	pool, err := storage.NewPool(opt.Block, start, opt.PoolSize)
	if err != nil {
		return nil, err
	}
	if err := n.store.Initialize(pool); err != nil {
		return nil, err
	}
	if _, err := n.store.Load(); err != nil {
		log.Errorf("config load: %v", err)
	}
	n.applyConfig()
	// The input buffer is sized once; a new size applies after reset.
	n.lines = command.NewLineBuffer(int(n.store.Integer(config.KeySerialInputBufferSize)))

	n.registerCommands()

	n.rep = gateway.NewReporter(n.gw)
	if opt.Pace != nil {
		n.rep.Pace = *opt.Pace
	}
	if err := n.gw.PresentNode(SketchName, SketchVersion); err != nil {
		log.Errorf("present node: %v", err)
	}

	n.reg = modules.New(opt.Sensors, n.rep, log)
	for slot := 0; slot < modules.Capacity; slot++ {
		desc := n.store.String(config.ModuleKey(slot))
		if _, err := n.reg.Register(ctx, desc); err != nil {
			log.Errorf("module%d %q: %v", slot+1, desc, err)
		}
	}

	n.sched = power.New(n.store, clock, opt.Sleeper, opt.Indicator, log)
	if n.ind != nil {
		n.ind.Set(true)
	}
	log.Infof("ready, %d modules", n.reg.Len())
	return n, nil
}

// applyConfig pushes record values that live outside the store into their
// consumers.
func (n *Node) applyConfig() {
	n.log.SetDebug(n.store.Boolean(config.KeyDebug))
	if a, ok := n.gw.(interface{ SetNodeID(uint8) }); ok {
		a.SetNodeID(uint8(n.store.Integer(config.KeyNodeAddress)))
	}
}

func (n *Node) Store() *config.Store          { return n.store }
func (n *Node) Commands() *command.Dispatcher { return n.cmds }
func (n *Node) Registry() *modules.Registry   { return n.reg }
func (n *Node) Scheduler() *power.Scheduler   { return n.sched }

// Uptime is the time since boot.
func (n *Node) Uptime() time.Duration { return n.clock.Now().Sub(n.started) }
