package node

import (
	"runtime"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/services/command"
	"sensornode-go/services/config"
	"sensornode-go/services/gateway"
	"sensornode-go/types"
)

func (n *Node) registerCommands() {
	n.cmds.MustRegister("cfg_load", n.cmdLoad)
	n.cmds.MustRegister("cfg_save", n.cmdSave)
	n.cmds.MustRegister("cfg_reset", n.cmdReset)
	n.cmds.MustRegister("get", n.cmdGet)
	n.cmds.MustRegister("set", n.cmdSet)
	n.cmds.MustRegister("stats", n.cmdStats)
	n.cmds.MustRegister("update", n.cmdUpdate)
	n.cmds.MustRegister("sleep", n.cmdSleep)
	n.cmds.MustRegister("modules", n.cmdModules)
	n.cmds.MustRegister("reset", n.cmdReboot)
}

func (n *Node) cmdLoad(string) error {
	loaded, err := n.store.Load()
	if err != nil {
		return err
	}
	n.applyConfig()
	if !loaded {
		n.log.Infof("no stored config, defaults in use")
		return nil
	}
	n.log.Infof("config loaded")
	return nil
}

func (n *Node) cmdSave(string) error {
	if err := n.store.Save(); err != nil {
		return err
	}
	n.log.Infof("config saved")
	return nil
}

func (n *Node) cmdReset(string) error {
	if err := n.store.Reset(); err != nil {
		return err
	}
	n.applyConfig()
	n.log.Infof("config reset to defaults")
	return nil
}

func (n *Node) cmdGet(args string) error {
	toks, err := command.ArgsN(args, 1)
	if err != nil {
		return err
	}
	k, err := config.ParseKey(toks[0])
	if err != nil {
		return err
	}
	v, err := n.store.Get(k)
	if err != nil {
		return err
	}
	n.log.Infof("%d %s = %s", k, k.Name(), v)
	return nil
}

func (n *Node) cmdSet(args string) error {
	toks, err := command.ArgsN(args, 2)
	if err != nil {
		return err
	}
	k, err := config.ParseKey(toks[0])
	if err != nil {
		return err
	}
	truncated, err := n.store.Set(k, toks[1])
	if err != nil {
		return err
	}
	if truncated {
		n.log.Infof("%s truncated to %d chars", k.Name(), config.MaxStringLen)
	}
	n.applyConfig()
	v, _ := n.store.Get(k)
	n.log.Infof("%d %s = %s", k, k.Name(), v)
	return nil
}

// FreeMemory reports unused heap bytes.
func FreeMemory() uint32 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapSys < ms.HeapInuse {
		return 0
	}
	return uint32(ms.HeapSys - ms.HeapInuse)
}

func (n *Node) cmdStats(string) error {
	free := FreeMemory()
	n.log.Infof("free=%d uptime=%ds power=%s modules=%d sleeps=%d updates=%d",
		free, int64(n.Uptime()/time.Second), n.sched.State(), n.reg.Len(), n.sched.Sleeps, n.Updates)
	return n.rep.SubmitChild(gateway.ChildNode, types.ValueAvailableMemory, types.IntValue(int32(free)))
}

func (n *Node) cmdUpdate(string) error {
	n.sched.RequestUpdate()
	return nil
}

// cmdSleep defers the sleep to the end of the current cycle so the command
// line finishes first.
func (n *Node) cmdSleep(string) error {
	n.sleepReq = true
	return nil
}

func (n *Node) cmdModules(string) error {
	slots := n.reg.Slots()
	if len(slots) == 0 {
		n.log.Infof("no modules")
		return nil
	}
	for _, s := range slots {
		n.log.Infof("slot %d: %s %q, %d sensors", s.Slot+1, s.Type, s.Descriptor, len(s.Sensors))
	}
	return nil
}

func (n *Node) cmdReboot(string) error {
	if n.reset == nil {
		return errcode.New(errcode.Unsupported, "node.reset", "no resetter")
	}
	n.log.Infof("resetting")
	n.reset.Reset()
	return nil
}
