// Package debug contains optional diagnostic helpers for inspecting the wire
// traffic between the server and its clients.
package debug

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

var dumpConfig = &spew.ConfigState{Indent: "  ", DisableCapacities: true, DisablePointerAddresses: true}

// PrintFrame logs one decoded frame at debug level. direction is "recv" or
// "send" from the server's perspective.
func PrintFrame(log *logrus.Logger, direction string, msgType uint8, payload []byte) {
	log.Debugf("[%s] type=%#02x len=%d\n%s", direction, msgType, len(payload), dumpConfig.Sdump(payload))
}
