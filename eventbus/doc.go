/*
Package eventbus implements publish/subscribe of named events.

Handlers subscribe to an event name and receive every payload published
under that name. Publishing and subscribing may optionally be forwarded to
a remote channel, connecting buses of different processes:

    bus := eventbus.New(eventbus.WithForwarder(fwd))
    bus.Subscribe("saved", handler, true)       // local and remote "saved" events
    bus.Publish("saved", doc, true)             // local handlers, then remote

Forwarding is an interface (Forwarder), see sub-package redisforward for an
implementation on top of Redis pub/sub. Without a forwarder, the forward flag
is ignored.

Local handlers are called synchronously by Publish. Remote events are
delivered on goroutines of the forwarder.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eventbus

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'manifest.eventbus'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.eventbus")
}
