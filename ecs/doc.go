// Package ecs provides ECS adapters for cursorfx's variable writes.
//
// The primary adapter is [NewDonburiSink], which bridges every variable the
// cursor engine writes into a [Donburi] world as typed events. Subscribe to
// [VariableEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetVariableSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
