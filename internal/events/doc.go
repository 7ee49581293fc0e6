// Package events publishes processing lifecycle events.
//
// The notes service emits an event when a deck is built and when a document
// fails to process. Handlers registered with the emitter react to those
// events without the service knowing about them; the Stats handler keeps
// process-wide counters that the API exposes.
//
// The primary components are:
//   - ProcessingEvent: a single lifecycle event with a JSON payload
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
//   - Stats: an EventHandler that aggregates counters
package events
