// Package services implements the driving port interfaces.
// Services contain the routing logic (classification, variant selection,
// diversity tracking, dispatch) and orchestrate calls to driven ports.
//
// Services are pure Go with no CGO. They never talk HTTP directly: all
// remote calls go through the driven generation and catalog ports.
package services
