// Package connectors holds the clients for the remote services a routing
// run talks to. Each subpackage implements one driven port on top of the
// shared httpx client:
//
//   - textservice: content and hero generation
//   - illustrator: pyramid diagrams
//   - analytics: charts
//   - catalog: the variant catalog
package connectors
