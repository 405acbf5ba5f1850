// Package connectors groups the clients that talk to external
// validation services. Each connector lives in its own subpackage and
// implements the driven ValidatorAPI port for one backend.
//
// Currently the only connector is omni, the Omni platform REST client.
package connectors
